package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aldoetobex/hrms-backend/internal/config"
	"github.com/aldoetobex/hrms-backend/pkg/uniqueness"
	"github.com/aldoetobex/hrms-backend/pkg/validation"
)

// newClient is swapped in tests.
var newClient = func(cfg *config.ClientConfig) uniqueness.Client {
	return uniqueness.NewHTTPClient(cfg.APIURL, cfg.APIToken, cfg.Timeout)
}

func newUniqueCmd() *cobra.Command {
	var t uniqueness.Target
	var field string

	cmd := &cobra.Command{
		Use:   "unique",
		Short: "Ask a running API whether a value is already taken",
		Long: `Ask a running API whether a value is already taken.

Reads HRMS_API_URL and HRMS_API_TOKEN from the environment (or .env).`,
		Example: `  hrvalidate unique --field PAN_NUMBER --value ABCDE1234F
  hrvalidate unique --field EMAIL --value a@b.in --exclude-id 6f1c... --column email`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := uniqueness.ParseField(field)
			if err != nil {
				return err
			}
			cfg, err := config.LoadClient()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			t.Field = f
			t.ErrorKey = string(f)
			s := validation.NewSession()
			out := uniqueness.NewChecker(newClient(cfg), s).Check(ctx, t)

			w := cmd.OutOrStdout()
			switch {
			case out.Skipped:
				fmt.Fprintf(w, "%s too short to check (min %d characters)\n", dim("-"), f.MinLength())
				return nil
			case out.Err != nil:
				return fmt.Errorf("%s: %w", uniqueness.MsgCheckFailed, out.Err)
			case out.Exists:
				fmt.Fprintf(w, "%s %s %s\n", failMark("✗"), t.Value, out.Message)
				return ErrInvalid{N: 1}
			}
			fmt.Fprintf(w, "%s %s %s\n", okMark("✓"), t.Value, out.Message)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&field, "field", "", "Field kind: EMAIL, PAN_NUMBER, GST, ...")
	fl.StringVar(&t.Value, "value", "", "Value to check")
	fl.StringVar(&t.ExcludeID, "exclude-id", "", "Id of the record being edited (switches to edit mode)")
	fl.StringVar(&t.FieldColumn, "column", "", "Restrict the edit check to one column")
	fl.IntVar(&t.MinLength, "min-length", 0, "Override the minimum length")
	_ = cmd.MarkFlagRequired("field")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}

package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aldoetobex/hrms-backend/pkg/validation"
)

func newFieldCmd() *cobra.Command {
	var snapshot string
	var strict bool

	cmd := &cobra.Command{
		Use:   "field <name> <value>",
		Short: "Validate one field value",
		Example: `  hrvalidate field panNumber ABCDE1234F
  hrvalidate field bankDetails.ifscCode sbin0001234
  hrvalidate field alternateContactNumber 9876543210 --snapshot '{"contactNumber":"9876543210"}'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := map[string]any{}
			if snapshot != "" {
				if err := json.Unmarshal([]byte(snapshot), &snap); err != nil {
					return fmt.Errorf("invalid --snapshot: %w", err)
				}
			}
			v := validation.NewFieldValidator()
			v.Strict = strict

			name, value := args[0], validation.Normalize(args[0], args[1])
			msg, err := v.Check(name, value, validation.MapSnapshot(snap))
			if errors.Is(err, validation.ErrUnknownField) {
				if strict {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", okMark("✓"), name, dim("(no rule)"))
				return nil
			}

			out := cmd.OutOrStdout()
			if msg != "" {
				fmt.Fprintf(out, "%s %s: %s\n", failMark("✗"), name, msg)
				return ErrInvalid{N: 1}
			}
			fmt.Fprintf(out, "%s %s = %s %s\n", okMark("✓"), name, value, dim("("+validation.Resolve(name).String()+")"))
			return nil
		},
	}
	cmd.Flags().StringVar(&snapshot, "snapshot", "", "Rest of the form as JSON, for cross-field rules")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on fields without a rule")
	return cmd
}

package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/aldoetobex/hrms-backend/pkg/validation"
)

func newDatesCmd() *cobra.Command {
	var c validation.DateCluster
	var client string

	cmd := &cobra.Command{
		Use:   "dates",
		Short: "Check the employment date cluster",
		Example: `  hrvalidate dates --client CLIENT:42 --joining 2024-01-10 --onboarding 2024-01-05
  hrvalidate dates --client BENCH`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.Client = validation.ParseClientSelection(client)
			errs := validation.DateErrors(c)

			out := cmd.OutOrStdout()
			if len(errs) == 0 {
				fmt.Fprintf(out, "%s dates are consistent\n", okMark("✓"))
				return nil
			}
			keys := make([]string, 0, len(errs))
			for k := range errs {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(out, "%s %s: %s\n", failMark("✗"), k, errs[k])
			}
			return ErrInvalid{N: len(errs)}
		},
	}
	f := cmd.Flags()
	f.StringVar(&client, "client", "", `Client selection: "CLIENT:<id>", "STATUS:<name>" or a status such as BENCH`)
	f.StringVar(&c.Joining, "joining", "", "Date of joining (YYYY-MM-DD)")
	f.StringVar(&c.Onboarding, "onboarding", "", "Date of onboarding to client")
	f.StringVar(&c.Offboarding, "offboarding", "", "Date of client offboarding")
	f.StringVar(&c.BillingStart, "billing-start", "", "Billing start date")
	f.StringVar(&c.BillingStop, "billing-stop", "", "Billing stop date")
	return cmd
}

// Package cli implements the hrvalidate command: local runs of the field and
// date-cluster rules, and remote uniqueness checks against a running API.
package cli

import (
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	plain bool

	okMark   = color.New(color.FgGreen).SprintFunc()
	failMark = color.New(color.FgRed).SprintFunc()
	dim      = color.New(color.Faint).SprintFunc()
)

// ErrInvalid is returned when a value fails validation, so the process
// exits non-zero.
type ErrInvalid struct{ N int }

func (e ErrInvalid) Error() string {
	if e.N == 1 {
		return "1 validation error"
	}
	return strconv.Itoa(e.N) + " validation errors"
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hrvalidate",
		Short:         "Validate HR form values",
		Long:          "Run the HRMS field rules, date-cluster rules and uniqueness checks from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&plain, "plain", false, "Plain output without colors")
	root.PersistentPreRun = func(*cobra.Command, []string) {
		if plain {
			color.NoColor = true
		}
	}

	root.AddCommand(newFieldCmd(), newDatesCmd(), newUniqueCmd())
	return root
}

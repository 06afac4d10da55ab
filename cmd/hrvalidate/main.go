package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aldoetobex/hrms-backend/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		var invalid cli.ErrInvalid
		if !errors.As(err, &invalid) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"strings"

	"snipjar/internal/core/luhn"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func (a *app) luhnCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "luhn <digits>",
		Short:   "Check a number and compute the check digit that completes it",
		Example: "  snipjar luhn 4532-0151-1283-0366",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			digits := strings.NewReplacer(" ", "", "-", "").Replace(args[0])
			check, err := luhn.CheckDigit(digits)
			if err != nil {
				return err
			}
			valid := color.RedString("false")
			if luhn.Valid(digits) {
				valid = color.GreenString("true")
			}
			fmt.Fprintf(a.out, "number\t%s\nvalid\t%s\ncheck\t%c (%s%c)\n", digits, valid, check, digits, check)
			return nil
		},
	}
}

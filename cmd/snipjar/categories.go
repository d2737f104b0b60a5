package main

import (
	"snipjar/internal/core/category"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func (a *app) categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories with their icon and color",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := tablewriter.NewWriter(a.out)
			table.SetHeader([]string{"Category", "Icon", "Color"})
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			for _, c := range category.All() {
				p := c.Presentation()
				table.Append([]string{color.New(color.Bold).Sprint(c.String()), p.Icon, p.Color})
			}
			table.Render()
			return nil
		},
	}
}

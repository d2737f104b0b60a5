package main

import (
	"encoding/json"
	"fmt"

	"snipjar/internal/core/version"

	"github.com/spf13/cobra"
)

func (a *app) versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build and classifier version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.Info()
			if a.asJSON {
				return json.NewEncoder(a.out).Encode(info)
			}
			fmt.Fprintf(a.out, "snipjar %s (commit %s, built %s)\nclassifier v%d\n",
				info.Version, info.Commit, info.Date, info.Classifier)
			return nil
		},
	}
	cmd.Flags().BoolVar(&a.asJSON, "json", false, "print JSON")
	return cmd
}

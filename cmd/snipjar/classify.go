package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"snipjar/internal/services/classify/domain"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func (a *app) classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [text...]",
		Short: "Classify each argument, or stdin as one snippet",
		Example: `  snipjar classify jane.doe@example.com 4532015112830366
  pbpaste | snipjar classify --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				b, err := io.ReadAll(a.in)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				args = []string{string(b)}
			}
			enc := json.NewEncoder(a.out)
			for _, s := range args {
				out := svc.Classify(cmd.Context(), domain.ClassifyInput{Content: s})
				if a.asJSON {
					if err := enc.Encode(out); err != nil {
						return err
					}
					continue
				}
				fmt.Fprintf(a.out, "%s\t%.2f\t%s\n", paint(out), out.Confidence, detectorOf(out))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&a.asJSON, "json", false, "print JSON lines")
	return cmd
}

// paint colors confident results green and the rest yellow
func paint(o domain.ClassifyOutput) string {
	name := string(o.Category)
	if o.Confident {
		return color.GreenString(name)
	}
	return color.YellowString(name)
}

func detectorOf(o domain.ClassifyOutput) string {
	if strings.TrimSpace(o.Detector) == "" {
		return "-"
	}
	return o.Detector
}

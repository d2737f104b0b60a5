package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"snipjar/internal/platform/net/http/bind"
	"snipjar/internal/services/classify/domain"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// maxLine fits one item at the content cap in 4 byte runes plus framing
const maxLine = domain.MaxContentRunes*4 + 1024

func (a *app) batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: `Reclassify JSON lines {"id","content"} read from stdin`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := readItems(a)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				return nil
			}
			svc, err := a.service()
			if err != nil {
				return err
			}
			res, err := svc.Reclassify(cmd.Context(), items)
			if err != nil {
				return err
			}
			if a.asJSON {
				enc := json.NewEncoder(a.out)
				for _, r := range res {
					if err := enc.Encode(r); err != nil {
						return err
					}
				}
				return nil
			}

			table := tablewriter.NewWriter(a.out)
			table.SetHeader([]string{"ID", "Category", "Confidence", "Detector"})
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetAutoWrapText(false)
			for _, r := range res {
				table.Append([]string{
					r.ID,
					paint(r.ClassifyOutput),
					strconv.FormatFloat(r.Confidence, 'f', 2, 64),
					detectorOf(r.ClassifyOutput),
				})
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().BoolVar(&a.asJSON, "json", false, "print JSON lines")
	return cmd
}

// readItems parses one item per line; blank lines are skipped
func readItems(a *app) ([]domain.Item, error) {
	sc := bufio.NewScanner(a.in)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	var items []domain.Item
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		dec := json.NewDecoder(strings.NewReader(line))
		dec.DisallowUnknownFields()
		var it domain.Item
		if err := dec.Decode(&it); err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		if err := bind.Validate(it); err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		items = append(items, it)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return items, nil
}

package main

import (
	"fmt"
	"strings"

	"extsort/internal/report"
	"extsort/pkg/types"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newCategoriesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Print the category map in effect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := loadCategories(opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			switch strings.ToLower(opts.output) {
			case report.FormatJSON:
				data, err := categories.MarshalJSON()
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			case report.FormatTable:
				tw := table.NewWriter()
				tw.SetStyle(table.StyleRounded)
				tw.AppendHeader(table.Row{"Category", "Extensions"})
				for _, c := range categories {
					tw.AppendRow(table.Row{c.Name, strings.Join(c.Extensions, " ")})
				}
				tw.AppendRow(table.Row{types.OthersCategory, "(everything else)"})
				_, err = fmt.Fprintln(out, tw.Render())
				return err
			case report.FormatText, "":
				for _, c := range categories {
					fmt.Fprintf(out, "%s: %s\n", c.Name, strings.Join(c.Extensions, ", "))
				}
				_, err = fmt.Fprintf(out, "%s: (everything else)\n", types.OthersCategory)
				return err
			default:
				_, err := report.New(opts.output, out)
				return err
			}
		},
	}
}

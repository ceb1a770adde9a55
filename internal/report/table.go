package report

import (
	"fmt"
	"io"

	"extsort/pkg/types"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Table renders results as a bordered table with a summary footer.
type Table struct {
	w        io.Writer
	colorize bool
}

// NewTable creates a table sink.
func NewTable(w io.Writer) *Table {
	return &Table{w: w, colorize: shouldColorize(w)}
}

// Render implements Sink.
func (t *Table) Render(results []types.OrganizeResult, dryRun bool) error {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Footer = text.FormatDefault
	if dryRun {
		tw.SetTitle("Dry run")
	}
	tw.AppendHeader(table.Row{"File", "Category", "Action", "Destination"})

	for _, r := range results {
		tw.AppendRow(table.Row{displayName(r), r.Category, t.action(r), r.DestinationPath})
	}

	summary := Summarize(results)
	tw.AppendFooter(table.Row{summary.String(), "", "", ""}, table.RowConfig{AutoMerge: true})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AlignHeader: text.AlignLeft},
		{Number: 3, AlignHeader: text.AlignLeft, WidthMax: 60},
	})

	_, err := fmt.Fprintln(t.w, tw.Render())
	return err
}

func (t *Table) action(r types.OrganizeResult) string {
	label := ActionLabel(r)
	if !t.colorize {
		return label
	}
	switch r.Action {
	case types.ActionMoved:
		return text.FgGreen.Sprint(label)
	case types.ActionWouldMove:
		return text.FgBlue.Sprint(label)
	case types.ActionSkippedError:
		return text.FgRed.Sprint(label)
	}
	return label
}

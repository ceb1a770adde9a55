package report

import (
	"fmt"
	"io"

	"extsort/pkg/types"

	"github.com/charmbracelet/lipgloss"
)

// Colours follow the default theme: success 114, warning 220, error 196,
// info 39.
type textStyles struct {
	moved   lipgloss.Style
	planned lipgloss.Style
	failed  lipgloss.Style
	muted   lipgloss.Style
}

// Text writes one line per file followed by a summary.
type Text struct {
	w      io.Writer
	styles textStyles
}

// NewText creates a text sink. Colour is used only when w is a terminal.
func NewText(w io.Writer) *Text {
	r := lipgloss.NewRenderer(w)
	return &Text{
		w: w,
		styles: textStyles{
			moved:   r.NewStyle().Foreground(lipgloss.Color("114")),
			planned: r.NewStyle().Foreground(lipgloss.Color("39")),
			failed:  r.NewStyle().Foreground(lipgloss.Color("196")),
			muted:   r.NewStyle().Faint(true),
		},
	}
}

// Render implements Sink.
func (t *Text) Render(results []types.OrganizeResult, dryRun bool) error {
	for _, r := range results {
		if _, err := fmt.Fprintln(t.w, t.Line(r)); err != nil {
			return err
		}
	}

	summary := Summarize(results)
	if _, err := fmt.Fprintln(t.w, t.styles.muted.Render(summary.String())); err != nil {
		return err
	}
	if dryRun && summary.Files > 0 {
		_, err := fmt.Fprintln(t.w, t.styles.muted.Render("Dry run complete. No files were moved."))
		return err
	}
	return nil
}

// Line formats a single result: "  - a.pdf -> Documents (moved)".
func (t *Text) Line(r types.OrganizeResult) string {
	style := t.styles.moved
	switch r.Action {
	case types.ActionWouldMove:
		style = t.styles.planned
	case types.ActionSkippedError:
		style = t.styles.failed
	}
	return fmt.Sprintf("  - %s -> %s %s", displayName(r), r.Category, style.Render("("+ActionLabel(r)+")"))
}

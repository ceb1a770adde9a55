package report

import (
	"fmt"
	"sort"
	"strings"

	"extsort/pkg/types"

	"github.com/dustin/go-humanize"
)

// Summary totals a run.
type Summary struct {
	Files      int            `json:"files"`
	Moved      int            `json:"moved"`
	WouldMove  int            `json:"would_move"`
	Skipped    int            `json:"skipped"`
	Bytes      int64          `json:"bytes"`
	Categories map[string]int `json:"categories"`
}

// Summarize counts results by action and category. Bytes only counts files
// that were, or would be, moved.
func Summarize(results []types.OrganizeResult) Summary {
	s := Summary{Files: len(results), Categories: map[string]int{}}
	for _, r := range results {
		switch r.Action {
		case types.ActionMoved:
			s.Moved++
		case types.ActionWouldMove:
			s.WouldMove++
		case types.ActionSkippedError:
			s.Skipped++
			continue
		}
		s.Bytes += r.Size
		s.Categories[r.Category]++
	}
	return s
}

// String renders e.g. "3 files: 2 moved, 1 skipped (1.2 kB)".
func (s Summary) String() string {
	if s.Files == 0 {
		return "No files needed organization."
	}

	var parts []string
	if s.Moved > 0 {
		parts = append(parts, fmt.Sprintf("%d moved", s.Moved))
	}
	if s.WouldMove > 0 {
		parts = append(parts, fmt.Sprintf("%d would move", s.WouldMove))
	}
	if s.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", s.Skipped))
	}
	return fmt.Sprintf("%s: %s (%s)", plural(s.Files, "file"), strings.Join(parts, ", "), humanize.Bytes(uint64(s.Bytes)))
}

// CategoryLine renders the per-category counts in name order, e.g.
// "Documents: 2, Images: 1".
func (s Summary) CategoryLine() string {
	names := make([]string, 0, len(s.Categories))
	for name := range s.Categories {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %d", name, s.Categories[name]))
	}
	return strings.Join(parts, ", ")
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}

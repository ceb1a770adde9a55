// Package report renders organization results for people and scripts.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"extsort/pkg/types"

	"github.com/mattn/go-isatty"
)

// Sink receives the results of one run.
type Sink interface {
	Render(results []types.OrganizeResult, dryRun bool) error
}

// Output formats accepted by New.
const (
	FormatText  = "text"
	FormatTable = "table"
	FormatJSON  = "json"
)

// Formats lists the names New accepts.
func Formats() []string {
	return []string{FormatText, FormatTable, FormatJSON}
}

// New returns the sink for format writing to w.
func New(format string, w io.Writer) (Sink, error) {
	switch strings.ToLower(format) {
	case FormatText, "":
		return NewText(w), nil
	case FormatTable:
		return NewTable(w), nil
	case FormatJSON:
		return NewJSON(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want one of %s)", format, strings.Join(Formats(), ", "))
	}
}

// ActionLabel is the human wording for a result's action.
func ActionLabel(r types.OrganizeResult) string {
	switch r.Action {
	case types.ActionMoved:
		return "moved"
	case types.ActionWouldMove:
		return "would move"
	case types.ActionSkippedError:
		if r.Error != "" {
			return "skipped: " + r.Error
		}
		return "skipped"
	default:
		return string(r.Action)
	}
}

// displayName shortens src to its base name when it sits in the organized
// directory, which is the common case.
func displayName(r types.OrganizeResult) string {
	if filepath.Dir(r.SourcePath) == filepath.Dir(filepath.Dir(r.DestinationPath)) {
		return filepath.Base(r.SourcePath)
	}
	return r.SourcePath
}

func shouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

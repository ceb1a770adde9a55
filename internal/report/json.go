package report

import (
	"encoding/json"
	"io"

	"extsort/pkg/types"
)

// JSON writes a single document with the results and their summary.
type JSON struct {
	w io.Writer
}

// NewJSON creates a JSON sink.
func NewJSON(w io.Writer) *JSON {
	return &JSON{w: w}
}

type jsonReport struct {
	DryRun  bool                   `json:"dry_run"`
	Results []types.OrganizeResult `json:"results"`
	Summary Summary                `json:"summary"`
}

// Render implements Sink.
func (j *JSON) Render(results []types.OrganizeResult, dryRun bool) error {
	if results == nil {
		results = []types.OrganizeResult{}
	}
	enc := json.NewEncoder(j.w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{
		DryRun:  dryRun,
		Results: results,
		Summary: Summarize(results),
	})
}

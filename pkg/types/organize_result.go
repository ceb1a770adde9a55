package types

// Action is what happened to a file during a run.
type Action string

const (
	ActionMoved        Action = "moved"
	ActionWouldMove    Action = "would-move"
	ActionSkippedError Action = "skipped-error"
)

// OrganizeResult holds the outcome of an organization attempt for a single file
type OrganizeResult struct {
	SourcePath      string `json:"source_path"`
	DestinationPath string `json:"destination_path"`
	Category        string `json:"category"`
	Action          Action `json:"action"`
	Error           string `json:"error,omitempty"`
	Size            int64  `json:"size"`
}

// Failed reports whether the file was skipped because of an error.
func (r OrganizeResult) Failed() bool {
	return r.Action == ActionSkippedError
}

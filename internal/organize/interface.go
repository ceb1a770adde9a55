package organize

import (
	"extsort/internal/config"
	"extsort/pkg/types"
)

// Organizer defines the interface for file organization operations
// This allows for dependency injection in tests and other parts of the application
type Organizer interface {
	// SetDryRun sets whether operations should be performed or just simulated
	SetDryRun(dryRun bool)

	// IsDryRun reports whether the organizer only simulates moves
	IsDryRun() bool

	// Categories returns the mapping used for classification
	Categories() config.CategoryMap

	// Scan lists the files that a run would consider
	Scan(dir string) ([]types.FileEntry, error)

	// Organize sorts the top-level files of dir into category folders
	Organize(dir string) ([]types.OrganizeResult, error)

	// MoveFile moves a file from source to destination with safety checks
	MoveFile(src, dest string) error
}

// Ensure Engine implements the Organizer interface
var _ Organizer = (*Engine)(nil)

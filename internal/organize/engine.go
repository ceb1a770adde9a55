package organize

import (
	"os"
	"path/filepath"

	"extsort/internal/config"
	"extsort/internal/errors"
	"extsort/internal/log"
	"extsort/pkg/types"

	"github.com/gobwas/glob"
)

// Engine moves the files of a directory into category folders.
type Engine struct {
	categories config.CategoryMap
	dryRun     bool
	excludes   []glob.Glob
	// category folders known to exist during the current run
	madeDirs map[string]bool
}

// New creates an engine for the given category map.
func New(categories config.CategoryMap) *Engine {
	return &Engine{
		categories: categories,
		madeDirs:   make(map[string]bool),
	}
}

// SetDryRun sets whether operations should be performed or just simulated
func (e *Engine) SetDryRun(dryRun bool) {
	e.dryRun = dryRun
}

// IsDryRun returns whether the engine is in dry run mode
func (e *Engine) IsDryRun() bool {
	return e.dryRun
}

// Categories returns the category map the engine classifies with.
func (e *Engine) Categories() config.CategoryMap {
	return e.categories
}

// SetExcludes replaces the glob patterns of file names to leave in place.
func (e *Engine) SetExcludes(patterns []string) error {
	compiled := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return errors.NewConfigError("invalid exclude pattern", p, errors.InvalidConfig, err)
		}
		compiled = append(compiled, g)
	}
	e.excludes = compiled
	log.Debugf("Using %d exclude patterns", len(compiled))
	return nil
}

func (e *Engine) excluded(name string) bool {
	for _, g := range e.excludes {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Classify returns the category whose extensions include ext, or Others.
func Classify(ext string, categories config.CategoryMap) string {
	if name, ok := categories.Lookup(ext); ok {
		return name
	}
	return types.OthersCategory
}

// PlanMove returns where entry currently is and where it goes:
// targetDir/category/name.
func PlanMove(entry types.FileEntry, targetDir, category string) (string, string) {
	return filepath.Join(targetDir, entry.Name), filepath.Join(targetDir, category, entry.Name)
}

// Scan lists the regular files directly inside dir, in directory order.
// Subdirectories, symlinks to directories, dangling links and excluded names
// are left out.
func (e *Engine) Scan(dir string) ([]types.FileEntry, error) {
	if err := checkDirectory(dir); err != nil {
		return nil, err
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.NewDirectoryError("error reading directory", dir, errors.DirectoryNotFound, err)
	}

	var entries []types.FileEntry
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		name := de.Name()
		if e.excluded(name) {
			log.LogWithFields(log.F("file", name)).Debug("Excluded by pattern")
			continue
		}
		if de.Type()&os.ModeSymlink != 0 {
			target, err := os.Stat(filepath.Join(dir, name))
			if err != nil || target.IsDir() {
				log.LogWithFields(log.F("file", name)).Debug("Skipping link that is not a file")
				continue
			}
		}

		var size int64
		if info, err := de.Info(); err == nil {
			size = info.Size()
		}
		entries = append(entries, types.NewFileEntry(dir, name, size))
	}
	return entries, nil
}

func checkDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewDirectoryError("directory not found", dir, errors.DirectoryNotFound, err)
		}
		return errors.NewDirectoryError("error accessing directory", dir, errors.DirectoryNotFound, err)
	}
	if !info.IsDir() {
		return errors.NewDirectoryError("path is not a directory", dir, errors.NotADirectory, nil)
	}
	return nil
}

// Organize classifies every top-level file of directory and moves it into
// its category folder, or only reports the move in dry run mode.
//
// The returned error is only set for problems with directory itself; in that
// case nothing has been touched. A file that cannot be moved produces a
// skipped-error result and the run carries on with the next file.
func (e *Engine) Organize(directory string) ([]types.OrganizeResult, error) {
	entries, err := e.Scan(directory)
	if err != nil {
		return nil, err
	}

	e.madeDirs = make(map[string]bool)
	logger := log.LogWithFields(log.F("directory", directory), log.F("dry_run", e.dryRun))
	logger.Infof("Organizing %d files", len(entries))

	results := make([]types.OrganizeResult, 0, len(entries))
	for _, entry := range entries {
		results = append(results, e.organizeEntry(directory, entry))
	}

	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
		}
	}
	logger.With(log.F("files", len(results)), log.F("failed", failed)).Info("Organization finished")
	return results, nil
}

func (e *Engine) organizeEntry(directory string, entry types.FileEntry) types.OrganizeResult {
	category := Classify(entry.Ext, e.categories)
	src, dest := PlanMove(entry, directory, category)

	result := types.OrganizeResult{
		SourcePath:      src,
		DestinationPath: dest,
		Category:        category,
		Size:            entry.Size,
	}

	if err := e.MoveFile(src, dest); err != nil {
		log.LogWithError(err).With(log.F("reason", skipReason(err))).Warn("Skipping file")
		result.Action = types.ActionSkippedError
		result.Error = err.Error()
		return result
	}
	if e.dryRun {
		result.Action = types.ActionWouldMove
	} else {
		result.Action = types.ActionMoved
	}
	return result
}

// skipReason names the cause of a per-file failure for the log.
func skipReason(err error) string {
	switch {
	case errors.IsFileNotFound(err):
		return "vanished"
	case errors.IsFileAccessDenied(err):
		return "permission"
	default:
		return "io"
	}
}

// MoveFile moves a file from src to dest, creating dest's folder first. In
// dry run mode the source is still checked but nothing is changed.
//
// A file already present at dest is overwritten without a backup, so two
// files with the same name sorted into one category leave only the last one.
func (e *Engine) MoveFile(src, dest string) error {
	cleanSrc := filepath.Clean(src)
	cleanDest := filepath.Clean(dest)

	if cleanSrc == cleanDest {
		log.Debugf("Source and destination are the same, skipping: %s", src)
		return nil
	}

	srcInfo, err := os.Lstat(cleanSrc)
	if err != nil {
		return errors.FromOS(err, "source file error", cleanSrc, errors.FileOperationFailed)
	}
	if srcInfo.IsDir() {
		return errors.NewFileError("cannot move directory as file", cleanSrc, errors.FileOperationFailed, nil)
	}

	if e.dryRun {
		log.Infof("Would move %s -> %s", src, cleanDest)
		return nil
	}

	if err := e.ensureDir(filepath.Dir(cleanDest)); err != nil {
		return err
	}

	if _, err := os.Lstat(cleanDest); err == nil {
		log.LogWithFields(log.F("destination", cleanDest)).Warn("Destination exists, overwriting")
	}

	log.Debugf("Moving %s to %s", cleanSrc, cleanDest)
	if err := moveFile(cleanSrc, cleanDest); err != nil {
		return errors.FromOS(err, "failed to move file", cleanSrc, errors.FileOperationFailed)
	}

	log.Infof("Moved %s -> %s", src, cleanDest)
	return nil
}

// ensureDir creates dir if needed. Folders are remembered for the rest of the
// run so each category is created once.
func (e *Engine) ensureDir(dir string) error {
	if e.madeDirs == nil {
		e.madeDirs = make(map[string]bool)
	}
	if e.madeDirs[dir] {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.FromOS(err, "failed to create destination directory", dir, errors.FileCreateFailed)
	}
	e.madeDirs[dir] = true
	return nil
}

package organize

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"extsort/internal/config"
	"extsort/internal/errors"
	"extsort/internal/log"
	"extsort/pkg/testutils"
	"extsort/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestErrorHandling tests how the engine handles various error conditions
func TestErrorHandling(t *testing.T) {
	tmpDir := t.TempDir()
	srcDir := filepath.Join(tmpDir, "source")
	destDir := filepath.Join(tmpDir, "destination")
	require.NoError(t, os.MkdirAll(srcDir, 0755))
	require.NoError(t, os.MkdirAll(destDir, 0755))

	t.Run("NonExistentSourceFile", func(t *testing.T) {
		engine := New(nil)

		err := engine.MoveFile(filepath.Join(srcDir, "does-not-exist.txt"), filepath.Join(destDir, "target.txt"))
		require.Error(t, err)

		fileErr, ok := err.(*errors.FileError)
		if assert.True(t, ok, "Error should be a *errors.FileError") {
			assert.Equal(t, errors.FileNotFound, fileErr.Kind())
		}
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("DirectoryAsSourceFile", func(t *testing.T) {
		engine := New(nil)

		err := engine.MoveFile(srcDir, filepath.Join(destDir, "target-dir.txt"))
		require.Error(t, err)

		fileErr, ok := err.(*errors.FileError)
		if assert.True(t, ok, "Error should be a *errors.FileError") {
			assert.Equal(t, errors.FileOperationFailed, fileErr.Kind())
		}
	})

	t.Run("DirectoryCreationFailed", func(t *testing.T) {
		srcFile := filepath.Join(srcDir, "dir-test.txt")
		require.NoError(t, os.WriteFile(srcFile, []byte("test content"), 0644))

		// A file where the category folder should be
		blocker := filepath.Join(destDir, "not-a-dir")
		require.NoError(t, os.WriteFile(blocker, []byte("blocking file"), 0644))

		err := New(nil).MoveFile(srcFile, filepath.Join(blocker, "dir-test.txt"))
		require.Error(t, err)

		var fileErr *errors.FileError
		require.True(t, errors.As(err, &fileErr))
		assert.Equal(t, blocker, fileErr.Path())
		assert.FileExists(t, srcFile, "source must stay put when the folder cannot be created")
	})

	t.Run("MissingTargetDirectory", func(t *testing.T) {
		results, err := New(testMap()).Organize(filepath.Join(tmpDir, "nope"))
		require.Error(t, err)
		assert.Nil(t, results)
		assert.True(t, errors.IsDirectoryError(err))
		assert.True(t, errors.IsFatal(err))
	})

	t.Run("TargetIsAFile", func(t *testing.T) {
		file := filepath.Join(tmpDir, "plain.txt")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

		_, err := New(testMap()).Organize(file)
		require.Error(t, err)

		var dirErr *errors.DirectoryError
		require.True(t, errors.As(err, &dirErr))
		assert.Equal(t, errors.NotADirectory, dirErr.Kind())
		assert.FileExists(t, file)
	})
}

// A single file that cannot be moved must not stop the others.
func TestOrganizeContinuesAfterFileError(t *testing.T) {
	tmpDir := t.TempDir()
	testutils.CreateTestFilesWithDefault(t, tmpDir)
	// A plain file named like the Images folder blocks b.png. It is excluded
	// so it stays in place for the whole run.
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "Images"), []byte("blocker"), 0644))

	engine := New(testMap())
	require.NoError(t, engine.SetExcludes([]string{"Images"}))

	results, err := engine.Organize(tmpDir)
	require.NoError(t, err, "per-file failures are not fatal")
	require.Len(t, results, 3)

	byName := map[string]types.OrganizeResult{}
	for _, r := range results {
		byName[filepath.Base(r.SourcePath)] = r
	}

	failed := byName["b.png"]
	assert.Equal(t, types.ActionSkippedError, failed.Action)
	assert.True(t, failed.Failed())
	assert.NotEmpty(t, failed.Error)
	assert.Equal(t, "Images", failed.Category)
	assert.FileExists(t, filepath.Join(tmpDir, "b.png"))

	assert.Equal(t, types.ActionMoved, byName["a.pdf"].Action)
	assert.FileExists(t, filepath.Join(tmpDir, "Documents", "a.pdf"))
	assert.Equal(t, types.ActionMoved, byName["c.xyz"].Action)
	assert.FileExists(t, filepath.Join(tmpDir, types.OthersCategory, "c.xyz"))
}

// A file removed between listing and moving is reported, not fatal.
func TestOrganizeEntryVanishedFile(t *testing.T) {
	tmpDir := t.TempDir()
	engine := New(testMap())

	entry := types.NewFileEntry(tmpDir, "gone.pdf", 0)
	result := engine.organizeEntry(tmpDir, entry)

	assert.Equal(t, types.ActionSkippedError, result.Action)
	assert.Contains(t, result.Error, "gone.pdf")
	assert.Equal(t, "Documents", result.Category)
}

// In dry run the source is still checked, so a file that disappeared is
// reported the same way as in a real run while nothing is created.
func TestOrganizeEntryDryRunChecksSource(t *testing.T) {
	tmpDir := t.TempDir()
	engine := New(testMap())
	engine.SetDryRun(true)

	result := engine.organizeEntry(tmpDir, types.NewFileEntry(tmpDir, "gone.pdf", 0))
	assert.Equal(t, types.ActionSkippedError, result.Action)
	assert.Contains(t, result.Error, "gone.pdf")
	assert.NoDirExists(t, filepath.Join(tmpDir, "Documents"))

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "here.pdf"), []byte("x"), 0644))
	result = engine.organizeEntry(tmpDir, types.NewFileEntry(tmpDir, "here.pdf", 1))
	assert.Equal(t, types.ActionWouldMove, result.Action)
	assert.Empty(t, result.Error)
	assert.NoDirExists(t, filepath.Join(tmpDir, "Documents"))
}

func TestOverwriteIsLogged(t *testing.T) {
	var buf bytes.Buffer
	log.Configure(log.WithOutput(&buf), log.WithLevel("warn"))
	t.Cleanup(func() { log.Configure() })

	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "Documents"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "Documents", "a.pdf"), []byte("old"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "a.pdf"), []byte("new"), 0644))

	results, err := New(testMap()).Organize(tmpDir)
	require.NoError(t, err)
	require.Len(t, results, 1)

	out := buf.String()
	assert.Contains(t, out, "WARN: Destination exists, overwriting")
	assert.Contains(t, out, "destination="+filepath.Join(tmpDir, "Documents", "a.pdf"))
}

func TestSkipReason(t *testing.T) {
	assert.Equal(t, "vanished", skipReason(errors.FromOS(fs.ErrNotExist, "source file error", "a.pdf", errors.FileOperationFailed)))
	assert.Equal(t, "permission", skipReason(errors.FromOS(fs.ErrPermission, "failed to move file", "a.pdf", errors.FileOperationFailed)))
	assert.Equal(t, "io", skipReason(errors.NewFileError("failed to move file", "a.pdf", errors.FileOperationFailed, fmt.Errorf("disk full"))))
}

func TestEnsureDirMemoizes(t *testing.T) {
	tmpDir := t.TempDir()
	engine := New(nil)
	dir := filepath.Join(tmpDir, "Documents")

	require.NoError(t, engine.ensureDir(dir))
	assert.DirExists(t, dir)
	assert.True(t, engine.madeDirs[dir])

	// Creating again is harmless.
	require.NoError(t, engine.ensureDir(dir))
}

func testMap() config.CategoryMap {
	return config.CategoryMap{
		{Name: "Documents", Extensions: []string{".pdf"}},
		{Name: "Images", Extensions: []string{".png"}},
	}
}

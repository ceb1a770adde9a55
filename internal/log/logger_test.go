package log

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"extsort/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capture points the package logger at a buffer for the rest of the test.
func capture(t *testing.T, opts ...Option) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	Configure(append([]Option{WithOutput(&buf)}, opts...)...)
	t.Cleanup(func() {
		Configure()
		SetDebug(false)
	})
	return &buf
}

func TestTextLine(t *testing.T) {
	buf := capture(t)

	LogWithFields(F("destination", "/inbox/Documents/a.pdf")).Warn("Destination exists, overwriting")

	line := strings.TrimSpace(buf.String())
	assert.Regexp(t, regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\] WARN: Destination exists, overwriting destination=/inbox/Documents/a.pdf \(logger_test\.go:\d+\)$`), line)
}

func TestFieldsAreSortedAndQuoted(t *testing.T) {
	buf := capture(t)

	LogWithFields(F("file", "my notes.pdf"), F("category", "Documents"), F("dry_run", true)).Info("Planned")

	out := buf.String()
	assert.Contains(t, out, `INFO: Planned category=Documents dry_run=true file="my notes.pdf"`)
}

func TestLevelFiltering(t *testing.T) {
	buf := capture(t, WithLevel("warn"))

	Infof("Organizing %d files", 3)
	LogWithFields(F("directory", "/inbox")).Info("Organization finished")
	assert.Empty(t, buf.String(), "info is below warn")

	LogWithFields(F("file", "b.png")).Warn("Skipping file")
	LogWithFields(F("error", "boom")).Error("fsnotify watcher error")
	out := buf.String()
	assert.Contains(t, out, "WARN: Skipping file file=b.png")
	assert.Contains(t, out, "ERROR: fsnotify watcher error error=boom")
}

func TestUnknownLevelKeepsDefault(t *testing.T) {
	buf := capture(t, WithLevel("loud"))

	Infof("still %s", "logged")
	assert.Contains(t, buf.String(), "INFO: still logged")
}

func TestDebugNeedsSetDebug(t *testing.T) {
	buf := capture(t, WithLevel("debug"))

	SetDebug(false)
	Debugf("Moving %s", "a.pdf")
	assert.Empty(t, buf.String())

	SetDebug(true)
	Debugf("Moving %s", "a.pdf")
	assert.Contains(t, buf.String(), "DEBUG: Moving a.pdf")
}

func TestErrorFields(t *testing.T) {
	t.Run("directory error", func(t *testing.T) {
		buf := capture(t)
		err := errors.NewDirectoryError("directory not found", "/data/inbox", errors.DirectoryNotFound, nil)

		LogWithError(err).Error("Organization failed")

		out := buf.String()
		assert.Contains(t, out, "dir=/data/inbox")
		assert.Contains(t, out, "error_kind=directory_not_found")
		assert.Contains(t, out, `error="directory not found: /data/inbox"`)
	})

	t.Run("file error", func(t *testing.T) {
		buf := capture(t)
		err := errors.NewFileError("failed to move file", "/inbox/b.png", errors.FileAccessDenied, nil)

		LogWithError(err).With(F("reason", "permission")).Warn("Skipping file")

		out := buf.String()
		assert.Contains(t, out, "path=/inbox/b.png")
		assert.Contains(t, out, "error_kind=file_access_denied")
		assert.Contains(t, out, "reason=permission")
	})

	t.Run("config error", func(t *testing.T) {
		buf := capture(t)
		err := errors.NewConfigError("duplicate category", "Images", errors.InvalidConfig, nil)

		LogWithError(err).Error("Cannot load categories")

		assert.Contains(t, buf.String(), "param=Images")
		assert.Contains(t, buf.String(), "error_kind=invalid_config")
	})

	t.Run("nil error", func(t *testing.T) {
		buf := capture(t)
		LogWithError(nil).Warn("nothing wrong")
		assert.Contains(t, buf.String(), "error=<nil>")
		assert.NotContains(t, buf.String(), "error_kind")
	})
}

func TestJSONOutput(t *testing.T) {
	buf := capture(t, WithJSON(), WithLevel("warn"))

	err := errors.NewDirectoryError("path is not a directory", "/inbox/a.pdf", errors.NotADirectory, nil)
	LogWithError(err).With(F("dry_run", true)).Warn("Organization failed")
	Infof("dropped")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, "Organization failed", entry["message"])
	assert.Equal(t, "/inbox/a.pdf", entry["dir"])
	assert.Equal(t, "not_a_directory", entry["error_kind"])
	assert.Equal(t, true, entry["dry_run"])
	assert.Contains(t, entry["caller"], "logger_test.go:")
	assert.NotEmpty(t, entry["timestamp"])
}

func TestWithCopiesFields(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(WithOutput(&buf)).With(F("directory", "/inbox"))
	child := base.With(F("file", "a.pdf"))

	base.Info("parent")
	assert.Contains(t, buf.String(), "directory=/inbox")
	assert.NotContains(t, buf.String(), "file=a.pdf")

	buf.Reset()
	child.Info("child")
	assert.Contains(t, buf.String(), "directory=/inbox file=a.pdf")
}

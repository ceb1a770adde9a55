package types

import (
	"path/filepath"
	"strings"
)

// FileEntry is a regular file found at the top level of the directory being
// organized.
type FileEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Ext  string `json:"ext"` // lowercase, with leading dot; empty when the name has none
	Size int64  `json:"size"`
}

// NewFileEntry builds an entry for name inside dir.
func NewFileEntry(dir, name string, size int64) FileEntry {
	return FileEntry{
		Name: name,
		Path: filepath.Join(dir, name),
		Ext:  Extension(name),
		Size: size,
	}
}

// Extension returns the lowercased suffix of name starting at its final dot.
// A dot that opens the name (".bashrc") or ends it ("notes.") does not start
// an extension.
func Extension(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[i:])
}

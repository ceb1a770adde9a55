package organize

import (
	"io"
	"os"
	"syscall"

	"extsort/internal/errors"
	"extsort/internal/log"
)

// moveFile renames src to dest, replacing dest if it exists. When the two
// paths are on different filesystems the file is copied and the source
// removed.
func moveFile(src, dest string) error {
	renameErr := os.Rename(src, dest)
	if renameErr == nil {
		return nil
	}

	var linkErr *os.LinkError
	if !errors.As(renameErr, &linkErr) || !errors.Is(linkErr.Err, syscall.EXDEV) {
		return renameErr
	}

	log.LogWithFields(log.F("source", src), log.F("destination", dest)).Debug("Cross-device move, copying")
	if err := copyFile(src, dest); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		log.LogWithFields(log.F("source", src), log.F("error", err)).
			Warn("Copied file but could not remove the original; both copies remain")
	}
	return nil
}

// copyFile streams src to dest, keeping src's permission bits.
func copyFile(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		os.Remove(dest)
		return err
	}
	return out.Close()
}

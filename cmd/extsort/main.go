package main

import (
	"fmt"
	"os"

	"extsort/internal/errors"
)

var version = "dev"

// Exit statuses. Setup problems with the config or the target directory
// exit with exitFatal; bad flags and other command errors with exitUsage.
const (
	exitOK    = 0
	exitFatal = 1
	exitUsage = 2
)

func main() {
	err := NewRootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.IsFatal(err):
		return exitFatal
	default:
		return exitUsage
	}
}

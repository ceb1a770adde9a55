package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"extsort/internal/config"
	"extsort/internal/log"
	"extsort/internal/organize"
	"extsort/internal/report"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"
)

// options holds the flags shared by every command.
type options struct {
	path        string
	configPath  string
	dryRun      bool
	useDefaults bool
	keepConfig  bool
	excludes    []string
	output      string
	debug       bool
	logJSON     bool
}

// NewRootCmd creates the root command. Running it without a subcommand
// organizes the target directory once.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "extsort",
		Short: "Sort the files of a directory into folders by extension",
		Long: `extsort moves every file directly inside a directory into a subfolder
named after its category. Categories come from a config file mapping
folder names to lists of extensions; anything unmatched goes to "Others".`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd.ErrOrStderr(), opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrganize(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.path, "path", "p", "", "Directory to organize (default is current directory)")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Show what would be moved without touching any file")
	flags.StringVarP(&opts.configPath, "config", "c", config.DefaultPath, "Category config file (JSON, or YAML for .yaml/.yml)")
	flags.BoolVar(&opts.useDefaults, "defaults", false, "Use the built-in categories instead of a config file")
	flags.BoolVar(&opts.keepConfig, "keep-config", false, "Leave the config file in place when it lives in the target directory")
	flags.StringArrayVarP(&opts.excludes, "exclude", "x", nil, "Glob of file names to leave in place (repeatable)")
	flags.StringVarP(&opts.output, "output", "o", report.FormatText, "Report format: text, table or json")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flags.BoolVar(&opts.logJSON, "log-json", false, "Write logs as JSON lines")

	rootCmd.AddCommand(newWatchCmd(opts))
	rootCmd.AddCommand(newCategoriesCmd(opts))
	rootCmd.AddCommand(newInitCmd(opts))

	return rootCmd
}

// setupLogging sends logs to w so they never mix with the report on stdout.
func setupLogging(w io.Writer, opts *options) {
	logOpts := []log.Option{log.WithOutput(w), log.WithLevel("warn")}
	if opts.debug {
		logOpts = append(logOpts, log.WithLevel("debug"))
	}
	if opts.logJSON {
		logOpts = append(logOpts, log.WithJSON())
	}
	log.Configure(logOpts...)
	log.SetDebug(opts.debug)
}

// targetDir resolves --path, defaulting to the working directory.
func targetDir(opts *options) (string, error) {
	if opts.path != "" {
		return opts.path, nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("error getting current directory: %w", err)
	}
	return dir, nil
}

// loadCategories reads the config file, or returns the built-in map.
func loadCategories(opts *options) (config.CategoryMap, error) {
	if opts.useDefaults {
		return config.Default(), nil
	}
	return config.Load(opts.configPath)
}

// newEngine builds the engine for dir from the shared flags. A config file
// inside dir is organized like any other file unless --keep-config is set.
func newEngine(opts *options, dir string) (*organize.Engine, error) {
	categories, err := loadCategories(opts)
	if err != nil {
		return nil, err
	}

	engine := organize.New(categories)
	engine.SetDryRun(opts.dryRun)

	excludes := append([]string{}, opts.excludes...)
	if opts.keepConfig && !opts.useDefaults && sameDir(filepath.Dir(opts.configPath), dir) {
		excludes = append(excludes, glob.QuoteMeta(filepath.Base(opts.configPath)))
	}
	if err := engine.SetExcludes(excludes); err != nil {
		return nil, err
	}
	return engine, nil
}

func runOrganize(cmd *cobra.Command, opts *options) error {
	sink, err := report.New(opts.output, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	dir, err := targetDir(opts)
	if err != nil {
		return err
	}
	engine, err := newEngine(opts, dir)
	if err != nil {
		return err
	}

	results, err := engine.Organize(dir)
	if err != nil {
		return err
	}
	return sink.Render(results, engine.IsDryRun())
}

func sameDir(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return false
	}
	if absA == absB {
		return true
	}
	infoA, errA := os.Stat(absA)
	infoB, errB := os.Stat(absB)
	return errA == nil && errB == nil && os.SameFile(infoA, infoB)
}

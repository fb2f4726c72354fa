// Package main is the entry point for the boostnote-to-obsidian CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sleroq/boostnote-to-obsidian/internal/app/exporter"
	"github.com/sleroq/boostnote-to-obsidian/internal/config"
	"github.com/sleroq/boostnote-to-obsidian/internal/logger"
	"github.com/sleroq/boostnote-to-obsidian/internal/styles"
)

// version is set at build time via ldflags.
var version = "dev"

// errNotesFailed reports a run that finished but could not convert every note.
var errNotesFailed = errors.New("some notes failed to convert")

// configErr holds a failure to read an explicitly requested config file.
var configErr error

var rootCmd = &cobra.Command{
	Use:   "boostnote-to-obsidian",
	Short: "Convert Boostnote notes into an Obsidian vault",
	Long: `boostnote-to-obsidian reads a Boostnote storage (the .cson note files and the
boostnote.json folder index) and writes one Markdown file per note into an
Obsidian vault, grouped into one directory per Boostnote folder.

Markdown notes are copied verbatim. Snippet notes become fenced code blocks.
Trashed notes are skipped and notes that cannot be parsed are reported at the
end of the run.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runConvert,
}

func init() {
	cobra.OnInitialize(initConfig)
	config.SetDefaults(viper.GetViper())

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./boostnote-to-obsidian.yaml or ~/.config/boostnote-to-obsidian/boostnote-to-obsidian.yaml)")

	flags := rootCmd.Flags()
	flags.String("notes", "", "directory containing the Boostnote .cson note files")
	flags.String("folders", "", "path to the Boostnote boostnote.json folder index")
	flags.String("output", "", "output Obsidian vault directory")
	flags.Bool("frontmatter", false, "prepend YAML frontmatter with note metadata")
	flags.Bool("timestamps", false, "set file times from the note's createdAt/updatedAt")
	flags.Bool("progress", false, "show a progress bar on stderr")
	flags.String("log-level", "warn", "log level: debug, info, warn, error")
	flags.Bool("fail-on-error", false, "exit with status 2 when any note fails to convert")

	bindings := map[string]string{
		config.KeyNotes:       "notes",
		config.KeyFolders:     "folders",
		config.KeyOutput:      "output",
		config.KeyFrontmatter: "frontmatter",
		config.KeyTimestamps:  "timestamps",
		config.KeyProgress:    "progress",
		config.KeyLogLevel:    "log-level",
		config.KeyFailOnError: "fail-on-error",
	}
	for key, name := range bindings {
		if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	config.ConfigureSources(viper.GetViper(), cfgFile)

	err := viper.ReadInConfig()
	if err == nil {
		fmt.Fprintln(os.Stderr, styles.DimStyle.Render("Using config file: "+viper.ConfigFileUsed()))
		return
	}
	if cfgFile != "" {
		configErr = fmt.Errorf("read config %s: %w", cfgFile, err)
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	if configErr != nil {
		return configErr
	}

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	exp := exporter.Exporter{
		NotesDir:        cfg.NotesDir,
		FolderIndexPath: cfg.FolderIndex,
		OutputDir:       cfg.OutputDir,
		Frontmatter:     cfg.Frontmatter,
		ApplyTimestamps: cfg.Timestamps,
		ShowProgressBar: cfg.ProgressBar,
		Out:             cmd.OutOrStdout(),
		Log:             logger.New(os.Stderr, level),
	}

	report, err := exp.Run()
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	exporter.WriteSummary(cmd.OutOrStdout(), report)
	if cfg.FailOnError && report.HasErrors() {
		return errNotesFailed
	}
	return nil
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errNotesFailed):
		return 2
	default:
		return 1
	}
}

func main() {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errNotesFailed) {
		fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("Error: ")+err.Error())
	}
	os.Exit(exitCode(err))
}

// Package cli implements the panelprep command-line interface.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/panelprep/panelprep/pkg/buildinfo"
	"github.com/panelprep/panelprep/pkg/config"
)

// appName is the application name used for display and default filenames.
const appName = "panelprep"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Panelprep prepares gerber archives for PCB panelization",
		Long:         `Panelprep takes a zipped gerber export, repeats the board into a framed panel with support bars and mousebites, and writes a .gerberset descriptor plus a plain-text report for the fabrication handoff.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.panelizeCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadSettings resolves the settings for a run. An explicit path must load;
// otherwise the default settings file is used when present in the working
// directory, falling back to the shipped defaults. The returned source is
// empty when defaults were used.
func (c *CLI) loadSettings(path string) (config.Settings, string, error) {
	if path != "" {
		s, err := config.Load(path)
		return s, path, err
	}
	if _, err := os.Stat(config.DefaultFilename); err == nil {
		s, err := config.Load(config.DefaultFilename)
		return s, config.DefaultFilename, err
	}
	return config.Default(), "", nil
}

package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/panelprep/panelprep/pkg/config"
)

// configCommand groups the settings management subcommands.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage panelprep settings",
	}

	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configShowCommand())

	return cmd
}

// configInitCommand writes the shipped default settings to a file for editing.
func (c *CLI) configInitCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default settings file",
		Long: `Write the default settings file.

The file documents every knob: panel geometry, fabrication limits, and the
filename conventions used to match board files. Existing files are never
overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteDefault(output); err != nil {
				return err
			}
			printSuccess("Wrote %s", output)
			printNextStep("Review the fabrication limits", appName+" config show")
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", config.DefaultFilename, "settings file to create")

	return cmd
}

// configShowCommand prints the effective settings for the working directory.
func (c *CLI) configShowCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, source, err := c.loadSettings(configPath)
			if err != nil {
				return err
			}
			if source == "" {
				source = "built-in defaults"
			}
			printInfo("Settings from %s", source)
			printNewline()
			printSettings(&settings)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "settings file (default: "+appName+".toml if present)")

	return cmd
}

func printSettings(s *config.Settings) {
	p := s.PanelOptions
	printKeyValue("Mousebite", fmt.Sprintf("%g mm", p.MousebiteDiameter))
	printKeyValue("Route", fmt.Sprintf("%g mm", p.RouteDiameter))
	printKeyValue("Frame", fmt.Sprintf("%g mm", p.PanelWidth))
	printKeyValue("Support bar", fmt.Sprintf("%g mm", p.SupportBarWidth))
	printKeyValue("Precision", fmt.Sprintf("%d decimals", p.DecimalPrecision))
	printKeyValue("Export folder", p.DefaultExportFolderName)

	f := s.Fabrication
	printNewline()
	printKeyValue("Process max", fmt.Sprintf("%g x %g mm", f.MaxPanelWidth, f.MaxPanelHeight))
	printKeyValue("Manufacturer", fmt.Sprintf("%g x %g mm", f.MaxManufacturerWidth, f.MaxManufacturerHeight))
	area := fmt.Sprintf("%g dm²", f.MaxPanelSurfaceArea)
	if !f.EnforceSurfaceArea {
		area += " (not enforced)"
	}
	printKeyValue("Max area", area)

	printNewline()
	printKeyValue("Required", strings.Join(s.GerberFilenames.Required, ", "))
	patterns := s.GerberFilenames.Patterns()
	roles := make([]string, 0, len(patterns))
	for role := range patterns {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	for _, role := range roles {
		if len(patterns[role]) > 0 {
			printDetail("%-18s %s", role, strings.Join(patterns[role], ", "))
		}
	}
}

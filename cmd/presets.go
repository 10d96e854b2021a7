package main

import (
	"fmt"
	"os"

	"sgsd/internal/core/countdown"
	"sgsd/internal/core/model"
	"sgsd/internal/platform"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List countdown presets and glyph themes",
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := newListing("PRESET", "DURATION", "MESSAGE")
			for _, name := range model.PresetNames() {
				preset, err := model.LookupPreset(name)
				if err != nil {
					return err
				}
				presets.Row(preset.Name, countdown.Clock(preset.Duration), preset.Notification.Body)
			}

			themes := newListing("THEME", "IDLE", "RUNNING")
			for _, name := range model.ThemeNames() {
				theme, err := model.LookupTheme(name)
				if err != nil {
					return err
				}
				themes.Row(theme.Name, theme.Glyphs.Idle, theme.Glyphs.Running)
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", presets.Render(), themes.Render())
			return err
		},
	}
}

var (
	listingHeader = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	listingCell   = lipgloss.NewStyle().Padding(0, 1)
)

func newListing(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return listingHeader
			}
			return listingCell
		})
}

func autostartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autostart",
		Short: "Start SGSD in the tray when you log in",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "enable",
		Short: "Register SGSD to start at login",
		RunE: func(cmd *cobra.Command, args []string) error {
			execPath, err := os.Executable()
			if err != nil {
				return fmt.Errorf("resolve executable: %w", err)
			}
			if err := platform.NewService().EnableAutostart(appName, execPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "autostart enabled for %s\n", execPath)
			return nil
		},
	}, &cobra.Command{
		Use:   "disable",
		Short: "Stop starting SGSD at login",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := platform.NewService().DisableAutostart(appName); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "autostart disabled")
			return nil
		},
	})
	return cmd
}

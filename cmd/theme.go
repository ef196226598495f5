package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/cardex/internal/config"
	"github.com/arcanaland/cardex/internal/theme"
)

// themeCmd shows the persisted dark mode preference
var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show or toggle the dark mode preference",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pref := theme.Load(config.NewThemeStore(cfgFile), nil)
		printTheme(cmd, pref)
		return nil
	},
}

// themeToggleCmd flips and saves the preference
var themeToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Toggle dark mode and save the preference",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pref := theme.Load(config.NewThemeStore(cfgFile), nil)
		if _, err := pref.Toggle(); err != nil {
			return err
		}
		printTheme(cmd, pref)
		return nil
	},
}

func printTheme(cmd *cobra.Command, pref *theme.Preference) {
	mode := "light"
	if pref.Dark() {
		mode = "dark"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s mode\n", pref.Indicator(), mode)
}

func init() {
	RootCmd.AddCommand(themeCmd)
	themeCmd.AddCommand(themeToggleCmd)
}

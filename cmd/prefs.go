package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/zhubert/parley/internal/config"
	"github.com/zhubert/parley/internal/ui"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show preferences",
	Long: `Shows the boolean preferences stored in ~/.parley/config.json.
The same preferences can be changed from the preferences dialog (",").`,
	Args: cobra.NoArgs,
	RunE: runPrefsShow,
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show preferences",
	Args:  cobra.NoArgs,
	RunE:  runPrefsShow,
}

var prefsSetCmd = &cobra.Command{
	Use:     "set <key> <true|false>",
	Short:   "Change a preference",
	Example: "  parley prefs set hide-offline true",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		return setPreference(cmd.OutOrStdout(), cfg, args[0], args[1])
	},
}

var prefsThemeCmd = &cobra.Command{
	Use:     "theme [name]",
	Short:   "Show or change the color theme",
	Example: "  parley prefs theme nord",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		if len(args) == 0 {
			showThemes(cmd.OutOrStdout(), cfg)
			return nil
		}
		return setTheme(cmd.OutOrStdout(), cfg, args[0])
	},
}

func init() {
	prefsCmd.AddCommand(prefsShowCmd, prefsSetCmd, prefsThemeCmd)
	rootCmd.AddCommand(prefsCmd)
}

func runPrefsShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	showPreferences(cmd.OutOrStdout(), cfg)
	return nil
}

func showPreferences(out io.Writer, cfg *config.Config) {
	width := 0
	for _, p := range cfg.Preferences() {
		width = max(width, len(p.Key))
	}
	for _, p := range cfg.Preferences() {
		fmt.Fprintf(out, "%-*s  %-5t  %s\n", width, p.Key, p.Value, p.Label)
	}
}

func setPreference(out io.Writer, cfg *config.Config, key, raw string) error {
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fmt.Errorf("invalid value %q for %s, expected true or false", raw, key)
	}
	if err := cfg.SetPreference(key, value); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("error saving config: %w", err)
	}
	fmt.Fprintf(out, "%s = %t\n", key, value)
	return nil
}

// showThemes lists the built-in themes, marking the configured one.
func showThemes(out io.Writer, cfg *config.Config) {
	current := ui.GetThemeName(cfg.GetTheme())
	for _, name := range ui.ThemeNames() {
		marker := "  "
		if name == current {
			marker = "* "
		}
		fmt.Fprintf(out, "%s%-12s  %s\n", marker, name, ui.GetTheme(name).Name)
	}
}

func setTheme(out io.Writer, cfg *config.Config, name string) error {
	if !ui.IsTheme(name) {
		return fmt.Errorf("unknown theme %q", name)
	}
	cfg.SetTheme(name)
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("error saving config: %w", err)
	}
	fmt.Fprintf(out, "theme = %s\n", name)
	return nil
}

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/poolcalc/internal/adapters/driving/cli/report"
)

var settingsJSON bool

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage calculator defaults",
	Long: `View and change the defaults applied when a command flag is not given.

Settings are stored in ~/.poolcalc/config.toml (or $POOLCALC_CONFIG_DIR).`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Long: `Change one setting. Pass an empty value to clear an optional setting
such as pooling.max_volume_ul.

Example:
  poolcalc settings set pooling.scaling_factor 0.15`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore every default",
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.PersistentFlags().BoolVar(&settingsJSON, "json", false, "output settings as JSON")
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func requireSettings() error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	return nil
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if err := requireSettings(); err != nil {
		return err
	}

	if settingsJSON {
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		return writeJSON(cmd.OutOrStdout(), settings)
	}

	values, err := settingsService.Values()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	r := report.New(cmd.OutOrStdout())
	r.Title("Current Settings")
	r.KeyValues(settingsService.Keys(), values)

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		r.Warning("%v", err)
		cmd.Println("Run 'poolcalc settings reset' to restore the defaults.")
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if err := requireSettings(); err != nil {
		return err
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	if value == "" {
		cmd.Printf("Cleared %s\n", key)
	} else {
		cmd.Printf("Set %s = %s\n", key, value)
	}
	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if err := requireSettings(); err != nil {
		return err
	}

	if err := settingsService.Reset(); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}
	cmd.Println("Settings reset to defaults.")
	return nil
}

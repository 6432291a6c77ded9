package cmd

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
	config "github.com/tupyy/editor-heartbeat/configuration"
	"github.com/tupyy/editor-heartbeat/internal/settings"
)

var boolSettings = map[string]bool{
	settings.Enabled:              true,
	settings.EnableVersionControl: true,
	settings.ApiKey:               false,
	settings.BaseURL:              false,
	settings.ActiveProject:        false,
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Read and write heartbeat settings",
}

var settingsGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print settings",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := settings.NewStore(config.GetSettingsFile(), config.GetAppName())
		if err != nil {
			return err
		}

		keys := make([]string, 0, len(boolSettings))
		if len(args) == 1 {
			if _, ok := boolSettings[args[0]]; !ok {
				return fmt.Errorf("unknown setting '%s'", args[0])
			}
			keys = append(keys, args[0])
		} else {
			for k := range boolSettings {
				keys = append(keys, k)
			}
			sort.Strings(keys)
		}

		for _, k := range keys {
			value := store.String(k)
			if boolSettings[k] {
				value = strconv.FormatBool(store.Bool(k))
			}
			if k == settings.ApiKey && value != "" {
				value = "********"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", k, value)
		}

		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Write a setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		isBool, ok := boolSettings[args[0]]
		if !ok {
			return fmt.Errorf("unknown setting '%s'", args[0])
		}

		store, err := settings.NewStore(config.GetSettingsFile(), config.GetAppName())
		if err != nil {
			return err
		}

		if !isBool {
			store.SetString(args[0], args[1])
			return nil
		}

		value, err := strconv.ParseBool(args[1])
		if err != nil {
			return fmt.Errorf("setting '%s' requires a boolean '%w'", args[0], err)
		}
		store.SetBool(args[0], value)

		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	prefix         = "EDITOR_HEARTBEAT"
	logLevel       = "log_level"
	tickPeriod     = "tick_period"
	settingsFile   = "settings_file"
	metricsAddress = "metrics_address"
	editor         = "editor"
	language       = "language"
	appName        = "app_name"
	pluginVersion  = "plugin_version"
	workDir        = "work_dir"

	defaultLogLevel      = "info"
	defaultTickPeriod    = 100 * time.Millisecond
	defaultEditor        = "Unity"
	defaultLanguage      = "Unity"
	defaultPluginVersion = "1.0.0"
	defaultSettingsFile  = "settings.yaml"
	settingsFolder       = ".editor-heartbeat"
)

var v = viper.New()

func InitConfiguration(cmd *cobra.Command, configFile string) error {
	v = viper.New()

	v.SetEnvPrefix(prefix)
	v.AutomaticEnv() // read in environment variables that match

	if len(configFile) > 0 {
		v.SetConfigFile(configFile)

		err := v.ReadInConfig()
		if err != nil {
			zap.S().Errorw("cannot read config file", "error", err, "config file", configFile)
			return fmt.Errorf("fail to read config file '%w'", err)
		}

		zap.S().Infof("using config file: %v", v.ConfigFileUsed())
	}

	// Bind the current command's flags to viper
	bindFlags(cmd, v)

	return nil
}

// Bind each cobra flag to its associated viper configuration (config file and environment variable)
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// replace - with _ to match yaml format
		flagName := strings.ReplaceAll(f.Name, "-", "_")

		// Environment variables can't have dashes in them, so bind them to their equivalent
		// keys with underscores.
		envVarSuffix := strings.ToUpper(flagName)
		_ = v.BindEnv(flagName, fmt.Sprintf("%s_%s", prefix, envVarSuffix))

		// Apply the viper config value to the flag when the flag is not set and viper has a value
		// and the other way around.
		if !f.Changed && v.IsSet(flagName) {
			val := v.Get(flagName)
			_ = cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val))
		} else if f.Changed {
			v.Set(flagName, f.Value.String())
		}
	})
}

func GetLogLevel() string {
	if !v.IsSet(logLevel) {
		return defaultLogLevel
	}

	return v.GetString(logLevel)
}

func GetTickPeriod() time.Duration {
	if !v.IsSet(tickPeriod) {
		return defaultTickPeriod
	}

	d := v.GetDuration(tickPeriod)
	if d <= 0 {
		return defaultTickPeriod
	}

	return d
}

// GetSettingsFile returns the path of the heartbeat settings file.
func GetSettingsFile() string {
	if v.IsSet(settingsFile) && v.GetString(settingsFile) != "" {
		return v.GetString(settingsFile)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(settingsFolder, defaultSettingsFile)
	}

	return filepath.Join(home, settingsFolder, defaultSettingsFile)
}

// GetMetricsAddress returns an empty string if metrics are disabled.
func GetMetricsAddress() string {
	return v.GetString(metricsAddress)
}

func GetEditor() string {
	if !v.IsSet(editor) {
		return defaultEditor
	}

	return v.GetString(editor)
}

func GetLanguage() string {
	if !v.IsSet(language) {
		return defaultLanguage
	}

	return v.GetString(language)
}

func GetPluginVersion() string {
	if !v.IsSet(pluginVersion) {
		return defaultPluginVersion
	}

	return v.GetString(pluginVersion)
}

// GetWorkDir returns the directory of the project. Default is the working directory.
func GetWorkDir() string {
	if v.IsSet(workDir) && v.GetString(workDir) != "" {
		return v.GetString(workDir)
	}

	wd, err := os.Getwd()
	if err != nil {
		return "."
	}

	return wd
}

// GetAppName returns the name of the host application.
// It defaults to the name of the project directory.
func GetAppName() string {
	if v.IsSet(appName) && v.GetString(appName) != "" {
		return v.GetString(appName)
	}

	return filepath.Base(GetWorkDir())
}

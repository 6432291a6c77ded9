package cmd

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	config "github.com/tupyy/editor-heartbeat/configuration"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configFile     string
	logLevel       string
	settingsFile   string
	metricsAddress string
	appName        string
	workDir        string
)

var rootCmd = &cobra.Command{
	Use:   "editor-heartbeat",
	Short: "Send editor activity heartbeats",
	Long: `Reads host events from stdin, one per line: "<kind> [scene path]".
Kinds: update, after_reload, play_mode_changed, property_context_menu, hierarchy_changed,
scene_saved, scene_opened, scene_closing, scene_created and reload.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.InitConfiguration(cmd, configFile); err != nil {
			return err
		}

		zap.ReplaceGlobals(setupLogger(config.GetLogLevel()))

		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		defer zap.L().Sync() //nolint:errcheck

		ctx, cancel := withInterrupt(cmd.Context())
		defer cancel()

		actions := make(chan action)
		go readActions(ctx, os.Stdin, actions)

		return run(ctx, actions)
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level")
	rootCmd.PersistentFlags().StringVar(&settingsFile, "settings-file", "", "heartbeat settings file (yaml, json or toml by extension, yaml without one). Default is $HOME/.editor-heartbeat/settings.yaml")
	rootCmd.PersistentFlags().StringVar(&metricsAddress, "metrics-address", "", "address where metrics are exposed. Disabled if empty")
	rootCmd.PersistentFlags().StringVar(&appName, "app-name", "", "name of the host application. Default is the name of the work directory")
	rootCmd.PersistentFlags().StringVar(&workDir, "work-dir", "", "project directory. Default is the working directory")
	rootCmd.PersistentFlags().Duration("tick-period", 100*time.Millisecond, "period of the host update event")
	rootCmd.PersistentFlags().String("editor", "Unity", "name of the editor")
	rootCmd.PersistentFlags().String("plugin-version", "1.0.0", "version reported in the user agent")

	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(settingsCmd)
}

// withInterrupt returns a context cancelled on SIGINT.
func withInterrupt(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	go func() {
		done := make(chan os.Signal, 1)
		signal.Notify(done, os.Interrupt)
		defer signal.Stop(done)

		select {
		case <-done:
			zap.S().Info("interrupted")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

func setupLogger(level string) *zap.Logger {
	loggerCfg := &zap.Config{
		Level:    zap.NewAtomicLevelAt(zapcore.InfoLevel),
		Encoding: "json",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "time",
			LevelKey:       "severity",
			NameKey:        "logger",
			CallerKey:      "caller",
			MessageKey:     "message",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.RFC3339TimeEncoder,
			EncodeDuration: zapcore.MillisDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		// stdout is reserved to the host
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	atomicLogLevel, err := zap.ParseAtomicLevel(level)
	if err == nil {
		loggerCfg.Level = atomicLogLevel
	}

	plain, err := loggerCfg.Build(zap.AddStacktrace(zap.DPanicLevel))
	if err != nil {
		panic(err)
	}

	return plain
}

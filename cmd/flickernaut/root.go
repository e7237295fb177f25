package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/flickernaut"
	"github.com/aretw0/flickernaut/internal/config"
)

var (
	verbose      bool
	settingsPath string
	configPath   string

	// cfg is loaded before any subcommand runs.
	cfg = config.Default()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "flickernaut",
	Short: "Manage the \"open with\" entries of the file manager context menu",
	Long: `Flickernaut keeps a list of editors and applications offered in the
Nautilus context menu. This tool inspects and edits that list, runs the
settings migration and previews the menu for a selection.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		loaded, err := config.Load(configPath)
		if err != nil {
			fatal("Failed to load config", err)
		}
		cfg = loaded

		level := cfg.LogLevel
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "Settings file (default ~/.config/flickernaut/settings.yaml)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Tool config file (default ~/.config/flickernaut/config.toml)")
}

// openSession opens the settings selected by --settings, then the config
// file, then the default location.
func openSession(opts ...flickernaut.Option) *flickernaut.Session {
	path := settingsPath
	if path == "" {
		path = cfg.SettingsPath
	}

	base := []flickernaut.Option{
		flickernaut.WithLogger(slog.Default()),
		flickernaut.WithIDGenerator(cfg.IDGenerator()),
	}
	if len(cfg.RestartCommand) > 0 {
		base = append(base, flickernaut.WithRestartCommand(cfg.RestartCommand...))
	}

	session, err := flickernaut.Open(path, append(base, opts...)...)
	if err != nil {
		fatal("Failed to open settings", err)
	}
	return session
}

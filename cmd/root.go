package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/plume/internal/app"
	"github.com/zjrosen/plume/internal/config"
	"github.com/zjrosen/plume/internal/editor"
	"github.com/zjrosen/plume/internal/infrastructure/sqlite"
	"github.com/zjrosen/plume/internal/log"
	"github.com/zjrosen/plume/internal/tracing"
	"github.com/zjrosen/plume/internal/ui/styles"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	debugMode bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:     "plume <file>",
	Short:   "A modal text editor for the terminal",
	Long:    `A terminal text editor with vim-style modal editing: visual and visual-line selections, multiple carets, and a per-file cursor session that survives restarts.`,
	Version: version,
	Args:    cobra.ExactArgs(1),
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/plume/config.yaml)")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false,
		"write debug.log and enable the ctrl+x log overlay")
	rootCmd.Flags().String("theme", "",
		"theme mode for this run: auto, dark, or light")

	// Bind flags to viper
	_ = viper.BindPFlag("theme.mode", rootCmd.Flags().Lookup("theme"))
}

func initConfig() {
	defaults := config.DefaultConfig()
	viper.SetDefault("editor.tab_width", defaults.Editor.TabWidth)
	viper.SetDefault("editor.auto_reload", defaults.Editor.AutoReload)
	viper.SetDefault("editor.scroll_margin", defaults.Editor.ScrollMargin)
	viper.SetDefault("theme.mode", defaults.Theme.Mode)
	viper.SetDefault("session.restore", defaults.Session.Restore)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .plume/config.yaml (current directory)
		// 2. ~/.config/plume/config.yaml (user config)
		if _, err := os.Stat(".plume/config.yaml"); err == nil {
			viper.SetConfigFile(".plume/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "plume"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere. An editor runs in arbitrary
		// directories, so the commented default goes to the user config
		// dir rather than the current directory.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if home, homeErr := os.UserHomeDir(); homeErr == nil {
				defaultPath := filepath.Join(home, ".config", "plume", "config.yaml")
				if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
					viper.SetConfigFile(defaultPath)
					_ = viper.ReadInConfig()
				}
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runApp(cmd *cobra.Command, args []string) error {
	if os.Getenv("PLUME_DEBUG") != "" {
		debugMode = true
	}

	// Fill the derived traces path before validating so an enabled file
	// exporter without an explicit file_path still passes.
	if cfg.Tracing.Enabled && cfg.Tracing.Exporter == "file" && cfg.Tracing.FilePath == "" {
		cfg.Tracing.FilePath = config.DefaultTracesFilePath()
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if debugMode {
		cleanup, err := log.InitWithTeaLog("debug.log", "plume")
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer cleanup()
		log.Info(log.CatConfig, "config loaded", "file", viper.ConfigFileUsed())
	}

	tp, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("starting tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = tp.Shutdown(ctx)
	}()

	if err := styles.Apply(styles.ThemeConfig{
		Mode:   cfg.Theme.Mode,
		Colors: cfg.Theme.FlattenedColors(),
	}); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}

	absPath, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}
	ed, err := editor.Open(absPath,
		editor.WithTabWidth(cfg.Editor.TabWidth),
		editor.WithTracer(tp.Tracer()),
	)
	if err != nil {
		return fmt.Errorf("opening %s: %w", args[0], err)
	}

	// A broken session store downgrades to an editor without cursor
	// persistence rather than refusing to start.
	dbPath := cfg.Session.DBPath
	if dbPath == "" {
		dbPath = config.DefaultSessionDBPath()
	}
	db, err := sqlite.NewDB(dbPath)
	if err != nil {
		log.ErrorErr(log.CatStore, "session store unavailable", err, "path", dbPath)
		db = nil
	}

	// Store the config file path so theme changes can be saved back
	configFilePath := viper.ConfigFileUsed()

	// Click zones need a global manager before any View marks them
	zone.NewGlobal()

	model := app.New(ed, cfg, db, tp.Tracer(), configFilePath, debugMode)
	p := tea.NewProgram(
		&model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()

	// Flush the session row and stop the watcher before the process exits
	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

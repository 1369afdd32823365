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
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/fold/internal/app"
	"github.com/zjrosen/fold/internal/config"
	"github.com/zjrosen/fold/internal/docfile"
	"github.com/zjrosen/fold/internal/document"
	"github.com/zjrosen/fold/internal/flags"
	"github.com/zjrosen/fold/internal/infrastructure/sqlite"
	"github.com/zjrosen/fold/internal/log"
	"github.com/zjrosen/fold/internal/paths"
	"github.com/zjrosen/fold/internal/sessions"
	"github.com/zjrosen/fold/internal/telemetry"
	"github.com/zjrosen/fold/internal/templates"
	"github.com/zjrosen/fold/internal/ui/styles"
)

func init() {
	// Force lipgloss/termenv to query the terminal background color BEFORE
	// the Bubble Tea program starts. Otherwise the terminal's OSC 11
	// response races with the input loop and lands in the buffer as text.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version      = "dev"
	cfgFile      string
	debugMode    bool
	templateName string
)

var rootCmd = &cobra.Command{
	Use:     "fold [file]",
	Short:   "A terminal editor for structured documents",
	Long: `Fold is a terminal editor for structurally rich documents: headings,
quotes, nested lists and checklists, and inline styled text, edited
through a WordPerfect-style reveal codes view.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runApp,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .fold/config.yaml, then ~/.config/fold/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false,
		"write debug logs and enable the F12 log overlay")
	rootCmd.Flags().StringVarP(&templateName, "template", "t", "",
		"start a new document from the named template")
	rootCmd.Flags().Bool("no-auto-reload", false,
		"do not reload the buffer when the file changes on disk")
	rootCmd.Flags().Bool("reveal-codes", false,
		"start with style boundary markers visible")
}

// loadConfig resolves and reads the configuration for a file edited in
// fileDir. The key delimiter is "::" so theme color overrides can use dot
// notation ("text.primary") without viper exploding them into nested maps.
func loadConfig(fileDir string) (config.Config, error) {
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))

	defaults := config.Defaults()
	v.SetDefault("auto_reload", defaults.AutoReload)
	v.SetDefault("ui::show_status_bar", defaults.UI.ShowStatusBar)
	v.SetDefault("ui::show_breadcrumbs", defaults.UI.ShowBreadcrumbs)
	v.SetDefault("ui::markdown_style", defaults.UI.MarkdownStyle)
	v.SetDefault("ui::mouse_enabled", defaults.UI.MouseEnabled)
	v.SetDefault("editor::wrap_width", defaults.Editor.WrapWidth)
	v.SetDefault("editor::max_wrap_width", defaults.Editor.MaxWrapWidth)
	v.SetDefault("editor::left_padding", defaults.Editor.LeftPadding)
	v.SetDefault("editor::reveal_codes", defaults.Editor.RevealCodes)
	v.SetDefault("sessions::restore", defaults.Sessions.Restore)
	v.SetDefault("tracing::exporter", defaults.Tracing.Exporter)
	v.SetDefault("tracing::otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	v.SetDefault("tracing::sample_rate", defaults.Tracing.SampleRate)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return config.Config{}, fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
	} else {
		found := false
		for _, candidate := range paths.ConfigFileCandidates(fileDir) {
			if _, err := os.Stat(candidate); err == nil {
				v.SetConfigFile(candidate)
				if err := v.ReadInConfig(); err != nil {
					return config.Config{}, fmt.Errorf("reading config %s: %w", candidate, err)
				}
				found = true
				break
			}
		}
		if !found {
			// First run: create the user-level config so the options are
			// discoverable, then carry on with defaults if that fails.
			userConfig := filepath.Join(paths.ConfigDir(), "config.yaml")
			if err := config.WriteDefaultConfig(userConfig); err == nil {
				v.SetConfigFile(userConfig)
				_ = v.ReadInConfig()
			}
		}
	}

	var cfg config.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return config.Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadDocument opens the file if it exists, otherwise materializes a
// template or a blank buffer.
func loadDocument(filePath string) (*document.Document, error) {
	if filePath != "" {
		if _, err := os.Stat(filePath); err == nil {
			return docfile.Load(filePath)
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("opening %s: %w", filePath, err)
		}
	}
	if templateName != "" {
		return templates.Load(templateName)
	}
	return document.New().WithParagraphs(document.NewTextParagraph("")), nil
}

// openSessions opens the session store, or returns nil when persistence is
// disabled or the store cannot be opened. The editor works without it.
func openSessions(cfg config.Config) (*sessions.Service, func()) {
	if !cfg.Sessions.Restore {
		return nil, func() {}
	}

	dbPath := cfg.Sessions.DBPath
	if dbPath == "" {
		dbPath = paths.SessionDBPath()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		log.Warn(log.CatDB, "Session dir create failed", "error", err.Error())
		return nil, func() {}
	}

	db, err := sqlite.NewDB(dbPath)
	if err != nil {
		log.Warn(log.CatDB, "Session store unavailable", "error", err.Error())
		return nil, func() {}
	}
	return sessions.NewService(db.SessionRepository(), false), func() { _ = db.Close() }
}

func runApp(cmd *cobra.Command, args []string) error {
	var filePath string
	if len(args) > 0 {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolving %s: %w", args[0], err)
		}
		filePath = abs
	}

	fileDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}
	if filePath != "" {
		fileDir = filepath.Dir(filePath)
	}

	cfg, err := loadConfig(fileDir)
	if err != nil {
		return err
	}

	if noAutoReload, _ := cmd.Flags().GetBool("no-auto-reload"); noAutoReload {
		cfg.AutoReload = false
	}
	if reveal, _ := cmd.Flags().GetBool("reveal-codes"); reveal {
		cfg.Editor.RevealCodes = true
	}

	if debugMode || os.Getenv("FOLD_DEBUG") != "" {
		debugMode = true
		logPath := filepath.Join(paths.ConfigDir(), "debug.log")
		_ = os.MkdirAll(filepath.Dir(logPath), 0o750)
		if cleanup, err := log.InitWithTeaLog(logPath, "fold"); err == nil {
			defer cleanup()
		}
	}

	featureFlags := flags.New(cfg.Flags)
	if featureFlags.Enabled(flags.FlagRenderTracing) {
		cfg.Tracing.Enabled = true
		cfg.Tracing.SampleRate = 1.0
	}

	lipgloss.SetColorProfile(termenv.ColorProfile())
	if err := styles.ApplyTheme(styles.ThemeConfig{
		Preset: cfg.Theme.Preset,
		Mode:   cfg.Theme.Mode,
		Colors: cfg.Theme.FlattenedColors(),
	}); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}

	provider, err := telemetry.NewProvider(cfg.Tracing.Telemetry())
	if err != nil {
		log.Warn(log.CatConfig, "Telemetry init failed", "error", err.Error())
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			_ = provider.Shutdown(ctx)
			cancel()
		}()
	}

	doc, err := loadDocument(filePath)
	if err != nil {
		return err
	}

	sessionService, closeSessions := openSessions(cfg)
	defer closeSessions()

	zone.NewGlobal()

	model := app.New(app.Options{
		Config:    cfg,
		FilePath:  filePath,
		Document:  doc,
		Sessions:  sessionService,
		DebugMode: debugMode,
	})

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.MouseEnabled {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(&model, opts...)
	_, err = p.Run()

	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

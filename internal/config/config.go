// Package config provides configuration types and defaults for fold.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zjrosen/fold/internal/log"
	"github.com/zjrosen/fold/internal/paths"
	"github.com/zjrosen/fold/internal/telemetry"
)

// Config holds all configuration options for fold.
type Config struct {
	AutoReload bool            `mapstructure:"auto_reload"`
	UI         UIConfig        `mapstructure:"ui"`
	Editor     EditorConfig    `mapstructure:"editor"`
	Theme      ThemeConfig     `mapstructure:"theme"`
	Sessions   SessionsConfig  `mapstructure:"sessions"`
	Tracing    TracingConfig   `mapstructure:"tracing"`
	Flags      map[string]bool `mapstructure:"flags"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowStatusBar   bool   `mapstructure:"show_status_bar"`
	ShowBreadcrumbs bool   `mapstructure:"show_breadcrumbs"` // Path breadcrumbs in the status bar
	MarkdownStyle   string `mapstructure:"markdown_style"`   // "dark" (default) or "light"
	MouseEnabled    bool   `mapstructure:"mouse_enabled"`    // Click-to-position and wheel scrolling
}

// EditorConfig holds editing and layout configuration options.
type EditorConfig struct {
	// WrapWidth fixes the wrap width in columns. 0 follows the window.
	WrapWidth int `mapstructure:"wrap_width"`

	// MaxWrapWidth caps the wrap width when following the window.
	// 0 disables the cap.
	MaxWrapWidth int `mapstructure:"max_wrap_width"`

	// LeftPadding is the gutter width in columns.
	LeftPadding int `mapstructure:"left_padding"`

	// RevealCodes controls whether style boundary markers start visible.
	RevealCodes bool `mapstructure:"reveal_codes"`
}

// SessionsConfig holds session persistence configuration options.
type SessionsConfig struct {
	// Restore reopens a file at its last cursor position.
	Restore bool `mapstructure:"restore"`

	// DBPath overrides the session database location.
	// Default: derived from the user data dir at runtime.
	DBPath string `mapstructure:"db_path"`
}

// ThemeConfig holds all theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base (optional).
	// Valid values: "default", "catppuccin-mocha", "catppuccin-latte",
	// "dracula", "nord", "high-contrast"
	Preset string `mapstructure:"preset"`

	// Mode forces light or dark mode. If empty, uses terminal detection.
	// Valid values: "light", "dark", ""
	Mode string `mapstructure:"mode"`

	// Colors allows overriding individual color tokens.
	// Supports both nested YAML structure and dot notation.
	// Example YAML:
	//   colors:
	//     text:
	//       primary: "#FF0000"
	// Or quoted dot notation:
	//   colors:
	//     "text.primary": "#FF0000"
	Colors map[string]any `mapstructure:"colors"`
}

// FlattenedColors returns the Colors map flattened to dot-notation keys.
// This handles both nested YAML structures and already-flat keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

// flattenColors recursively flattens a nested map into dot-notation keys.
func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			// YAML sometimes produces map[any]any instead of map[string]any
			converted := make(map[string]any)
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// TracingConfig holds distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: derived from the config dir at runtime
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// 1.0 = all traces, 0.1 = 10% of traces
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// Telemetry converts the tracing section into a telemetry provider config,
// filling in runtime-derived defaults.
func (t TracingConfig) Telemetry() telemetry.Config {
	cfg := telemetry.DefaultConfig()
	cfg.Enabled = t.Enabled
	if t.Exporter != "" {
		cfg.Exporter = t.Exporter
	}
	cfg.FilePath = t.FilePath
	if cfg.FilePath == "" {
		cfg.FilePath = paths.TracesPath()
	}
	if t.OTLPEndpoint != "" {
		cfg.OTLPEndpoint = t.OTLPEndpoint
	}
	if t.SampleRate > 0 {
		cfg.SampleRate = t.SampleRate
	}
	return cfg
}

// minWrapWidth is the narrowest wrap width the layout engine produces
// readable output at.
const minWrapWidth = 20

// Validate checks the full configuration for errors.
func (c Config) Validate() error {
	if err := ValidateEditor(c.Editor); err != nil {
		return err
	}
	if err := ValidateTracing(c.Tracing); err != nil {
		return err
	}
	return ValidateSessions(c.Sessions)
}

// ValidateEditor checks editor configuration for errors.
// Returns nil if the configuration is valid (zero values use defaults).
func ValidateEditor(ed EditorConfig) error {
	if ed.WrapWidth != 0 && ed.WrapWidth < minWrapWidth {
		return fmt.Errorf("editor.wrap_width must be 0 (follow window) or at least %d, got %d", minWrapWidth, ed.WrapWidth)
	}
	if ed.MaxWrapWidth != 0 && ed.MaxWrapWidth < minWrapWidth {
		return fmt.Errorf("editor.max_wrap_width must be 0 (no cap) or at least %d, got %d", minWrapWidth, ed.MaxWrapWidth)
	}
	if ed.WrapWidth != 0 && ed.MaxWrapWidth != 0 && ed.WrapWidth > ed.MaxWrapWidth {
		return fmt.Errorf("editor.wrap_width (%d) exceeds editor.max_wrap_width (%d)", ed.WrapWidth, ed.MaxWrapWidth)
	}
	if ed.LeftPadding < 0 {
		return fmt.Errorf("editor.left_padding must not be negative, got %d", ed.LeftPadding)
	}
	return nil
}

// ValidateSessions checks session configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateSessions(s SessionsConfig) error {
	// DBPath must be absolute if set
	if s.DBPath != "" && !filepath.IsAbs(s.DBPath) {
		return fmt.Errorf("sessions.db_path must be an absolute path, got %q", s.DBPath)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	// Validate SampleRate is in range [0.0, 1.0]
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	// Validate Exporter is a valid option
	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
			// Valid
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Only validate endpoint requirements when tracing is enabled. An empty
	// file_path falls back to the derived default, so it never errors here.
	if tracing.Enabled && tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}

	return nil
}

// WrapWidthFor returns the wrap width to render at for a window of the
// given content width.
func (c Config) WrapWidthFor(windowWidth int) int {
	width := windowWidth
	if c.Editor.WrapWidth > 0 {
		width = c.Editor.WrapWidth
	}
	if c.Editor.MaxWrapWidth > 0 && width > c.Editor.MaxWrapWidth {
		width = c.Editor.MaxWrapWidth
	}
	if width < minWrapWidth {
		width = minWrapWidth
	}
	return width
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		AutoReload: true,
		UI: UIConfig{
			ShowStatusBar:   true,
			ShowBreadcrumbs: true,
			MarkdownStyle:   "dark",
			MouseEnabled:    true,
		},
		Editor: EditorConfig{
			WrapWidth:    0, // Follow the window
			MaxWrapWidth: 100,
			LeftPadding:  2,
			RevealCodes:  false,
		},
		Theme: ThemeConfig{
			// Default theme uses the "default" preset
			Preset: "",
		},
		Sessions: SessionsConfig{
			Restore: true,
			DBPath:  "", // Derived from data dir at runtime
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Fold Configuration

# Reload the document when it changes on disk
auto_reload: true

# UI settings
ui:
  show_status_bar: true    # Show status bar at bottom
  show_breadcrumbs: true   # Show the cursor path in the status bar
  # markdown_style: dark   # Help screen rendering style: "dark" (default) or "light"
  mouse_enabled: true      # Click-to-position and wheel scrolling

# Editor settings
editor:
  wrap_width: 0        # Fixed wrap width in columns; 0 follows the window
  max_wrap_width: 100  # Cap when following the window; 0 disables the cap
  left_padding: 2      # Gutter width in columns
  reveal_codes: false  # Start with style boundary markers visible

# Theme configuration
# Use a preset theme or customize individual colors
theme:
  # Use a preset:
  # preset: catppuccin-mocha
  #
  # Available presets:
  #   default           - Default fold theme
  #   catppuccin-mocha  - Warm, cozy dark theme
  #   catppuccin-latte  - Warm, cozy light theme
  #   dracula           - Dark theme with vibrant colors
  #   nord              - Arctic, north-bluish palette
  #   high-contrast     - High contrast for accessibility
  #
  # Override specific colors (works with or without preset):
  # colors:
  #   text.primary: "#FFFFFF"
  #   status.error: "#FF0000"
  #   style.bold: "#FF5555"

# Session persistence
sessions:
  restore: true   # Reopen files at their last cursor position
  # db_path: /absolute/path/to/sessions.db

# Tracing configuration
# Enables visibility into render and mutation timings
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/fold/traces/traces.jsonl  # Output file for file exporter
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	// Create parent directory if needed
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	// Write the template
	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}

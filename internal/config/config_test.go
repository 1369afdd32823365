package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.True(t, cfg.AutoReload)
	require.True(t, cfg.UI.ShowStatusBar)
	require.True(t, cfg.UI.ShowBreadcrumbs)
	require.Equal(t, "dark", cfg.UI.MarkdownStyle)
	require.True(t, cfg.UI.MouseEnabled)

	require.Equal(t, 0, cfg.Editor.WrapWidth, "default follows the window")
	require.Equal(t, 100, cfg.Editor.MaxWrapWidth)
	require.Equal(t, 2, cfg.Editor.LeftPadding)
	require.False(t, cfg.Editor.RevealCodes)

	require.True(t, cfg.Sessions.Restore)
	require.Empty(t, cfg.Sessions.DBPath)
}

func TestDefaults_Validate(t *testing.T) {
	require.NoError(t, Defaults().Validate())
}

func TestValidateEditor_Empty(t *testing.T) {
	require.NoError(t, ValidateEditor(EditorConfig{}))
}

func TestValidateEditor_WrapWidthTooNarrow(t *testing.T) {
	err := ValidateEditor(EditorConfig{WrapWidth: 10})
	require.Error(t, err)
	require.Contains(t, err.Error(), "editor.wrap_width")
}

func TestValidateEditor_MaxWrapWidthTooNarrow(t *testing.T) {
	err := ValidateEditor(EditorConfig{MaxWrapWidth: 5})
	require.Error(t, err)
	require.Contains(t, err.Error(), "editor.max_wrap_width")
}

func TestValidateEditor_WrapWidthExceedsCap(t *testing.T) {
	err := ValidateEditor(EditorConfig{WrapWidth: 120, MaxWrapWidth: 80})
	require.Error(t, err)
	require.Contains(t, err.Error(), "exceeds")
}

func TestValidateEditor_NegativeLeftPadding(t *testing.T) {
	err := ValidateEditor(EditorConfig{LeftPadding: -1})
	require.Error(t, err)
	require.Contains(t, err.Error(), "left_padding")
}

func TestValidateEditor_Valid(t *testing.T) {
	require.NoError(t, ValidateEditor(EditorConfig{
		WrapWidth:    72,
		MaxWrapWidth: 100,
		LeftPadding:  4,
		RevealCodes:  true,
	}))
}

func TestValidateSessions_Empty(t *testing.T) {
	require.NoError(t, ValidateSessions(SessionsConfig{}))
}

func TestValidateSessions_RelativeDBPath(t *testing.T) {
	err := ValidateSessions(SessionsConfig{DBPath: "relative/sessions.db"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "absolute")
}

func TestValidateSessions_AbsoluteDBPath(t *testing.T) {
	require.NoError(t, ValidateSessions(SessionsConfig{DBPath: filepath.Join("/", "tmp", "sessions.db")}))
}

func TestValidateTracing_Empty(t *testing.T) {
	require.NoError(t, ValidateTracing(TracingConfig{}))
}

func TestValidateTracing_InvalidSampleRate(t *testing.T) {
	err := ValidateTracing(TracingConfig{SampleRate: 1.5})
	require.Error(t, err)
	require.Contains(t, err.Error(), "sample_rate")

	err = ValidateTracing(TracingConfig{SampleRate: -0.1})
	require.Error(t, err)
}

func TestValidateTracing_InvalidExporter(t *testing.T) {
	err := ValidateTracing(TracingConfig{Exporter: "jaeger"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "tracing.exporter")
}

func TestValidateTracing_ValidExporters(t *testing.T) {
	for _, exporter := range []string{"", "none", "file", "stdout", "otlp"} {
		cfg := TracingConfig{Exporter: exporter, SampleRate: 1.0}
		if exporter == "otlp" {
			cfg.OTLPEndpoint = "localhost:4317"
		}
		require.NoError(t, ValidateTracing(cfg), "exporter %q", exporter)
	}
}

func TestValidateTracing_OTLPRequiresEndpoint(t *testing.T) {
	err := ValidateTracing(TracingConfig{
		Enabled:    true,
		Exporter:   "otlp",
		SampleRate: 1.0,
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "otlp_endpoint")
}

func TestValidateTracing_FileExporterWithoutPath(t *testing.T) {
	// Empty file_path falls back to the derived default, so it validates.
	require.NoError(t, ValidateTracing(TracingConfig{
		Enabled:    true,
		Exporter:   "file",
		SampleRate: 1.0,
	}))
}

func TestTracingConfig_Telemetry_Defaults(t *testing.T) {
	tel := TracingConfig{}.Telemetry()
	require.False(t, tel.Enabled)
	require.Equal(t, "file", tel.Exporter)
	require.NotEmpty(t, tel.FilePath, "empty file_path derives the default traces path")
	require.Equal(t, "localhost:4317", tel.OTLPEndpoint)
	require.InDelta(t, 1.0, tel.SampleRate, 0.0001)
	require.Equal(t, "fold", tel.ServiceName)
}

func TestTracingConfig_Telemetry_Overrides(t *testing.T) {
	tel := TracingConfig{
		Enabled:      true,
		Exporter:     "otlp",
		OTLPEndpoint: "collector:4317",
		SampleRate:   0.25,
	}.Telemetry()
	require.True(t, tel.Enabled)
	require.Equal(t, "otlp", tel.Exporter)
	require.Equal(t, "collector:4317", tel.OTLPEndpoint)
	require.InDelta(t, 0.25, tel.SampleRate, 0.0001)
}

func TestWrapWidthFor_FollowsWindow(t *testing.T) {
	cfg := Config{}
	require.Equal(t, 80, cfg.WrapWidthFor(80))
}

func TestWrapWidthFor_FixedWidth(t *testing.T) {
	cfg := Config{Editor: EditorConfig{WrapWidth: 72}}
	require.Equal(t, 72, cfg.WrapWidthFor(200))
	require.Equal(t, 72, cfg.WrapWidthFor(30), "fixed width wins even on narrow windows above the floor")
}

func TestWrapWidthFor_Capped(t *testing.T) {
	cfg := Config{Editor: EditorConfig{MaxWrapWidth: 100}}
	require.Equal(t, 100, cfg.WrapWidthFor(250))
	require.Equal(t, 60, cfg.WrapWidthFor(60))
}

func TestWrapWidthFor_Floor(t *testing.T) {
	cfg := Config{}
	require.Equal(t, minWrapWidth, cfg.WrapWidthFor(5))
}

func TestDefaultConfigTemplate_ContainsSections(t *testing.T) {
	tmpl := DefaultConfigTemplate()
	for _, section := range []string{"auto_reload", "ui:", "editor:", "theme:", "sessions:"} {
		require.True(t, strings.Contains(tmpl, section), "template missing %s", section)
	}
}

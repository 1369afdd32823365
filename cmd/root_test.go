package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/fold/internal/docfile"
	"github.com/zjrosen/fold/internal/document"
)

// isolateConfig points config resolution at empty temp directories so the
// developer's real config never leaks into a test.
func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("FOLD_CONFIG_DIR", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	return dir
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	dir := isolateConfig(t)

	cfg, err := loadConfig(dir)
	require.NoError(t, err)

	assert.True(t, cfg.AutoReload)
	assert.True(t, cfg.UI.ShowStatusBar)
	assert.Equal(t, 2, cfg.Editor.LeftPadding)
}

func TestLoadConfig_WritesUserConfigOnFirstRun(t *testing.T) {
	dir := isolateConfig(t)

	_, err := loadConfig(dir)
	require.NoError(t, err)

	written := filepath.Join(dir, "config", "config.yaml")
	_, err = os.Stat(written)
	assert.NoError(t, err, "expected a default config at %s", written)
}

func TestLoadConfig_ProjectLocalWinsOverUserConfig(t *testing.T) {
	dir := isolateConfig(t)

	userDir := filepath.Join(dir, "config")
	require.NoError(t, os.MkdirAll(userDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(userDir, "config.yaml"),
		[]byte("editor:\n  left_padding: 8\n"), 0o600))

	projectDir := filepath.Join(dir, "project")
	require.NoError(t, os.MkdirAll(filepath.Join(projectDir, ".fold"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, ".fold", "config.yaml"),
		[]byte("editor:\n  left_padding: 4\n"), 0o600))

	cfg, err := loadConfig(projectDir)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Editor.LeftPadding)
}

func TestLoadConfig_ThemeColorDotNotationSurvives(t *testing.T) {
	dir := isolateConfig(t)

	foldDir := filepath.Join(dir, ".fold")
	require.NoError(t, os.MkdirAll(foldDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(foldDir, "config.yaml"),
		[]byte("theme:\n  colors:\n    text.primary: \"#FF0000\"\n"), 0o600))

	cfg, err := loadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "#FF0000", cfg.Theme.FlattenedColors()["text.primary"])
}

func TestLoadConfig_InvalidValuesRejected(t *testing.T) {
	dir := isolateConfig(t)

	foldDir := filepath.Join(dir, ".fold")
	require.NoError(t, os.MkdirAll(foldDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(foldDir, "config.yaml"),
		[]byte("editor:\n  wrap_width: 5\n"), 0o600))

	_, err := loadConfig(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wrap_width")
}

func TestLoadDocument_MissingFileYieldsBlankBuffer(t *testing.T) {
	doc, err := loadDocument(filepath.Join(t.TempDir(), "absent.fold"))
	require.NoError(t, err)

	require.Len(t, doc.Paragraphs, 1)
	assert.Empty(t, doc.Paragraphs[0].Content[0].Text)
}

func TestLoadDocument_ReadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.fold")
	saved := document.New().WithParagraphs(document.NewTextParagraph("from disk"))
	require.NoError(t, docfile.Save(path, saved))

	doc, err := loadDocument(path)
	require.NoError(t, err)

	assert.Equal(t, "from disk", doc.Paragraphs[0].Content[0].Text)
}

func TestLoadDocument_TemplateForNewFile(t *testing.T) {
	templateName = "todo-list"
	t.Cleanup(func() { templateName = "" })

	doc, err := loadDocument(filepath.Join(t.TempDir(), "new.fold"))
	require.NoError(t, err)

	assert.NotEmpty(t, doc.Paragraphs)
}

func TestLoadDocument_UnknownTemplateFails(t *testing.T) {
	templateName = "no-such-template"
	t.Cleanup(func() { templateName = "" })

	_, err := loadDocument("")
	require.Error(t, err)
}

func TestTemplatesCommand_ListsTemplates(t *testing.T) {
	var out bytes.Buffer
	templatesCmd.SetOut(&out)
	t.Cleanup(func() { templatesCmd.SetOut(nil) })

	require.NoError(t, templatesCmd.RunE(templatesCmd, nil))

	assert.Contains(t, out.String(), "todo-list")
	assert.Contains(t, out.String(), "meeting-notes")
}

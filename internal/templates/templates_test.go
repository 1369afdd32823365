package templates

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/fold/internal/document"
)

func TestList_ReturnsAllTemplates(t *testing.T) {
	infos, err := List()
	require.NoError(t, err)
	require.Len(t, infos, 3)

	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name
	}
	assert.Equal(t, []string{"blank", "meeting-notes", "todo-list"}, names, "sorted by name")

	for _, info := range infos {
		assert.NotEmpty(t, info.Title, "%s should have a title", info.Name)
		assert.NotEmpty(t, info.Description, "%s should have a description", info.Name)
	}
}

func TestLoad_Blank(t *testing.T) {
	doc, err := Load("blank")
	require.NoError(t, err)
	require.Len(t, doc.Paragraphs, 1)
	assert.Equal(t, document.Text, doc.Paragraphs[0].Type)
	require.Len(t, doc.Paragraphs[0].Content, 1)
	assert.Equal(t, "", doc.Paragraphs[0].Content[0].Text)
}

func TestLoad_MeetingNotes(t *testing.T) {
	doc, err := Load("meeting-notes")
	require.NoError(t, err)
	require.NotEmpty(t, doc.Paragraphs)

	assert.Equal(t, document.Header1, doc.Paragraphs[0].Type)
	assert.Equal(t, "Meeting notes", doc.Paragraphs[0].Content[0].Text)

	// The date line uses a styled span
	require.Len(t, doc.Paragraphs[1].Content, 2)
	assert.Equal(t, document.StyleBold, doc.Paragraphs[1].Content[0].Style)

	last := doc.Paragraphs[len(doc.Paragraphs)-1]
	assert.Equal(t, document.Checklist, last.Type)
	require.Len(t, last.Items, 1)
	assert.False(t, last.Items[0].Checked)
	require.NotEmpty(t, last.Items[0].Content, "checklist items need a span for the cursor")
}

func TestLoad_TodoList(t *testing.T) {
	doc, err := Load("todo-list")
	require.NoError(t, err)

	checklists := 0
	for _, p := range doc.Paragraphs {
		if p.Type == document.Checklist {
			checklists++
			require.NotEmpty(t, p.Items)
		}
	}
	assert.Equal(t, 2, checklists)
}

func TestLoad_UnknownTemplate(t *testing.T) {
	_, err := Load("does-not-exist")
	require.Error(t, err)
}

// TestTemplates_AllParseAndMaterialize walks the embedded filesystem so a
// new template file cannot ship without being loadable.
func TestTemplates_AllParseAndMaterialize(t *testing.T) {
	fsys := TemplatesFS()

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.HasSuffix(path, ".yaml") {
			return nil
		}

		name := strings.TrimSuffix(strings.TrimPrefix(path, "documents/"), ".yaml")
		doc, err := Load(name)
		require.NoError(t, err, "template %s should load", name)
		require.NotEmpty(t, doc.Paragraphs, "template %s should have paragraphs", name)
		return nil
	})
	require.NoError(t, err)
}

// TestLoad_EveryParagraphHasContent guards the editor invariant that every
// plain paragraph and checklist item carries at least one span.
func TestLoad_EveryParagraphHasContent(t *testing.T) {
	infos, err := List()
	require.NoError(t, err)

	for _, info := range infos {
		doc, err := Load(info.Name)
		require.NoError(t, err)
		for i, p := range doc.Paragraphs {
			checkParagraphContent(t, info.Name, i, p)
		}
	}
}

func checkParagraphContent(t *testing.T, tmpl string, idx int, p document.Paragraph) {
	t.Helper()
	switch {
	case len(p.Items) > 0:
		for _, item := range p.Items {
			require.NotEmpty(t, item.Content, "%s paragraph %d: checklist item missing content", tmpl, idx)
		}
	case len(p.Entries) > 0:
		for _, entry := range p.Entries {
			for _, ep := range entry {
				checkParagraphContent(t, tmpl, idx, ep)
			}
		}
	default:
		require.NotEmpty(t, p.Content, "%s paragraph %d: missing content", tmpl, idx)
	}
}

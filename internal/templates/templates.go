package templates

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/fold/internal/docfile"
	"github.com/zjrosen/fold/internal/document"
)

// Info describes one available template.
type Info struct {
	Name        string
	Title       string
	Description string
}

// templateSpec is the YAML schema of a starter document: docfile's
// paragraph schema plus a metadata header.
type templateSpec struct {
	Name        string                  `yaml:"name"`
	Title       string                  `yaml:"title"`
	Description string                  `yaml:"description"`
	Paragraphs  []docfile.ParagraphSpec `yaml:"paragraphs"`
}

// List returns the available templates sorted by name.
func List() ([]Info, error) {
	fsys := TemplatesFS()
	entries, err := fs.ReadDir(fsys, "documents")
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}

	infos := make([]Info, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		spec, err := readSpec(fsys, "documents/"+entry.Name())
		if err != nil {
			return nil, err
		}
		infos = append(infos, Info{Name: spec.Name, Title: spec.Title, Description: spec.Description})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

// Load materializes the named template into a fresh document.
func Load(name string) (*document.Document, error) {
	spec, err := readSpec(TemplatesFS(), "documents/"+name+".yaml")
	if err != nil {
		return nil, err
	}

	paragraphs := make([]document.Paragraph, 0, len(spec.Paragraphs))
	for i, p := range spec.Paragraphs {
		paragraph, err := docfile.BuildParagraph(p)
		if err != nil {
			return nil, fmt.Errorf("template %s paragraph %d: %w", name, i, err)
		}
		paragraphs = append(paragraphs, paragraph)
	}
	if len(paragraphs) == 0 {
		paragraphs = append(paragraphs, document.NewTextParagraph(""))
	}
	return document.New().WithParagraphs(paragraphs...), nil
}

func readSpec(fsys fs.FS, path string) (*templateSpec, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", path, err)
	}
	var spec templateSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse template %s: %w", path, err)
	}
	if spec.Name == "" {
		return nil, fmt.Errorf("template %s has no name", path)
	}
	return &spec, nil
}

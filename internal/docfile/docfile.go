package docfile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/fold/internal/document"
)

// CurrentVersion is the schema version written to new files.
const CurrentVersion = 1

// File is the on-disk shape of a fold document.
type File struct {
	Version    int             `yaml:"fold"`
	Paragraphs []ParagraphSpec `yaml:"paragraphs"`
}

// Marshal serializes a document to YAML.
func Marshal(doc *document.Document) ([]byte, error) {
	file := File{Version: CurrentVersion}
	for _, par := range doc.Paragraphs {
		file.Paragraphs = append(file.Paragraphs, EncodeParagraph(par))
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(file); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal parses YAML into a document. A file with no paragraphs yields
// a single empty text paragraph so the cursor has somewhere to land.
func Unmarshal(data []byte) (*document.Document, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	if file.Version > CurrentVersion {
		return nil, fmt.Errorf("unsupported document version %d", file.Version)
	}

	paragraphs := make([]document.Paragraph, 0, len(file.Paragraphs))
	for i, spec := range file.Paragraphs {
		par, err := BuildParagraph(spec)
		if err != nil {
			return nil, fmt.Errorf("paragraph %d: %w", i, err)
		}
		paragraphs = append(paragraphs, par)
	}
	if len(paragraphs) == 0 {
		paragraphs = append(paragraphs, document.NewTextParagraph(""))
	}
	return document.New().WithParagraphs(paragraphs...), nil
}

// Load reads and parses the document at path.
func Load(path string) (*document.Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is the user's document
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return Unmarshal(data)
}

// Save writes the document atomically: marshal to a temp file in the same
// directory, then rename over the target.
func Save(path string, doc *document.Document) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create document dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".fold.doc.tmp.*")
	if err != nil {
		return fmt.Errorf("create temp document: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close document: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace document: %w", err)
	}
	return nil
}

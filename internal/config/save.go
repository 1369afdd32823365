// Package config provides configuration types, defaults, and persistence for fold.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// SaveEditorOptions updates the editor section in the config file.
// This preserves comments and formatting in other sections by using yaml.Node.
func SaveEditorOptions(configPath string, ed EditorConfig) error {
	return updateSection(configPath, "editor", buildEditorNode(ed))
}

// SaveThemePreset updates theme.preset in the config file, leaving any
// color overrides in place.
func SaveThemePreset(configPath string, preset string) error {
	doc, err := readDoc(configPath)
	if err != nil {
		return err
	}

	root := ensureRootMapping(&doc)
	themeNode := findOrAppendKey(root, "theme", &yaml.Node{Kind: yaml.MappingNode})
	if themeNode.Kind != yaml.MappingNode {
		*themeNode = yaml.Node{Kind: yaml.MappingNode}
	}
	presetNode := findOrAppendKey(themeNode, "preset", &yaml.Node{Kind: yaml.ScalarNode})
	presetNode.Kind = yaml.ScalarNode
	presetNode.Tag = ""
	presetNode.Value = preset

	return writeDoc(configPath, &doc)
}

// updateSection replaces (or appends) one top-level section of the config
// file with the given node, round-tripping the rest through yaml.Node so
// user comments survive.
func updateSection(configPath, key string, section *yaml.Node) error {
	doc, err := readDoc(configPath)
	if err != nil {
		return err
	}

	root := ensureRootMapping(&doc)
	existing := findOrAppendKey(root, key, section)
	if existing != section {
		*existing = *section
	}

	return writeDoc(configPath, &doc)
}

// readDoc parses the config file into a yaml.Node tree. A missing file
// yields an empty document.
func readDoc(configPath string) (yaml.Node, error) {
	var doc yaml.Node

	data, err := os.ReadFile(configPath) //nolint:gosec // path comes from the config search order
	if err != nil && !os.IsNotExist(err) {
		return doc, fmt.Errorf("reading config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return doc, fmt.Errorf("parsing config: %w", err)
		}
	}
	return doc, nil
}

// ensureRootMapping returns the document's root mapping node, creating the
// document structure for an empty or new file.
func ensureRootMapping(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 && doc.Content[0].Kind == yaml.MappingNode {
		return doc.Content[0]
	}

	root := &yaml.Node{Kind: yaml.MappingNode}
	*doc = yaml.Node{
		Kind:    yaml.DocumentNode,
		Content: []*yaml.Node{root},
	}
	return root
}

// findOrAppendKey returns the value node for key in the mapping, appending
// the fallback node under that key when absent.
func findOrAppendKey(mapping *yaml.Node, key string, fallback *yaml.Node) *yaml.Node {
	for i := 0; i < len(mapping.Content)-1; i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		fallback,
	)
	return fallback
}

// buildEditorNode creates a yaml.Node representing the editor section.
func buildEditorNode(ed EditorConfig) *yaml.Node {
	return &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Value: "wrap_width"},
			intNode(ed.WrapWidth),
			{Kind: yaml.ScalarNode, Value: "max_wrap_width"},
			intNode(ed.MaxWrapWidth),
			{Kind: yaml.ScalarNode, Value: "left_padding"},
			intNode(ed.LeftPadding),
			{Kind: yaml.ScalarNode, Value: "reveal_codes"},
			boolNode(ed.RevealCodes),
		},
	}
}

func intNode(v int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(v)}
}

func boolNode(v bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v)}
}

// writeDoc marshals the node tree and writes it atomically (write to temp,
// then rename).
func writeDoc(configPath string, doc *yaml.Node) error {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".fold.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(buf.Bytes()); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, configPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}

// Package templates ships the embedded starter documents offered when a
// file is created. Each template is a YAML description of a paragraph tree
// that is materialized into a document on load.
package templates

import (
	"embed"
	"io/fs"
)

// starterDocuments embeds the document templates.
// The structure is:
//   - documents/<template-name>.yaml
//
//go:embed documents
var starterDocuments embed.FS

// TemplatesFS returns the embedded filesystem containing the starter
// document definitions.
func TemplatesFS() fs.FS {
	return starterDocuments
}

// Copyright Sigmanaut Labs, 2026. All rights reserved.

// Package export renders the knowledge base into its emitted serializations
// with pluggable per-format renderers.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sigmanaut-labs/ergokb/pkg/types"
)

// baseName is the file stem every exported serialization shares.
const baseName = "knowledge_base"

// Renderer serializes a knowledge base document into one output format.
type Renderer interface {
	// Render returns the serialized document.
	Render(doc types.KnowledgeBase) ([]byte, error)

	// Ext returns the output file extension, without the dot.
	Ext() string
}

// Formats lists every supported export format, data formats first.
func Formats() []string {
	return []string{"yaml", "json", "toml", "sexp", "markdown", "rst", "text"}
}

// For returns the renderer for a format name.
func For(format string) (Renderer, error) {
	switch format {
	case "yaml":
		return yamlRenderer{}, nil
	case "json":
		return jsonRenderer{}, nil
	case "toml":
		return tomlRenderer{}, nil
	case "sexp":
		return sexpRenderer{}, nil
	case "markdown", "md":
		return markdownRenderer{}, nil
	case "rst":
		return rstRenderer{}, nil
	case "text", "txt":
		return textRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

// BatchResult holds the outcome of a multi-format export run.
type BatchResult struct {
	Written int
	Failed  int
}

// Total returns the number of formats processed.
func (r BatchResult) Total() int {
	return r.Written + r.Failed
}

// HasFailures reports whether any format failed to render or write.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// WriteFile renders the document in one format and writes it to
// outDir/knowledge_base.<ext>, returning the written path.
func WriteFile(doc types.KnowledgeBase, outDir, format string) (string, error) {
	r, err := For(format)
	if err != nil {
		return "", err
	}

	data, err := r.Render(doc)
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", format, err)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", outDir, err)
	}
	path := filepath.Join(outDir, baseName+"."+r.Ext())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// WriteAll exports the document in every supported format into outDir,
// logging one line per format to w.
func WriteAll(doc types.KnowledgeBase, outDir string, w io.Writer) BatchResult {
	var result BatchResult
	for _, format := range Formats() {
		path, err := WriteFile(doc, outDir, format)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", format, err)
			result.Failed++
			continue
		}
		fmt.Fprintf(w, "wrote   %s\n", path)
		result.Written++
	}
	return result
}

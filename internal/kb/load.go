// Copyright Sigmanaut Labs, 2026. All rights reserved.

package kb

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.yaml.in/yaml/v3"

	"github.com/sigmanaut-labs/ergokb/pkg/types"
)

// Format identifies a knowledge base serialization the loader understands.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatSexp Format = "sexp"
)

// DataFormats lists the serializations that both load and export. Markdown,
// reStructuredText and plain text are emit-only.
var DataFormats = []Format{FormatYAML, FormatJSON, FormatTOML, FormatSexp}

// DetectFormat maps a file extension to its Format. Unknown extensions fail.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".sexp", ".lisp":
		return FormatSexp, nil
	default:
		return "", fmt.Errorf("unrecognized knowledge base extension %q", filepath.Ext(path))
	}
}

// Decode parses serialized knowledge base content in the given format.
func Decode(data []byte, format Format) (types.KnowledgeBase, error) {
	var doc types.KnowledgeBase
	var err error

	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	case FormatSexp:
		doc, err = decodeSexp(data)
	default:
		err = fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return types.KnowledgeBase{}, fmt.Errorf("decoding %s: %w", format, err)
	}
	return doc, nil
}

// Load reads a knowledge base file, detecting the format from the extension,
// and builds a validated store from it.
func Load(path string) (*Store, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	doc, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	store, err := FromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return store, nil
}

// LoadFiles merges several knowledge base files into one store. A chunk id
// appearing in more than one file is a load-time *ValidationError. The first
// file's version wins; later files must carry the same version or none.
func LoadFiles(paths ...string) (*Store, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no knowledge base files given")
	}

	merged := NewStore()
	for i, path := range paths {
		format, err := DetectFormat(path)
		if err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		doc, err := Decode(data, format)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		if i == 0 {
			merged.version = doc.Version
		} else if doc.Version != "" && doc.Version != merged.version {
			return nil, fmt.Errorf("%s: version %q conflicts with %q", path, doc.Version, merged.version)
		}

		for _, c := range doc.Chunks {
			if err := merged.Add(c); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
	}
	return merged, nil
}

// CheckSections verifies the store carries every core section id. Missing
// sections are reported as *ValidationError; audit_examples is optional.
func CheckSections(s *Store) error {
	for _, id := range types.CoreSections {
		if _, err := s.Get(id); err != nil {
			return &ValidationError{ID: id, Reason: "required section missing"}
		}
	}
	return nil
}

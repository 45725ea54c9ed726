// Copyright Sigmanaut Labs, 2026. All rights reserved.

package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.yaml.in/yaml/v3"

	"github.com/sigmanaut-labs/ergokb/internal/kb"
	"github.com/sigmanaut-labs/ergokb/pkg/types"
)

// --- data formats ---

type yamlRenderer struct{}

func (yamlRenderer) Render(doc types.KnowledgeBase) ([]byte, error) {
	return yaml.Marshal(doc)
}

func (yamlRenderer) Ext() string { return "yaml" }

type jsonRenderer struct{}

func (jsonRenderer) Render(doc types.KnowledgeBase) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func (jsonRenderer) Ext() string { return "json" }

type tomlRenderer struct{}

func (tomlRenderer) Render(doc types.KnowledgeBase) ([]byte, error) {
	return toml.Marshal(doc)
}

func (tomlRenderer) Ext() string { return "toml" }

type sexpRenderer struct{}

func (sexpRenderer) Render(doc types.KnowledgeBase) ([]byte, error) {
	return kb.MarshalSexp(doc), nil
}

func (sexpRenderer) Ext() string { return "sexp" }

// --- document formats (emit-only) ---

const docTitle = "ErgoScript Security Knowledge Base"

type markdownRenderer struct{}

func (markdownRenderer) Render(doc types.KnowledgeBase) ([]byte, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", docTitle)
	fmt.Fprintf(&b, "Content version: %s\n", doc.Version)
	for _, c := range doc.Chunks {
		fmt.Fprintf(&b, "\n## %s\n\n", c.Title)
		fmt.Fprintf(&b, "<!-- chunk: %s -->\n", c.ID)
		if len(c.Tags) > 0 {
			fmt.Fprintf(&b, "*Tags: %s*\n", strings.Join(c.Tags, ", "))
		}
		fmt.Fprintf(&b, "\n%s\n", strings.TrimRight(c.Text, "\n"))
	}
	return []byte(b.String()), nil
}

func (markdownRenderer) Ext() string { return "md" }

type rstRenderer struct{}

func (rstRenderer) Render(doc types.KnowledgeBase) ([]byte, error) {
	var b strings.Builder
	b.WriteString(docTitle + "\n")
	b.WriteString(strings.Repeat("=", len(docTitle)) + "\n\n")
	fmt.Fprintf(&b, ":version: %s\n", doc.Version)
	for _, c := range doc.Chunks {
		fmt.Fprintf(&b, "\n%s\n%s\n\n", c.Title, strings.Repeat("-", len(c.Title)))
		fmt.Fprintf(&b, ":id: %s\n", c.ID)
		if len(c.Tags) > 0 {
			fmt.Fprintf(&b, ":tags: %s\n", strings.Join(c.Tags, ", "))
		}
		fmt.Fprintf(&b, "\n%s\n", strings.TrimRight(c.Text, "\n"))
	}
	return []byte(b.String()), nil
}

func (rstRenderer) Ext() string { return "rst" }

type textRenderer struct{}

func (textRenderer) Render(doc types.KnowledgeBase) ([]byte, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (version %s)\n", docTitle, doc.Version)
	for _, c := range doc.Chunks {
		fmt.Fprintf(&b, "\n=== %s: %s", c.ID, c.Title)
		if len(c.Tags) > 0 {
			fmt.Fprintf(&b, " [%s]", strings.Join(c.Tags, " "))
		}
		b.WriteString(" ===\n\n")
		fmt.Fprintf(&b, "%s\n", strings.TrimRight(c.Text, "\n"))
	}
	return []byte(b.String()), nil
}

func (textRenderer) Ext() string { return "txt" }

// Copyright Sigmanaut Labs, 2026. All rights reserved.

package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sigmanaut-labs/ergokb/internal/kb"
	"github.com/sigmanaut-labs/ergokb/pkg/types"
)

func sampleDoc() types.KnowledgeBase {
	return types.KnowledgeBase{
		Version: "0.1",
		Chunks: []types.Chunk{
			{
				ID:    "eutxo_model",
				Title: "The Extended UTXO Model",
				Tags:  []string{"eutxo", "boxes"},
				Text:  "Ergo state is a set of boxes.\nBoxes carry registers R0-R9.\n",
			},
			{
				ID:    "known_issues",
				Title: "Known Vulnerability Classes",
				Tags:  []string{"known_issues", "security"},
				Text:  "Unguarded successor boxes leak value.\n",
			},
		},
	}
}

func TestForRejectsUnknownFormat(t *testing.T) {
	if _, err := For("pdf"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestDataFormatsRoundTrip(t *testing.T) {
	// Rendering a data format and loading it back yields the same content.
	doc := sampleDoc()
	reference, err := kb.FromDocument(doc)
	if err != nil {
		t.Fatal(err)
	}

	for _, format := range []string{"yaml", "json", "toml", "sexp"} {
		t.Run(format, func(t *testing.T) {
			dir := t.TempDir()
			path, err := WriteFile(doc, dir, format)
			if err != nil {
				t.Fatal(err)
			}

			loaded, err := kb.Load(path)
			if err != nil {
				t.Fatal(err)
			}
			if diffs := kb.Diff(reference, loaded); len(diffs) != 0 {
				t.Errorf("%s round trip changed content: %v", format, diffs)
			}
		})
	}
}

func TestMarkdownRender(t *testing.T) {
	r, err := For("markdown")
	if err != nil {
		t.Fatal(err)
	}
	data, err := r.Render(sampleDoc())
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)

	for _, want := range []string{
		"## The Extended UTXO Model",
		"<!-- chunk: eutxo_model -->",
		"*Tags: eutxo, boxes*",
		"## Known Vulnerability Classes",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
}

func TestRSTRender(t *testing.T) {
	r, err := For("rst")
	if err != nil {
		t.Fatal(err)
	}
	data, err := r.Render(sampleDoc())
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)

	title := "The Extended UTXO Model"
	if !strings.Contains(out, title+"\n"+strings.Repeat("-", len(title))) {
		t.Errorf("rst missing underlined section title:\n%s", out)
	}
	if !strings.Contains(out, ":id: known_issues") {
		t.Errorf("rst missing id field:\n%s", out)
	}
}

func TestTextRender(t *testing.T) {
	r, err := For("text")
	if err != nil {
		t.Fatal(err)
	}
	data, err := r.Render(sampleDoc())
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)

	if !strings.Contains(out, "=== eutxo_model: The Extended UTXO Model [eutxo boxes] ===") {
		t.Errorf("text missing section header:\n%s", out)
	}
}

func TestWriteFileNaming(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteFile(sampleDoc(), dir, "markdown")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "knowledge_base.md" {
		t.Errorf("path = %s, want knowledge_base.md", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file not written: %v", err)
	}
}

func TestWriteAll(t *testing.T) {
	dir := t.TempDir()
	var buf strings.Builder

	result := WriteAll(sampleDoc(), dir, &buf)
	if result.HasFailures() {
		t.Fatalf("failures: %s", buf.String())
	}
	if result.Written != len(Formats()) {
		t.Errorf("wrote %d formats, want %d", result.Written, len(Formats()))
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != len(Formats()) {
		t.Errorf("output dir has %d files, want %d", len(entries), len(Formats()))
	}
	if !strings.Contains(buf.String(), "wrote") {
		t.Errorf("log output missing wrote lines: %s", buf.String())
	}
}

func TestBatchResult(t *testing.T) {
	r := BatchResult{Written: 6, Failed: 1}
	if r.Total() != 7 {
		t.Errorf("Total() = %d, want 7", r.Total())
	}
	if !r.HasFailures() {
		t.Error("HasFailures() = false, want true")
	}
}

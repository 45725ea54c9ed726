// Copyright Sigmanaut Labs, 2026. All rights reserved.

package kb

import (
	"strings"
	"testing"

	"github.com/sigmanaut-labs/ergokb/pkg/types"
)

func storeFrom(t *testing.T, doc types.KnowledgeBase) *Store {
	t.Helper()
	s, err := FromDocument(doc)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func baseDoc() types.KnowledgeBase {
	return types.KnowledgeBase{
		Version: "0.1",
		Chunks: []types.Chunk{
			{ID: "a", Title: "Alpha", Tags: []string{"x"}, Text: "alpha"},
			{ID: "b", Title: "Beta", Tags: []string{"y"}, Text: "beta"},
		},
	}
}

func TestDiffIdentical(t *testing.T) {
	a := storeFrom(t, baseDoc())
	b := storeFrom(t, baseDoc())

	if diffs := Diff(a, b); len(diffs) != 0 {
		t.Errorf("identical stores reported diffs: %v", diffs)
	}
	if !Equal(a, b) {
		t.Error("Equal = false for identical stores")
	}
}

func TestDiffReportsEveryFieldMismatch(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*types.KnowledgeBase)
		wantWord string
	}{
		{"version", func(d *types.KnowledgeBase) { d.Version = "0.2" }, "version"},
		{"title", func(d *types.KnowledgeBase) { d.Chunks[0].Title = "Changed" }, "title"},
		{"tags", func(d *types.KnowledgeBase) { d.Chunks[0].Tags = []string{"x", "extra"} }, "tags"},
		{"text", func(d *types.KnowledgeBase) { d.Chunks[1].Text = "other" }, "text"},
		{"missing chunk", func(d *types.KnowledgeBase) { d.Chunks = d.Chunks[:1] }, "missing"},
		{"order", func(d *types.KnowledgeBase) { d.Chunks[0], d.Chunks[1] = d.Chunks[1], d.Chunks[0] }, "order"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := storeFrom(t, baseDoc())
			doc := baseDoc()
			tt.mutate(&doc)
			b := storeFrom(t, doc)

			diffs := Diff(a, b)
			if len(diffs) == 0 {
				t.Fatal("expected diffs")
			}
			found := false
			for _, d := range diffs {
				if strings.Contains(d, tt.wantWord) {
					found = true
				}
			}
			if !found {
				t.Errorf("diffs %v should mention %q", diffs, tt.wantWord)
			}
			if Equal(a, b) {
				t.Error("Equal = true for differing stores")
			}
		})
	}
}

func TestDiffExtraChunk(t *testing.T) {
	a := storeFrom(t, baseDoc())
	doc := baseDoc()
	doc.Chunks = append(doc.Chunks, types.Chunk{ID: "c", Title: "Extra"})
	b := storeFrom(t, doc)

	diffs := Diff(a, b)
	found := false
	for _, d := range diffs {
		if strings.Contains(d, `"c"`) && strings.Contains(d, "missing from first") {
			found = true
		}
	}
	if !found {
		t.Errorf("diffs %v should report chunk c missing from first store", diffs)
	}
}

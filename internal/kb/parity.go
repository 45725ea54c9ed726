// Copyright Sigmanaut Labs, 2026. All rights reserved.

package kb

import (
	"fmt"
)

// Diff compares two stores chunk by chunk and returns a human-readable list
// of logical differences. An empty result means the stores encode the same
// content. Chunk order is part of the contract: the serializations must list
// sections in the same order.
func Diff(a, b *Store) []string {
	var diffs []string

	if a.Version() != b.Version() {
		diffs = append(diffs, fmt.Sprintf("version: %q vs %q", a.Version(), b.Version()))
	}

	aIDs, bIDs := a.IDs(), b.IDs()
	for _, id := range aIDs {
		if _, err := b.Get(id); err != nil {
			diffs = append(diffs, fmt.Sprintf("chunk %q: missing from second store", id))
		}
	}
	for _, id := range bIDs {
		if _, err := a.Get(id); err != nil {
			diffs = append(diffs, fmt.Sprintf("chunk %q: missing from first store", id))
		}
	}

	for i := 0; i < len(aIDs) && i < len(bIDs); i++ {
		if aIDs[i] != bIDs[i] {
			diffs = append(diffs, fmt.Sprintf("order: position %d is %q vs %q", i, aIDs[i], bIDs[i]))
			break
		}
	}

	for _, id := range aIDs {
		ac, _ := a.Get(id)
		bc, err := b.Get(id)
		if err != nil {
			continue
		}
		if ac.Title != bc.Title {
			diffs = append(diffs, fmt.Sprintf("chunk %q: title %q vs %q", id, ac.Title, bc.Title))
		}
		if !equalStrings(ac.Tags, bc.Tags) {
			diffs = append(diffs, fmt.Sprintf("chunk %q: tags %v vs %v", id, ac.Tags, bc.Tags))
		}
		if ac.Text != bc.Text {
			diffs = append(diffs, fmt.Sprintf("chunk %q: text differs (%d vs %d bytes)", id, len(ac.Text), len(bc.Text)))
		}
	}

	return diffs
}

// Equal reports whether two stores encode the same logical content.
func Equal(a, b *Store) bool {
	return len(Diff(a, b)) == 0
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

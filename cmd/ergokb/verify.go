// Copyright Sigmanaut Labs, 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sigmanaut-labs/ergokb/internal/kb"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [file...]",
	Short: "Verify content parity across knowledge base serializations",
	Long: `Verify loads each knowledge base file and compares it chunk by chunk
against the first one. All serializations must encode the same logical
content: same chunk ids in the same order, same titles, tags, and texts.

With no arguments, verify checks every data serialization of
knowledge_base.* found in the content directory. It also confirms the
reference file carries every required section.`,
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		var err error
		paths, err = contentFiles(contentDir(cmd))
		if err != nil {
			return err
		}
	}
	if len(paths) < 1 {
		return fmt.Errorf("no knowledge base files to verify")
	}

	reference, err := kb.Load(paths[0])
	if err != nil {
		return err
	}
	if err := kb.CheckSections(reference); err != nil {
		return fmt.Errorf("%s: %w", paths[0], err)
	}
	fmt.Fprintf(os.Stdout, "ok      %s (%d chunks, reference)\n", paths[0], reference.Len())

	mismatched := 0
	for _, path := range paths[1:] {
		store, err := kb.Load(path)
		if err != nil {
			return err
		}
		diffs := kb.Diff(reference, store)
		if len(diffs) == 0 {
			fmt.Fprintf(os.Stdout, "ok      %s\n", path)
			continue
		}
		mismatched++
		fmt.Fprintf(os.Stdout, "differs %s:\n", path)
		for _, d := range diffs {
			fmt.Fprintf(os.Stdout, "        %s\n", d)
		}
	}

	if mismatched > 0 {
		return fmt.Errorf("%d file(s) out of parity with %s", mismatched, paths[0])
	}
	fmt.Fprintf(os.Stdout, "\nall %d files in parity\n", len(paths))
	return nil
}

// contentFiles returns the loadable knowledge_base.* serializations in dir,
// canonical YAML first.
func contentFiles(dir string) ([]string, error) {
	var paths []string
	for _, ext := range []string{".yaml", ".json", ".toml", ".sexp"} {
		path := filepath.Join(dir, "knowledge_base"+ext)
		if _, err := os.Stat(path); err == nil {
			paths = append(paths, path)
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no knowledge_base.* files found in %s", dir)
	}
	return paths, nil
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

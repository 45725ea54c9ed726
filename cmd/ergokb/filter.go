// Copyright Sigmanaut Labs, 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var filterCmd = &cobra.Command{
	Use:   "filter --tag <tag> [--tag <tag>...]",
	Short: "List chunks whose tags intersect the given set",
	Long: `Filter returns every chunk carrying at least one of the given tags, in
authoring order. At least one --tag is required: an empty tag set matches
nothing, it does not return the whole knowledge base.`,
	RunE: runFilter,
}

func runFilter(cmd *cobra.Command, args []string) error {
	tags, _ := cmd.Flags().GetStringSlice("tag")
	if len(tags) == 0 {
		return fmt.Errorf("at least one --tag is required")
	}

	store, err := loadStore(cmd)
	if err != nil {
		return err
	}

	chunks := store.Filter(tags)

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(chunks)
	}

	if len(chunks) == 0 {
		fmt.Println("No chunks matched.")
		return nil
	}
	printChunkTable(chunks)
	fmt.Fprintf(os.Stdout, "\n%d chunks\n", len(chunks))
	return nil
}

func init() {
	filterCmd.Flags().StringSlice("tag", nil, "tag to match (repeatable)")
	filterCmd.Flags().Bool("json", false, "output chunks as JSON")
	rootCmd.AddCommand(filterCmd)
}

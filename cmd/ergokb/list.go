// Copyright Sigmanaut Labs, 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sigmanaut-labs/ergokb/pkg/types"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the chunks in the knowledge base",
	Long: `List loads the knowledge base and prints one line per chunk: id, title,
and tags, in authoring order.`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	store, err := loadStore(cmd)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(store.Chunks())
	}

	printChunkTable(store.Chunks())
	fmt.Fprintf(os.Stdout, "\n%d chunks (content version %s)\n", store.Len(), store.Version())
	return nil
}

// printChunkTable prints a fixed-width summary table of chunks.
func printChunkTable(chunks []types.Chunk) {
	fmt.Fprintf(os.Stdout, "%-24s  %-44s  %s\n", "ID", "Title", "Tags")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for _, c := range chunks {
		title := c.Title
		if len(title) > 44 {
			title = title[:41] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-24s  %-44s  %s\n", c.ID, title, strings.Join(c.Tags, ", "))
	}
}

func init() {
	listCmd.Flags().Bool("json", false, "output chunks as JSON")
	rootCmd.AddCommand(listCmd)
}

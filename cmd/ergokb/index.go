// Copyright Sigmanaut Labs, 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sigmanaut-labs/ergokb/internal/index"
	"github.com/sigmanaut-labs/ergokb/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the SQLite chunk snapshot (build, query)",
	Long: `Index maintains a SQLite snapshot of the knowledge base for downstream
consumers. The snapshot is derived and rebuildable; the source files stay
canonical. Queries serve exact-id, tag, and keyword lookups in authoring
order: this is a keyword filter, not a ranked search engine.`,
}

// --- build subcommand ---

var indexBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the snapshot from the knowledge base content",
	RunE:  runIndexBuild,
}

func runIndexBuild(cmd *cobra.Command, args []string) error {
	store, err := loadStore(cmd)
	if err != nil {
		return err
	}

	snap, err := index.Open(indexConfig(cmd))
	if err != nil {
		return err
	}
	defer snap.Close()

	if err := snap.Build(context.Background(), store); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "indexed %d chunks (content version %s)\n", store.Len(), store.Version())
	return nil
}

// --- query subcommand ---

var indexQueryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query the snapshot by id, tag, or keyword",
	RunE:  runIndexQuery,
}

func runIndexQuery(cmd *cobra.Command, args []string) error {
	snap, err := index.Open(indexConfig(cmd))
	if err != nil {
		return err
	}
	defer snap.Close()

	ctx := context.Background()
	jsonOutput, _ := cmd.Flags().GetBool("json")

	// Exact id lookup.
	if id, _ := cmd.Flags().GetString("id"); id != "" {
		chunk, err := snap.Get(ctx, id)
		if err != nil {
			return err
		}
		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(chunk)
		}
		printChunkTable([]types.Chunk{chunk})
		return nil
	}

	tags, _ := cmd.Flags().GetStringSlice("tag")
	match, _ := cmd.Flags().GetString("match")
	limit, _ := cmd.Flags().GetInt("limit")

	opts := index.QueryOptions{Tags: tags, Match: match, MaxResults: limit}
	if opts.IsEmpty() {
		return fmt.Errorf("query filter required: provide --id, --tag, or --match")
	}

	results, err := snap.Query(ctx, opts)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No chunks matched.")
		return nil
	}
	printChunkTable(results)
	fmt.Fprintf(os.Stdout, "\n%d chunks\n", len(results))
	return nil
}

// --- shared helpers ---

func indexConfig(cmd *cobra.Command) types.IndexConfig {
	indexDir, _ := cmd.Flags().GetString("index-dir")
	if indexDir == "" {
		indexDir = viper.GetString("index.index_dir")
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")
	if maxResults <= 0 {
		maxResults = viper.GetInt("index.max_results")
	}
	return types.IndexConfig{IndexDir: indexDir, MaxResults: maxResults}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	indexCmd.PersistentFlags().String("index-dir", "", "directory holding the snapshot database (default: index)")
	indexCmd.PersistentFlags().Int("max-results", 0, "default maximum number of query results")

	// Query flags.
	indexQueryCmd.Flags().String("id", "", "exact chunk id lookup")
	indexQueryCmd.Flags().StringSlice("tag", nil, "filter by tag (repeatable)")
	indexQueryCmd.Flags().String("match", "", "FTS5 keyword expression over titles and texts")
	indexQueryCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	indexQueryCmd.Flags().Bool("json", false, "output results as JSON")

	// Wire subcommands.
	indexCmd.AddCommand(indexBuildCmd)
	indexCmd.AddCommand(indexQueryCmd)

	rootCmd.AddCommand(indexCmd)
}

// Copyright Sigmanaut Labs, 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Print a single chunk by id",
	Long: `Get performs an exact lookup by chunk id and prints the chunk. An
unknown id is an error.`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	store, err := loadStore(cmd)
	if err != nil {
		return err
	}

	chunk, err := store.Get(args[0])
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(chunk)
	}

	fmt.Fprintf(os.Stdout, "%s (%s)\n", chunk.Title, chunk.ID)
	if len(chunk.Tags) > 0 {
		fmt.Fprintf(os.Stdout, "tags: %s\n", strings.Join(chunk.Tags, ", "))
	}
	fmt.Fprintf(os.Stdout, "\n%s\n", strings.TrimRight(chunk.Text, "\n"))
	return nil
}

func init() {
	getCmd.Flags().Bool("json", false, "output the chunk as JSON")
	rootCmd.AddCommand(getCmd)
}

// Copyright Sigmanaut Labs, 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sigmanaut-labs/ergokb/internal/linkcheck"
	"github.com/sigmanaut-labs/ergokb/pkg/types"
)

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "Maintain the URLs referenced by the knowledge base",
}

var linksCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that referenced URLs resolve",
	Long: `Check extracts the URLs from the resource_paths chunk (or from every
chunk with --all-chunks) and verifies each one with an HTTP request,
retrying on rate limits. Broken links make the command fail.`,
	RunE: runLinksCheck,
}

func runLinksCheck(cmd *cobra.Command, args []string) error {
	store, err := loadStore(cmd)
	if err != nil {
		return err
	}

	var text string
	if all, _ := cmd.Flags().GetBool("all-chunks"); all {
		for _, c := range store.Chunks() {
			text += c.Text + "\n"
		}
	} else {
		chunk, err := store.Get(types.SectionResourcePaths)
		if err != nil {
			return err
		}
		text = chunk.Text
	}

	urls := linkcheck.ExtractURLs(text)
	if len(urls) == 0 {
		fmt.Println("No URLs found.")
		return nil
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	retries, _ := cmd.Flags().GetInt("retries")
	concurrency, _ := cmd.Flags().GetInt("concurrency")

	checker := linkcheck.NewChecker(types.LinkCheckConfig{
		HTTPConfig:  types.HTTPConfig{Timeout: timeout, UserAgent: "ergokb/" + version},
		MaxRetries:  retries,
		Concurrency: concurrency,
	})

	_, summary := checker.Check(context.Background(), urls, os.Stdout)
	if summary.Broken > 0 {
		return fmt.Errorf("%d broken link(s)", summary.Broken)
	}
	return nil
}

func init() {
	linksCheckCmd.Flags().Duration("timeout", 10*time.Second, "HTTP request timeout")
	linksCheckCmd.Flags().Int("retries", 3, "retry attempts on rate-limited responses")
	linksCheckCmd.Flags().Int("concurrency", 4, "URLs checked in parallel")
	linksCheckCmd.Flags().Bool("all-chunks", false, "scan every chunk for URLs, not just resource_paths")

	linksCmd.AddCommand(linksCheckCmd)
	rootCmd.AddCommand(linksCmd)
}

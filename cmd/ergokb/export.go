// Copyright Sigmanaut Labs, 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sigmanaut-labs/ergokb/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the knowledge base into other serializations",
	Long: `Export renders the loaded knowledge base into the requested format and
writes it under the output directory. Data formats (yaml, json, toml, sexp)
round-trip through the loader; markdown, rst, and text are emit-only
document formats. --all exports every format.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	store, err := loadStore(cmd)
	if err != nil {
		return err
	}

	outDir, _ := cmd.Flags().GetString("out")
	if outDir == "" {
		outDir = viper.GetString("export.output_dir")
	}

	doc := store.Document()

	all, _ := cmd.Flags().GetBool("all")
	if all {
		result := export.WriteAll(doc, outDir, os.Stdout)
		if result.HasFailures() {
			return fmt.Errorf("%d format(s) failed to export", result.Failed)
		}
		return nil
	}

	format, _ := cmd.Flags().GetString("format")
	path, err := export.WriteFile(doc, outDir, format)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "wrote %s\n", path)
	return nil
}

func init() {
	exportCmd.Flags().String("format", "yaml", "export format: "+strings.Join(export.Formats(), ", "))
	exportCmd.Flags().String("out", "", "output directory (default: export)")
	exportCmd.Flags().Bool("all", false, "export every supported format")
	rootCmd.AddCommand(exportCmd)
}

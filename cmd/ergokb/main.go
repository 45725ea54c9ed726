// Copyright Sigmanaut Labs, 2026. All rights reserved.

// Package main is the entry point for the ergokb CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sigmanaut-labs/ergokb/internal/kb"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the ergokb CLI.
var rootCmd = &cobra.Command{
	Use:   "ergokb",
	Short: "ErgoScript security knowledge base tooling",
	Long: `ergokb loads, validates, queries, and exports the ErgoScript security
knowledge base: reference content on the eUTXO model, secure contract design
patterns, known vulnerability classes, and audit guidance.

The content ships as parallel serializations (YAML, JSON, TOML, S-expression)
that must stay in logical parity. ergokb serves exact chunk lookups and tag
filters from the loaded content, verifies parity across formats, exports the
emit-only document formats, and builds a SQLite snapshot for downstream RAG
pipelines.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./ergokb.yaml or ~/.config/ergokb/config.yaml)")
	rootCmd.PersistentFlags().String("content-dir", "", "directory holding the knowledge base serializations (default: content)")
	rootCmd.PersistentFlags().String("source", "", "knowledge base file to load (default: <content-dir>/knowledge_base.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("ergokb")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "ergokb"))
		}
	}

	viper.SetDefault("kb.content_dir", "content")
	viper.SetDefault("index.index_dir", "index")
	viper.SetDefault("index.max_results", 20)
	viper.SetDefault("export.output_dir", "export")

	viper.SetEnvPrefix("ERGOKB")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// contentDir resolves the content directory from flag or config.
func contentDir(cmd *cobra.Command) string {
	dir, _ := cmd.Flags().GetString("content-dir")
	if dir == "" {
		dir = viper.GetString("kb.content_dir")
	}
	return dir
}

// sourcePath resolves the knowledge base file query commands load.
func sourcePath(cmd *cobra.Command) string {
	src, _ := cmd.Flags().GetString("source")
	if src == "" {
		src = viper.GetString("kb.source_file")
	}
	if src == "" {
		src = filepath.Join(contentDir(cmd), "knowledge_base.yaml")
	}
	return src
}

// loadStore loads and validates the configured knowledge base file.
func loadStore(cmd *cobra.Command) (*kb.Store, error) {
	return kb.Load(sourcePath(cmd))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

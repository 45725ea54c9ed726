// Copyright Sigmanaut Labs, 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for tooling that makes network
// requests (currently only the resource link checker).
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "ergokb/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// KBConfig holds settings for loading the knowledge base content.
type KBConfig struct {
	// ContentDir is the directory holding the knowledge base serializations
	// (default "content").
	ContentDir string `json:"content_dir" yaml:"content_dir"`

	// SourceFile overrides the file loaded by query commands. Empty means
	// the canonical YAML file inside ContentDir.
	SourceFile string `json:"source_file,omitempty" yaml:"source_file,omitempty"`
}

// IndexConfig holds settings for the SQLite snapshot index.
type IndexConfig struct {
	// IndexDir is the directory holding the snapshot database
	// (default "index").
	IndexDir string `json:"index_dir" yaml:"index_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ExportConfig holds settings for the export stage.
type ExportConfig struct {
	// OutputDir is the directory exported serializations are written to
	// (default "export").
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// LinkCheckConfig holds settings for the resource link checker.
type LinkCheckConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxRetries is the number of retry attempts on rate-limited responses
	// (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// Concurrency is the number of URLs checked in parallel (default 4).
	Concurrency int `json:"concurrency" yaml:"concurrency"`
}

// Config groups all tool configuration, mirroring the ergokb.yaml layout.
type Config struct {
	KB        KBConfig        `json:"kb" yaml:"kb"`
	Index     IndexConfig     `json:"index" yaml:"index"`
	Export    ExportConfig    `json:"export" yaml:"export"`
	LinkCheck LinkCheckConfig `json:"link_check" yaml:"link_check"`
}

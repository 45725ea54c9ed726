// Copyright Sigmanaut Labs, 2026. All rights reserved.

// Package types holds the data structures shared across ergokb packages.
package types

// Section identifiers for the knowledge base. Every serialization of the
// content encodes exactly these logical sections.
const (
	SectionCoreReferences      = "core_references"
	SectionEUTXOModel          = "eutxo_model"
	SectionKnownIssues         = "known_issues"
	SectionSecurePatternsIndex = "secure_patterns_index"
	SectionResourcePaths       = "resource_paths"
	SectionAgentBehaviorRules  = "agent_behavior_rules"
	SectionLLMUsageNotes       = "llm_usage_notes"
	SectionAuditExamples       = "audit_examples"
)

// CoreSections lists the section ids a complete knowledge base carries,
// in canonical order. audit_examples is optional in source content.
var CoreSections = []string{
	SectionCoreReferences,
	SectionEUTXOModel,
	SectionKnownIssues,
	SectionSecurePatternsIndex,
	SectionResourcePaths,
	SectionAgentBehaviorRules,
	SectionLLMUsageNotes,
}

// Chunk is a named, tagged unit of reference text intended for
// retrieval-augmented prompting. Chunks are immutable once loaded; content
// changes happen by re-authoring the source files.
type Chunk struct {
	// ID is a unique stable identifier (e.g. "known_issues").
	ID string `json:"id" yaml:"id" toml:"id"`

	// Title is a human-readable label.
	Title string `json:"title" yaml:"title" toml:"title"`

	// Tags are lowercase topic labels used for filtering.
	Tags []string `json:"tags" yaml:"tags" toml:"tags"`

	// Text is the free-form reference content.
	Text string `json:"text" yaml:"text" toml:"text"`
}

// HasTag reports whether the chunk carries the given tag.
func (c Chunk) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// HasAnyTag reports whether the chunk's tag set intersects the given set.
// An empty query set never matches.
func (c Chunk) HasAnyTag(tags []string) bool {
	for _, tag := range tags {
		if c.HasTag(tag) {
			return true
		}
	}
	return false
}

// KnowledgeBase is the on-disk document shape shared by the YAML, JSON and
// TOML serializations: a format version plus the ordered chunk list.
type KnowledgeBase struct {
	// Version identifies the content schema revision.
	Version string `json:"version" yaml:"version" toml:"version"`

	// Chunks holds the sections in authoring order.
	Chunks []Chunk `json:"chunks" yaml:"chunks" toml:"chunks"`
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// EntityType identifies which collection a record originated from.
// Per prd011-console-search, suggestions carry the type as a structured
// field; the composite display title repeats it for presentation only.
type EntityType string

const (
	TypePublication EntityType = "publication"
	TypeResearch    EntityType = "research"
	TypeProgram     EntityType = "program"
	TypeEvent       EntityType = "event"
)

// SearchSuggestion is an ephemeral cross-entity search result. It is
// constructed per search invocation and never persisted.
type SearchSuggestion struct {
	// ID is the record identifier used for deduplication and routing.
	// Never empty: records without one are excluded from aggregation.
	ID string `json:"id" yaml:"id"`

	// Title is the composite display title, "<original title> (<type>)".
	Title string `json:"title" yaml:"title"`

	// Description is the field the query matched against.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Type is the source collection.
	Type EntityType `json:"type" yaml:"type"`
}

// TimelineItem is a dated entry on the overview timeline.
type TimelineItem struct {
	ID    string     `json:"id" yaml:"id"`
	Title string     `json:"title" yaml:"title"`
	Type  EntityType `json:"type" yaml:"type"`
	Time  string     `json:"time" yaml:"time"`
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/lab-console/pkg/types"
)

// QueryFile is the on-disk representation of a search and its suggestions.
// The operator can save a search to a file and reload it later without
// touching the backend.
type QueryFile struct {
	Query       string                   `yaml:"query"`
	Config      QueryFileConfig          `yaml:"config"`
	Suggestions []types.SearchSuggestion `yaml:"suggestions"`
	Summary     QuerySummary             `yaml:"summary"`
}

// QueryFileConfig stores the search settings that produced the suggestions.
type QueryFileConfig struct {
	MinQueryLength int `yaml:"min_query_length"`
	MaxSuggestions int `yaml:"max_suggestions"`
}

// QuerySummary stores suggestion statistics and a timestamp.
type QuerySummary struct {
	Total        int       `yaml:"total"`
	SourceErrors []string  `yaml:"source_errors,omitempty"`
	Timestamp    time.Time `yaml:"timestamp"`
}

// WriteQueryFile saves a query and its suggestions to a YAML file.
func WriteQueryFile(path, query string, cfg types.SearchConfig, out Output) error {
	qf := QueryFile{
		Query: query,
		Config: QueryFileConfig{
			MinQueryLength: cfg.MinQueryLength,
			MaxSuggestions: cfg.MaxSuggestions,
		},
		Suggestions: out.Suggestions,
		Summary: QuerySummary{
			Total:        len(out.Suggestions),
			SourceErrors: out.SourceErrors,
			Timestamp:    time.Now(),
		},
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}

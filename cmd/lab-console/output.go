// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// loadRecord reads a YAML or JSON file into a record, deciding by
// extension (.json is JSON, everything else is YAML).
func loadRecord[T any](path string) (T, error) {
	var rec T
	data, err := os.ReadFile(path)
	if err != nil {
		return rec, fmt.Errorf("reading %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, &rec); err != nil {
			return rec, fmt.Errorf("parsing %s: %w", path, err)
		}
		return rec, nil
	}
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf("parsing %s: %w", path, err)
	}
	return rec, nil
}

// printJSON writes a record as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printYAML writes a record as YAML to stdout.
func printYAML(v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

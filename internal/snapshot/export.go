// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/lab-console/pkg/types"
)

// ExportYAML writes the snapshot to dir/export.yaml. An empty entity
// exports every collection.
func (s *Store) ExportYAML(ctx context.Context, entity types.EntityType) error {
	records, err := s.Records(ctx, entity)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}

	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(filepath.Join(s.dir, "export.yaml"), data, 0o644)
}

// ExportJSON writes the snapshot to dir/export.json. An empty entity
// exports every collection.
func (s *Store) ExportJSON(ctx context.Context, entity types.EntityType) error {
	records, err := s.Records(ctx, entity)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(filepath.Join(s.dir, "export.json"), data, 0o644)
}

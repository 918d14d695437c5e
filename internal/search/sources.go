// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"

	"github.com/pdiddy/lab-console/internal/client"
	"github.com/pdiddy/lab-console/pkg/types"
)

// Each source fetches its whole collection and projects it down to
// searchable records; matching happens in the aggregator. The projected
// description follows a per-entity precedence so the match text is the
// same one a suggestion later displays.

type publicationSource struct {
	c *client.Publications
}

// NewPublicationSource projects the publications collection.
func NewPublicationSource(c *client.Publications) Source {
	return publicationSource{c: c}
}

func (publicationSource) Name() string           { return "publications" }
func (publicationSource) Type() types.EntityType { return types.TypePublication }

func (s publicationSource) Fetch(ctx context.Context) ([]Record, error) {
	items, err := s.c.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(items))
	for _, it := range items {
		out = append(out, Record{
			ID:          it.ID,
			Title:       it.Title,
			Description: firstNonEmpty(it.Description, it.Summary, it.Abstract),
		})
	}
	return out, nil
}

type researchSource struct {
	c *client.Research
}

// NewResearchSource projects the research collection.
func NewResearchSource(c *client.Research) Source {
	return researchSource{c: c}
}

func (researchSource) Name() string           { return "research" }
func (researchSource) Type() types.EntityType { return types.TypeResearch }

func (s researchSource) Fetch(ctx context.Context) ([]Record, error) {
	items, err := s.c.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(items))
	for _, it := range items {
		out = append(out, Record{
			ID:          it.ID,
			Title:       it.Title,
			Description: firstNonEmpty(it.Description, it.Abstract),
		})
	}
	return out, nil
}

type programSource struct {
	c *client.Programs
}

// NewProgramSource projects the programs collection.
func NewProgramSource(c *client.Programs) Source {
	return programSource{c: c}
}

func (programSource) Name() string           { return "programs" }
func (programSource) Type() types.EntityType { return types.TypeProgram }

func (s programSource) Fetch(ctx context.Context) ([]Record, error) {
	items, err := s.c.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(items))
	for _, it := range items {
		out = append(out, Record{
			ID:          it.ID,
			Title:       it.Title,
			Description: it.Description,
		})
	}
	return out, nil
}

// Sources builds the standard source set in its fixed order: publications,
// research, programs.
func Sources(cfg types.ConsoleConfig, creds client.CredentialProvider) []Source {
	return []Source{
		NewPublicationSource(client.NewPublications(cfg, creds)),
		NewResearchSource(client.NewResearch(cfg, creds)),
		NewProgramSource(client.NewPrograms(cfg, creds)),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

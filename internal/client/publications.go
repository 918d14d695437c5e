// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/pdiddy/lab-console/internal/envelope"
	"github.com/pdiddy/lab-console/pkg/types"
)

// Publications manages the publications collection.
type Publications struct {
	c *Client
}

// NewPublications builds the publications client from console configuration.
func NewPublications(cfg types.ConsoleConfig, creds CredentialProvider) *Publications {
	return &Publications{c: New(cfg.Endpoints.PublicationsURL(), cfg.HTTP, creds)}
}

// List fetches the publication collection, normalized across envelope shapes.
func (p *Publications) List(ctx context.Context, params Params) ([]types.Publication, error) {
	body, err := p.c.get(ctx, "", params)
	if err != nil {
		return nil, err
	}
	return decodePublications(body)
}

// Get fetches a single publication by id.
func (p *Publications) Get(ctx context.Context, id string) (types.Publication, error) {
	var pub types.Publication
	body, err := p.c.get(ctx, url.PathEscape(id), nil)
	if err != nil {
		return pub, err
	}
	if raw := firstRecord(body); raw != nil {
		if err := json.Unmarshal(raw, &pub); err != nil {
			return pub, fmt.Errorf("parsing publication %s: %w", id, err)
		}
	}
	return pub, nil
}

// Create posts a new publication and returns the server's record, carrying
// the assigned identifier.
func (p *Publications) Create(ctx context.Context, pub types.Publication) (types.Publication, error) {
	body, err := p.c.postJSON(ctx, "", pub, true)
	if err != nil {
		return types.Publication{}, err
	}
	created := pub
	if raw := firstRecord(body); raw != nil {
		if err := json.Unmarshal(raw, &created); err != nil {
			return pub, fmt.Errorf("parsing create response: %w", err)
		}
	}
	return created, nil
}

// Update replaces a publication by id.
func (p *Publications) Update(ctx context.Context, id string, pub types.Publication) (types.Publication, error) {
	body, err := p.c.putJSON(ctx, url.PathEscape(id), pub)
	if err != nil {
		return types.Publication{}, err
	}
	updated := pub
	if raw := firstRecord(body); raw != nil {
		if err := json.Unmarshal(raw, &updated); err != nil {
			return pub, fmt.Errorf("parsing update response: %w", err)
		}
	}
	return updated, nil
}

// Delete removes a publication by id.
func (p *Publications) Delete(ctx context.Context, id string) error {
	_, err := p.c.delete(ctx, url.PathEscape(id))
	return err
}

func decodePublications(body []byte) ([]types.Publication, error) {
	records := envelope.Records(body)
	out := make([]types.Publication, 0, len(records))
	for _, raw := range records {
		var pub types.Publication
		if err := json.Unmarshal(raw, &pub); err != nil {
			return nil, fmt.Errorf("parsing publication record: %w", err)
		}
		out = append(out, pub)
	}
	return out, nil
}

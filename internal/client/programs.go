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

// Programs manages the programs collection.
type Programs struct {
	c *Client
}

// NewPrograms builds the programs client from console configuration.
func NewPrograms(cfg types.ConsoleConfig, creds CredentialProvider) *Programs {
	return &Programs{c: New(cfg.Endpoints.ProgramsURL(), cfg.HTTP, creds)}
}

// List fetches the program collection, normalized across envelope shapes.
func (p *Programs) List(ctx context.Context, params Params) ([]types.Program, error) {
	body, err := p.c.get(ctx, "", params)
	if err != nil {
		return nil, err
	}
	records := envelope.Records(body)
	out := make([]types.Program, 0, len(records))
	for _, raw := range records {
		var prog types.Program
		if err := json.Unmarshal(raw, &prog); err != nil {
			return nil, fmt.Errorf("parsing program record: %w", err)
		}
		out = append(out, prog)
	}
	return out, nil
}

// Create posts a new program and returns the server's record.
func (p *Programs) Create(ctx context.Context, prog types.Program) (types.Program, error) {
	body, err := p.c.postJSON(ctx, "", prog, true)
	if err != nil {
		return types.Program{}, err
	}
	created := prog
	if raw := firstRecord(body); raw != nil {
		if err := json.Unmarshal(raw, &created); err != nil {
			return prog, fmt.Errorf("parsing create response: %w", err)
		}
	}
	return created, nil
}

// Update replaces a program by id.
func (p *Programs) Update(ctx context.Context, id string, prog types.Program) (types.Program, error) {
	body, err := p.c.putJSON(ctx, url.PathEscape(id), prog)
	if err != nil {
		return types.Program{}, err
	}
	updated := prog
	if raw := firstRecord(body); raw != nil {
		if err := json.Unmarshal(raw, &updated); err != nil {
			return prog, fmt.Errorf("parsing update response: %w", err)
		}
	}
	return updated, nil
}

// Delete removes a program by id.
func (p *Programs) Delete(ctx context.Context, id string) error {
	_, err := p.c.delete(ctx, url.PathEscape(id))
	return err
}

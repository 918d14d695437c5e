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

// Events manages the events collection, which lives on its own backend
// service in some deployments.
type Events struct {
	c *Client
}

// NewEvents builds the events client from console configuration.
func NewEvents(cfg types.ConsoleConfig, creds CredentialProvider) *Events {
	return &Events{c: New(cfg.Endpoints.EventsURL(), cfg.HTTP, creds)}
}

// List fetches the event collection, normalized across envelope shapes.
func (e *Events) List(ctx context.Context, params Params) ([]types.Event, error) {
	body, err := e.c.get(ctx, "", params)
	if err != nil {
		return nil, err
	}
	return decodeEvents(body)
}

// Featured fetches the curated featured events.
func (e *Events) Featured(ctx context.Context) ([]types.Event, error) {
	body, err := e.c.get(ctx, "featured", nil)
	if err != nil {
		return nil, err
	}
	return decodeEvents(body)
}

// Get fetches a single event by id.
func (e *Events) Get(ctx context.Context, id string) (types.Event, error) {
	var ev types.Event
	body, err := e.c.get(ctx, url.PathEscape(id), nil)
	if err != nil {
		return ev, err
	}
	if raw := firstRecord(body); raw != nil {
		if err := json.Unmarshal(raw, &ev); err != nil {
			return ev, fmt.Errorf("parsing event %s: %w", id, err)
		}
	}
	return ev, nil
}

// Create posts a new event and returns the server's record.
func (e *Events) Create(ctx context.Context, ev types.Event) (types.Event, error) {
	body, err := e.c.postJSON(ctx, "", ev, true)
	if err != nil {
		return types.Event{}, err
	}
	created := ev
	if raw := firstRecord(body); raw != nil {
		if err := json.Unmarshal(raw, &created); err != nil {
			return ev, fmt.Errorf("parsing create response: %w", err)
		}
	}
	return created, nil
}

// Update replaces an event by id.
func (e *Events) Update(ctx context.Context, id string, ev types.Event) (types.Event, error) {
	body, err := e.c.putJSON(ctx, url.PathEscape(id), ev)
	if err != nil {
		return types.Event{}, err
	}
	updated := ev
	if raw := firstRecord(body); raw != nil {
		if err := json.Unmarshal(raw, &updated); err != nil {
			return ev, fmt.Errorf("parsing update response: %w", err)
		}
	}
	return updated, nil
}

// Delete removes an event by id.
func (e *Events) Delete(ctx context.Context, id string) error {
	_, err := e.c.delete(ctx, url.PathEscape(id))
	return err
}

// Register signs an attendee up for an event. Registration is open to the
// public, so the request carries no credential.
func (e *Events) Register(ctx context.Context, id string, att types.Attendee) error {
	_, err := e.c.postJSON(ctx, url.PathEscape(id)+"/register", att, false)
	return err
}

func decodeEvents(body []byte) ([]types.Event, error) {
	records := envelope.Records(body)
	out := make([]types.Event, 0, len(records))
	for _, raw := range records {
		var ev types.Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, fmt.Errorf("parsing event record: %w", err)
		}
		out = append(out, ev)
	}
	return out, nil
}

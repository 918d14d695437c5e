// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pdiddy/lab-console/internal/auth"
	"github.com/pdiddy/lab-console/internal/envelope"
	"github.com/pdiddy/lab-console/pkg/types"
)

// Research manages the research collection.
type Research struct {
	c *Client
}

// NewResearch builds the research client from console configuration.
func NewResearch(cfg types.ConsoleConfig, creds CredentialProvider) *Research {
	return &Research{c: New(cfg.Endpoints.ResearchURL(), cfg.HTTP, creds)}
}

// List fetches the research collection, normalized across envelope shapes.
func (r *Research) List(ctx context.Context, params Params) ([]types.Research, error) {
	body, err := r.c.get(ctx, "", params)
	if err != nil {
		return nil, err
	}
	return decodeResearch(body)
}

// Latest returns the newest records. It first asks the backend for a
// sorted, limited page (a convention not every deployment supports) and
// falls back to fetching everything and sorting client-side by creation
// time, newest first.
func (r *Research) Latest(ctx context.Context, limit int) ([]types.Research, error) {
	if limit <= 0 {
		limit = 5
	}

	params := Params{"limit": limit, "sort": "createdAt:desc"}
	if body, err := r.c.get(ctx, "", params); err == nil {
		if items, derr := decodeResearch(body); derr == nil && len(items) > 0 {
			if len(items) > limit {
				items = items[:limit]
			}
			return items, nil
		}
	}

	all, err := r.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool {
		return parseWhen(all[i].CreatedAt).After(parseWhen(all[j].CreatedAt))
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// ResearchUpload carries a new research record plus optional local file
// attachments for the PDF and the cover image.
type ResearchUpload struct {
	types.Research

	// PDFPath and CoverPath are local file paths; empty means no attachment.
	PDFPath   string
	CoverPath string
}

// Create posts a new research record as a multipart form — the one create
// path that accepts file attachments. When the author field is blank it is
// filled from the bearer token's JWT claims, so records stay attributable
// to the signed-in user.
func (r *Research) Create(ctx context.Context, up ResearchUpload) (types.Research, error) {
	author := up.Author
	if author == "" {
		author = auth.ParseClaims(r.c.token()).Identity()
	}
	status := up.Status
	if status == "" {
		status = types.StatusOngoing
	}
	tags := up.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return types.Research{}, fmt.Errorf("encoding tags: %w", err)
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	fields := map[string]string{
		"title":       up.Title,
		"summary":     up.Summary,
		"abstract":    up.Abstract,
		"description": up.Description,
		"category":    up.Category,
		"status":      string(status),
		"tags":        string(tagsJSON),
		"author":      author,
	}
	for name, value := range fields {
		if err := form.WriteField(name, value); err != nil {
			return types.Research{}, fmt.Errorf("writing form field %s: %w", name, err)
		}
	}
	if up.PublishedDate != "" {
		if err := form.WriteField("publishedDate", up.PublishedDate); err != nil {
			return types.Research{}, fmt.Errorf("writing form field publishedDate: %w", err)
		}
	}
	if up.DOI != "" {
		if err := form.WriteField("doi", up.DOI); err != nil {
			return types.Research{}, fmt.Errorf("writing form field doi: %w", err)
		}
	}

	if err := attachFile(form, "pdfFile", up.PDFPath); err != nil {
		return types.Research{}, err
	}
	if err := attachFile(form, "coverImage", up.CoverPath); err != nil {
		return types.Research{}, err
	}
	if err := form.Close(); err != nil {
		return types.Research{}, fmt.Errorf("finalizing form: %w", err)
	}

	body, err := r.c.do(ctx, http.MethodPost, r.c.endpoint(""), &buf, form.FormDataContentType(), true)
	if err != nil {
		return types.Research{}, err
	}

	created := up.Research
	created.Author = author
	created.Status = status
	if raw := firstRecord(body); raw != nil {
		if err := json.Unmarshal(raw, &created); err != nil {
			return up.Research, fmt.Errorf("parsing create response: %w", err)
		}
	}
	return created, nil
}

// Update replaces a research record by id with a JSON body.
func (r *Research) Update(ctx context.Context, id string, rec types.Research) (types.Research, error) {
	body, err := r.c.putJSON(ctx, url.PathEscape(id), rec)
	if err != nil {
		return types.Research{}, err
	}
	updated := rec
	if raw := firstRecord(body); raw != nil {
		if err := json.Unmarshal(raw, &updated); err != nil {
			return rec, fmt.Errorf("parsing update response: %w", err)
		}
	}
	return updated, nil
}

// Delete removes a research record by id.
func (r *Research) Delete(ctx context.Context, id string) error {
	_, err := r.c.delete(ctx, url.PathEscape(id))
	return err
}

// Visible filters research records to those the user may manage: admins see
// everything, everyone else only records they authored. nil claims (no
// token, or an unparsable one) see the unfiltered list read-only.
func Visible(items []types.Research, claims *auth.Claims) []types.Research {
	if claims == nil || claims.Admin() {
		return items
	}
	identity := claims.Identity()
	out := make([]types.Research, 0, len(items))
	for _, it := range items {
		if it.Author == identity {
			out = append(out, it)
		}
	}
	return out
}

func decodeResearch(body []byte) ([]types.Research, error) {
	records := envelope.Records(body)
	out := make([]types.Research, 0, len(records))
	for _, raw := range records {
		var rec types.Research
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("parsing research record: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func attachFile(form *multipart.Writer, field, path string) error {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s attachment: %w", field, err)
	}
	defer f.Close()

	part, err := form.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("creating %s form part: %w", field, err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("copying %s attachment: %w", field, err)
	}
	return nil
}

// parseWhen parses the backend's timestamp strings; the zero time sorts
// records without a usable timestamp last.
func parseWhen(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the lab-console admin client.
// Implements: prd010-admin-client (entity records);
//
//	prd011-console-search (SearchSuggestion, EntityType);
//	docs/ARCHITECTURE § Data Structures.
//
// Entity records mirror the backend's JSON conventions: the identifier field
// is serialized as "_id" and is absent until the server assigns one.
package types

// Publication is a published paper or article managed through the console.
type Publication struct {
	// ID is the server-assigned identifier, empty until persisted.
	ID string `json:"_id,omitempty" yaml:"id,omitempty"`

	Title       string `json:"title" yaml:"title"`
	Summary     string `json:"summary" yaml:"summary"`
	Abstract    string `json:"abstract" yaml:"abstract"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Category    string `json:"category,omitempty" yaml:"category,omitempty"`

	// Tags is a set of free-form labels; Authors is ordered.
	Tags    []string `json:"tags" yaml:"tags"`
	Authors []string `json:"authors" yaml:"authors"`

	PDFURL        string `json:"pdfUrl" yaml:"pdf_url"`
	CoverImageURL string `json:"coverImageUrl,omitempty" yaml:"cover_image_url,omitempty"`

	// PublishedDate and CreatedAt are ISO 8601 strings as sent by the backend.
	PublishedDate string `json:"publishedDate" yaml:"published_date"`
	DOI           string `json:"doi,omitempty" yaml:"doi,omitempty"`
	Citations     int    `json:"citations,omitempty" yaml:"citations,omitempty"`
	Downloads     int    `json:"downloads,omitempty" yaml:"downloads,omitempty"`
	IsFeatured    bool   `json:"isFeatured,omitempty" yaml:"is_featured,omitempty"`
	CreatedBy     string `json:"createdBy,omitempty" yaml:"created_by,omitempty"`
	CreatedAt     string `json:"createdAt,omitempty" yaml:"created_at,omitempty"`
}

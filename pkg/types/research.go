// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ResearchStatus is the lifecycle state of a research record.
type ResearchStatus string

const (
	StatusOngoing   ResearchStatus = "ongoing"
	StatusCompleted ResearchStatus = "completed"
	StatusPublished ResearchStatus = "published"
)

// Research is a work-in-progress research record. Unlike publications it has
// a single author, used for visibility filtering of non-admin users.
type Research struct {
	ID string `json:"_id,omitempty" yaml:"id,omitempty"`

	Title       string `json:"title" yaml:"title"`
	Summary     string `json:"summary" yaml:"summary"`
	Abstract    string `json:"abstract" yaml:"abstract"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Category    string `json:"category,omitempty" yaml:"category,omitempty"`

	Status ResearchStatus `json:"status" yaml:"status"`

	Tags   []string `json:"tags" yaml:"tags"`
	Author string   `json:"author" yaml:"author"`

	PDFURL        string `json:"pdfUrl,omitempty" yaml:"pdf_url,omitempty"`
	PublishedDate string `json:"publishedDate,omitempty" yaml:"published_date,omitempty"`
	DOI           string `json:"doi,omitempty" yaml:"doi,omitempty"`
	CreatedAt     string `json:"createdAt,omitempty" yaml:"created_at,omitempty"`
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Program is a training or fellowship program with an application window.
type Program struct {
	ID string `json:"_id,omitempty" yaml:"id,omitempty"`

	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Type        string `json:"type" yaml:"type"`

	ApplicationLink     string `json:"applicationLink" yaml:"application_link"`
	StartDate           string `json:"startDate" yaml:"start_date"`
	ApplicationDeadline string `json:"applicationDeadline" yaml:"application_deadline"`
	Duration            string `json:"duration" yaml:"duration"`

	Tags          []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	CoverImageURL string   `json:"coverImageUrl,omitempty" yaml:"cover_image_url,omitempty"`
	IsFeatured    bool     `json:"isFeatured,omitempty" yaml:"is_featured,omitempty"`
	CreatedBy     string   `json:"createdBy,omitempty" yaml:"created_by,omitempty"`
	CreatedAt     string   `json:"createdAt,omitempty" yaml:"created_at,omitempty"`
}

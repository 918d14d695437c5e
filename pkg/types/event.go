// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// EventStatus is the lifecycle state of an event.
type EventStatus string

const (
	EventUpcoming  EventStatus = "upcoming"
	EventOngoing   EventStatus = "ongoing"
	EventCompleted EventStatus = "completed"
	EventCancelled EventStatus = "cancelled"
)

// Event is a scheduled event with optional attendee registration.
type Event struct {
	ID string `json:"_id,omitempty" yaml:"id,omitempty"`

	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Type        string `json:"type" yaml:"type"`

	// StartDate and EndDate are ISO 8601 strings.
	StartDate string `json:"startDate" yaml:"start_date"`
	EndDate   string `json:"endDate" yaml:"end_date"`

	Location         string `json:"location,omitempty" yaml:"location,omitempty"`
	RegistrationLink string `json:"registrationLink,omitempty" yaml:"registration_link,omitempty"`
	ImageURL         string `json:"imageUrl,omitempty" yaml:"image_url,omitempty"`

	Capacity        int  `json:"capacity,omitempty" yaml:"capacity,omitempty"`
	RegisteredCount int  `json:"registeredCount,omitempty" yaml:"registered_count,omitempty"`
	IsFeatured      bool `json:"isFeatured,omitempty" yaml:"is_featured,omitempty"`

	Status    EventStatus `json:"status,omitempty" yaml:"status,omitempty"`
	CreatedBy string      `json:"createdBy,omitempty" yaml:"created_by,omitempty"`
	CreatedAt string      `json:"createdAt,omitempty" yaml:"created_at,omitempty"`
}

// Attendee is a registration request for an event.
type Attendee struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

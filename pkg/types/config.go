package types

import "time"

// DefaultOrigin is the hosted backend used when no base URL override is set.
const DefaultOrigin = "https://innovation-lab-qhgb.onrender.com"

// HTTPConfig holds shared HTTP settings for all backend calls.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero means no client-side
	// timeout: requests run to completion or transport failure.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with requests
	// (e.g. "lab-console/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// EndpointConfig holds the per-resource backend base URLs. The backend is
// split across deployments: events and publications can each point at their
// own origin, while programs, research, and auth share APIBase.
type EndpointConfig struct {
	// APIBase is the origin shared by programs, research, and auth
	// endpoints (paths /api/programs, /api/research are appended).
	APIBase string `json:"api_base" yaml:"api_base"`

	// PublicationsBase is the full publications collection URL.
	PublicationsBase string `json:"publications_base" yaml:"publications_base"`

	// EventsBase is the full events collection URL.
	EventsBase string `json:"events_base" yaml:"events_base"`
}

// PublicationsURL returns the publications collection endpoint.
func (e EndpointConfig) PublicationsURL() string {
	if e.PublicationsBase != "" {
		return trimSlash(e.PublicationsBase)
	}
	return DefaultOrigin + "/api/publications"
}

// EventsURL returns the events collection endpoint.
func (e EndpointConfig) EventsURL() string {
	if e.EventsBase != "" {
		return trimSlash(e.EventsBase)
	}
	return DefaultOrigin + "/api/events"
}

// ResearchURL returns the research collection endpoint.
func (e EndpointConfig) ResearchURL() string {
	return e.sharedBase() + "/api/research"
}

// ProgramsURL returns the programs collection endpoint.
func (e EndpointConfig) ProgramsURL() string {
	return e.sharedBase() + "/api/programs"
}

func (e EndpointConfig) sharedBase() string {
	if e.APIBase != "" {
		return trimSlash(e.APIBase)
	}
	return DefaultOrigin
}

func trimSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}

// SearchConfig holds settings for cross-entity search.
type SearchConfig struct {
	// MinQueryLength gates search: shorter trimmed queries return no
	// suggestions and issue no requests (default 2).
	MinQueryLength int `json:"min_query_length" yaml:"min_query_length"`

	// MaxSuggestions caps the combined deduplicated result set (default 8).
	MaxSuggestions int `json:"max_suggestions" yaml:"max_suggestions"`

	// DebounceDelay is the quiet period after the last keystroke before a
	// search is issued (default 300ms).
	DebounceDelay time.Duration `json:"debounce_delay" yaml:"debounce_delay"`
}

// OverviewConfig holds settings for the overview analytics.
type OverviewConfig struct {
	// Window is the trailing window compared against the preceding window
	// of the same length (default 7 days).
	Window time.Duration `json:"window" yaml:"window"`

	// TimelineLimit is the number of timeline entries shown (default 5).
	TimelineLimit int `json:"timeline_limit" yaml:"timeline_limit"`
}

// SnapshotConfig holds settings for the offline snapshot store.
type SnapshotConfig struct {
	// Dir is the directory holding the snapshot database and exports.
	Dir string `json:"dir" yaml:"dir"`
}

// ConsoleConfig groups all configuration for the console.
type ConsoleConfig struct {
	HTTP      HTTPConfig     `json:"http" yaml:"http"`
	Endpoints EndpointConfig `json:"endpoints" yaml:"endpoints"`
	Search    SearchConfig   `json:"search" yaml:"search"`
	Overview  OverviewConfig `json:"overview" yaml:"overview"`
	Snapshot  SnapshotConfig `json:"snapshot" yaml:"snapshot"`

	// CredentialsDir holds the bearer token files (see internal/auth).
	CredentialsDir string `json:"credentials_dir" yaml:"credentials_dir"`
}

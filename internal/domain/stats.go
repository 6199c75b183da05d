// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// Stats is the metadata snapshot fetched for a single repository in one run.
// It is never merged with an older snapshot: each run replaces it wholesale.
type Stats struct {
	Stars        int    `json:"stars" yaml:"stars" toml:"stars"`
	Contributors int    `json:"contributors" yaml:"contributors" toml:"contributors"` // 0 = unknown
	LastActivity string `json:"last_activity" yaml:"last_activity" toml:"last_activity"`
	Archived     bool   `json:"archived" yaml:"archived" toml:"archived"`
	Language     string `json:"language,omitempty" yaml:"language,omitempty" toml:"language,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty" yaml:"updated_at,omitempty" toml:"updated_at,omitempty"`
}

// Quota is the API quota observed by the rate governor.
// Known is false when the quota endpoint could not be queried.
type Quota struct {
	Remaining int
	Limit     int
	ResetAt   time.Time
	Known     bool
}

package domain

import "strings"

// TrackedRepository is a repository listed in the configuration file and
// rendered into the document. Repo ("owner/name") is its unique key.
type TrackedRepository struct {
	Name        string   `json:"name" yaml:"name" toml:"name"`
	Repo        string   `json:"repo" yaml:"repo" toml:"repo"`
	Description string   `json:"description" yaml:"description" toml:"description"`
	Category    Category `json:"category" yaml:"category" toml:"category"`
	Stats       *Stats   `json:"stats,omitempty" yaml:"stats,omitempty" toml:"stats,omitempty"`
	// IsNew marks repositories found by discovery in the current run.
	// It is cleared before the configuration is persisted.
	IsNew bool `json:"is_new,omitempty" yaml:"is_new,omitempty" toml:"is_new,omitempty"`
}

// URL returns the GitHub web URL for the repository.
func (r TrackedRepository) URL() string {
	return "https://github.com/" + r.Repo
}

// SplitRepo splits an "owner/name" identifier. ok is false for anything else.
func SplitRepo(fullName string) (owner, name string, ok bool) {
	owner, name, found := strings.Cut(fullName, "/")
	if !found || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", false
	}
	return owner, name, true
}

// SearchHit is a raw candidate returned by a repository search.
type SearchHit struct {
	FullName    string
	Name        string
	Description string
	Fork        bool
	Stars       int
	Topics      []string
}

// Config is the persisted root entity: the tracked repositories and the
// discovery queries, both in file order.
type Config struct {
	Repositories  []TrackedRepository `json:"repositories" yaml:"repositories" toml:"repositories"`
	SearchQueries []string            `json:"search_queries" yaml:"search_queries" toml:"search_queries"`
}

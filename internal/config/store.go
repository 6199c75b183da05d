// Package config loads and persists the tracker configuration file: the list
// of tracked repositories and the discovery search queries.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/naka-gawa/solana-repo-tracker/internal/classifier"
	"github.com/naka-gawa/solana-repo-tracker/internal/domain"
	"github.com/naka-gawa/solana-repo-tracker/internal/util/file"
)

// DefaultPath is the configuration file used when none is given.
const DefaultPath = "repos.yaml"

var (
	// ErrNotFound is returned by Load when the configuration file does not exist.
	ErrNotFound = errors.New("configuration file not found")

	// ErrInvalid is returned by Load when the file has no repositories list or
	// carries keys this tool does not know.
	ErrInvalid = errors.New("invalid configuration")
)

// Store reads and writes the configuration file. The encoding is chosen from
// the file extension: ".toml" selects TOML, anything else YAML.
type Store struct {
	path   string
	logger zerolog.Logger
}

// NewStore creates a Store for the file at path.
func NewStore(path string, logger zerolog.Logger) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path, logger: logger}
}

// Path returns the configuration file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) isTOML() bool {
	return strings.EqualFold(filepath.Ext(s.path), ".toml")
}

// Load reads the configuration and validates every repository entry.
// Entries without a repo identifier are dropped, duplicate identifiers keep
// the first occurrence, and categories are normalized to the closed set.
// A file without a repositories list is rejected with ErrInvalid.
func (s *Store) Load() (*domain.Config, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, s.path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	cfg, err := s.decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	if cfg.Repositories == nil {
		return nil, fmt.Errorf("%w: %s has no repositories list", ErrInvalid, s.path)
	}

	cfg.Repositories = s.validate(cfg.Repositories)
	return cfg, nil
}

// decode rejects unknown keys, so a misspelled top-level key is not read as
// an empty configuration.
func (s *Store) decode(data []byte) (*domain.Config, error) {
	var cfg domain.Config
	if s.isTOML() {
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalid)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return &cfg, nil
}

func (s *Store) validate(entries []domain.TrackedRepository) []domain.TrackedRepository {
	seen := make(map[string]struct{}, len(entries))
	valid := make([]domain.TrackedRepository, 0, len(entries))
	for i, repo := range entries {
		repo.Repo = strings.TrimSpace(repo.Repo)
		_, name, ok := domain.SplitRepo(repo.Repo)
		if !ok {
			s.logger.Warn().Int("index", i).Str("repo", repo.Repo).Msg("Skipping entry without a valid owner/name repo")
			continue
		}
		if _, dup := seen[repo.Repo]; dup {
			s.logger.Warn().Str("repo", repo.Repo).Msg("Skipping duplicate repository entry")
			continue
		}
		seen[repo.Repo] = struct{}{}

		if repo.Name == "" {
			repo.Name = name
		}
		if c, ok := domain.ParseCategory(string(repo.Category)); ok {
			repo.Category = c
		} else {
			guessed := classifier.Classify(repo.Description, nil)
			if repo.Category != "" {
				s.logger.Warn().Str("repo", repo.Repo).Str("category", string(repo.Category)).
					Msgf("Unknown category, using %q", guessed)
			}
			repo.Category = guessed
		}
		valid = append(valid, repo)
	}
	return valid
}

// Save writes cfg to the configuration file, replacing it. IsNew flags are
// never written.
func (s *Store) Save(cfg *domain.Config) error {
	out := domain.Config{
		Repositories:  make([]domain.TrackedRepository, len(cfg.Repositories)),
		SearchQueries: cfg.SearchQueries,
	}
	for i, repo := range cfg.Repositories {
		repo.IsNew = false
		out.Repositories[i] = repo
	}

	var (
		data []byte
		err  error
	)
	if s.isTOML() {
		data, err = toml.Marshal(out)
	} else {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err = enc.Encode(out); err == nil {
			err = enc.Close()
		}
		data = buf.Bytes()
	}
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	if err := file.WriteAtomic(s.path, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}

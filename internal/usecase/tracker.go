// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/naka-gawa/solana-repo-tracker/internal/document"
	"github.com/naka-gawa/solana-repo-tracker/internal/domain"
	"github.com/naka-gawa/solana-repo-tracker/internal/gateway"
)

// SearchInterval is the minimum spacing between two discovery queries.
const SearchInterval = time.Second

// ConfigStore loads and persists the tracker configuration.
type ConfigStore interface {
	Load() (*domain.Config, error)
	Save(cfg *domain.Config) error
}

// DocumentUpdater rewrites the rendered repository table.
type DocumentUpdater interface {
	Preflight() error
	Update(repos []domain.TrackedRepository) (document.Result, error)
}

// offlineSource is implemented by fetchers that replay stored data instead of
// calling the API.
type offlineSource interface {
	Offline() bool
}

// Tracker is the use case for refreshing the tracked repositories.
// It orchestrates fetching, discovery, rendering and persistence.
type Tracker struct {
	fetcher  gateway.Fetcher
	store    ConfigStore
	document DocumentUpdater
	governor *Governor
	pacer    *rate.Limiter
	offline  bool
	logger   zerolog.Logger
}

// NewTracker creates a new Tracker instance.
func NewTracker(fetcher gateway.Fetcher, store ConfigStore, doc DocumentUpdater, logger zerolog.Logger) *Tracker {
	offline := false
	if o, ok := fetcher.(offlineSource); ok {
		offline = o.Offline()
	}
	return &Tracker{
		fetcher:  fetcher,
		store:    store,
		document: doc,
		governor: NewGovernor(fetcher, logger),
		pacer:    rate.NewLimiter(rate.Every(SearchInterval), 1),
		offline:  offline,
		logger:   logger,
	}
}

// Run performs one full refresh.
//
// It loads the configuration, refreshes the stats of every tracked
// repository, runs each search query to discover new repositories (fetching
// their stats too), re-renders the document table and saves the
// configuration. Per-repository, per-query, document and save failures are
// recorded on the Summary and do not stop the run. An error is returned only
// when the run is aborted: the configuration or document cannot be read, or
// ctx is cancelled. Nothing is written in that case.
func (t *Tracker) Run(ctx context.Context) (*Summary, error) {
	t.logger.Info().Msg("Starting Solana Projects Auto-Updater...")

	cfg, err := t.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	t.logger.Info().Msgf("Loaded %d existing repositories", len(cfg.Repositories))

	if err := t.document.Preflight(); err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	summary := &Summary{Tracked: len(cfg.Repositories)}
	summary.Quota = t.governor.Check(ctx)

	repos := make([]domain.TrackedRepository, len(cfg.Repositories))
	copy(repos, cfg.Repositories)
	known := make(map[string]struct{}, len(repos))
	for _, r := range repos {
		known[r.Repo] = struct{}{}
	}

	fetches := 0
	refresh := func(repo *domain.TrackedRepository) error {
		repo.Stats = t.fetchStats(ctx, repo.Repo, summary)
		fetches++
		if fetches%QuotaCheckInterval == 0 {
			summary.Quota = t.governor.Check(ctx)
		}
		return ctx.Err()
	}

	t.logger.Info().Msgf("Updating %d existing repositories...", len(repos))
	for i := range repos {
		t.logger.Info().Msgf("[%d/%d] %s", i+1, len(repos), repos[i].Repo)
		if err := refresh(&repos[i]); err != nil {
			return nil, fmt.Errorf("run interrupted: %w", err)
		}
	}

	queries := cfg.SearchQueries
	if t.offline {
		t.logger.Info().Msg("Offline mode, skipping search for new projects")
		queries = nil
	} else {
		t.logger.Info().Msg("Searching for new Solana projects...")
	}
	for _, query := range queries {
		if err := t.pacer.Wait(ctx); err != nil {
			return nil, fmt.Errorf("run interrupted: %w", err)
		}
		t.logger.Info().Msgf("Searching: %s", query)
		hits, err := t.fetcher.SearchRepositories(ctx, query, gateway.SearchLimit)
		if err != nil {
			t.logger.Warn().Err(err).Str("query", query).Msg("Search failed")
			summary.SearchFailures++
			continue
		}
		for _, repo := range FilterCandidates(hits, known) {
			t.logger.Info().Msgf("Found: %s (%s)", repo.Repo, repo.Category)
			if err := refresh(&repo); err != nil {
				return nil, fmt.Errorf("run interrupted: %w", err)
			}
			repos = append(repos, repo)
			summary.Discovered++
		}
	}

	t.logger.Info().Msg("Generating new README...")
	res, err := t.document.Update(repos)
	if err != nil {
		summary.DocumentErr = err
		t.logger.Error().Err(err).Msg("Document was not updated")
	} else {
		summary.NewRows = res.NewRows
		if !res.StampUpdated {
			t.logger.Warn().Msg("Document has no \"Last updated\" stamp")
		}
		t.logger.Info().Msgf("Document updated with %d rows", res.Rows)
		if res.NewRows > 0 {
			t.logger.Info().Msgf("Added %d new projects!", res.NewRows)
		}
	}

	persisted := make([]domain.TrackedRepository, len(repos))
	for i, r := range repos {
		r.IsNew = false
		persisted[i] = r
	}
	cfg.Repositories = persisted
	if err := t.store.Save(cfg); err != nil {
		summary.SaveErr = err
		t.logger.Error().Err(err).Msg("Error updating configuration")
	} else {
		t.logger.Info().Msg("Updated configuration with new projects")
	}

	summary.Total = len(repos)
	summary.addStars(repos)
	t.logger.Info().Msgf("Update complete! Total projects: %d", summary.Total)
	return summary, nil
}

// fetchStats returns nil stats for any failure; stale stats are never kept.
func (t *Tracker) fetchStats(ctx context.Context, id string, summary *Summary) *domain.Stats {
	stats, err := t.fetcher.FetchStats(ctx, id)
	switch {
	case err == nil:
		summary.Fetched++
		t.logger.Info().Msgf("  %d stars, %d contributors", stats.Stars, stats.Contributors)
		return stats
	case gateway.IsNotFound(err):
		summary.NotFound++
		if t.offline {
			t.logger.Warn().Str("repo", id).Msg("No stored stats")
		} else {
			t.logger.Warn().Str("repo", id).Msg("Repository not found (404)")
		}
	case gateway.IsRateLimited(err):
		summary.Failed++
		t.logger.Error().Err(err).Str("repo", id).Msg("Rate limited while fetching repository")
	default:
		summary.Failed++
		t.logger.Error().Err(err).Str("repo", id).Msg("Error fetching repository")
	}
	return nil
}

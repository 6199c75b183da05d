package gateway

import (
	"context"

	"github.com/naka-gawa/solana-repo-tracker/internal/domain"
)

// SnapshotSource is an offline Fetcher that replays the stats already stored
// in the configuration file. It never discovers anything and has no quota.
// It lets the document be re-rendered without a token or network access.
type SnapshotSource struct {
	stats map[string]domain.Stats
}

// NewSnapshotSource indexes the stored stats of repos by identifier.
func NewSnapshotSource(repos []domain.TrackedRepository) *SnapshotSource {
	s := &SnapshotSource{stats: make(map[string]domain.Stats, len(repos))}
	for _, r := range repos {
		if r.Stats != nil {
			s.stats[r.Repo] = *r.Stats
		}
	}
	return s
}

// Offline reports that no API is behind this source.
func (s *SnapshotSource) Offline() bool {
	return true
}

// CheckQuota reports an unknown quota, so the governor never pauses.
func (s *SnapshotSource) CheckQuota(ctx context.Context) (domain.Quota, error) {
	return domain.Quota{}, nil
}

// FetchStats returns a copy of the stored stats, or ErrRepoNotFound when the
// repository has none.
func (s *SnapshotSource) FetchStats(ctx context.Context, fullName string) (*domain.Stats, error) {
	stats, ok := s.stats[fullName]
	if !ok {
		return nil, ErrRepoNotFound
	}
	return &stats, nil
}

// SearchRepositories finds nothing offline.
func (s *SnapshotSource) SearchRepositories(ctx context.Context, query string, limit int) ([]domain.SearchHit, error) {
	return nil, nil
}

package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/naka-gawa/solana-repo-tracker/internal/domain"
	"github.com/naka-gawa/solana-repo-tracker/internal/gateway"
)

const (
	// QuotaThreshold is the remaining-request count below which the governor pauses.
	QuotaThreshold = 100
	// QuotaCooldown is how long the governor pauses under quota pressure.
	QuotaCooldown = 60 * time.Second
	// QuotaCheckInterval is the number of repository fetches between quota checks.
	QuotaCheckInterval = 10
)

// Governor paces the run against the API quota.
type Governor struct {
	fetcher  gateway.Fetcher
	logger   zerolog.Logger
	cooldown time.Duration
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewGovernor creates a Governor that checks quota through fetcher.
func NewGovernor(fetcher gateway.Fetcher, logger zerolog.Logger) *Governor {
	return &Governor{
		fetcher:  fetcher,
		logger:   logger,
		cooldown: QuotaCooldown,
		sleep:    sleepContext,
	}
}

// Check queries the quota and, when fewer than QuotaThreshold requests
// remain, waits for the cooldown before returning. Failures are logged and
// treated as quota available.
func (g *Governor) Check(ctx context.Context) domain.Quota {
	quota, err := g.fetcher.CheckQuota(ctx)
	if err != nil {
		g.logger.Warn().Err(err).Msg("Error checking rate limit")
		return domain.Quota{}
	}
	if !quota.Known {
		return quota
	}

	g.logger.Info().Msgf("Rate limit remaining: %d/%d", quota.Remaining, quota.Limit)
	if !quota.ResetAt.IsZero() {
		g.logger.Info().Msgf("Resets at: %s", quota.ResetAt.Local().Format("15:04:05"))
	}
	if quota.Remaining < QuotaThreshold {
		g.logger.Warn().Msgf("Low rate limit! Sleeping for %s...", g.cooldown)
		if err := g.sleep(ctx, g.cooldown); err != nil {
			g.logger.Warn().Err(err).Msg("Rate limit cooldown interrupted")
		}
	}
	return quota
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/naka-gawa/solana-repo-tracker/internal/domain"
)

func TestGovernor_Check(t *testing.T) {
	testCases := []struct {
		name          string
		quota         domain.Quota
		err           error
		expectedQuota domain.Quota
		expectedSleep []time.Duration
	}{
		{
			name:          "plenty of quota",
			quota:         domain.Quota{Remaining: 4999, Limit: 5000, Known: true},
			expectedQuota: domain.Quota{Remaining: 4999, Limit: 5000, Known: true},
		},
		{
			name:          "at threshold does not pause",
			quota:         domain.Quota{Remaining: QuotaThreshold, Limit: 5000, Known: true},
			expectedQuota: domain.Quota{Remaining: QuotaThreshold, Limit: 5000, Known: true},
		},
		{
			name:          "below threshold pauses",
			quota:         domain.Quota{Remaining: 42, Limit: 5000, Known: true, ResetAt: time.Unix(1700000000, 0)},
			expectedQuota: domain.Quota{Remaining: 42, Limit: 5000, Known: true, ResetAt: time.Unix(1700000000, 0)},
			expectedSleep: []time.Duration{QuotaCooldown},
		},
		{
			name:  "unknown quota proceeds",
			quota: domain.Quota{},
		},
		{
			name: "check failure proceeds",
			err:  errors.New("network down"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := new(mockFetcher)
			fetcher.On("CheckQuota", mock.Anything).Return(tc.quota, tc.err)

			governor := NewGovernor(fetcher, zerolog.Nop())
			var sleeps []time.Duration
			governor.sleep = func(ctx context.Context, d time.Duration) error {
				sleeps = append(sleeps, d)
				return nil
			}

			quota := governor.Check(context.Background())
			assert.Equal(t, tc.expectedQuota, quota)
			assert.Equal(t, tc.expectedSleep, sleeps)
			fetcher.AssertExpectations(t)
		})
	}
}

func TestSleepContext(t *testing.T) {
	assert.NoError(t, sleepContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
}

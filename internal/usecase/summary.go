package usecase

import (
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/solana-repo-tracker/internal/domain"
)

// Summary holds the counters of one run.
type Summary struct {
	Tracked        int // repositories loaded from the configuration
	Discovered     int // repositories added by discovery
	Total          int
	Fetched        int
	NotFound       int
	Failed         int
	SearchFailures int
	NewRows        int

	TotalStars  int
	MedianStars float64

	Quota domain.Quota

	DocumentErr error
	SaveErr     error
}

// Degraded reports whether the run completed with missing data or a failed write.
func (s *Summary) Degraded() bool {
	return s.NotFound > 0 || s.Failed > 0 || s.SearchFailures > 0 || s.WriteFailed()
}

// WriteFailed reports whether the document or the configuration was not written.
func (s *Summary) WriteFailed() bool {
	return s.DocumentErr != nil || s.SaveErr != nil
}

func (s *Summary) addStars(repos []domain.TrackedRepository) {
	data := make(stats.Float64Data, 0, len(repos))
	for _, r := range repos {
		if r.Stats != nil {
			data = append(data, float64(r.Stats.Stars))
		}
	}
	if len(data) == 0 {
		return
	}
	if sum, err := stats.Sum(data); err == nil {
		s.TotalStars = int(sum)
	}
	if median, err := stats.Median(data); err == nil {
		s.MedianStars = median
	}
}

// CategoryCount is the number of repositories in one category.
type CategoryCount struct {
	Category domain.Category
	Count    int
}

// CountByCategory counts repos per normalized category, largest first.
// Ties keep the category display order.
func CountByCategory(repos []domain.TrackedRepository) []CategoryCount {
	counts := make(map[domain.Category]int)
	for _, r := range repos {
		counts[r.Category.Normalize()]++
	}

	var out []CategoryCount
	for _, c := range domain.Categories() {
		if n := counts[c]; n > 0 {
			out = append(out, CategoryCount{Category: c, Count: n})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

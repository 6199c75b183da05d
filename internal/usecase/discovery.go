package usecase

import (
	"strings"

	"github.com/naka-gawa/solana-repo-tracker/internal/classifier"
	"github.com/naka-gawa/solana-repo-tracker/internal/domain"
)

// MinStars is the popularity floor for discovered repositories.
const MinStars = 3

// relevanceKeywords gate discovered repositories on their description.
var relevanceKeywords = []string{"solana", "anchor", "spl", "metaplex"}

// FilterCandidates turns search hits into new tracked repositories. Known
// identifiers, forks, repositories under MinStars and descriptions without a
// relevance keyword are skipped. known is updated with every accepted hit, so
// a repository surfaced by several queries is only added once.
func FilterCandidates(hits []domain.SearchHit, known map[string]struct{}) []domain.TrackedRepository {
	var found []domain.TrackedRepository
	for _, hit := range hits {
		if _, ok := known[hit.FullName]; ok {
			continue
		}
		if hit.Fork || hit.Stars < MinStars {
			continue
		}
		if !isRelevant(hit.Description) {
			continue
		}

		name := hit.Name
		if name == "" {
			_, name, _ = domain.SplitRepo(hit.FullName)
		}
		found = append(found, domain.TrackedRepository{
			Name:        name,
			Repo:        hit.FullName,
			Description: hit.Description,
			Category:    classifier.Classify(hit.Description, hit.Topics),
			IsNew:       true,
		})
		known[hit.FullName] = struct{}{}
	}
	return found
}

func isRelevant(description string) bool {
	desc := strings.ToLower(description)
	for _, kw := range relevanceKeywords {
		if strings.Contains(desc, kw) {
			return true
		}
	}
	return false
}

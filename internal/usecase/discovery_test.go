package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/solana-repo-tracker/internal/domain"
)

func TestFilterCandidates(t *testing.T) {
	known := map[string]struct{}{"solana-labs/solana": {}}
	hits := []domain.SearchHit{
		{FullName: "solana-labs/solana", Name: "solana", Description: "Solana validator", Stars: 13000},
		{FullName: "a/forked", Name: "forked", Description: "Solana dex fork", Stars: 50, Fork: true},
		{FullName: "a/tiny", Name: "tiny", Description: "Solana wallet", Stars: MinStars - 1},
		{FullName: "a/unrelated", Name: "unrelated", Description: "Ethereum wallet", Stars: 500},
		{FullName: "a/empty", Name: "empty", Stars: 500},
		{FullName: "a/swap", Name: "swap", Description: "A Solana swap aggregator", Stars: MinStars},
		{FullName: "a/oracle", Description: "SPL price oracle", Stars: 90, Topics: []string{"nft"}},
		{FullName: "a/swap", Name: "swap", Description: "A Solana swap aggregator", Stars: MinStars},
	}

	found := FilterCandidates(hits, known)
	require.Len(t, found, 2)
	assert.Equal(t, domain.TrackedRepository{
		Name: "swap", Repo: "a/swap", Description: "A Solana swap aggregator",
		Category: domain.CategoryDeFi, IsNew: true,
	}, found[0])
	// Topics take precedence and a missing name comes from the identifier.
	assert.Equal(t, domain.TrackedRepository{
		Name: "oracle", Repo: "a/oracle", Description: "SPL price oracle",
		Category: domain.CategoryNFTPrograms, IsNew: true,
	}, found[1])

	assert.Contains(t, known, "a/swap")
	assert.Contains(t, known, "a/oracle")
	assert.NotContains(t, known, "a/forked")

	// A later query surfacing the same repositories adds nothing.
	assert.Empty(t, FilterCandidates(hits, known))
}

func TestIsRelevant(t *testing.T) {
	testCases := []struct {
		description string
		expected    bool
	}{
		{"Solana program library", true},
		{"ANCHOR framework", true},
		{"spl token tools", true},
		{"Metaplex candy machine", true},
		{"Bitcoin node", false},
		{"", false},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, isRelevant(tc.description))
		})
	}
}

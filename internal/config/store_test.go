package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/solana-repo-tracker/internal/domain"
)

const sampleYAML = `repositories:
  - name: solana
    repo: solana-labs/solana
    description: Web-Scale Blockchain
    category: Infrastructure
  - name: metaplex
    repo: metaplex-foundation/mpl-token-metadata
    description: Token metadata program
    category: Programs (SPL/Metaplex) & NFTs
  - repo: jup-ag/jupiter-core
    description: Jupiter swap engine
  - name: duplicate
    repo: solana-labs/solana
    description: should be dropped
    category: DeFi
  - name: broken
    description: no repo field
    category: DeFi
  - name: odd
    repo: someone/odd
    description: price feed aggregator
    category: Games
search_queries:
  - solana sdk
  - anchor framework
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestStore_Load(t *testing.T) {
	path := writeConfig(t, "repos.yaml", sampleYAML)
	store := NewStore(path, zerolog.Nop())

	cfg, err := store.Load()
	require.NoError(t, err)

	expected := []domain.TrackedRepository{
		{Name: "solana", Repo: "solana-labs/solana", Description: "Web-Scale Blockchain", Category: domain.CategoryInfrastructure},
		{Name: "metaplex", Repo: "metaplex-foundation/mpl-token-metadata", Description: "Token metadata program", Category: domain.CategoryNFTPrograms},
		{Name: "jupiter-core", Repo: "jup-ag/jupiter-core", Description: "Jupiter swap engine", Category: domain.CategoryDeFi},
		{Name: "odd", Repo: "someone/odd", Description: "price feed aggregator", Category: domain.CategoryOracles},
	}
	assert.Equal(t, expected, cfg.Repositories)
	assert.Equal(t, []string{"solana sdk", "anchor framework"}, cfg.SearchQueries)
}

func TestStore_Load_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		store := NewStore(filepath.Join(t.TempDir(), "repos.yaml"), zerolog.Nop())
		_, err := store.Load()
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeConfig(t, "repos.yaml", "repositories: [\n")
		_, err := NewStore(path, zerolog.Nop()).Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse")
		assert.False(t, errors.Is(err, ErrNotFound))
	})

	testCases := []struct {
		name    string
		file    string
		content string
	}{
		{name: "empty yaml", file: "repos.yaml", content: ""},
		{name: "comments only", file: "repos.yaml", content: "# nothing here\n"},
		{name: "misspelled key", file: "repos.yaml", content: "repository:\n  - repo: solana-labs/solana\n"},
		{name: "queries without repositories", file: "repos.yaml", content: "search_queries:\n  - solana\n"},
		{name: "unknown entry field", file: "repos.yaml", content: "repositories:\n  - repo: a/b\n    stars: 3\n"},
		{name: "empty toml", file: "repos.toml", content: ""},
		{name: "misspelled toml key", file: "repos.toml", content: "[[repository]]\nrepo = \"a/b\"\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.file, tc.content)
			cfg, err := NewStore(path, zerolog.Nop()).Load()
			assert.Nil(t, cfg)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}

	t.Run("explicit empty list is valid", func(t *testing.T) {
		path := writeConfig(t, "repos.yaml", "repositories: []\nsearch_queries: []\n")
		cfg, err := NewStore(path, zerolog.Nop()).Load()
		require.NoError(t, err)
		assert.Empty(t, cfg.Repositories)
	})
}

func TestStore_Save_YAML(t *testing.T) {
	path := writeConfig(t, "repos.yaml", sampleYAML)
	store := NewStore(path, zerolog.Nop())

	cfg := &domain.Config{
		Repositories: []domain.TrackedRepository{
			{
				Name: "solana", Repo: "solana-labs/solana", Description: "Web-Scale Blockchain",
				Category: domain.CategoryInfrastructure,
				Stats:    &domain.Stats{Stars: 13000, Contributors: 420, LastActivity: "v1.18.0 (Jan 02, 2024)", Language: "Rust"},
			},
			{
				Name: "fresh", Repo: "someone/fresh", Description: "Solana wallet", Category: domain.CategoryWallets,
				IsNew: true,
			},
		},
		SearchQueries: []string{"solana sdk"},
	}
	require.NoError(t, store.Save(cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `repositories:
  - name: solana
    repo: solana-labs/solana
    description: Web-Scale Blockchain
    category: Infrastructure
    stats:
      stars: 13000
      contributors: 420
      last_activity: v1.18.0 (Jan 02, 2024)
      archived: false
      language: Rust
  - name: fresh
    repo: someone/fresh
    description: Solana wallet
    category: Wallets & Mobile
search_queries:
  - solana sdk
`, string(data))

	assert.True(t, cfg.Repositories[1].IsNew, "Save must not mutate the caller's data")

	reloaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg.Repositories[0], reloaded.Repositories[0])
	assert.False(t, reloaded.Repositories[1].IsNew)
}

func TestStore_TOMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repos.toml")
	store := NewStore(path, zerolog.Nop())

	cfg := &domain.Config{
		Repositories: []domain.TrackedRepository{
			{
				Name: "anchor", Repo: "coral-xyz/anchor", Description: "Solana Sealevel Framework",
				Category: domain.CategorySDKs,
				Stats:    &domain.Stats{Stars: 3500, Contributors: 250, LastActivity: "Active", Archived: true},
			},
			{Name: "pay", Repo: "solana-labs/solana-pay", Description: "Payments", Category: domain.CategoryPayments},
		},
		SearchQueries: []string{"anchor"},
	}
	require.NoError(t, store.Save(cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[[repositories]]")

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestNewStore_DefaultPath(t *testing.T) {
	assert.Equal(t, DefaultPath, NewStore("", zerolog.Nop()).Path())
}

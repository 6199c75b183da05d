package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	testCases := []struct {
		name     string
		label    string
		expected Category
		ok       bool
	}{
		{name: "known label", label: "DeFi", expected: CategoryDeFi, ok: true},
		{name: "legacy label is normalized", label: "Programs (SPL/Metaplex) & NFTs", expected: CategoryNFTPrograms, ok: true},
		{name: "unknown label", label: "Games", ok: false},
		{name: "empty label", label: "", ok: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, ok := ParseCategory(tc.label)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, c)
		})
	}
}

func TestCategory_Normalize(t *testing.T) {
	assert.Equal(t, CategoryNFTPrograms, Category("Programs (SPL/Metaplex) & NFTs").Normalize())
	assert.Equal(t, CategoryOracles, CategoryOracles.Normalize())
	assert.Equal(t, CategoryDefault, Category("Something else").Normalize())
}

func TestCategories_ReturnsCopy(t *testing.T) {
	cats := Categories()
	assert.Len(t, cats, 9)
	assert.Equal(t, CategoryInfrastructure, cats[0])
	assert.Equal(t, CategoryOracles, cats[8])

	cats[0] = "mutated"
	assert.Equal(t, CategoryInfrastructure, Categories()[0])
}

func TestSplitRepo(t *testing.T) {
	owner, name, ok := SplitRepo("solana-labs/solana")
	assert.True(t, ok)
	assert.Equal(t, "solana-labs", owner)
	assert.Equal(t, "solana", name)

	for _, bad := range []string{"", "solana", "/solana", "solana-labs/", "a/b/c"} {
		_, _, ok := SplitRepo(bad)
		assert.False(t, ok, bad)
	}
}

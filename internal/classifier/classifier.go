// Package classifier assigns a repository to exactly one category from its
// description and topic tags.
package classifier

import (
	"strings"

	"github.com/naka-gawa/solana-repo-tracker/internal/domain"
)

// Source selects which input a rule inspects.
type Source int

const (
	// Topics rules match a topic tag exactly.
	Topics Source = iota
	// Description rules match a substring of the description.
	Description
)

func (s Source) String() string {
	if s == Topics {
		return "topics"
	}
	return "description"
}

// Rule maps any of its keywords, found in Source, to Category.
// Rules are evaluated in ascending Priority; the first match wins.
type Rule struct {
	Priority int
	Source   Source
	Keywords []string
	Category domain.Category
}

// rules is kept sorted by Priority. Topic rules precede description rules.
var rules = []Rule{
	{1, Topics, []string{"wallet", "mobile"}, domain.CategoryWallets},
	{2, Topics, []string{"nft", "metaplex"}, domain.CategoryNFTPrograms},
	{3, Topics, []string{"defi", "dex"}, domain.CategoryDeFi},
	{4, Topics, []string{"oracle"}, domain.CategoryOracles},
	{5, Topics, []string{"sdk", "api"}, domain.CategorySDKs},
	{6, Description, []string{"wallet", "mobile"}, domain.CategoryWallets},
	{7, Description, []string{"nft", "metaplex", "candy", "token metadata"}, domain.CategoryNFTPrograms},
	{8, Description, []string{"defi", "dex", "swap", "amm", "jupiter"}, domain.CategoryDeFi},
	{9, Description, []string{"oracle", "price", "feed", "switchboard"}, domain.CategoryOracles},
	{10, Description, []string{"payment", "pay"}, domain.CategoryPayments},
	{11, Description, []string{"validator", "node", "rpc", "infrastructure", "agave"}, domain.CategoryInfrastructure},
	{12, Description, []string{"sdk", "client", "api", "library", "framework"}, domain.CategorySDKs},
}

// Rules returns a copy of the rule table in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		r.Keywords = append([]string(nil), r.Keywords...)
		out[i] = r
	}
	return out
}

// Classify returns the category of the first matching rule, or
// domain.CategoryDefault when none matches. It never fails.
func Classify(description string, topics []string) domain.Category {
	desc := strings.ToLower(description)
	tags := make(map[string]struct{}, len(topics))
	for _, t := range topics {
		tags[strings.ToLower(t)] = struct{}{}
	}

	for _, r := range rules {
		if r.matches(desc, tags) {
			return r.Category
		}
	}
	return domain.CategoryDefault
}

func (r Rule) matches(desc string, tags map[string]struct{}) bool {
	for _, kw := range r.Keywords {
		switch r.Source {
		case Topics:
			if _, ok := tags[kw]; ok {
				return true
			}
		case Description:
			if strings.Contains(desc, kw) {
				return true
			}
		}
	}
	return false
}

package document

import (
	"strconv"
	"strings"

	"github.com/naka-gawa/solana-repo-tracker/internal/domain"
	"github.com/naka-gawa/solana-repo-tracker/internal/format"
)

const (
	newMarker       = "NEW "
	unknownCell     = "—"
	defaultActivity = "Active"
	archivedPrefix  = "Archived; "
)

var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ")

// Rows renders one table row per repository, grouped by category in display
// order. Empty categories produce nothing; input order is kept within a
// category.
func Rows(repos []domain.TrackedRepository) []string {
	buckets := make(map[domain.Category][]domain.TrackedRepository)
	for _, r := range repos {
		c := r.Category.Normalize()
		buckets[c] = append(buckets[c], r)
	}

	rows := make([]string, 0, len(repos))
	for _, c := range domain.Categories() {
		for _, r := range buckets[c] {
			rows = append(rows, row(r, c))
		}
	}
	return rows
}

func row(r domain.TrackedRepository, c domain.Category) string {
	stars, contributors, activity := unknownCell, unknownCell, defaultActivity
	if s := r.Stats; s != nil {
		stars = format.Count(s.Stars)
		if s.Contributors > 0 {
			contributors = strconv.Itoa(s.Contributors)
		}
		if s.LastActivity != "" {
			activity = s.LastActivity
		}
		if s.Archived {
			activity = archivedPrefix + activity
		}
	}

	name := r.Name
	if r.IsNew {
		name = newMarker + name
	}

	cells := []string{
		cell(name),
		cell(r.Description),
		r.URL(),
		stars,
		contributors,
		cell(activity),
		string(c),
	}
	return "| " + strings.Join(cells, " | ") + " |"
}

func cell(s string) string {
	return cellEscaper.Replace(strings.TrimSpace(s))
}

package domain

import "strings"

// FilterField is the document field pre-filter clauses match against.
const FilterField = "scraped_from"

// FilterCategories are the category labels offered for pre-filtering.
var FilterCategories = []string{"faq", "blogs", "landing", "newsroom"}

// FilterString builds the filter expression for a set of selected category
// labels: `scraped_from:(label)` clauses joined with OR. An empty selection
// yields the empty string, which the search service treats as "no filter".
func FilterString(labels []string) string {
	clauses := make([]string, 0, len(labels))
	for _, label := range labels {
		clauses = append(clauses, FilterField+":("+label+")")
	}
	return strings.Join(clauses, " OR ")
}

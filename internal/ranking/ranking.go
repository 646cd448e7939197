// Package ranking computes dense competition placements for launched
// startups: tied vote counts share a place and the next distinct count
// increments the place by exactly one.
package ranking

import "sort"

// Entry is one ranked item. Place is filled in by Rank.
type Entry struct {
	ID      string `json:"id"`
	Slug    string `json:"slug"`
	Name    string `json:"name"`
	Tagline string `json:"tagline"`
	Upvotes int    `json:"upvotes"`
	Place   int    `json:"place"`
}

// Rank sorts entries by upvotes descending and assigns dense places:
// [10, 10, 7, 3, 3, 3] → places [1, 1, 2, 3, 3, 3]. The sort is stable, so
// ties keep their insertion order.
func Rank(entries []Entry) []Entry {
	ranked := make([]Entry, len(entries))
	copy(ranked, entries)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Upvotes > ranked[j].Upvotes
	})

	place := 0
	prev := -1
	for i := range ranked {
		if ranked[i].Upvotes != prev {
			place++
			prev = ranked[i].Upvotes
		}
		ranked[i].Place = place
	}

	return ranked
}

package matcher

import (
	"slices"

	"github.com/aretw0/chatbot/pkg/domain"
)

// Candidate is one scored (edge, keyword) pair.
type Candidate struct {
	Edge     *domain.Edge
	Keyword  string
	Distance int
}

// Rank scores every keyword of every edge against message and returns the pool
// sorted by ascending distance. Equal distances keep enumeration order, so earlier
// edges and, within an edge, earlier keywords come first.
func Rank(edges []*domain.Edge, message string) []Candidate {
	var pool []Candidate
	for _, edge := range edges {
		for _, keyword := range edge.Keywords() {
			pool = append(pool, Candidate{
				Edge:     edge,
				Keyword:  keyword,
				Distance: EditDistance(keyword, message),
			})
		}
	}

	slices.SortStableFunc(pool, func(a, b Candidate) int {
		return a.Distance - b.Distance
	})
	return pool
}

// SelectBest returns the best scored pair, or false when no edge carries a keyword.
func SelectBest(edges []*domain.Edge, message string) (Candidate, bool) {
	pool := Rank(edges, message)
	if len(pool) == 0 {
		return Candidate{}, false
	}
	return pool[0], true
}

// SelectBestEdge returns the edge of the best scored pair.
// A false result is not an error: callers fall back to the root node.
func SelectBestEdge(edges []*domain.Edge, message string) (*domain.Edge, bool) {
	best, ok := SelectBest(edges, message)
	return best.Edge, ok
}

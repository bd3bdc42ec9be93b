package matcher

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// EditDistance returns the Levenshtein distance between a and b after folding
// both to upper case. Insertions, deletions and substitutions cost 1.
// Lengths are measured in runes.
func EditDistance(a, b string) int {
	return levenshtein.ComputeDistance(strings.ToUpper(a), strings.ToUpper(b))
}

package device

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// DefaultName selects the system default device instead of matching by name.
const DefaultName = "default"

// bestMatch picks the candidate closest to the requested name by
// Jaro-Winkler similarity, so a partial or slightly misspelled device name
// still resolves. Returns false when there are no candidates.
func bestMatch(name string, candidates []string) (int, bool) {
	if len(candidates) == 0 {
		return 0, false
	}

	name = strings.ToLower(name)
	best, bestScore := 0, -1.0
	for i, candidate := range candidates {
		score := matchr.JaroWinkler(name, strings.ToLower(candidate), false)
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best, true
}

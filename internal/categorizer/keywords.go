// Package categorizer assigns a spending category to each transaction using
// the owner's merchant history, a keyword table, and a fixed fallback.
package categorizer

import (
	"sort"
	"strings"
)

// KeywordTable is an immutable snapshot of merchant-name fragments mapped to
// categories. It is loaded once at startup and shared read-only across the
// process; refreshing it means building a new snapshot, never mutating a
// live one.
type KeywordTable struct {
	categories map[string]string
	// fragments holds the keys sorted by length descending so the longest
	// containing fragment wins without re-sorting per lookup.
	fragments []string
}

// NewKeywordTable builds a snapshot from a fragment→category mapping.
func NewKeywordTable(keywords map[string]string) *KeywordTable {
	categories := make(map[string]string, len(keywords))
	fragments := make([]string, 0, len(keywords))
	for fragment, category := range keywords {
		categories[fragment] = category
		fragments = append(fragments, fragment)
	}
	sort.Slice(fragments, func(i, j int) bool {
		if len(fragments[i]) != len(fragments[j]) {
			return len(fragments[i]) > len(fragments[j])
		}
		return fragments[i] < fragments[j]
	})
	return &KeywordTable{categories: categories, fragments: fragments}
}

// Len reports the number of fragments in the table.
func (t *KeywordTable) Len() int {
	return len(t.fragments)
}

// Match returns the category of the longest fragment contained in the
// merchant name. Equal-length ties resolve deterministically in fragment
// order; a miss reports ok=false.
func (t *KeywordTable) Match(merchant string) (string, bool) {
	for _, fragment := range t.fragments {
		if fragment != "" && strings.Contains(merchant, fragment) {
			return t.categories[fragment], true
		}
	}
	return "", false
}

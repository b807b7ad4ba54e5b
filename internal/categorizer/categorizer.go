package categorizer

// DefaultCategory is the fallback assigned when neither history nor the
// keyword table can place a merchant.
const DefaultCategory = "Other"

// ambiguousMerchants is the closed, case-sensitive set of payment-aggregator
// display names. They identify a payment channel, not a spending purpose, so
// their history must never drive categorization.
var ambiguousMerchants = map[string]struct{}{
	"네이버페이":  {},
	"카카오페이":  {},
	"토스":     {},
	"PAYCO":  {},
	"KG이니시스": {},
	"다날":     {},
	"NICE페이": {},
	"KCP":    {},
}

// IsAmbiguousMerchant reports whether the merchant is a known payment
// aggregator excluded from historical-category lookup.
func IsAmbiguousMerchant(merchant string) bool {
	_, ok := ambiguousMerchants[merchant]
	return ok
}

// Resolver decides the final category for a transaction. It is a pure
// function of (merchant, optional historical category, keyword table): no
// stores are consulted and nothing is mutated.
type Resolver struct {
	keywords *KeywordTable
}

// NewResolver builds a resolver over the given keyword snapshot.
func NewResolver(keywords *KeywordTable) *Resolver {
	if keywords == nil {
		keywords = NewKeywordTable(nil)
	}
	return &Resolver{keywords: keywords}
}

// Resolve applies the three-tier rule: a historical category for a
// non-ambiguous merchant wins verbatim; otherwise the longest keyword
// fragment contained in the merchant name; otherwise DefaultCategory.
//
// historical carries the most recent category previously recorded for this
// merchant, or nil when none exists. Callers must not supply history for
// ambiguous merchants; Resolve enforces the bypass anyway.
func (r *Resolver) Resolve(merchant string, historical *string) string {
	if historical != nil && *historical != "" && !IsAmbiguousMerchant(merchant) {
		return *historical
	}
	if category, ok := r.keywords.Match(merchant); ok {
		return category
	}
	return DefaultCategory
}

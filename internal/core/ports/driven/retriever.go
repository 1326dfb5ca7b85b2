package driven

import "github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/core/domain"

// Retriever ranks corpus passages by relevance to a query.
//
// Retrieve is pure and repeatable: the same query against an unchanged
// index yields identical ranked output, and an empty index yields an
// empty result rather than an error. Implementations must be safe for
// concurrent use after construction, and must return passage copies
// carrying freshly computed scores.
type Retriever interface {
	// Retrieve returns up to topK passages sorted by descending
	// relevance, ties broken by corpus order.
	Retrieve(query string, topK int) []domain.Passage
}

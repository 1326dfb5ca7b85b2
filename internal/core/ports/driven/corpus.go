package driven

import (
	"context"

	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/core/domain"
)

// CorpusLoader supplies the lexical index with named documents at
// construction time. There is no incremental update path: the index is
// build-once, read-many for the process lifetime.
type CorpusLoader interface {
	// Load returns all corpus documents in a stable order.
	Load(ctx context.Context) ([]domain.RawDocument, error)
}

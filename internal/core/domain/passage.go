package domain

// RawDocument is a named blob of corpus text as supplied by a corpus
// loader, before chunking.
type RawDocument struct {
	// Name is the document name (typically the file stem).
	Name string

	// Text is the raw document content.
	Text string
}

// Passage is an immutable unit of retrievable text produced at
// index-build time.
//
// The Score field is the only per-query mutable attribute: it is
// recomputed on every retrieval and never accumulated. The index hands
// out copies, so callers may not mutate shared state through a Passage.
type Passage struct {
	// ID is the stable passage key, of the form "<document>::chunk<N>".
	// The ordinal counts surviving passages per document, starting at 0.
	ID string

	// Text is the passage content.
	Text string

	// Source is the originating document name.
	Source string

	// Score is the relevance score for the current query.
	Score float64
}

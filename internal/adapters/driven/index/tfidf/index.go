// Package tfidf provides the in-memory lexical index over the document
// corpus. Passages are ranked by cosine similarity of sparse TF-IDF
// weight vectors.
//
// The index is built once from the full corpus and immutable thereafter:
// the vocabulary and inverse-document-frequency table are frozen at
// construction, and per-query vectors are computed fresh on the caller's
// stack. Concurrent reads require no locking.
package tfidf

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/core/domain"
	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.Retriever = (*Index)(nil)

// minPassageLen is the minimum passage length in characters; shorter
// candidates are discarded at build time.
const minPassageLen = 10

// blankLinePattern splits documents into candidate passages.
var blankLinePattern = regexp.MustCompile(`\n\s*\n`)

// nonAlnumPattern strips punctuation during tokenisation.
var nonAlnumPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Index is a term-weighted representation of a document corpus.
type Index struct {
	passages []domain.Passage
	vectors  []map[string]float64
	norms    []float64
	idf      map[string]float64
}

// New builds an index from the given documents. Each document is split
// at blank-line boundaries; surviving passages get stable ids of the
// form "<document>::chunk<N>" with the ordinal counting survivors per
// document from 0. An empty corpus yields a usable index whose queries
// always return nothing.
func New(docs []domain.RawDocument) *Index {
	ix := &Index{idf: make(map[string]float64)}

	var passageTokens [][]string
	for _, doc := range docs {
		ordinal := 0
		for _, para := range blankLinePattern.Split(doc.Text, -1) {
			para = strings.TrimSpace(para)
			if len(para) < minPassageLen {
				continue
			}

			ix.passages = append(ix.passages, domain.Passage{
				ID:     fmt.Sprintf("%s::chunk%d", doc.Name, ordinal),
				Text:   para,
				Source: doc.Name,
			})
			passageTokens = append(passageTokens, tokenize(para))
			ordinal++
		}
	}

	// Document frequency over distinct terms per passage.
	df := make(map[string]int)
	for _, tokens := range passageTokens {
		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	// idf = ln(N / (1 + df)). Very common terms go negative or zero;
	// this is intentional and not clamped.
	n := float64(len(ix.passages))
	for term, count := range df {
		ix.idf[term] = math.Log(n / float64(1+count))
	}

	ix.vectors = make([]map[string]float64, len(passageTokens))
	ix.norms = make([]float64, len(passageTokens))
	for i, tokens := range passageTokens {
		vec := weightVector(tokens, ix.idf)
		ix.vectors[i] = vec
		ix.norms[i] = norm(vec)
	}

	return ix
}

// Len returns the number of indexed passages.
func (ix *Index) Len() int {
	return len(ix.passages)
}

// Retrieve ranks all passages against the query and returns the top
// topK as copies carrying freshly computed scores. The operation is
// pure: identical query text against an unchanged index always yields
// identical ranked output. Ties keep corpus order.
func (ix *Index) Retrieve(query string, topK int) []domain.Passage {
	queryVec := weightVector(tokenize(query), ix.idf)
	queryNorm := norm(queryVec)

	scored := make([]domain.Passage, len(ix.passages))
	for i, passage := range ix.passages {
		passage.Score = cosine(queryVec, queryNorm, ix.vectors[i], ix.norms[i])
		scored[i] = passage
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].Score > scored[b].Score
	})

	if topK > len(scored) {
		topK = len(scored)
	}
	if topK < 0 {
		topK = 0
	}
	return scored[:topK]
}

// tokenize lower-cases the text, strips non-alphanumeric characters to
// whitespace, and discards tokens of length <= 2. The identical rules
// apply at build and query time.
func tokenize(text string) []string {
	lower := strings.ToLower(text)
	split := nonAlnumPattern.Split(lower, -1)

	tokens := make([]string, 0, len(split))
	for _, tok := range split {
		if len(tok) > 2 {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// weightVector computes a sparse TF-IDF vector: term frequency
// normalised by the most frequent term, scaled by the shared idf table.
// Terms absent from the idf table contribute zero weight and are never
// added to the vocabulary.
func weightVector(tokens []string, idf map[string]float64) map[string]float64 {
	counts := make(map[string]int, len(tokens))
	maxCount := 0
	for _, tok := range tokens {
		counts[tok]++
		if counts[tok] > maxCount {
			maxCount = counts[tok]
		}
	}

	vec := make(map[string]float64, len(counts))
	for term, count := range counts {
		weight, ok := idf[term]
		if !ok {
			continue
		}
		vec[term] = float64(count) / float64(maxCount) * weight
	}
	return vec
}

// norm is the Euclidean norm of a sparse vector.
func norm(vec map[string]float64) float64 {
	var sum float64
	for _, w := range vec {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// cosine computes similarity between two sparse vectors. A zero norm on
// either side yields 0.0 rather than dividing by zero.
func cosine(a map[string]float64, aNorm float64, b map[string]float64, bNorm float64) float64 {
	if aNorm == 0 || bNorm == 0 {
		return 0.0
	}

	var dot float64
	for term, wa := range a {
		if wb, ok := b[term]; ok {
			dot += wa * wb
		}
	}
	return dot / (aNorm * bNorm)
}

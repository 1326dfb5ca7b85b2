package tfidf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/core/domain"
)

func testCorpus() []domain.RawDocument {
	return []domain.RawDocument{
		{
			Name: "kpi_definitions",
			Text: "AOV is total revenue divided by order count.\n\n" +
				"Gross margin is revenue minus cost of goods sold, divided by revenue.\n\n" +
				"tiny\n\n" +
				"Returns rate is returned orders over total orders.",
		},
		{
			Name: "product_policy",
			Text: "Beverages ship refrigerated and must arrive within three days.\n\n" +
				"Seafood requires overnight shipping without exception.",
		},
	}
}

// TestNew_ChunkIDs tests stable ids counted over surviving passages only
func TestNew_ChunkIDs(t *testing.T) {
	ix := New(testCorpus())

	// "tiny" is below the minimum length, so kpi_definitions keeps
	// three passages with contiguous ordinals.
	assert.Equal(t, 5, ix.Len())

	ids := make([]string, 0, ix.Len())
	for _, p := range ix.Retrieve("orders revenue shipping", ix.Len()) {
		ids = append(ids, p.ID)
	}
	assert.Contains(t, ids, "kpi_definitions::chunk0")
	assert.Contains(t, ids, "kpi_definitions::chunk2")
	assert.Contains(t, ids, "product_policy::chunk1")
	assert.NotContains(t, ids, "kpi_definitions::chunk3")
}

// TestRetrieve_Deterministic tests that repeated queries rank identically
func TestRetrieve_Deterministic(t *testing.T) {
	ix := New(testCorpus())

	first := ix.Retrieve("gross margin revenue", 5)
	second := ix.Retrieve("gross margin revenue", 5)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].Score, second[i].Score)
	}
}

// TestRetrieve_Relevance tests that the matching passage ranks first
func TestRetrieve_Relevance(t *testing.T) {
	ix := New(testCorpus())

	results := ix.Retrieve("gross margin", 3)
	require.NotEmpty(t, results)
	assert.Equal(t, "kpi_definitions::chunk1", results[0].ID)
	assert.Greater(t, results[0].Score, 0.0)
}

// TestRetrieve_DisjointTermsScoreZero tests exact zero for disjoint vocabulary
func TestRetrieve_DisjointTermsScoreZero(t *testing.T) {
	ix := New(testCorpus())

	results := ix.Retrieve("zebra xylophone quantum", ix.Len())
	for _, p := range results {
		assert.Zero(t, p.Score)
	}
}

// TestRetrieve_SortedAndBounded tests ordering and the topK bound
func TestRetrieve_SortedAndBounded(t *testing.T) {
	ix := New(testCorpus())

	results := ix.Retrieve("revenue orders", 3)
	assert.LessOrEqual(t, len(results), 3)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}

	// topK beyond the corpus clamps to the passage count.
	all := ix.Retrieve("revenue orders", 100)
	assert.Len(t, all, ix.Len())
}

// TestRetrieve_EmptyCorpus tests that an empty index never errors
func TestRetrieve_EmptyCorpus(t *testing.T) {
	ix := New(nil)

	assert.Zero(t, ix.Len())
	assert.Empty(t, ix.Retrieve("anything at all", 5))
}

// TestRetrieve_EmptyQuery tests the zero-norm query path
func TestRetrieve_EmptyQuery(t *testing.T) {
	ix := New(testCorpus())

	results := ix.Retrieve("", 3)
	require.Len(t, results, 3)
	for _, p := range results {
		assert.Zero(t, p.Score)
	}
}

// TestRetrieve_CopiesNotReferences tests that callers cannot mutate the index
func TestRetrieve_CopiesNotReferences(t *testing.T) {
	ix := New(testCorpus())

	results := ix.Retrieve("gross margin", 1)
	require.NotEmpty(t, results)
	results[0].Text = "mutated"
	results[0].Score = 99

	again := ix.Retrieve("gross margin", 1)
	assert.NotEqual(t, "mutated", again[0].Text)
	assert.NotEqual(t, 99.0, again[0].Score)
}

// TestTokenize tests the shared tokenisation rules
func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "lowercases", text: "Gross MARGIN", want: []string{"gross", "margin"}},
		{name: "strips punctuation", text: "revenue—minus cost/of goods!", want: []string{"revenue", "minus", "cost", "goods"}},
		{name: "drops short tokens", text: "an it AOV by the", want: []string{"aov", "the"}},
		{name: "digits kept", text: "2024-01-01 orders", want: []string{"2024", "orders"}},
		{name: "empty", text: "", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tokenize(tt.text))
		})
	}
}

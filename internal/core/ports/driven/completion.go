package driven

import "context"

// CompletionService is the contract to the language-model completion
// service. It is a black box invoked with structured prompts and
// returning structured text; all parsing and normalisation of its
// output is owned by the caller.
//
// Implementations may include:
//   - Ollama (local models)
//   - OpenAI (or API-compatible gateways)
type CompletionService interface {
	// ClassifyRoute labels a question with a raw route string.
	// The label may be noisy; callers normalise it.
	ClassifyRoute(ctx context.Context, question string) (string, error)

	// GenerateQuery produces query text for the relational store from a
	// question, a schema description, and extracted context. The result
	// may carry code-fence markup; callers strip it.
	GenerateQuery(ctx context.Context, question, schema, context string) (string, error)

	// Synthesize produces the final answer from query results and
	// passage context. All three result fields are raw text.
	Synthesize(ctx context.Context, req SynthesisRequest) (SynthesisResult, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request. Used at startup before committing to a provider.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// SynthesisRequest carries the inputs for answer synthesis.
type SynthesisRequest struct {
	// Question is the original question.
	Question string

	// Results is the query results rendered as JSON, or an explicit
	// no-results marker.
	Results string

	// PassageContext is the retrieved passages, each tagged with its id.
	PassageContext string

	// FormatHint is the required output format.
	FormatHint string
}

// SynthesisResult carries the raw text fields returned by the service.
type SynthesisResult struct {
	// Answer is the answer text, unparsed.
	Answer string

	// Citations is the citation list as text (often a JSON or
	// comma-separated list).
	Citations string

	// Explanation is a short explanation.
	Explanation string
}

package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a
	// sensible default or an error, depending on whether the prompt is
	// required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next
	// access. Useful when prompts have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and providers.
const (
	// PromptRouteClassify labels a question with a route.
	// The template expects a %s placeholder for the question.
	PromptRouteClassify = "route_classify"

	// PromptGenerateQuery turns a question into SQL.
	// The template expects %s (schema), %s (context), %s (question).
	PromptGenerateQuery = "generate_query"

	// PromptSynthesize produces the final answer.
	// The template expects %s (question), %s (results), %s (passages),
	// %s (format hint).
	PromptSynthesize = "synthesize"
)

// PromptStoreAware is an optional interface for services that can use
// custom prompts. If no store is injected, services fall back to their
// hardcoded defaults.
type PromptStoreAware interface {
	// SetPromptStore sets the prompt store for loading customisable prompts.
	SetPromptStore(store PromptStore)
}

// Package llm holds the prompt templates and output parsing shared by
// the completion-service adapters. Each adapter speaks a different API
// but builds the same three prompts and splits the same labeled
// synthesis output.
package llm

import (
	"strings"

	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/core/ports/driven"
)

// DefaultPrompts contains the embedded default prompt templates, keyed
// by the well-known prompt names.
var DefaultPrompts = map[string]string{
	driven.PromptRouteClassify: `You route retail analytics questions to a handler.
Reply with exactly one word:
- "rag" for questions answered from policy or KPI documents alone
- "sql" for questions answered from the transactional database alone
- "hybrid" for questions needing both

Question: %s
Route:`,

	driven.PromptGenerateQuery: `You translate a question into a single valid SQLite SELECT statement.
Use only tables and columns from the schema. Reply with the SQL only, no commentary.

%s

Context:
%s

Question: %s
SQL:`,

	driven.PromptSynthesize: `You answer a retail analytics question from query results and document passages.
Reply in exactly three labeled sections:
Answer: the answer matching the requested format exactly (JSON if the format is structured)
Citations: a JSON list of table names and passage ids you relied on
Explanation: one or two sentences

Question: %s

Query results: %s

Documents:
%s

Required format: %s`,
}

// noContextMarker replaces an empty query-generation context.
const noContextMarker = "No additional context."

// QueryContext returns the context string for query generation,
// substituting a marker when nothing was extracted.
func QueryContext(context string) string {
	if strings.TrimSpace(context) == "" {
		return noContextMarker
	}
	return context
}

// LoadPrompt loads a prompt from the store, falling back to the
// embedded default if no store is configured or the load fails.
func LoadPrompt(store driven.PromptStore, name string) string {
	fallback := DefaultPrompts[name]
	if store == nil {
		return fallback
	}
	prompt, err := store.Load(name)
	if err != nil || prompt == "" {
		return fallback
	}
	return prompt
}

// ParseSynthesis splits a raw completion into the labeled synthesis
// fields. Section labels are matched case-insensitively at line starts;
// unlabeled output becomes the answer wholesale, so a model that
// ignores the sectioning instructions still yields a usable result.
func ParseSynthesis(raw string) driven.SynthesisResult {
	var result driven.SynthesisResult
	section := "answer"
	sawLabel := false

	appendTo := func(field *string, text string) {
		if *field == "" {
			*field = text
			return
		}
		*field += "\n" + text
	}

	for _, line := range strings.Split(raw, "\n") {
		switch {
		case matchLabel(line, "answer:"):
			section = "answer"
			sawLabel = true
			line = labelRest(line)
		case matchLabel(line, "citations:"):
			section = "citations"
			sawLabel = true
			line = labelRest(line)
		case matchLabel(line, "explanation:"):
			section = "explanation"
			sawLabel = true
			line = labelRest(line)
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		switch section {
		case "answer":
			appendTo(&result.Answer, strings.TrimSpace(line))
		case "citations":
			appendTo(&result.Citations, strings.TrimSpace(line))
		case "explanation":
			appendTo(&result.Explanation, strings.TrimSpace(line))
		}
	}

	if !sawLabel {
		result = driven.SynthesisResult{Answer: strings.TrimSpace(raw)}
	}
	return result
}

// matchLabel reports whether the line starts with the given section label.
func matchLabel(line, label string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), label)
}

// labelRest returns the line content after its section label.
func labelRest(line string) string {
	trimmed := strings.TrimSpace(line)
	idx := strings.Index(trimmed, ":")
	return strings.TrimSpace(trimmed[idx+1:])
}

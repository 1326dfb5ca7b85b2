package domain

import "fmt"

// WorkflowState is the mutable per-run record threaded through the
// pipeline stages. It is created fresh per question, mutated by exactly
// one stage at a time, and discarded once the RunResult is extracted.
type WorkflowState struct {
	// Question is the user's question, verbatim.
	Question string

	// FormatHint is the requested answer format ("int", "float", a
	// structure sketch, or a generic string format).
	FormatHint string

	// Route is the normalised route decision.
	Route Route

	// Passages are the retrieved passages, best first.
	Passages []Passage

	// Constraints are the extracted query-generation hints.
	Constraints ConstraintSet

	// Query is the most recently generated query text.
	Query string

	// QueryRan records whether an EXECUTE stage completed this run.
	QueryRan bool

	// Rows are the query results. A SELECT that matched nothing yields
	// an empty non-nil slice; a failed or non-SELECT execution leaves
	// Rows nil.
	Rows []map[string]any

	// Columns are the result column names, in result order.
	Columns []string

	// QueryErr is the execution error message, empty on success.
	QueryErr string

	// Answer is the final parsed answer. Nil means no answer.
	Answer any

	// Citations are the supporting references, de-duplicated preserving
	// first-seen order.
	Citations []string

	// Explanation is a short human-readable justification.
	Explanation string

	// Confidence is in [0, 1].
	Confidence float64

	// RepairCount is the number of repair attempts so far.
	RepairCount int

	// Trace is the append-only log of pipeline steps.
	Trace []string
}

// NewWorkflowState creates a fresh state for one question.
func NewWorkflowState(question, formatHint string) *WorkflowState {
	return &WorkflowState{
		Question:   question,
		FormatHint: formatHint,
	}
}

// Tracef appends a formatted step to the execution trace.
func (s *WorkflowState) Tracef(format string, args ...any) {
	s.Trace = append(s.Trace, fmt.Sprintf(format, args...))
}

// Result extracts the final per-question output record.
func (s *WorkflowState) Result() RunResult {
	return RunResult{
		Answer:      s.Answer,
		Query:       s.Query,
		Confidence:  s.Confidence,
		Explanation: s.Explanation,
		Citations:   s.Citations,
		Trace:       s.Trace,
	}
}

// RunResult is the terminal output of one pipeline run.
type RunResult struct {
	// Answer is the final parsed answer. Nil means the run degraded to
	// no answer.
	Answer any

	// Query is the last generated query text, empty if none.
	Query string

	// Confidence is in [0, 1].
	Confidence float64

	// Explanation is a short human-readable justification.
	Explanation string

	// Citations are the supporting references.
	Citations []string

	// Trace is the full execution trace.
	Trace []string
}

// DedupeStrings removes duplicates preserving first-seen order.
func DedupeStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

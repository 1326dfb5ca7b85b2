package domain

import "strings"

// Route classifies how a question should be answered.
type Route string

// Available routes.
const (
	// RouteRAG answers from retrieved documents only.
	RouteRAG Route = "rag"

	// RouteSQL answers from the relational store only.
	RouteSQL Route = "sql"

	// RouteHybrid combines document retrieval and the relational store.
	RouteHybrid Route = "hybrid"
)

// NeedsQuery returns true if the route requires query generation and
// execution against the relational store.
func (r Route) NeedsQuery() bool {
	return r == RouteSQL || r == RouteHybrid
}

// String returns the string representation.
func (r Route) String() string {
	return string(r)
}

// NormalizeRoute maps a raw completion-service label onto a known route.
// The delegate output is free text and possibly noisy; an unrecognised
// label is never propagated. Questions default to RouteRAG.
func NormalizeRoute(raw string) Route {
	label := strings.ToLower(strings.TrimSpace(raw))

	hasSQL := strings.Contains(label, "sql")
	hasRAG := strings.Contains(label, "rag")

	switch {
	case strings.Contains(label, "hybrid") || (hasSQL && hasRAG):
		return RouteHybrid
	case hasSQL:
		return RouteSQL
	default:
		return RouteRAG
	}
}

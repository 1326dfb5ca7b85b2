// Package domain defines the core business entities for the retail
// analytics copilot.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Passage: An indexed unit of document text handed to the pipeline
//   - RawDocument: A named blob of corpus text before chunking
//   - WorkflowState: The mutable per-question pipeline record
//   - ConstraintSet: Structured hints extracted for query generation
//   - RunResult: The final per-question output record
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The central service is Pipeline, the state machine that routes a
// question through retrieval, constraint extraction, query generation,
// execution, synthesis and a bounded repair loop.
//
// Services are pure Go with no CGO or external dependencies.
package services

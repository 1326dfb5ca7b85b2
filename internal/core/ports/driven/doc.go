// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports).
//
// The pipeline treats these collaborators as opaque: the completion
// service returns free text that the orchestrator normalises, and the
// data store surfaces execution failures as plain messages rather than
// typed errors.
package driven

package driving

import (
	"context"

	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/core/domain"
)

// CopilotService answers analytical questions end to end.
type CopilotService interface {
	// Ask drives one question through the full pipeline and returns the
	// terminal result. An empty formatHint requests a plain string
	// answer. The returned error covers only conditions outside the
	// pipeline's scope (unreachable collaborators); recoverable
	// conditions degrade to a best-effort RunResult instead.
	Ask(ctx context.Context, question, formatHint string) (domain.RunResult, error)
}

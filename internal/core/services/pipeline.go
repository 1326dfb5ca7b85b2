package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/core/domain"
	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/core/ports/driven"
	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/core/ports/driving"
	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/logger"
)

// Ensure Pipeline implements the interface.
var _ driving.CopilotService = (*Pipeline)(nil)

// Pipeline tuning constants.
const (
	// retrieveTopK is the number of passages fetched per question.
	retrieveTopK = 5

	// synthesisPassages is the number of passages handed to synthesis.
	synthesisPassages = 3

	// kpiExcerptLen bounds KPI definition excerpts in the query context.
	kpiExcerptLen = 200

	// maxRepairs is the repair ceiling. One initial query generation
	// plus maxRepairs retries bounds the run at 3 generation attempts.
	maxRepairs = 2

	// noResultsMarker is handed to synthesis when execution produced
	// nothing usable.
	noResultsMarker = "No results."
)

// node identifies a pipeline state-machine node.
type node int

const (
	nodeRoute node = iota
	nodeRetrieve
	nodePlan
	nodeGenerateQuery
	nodeExecute
	nodeSynthesize
	nodeRepair
	nodeDone
)

// Pipeline drives a question through the end-to-end state machine:
// routing, retrieval, conditional planning, query generation, execution,
// synthesis, confidence scoring and a bounded repair loop.
//
// A Pipeline is safe for concurrent use: each run owns its own
// WorkflowState and the collaborators are read-only or internally
// synchronised.
type Pipeline struct {
	completion driven.CompletionService
	store      driven.DataStore
	retriever  driven.Retriever
}

// NewPipeline creates a pipeline over the given collaborators.
func NewPipeline(
	completion driven.CompletionService,
	store driven.DataStore,
	retriever driven.Retriever,
) *Pipeline {
	return &Pipeline{
		completion: completion,
		store:      store,
		retriever:  retriever,
	}
}

// Ask runs one question to a terminal state.
//
// Recoverable conditions (execution errors, empty-but-suspicious
// results, synthesis failures, format mismatches) are absorbed by the
// repair loop or degrade to a best-effort result. Only collaborator
// failures outside the state machine's scope (routing call failing,
// schema introspection unreachable) return an error.
func (p *Pipeline) Ask(ctx context.Context, question, formatHint string) (domain.RunResult, error) {
	logger.Section("Pipeline Run")
	logger.Debug("Question: %q (format %q)", question, formatHint)

	if formatHint == "" {
		formatHint = "str"
	}

	state := domain.NewWorkflowState(question, formatHint)

	current := nodeRoute
	for current != nodeDone {
		var err error
		switch current {
		case nodeRoute:
			current, err = p.routeStage(ctx, state)
		case nodeRetrieve:
			current = p.retrieveStage(state)
		case nodePlan:
			current = p.planStage(state)
		case nodeGenerateQuery:
			current, err = p.generateStage(ctx, state)
		case nodeExecute:
			current, err = p.executeStage(ctx, state)
		case nodeSynthesize:
			current = p.synthesizeStage(ctx, state)
		case nodeRepair:
			current = p.repairStage(state)
		}
		if err != nil {
			return domain.RunResult{}, err
		}
	}

	logger.Debug("Run finished: confidence %.2f, %d repair(s)", state.Confidence, state.RepairCount)
	return state.Result(), nil
}

// routeStage classifies the question and normalises the label.
func (p *Pipeline) routeStage(ctx context.Context, state *domain.WorkflowState) (node, error) {
	state.Tracef("Routing question...")

	raw, err := p.completion.ClassifyRoute(ctx, state.Question)
	if err != nil {
		return nodeDone, fmt.Errorf("classify route: %w", err)
	}

	state.Route = domain.NormalizeRoute(raw)
	state.Tracef("Routed to: %s", state.Route)
	logger.Debug("Route: %s (raw %q)", state.Route, raw)
	return nodeRetrieve, nil
}

// retrieveStage fetches supporting passages. It runs for every route.
func (p *Pipeline) retrieveStage(state *domain.WorkflowState) node {
	state.Tracef("Retrieving documents...")

	state.Passages = p.retriever.Retrieve(state.Question, retrieveTopK)
	state.Tracef("Retrieved %d passages", len(state.Passages))
	logger.Debug("Retrieved %d passages", len(state.Passages))

	if state.Route.NeedsQuery() {
		return nodePlan
	}
	return nodeSynthesize
}

// planStage extracts constraints for query generation.
func (p *Pipeline) planStage(state *domain.WorkflowState) node {
	state.Tracef("Planning: extracting constraints...")

	state.Constraints = ExtractConstraints(state.Question, state.Passages)
	state.Tracef("Extracted constraints: dates=%v categories=%v kpis=%v",
		state.Constraints.Dates, state.Constraints.Categories, state.Constraints.KPIs)
	return nodeGenerateQuery
}

// generateStage delegates query generation to the completion service.
// A generation failure is not fatal: it leaves unusable query text that
// the execution stage reports into the repair loop.
func (p *Pipeline) generateStage(ctx context.Context, state *domain.WorkflowState) (node, error) {
	state.Tracef("Generating query...")

	schema, err := p.store.SchemaDescription(ctx)
	if err != nil {
		return nodeDone, fmt.Errorf("schema description: %w", err)
	}

	raw, err := p.completion.GenerateQuery(ctx, state.Question, schema, p.queryContext(state))
	if err != nil {
		state.Query = ""
		state.Tracef("Query generation failed: %v", err)
		logger.Warn("Query generation failed: %v", err)
		return nodeExecute, nil
	}

	state.Query = stripCodeFence(raw)
	state.Tracef("Generated query: %s", excerpt(state.Query, 100))
	logger.Debug("Query: %s", state.Query)
	return nodeExecute, nil
}

// queryContext assembles the context string handed to query generation:
// extracted date ranges, category names, and excerpts of passages that
// define a flagged KPI.
func (p *Pipeline) queryContext(state *domain.WorkflowState) string {
	var parts []string

	if len(state.Constraints.Dates) > 0 {
		parts = append(parts, "Date ranges: "+strings.Join(state.Constraints.Dates, ", "))
	}
	if len(state.Constraints.Categories) > 0 {
		parts = append(parts, "Categories: "+strings.Join(state.Constraints.Categories, ", "))
	}
	if len(state.Constraints.KPIs) > 0 {
		for _, passage := range state.Passages {
			lower := strings.ToLower(passage.Text)
			for _, kpi := range state.Constraints.KPIs {
				if strings.Contains(lower, strings.ToLower(kpi.String())) {
					parts = append(parts, "KPI definition: "+excerpt(passage.Text, kpiExcerptLen))
					break
				}
			}
		}
	}

	return strings.Join(parts, "\n")
}

// executeStage runs the generated query against the data store.
func (p *Pipeline) executeStage(ctx context.Context, state *domain.WorkflowState) (node, error) {
	state.Tracef("Executing query...")
	state.QueryRan = true

	result, err := p.store.Execute(ctx, state.Query)
	if err != nil {
		// Connector-level breakage is folded into the same repair path
		// as statement failures.
		result = driven.QueryResult{Err: err.Error()}
	}

	if result.Err != "" {
		state.QueryErr = result.Err
		state.Rows = nil
		state.Columns = nil
		state.Tracef("Query error: %s", result.Err)
		logger.Warn("Query error: %s", result.Err)
	} else {
		state.QueryErr = ""
		state.Rows = result.Rows
		state.Columns = result.Columns
		state.Tracef("Query executed: %d rows", len(result.Rows))
		logger.Debug("Query executed: %d rows", len(result.Rows))
	}

	return p.checkExecution(state), nil
}

// checkExecution decides the transition out of EXECUTE.
// Errors retry up to the repair ceiling, then degrade to a null-results
// synthesis. Empty results are suspicious only for superlative
// questions ("top", "highest").
func (p *Pipeline) checkExecution(state *domain.WorkflowState) node {
	if state.QueryErr != "" {
		if state.RepairCount < maxRepairs {
			return nodeRepair
		}
		return nodeSynthesize
	}

	if len(state.Rows) == 0 && isSuperlative(state.Question) && state.RepairCount < maxRepairs {
		return nodeRepair
	}

	return nodeSynthesize
}

// isSuperlative reports whether the question expects non-empty results.
func isSuperlative(question string) bool {
	lower := strings.ToLower(question)
	return strings.Contains(lower, "top") || strings.Contains(lower, "highest")
}

// synthesizeStage produces the final answer. Any failure here is caught
// and converted to a null answer with zero confidence; synthesis is
// never fatal to the run.
func (p *Pipeline) synthesizeStage(ctx context.Context, state *domain.WorkflowState) node {
	state.Tracef("Synthesizing answer...")

	if err := p.synthesize(ctx, state); err != nil {
		state.Tracef("Synthesis error: %v", err)
		logger.Warn("Synthesis error: %v", err)
		state.Answer = nil
		state.Citations = nil
		state.Explanation = fmt.Sprintf("Error: %v", err)
		state.Confidence = 0
	}

	return p.checkSynthesis(state)
}

// synthesize delegates to the completion service and post-processes its
// raw text output into the workflow state.
func (p *Pipeline) synthesize(ctx context.Context, state *domain.WorkflowState) error {
	results := noResultsMarker
	if len(state.Rows) > 0 {
		encoded, err := json.Marshal(state.Rows)
		if err != nil {
			return fmt.Errorf("encode results: %w", err)
		}
		results = string(encoded)
	}

	synth, err := p.completion.Synthesize(ctx, driven.SynthesisRequest{
		Question:       state.Question,
		Results:        results,
		PassageContext: passageContext(state.Passages),
		FormatHint:     state.FormatHint,
	})
	if err != nil {
		return err
	}

	citations := parseCitations(synth.Citations)

	// Cite every table the generated query touches.
	if state.Query != "" {
		names, err := p.store.TableNames(ctx)
		if err != nil {
			return fmt.Errorf("table names: %w", err)
		}
		lowerQuery := strings.ToLower(state.Query)
		for _, name := range names {
			if strings.Contains(lowerQuery, strings.ToLower(name)) {
				citations = append(citations, name)
			}
		}
	}

	state.Answer = coerceAnswer(synth.Answer, state.FormatHint)
	state.Citations = domain.DedupeStrings(citations)
	state.Explanation = strings.TrimSpace(synth.Explanation)
	state.Confidence = p.confidence(state)
	state.Tracef("Answer synthesized")
	return nil
}

// passageContext renders the top passages for synthesis, each tagged
// with its id.
func passageContext(passages []domain.Passage) string {
	limit := synthesisPassages
	if len(passages) < limit {
		limit = len(passages)
	}

	parts := make([]string, 0, limit)
	for _, p := range passages[:limit] {
		parts = append(parts, fmt.Sprintf("[%s] %s", p.ID, p.Text))
	}
	return strings.Join(parts, "\n\n")
}

// confidence applies the deterministic scoring formula: 0.5 base,
// +0.2 for a clean execution with results, up to +0.2 for retrieval
// quality, -0.1 per repair, +0.1 for citations, clamped to [0, 1].
func (p *Pipeline) confidence(state *domain.WorkflowState) float64 {
	confidence := 0.5

	if state.Rows != nil && state.QueryErr == "" {
		confidence += 0.2
	}

	if len(state.Passages) > 0 {
		n := len(state.Passages)
		if n > synthesisPassages {
			n = synthesisPassages
		}
		var sum float64
		for _, passage := range state.Passages[:n] {
			sum += passage.Score
		}
		confidence += math.Min(0.2, sum/float64(n))
	}

	confidence -= 0.1 * float64(state.RepairCount)

	if len(state.Citations) > 0 {
		confidence += 0.1
	}

	return math.Max(0.0, math.Min(1.0, confidence))
}

// checkSynthesis decides the transition out of SYNTHESIZE: repair on a
// null answer or a format mismatch while the ceiling allows, otherwise
// accept the best-effort answer.
func (p *Pipeline) checkSynthesis(state *domain.WorkflowState) node {
	if state.Answer == nil {
		if state.RepairCount < maxRepairs {
			return nodeRepair
		}
		return nodeDone
	}

	switch state.FormatHint {
	case "int":
		if !isIntAnswer(state.Answer) && state.RepairCount < maxRepairs {
			return nodeRepair
		}
	case "float":
		if !isNumericAnswer(state.Answer) && state.RepairCount < maxRepairs {
			return nodeRepair
		}
	}

	return nodeDone
}

// repairStage is a counted gate: it increments the repair counter and
// records the triggering condition, regenerating nothing itself.
func (p *Pipeline) repairStage(state *domain.WorkflowState) node {
	state.RepairCount++
	state.Tracef("Repair attempt %d...", state.RepairCount)
	logger.Debug("Repair attempt %d", state.RepairCount)

	if state.QueryErr != "" {
		state.Tracef("Repairing query. Error: %s", state.QueryErr)
	}

	// Give up only beyond the ceiling: the at-ceiling cutoffs in
	// checkExecution and checkSynthesis already stop new repairs, so an
	// always-failing store still gets its full 1+maxRepairs generation
	// attempts.
	if state.RepairCount > maxRepairs {
		return nodeSynthesize
	}
	return nodeGenerateQuery
}

// excerpt truncates text to at most n bytes.
func excerpt(text string, n int) string {
	if len(text) <= n {
		return text
	}
	return text[:n]
}

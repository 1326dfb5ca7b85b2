package services

import (
	"regexp"
	"strings"

	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/core/domain"
)

// datePattern matches ISO calendar dates (YYYY-MM-DD).
var datePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// ExtractConstraints derives structured query-generation hints from a
// question and its retrieved passages. Extraction is heuristic and
// best-effort: an empty field means nothing matched, never an error.
//
// Dates and categories are matched over the question plus passage text;
// KPI flags are keyed off the question alone.
func ExtractConstraints(question string, passages []domain.Passage) domain.ConstraintSet {
	var sb strings.Builder
	sb.WriteString(question)
	for _, p := range passages {
		sb.WriteString("\n")
		sb.WriteString(p.Text)
	}
	text := sb.String()

	return domain.ConstraintSet{
		Dates:      extractDates(text),
		Categories: extractCategories(text),
		KPIs:       extractKPIs(question),
	}
}

// extractDates returns all ISO dates in the text, de-duplicated
// preserving first occurrence.
func extractDates(text string) []string {
	matches := datePattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	dates := domain.DedupeStrings(matches)
	return dates
}

// extractCategories matches the fixed category vocabulary against the
// text, case-insensitively, preserving vocabulary order.
func extractCategories(text string) []string {
	lower := strings.ToLower(text)

	var found []string
	for _, cat := range domain.Categories {
		if strings.Contains(lower, strings.ToLower(cat)) {
			found = append(found, cat)
		}
	}
	return found
}

// extractKPIs flags recognised metrics mentioned in the question.
func extractKPIs(question string) []domain.KPI {
	lower := strings.ToLower(question)

	var kpis []domain.KPI
	if strings.Contains(lower, "aov") || strings.Contains(lower, "average order value") {
		kpis = append(kpis, domain.KPIAverageOrderValue)
	}
	if strings.Contains(lower, "margin") {
		kpis = append(kpis, domain.KPIGrossMargin)
	}
	return kpis
}

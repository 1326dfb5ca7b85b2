package domain

// KPI identifies a recognised key performance indicator.
type KPI string

// Recognised KPIs.
const (
	// KPIAverageOrderValue is the average order value metric.
	KPIAverageOrderValue KPI = "AOV"

	// KPIGrossMargin is the gross margin metric.
	KPIGrossMargin KPI = "Gross Margin"
)

// String returns the string representation.
func (k KPI) String() string {
	return string(k)
}

// Categories is the closed vocabulary of product category names.
// Constraint extraction matches against this list and preserves its order.
var Categories = []string{
	"Beverages",
	"Condiments",
	"Confections",
	"Dairy Products",
	"Grains/Cereals",
	"Meat/Poultry",
	"Produce",
	"Seafood",
}

// ConstraintSet holds structured hints derived from a question and its
// retrieved passages, consumed by query generation. All fields are
// best-effort: an empty field means nothing matched, not an error.
type ConstraintSet struct {
	// Dates are ISO calendar dates (YYYY-MM-DD) found in the text,
	// de-duplicated.
	Dates []string

	// Categories are vocabulary entries mentioned in the text, in
	// vocabulary order.
	Categories []string

	// KPIs are metrics the question asks about.
	KPIs []KPI
}

// Empty returns true if no constraints were extracted.
func (c ConstraintSet) Empty() bool {
	return len(c.Dates) == 0 && len(c.Categories) == 0 && len(c.KPIs) == 0
}

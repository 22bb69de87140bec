package models

// Insight priority levels. Sorting is high, medium, low with emission order
// preserved within a level.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Insight is one canned observation produced by the threshold rules.
type Insight struct {
	Icon        string  `json:"icon"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	Metric      string  `json:"metric,omitempty"`
	Value       float64 `json:"value,omitempty"`
}

// PriorityRank maps a priority to its sort rank; unknown values sort last.
func PriorityRank(priority string) int {
	switch priority {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

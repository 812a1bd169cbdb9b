package analysis

// Severity of a single contractual risk as reported by the model.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// RiskItem is one flagged contractual issue. The ID is assigned locally in
// array order; every other field is passed through from the model unmodified,
// an out-of-taxonomy severity or category is preserved rather than rejected.
type RiskItem struct {
	ID              string   `json:"id"`
	Type            Severity `json:"type"`
	Category        string   `json:"category"`
	Description     string   `json:"description"`
	Explanation     string   `json:"explanation"`
	Suggestion      string   `json:"suggestion"`
	Location        string   `json:"location,omitempty"`
	OriginalClause  string   `json:"originalClause,omitempty"`
	SuggestedClause string   `json:"suggestedClause,omitempty"`
}

// RevisedSection pairs the original text of a named section with a revised
// version in which inserted or changed spans are wrapped in ** markers.
type RevisedSection struct {
	Section  string `json:"section"`
	Original string `json:"original"`
	Revised  string `json:"revised"`
}

// SeverityCounts value object
type SeverityCounts struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
	Total  int `json:"total"`
}

// Result is the normalized outcome of one contract analysis.
type Result struct {
	Risks           []RiskItem       `json:"risks"`
	OverallScore    int              `json:"overallScore"`
	TotalClauses    int              `json:"totalClauses"`
	OriginalText    string           `json:"originalText,omitempty"`
	RevisedSections []RevisedSection `json:"revisedSections"`
}

// Counts tallies risks by severity. Unknown severity strings count toward
// Total only.
func (r *Result) Counts() SeverityCounts {
	var c SeverityCounts
	for _, risk := range r.Risks {
		switch risk.Type {
		case SeverityHigh:
			c.High++
		case SeverityMedium:
			c.Medium++
		case SeverityLow:
			c.Low++
		}
		c.Total++
	}
	return c
}

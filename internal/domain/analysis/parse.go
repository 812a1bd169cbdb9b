package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedResponse indicates the model reply could not be parsed into a
// Result: non-JSON text, a truncated payload, or a payload missing the
// required shape.
var ErrMalformedResponse = errors.New("malformed analysis response")

// payload mirrors the JSON shape the prompt instructs the model to emit.
// Pointer fields distinguish an absent key from a zero value so shape
// violations fail here instead of rendering as zeroes downstream.
type payload struct {
	Risks        *[]payloadRisk    `json:"risks"`
	OverallScore *float64          `json:"overallScore"`
	TotalClauses int               `json:"totalClauses"`
	Revised      []payloadRevision `json:"revisedSections"`
}

type payloadRisk struct {
	Type            string `json:"type"`
	Category        string `json:"category"`
	Description     string `json:"description"`
	Explanation     string `json:"explanation"`
	Suggestion      string `json:"suggestion"`
	Location        string `json:"location"`
	OriginalClause  string `json:"originalClause"`
	SuggestedClause string `json:"suggestedClause"`
}

type payloadRevision struct {
	Section  string `json:"section"`
	Original string `json:"original"`
	Revised  string `json:"revised"`
}

// Parse turns raw model output into a normalized Result. It strips an
// optional fenced code block around the payload, parses the interior as JSON,
// validates the required shape, and assigns each risk a sequential
// risk-<n> identifier in array order.
func Parse(raw string) (*Result, error) {
	cleaned := stripFences(raw)

	var p payload
	if err := json.Unmarshal([]byte(cleaned), &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if p.Risks == nil {
		return nil, fmt.Errorf("%w: missing risks", ErrMalformedResponse)
	}
	if p.OverallScore == nil {
		return nil, fmt.Errorf("%w: missing overallScore", ErrMalformedResponse)
	}
	score := int(*p.OverallScore)
	if score < 0 || score > 100 {
		return nil, fmt.Errorf("%w: overallScore %d out of range", ErrMalformedResponse, score)
	}

	out := &Result{
		Risks:           make([]RiskItem, 0, len(*p.Risks)),
		OverallScore:    score,
		TotalClauses:    p.TotalClauses,
		RevisedSections: make([]RevisedSection, 0, len(p.Revised)),
	}
	for i, rk := range *p.Risks {
		out.Risks = append(out.Risks, RiskItem{
			ID:              fmt.Sprintf("risk-%d", i+1),
			Type:            Severity(rk.Type),
			Category:        rk.Category,
			Description:     rk.Description,
			Explanation:     rk.Explanation,
			Suggestion:      rk.Suggestion,
			Location:        rk.Location,
			OriginalClause:  rk.OriginalClause,
			SuggestedClause: rk.SuggestedClause,
		})
	}
	for _, rev := range p.Revised {
		out.RevisedSections = append(out.RevisedSections, RevisedSection(rev))
	}
	return out, nil
}

// stripFences removes a surrounding ``` or ```json code fence when present.
func stripFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

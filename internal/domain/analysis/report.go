package analysis

import (
	"fmt"
	"strings"
	"time"
)

// SanitizeFilename replaces every non-alphanumeric character with an
// underscore so exported artifacts are safe on any filesystem.
func SanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// ReportFilename builds the export name for the analysis report.
func ReportFilename(base string, t time.Time) string {
	return fmt.Sprintf("%s_analysis_%s.txt", SanitizeFilename(base), t.Format("2006-01-02"))
}

// RevisedFilename builds the export name for the revised contract document.
func RevisedFilename(base string, t time.Time) string {
	return fmt.Sprintf("%s_revised_%s.txt", SanitizeFilename(base), t.Format("2006-01-02"))
}

// RenderReport renders the plain-text analysis report.
func RenderReport(r *Result, filename string, t time.Time) string {
	var b strings.Builder
	b.WriteString("CONTRACT RISK ANALYSIS REPORT\n")
	b.WriteString("=============================\n\n")
	fmt.Fprintf(&b, "File: %s\n", filename)
	fmt.Fprintf(&b, "Date: %s\n", t.Format("2006-01-02"))
	fmt.Fprintf(&b, "Overall score: %d/100\n", r.OverallScore)
	fmt.Fprintf(&b, "Clauses reviewed: %d\n", r.TotalClauses)
	fmt.Fprintf(&b, "Risks found: %d\n\n", len(r.Risks))

	for _, risk := range r.Risks {
		fmt.Fprintf(&b, "[%s] %s - %s\n", strings.ToUpper(string(risk.Type)), risk.ID, risk.Category)
		fmt.Fprintf(&b, "  Issue: %s\n", risk.Description)
		if risk.Explanation != "" {
			fmt.Fprintf(&b, "  Why it matters: %s\n", risk.Explanation)
		}
		if risk.Suggestion != "" {
			fmt.Fprintf(&b, "  Suggested fix: %s\n", risk.Suggestion)
		}
		if risk.Location != "" {
			fmt.Fprintf(&b, "  Location: %s\n", risk.Location)
		}
		if risk.OriginalClause != "" {
			fmt.Fprintf(&b, "  Original clause: %s\n", risk.OriginalClause)
		}
		if risk.SuggestedClause != "" {
			fmt.Fprintf(&b, "  Suggested clause: %s\n", risk.SuggestedClause)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderRevised renders the plain-text revised contract. Sections the model
// rewrote keep their ** change markers; when no revisions were returned the
// original text is emitted unchanged.
func RenderRevised(r *Result) string {
	if len(r.RevisedSections) == 0 {
		return r.OriginalText
	}
	var b strings.Builder
	b.WriteString("REVISED CONTRACT\n")
	b.WriteString("================\n")
	for _, s := range r.RevisedSections {
		fmt.Fprintf(&b, "\n## %s\n\n%s\n", s.Section, s.Revised)
	}
	return b.String()
}

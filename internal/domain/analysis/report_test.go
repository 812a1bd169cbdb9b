package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "service_agreement", SanitizeFilename("service agreement"))
	assert.Equal(t, "NDA__final__v2", SanitizeFilename("NDA (final) v2"))
	assert.Equal(t, "contract", SanitizeFilename("contract"))
	assert.Equal(t, "___", SanitizeFilename("ä/б"))
}

func TestExportFilenames(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	assert.Equal(t, "service_agreement_analysis_2026-03-14.txt", ReportFilename("service agreement", at))
	assert.Equal(t, "service_agreement_revised_2026-03-14.txt", RevisedFilename("service agreement", at))
}

func TestRenderReport(t *testing.T) {
	r := &Result{
		Risks: []RiskItem{
			{
				ID:          "risk-1",
				Type:        SeverityHigh,
				Category:    "Liability",
				Description: "Unlimited liability",
				Explanation: "No cap on damages.",
				Suggestion:  "Add a cap.",
				Location:    "Section 8",
			},
		},
		OverallScore: 55,
		TotalClauses: 14,
	}
	out := RenderReport(r, "contract.txt", time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC))

	assert.Contains(t, out, "CONTRACT RISK ANALYSIS REPORT")
	assert.Contains(t, out, "File: contract.txt")
	assert.Contains(t, out, "Date: 2026-03-14")
	assert.Contains(t, out, "Overall score: 55/100")
	assert.Contains(t, out, "[HIGH] risk-1 - Liability")
	assert.Contains(t, out, "Issue: Unlimited liability")
}

func TestRenderRevised_NoSectionsFallsBackToOriginal(t *testing.T) {
	r := &Result{OriginalText: "the original contract body"}
	assert.Equal(t, "the original contract body", RenderRevised(r))
}

func TestRenderRevised_SectionsKeepChangeMarkers(t *testing.T) {
	r := &Result{
		OriginalText: "ignored when sections exist",
		RevisedSections: []RevisedSection{
			{Section: "Liability", Original: "liable for all damages", Revised: "liable **up to fees paid**"},
		},
	}
	out := RenderRevised(r)

	assert.Contains(t, out, "REVISED CONTRACT")
	assert.Contains(t, out, "## Liability")
	assert.Contains(t, out, "**up to fees paid**")
	assert.NotContains(t, out, "ignored when sections exist")
}

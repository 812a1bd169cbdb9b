package prompt

import "fmt"

// schemaExample is the response shape shown to the model. It must stay valid
// JSON and must change in lockstep with the response parser.
const schemaExample = `{
  "risks": [
    {
      "type": "high",
      "category": "Payment Terms",
      "description": "<string>",
      "explanation": "<string>",
      "suggestion": "<string>",
      "location": "<string>",
      "originalClause": "<string>",
      "suggestedClause": "<string>"
    }
  ],
  "overallScore": 70,
  "totalClauses": 12,
  "revisedSections": [
    {"section": "<string>", "original": "<string>", "revised": "<string>"}
  ]
}`

const reviewTemplate = `You are an experienced contract lawyer reviewing a contract for a non-lawyer client. Identify risky clauses in the contract below.

Check for risks in these seven categories:
1. Payment Terms
2. Intellectual Property
3. Scope of Work
4. Termination
5. Liability
6. Non-Compete
7. Confidentiality

For every risk report: type (high, medium or low), category, description, a plain-language explanation, a suggested fix, a location reference (section or clause), and when possible the originalClause text plus a suggestedClause replacement.

Also return revisedSections: for each section you would change, give the section name, its original text, and a revised text in which inserted or changed spans are wrapped in double asterisks, like **this**.

Respond with one JSON object only. No commentary, no markdown code fences. Use exactly this shape:

` + schemaExample + `

overallScore is an integer from 0 to 100, higher means safer. totalClauses is your estimate of how many clauses the contract contains.

Contract text:

%s`

// Build embeds the extracted contract text verbatim into the review
// instruction template. Pure and deterministic, no I/O.
func Build(contractText string) string {
	return fmt.Sprintf(reviewTemplate, contractText)
}

package judge

import "github.com/gokugml/membench/internal/util"

// systemPrompt carries the fixed scoring rubric. The wording is part of the
// judging contract: downstream aggregation assumes scores follow this scale.
const systemPrompt = `You are an expert evaluator of memory retrieval systems. Assess the semantic similarity between content retrieved from a memory system and an expected-content checklist.

Scoring scale (0-10):
- 10: the retrieved content fully covers the checklist, accurate and complete.
- 8-9: covers most checklist items accurately, with minor differences in detail.
- 6-7: covers the checklist's main items but misses some important details.
- 4-5: some relevance to the checklist, but materially incomplete or clearly off target.
- 2-3: low relevance; most checklist items are not matched.
- 0-1: irrelevant to the checklist, or empty.

Reply with a first line of the form "Score: <integer 0-10>" followed by a brief rationale for the score.`

// userPromptTemplate is rendered per judgment with the retrieved text and the
// expected checklist.
const userPromptTemplate = `Retrieved content:
{{.Retrieved}}

Expected content checklist:
{{bullet .Checklist}}

Give the score (0-10) and a brief rationale:`

// renderUserPrompt builds the per-call judge prompt.
func renderUserPrompt(retrieved string, checklist []string) (string, error) {
	if retrieved == "" {
		retrieved = "(no retrieval result)"
	}
	return util.RenderTemplate(userPromptTemplate, map[string]any{
		"Retrieved": retrieved,
		"Checklist": checklist,
	})
}

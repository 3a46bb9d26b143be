package ai

import (
	"fmt"

	"github.com/lgsobral/eduhub/internal/model"
)

// SystemPrompt instructs the model to act as a pedagogical curator and
// to answer with nothing but a single JSON object. Every rule exists to
// shrink the space of responses the parser has to cope with; the example
// output is a few-shot anchor that noticeably reduces format drift.
const SystemPrompt = `You are a Pedagogical Assistant specialised in curating educational materials for higher education. Your job is to help teachers and students catalog learning resources intelligently.

MANDATORY RULES:
1. You MUST answer EXCLUSIVELY with a valid JSON object — no markdown, no extra explanations, no code blocks.
2. The JSON must contain exactly two fields: "description" (string) and "tags" (array of at most 3 strings).
3. The description must be 2 to 4 sentences, informative and useful for university students.
4. The description must explain what the student will learn or find in the resource.
5. The tags must be relevant lowercase keywords.
6. Adapt tone and vocabulary to the resource type (video = dynamic language, PDF = technical language, link = informative language).

EXAMPLE OF EXPECTED OUTPUT:
{"description": "This video introduces the fundamental concepts of derivatives and integrals, essential for a first Calculus course. Students will learn to solve practical rate-of-change and area-under-curve problems, with step-by-step worked examples.", "tags": ["calculus", "derivatives", "integrals"]}

IMPORTANT: Return ONLY the JSON, with no text before or after it.`

// typeLabels maps resource types to the human-readable label embedded in
// the user message, giving the model context to adapt its tone.
var typeLabels = map[model.ResourceType]string{
	model.TypeVideo: "Educational Video",
	model.TypePDF:   "PDF Document",
	model.TypeLink:  "Link/Web Resource",
}

// BuildUserMessage renders the per-request half of the prompt. The title
// and type label are embedded verbatim; for identical inputs the message
// is byte-for-byte identical.
func BuildUserMessage(title string, resourceType model.ResourceType) string {
	label, ok := typeLabels[resourceType]
	if !ok {
		label = string(resourceType)
	}

	return fmt.Sprintf(
		"Generate a pedagogical description and up to 3 tags for the following resource:\n"+
			"- Title: %s\n"+
			"- Type: %s\n\n"+
			"Answer ONLY with the JSON in the specified format.",
		title, label,
	)
}

// Package ai talks to the language model behind the Smart Assist feature.
//
// The package is split along a deliberate seam:
//   - Client is the narrow transport interface ("prompt in, raw text out").
//   - Gemini implements it against the Google Gemini API.
//   - Offline implements it deterministically, for running without a key.
//   - ParseGeneration turns untrusted raw text into a validated record.
//
// Everything above the Client interface (prompt building, parsing,
// retries) lives in the service layer and is tested against fakes —
// the same interface-seam pattern the executor abstraction uses for
// swapping a real backend for a mock.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/lgsobral/eduhub/internal/model"
)

// Client sends one prompt to a language model and returns its raw text
// response. Implementations must honour ctx cancellation and deadlines;
// the caller owns the timeout policy.
type Client interface {
	GenerateContent(ctx context.Context, system, user string) (string, error)
}

// Offline is a deterministic Client used when no API key is configured.
// It lets the whole system run in demo mode: the response it fabricates
// is plain JSON text that flows through the same parse/validate path as
// a real model response, so every downstream code path stays exercised.
type Offline struct{}

var _ Client = Offline{}

// offlineTemplates keys a canned description template by resource type.
var offlineTemplates = map[model.ResourceType]string{
	model.TypeVideo: "This educational video on '%s' walks through the core concepts of the topic in an approachable way. It is a good fit for students who want to understand both the theory and its practical applications.",
	model.TypePDF:   "This PDF document on '%s' offers a technical, in-depth treatment of the subject. The material includes formal definitions, worked examples and proposed exercises to consolidate the content.",
	model.TypeLink:  "This web resource on '%s' provides up-to-date, interactive content about the topic. Students will find complementary references and supporting material to deepen their studies.",
}

// GenerateContent builds a canned JSON response from the title and the
// resource type embedded in the user message. The tags are the first
// significant words of the title, which keeps the output stable for a
// given input — repeated demo calls always produce the same record.
func (Offline) GenerateContent(ctx context.Context, system, user string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	title, resourceType := extractTitleAndType(user)

	tmpl, ok := offlineTemplates[resourceType]
	if !ok {
		tmpl = "This educational resource on '%s' contains content relevant to university students."
	}
	description := fmt.Sprintf(tmpl, title)

	tags := significantWords(title, 3)
	if len(tags) == 0 {
		tags = []string{"education"}
	}

	quoted := make([]string, len(tags))
	for i, tag := range tags {
		quoted[i] = fmt.Sprintf("%q", tag)
	}

	return fmt.Sprintf(`{"description": %q, "tags": [%s]}`,
		description, strings.Join(quoted, ", ")), nil
}

// extractTitleAndType pulls the "- Title:" and "- Type:" lines back out
// of the user message built by BuildUserMessage. Falling back to the
// whole message keeps Offline usable with arbitrary prompts.
func extractTitleAndType(user string) (string, model.ResourceType) {
	title := strings.TrimSpace(user)
	var resourceType model.ResourceType

	for _, line := range strings.Split(user, "\n") {
		line = strings.TrimSpace(line)
		if t, ok := strings.CutPrefix(line, "- Title: "); ok {
			title = strings.TrimSpace(t)
		}
		if label, ok := strings.CutPrefix(line, "- Type: "); ok {
			for rt, tl := range typeLabels {
				if strings.TrimSpace(label) == tl {
					resourceType = rt
				}
			}
		}
	}

	return title, resourceType
}

// significantWords returns up to max lowercase words from the title,
// skipping short filler words ("to", "an", ...).
func significantWords(title string, max int) []string {
	var words []string
	for _, w := range strings.Fields(title) {
		w = strings.ToLower(strings.Trim(w, ".,:;!?\"'()"))
		if len(w) <= 2 {
			continue
		}
		words = append(words, w)
		if len(words) == max {
			break
		}
	}
	return words
}

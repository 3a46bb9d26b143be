package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Generation parameters sent with every request. Temperature 0.7 trades
// a little determinism for descriptions that don't all read the same;
// the token cap bounds the response to roughly the 2-4 sentences the
// prompt asks for.
const (
	geminiTemperature     float32 = 0.7
	geminiTopP            float32 = 0.9
	geminiTopK            float32 = 40
	geminiMaxOutputTokens int32   = 500
)

// Gemini is the Client implementation backed by the Google Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

var _ Client = (*Gemini)(nil)

// NewGemini creates a Gemini-backed client.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: creating client: %w", err)
	}

	return &Gemini{
		client: client,
		model:  model,
	}, nil
}

// GenerateContent sends the prompt and returns the raw response text.
//
// The system prompt travels in SystemInstruction rather than as a chat
// turn — the API weights instructions there more strongly, which is
// exactly what we want for the JSON-only output rules.
//
// Errors come back untranslated; the service layer decides which are
// timeouts, which are upstream failures, and what to tell the caller.
func (g *Gemini) GenerateContent(ctx context.Context, system, user string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx,
		g.model,
		genai.Text(user),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
			Temperature:       genai.Ptr(geminiTemperature),
			TopP:              genai.Ptr(geminiTopP),
			TopK:              genai.Ptr(geminiTopK),
			MaxOutputTokens:   geminiMaxOutputTokens,
		},
	)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}

	// Navigate the candidates/parts structure by hand so a response with
	// no text (safety block, empty candidate) is a detectable error here
	// instead of an empty string that fails parsing later.
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini: response contains no candidates")
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			return part.Text, nil
		}
	}

	return "", fmt.Errorf("gemini: response contains no text parts")
}

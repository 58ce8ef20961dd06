package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/HavishJadav/mkonnekt-assignment/internal/agent"
	"github.com/HavishJadav/mkonnekt-assignment/internal/utils"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModel is used when GEMINI_MODEL is not configured.
const DefaultModel = "gemini-2.0-flash-001"

// Summarizer narrates a computed answer with Gemini. Every failure path
// falls back to the deterministic rendering; the numeric answer is never
// lost to an LLM problem.
type Summarizer struct {
	apiKey string
	model  string
}

// NewSummarizer accepts an empty apiKey: the summarizer then always uses
// the fallback text, which is the documented no-credential mode.
func NewSummarizer(apiKey, model string) *Summarizer {
	if model == "" {
		model = DefaultModel
	}
	return &Summarizer{apiKey: apiKey, model: model}
}

// Summarize implements agent.Summarizer.
func (s *Summarizer) Summarize(ctx context.Context, ans *agent.Answer) string {
	if s.apiKey == "" {
		return Fallback(ans, "LLM unavailable")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		log.Printf("gemini client error: %v", err)
		return Fallback(ans, "LLM error")
	}
	defer client.Close()

	model := client.GenerativeModel(s.model)
	resp, err := model.GenerateContent(ctx, genai.Text(buildPrompt(ans)))
	if err != nil {
		log.Printf("gemini generate error: %v", err)
		return Fallback(ans, "LLM error")
	}

	if text := extractText(resp); text != "" {
		return text
	}
	return Fallback(ans, "Empty LLM response")
}

func buildPrompt(ans *agent.Answer) string {
	facts, err := json.MarshalIndent(ans.Results, "", "  ")
	if err != nil {
		facts = []byte("{}")
	}

	return fmt.Sprintf(`You are a sales insights assistant.
Question: %q
Intents: %v
Date range: %s

Facts computed from real sales data:
%s

Summarize these results clearly in natural language.
Keep it factual and formatted in bullet or numbered lists.`,
		ans.Query, ans.Intents, utils.FormatRange(ans.Start, ans.End), facts)
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			return string(txt)
		}
	}
	return ""
}

package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/ecoimpact/backend/internal/application/adapter"
	"github.com/ecoimpact/backend/internal/domain/entity"
)

const defaultGeminiModel = "gemini-1.5-flash"

// GeminiCoachingWriter rewrites coaching copy using Google Gemini.
type GeminiCoachingWriter struct {
	apiKey    string
	modelName string
}

var _ adapter.CoachingWriter = (*GeminiCoachingWriter)(nil)

// NewGeminiCoachingWriter creates a new writer. An empty model uses the default.
func NewGeminiCoachingWriter(apiKey, modelName string) *GeminiCoachingWriter {
	if modelName == "" {
		modelName = defaultGeminiModel
	}
	return &GeminiCoachingWriter{
		apiKey:    apiKey,
		modelName: modelName,
	}
}

// IsAvailable checks if the writer has an API key.
func (w *GeminiCoachingWriter) IsAvailable() bool {
	return w.apiKey != ""
}

// Rewrite asks Gemini for friendlier titles and descriptions. Everything else
// on the suggestions is copied from the input.
func (w *GeminiCoachingWriter) Rewrite(ctx context.Context, userID string, suggestions []entity.CoachingSuggestion) ([]entity.CoachingSuggestion, error) {
	if !w.IsAvailable() {
		return nil, fmt.Errorf("gemini writer is not configured")
	}
	if len(suggestions) == 0 {
		return []entity.CoachingSuggestion{}, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(w.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(w.modelName)
	model.SetTemperature(0.4)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(buildCoachingPrompt(suggestions)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}
	return applyRewrites(suggestions, text)
}

func buildCoachingPrompt(suggestions []entity.CoachingSuggestion) string {
	var sb strings.Builder

	sb.WriteString(`You write short, encouraging sustainability tips for a banking app.
Rewrite the title and description of each suggestion below. Keep every number
exactly as given and do not invent new facts. Titles stay under 60 characters,
descriptions under 200.

SUGGESTIONS:
`)
	for _, s := range suggestions {
		sb.WriteString(fmt.Sprintf("- id: %s, category: %s, saves_kg: %.1f, title: %q, description: %q\n",
			s.SuggestionID, s.CategoryName, s.EstimatedSavingsKg, s.Title, s.Description))
	}
	sb.WriteString(`
Respond with a JSON array, one object per suggestion in the same order:
{"suggestion_id": "id from above", "title": "string", "description": "string"}

RESPONSE FORMAT: return only the JSON array, no additional text.
`)

	return sb.String()
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from gemini")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok && text != "" {
			return string(text), nil
		}
	}
	return "", fmt.Errorf("no text content in response")
}

type geminiRewrite struct {
	SuggestionID string `json:"suggestion_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
}

// applyRewrites merges model output into copies of the input. Suggestions the
// model skipped or blanked keep their original copy.
func applyRewrites(suggestions []entity.CoachingSuggestion, text string) ([]entity.CoachingSuggestion, error) {
	text = strings.TrimPrefix(strings.TrimSpace(text), "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var rewrites []geminiRewrite
	if err := json.Unmarshal([]byte(text), &rewrites); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	byID := make(map[string]geminiRewrite, len(rewrites))
	for _, r := range rewrites {
		byID[r.SuggestionID] = r
	}

	out := make([]entity.CoachingSuggestion, len(suggestions))
	for i, s := range suggestions {
		out[i] = s
		r, ok := byID[s.SuggestionID]
		if !ok {
			continue
		}
		if title := strings.TrimSpace(r.Title); title != "" {
			out[i].Title = title
		}
		if description := strings.TrimSpace(r.Description); description != "" {
			out[i].Description = description
		}
	}
	return out, nil
}

// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/budgetly/backend/internal/application/adapter"
)

// GeminiService implements the adapter.InsightService using Google Gemini.
type GeminiService struct {
	apiKey    string
	modelName string
}

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(apiKey string) *GeminiService {
	return &GeminiService{
		apiKey:    apiKey,
		modelName: "gemini-2.5-flash-lite",
	}
}

// IsAvailable checks if the Gemini service is properly configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// Summarize produces a short spending commentary for the given aggregates.
func (s *GeminiService) Summarize(ctx context.Context, request *adapter.InsightRequest) (string, error) {
	if !s.IsAvailable() {
		return "", fmt.Errorf("gemini service is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.4)

	resp, err := model.GenerateContent(ctx, genai.Text(s.buildPrompt(request)))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return extractText(resp)
}

// buildPrompt creates the prompt for Gemini. Only aggregates go into the
// prompt, never individual transactions.
func (s *GeminiService) buildPrompt(request *adapter.InsightRequest) string {
	var sb strings.Builder

	sb.WriteString("You are a personal finance assistant. Write a short, friendly commentary (3 to 5 sentences) on the following monthly spending summary. Point out the largest spending categories and whether income covered expenses. Do not invent numbers that are not in the data. Respond with plain text only.\n\n")

	sb.WriteString(fmt.Sprintf("Period: %s to %s\n",
		request.PeriodStart.Format("2006-01-02"),
		request.PeriodEnd.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Total income: %s\n", request.Income.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Total expenses: %s\n", request.Expenses.StringFixed(2)))

	sb.WriteString("Expenses by category:\n")
	if len(request.Categories) == 0 {
		sb.WriteString("(no expenses recorded)\n")
	}
	for _, cat := range request.Categories {
		name := cat.CategoryName
		if name == "" {
			name = "Uncategorized"
		}
		sb.WriteString(fmt.Sprintf("- %s: %s (%d transactions)\n",
			name, cat.Total.StringFixed(2), cat.Count))
	}

	return sb.String()
}

// extractText pulls the plain text out of a Gemini response.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	content := strings.TrimSpace(sb.String())
	if content == "" {
		return "", fmt.Errorf("no text content in response")
	}
	return content, nil
}

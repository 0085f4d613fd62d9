// File: services/intelligence/extractor.go
package intelligence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"schedbot/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const systemPromptFormat = "You are a helpful meeting scheduling assistant. " +
	"Today's date is %s and the default time zone is %s. " +
	"When a user asks to schedule a meeting, parse the relevant details " +
	"like attendees, date, and time, and return them in JSON format. " +
	"For example: {\"attendees\":[...], \"date\":\"...\", \"time\":\"...\"}. " +
	"Return only the JSON object, nothing else."

// GeminiExtractor implements IntentExtractor against the Gemini API.
type GeminiExtractor struct {
	model *genai.GenerativeModel
}

// NewGeminiExtractor builds the extractor with a fixed system instruction.
// The current date is captured once here and reused for the process lifetime.
func NewGeminiExtractor(apiKey, modelName string, temperature float32, timezone string) *GeminiExtractor {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		panic(fmt.Sprintf("failed to create Gemini client: %v", err))
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(temperature)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{
			genai.Text(fmt.Sprintf(systemPromptFormat, time.Now().Format("2006-01-02"), timezone)),
		},
	}
	return &GeminiExtractor{model: model}
}

// Extract sends the user text as a single turn and returns the model's raw
// text, intended to be JSON but not guaranteed to be.
func (g *GeminiExtractor) Extract(ctx context.Context, text string) models.ExtractionResult {
	resp, err := g.model.GenerateContent(ctx, genai.Text(text))
	if err != nil {
		return models.ExtractionResult{Err: &models.ExtractionError{
			Kind:    models.ExtractionErrUpstream,
			Message: err.Error(),
		}}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return models.ExtractionResult{Err: &models.ExtractionError{
			Kind:    models.ExtractionErrEmpty,
			Message: "model returned no candidates",
		}}
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return models.ExtractionResult{Text: sb.String()}
}

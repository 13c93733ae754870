package extract

import (
	"context"
	"fmt"
	"log/slog"

	openrouter "github.com/revrost/go-openrouter"
	"github.com/revrost/go-openrouter/jsonschema"
)

const systemPrompt = "You are a web scraping assistant that extracts event " +
	"information from page content. Respond only with JSON matching the " +
	"requested schema. Only include events clearly happening in the " +
	"requested month and year."

// OpenRouterEngine extracts candidate events through an OpenRouter-hosted
// language model using strict JSON-schema responses.
type OpenRouterEngine struct {
	logger *slog.Logger
	client *openrouter.Client
	model  string
}

// NewOpenRouterEngine creates an engine for the given API token and model.
func NewOpenRouterEngine(logger *slog.Logger, apiToken, model string) *OpenRouterEngine {
	return &OpenRouterEngine{
		logger: logger,
		client: openrouter.NewClient(apiToken),
		model:  model,
	}
}

// Extract asks the model for candidate events found in content and returns
// the raw structured response.
func (e *OpenRouterEngine) Extract(ctx context.Context, content string, q Query) (string, error) {
	schema, err := jsonschema.GenerateSchemaForType(payload{})
	if err != nil {
		return "", fmt.Errorf("generating response schema: %w", err)
	}

	userMessage := fmt.Sprintf(
		"Extract event information for %s in %s from the following page "+
			"content. Look for event names, dates, descriptions, venues, and "+
			"categories.\n\nContent:\n%s",
		q.Location, q.Window, content,
	)

	resp, err := e.client.CreateChatCompletion(ctx, openrouter.ChatCompletionRequest{
		Model: e.model,
		Messages: []openrouter.ChatCompletionMessage{
			openrouter.SystemMessage(systemPrompt),
			openrouter.UserMessage(userMessage),
		},
		ResponseFormat: &openrouter.ChatCompletionResponseFormat{
			Type: "json_schema",
			JSONSchema: &openrouter.ChatCompletionResponseFormatJSONSchema{
				Name:   "eventExtraction",
				Strict: true,
				Schema: schema,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty model response")
	}

	text := resp.Choices[0].Message.Content.Text
	e.logger.Debug("extraction response received",
		slog.String("model", e.model),
		slog.Int("length", len(text)),
	)

	return text, nil
}

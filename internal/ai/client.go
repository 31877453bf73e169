// Package ai wraps the generative text service used for feedback analysis,
// file summaries and the project assistant.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// ErrNotConfigured is returned when no API key was provided.
var ErrNotConfigured = errors.New("ai: not configured")

// ErrEmptyResponse is returned when the model produced no text.
var ErrEmptyResponse = errors.New("ai: empty response")

// Generator is a request/response text generation service.
type Generator interface {
	// GenerateText returns the model's plain text answer to prompt.
	GenerateText(ctx context.Context, prompt string) (string, error)
	// GenerateJSON asks for output matching schema and decodes it into out.
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema, out any) error
}

// GenAIClient is the Gemini implementation of Generator.
type GenAIClient struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewGenAIClient creates a Gemini client. An empty apiKey yields
// ErrNotConfigured so callers can run without AI features.
func NewGenAIClient(ctx context.Context, apiKey, model string, temperature float32) (*GenAIClient, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("ai: create genai client: %w", err)
	}
	return &GenAIClient{client: client, model: model, temperature: temperature}, nil
}

// GenerateText sends prompt with the default generation settings.
func (c *GenAIClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("ai: generate content: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// GenerateJSON requests an application/json response constrained by schema.
func (c *GenAIClient) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema, out any) error {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
		Temperature:      genai.Ptr(c.temperature),
	})
	if err != nil {
		return fmt.Errorf("ai: generate content: %w", err)
	}
	return DecodeJSON(resp.Text(), out)
}

// DecodeJSON parses a model response, tolerating a surrounding ```json fence.
func DecodeJSON(text string, out any) error {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyResponse
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("ai: decode response: %w", err)
	}
	return nil
}

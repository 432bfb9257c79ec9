package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiCompletionClient implements TextCompletionClient using Google's Gemini models
type GeminiCompletionClient struct {
	client      *genai.Client
	model       string
	temperature float32
}

func NewGeminiCompletionClient(ctx context.Context, apiKey, model string, temperature float32) (*GeminiCompletionClient, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiCompletionClient{
		client:      client,
		model:       model,
		temperature: temperature,
	}, nil
}

func (c *GeminiCompletionClient) CompleteText(ctx context.Context, prompt string) (string, error) {
	m := c.client.GenerativeModel(c.model)
	m.SetTemperature(c.temperature)

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrModelEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	content := strings.TrimSpace(sb.String())
	if content == "" {
		return "", ErrModelEmptyResponse
	}
	return content, nil
}

func (c *GeminiCompletionClient) Close() error {
	return c.client.Close()
}

// Package gemini holds the pieces shared by every Gemini-backed component:
// client construction and decoding of the model's JSON replies.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

var ErrEmptyResponse = errors.New("empty response from model")

func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	cfg := &genai.ClientConfig{Backend: genai.BackendGeminiAPI}
	if apiKey != "" {
		cfg.APIKey = apiKey
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return client, nil
}

// CleanJSON strips the markdown fences models sometimes wrap around JSON.
func CleanJSON(raw string) string {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}

func DecodeJSON(raw string, v interface{}) error {
	clean := CleanJSON(raw)
	if clean == "" {
		return ErrEmptyResponse
	}
	if err := json.Unmarshal([]byte(clean), v); err != nil {
		return fmt.Errorf("failed to decode model JSON: %w", err)
	}
	return nil
}

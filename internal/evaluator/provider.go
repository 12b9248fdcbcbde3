package evaluator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/saulo-duarte/chronos-quiz/internal/config"
	"github.com/saulo-duarte/chronos-quiz/internal/gemini"
	"google.golang.org/genai"
)

var ErrComparerUnavailable = errors.New("semantic comparison service is not configured")

type Comparer interface {
	Compare(ctx context.Context, req ComparisonRequest) (*ComparisonResult, error)
}

var comparisonSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"description": {Type: genai.TypeString, Description: "Description of comparison"},
		"score":       {Type: genai.TypeInteger, Description: "Score of comparison"},
	},
	Required:         []string{"description", "score"},
	PropertyOrdering: []string{"description", "score"},
}

type geminiComparer struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

func NewGeminiComparer(client *genai.Client, model string, timeout time.Duration) Comparer {
	return &geminiComparer{client: client, model: model, timeout: timeout}
}

func (c *geminiComparer) Compare(ctx context.Context, req ComparisonRequest) (*ComparisonResult, error) {
	log := config.WithContext(ctx)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	result, err := c.client.Models.GenerateContent(
		ctx,
		c.model,
		genai.Text(BuildComparisonPrompt(req)),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(ComparisonPolicy, genai.RoleUser),
			ResponseMIMEType:  "application/json",
			ResponseSchema:    comparisonSchema,
			Temperature:       genai.Ptr[float32](0),
		},
	)
	if err != nil {
		log.WithError(err).Error("Gemini comparison request failed")
		return nil, fmt.Errorf("comparison request failed: %w", err)
	}

	raw := result.Text()
	log.Debugf("Raw comparison response: %s", raw)

	var out ComparisonResult
	if err := gemini.DecodeJSON(raw, &out); err != nil {
		log.WithError(err).Errorf("Failed to decode comparison response: %s", raw)
		return nil, err
	}
	return &out, nil
}

type unavailableComparer struct {
	cause error
}

// NewUnavailableComparer stands in when no Gemini client could be built, so a
// multiple-choice only quiz still runs.
func NewUnavailableComparer(cause error) Comparer {
	return &unavailableComparer{cause: cause}
}

func (c *unavailableComparer) Compare(context.Context, ComparisonRequest) (*ComparisonResult, error) {
	if c.cause != nil {
		return nil, fmt.Errorf("%w: %v", ErrComparerUnavailable, c.cause)
	}
	return nil, ErrComparerUnavailable
}

package aiquiz

import (
	"context"
	"fmt"
	"time"

	"github.com/saulo-duarte/chronos-quiz/internal/config"
	"github.com/saulo-duarte/chronos-quiz/internal/gemini"
	"github.com/saulo-duarte/chronos-quiz/internal/quiz"
	"google.golang.org/genai"
)

type Provider interface {
	Generate(ctx context.Context, req GenerationRequest) (*quiz.Quiz, error)
}

var (
	openQuestionSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"question_text":  {Type: genai.TypeString},
			"correct_answer": {Type: genai.TypeString},
		},
		Required:         []string{"question_text", "correct_answer"},
		PropertyOrdering: []string{"question_text", "correct_answer"},
	}

	choiceQuestionSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"question_text": {Type: genai.TypeString},
			"choices": {
				Type:     genai.TypeArray,
				Items:    &genai.Schema{Type: genai.TypeString},
				MinItems: genai.Ptr[int64](quiz.ChoiceCount),
				MaxItems: genai.Ptr[int64](quiz.ChoiceCount),
			},
			"correct_answer": {Type: genai.TypeString},
		},
		Required:         []string{"question_text", "choices", "correct_answer"},
		PropertyOrdering: []string{"question_text", "choices", "correct_answer"},
	}

	quizSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"classic_questions":         {Type: genai.TypeArray, Items: openQuestionSchema},
			"multiple_choice_questions": {Type: genai.TypeArray, Items: choiceQuestionSchema},
			"fill_in_the_blank":         {Type: genai.TypeArray, Items: openQuestionSchema},
		},
		Required:         []string{"classic_questions", "multiple_choice_questions", "fill_in_the_blank"},
		PropertyOrdering: []string{"classic_questions", "multiple_choice_questions", "fill_in_the_blank"},
	}
)

type geminiProvider struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

func NewGeminiProvider(client *genai.Client, model string, timeout time.Duration) Provider {
	return &geminiProvider{client: client, model: model, timeout: timeout}
}

func (p *geminiProvider) Generate(ctx context.Context, req GenerationRequest) (*quiz.Quiz, error) {
	log := config.WithContext(ctx)

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	result, err := p.client.Models.GenerateContent(
		ctx,
		p.model,
		[]*genai.Content{genai.NewContentFromParts(buildParts(req), genai.RoleUser)},
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(req.System, genai.RoleUser),
			ResponseMIMEType:  "application/json",
			ResponseSchema:    quizSchema,
		},
	)
	if err != nil {
		log.WithError(err).Error("Gemini generation request failed")
		return nil, fmt.Errorf("generation request failed: %w", err)
	}

	raw := result.Text()
	log.Debugf("Raw generation response: %s", raw)

	var q quiz.Quiz
	if err := gemini.DecodeJSON(raw, &q); err != nil {
		log.WithError(err).Error("Failed to decode generated quiz")
		return nil, err
	}

	log.Infof("Model returned %d questions", q.Count())
	return &q, nil
}

func buildParts(req GenerationRequest) []*genai.Part {
	parts := make([]*genai.Part, 0, len(req.Sources)+1)
	for _, doc := range req.Sources {
		if doc.IsText() {
			parts = append(parts, genai.NewPartFromText(fmt.Sprintf("Document %s:\n%s", doc.Name, doc.Data)))
			continue
		}
		parts = append(parts, genai.NewPartFromBytes(doc.Data, doc.MIMEType))
	}
	return append(parts, genai.NewPartFromText(BuildUserPrompt(req.Count, req.Corrections)))
}

type unavailableProvider struct {
	cause error
}

func NewUnavailableProvider(cause error) Provider {
	return &unavailableProvider{cause: cause}
}

func (p *unavailableProvider) Generate(context.Context, GenerationRequest) (*quiz.Quiz, error) {
	return nil, fmt.Errorf("generation service is not configured: %w", p.cause)
}

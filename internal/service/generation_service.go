package service

import (
	"context"
	"encoding/json"
	"fmt"
	"school_records_backend/internal/config"
	"school_records_backend/internal/model"
	"school_records_backend/internal/util"
	"school_records_backend/pkg/logger"
	"school_records_backend/pkg/monitoring"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// MaxMaterialChars caps the source material sent per generation request
// to respect the service's input-size limits.
const MaxMaterialChars = 30000

// GenerationRequest carries the authoring parameters for one attempt.
type GenerationRequest struct {
	Material     string               `json:"material"`
	DesiredCount int                  `json:"desiredCount"`
	Types        []model.QuestionKind `json:"types"`
	Difficulty   model.Difficulty     `json:"difficulty"`
	Subject      string               `json:"subject"`
	Level        string               `json:"level"`
}

// GenerationParseError means the service answered but its output could
// not be turned into a valid question list. Raw keeps the original
// response for diagnostics; the attempt is not retried automatically
// since malformed output usually repeats.
type GenerationParseError struct {
	Raw string
	Err error
}

func (e *GenerationParseError) Error() string {
	return fmt.Sprintf("generation response could not be parsed: %v", e.Err)
}

func (e *GenerationParseError) Unwrap() error { return e.Err }

// GenerationServiceError wraps transport or API failures, including
// timeouts, from the generation service itself.
type GenerationServiceError struct {
	Err error
}

func (e *GenerationServiceError) Error() string {
	return fmt.Sprintf("generation service failed: %v", e.Err)
}

func (e *GenerationServiceError) Unwrap() error { return e.Err }

// GenerationService turns raw source material into a validated question
// list via an OpenAI-compatible chat-completion endpoint. The response
// is treated as untrusted text: fences are stripped, JSON shape is
// enforced, and every element passes the same validators used for
// manual entry.
type GenerationService struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

func NewGenerationService(cfg config.AIConfig) *GenerationService {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &GenerationService{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		timeout: cfg.RequestTimeout,
	}
}

// generatedQuestion is the untyped intermediate shape expected from the
// service, one element per question, without identifier or ordinal.
type generatedQuestion struct {
	Type          model.QuestionKind `json:"type"`
	Prompt        string             `json:"prompt"`
	Points        *int               `json:"points"`
	Difficulty    model.Difficulty   `json:"difficulty"`
	Options       []model.Option     `json:"options"`
	CorrectAnswer *bool              `json:"correctAnswer"`
	SampleAnswer  string             `json:"sampleAnswer"`
}

var defaultPointsByKind = map[model.QuestionKind]int{
	model.Essay:          10,
	model.Identification: 3,
	model.MultipleChoice: 2,
	model.TrueFalse:      2,
}

// GenerateQuestions issues one blocking generation call. The call is
// bounded by the configured timeout on top of the caller's context; a
// timeout surfaces as a GenerationServiceError.
func (s *GenerationService) GenerateQuestions(ctx context.Context, req GenerationRequest) ([]model.Question, error) {
	material := strings.TrimSpace(req.Material)
	if material == "" {
		return nil, util.ErrNoSourceMaterial
	}
	if runes := []rune(material); len(runes) > MaxMaterialChars {
		material = string(runes[:MaxMaterialChars])
	}

	if req.DesiredCount <= 0 {
		req.DesiredCount = 10
	}
	if len(req.Types) == 0 {
		req.Types = []model.QuestionKind{model.MultipleChoice, model.TrueFalse, model.Identification, model.Essay}
	}
	if req.Difficulty == "" {
		req.Difficulty = model.DifficultyMedium
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemInstructions,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(req, material),
			},
		},
	})
	if err != nil {
		monitoring.GenerationRequests.WithLabelValues("service_error").Inc()
		return nil, &GenerationServiceError{Err: err}
	}
	if len(resp.Choices) == 0 {
		monitoring.GenerationRequests.WithLabelValues("service_error").Inc()
		return nil, &GenerationServiceError{Err: fmt.Errorf("service returned no choices")}
	}

	raw := resp.Choices[0].Message.Content

	questions, err := s.parseQuestions(raw, req)
	if err != nil {
		monitoring.GenerationRequests.WithLabelValues("parse_error").Inc()
		logger.Log.Warn("generation response rejected",
			zap.Error(err),
			zap.Int("responseChars", len(raw)))
		return nil, err
	}

	monitoring.GenerationRequests.WithLabelValues("ok").Inc()
	logger.Log.Info("questions generated",
		zap.Int("requested", req.DesiredCount),
		zap.Int("returned", len(questions)),
		zap.String("subject", req.Subject))
	return questions, nil
}

// parseQuestions maps untrusted response text into validated questions.
// Identifiers and ordinals are assigned here; point values default by
// kind when the service omits them, but shape violations reject the
// whole batch rather than yielding a partial list.
func (s *GenerationService) parseQuestions(raw string, req GenerationRequest) ([]model.Question, error) {
	cleaned := stripCodeFence(raw)

	var elements []generatedQuestion
	if err := json.Unmarshal([]byte(cleaned), &elements); err != nil {
		return nil, &GenerationParseError{Raw: raw, Err: err}
	}

	questions := make([]model.Question, 0, len(elements))
	for i, el := range elements {
		points := defaultPointsByKind[el.Type]
		if el.Points != nil && *el.Points >= 1 {
			points = *el.Points
		}
		difficulty := el.Difficulty
		if difficulty == "" {
			difficulty = req.Difficulty
		}

		q := model.Question{
			Type:          el.Type,
			Prompt:        el.Prompt,
			Points:        points,
			Difficulty:    difficulty,
			Position:      i + 1,
			Options:       el.Options,
			CorrectAnswer: el.CorrectAnswer,
			SampleAnswer:  el.SampleAnswer,
		}
		q.ID = model.GenerateUUID()
		for j := range q.Options {
			if q.Options[j].ID == "" {
				q.Options[j].ID = model.GenerateUUID()
			}
		}

		if ferr := q.Validate(); ferr != nil {
			return nil, &GenerationParseError{
				Raw: raw,
				Err: fmt.Errorf("element %d rejected: %s", i, ferr.Error()),
			}
		}
		questions = append(questions, q)
	}

	return questions, nil
}

const systemInstructions = "You are a question writer for an institutional assessment platform. " +
	"You respond with a single JSON array and nothing else: no prose, no markdown, no code fences."

func buildPrompt(req GenerationRequest, material string) string {
	kinds := make([]string, len(req.Types))
	for i, t := range req.Types {
		kinds[i] = string(t)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Write exactly %d %s-difficulty questions for the subject %q", req.DesiredCount, req.Difficulty, req.Subject)
	if req.Level != "" {
		fmt.Fprintf(&b, " at level %q", req.Level)
	}
	fmt.Fprintf(&b, ", based only on the source material below.\n\n")
	fmt.Fprintf(&b, "Allowed question types: %s.\n\n", strings.Join(kinds, ", "))
	b.WriteString("Return ONLY a JSON array. Each element must have:\n" +
		`- "type": one of the allowed types` + "\n" +
		`- "prompt": the question text` + "\n" +
		`- "points": integer point value` + "\n" +
		`- "difficulty": "easy", "medium" or "hard"` + "\n" +
		`- for multiple_choice: "options", an array of {"text", "isCorrect"} with exactly one isCorrect=true` + "\n" +
		`- for true_false: "correctAnswer", a boolean` + "\n" +
		`- for identification or essay: optionally "sampleAnswer", a short model answer` + "\n\n")
	b.WriteString("Source material:\n")
	b.WriteString(material)
	return b.String()
}

// stripCodeFence defensively unwraps responses the service wrapped in a
// markdown fence despite instructions.
func stripCodeFence(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	if i := strings.IndexByte(t, '\n'); i >= 0 {
		t = t[i+1:]
	} else {
		return strings.TrimSpace(strings.TrimPrefix(t, "```"))
	}
	if j := strings.LastIndex(t, "```"); j >= 0 {
		t = t[:j]
	}
	return strings.TrimSpace(t)
}

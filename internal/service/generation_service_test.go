package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"school_records_backend/internal/config"
	"school_records_backend/internal/model"
	"school_records_backend/internal/util"
)

// fakeCompletionServer answers every chat-completion call with the
// given assistant message content.
func fakeCompletionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": time.Now().Unix(),
			"model":   "test-model",
			"choices": []map[string]interface{}{
				{
					"index": 0,
					"message": map[string]interface{}{
						"role":    "assistant",
						"content": content,
					},
					"finish_reason": "stop",
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func newTestGenerationService(baseURL string) *GenerationService {
	return NewGenerationService(config.AIConfig{
		BaseURL:        baseURL + "/v1",
		APIKey:         "test-key",
		Model:          "test-model",
		RequestTimeout: 5 * time.Second,
	})
}

const wellFormedBatch = `[
  {"type": "multiple_choice", "prompt": "Which gas do plants absorb?", "points": 2, "difficulty": "easy",
   "options": [{"text": "Carbon dioxide", "isCorrect": true}, {"text": "Oxygen", "isCorrect": false}]},
  {"type": "true_false", "prompt": "The mitochondria is the powerhouse of the cell.", "correctAnswer": true},
  {"type": "identification", "prompt": "Name the process by which plants make food."},
  {"type": "essay", "prompt": "Explain photosynthesis in your own words.", "difficulty": "hard"}
]`

func TestGenerateQuestionsParsesWellFormedBatch(t *testing.T) {
	srv := fakeCompletionServer(t, wellFormedBatch)
	defer srv.Close()

	svc := newTestGenerationService(srv.URL)
	qs, err := svc.GenerateQuestions(context.Background(), GenerationRequest{
		Material:   "Photosynthesis converts light energy into chemical energy.",
		Difficulty: model.DifficultyMedium,
		Subject:    "Biology",
	})
	require.NoError(t, err)
	require.Len(t, qs, 4)

	// Identifiers and ordinals are assigned during parsing.
	for i, q := range qs {
		assert.NotEmpty(t, q.ID)
		assert.Equal(t, i+1, q.Position)
	}

	// Point defaults by kind when the service omits them.
	assert.Equal(t, 2, qs[0].Points)
	assert.Equal(t, 2, qs[1].Points)
	assert.Equal(t, 3, qs[2].Points)
	assert.Equal(t, 10, qs[3].Points)

	// Missing difficulty falls back to the requested one; explicit
	// values are kept.
	assert.Equal(t, model.DifficultyEasy, qs[0].Difficulty)
	assert.Equal(t, model.DifficultyMedium, qs[1].Difficulty)
	assert.Equal(t, model.DifficultyHard, qs[3].Difficulty)

	// Option identifiers are filled in when absent.
	for _, opt := range qs[0].Options {
		assert.NotEmpty(t, opt.ID)
	}
}

func TestGenerateQuestionsStripsCodeFence(t *testing.T) {
	srv := fakeCompletionServer(t, "```json\n"+wellFormedBatch+"\n```")
	defer srv.Close()

	svc := newTestGenerationService(srv.URL)
	qs, err := svc.GenerateQuestions(context.Background(), GenerationRequest{
		Material: "Photosynthesis converts light energy into chemical energy.",
	})
	require.NoError(t, err)
	assert.Len(t, qs, 4)
}

func TestGenerateQuestionsRejectsProse(t *testing.T) {
	prose := "Sure! Here are some great questions for your class."
	srv := fakeCompletionServer(t, prose)
	defer srv.Close()

	svc := newTestGenerationService(srv.URL)
	_, err := svc.GenerateQuestions(context.Background(), GenerationRequest{
		Material: "Some source material.",
	})
	require.Error(t, err)

	var parseErr *GenerationParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, prose, parseErr.Raw)
}

func TestGenerateQuestionsRejectsWholeBatchOnOneBadElement(t *testing.T) {
	// The second element has no correct option marked.
	batch := `[
	  {"type": "true_false", "prompt": "Valid question.", "correctAnswer": false},
	  {"type": "multiple_choice", "prompt": "Broken question.",
	   "options": [{"text": "A", "isCorrect": false}, {"text": "B", "isCorrect": false}]}
	]`
	srv := fakeCompletionServer(t, batch)
	defer srv.Close()

	svc := newTestGenerationService(srv.URL)
	_, err := svc.GenerateQuestions(context.Background(), GenerationRequest{
		Material: "Some source material.",
	})
	require.Error(t, err)

	var parseErr *GenerationParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, batch, parseErr.Raw)
	assert.Contains(t, parseErr.Err.Error(), "element 1")
}

func TestGenerateQuestionsRequiresMaterial(t *testing.T) {
	// No server: the empty-material check fires before any network call.
	svc := newTestGenerationService("http://127.0.0.1:1")
	_, err := svc.GenerateQuestions(context.Background(), GenerationRequest{Material: "   "})
	assert.ErrorIs(t, err, util.ErrNoSourceMaterial)
}

func TestGenerateQuestionsWrapsTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	svc := newTestGenerationService(srv.URL)
	_, err := svc.GenerateQuestions(context.Background(), GenerationRequest{
		Material: "Some source material.",
	})
	require.Error(t, err)

	var svcErr *GenerationServiceError
	assert.True(t, errors.As(err, &svcErr))
}

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"NoFence", `[1,2]`, `[1,2]`},
		{"JSONFence", "```json\n[1,2]\n```", "[1,2]"},
		{"BareFence", "```\n[1,2]\n```", "[1,2]"},
		{"MissingClose", "```json\n[1,2]", "[1,2]"},
		{"SurroundingWhitespace", "  \n```json\n[1,2]\n```\n  ", "[1,2]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stripCodeFence(tc.in))
		})
	}
}

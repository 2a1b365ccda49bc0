package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepify/backend/internal/domain/interview"
	"github.com/prepify/backend/internal/extract"
)

// fakeClient records the last call and returns a canned reply.
type fakeClient struct {
	reply string
	err   error

	lastPrompt  string
	maxTokens   int
	temperature float64
}

func (f *fakeClient) Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	f.lastPrompt = prompt
	f.maxTokens = maxTokens
	f.temperature = temperature
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() interview.SessionConfig {
	return interview.SessionConfig{
		Topics:        []string{"Algorithms"},
		QuestionType:  interview.QuestionTheory,
		QuestionCount: 2,
	}.Normalized()
}

func TestGenerateQuestions_ParsesProseWrappedReply(t *testing.T) {
	client := &fakeClient{reply: `Sure, here are your questions:
[
  {"id": 1, "question": "What is Big-O?", "type": "theory", "topic": "Algorithms", "difficulty": "easy"},
  {"id": 2, "question": "Explain quicksort.", "type": "theory", "topic": "Algorithms", "difficulty": "medium"}
]
Good luck with your interview!`}
	svc := NewInterviewService(client, testLogger())

	questions, err := svc.GenerateQuestions(context.Background(), testConfig())
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "What is Big-O?", questions[0].Text)

	assert.Equal(t, generateMaxTokens, client.maxTokens)
	assert.Equal(t, generateTemperature, client.temperature)
	assert.Contains(t, client.lastPrompt, "Algorithms")
}

func TestGenerateQuestions_DropsMalformedElements(t *testing.T) {
	client := &fakeClient{reply: `[
		{"id": 1, "question": "ok", "type": "theory", "topic": "Go", "difficulty": "easy"},
		{"id": 2, "type": "theory", "topic": "Go", "difficulty": "easy"}
	]`}
	svc := NewInterviewService(client, testLogger())

	questions, err := svc.GenerateQuestions(context.Background(), testConfig())
	require.NoError(t, err)
	assert.Len(t, questions, 1)
}

func TestGenerateQuestions_TransportErrorPassedThrough(t *testing.T) {
	wantErr := errors.New("connection refused")
	client := &fakeClient{err: wantErr}
	svc := NewInterviewService(client, testLogger())

	_, err := svc.GenerateQuestions(context.Background(), testConfig())
	require.ErrorIs(t, err, wantErr)
}

func TestGenerateQuestions_UnparseableReply(t *testing.T) {
	client := &fakeClient{reply: "I cannot help with that."}
	svc := NewInterviewService(client, testLogger())

	_, err := svc.GenerateQuestions(context.Background(), testConfig())

	var formatErr *extract.FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "I cannot help with that.", formatErr.Raw)
}

func TestEvaluateAnswer_ParsesEvaluation(t *testing.T) {
	client := &fakeClient{reply: `Here's my evaluation:
{"score": 7, "feedback": "Good grasp of the basics.", "suggestions": "Mention edge cases."}`}
	svc := NewInterviewService(client, testLogger())

	q := interview.Question{ID: 1, Text: "Explain binary search.", Type: interview.QuestionTheory, Topic: "Algorithms", Difficulty: interview.DifficultyEasy}
	eval, err := svc.EvaluateAnswer(context.Background(), q, "It halves the range.")
	require.NoError(t, err)

	assert.Equal(t, interview.Score(7), eval.Score)
	assert.Equal(t, "Good grasp of the basics.", eval.Feedback)

	assert.Equal(t, evaluateMaxTokens, client.maxTokens)
	assert.Equal(t, evaluateTemperature, client.temperature)
	assert.Contains(t, client.lastPrompt, "Explain binary search.")
	assert.Contains(t, client.lastPrompt, "It halves the range.")
}

func TestEvaluateAnswer_MissingFields(t *testing.T) {
	client := &fakeClient{reply: `{"score": 7}`}
	svc := NewInterviewService(client, testLogger())

	q := interview.Question{ID: 1, Text: "q", Type: interview.QuestionTheory, Topic: "Go", Difficulty: interview.DifficultyEasy}
	_, err := svc.EvaluateAnswer(context.Background(), q, "answer")

	var formatErr *extract.FormatError
	require.ErrorAs(t, err, &formatErr)
}

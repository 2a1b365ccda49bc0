// internal/service/interview.go
package service

import (
	"context"
	"log/slog"

	"github.com/prepify/backend/internal/completion"
	"github.com/prepify/backend/internal/domain/interview"
	"github.com/prepify/backend/internal/extract"
	"github.com/prepify/backend/internal/prompt"
)

// Token and temperature budgets per task. Generation needs room for a whole
// question list; evaluation is kept short and deterministic.
const (
	generateMaxTokens   = 1500
	generateTemperature = 0.7
	evaluateMaxTokens   = 1000
	evaluateTemperature = 0.3
)

// InterviewService glues prompt building, the completion call and JSON
// extraction into the two operations the session state machine needs.
type InterviewService struct {
	client completion.Client
	logger *slog.Logger
}

var (
	_ interview.QuestionSource  = (*InterviewService)(nil)
	_ interview.AnswerEvaluator = (*InterviewService)(nil)
)

// NewInterviewService creates an InterviewService.
func NewInterviewService(client completion.Client, logger *slog.Logger) *InterviewService {
	return &InterviewService{
		client: client,
		logger: logger,
	}
}

// GenerateQuestions asks the model for a question list matching the config.
// The model may return fewer questions than requested; malformed elements are
// dropped and logged rather than failing the batch.
func (s *InterviewService) GenerateQuestions(ctx context.Context, cfg interview.SessionConfig) ([]interview.Question, error) {
	raw, err := s.client.Complete(ctx, prompt.Generation(cfg), generateMaxTokens, generateTemperature)
	if err != nil {
		return nil, err
	}

	questions, dropped, err := extract.Questions(raw)
	if err != nil {
		return nil, err
	}
	if dropped > 0 {
		s.logger.Warn("dropped malformed questions from model output",
			"dropped", dropped,
			"kept", len(questions),
		)
	}
	return questions, nil
}

// EvaluateAnswer asks the model to grade one answer.
func (s *InterviewService) EvaluateAnswer(ctx context.Context, q interview.Question, answer string) (interview.Evaluation, error) {
	raw, err := s.client.Complete(ctx, prompt.Evaluation(q, answer), evaluateMaxTokens, evaluateTemperature)
	if err != nil {
		return interview.Evaluation{}, err
	}
	return extract.Evaluation(raw)
}

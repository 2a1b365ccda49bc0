package interview

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type QuestionType string

const (
	QuestionTheory     QuestionType = "theory"
	QuestionPractical  QuestionType = "practical"
	QuestionBehavioral QuestionType = "behavioral"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"

	// DifficultyMixed is only valid in a SessionConfig, never on a Question.
	DifficultyMixed Difficulty = "mixed"
)

// Question is a single interview question produced by the generation call.
// Immutable once created; owned by the active session.
type Question struct {
	ID         int          `json:"id"`
	Text       string       `json:"question"`
	Type       QuestionType `json:"type"`
	Topic      string       `json:"topic"`
	Difficulty Difficulty   `json:"difficulty"`
}

// Score is an evaluation score out of 10. Models occasionally quote the
// number ("7" instead of 7), so unmarshalling accepts both forms.
type Score float64

func (s *Score) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*s = Score(f)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("score must be a number or numeric string, got %s", data)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return fmt.Errorf("score %q is not numeric", str)
	}
	*s = Score(f)
	return nil
}

// Evaluation is the graded result for one answer, produced by the evaluation
// call or synthesized locally when a question is skipped. Never mutated.
type Evaluation struct {
	Score       Score  `json:"score"`
	Feedback    string `json:"feedback"`
	Suggestions string `json:"suggestions"`
}

// AnswerSkipped is the sentinel stored in place of a user answer when the
// question was skipped.
const AnswerSkipped = "skipped"

const (
	skippedFeedback    = "Question was skipped"
	skippedSuggestions = "Try answering the question next time"
)

// skippedEvaluation returns the fixed zero-score evaluation recorded for a skip.
func skippedEvaluation() Evaluation {
	return Evaluation{
		Score:       0,
		Feedback:    skippedFeedback,
		Suggestions: skippedSuggestions,
	}
}

// SessionConfig holds the caller's preferences for one session.
// Supplied once at session start; immutable for the session's lifetime.
type SessionConfig struct {
	Topics          []string     `json:"topics"`
	QuestionType    QuestionType `json:"questionType"`
	DifficultyLevel Difficulty   `json:"difficultyLevel"`
	QuestionCount   int          `json:"questionCount"`
}

const (
	MinQuestionCount = 1
	MaxQuestionCount = 100
)

// Normalized clamps the question count into [MinQuestionCount, MaxQuestionCount]
// and fills in defaults, mirroring what the setup screen enforces client-side.
func (c SessionConfig) Normalized() SessionConfig {
	if c.QuestionCount < MinQuestionCount {
		c.QuestionCount = MinQuestionCount
	}
	if c.QuestionCount > MaxQuestionCount {
		c.QuestionCount = MaxQuestionCount
	}
	if c.QuestionType == "" {
		c.QuestionType = QuestionTheory
	}
	if c.DifficultyLevel == "" {
		c.DifficultyLevel = DifficultyMixed
	}
	return c
}

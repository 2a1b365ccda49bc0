package interview

import (
	"context"
	"strings"
	"time"
)

// State identifies where a session currently is in its lifecycle.
type State int

const (
	StateIdle State = iota
	StateAwaitingQuestions
	StateActive
	StateAwaitingEvaluation
	StateReviewing
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingQuestions:
		return "awaiting_questions"
	case StateActive:
		return "active"
	case StateAwaitingEvaluation:
		return "awaiting_evaluation"
	case StateReviewing:
		return "reviewing"
	case StateFinished:
		return "finished"
	}
	return "unknown"
}

// QuestionSource produces the ordered question list for a new session.
type QuestionSource interface {
	GenerateQuestions(ctx context.Context, cfg SessionConfig) ([]Question, error)
}

// AnswerEvaluator grades a single free-text answer.
type AnswerEvaluator interface {
	EvaluateAnswer(ctx context.Context, q Question, answer string) (Evaluation, error)
}

// Controller is the session state machine. It sequences
// idle → awaiting_questions → active(i) → awaiting_evaluation(i) →
// reviewing(i) → active(i+1) → … → finished, and holds the per-question
// answer/evaluation/time records.
//
// A Controller is used by exactly one caller at a time; concurrent calls on
// the same instance must be serialized externally. While a generation or
// evaluation call is in flight, other transitions fail with ErrBusy.
//
// Invariant: for every index below the current one the answer, evaluation and
// elapsed time are recorded (answered or skipped); everything at or above the
// current index is unset, except the current question's answer while its
// evaluation is pending or being reviewed.
type Controller struct {
	source    QuestionSource
	evaluator AnswerEvaluator
	now       func() time.Time // swapped in tests

	state         State
	config        SessionConfig
	questions     []Question
	answers       []string
	evaluations   []*Evaluation
	questionTimes []time.Duration
	current       int
	startedAt     time.Time
	shownAt       time.Time
}

// NewController creates an idle session controller.
func NewController(source QuestionSource, evaluator AnswerEvaluator) *Controller {
	return &Controller{
		source:    source,
		evaluator: evaluator,
		now:       time.Now,
		state:     StateIdle,
	}
}

// Start begins a new session: it validates the config, requests questions,
// and moves to the first question. Valid only from idle or finished.
// The generated list may legitimately be shorter than the requested count;
// an empty list finishes the session immediately.
func (c *Controller) Start(ctx context.Context, cfg SessionConfig) error {
	if err := c.guard("start", StateIdle, StateFinished); err != nil {
		return err
	}
	if len(cfg.Topics) == 0 {
		return &ValidationError{Field: "topics", Reason: "at least one topic is required"}
	}

	c.reset()
	c.config = cfg.Normalized()
	c.state = StateAwaitingQuestions

	questions, err := c.source.GenerateQuestions(ctx, c.config)
	if err != nil {
		c.state = StateIdle
		return &GenerationError{Err: err}
	}

	c.questions = questions
	c.answers = make([]string, len(questions))
	c.evaluations = make([]*Evaluation, len(questions))
	c.questionTimes = make([]time.Duration, len(questions))
	c.startedAt = c.now()

	if len(questions) == 0 {
		c.state = StateFinished
		return nil
	}

	c.shownAt = c.now()
	c.state = StateActive
	return nil
}

// SubmitAnswer records the answer and elapsed time for the current question,
// requests an evaluation, and moves to reviewing. Valid only while active.
//
// On evaluation failure the session returns to active with the answer and
// elapsed time still recorded; resubmitting retries the evaluation and
// re-records the elapsed time from when the question was first shown. The
// second measurement therefore includes the failed attempt. Known quirk,
// kept as-is.
func (c *Controller) SubmitAnswer(ctx context.Context, text string) (Evaluation, error) {
	if err := c.guard("submit an answer", StateActive); err != nil {
		return Evaluation{}, err
	}

	answer := strings.TrimSpace(text)
	if answer == "" {
		return Evaluation{}, &ValidationError{Field: "answer", Reason: "answer must not be empty"}
	}

	c.answers[c.current] = answer
	c.questionTimes[c.current] = c.now().Sub(c.shownAt)
	c.state = StateAwaitingEvaluation

	eval, err := c.evaluator.EvaluateAnswer(ctx, c.questions[c.current], answer)
	if err != nil {
		c.state = StateActive
		return Evaluation{}, &EvaluationError{Err: err}
	}

	stored := eval
	c.evaluations[c.current] = &stored
	c.state = StateReviewing
	return eval, nil
}

// Skip records the skipped sentinel, a fixed zero-score evaluation and an
// elapsed time of zero, then advances directly to the next question (or
// finishes). It never passes through the reviewing state.
func (c *Controller) Skip() error {
	if err := c.guard("skip", StateActive); err != nil {
		return err
	}

	eval := skippedEvaluation()
	c.answers[c.current] = AnswerSkipped
	c.evaluations[c.current] = &eval
	c.questionTimes[c.current] = 0
	c.advance()
	return nil
}

// ContinueReview returns from reviewing to the current question without
// altering the stored answer, evaluation or elapsed time, so the caller can
// revisit the question text while keeping the already-graded answer.
func (c *Controller) ContinueReview() error {
	if err := c.guard("continue reviewing", StateReviewing); err != nil {
		return err
	}
	c.state = StateActive
	return nil
}

// Advance moves from reviewing to the next question, or finishes the session
// if the current question was the last one.
func (c *Controller) Advance() error {
	if err := c.guard("advance", StateReviewing); err != nil {
		return err
	}
	c.advance()
	return nil
}

// Restart clears all session data and returns to idle. Valid from any state.
func (c *Controller) Restart() {
	c.reset()
}

func (c *Controller) advance() {
	c.current++
	if c.current >= len(c.questions) {
		c.state = StateFinished
		return
	}
	c.shownAt = c.now()
	c.state = StateActive
}

func (c *Controller) reset() {
	c.state = StateIdle
	c.config = SessionConfig{}
	c.questions = nil
	c.answers = nil
	c.evaluations = nil
	c.questionTimes = nil
	c.current = 0
	c.startedAt = time.Time{}
	c.shownAt = time.Time{}
}

// guard rejects transitions while an upstream call is in flight and verifies
// the current state is one of the allowed ones.
func (c *Controller) guard(op string, allowed ...State) error {
	if c.state == StateAwaitingQuestions || c.state == StateAwaitingEvaluation {
		return ErrBusy
	}
	for _, s := range allowed {
		if c.state == s {
			return nil
		}
	}
	return &TransitionError{Op: op, State: c.state}
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// Config returns the config the session was started with.
func (c *Controller) Config() SessionConfig {
	return c.config
}

// Questions returns the session's ordered question list.
func (c *Controller) Questions() []Question {
	return c.questions
}

// CurrentIndex returns the zero-based index of the current question, which
// always equals the number of fully answered-or-skipped questions.
func (c *Controller) CurrentIndex() int {
	return c.current
}

// CurrentQuestion returns the question at the current index. It fails when
// the session holds no current question (idle or finished).
func (c *Controller) CurrentQuestion() (Question, error) {
	switch c.state {
	case StateActive, StateAwaitingEvaluation, StateReviewing:
		return c.questions[c.current], nil
	}
	return Question{}, &TransitionError{Op: "read the current question", State: c.state}
}

// CurrentEvaluation returns the stored evaluation for the question under
// review.
func (c *Controller) CurrentEvaluation() (Evaluation, error) {
	if c.state != StateReviewing {
		return Evaluation{}, &TransitionError{Op: "read the evaluation", State: c.state}
	}
	return *c.evaluations[c.current], nil
}

// CurrentAnswer returns the stored answer for the question under review.
func (c *Controller) CurrentAnswer() (string, error) {
	if c.state != StateReviewing {
		return "", &TransitionError{Op: "read the answer", State: c.state}
	}
	return c.answers[c.current], nil
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/prepify/backend/internal/domain/interview"
)

// ── Request / Response types ────────────────────────────────────────────────

type StartSessionRequest struct {
	Topics          []string `json:"topics"`
	QuestionType    string   `json:"questionType"`
	DifficultyLevel string   `json:"difficultyLevel"`
	QuestionCount   int      `json:"questionCount"`
}

type SubmitAnswerRequest struct {
	Answer string `json:"answer"`
}

// SessionStateResponse is the client's view of a session after any
// transition: where it is, and what to render there.
type SessionStateResponse struct {
	Token          string                `json:"token"`
	State          string                `json:"state"`
	TotalQuestions int                   `json:"totalQuestions"`
	CurrentIndex   int                   `json:"currentIndex"`
	Question       *interview.Question   `json:"question,omitempty"`
	Answer         string                `json:"answer,omitempty"`
	Evaluation     *interview.Evaluation `json:"evaluation,omitempty"`
}

type SummaryResponse struct {
	AverageScore       float64                          `json:"averageScore"`
	Answered           string                           `json:"answered"`
	AnsweredCount      int                              `json:"answeredCount"`
	TotalQuestions     int                              `json:"totalQuestions"`
	AverageTimeSeconds float64                          `json:"averageTimeSeconds"`
	AverageTimeDisplay string                           `json:"averageTimeDisplay"`
	TopicAverages      map[string]float64               `json:"topicAverages"`
	DifficultyAverages map[interview.Difficulty]float64 `json:"difficultyAverages"`
	Results            []interview.QuestionResult       `json:"results"`
}

// sessionState builds the state view for a controller under its store lock.
func sessionState(token string, c *interview.Controller) SessionStateResponse {
	resp := SessionStateResponse{
		Token:          token,
		State:          c.State().String(),
		TotalQuestions: len(c.Questions()),
		CurrentIndex:   c.CurrentIndex(),
	}

	if q, err := c.CurrentQuestion(); err == nil {
		resp.Question = &q
	}
	if answer, err := c.CurrentAnswer(); err == nil {
		resp.Answer = answer
	}
	if eval, err := c.CurrentEvaluation(); err == nil {
		resp.Evaluation = &eval
	}
	return resp
}

// ── Handlers ────────────────────────────────────────────────────────────────

// createSession creates a session, generates its questions and returns the
// first one. The token identifies the session on every later call.
// @Summary      Start a session
// @Description  Creates an interview session, generates its questions and returns the session with the first question active.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        body  body      StartSessionRequest  true  "Session preferences"
// @Success      201   {object}  SessionStateResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      502   {object}  ErrorResponse  "question generation failed"
// @Router       /api/sessions [post]
func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req StartSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	cfg := interview.SessionConfig{
		Topics:          req.Topics,
		QuestionType:    interview.QuestionType(req.QuestionType),
		DifficultyLevel: interview.Difficulty(req.DifficultyLevel),
		QuestionCount:   req.QuestionCount,
	}

	token := h.sessions.Create()

	var resp SessionStateResponse
	err := h.sessions.With(token, func(c *interview.Controller) error {
		if err := c.Start(r.Context(), cfg); err != nil {
			return err
		}
		resp = sessionState(token, c)
		return nil
	})
	if err != nil {
		// The session never got going; don't leave the empty shell behind.
		_ = h.sessions.Delete(token)
		h.respondError(w, err)
		return
	}

	h.logger.Info("session started",
		"token", token,
		"questions", resp.TotalQuestions,
		"topics", cfg.Topics,
	)
	respondJSON(w, http.StatusCreated, resp)
}

// getSession returns the session's current state.
// @Summary      Get a session
// @Description  Returns the session's current state: the active question, and the stored answer and evaluation while reviewing.
// @Tags         Sessions
// @Produce      json
// @Param        token  path      string  true  "Session token"
// @Success      200    {object}  SessionStateResponse
// @Failure      404    {object}  ErrorResponse
// @Failure      409    {object}  ErrorResponse  "a request is in flight"
// @Router       /api/sessions/{token} [get]
func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(token string, c *interview.Controller) error {
		respondJSON(w, http.StatusOK, sessionState(token, c))
		return nil
	})
}

// submitAnswer records the answer, has it evaluated, and moves the session to
// reviewing. On evaluation failure the session returns to the question and
// the client may resubmit.
// @Summary      Submit an answer
// @Description  Records the answer for the current question, has it evaluated and moves the session to reviewing.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        token  path      string               true  "Session token"
// @Param        body   body      SubmitAnswerRequest  true  "The answer text"
// @Success      200    {object}  SessionStateResponse
// @Failure      400    {object}  ErrorResponse  "empty answer"
// @Failure      404    {object}  ErrorResponse
// @Failure      409    {object}  ErrorResponse  "wrong state or a request is in flight"
// @Failure      502    {object}  ErrorResponse  "evaluation failed"
// @Router       /api/sessions/{token}/answers [post]
func (h *Handler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	var req SubmitAnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	h.withSession(w, r, func(token string, c *interview.Controller) error {
		if _, err := c.SubmitAnswer(r.Context(), req.Answer); err != nil {
			return err
		}
		respondJSON(w, http.StatusOK, sessionState(token, c))
		return nil
	})
}

// skipQuestion skips the current question.
// @Summary      Skip the current question
// @Description  Records the skip sentinel with a zero-score evaluation and advances to the next question, or finishes the session.
// @Tags         Sessions
// @Produce      json
// @Param        token  path      string  true  "Session token"
// @Success      200    {object}  SessionStateResponse
// @Failure      404    {object}  ErrorResponse
// @Failure      409    {object}  ErrorResponse  "wrong state or a request is in flight"
// @Router       /api/sessions/{token}/skip [post]
func (h *Handler) skipQuestion(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(token string, c *interview.Controller) error {
		if err := c.Skip(); err != nil {
			return err
		}
		respondJSON(w, http.StatusOK, sessionState(token, c))
		return nil
	})
}

// reviewQuestion returns from the feedback screen to the question without
// touching the stored answer or grade.
// @Summary      Revisit the current question
// @Description  Returns from reviewing to the question text, keeping the already-graded answer.
// @Tags         Sessions
// @Produce      json
// @Param        token  path      string  true  "Session token"
// @Success      200    {object}  SessionStateResponse
// @Failure      404    {object}  ErrorResponse
// @Failure      409    {object}  ErrorResponse  "wrong state or a request is in flight"
// @Router       /api/sessions/{token}/review [post]
func (h *Handler) reviewQuestion(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(token string, c *interview.Controller) error {
		if err := c.ContinueReview(); err != nil {
			return err
		}
		respondJSON(w, http.StatusOK, sessionState(token, c))
		return nil
	})
}

// nextQuestion advances past the reviewed question.
// @Summary      Advance to the next question
// @Description  Moves from reviewing to the next question, or finishes the session after the last one.
// @Tags         Sessions
// @Produce      json
// @Param        token  path      string  true  "Session token"
// @Success      200    {object}  SessionStateResponse
// @Failure      404    {object}  ErrorResponse
// @Failure      409    {object}  ErrorResponse  "wrong state or a request is in flight"
// @Router       /api/sessions/{token}/next [post]
func (h *Handler) nextQuestion(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(token string, c *interview.Controller) error {
		if err := c.Advance(); err != nil {
			return err
		}
		respondJSON(w, http.StatusOK, sessionState(token, c))
		return nil
	})
}

// getSummary returns the aggregate results of a finished session.
// @Summary      Get the session summary
// @Description  Returns the aggregate results of a finished session: average score, answered count, timing, and per-topic and per-difficulty averages.
// @Tags         Sessions
// @Produce      json
// @Param        token  path      string  true  "Session token"
// @Success      200    {object}  SummaryResponse
// @Failure      404    {object}  ErrorResponse
// @Failure      409    {object}  ErrorResponse  "session not finished"
// @Router       /api/sessions/{token}/summary [get]
func (h *Handler) getSummary(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(token string, c *interview.Controller) error {
		summary, err := c.Summary()
		if err != nil {
			return err
		}
		respondJSON(w, http.StatusOK, SummaryResponse{
			AverageScore:       summary.AverageScore,
			Answered:           summary.Answered(),
			AnsweredCount:      summary.AnsweredCount,
			TotalQuestions:     summary.TotalQuestions,
			AverageTimeSeconds: summary.AverageTime.Seconds(),
			AverageTimeDisplay: interview.FormatClock(summary.AverageTime),
			TopicAverages:      summary.TopicAverages,
			DifficultyAverages: summary.DifficultyAverages,
			Results:            summary.Results,
		})
		return nil
	})
}

// deleteSession discards a session and all its data.
// @Summary      Delete a session
// @Description  Discards the session and all its recorded answers and evaluations.
// @Tags         Sessions
// @Param        token  path  string  true  "Session token"
// @Success      204    "deleted"
// @Failure      404    {object}  ErrorResponse
// @Failure      409    {object}  ErrorResponse  "a request is in flight"
// @Router       /api/sessions/{token} [delete]
func (h *Handler) deleteSession(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if err := h.sessions.Delete(token); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// withSession resolves the token, runs fn under the session's lock, and
// turns any returned error into an HTTP response.
func (h *Handler) withSession(w http.ResponseWriter, r *http.Request, fn func(string, *interview.Controller) error) {
	token := chi.URLParam(r, "token")
	err := h.sessions.With(token, func(c *interview.Controller) error {
		return fn(token, c)
	})
	if err != nil {
		h.respondError(w, err)
	}
}

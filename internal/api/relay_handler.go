package api

import (
	"net/http"

	"github.com/prepify/backend/internal/domain/interview"
)

// ── Request types ───────────────────────────────────────────────────────────

type GenerateQuestionsRequest struct {
	Topics          []string `json:"topics"`
	QuestionType    string   `json:"questionType"`
	DifficultyLevel string   `json:"difficultyLevel"`
	QuestionCount   int      `json:"questionCount"`
}

type EvaluateAnswerRequest struct {
	Question   *interview.Question `json:"question"`
	UserAnswer string              `json:"userAnswer"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// generateQuestions forwards the generation prompt to the completion endpoint
// and returns the extracted question array. The array may be shorter than the
// requested count; that is up to the model.
// @Summary      Generate interview questions
// @Description  Builds a generation prompt from the given preferences, forwards it to the completion endpoint and returns the extracted questions.
// @Tags         Relay
// @Accept       json
// @Produce      json
// @Param        body  body      GenerateQuestionsRequest  true  "Generation preferences"
// @Success      200   {array}   interview.Question
// @Failure      400   {object}  ErrorResponse
// @Failure      502   {object}  ErrorResponse  "upstream failure or unparseable reply"
// @Router       /api/generate-questions [post]
func (h *Handler) generateQuestions(w http.ResponseWriter, r *http.Request) {
	var req GenerateQuestionsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if len(req.Topics) == 0 {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "topics are required"})
		return
	}

	cfg := interview.SessionConfig{
		Topics:          req.Topics,
		QuestionType:    interview.QuestionType(req.QuestionType),
		DifficultyLevel: interview.Difficulty(req.DifficultyLevel),
		QuestionCount:   req.QuestionCount,
	}.Normalized()

	questions, err := h.relay.GenerateQuestions(r.Context(), cfg)
	if err != nil {
		h.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, questions)
}

// evaluateAnswer forwards one question/answer pair for grading and returns
// the extracted evaluation object.
// @Summary      Evaluate an answer
// @Description  Builds an evaluation prompt for the question/answer pair, forwards it to the completion endpoint and returns the extracted evaluation.
// @Tags         Relay
// @Accept       json
// @Produce      json
// @Param        body  body      EvaluateAnswerRequest  true  "Question and the user's answer"
// @Success      200   {object}  interview.Evaluation
// @Failure      400   {object}  ErrorResponse
// @Failure      502   {object}  ErrorResponse  "upstream failure or unparseable reply"
// @Router       /api/evaluate-answer [post]
func (h *Handler) evaluateAnswer(w http.ResponseWriter, r *http.Request) {
	var req EvaluateAnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Question == nil || req.Question.Text == "" {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "question is required"})
		return
	}
	if req.UserAnswer == "" {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "userAnswer is required"})
		return
	}

	evaluation, err := h.relay.EvaluateAnswer(r.Context(), *req.Question, req.UserAnswer)
	if err != nil {
		h.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, evaluation)
}

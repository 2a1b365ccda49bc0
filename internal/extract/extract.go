// Package extract recovers JSON values embedded in free-form model output.
//
// A completion reply is expected to contain exactly one JSON array or object,
// but may be wrapped in prose, markdown fences, or explanations. Extraction
// takes the span from the first opening bracket to the last closing one, a
// deliberately naive match that can mis-extract when the reply contains
// several JSON blocks. Accepted as a known limitation.
package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/prepify/backend/internal/domain/interview"
)

// FormatError reports that the model's reply could not be parsed as the
// expected JSON shape. It carries the raw reply for diagnostics and is never
// silently swallowed into partial data.
type FormatError struct {
	Raw string
	Err error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("response is not the expected JSON: %v", e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// span returns the substring between the first open and the last close byte.
// When no such pair exists the whole string is returned, so parsing falls
// back to the reply as-is.
func span(raw string, open, close byte) string {
	start := strings.IndexByte(raw, open)
	end := strings.LastIndexByte(raw, close)
	if start == -1 || end == -1 || end < start {
		return raw
	}
	return raw[start : end+1]
}

// Array unmarshals the JSON array embedded in raw into v.
func Array(raw string, v any) error {
	if err := json.Unmarshal([]byte(span(raw, '[', ']')), v); err != nil {
		return &FormatError{Raw: raw, Err: err}
	}
	return nil
}

// Object unmarshals the JSON object embedded in raw into v.
func Object(raw string, v any) error {
	if err := json.Unmarshal([]byte(span(raw, '{', '}')), v); err != nil {
		return &FormatError{Raw: raw, Err: err}
	}
	return nil
}

// Questions parses a generation reply into questions. Elements missing the
// required question, topic, or difficulty fields are dropped (the returned
// count tells the caller how many); only a reply that is not a JSON array at
// all fails the whole batch.
func Questions(raw string) ([]interview.Question, int, error) {
	var elements []json.RawMessage
	if err := Array(raw, &elements); err != nil {
		return nil, 0, err
	}

	questions := make([]interview.Question, 0, len(elements))
	dropped := 0
	for _, el := range elements {
		var q interview.Question
		if err := json.Unmarshal(el, &q); err != nil {
			dropped++
			continue
		}
		if q.Text == "" || q.Topic == "" || q.Difficulty == "" {
			dropped++
			continue
		}
		q.Difficulty = interview.Difficulty(strings.ToLower(string(q.Difficulty)))
		if q.ID == 0 {
			q.ID = len(questions) + 1
		}
		questions = append(questions, q)
	}
	return questions, dropped, nil
}

// Evaluation parses an evaluation reply. Score, feedback and suggestions are
// all required; the score may arrive as a number or a numeric string.
func Evaluation(raw string) (interview.Evaluation, error) {
	var parsed struct {
		Score       *interview.Score `json:"score"`
		Feedback    *string          `json:"feedback"`
		Suggestions *string          `json:"suggestions"`
	}
	if err := Object(raw, &parsed); err != nil {
		return interview.Evaluation{}, err
	}
	if parsed.Score == nil || parsed.Feedback == nil || parsed.Suggestions == nil {
		return interview.Evaluation{}, &FormatError{
			Raw: raw,
			Err: fmt.Errorf("evaluation is missing required fields"),
		}
	}
	return interview.Evaluation{
		Score:       *parsed.Score,
		Feedback:    *parsed.Feedback,
		Suggestions: *parsed.Suggestions,
	}, nil
}

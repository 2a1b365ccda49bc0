// Package prompt builds the natural-language instructions sent to the
// completion endpoint. Builders are pure and deterministic given their
// inputs; validation happens at the session boundary, not here.
package prompt

import (
	"fmt"
	"strings"

	"github.com/prepify/backend/internal/domain/interview"
)

// Generation builds the question-generation prompt. It embeds the topic
// list, requested type, count and difficulty, and instructs the model to
// emit a bare JSON array so the extractor has one block to find.
func Generation(cfg interview.SessionConfig) string {
	difficulty := "a mix of easy, medium and hard"
	if cfg.DifficultyLevel != interview.DifficultyMixed {
		difficulty = string(cfg.DifficultyLevel)
	}

	return fmt.Sprintf(`Generate %d %s questions for a student interview preparation on the following topics: %s.

Each question should be challenging but fair for a student preparing for an interview.
The difficulty of the questions should be %s.

Format the response as a JSON array with the following structure:
[
  {
    "id": 1,
    "question": "The question text goes here",
    "type": "%s",
    "topic": "The specific topic this question relates to",
    "difficulty": "A difficulty rating (easy, medium, hard)"
  },
  ...
]

For programming questions, include clear requirements and examples if appropriate.
Don't provide answers in this response.`,
		cfg.QuestionCount,
		cfg.QuestionType,
		strings.Join(cfg.Topics, ", "),
		difficulty,
		cfg.QuestionType,
	)
}

// Evaluation builds the answer-evaluation prompt for one question/answer
// pair, asking for a single JSON object with score, feedback and suggestions.
func Evaluation(q interview.Question, answer string) string {
	return fmt.Sprintf(`Evaluate the following answer for an interview question.

Question: %s
Topic: %s
Type: %s

User's Answer: %s

Provide a comprehensive evaluation with:
1. A score out of 10
2. Detailed feedback explaining strengths and weaknesses
3. Suggestions for improvement

Format the response as a JSON object with the following structure:
{
  "score": <numerical_score>,
  "feedback": "Detailed feedback here",
  "suggestions": "Improvement suggestions here"
}`,
		q.Text,
		q.Topic,
		q.Type,
		answer,
	)
}

package interview

import (
	"fmt"
	"strings"
	"time"
)

// QuestionResult is one row of the results screen: the question, how it was
// scored, and whether it was skipped.
type QuestionResult struct {
	Index      int        `json:"index"`
	Text       string     `json:"question"`
	Topic      string     `json:"topic"`
	Difficulty Difficulty `json:"difficulty"`
	Score      float64    `json:"score"`
	Skipped    bool       `json:"skipped"`
}

// Summary aggregates a finished session for the results screen.
type Summary struct {
	AverageScore       float64                `json:"averageScore"`
	AnsweredCount      int                    `json:"answeredCount"`
	TotalQuestions     int                    `json:"totalQuestions"`
	AverageTime        time.Duration          `json:"-"`
	TotalTime          time.Duration          `json:"-"`
	TopicAverages      map[string]float64     `json:"topicAverages"`
	DifficultyAverages map[Difficulty]float64 `json:"difficultyAverages"`
	Results            []QuestionResult       `json:"results"`
}

// Answered formats the answered count as "answered/total".
func (s Summary) Answered() string {
	return fmt.Sprintf("%d/%d", s.AnsweredCount, s.TotalQuestions)
}

// Summary computes the aggregate results. Valid only once the session has
// finished.
func (c *Controller) Summary() (Summary, error) {
	if c.state != StateFinished {
		return Summary{}, &TransitionError{Op: "compute the summary", State: c.state}
	}

	s := Summary{
		TotalQuestions:     len(c.questions),
		TopicAverages:      map[string]float64{},
		DifficultyAverages: map[Difficulty]float64{},
		Results:            make([]QuestionResult, 0, len(c.questions)),
	}

	var totalScore float64
	topicTotals := map[string]*groupTotal{}
	difficultyTotals := map[Difficulty]*groupTotal{}

	for i, q := range c.questions {
		// An ungraded question should be impossible once finished; score it 0
		// rather than fail the whole summary.
		var score float64
		if ev := c.evaluations[i]; ev != nil {
			score = float64(ev.Score)
		}
		totalScore += score

		skipped := c.answers[i] == AnswerSkipped
		if !skipped {
			s.AnsweredCount++
			s.TotalTime += c.questionTimes[i]
		}

		topic := q.Topic
		if topicTotals[topic] == nil {
			topicTotals[topic] = &groupTotal{}
		}
		topicTotals[topic].add(score)

		difficulty := Difficulty(strings.ToLower(string(q.Difficulty)))
		if difficultyTotals[difficulty] == nil {
			difficultyTotals[difficulty] = &groupTotal{}
		}
		difficultyTotals[difficulty].add(score)

		s.Results = append(s.Results, QuestionResult{
			Index:      i,
			Text:       q.Text,
			Topic:      q.Topic,
			Difficulty: q.Difficulty,
			Score:      score,
			Skipped:    skipped,
		})
	}

	if len(c.questions) > 0 {
		s.AverageScore = totalScore / float64(len(c.questions))
	}
	if s.AnsweredCount > 0 {
		s.AverageTime = s.TotalTime / time.Duration(s.AnsweredCount)
	}
	for topic, t := range topicTotals {
		s.TopicAverages[topic] = t.mean()
	}
	for difficulty, t := range difficultyTotals {
		s.DifficultyAverages[difficulty] = t.mean()
	}

	return s, nil
}

type groupTotal struct {
	sum   float64
	count int
}

func (g *groupTotal) add(score float64) {
	g.sum += score
	g.count++
}

func (g *groupTotal) mean() float64 {
	if g.count == 0 {
		return 0
	}
	return g.sum / float64(g.count)
}

// FormatClock renders a duration as MM:SS for display.
func FormatClock(d time.Duration) string {
	total := int(d.Seconds())
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

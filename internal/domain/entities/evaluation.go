package entities

import "strings"

const (
	MinScore            = 0
	MaxScore            = 10
	DefaultScoreOnError = 5
)

// AnswerEvaluation is the result of grading a free-text answer.
type AnswerEvaluation struct {
	Score    int
	Feedback string
}

// HasFeedback reports whether the evaluation carries non-empty feedback.
func (e AnswerEvaluation) HasFeedback() bool {
	return strings.TrimSpace(e.Feedback) != ""
}

// ClampScore forces a score into the [MinScore, MaxScore] range.
func ClampScore(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

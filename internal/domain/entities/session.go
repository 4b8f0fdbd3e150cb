package entities

import "github.com/google/uuid"

// InterviewSession is one bounded run of questions for one chat. The question
// list is fixed at creation; the cursor only moves forward, one position per
// advance, and every cursor position yields at most one score.
type InterviewSession struct {
	ChatID    int64
	SessionID string
	Questions []Question

	cursor int
	scores []int
}

func NewInterviewSession(chatID int64, questions []Question) *InterviewSession {
	return &InterviewSession{
		ChatID:    chatID,
		SessionID: uuid.NewString(),
		Questions: questions,
		scores:    make([]int, 0, len(questions)),
	}
}

// Current returns the question at the cursor, or nil when the session is
// exhausted.
func (s *InterviewSession) Current() *Question {
	if s.cursor >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.cursor]
}

// Advance moves the cursor forward by one and returns the new current
// question. At the boundary it returns nil without moving past len+1.
func (s *InterviewSession) Advance() *Question {
	if s.cursor < len(s.Questions) {
		s.cursor++
	}
	return s.Current()
}

// HasNext reports whether there is a question after the current one.
func (s *InterviewSession) HasNext() bool {
	return s.cursor < len(s.Questions)-1
}

// IsLast reports whether the cursor is at the final question.
func (s *InterviewSession) IsLast() bool {
	return s.cursor == len(s.Questions)-1
}

// CurrentIndex returns the zero-based cursor position.
func (s *InterviewSession) CurrentIndex() int {
	return s.cursor
}

// Total returns the number of questions in the session.
func (s *InterviewSession) Total() int {
	return len(s.Questions)
}

// AddScore records a score for the current cursor position. It returns false
// when the position is already resolved or the session is exhausted, so a
// double submission can never append twice for the same question.
func (s *InterviewSession) AddScore(score int) bool {
	if s.cursor >= len(s.Questions) {
		return false
	}
	if len(s.scores) > s.cursor {
		return false
	}
	s.scores = append(s.scores, score)
	return true
}

// Scores returns a copy of the recorded scores.
func (s *InterviewSession) Scores() []int {
	out := make([]int, len(s.scores))
	copy(out, s.scores)
	return out
}

// AverageScore returns the arithmetic mean of recorded scores, 0.0 when
// nothing has been recorded yet.
func (s *InterviewSession) AverageScore() float64 {
	if len(s.scores) == 0 {
		return 0.0
	}

	sum := 0
	for _, v := range s.scores {
		sum += v
	}
	return float64(sum) / float64(len(s.scores))
}

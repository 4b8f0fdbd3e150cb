package entities

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty is the three-way difficulty label of an interview question.
type Difficulty string

const (
	DifficultyJunior Difficulty = "Junior"
	DifficultyMiddle Difficulty = "Middle"
	DifficultySenior Difficulty = "Senior"
)

// ParseDifficulty maps a callback payload value to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "junior":
		return DifficultyJunior, nil
	case "middle":
		return DifficultyMiddle, nil
	case "senior":
		return DifficultySenior, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// Question represents an interview question. Questions are immutable after
// creation; only active ones are eligible for session sampling.
type Question struct {
	ID         int64
	Text       string
	Category   string
	Difficulty Difficulty
	IsActive   bool
	CreatedAt  time.Time
}

func NewQuestion(text, category string, difficulty Difficulty) *Question {
	return &Question{
		Text:       text,
		Category:   category,
		Difficulty: difficulty,
		IsActive:   true,
		CreatedAt:  time.Now(),
	}
}

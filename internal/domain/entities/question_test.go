package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  Difficulty
		expectErr bool
	}{
		{name: "junior", input: "junior", expected: DifficultyJunior},
		{name: "middle capitalized", input: "Middle", expected: DifficultyMiddle},
		{name: "senior with spaces", input: " senior ", expected: DifficultySenior},
		{name: "unknown", input: "lead", expectErr: true},
		{name: "empty", input: "", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDifficulty(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}
}

func TestNewQuestion(t *testing.T) {
	q := NewQuestion("Что такое interface?", "Go", DifficultyJunior)

	assert.True(t, q.IsActive)
	assert.False(t, q.CreatedAt.IsZero())
	assert.Zero(t, q.ID)
}

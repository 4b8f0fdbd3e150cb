package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/interview-prep-bot/internal/domain/entities"
	"github.com/aliskhannn/interview-prep-bot/internal/infra/postgres"
)

var ErrQuestionNotFound = errors.New("question not found")

// QuestionRepository provides access to interview questions in the database.
type QuestionRepository struct {
	db postgres.DBTX
}

// NewQuestionRepository creates a new QuestionRepository with the provided database pool.
func NewQuestionRepository(db postgres.DBTX) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// Sample returns up to n random active questions, without replacement.
func (r *QuestionRepository) Sample(ctx context.Context, n int) ([]entities.Question, error) {
	query := `
		SELECT id, question_text, category, difficulty, is_active, created_at
		FROM questions
		WHERE is_active
		ORDER BY random()
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("sample questions: %w", err)
	}
	defer rows.Close()

	var questions []entities.Question
	for rows.Next() {
		var q entities.Question
		if err := rows.Scan(&q.ID, &q.Text, &q.Category, &q.Difficulty, &q.IsActive, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sample questions: %w", err)
	}

	return questions, nil
}

// GetByID retrieves a question by ID.
func (r *QuestionRepository) GetByID(ctx context.Context, id int64) (*entities.Question, error) {
	query := `
		SELECT id, question_text, category, difficulty, is_active, created_at
		FROM questions
		WHERE id = $1
	`

	var q entities.Question
	err := r.db.QueryRow(ctx, query, id).Scan(&q.ID, &q.Text, &q.Category, &q.Difficulty, &q.IsActive, &q.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("get question: %w", err)
	}

	return &q, nil
}

// Store persists a newly authored question and fills in its generated ID.
func (r *QuestionRepository) Store(ctx context.Context, q *entities.Question) error {
	query := `
		INSERT INTO questions (question_text, category, difficulty, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, q.Text, q.Category, string(q.Difficulty), q.IsActive, q.CreatedAt).Scan(&q.ID)
	if err != nil {
		return fmt.Errorf("store question: %w", err)
	}

	return nil
}

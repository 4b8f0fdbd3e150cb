package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/interview-prep-bot/internal/domain/entities"
	"github.com/aliskhannn/interview-prep-bot/internal/infra/postgres"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository provides access to user records in the database.
type UserRepository struct {
	db postgres.DBTX
}

// NewUserRepository creates a new UserRepository with the provided database pool.
func NewUserRepository(db postgres.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Save inserts a new user or updates an existing one, keyed by chat_id.
func (r *UserRepository) Save(ctx context.Context, user *entities.User) error {
	query := `
		INSERT INTO users (
			chat_id, username, first_name, last_name,
			schedule_time, timezone, questions_per_session, registration_state, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (chat_id) DO UPDATE SET
			username = EXCLUDED.username,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			schedule_time = EXCLUDED.schedule_time,
			timezone = EXCLUDED.timezone,
			questions_per_session = EXCLUDED.questions_per_session,
			registration_state = EXCLUDED.registration_state
	`

	_, err := r.db.Exec(ctx, query,
		user.ChatID,
		user.Username,
		user.FirstName,
		user.LastName,
		scheduleTimeValue(user.ScheduleTime),
		user.Timezone,
		user.QuestionsPerSession,
		string(user.RegistrationState),
		user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}

	return nil
}

// GetByChatID retrieves a user by chat ID.
func (r *UserRepository) GetByChatID(ctx context.Context, chatID int64) (*entities.User, error) {
	query := `
		SELECT chat_id, username, first_name, last_name,
		       schedule_time, timezone, questions_per_session, registration_state, created_at
		FROM users
		WHERE chat_id = $1
	`

	user, err := scanUser(r.db.QueryRow(ctx, query, chatID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return user, nil
}

// ListScheduled returns users who completed registration and have a daily
// prompt time configured.
func (r *UserRepository) ListScheduled(ctx context.Context) ([]*entities.User, error) {
	query := `
		SELECT chat_id, username, first_name, last_name,
		       schedule_time, timezone, questions_per_session, registration_state, created_at
		FROM users
		WHERE registration_state = $1 AND schedule_time IS NOT NULL
	`

	rows, err := r.db.Query(ctx, query, string(entities.StateCompleted))
	if err != nil {
		return nil, fmt.Errorf("list scheduled users: %w", err)
	}
	defer rows.Close()

	var users []*entities.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan scheduled user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list scheduled users: %w", err)
	}

	return users, nil
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var (
		user         entities.User
		scheduleTime *string
		state        string
	)

	err := row.Scan(
		&user.ChatID,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&scheduleTime,
		&user.Timezone,
		&user.QuestionsPerSession,
		&state,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.RegistrationState = entities.RegistrationState(state)

	if scheduleTime != nil {
		dt, err := entities.ParseDayTime(*scheduleTime)
		if err != nil {
			return nil, fmt.Errorf("stored schedule time: %w", err)
		}
		user.ScheduleTime = &dt
	}

	return &user, nil
}

func scheduleTimeValue(t *entities.DayTime) *string {
	if t == nil {
		return nil
	}
	s := t.String()
	return &s
}

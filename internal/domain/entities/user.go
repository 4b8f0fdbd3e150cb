package entities

import "time"

// RegistrationState tracks how far a user has progressed through onboarding.
type RegistrationState string

const (
	StateStart        RegistrationState = "start"
	StateScheduleTime RegistrationState = "schedule_time"
	StateTimezone     RegistrationState = "timezone"
	StateCompleted    RegistrationState = "completed"
)

const (
	DefaultTimezone            = "Europe/Moscow"
	DefaultQuestionsPerSession = 20
	MinQuestionsPerSession     = 1
	MaxQuestionsPerSession     = 50
)

// User represents a bot user. ChatID is the unique key; profile fields are
// captured from Telegram at /start. ScheduleTime nil means daily prompts
// are disabled.
type User struct {
	ChatID              int64
	Username            string
	FirstName           string
	LastName            string
	ScheduleTime        *DayTime
	Timezone            string
	QuestionsPerSession int
	RegistrationState   RegistrationState
	CreatedAt           time.Time
}

func NewUser(chatID int64, firstName, lastName, username string) *User {
	return &User{
		ChatID:            chatID,
		FirstName:         firstName,
		LastName:          lastName,
		Username:          username,
		Timezone:          DefaultTimezone,
		RegistrationState: StateStart,
		CreatedAt:         time.Now(),
	}
}

// IsCompleted reports whether the user has finished registration.
func (u *User) IsCompleted() bool {
	return u.RegistrationState == StateCompleted
}

package interfaces

import (
	"context"

	"github.com/ternarybob/finsight/internal/models"
)

// ChatLogStorage is the append-only store for chat turns. Turns are kept
// for audit; there is no update or delete.
type ChatLogStorage interface {
	// Append persists a turn. The storage assigns the key; callers set ID.
	Append(ctx context.Context, turn *models.ChatTurn) error

	// ListByUser returns the most recent turns for a user, newest first.
	ListByUser(ctx context.Context, username string, limit int) ([]models.ChatTurn, error)

	// Count returns the total number of stored turns.
	Count(ctx context.Context) (int, error)
}

// UserStorage stores registered users and their survey blobs.
type UserStorage interface {
	// Create inserts a new user. Fails when the username already exists.
	Create(ctx context.Context, user *models.User) error

	// GetByUsername returns the user record, or nil when not found.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// SurveyByUsername returns the user's survey text. Empty string when
	// the user does not exist or has not filled the survey.
	SurveyByUsername(ctx context.Context, username string) (string, error)

	// SaveSurvey replaces the survey text for an existing user.
	SaveSurvey(ctx context.Context, username, survey string) error
}

package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/finsight/internal/interfaces"
	"github.com/ternarybob/finsight/internal/models"
	"github.com/timshannon/badgerhold/v4"
	"golang.org/x/crypto/bcrypt"
)

// UserStorage implements the user/survey store on Badger.
type UserStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewUserStorage creates a UserStorage instance
func NewUserStorage(db *BadgerDB, logger arbor.ILogger) interfaces.UserStorage {
	return &UserStorage{
		db:     db,
		logger: logger,
	}
}

// HashPassword produces the bcrypt hash stored on a user record.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Create inserts a new user. Fails when the username already exists.
func (s *UserStorage) Create(ctx context.Context, user *models.User) error {
	if user == nil || user.ID == "" || user.Username == "" {
		return fmt.Errorf("user requires an ID and username")
	}

	existing, err := s.GetByUsername(ctx, user.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("username %q already exists", user.Username)
	}

	if err := s.db.Store().Insert(user.ID, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByUsername returns the user record, or nil when not found.
func (s *UserStorage) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.Store().FindOne(&user, badgerhold.Where("Username").Eq(username))
	if err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// SurveyByUsername returns the user's survey text, empty when the user
// does not exist or has not filled the survey.
func (s *UserStorage) SurveyByUsername(ctx context.Context, username string) (string, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", nil
	}
	return user.Survey, nil
}

// SaveSurvey replaces the survey text for an existing user.
func (s *UserStorage) SaveSurvey(ctx context.Context, username, survey string) error {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %q not found", username)
	}

	user.Survey = survey
	if err := s.db.Store().Update(user.ID, user); err != nil {
		return fmt.Errorf("failed to save survey: %w", err)
	}
	return nil
}

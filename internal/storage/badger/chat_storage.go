package badger

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/finsight/internal/interfaces"
	"github.com/ternarybob/finsight/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// ChatLogStorage implements the append-only chat turn store on Badger.
type ChatLogStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewChatLogStorage creates a ChatLogStorage instance
func NewChatLogStorage(db *BadgerDB, logger arbor.ILogger) interfaces.ChatLogStorage {
	return &ChatLogStorage{
		db:     db,
		logger: logger,
	}
}

// Append inserts the turn keyed by its ID. Turns are never updated or
// deleted; badgerhold serializes concurrent inserts internally.
func (s *ChatLogStorage) Append(ctx context.Context, turn *models.ChatTurn) error {
	if turn == nil || turn.ID == "" {
		return fmt.Errorf("chat turn requires an ID")
	}
	if err := s.db.Store().Insert(turn.ID, turn); err != nil {
		return fmt.Errorf("failed to append chat turn: %w", err)
	}
	return nil
}

// ListByUser returns the user's turns, newest first.
func (s *ChatLogStorage) ListByUser(ctx context.Context, username string, limit int) ([]models.ChatTurn, error) {
	var turns []models.ChatTurn
	query := badgerhold.Where("Username").Eq(username).SortBy("CreatedAt").Reverse()
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := s.db.Store().Find(&turns, query); err != nil {
		return nil, fmt.Errorf("failed to list chat turns: %w", err)
	}
	return turns, nil
}

// Count returns the total number of stored turns.
func (s *ChatLogStorage) Count(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.ChatTurn{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count chat turns: %w", err)
	}
	return int(count), nil
}

package badger

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/finsight/internal/common"
	"github.com/ternarybob/finsight/internal/models"
	"golang.org/x/crypto/bcrypt"
)

func newTestDB(t *testing.T) *BadgerDB {
	t.Helper()
	logger := arbor.NewLogger()
	db, err := NewBadgerDB(logger, &common.BadgerConfig{
		Path: filepath.Join(t.TempDir(), "finsight-test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestChatLogStorage_AppendAndList(t *testing.T) {
	db := newTestDB(t)
	storage := NewChatLogStorage(db, arbor.NewLogger())
	ctx := context.Background()

	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		err := storage.Append(ctx, &models.ChatTurn{
			ID:        uuid.NewString(),
			Username:  "alice",
			Message:   fmt.Sprintf("message %d", i),
			Reply:     fmt.Sprintf("reply %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
	err := storage.Append(ctx, &models.ChatTurn{
		ID:        uuid.NewString(),
		Username:  "bob",
		Message:   "other user",
		Reply:     "ok",
		CreatedAt: base,
	})
	require.NoError(t, err)

	turns, err := storage.ListByUser(ctx, "alice", 0)
	require.NoError(t, err)
	require.Len(t, turns, 3)

	// Newest first.
	assert.Equal(t, "message 2", turns[0].Message)
	assert.Equal(t, "message 0", turns[2].Message)

	limited, err := storage.ListByUser(ctx, "alice", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	count, err := storage.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestChatLogStorage_RequiresID(t *testing.T) {
	db := newTestDB(t)
	storage := NewChatLogStorage(db, arbor.NewLogger())

	err := storage.Append(context.Background(), &models.ChatTurn{Username: "alice"})
	require.Error(t, err)
}

func TestUserStorage_CreateAndSurvey(t *testing.T) {
	db := newTestDB(t)
	storage := NewUserStorage(db, arbor.NewLogger())
	ctx := context.Background()

	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("hunter2")))

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     "alice",
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, storage.Create(ctx, user))

	// Duplicate username rejected.
	err = storage.Create(ctx, &models.User{ID: uuid.NewString(), Username: "alice"})
	require.Error(t, err)

	// No survey yet.
	survey, err := storage.SurveyByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, survey)

	require.NoError(t, storage.SaveSurvey(ctx, "alice", "age 34, saving for a house"))

	survey, err = storage.SurveyByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "age 34, saving for a house", survey)

	// Unknown user reads as empty, not an error.
	survey, err = storage.SurveyByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, survey)

	// Survey on a missing user fails.
	require.Error(t, storage.SaveSurvey(ctx, "nobody", "x"))
}

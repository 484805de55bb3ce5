package users

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users_test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&AllowedUser{}))
	return db
}

func TestService_AddIsIdempotent(t *testing.T) {
	svc := NewService(setupTestDB(t), zap.NewNop())
	ctx := context.Background()

	applied, err := svc.Add(ctx, 100, "alice", true)
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = svc.Add(ctx, 100, "alice", true)
	require.NoError(t, err)
	assert.False(t, applied)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "alice", list[0].Username)
	assert.True(t, list[0].IsOwner)
}

func TestService_IsAllowed(t *testing.T) {
	svc := NewService(setupTestDB(t), zap.NewNop())
	ctx := context.Background()

	_, err := svc.Add(ctx, 100, "alice", false)
	require.NoError(t, err)

	allowed, err := svc.IsAllowed(ctx, 100)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.IsAllowed(ctx, 999)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestService_Remove(t *testing.T) {
	svc := NewService(setupTestDB(t), zap.NewNop())
	ctx := context.Background()

	_, err := svc.Add(ctx, 100, "alice", false)
	require.NoError(t, err)

	applied, err := svc.Remove(ctx, 100)
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = svc.Remove(ctx, 100)
	require.NoError(t, err)
	assert.False(t, applied)

	allowed, err := svc.IsAllowed(ctx, 100)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestService_ListOrder(t *testing.T) {
	svc := NewService(setupTestDB(t), zap.NewNop())
	ctx := context.Background()

	_, err := svc.Add(ctx, 300, "carol", false)
	require.NoError(t, err)
	_, err = svc.Add(ctx, 100, "alice", true)
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	// Newest grant first; same-second grants fall back to user id order.
	assert.Equal(t, int64(300), list[0].UserID)
	assert.Equal(t, int64(100), list[1].UserID)
}

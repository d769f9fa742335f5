package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bucketlist/internal/core/database/dbtest"
	"bucketlist/internal/domain"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func seedList(t *testing.T, r *ListRepo, id, owner string, created time.Time) *domain.BucketList {
	t.Helper()
	l := &domain.BucketList{ID: id, UserID: owner, Name: "list " + id, LastActivityAt: created, CreatedAt: created}
	require.NoError(t, r.Create(context.Background(), l))
	return l
}

func TestListRepo_ListByOwner_NewestFirst(t *testing.T) {
	ctx := context.Background()
	r := NewListRepo(dbtest.New(t))
	seedList(t, r, "a", "u1", t0)
	seedList(t, r, "b", "u1", t0.Add(time.Hour))
	seedList(t, r, "c", "u2", t0.Add(2*time.Hour))

	got, err := r.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
}

func TestListRepo_AdjustCounters(t *testing.T) {
	ctx := context.Background()
	r := NewListRepo(dbtest.New(t))
	seedList(t, r, "a", "u1", t0)

	at := t0.Add(time.Minute)
	require.NoError(t, r.AdjustCounters(ctx, "a", 2, 1, at))
	require.NoError(t, r.AdjustCounters(ctx, "a", 1, 0, at))

	l, err := r.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 3, l.ItemCount)
	assert.Equal(t, 1, l.CompletedCount)
	assert.True(t, at.Equal(l.LastActivityAt))

	// 下限 0
	require.NoError(t, r.AdjustCounters(ctx, "a", -5, -5, at))
	l, err = r.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 0, l.ItemCount)
	assert.Equal(t, 0, l.CompletedCount)
}

func TestListRepo_RenameAndDelete(t *testing.T) {
	ctx := context.Background()
	r := NewListRepo(dbtest.New(t))
	seedList(t, r, "a", "u1", t0)

	at := t0.Add(time.Hour)
	require.NoError(t, r.Rename(ctx, "a", "Renamed", at))
	l, err := r.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", l.Name)
	assert.True(t, at.Equal(l.LastActivityAt))

	require.NoError(t, r.Delete(ctx, "a"))
	l, err = r.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, l)
}

func TestListRepo_ListInactive(t *testing.T) {
	ctx := context.Background()
	r := NewListRepo(dbtest.New(t))
	seedList(t, r, "old", "u1", t0)
	seedList(t, r, "older", "u1", t0.Add(-48*time.Hour))
	seedList(t, r, "empty", "u1", t0.Add(-72*time.Hour))
	seedList(t, r, "fresh", "u1", t0.Add(30*24*time.Hour))
	for _, id := range []string{"old", "older", "fresh"} {
		l, err := r.FindByID(ctx, id)
		require.NoError(t, err)
		require.NoError(t, r.AdjustCounters(ctx, id, 1, 0, l.LastActivityAt))
	}

	got, err := r.ListInactive(ctx, "u1", t0.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "older", got[0].ID)
	assert.Equal(t, "old", got[1].ID)
}

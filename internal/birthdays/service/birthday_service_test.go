package service

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/cyberbirth/cyberbirth-backend/internal/birthdays/domain"
	"github.com/cyberbirth/cyberbirth-backend/internal/birthdays/repository"
	"github.com/cyberbirth/cyberbirth-backend/internal/birthdays/storage"
	"github.com/cyberbirth/cyberbirth-backend/internal/wishes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWishClient struct {
	params []wishes.Params
}

func (r *recordingWishClient) GenerateWish(ctx context.Context, p wishes.Params) wishes.Result {
	r.params = append(r.params, p)
	return wishes.DefaultFallback(p)
}

var fixedNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func setupService(t *testing.T) (*BirthdayService, *recordingWishClient, storage.Slot) {
	t.Helper()
	slot := storage.NewFileSlot(filepath.Join(t.TempDir(), "birthdays.json"))
	store, err := repository.Open(context.Background(), slot, nil)
	require.NoError(t, err)

	seq := 0
	wc := &recordingWishClient{}
	svc := NewBirthdayService(store, wc,
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { seq++; return fmt.Sprintf("id-%d", seq) }),
	)
	return svc, wc, slot
}

func TestCreate(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	t.Run("defaults relationship and trims name", func(t *testing.T) {
		b, err := svc.Create(ctx, domain.CreateBirthdayRequest{Name: "  Molly ", Date: "1990-12-25"})
		require.NoError(t, err)
		assert.Equal(t, "id-1", b.ID)
		assert.Equal(t, "Molly", b.Name)
		assert.Equal(t, domain.DefaultRelationship, b.Relationship)
	})

	t.Run("rejects missing name", func(t *testing.T) {
		_, err := svc.Create(ctx, domain.CreateBirthdayRequest{Name: " ", Date: "1990-12-25"})
		assert.ErrorIs(t, err, domain.ErrNameRequired)
	})

	t.Run("rejects missing date", func(t *testing.T) {
		_, err := svc.Create(ctx, domain.CreateBirthdayRequest{Name: "Case"})
		assert.ErrorIs(t, err, domain.ErrDateRequired)
	})

	t.Run("rejects impossible date", func(t *testing.T) {
		_, err := svc.Create(ctx, domain.CreateBirthdayRequest{Name: "Case", Date: "1990-02-30"})
		assert.ErrorIs(t, err, domain.ErrInvalidDate)
	})

	t.Run("rejects future date", func(t *testing.T) {
		_, err := svc.Create(ctx, domain.CreateBirthdayRequest{Name: "Case", Date: "2030-05-01"})
		assert.ErrorIs(t, err, domain.ErrDateInFuture)
		assert.True(t, domain.IsValidationError(err))
	})

	t.Run("accepts a birth today", func(t *testing.T) {
		b, err := svc.Create(ctx, domain.CreateBirthdayRequest{Name: "Kid", Date: "2024-06-01"})
		require.NoError(t, err)
		assert.Equal(t, 0, domain.NextOccurrence(b.Date, fixedNow).Age)
	})

	assert.Len(t, svc.List(ctx), 2, "rejected requests are not stored")
}

func TestCreate_IDsAreUnique(t *testing.T) {
	slot := storage.NewFileSlot(filepath.Join(t.TempDir(), "birthdays.json"))
	store, err := repository.Open(context.Background(), slot, nil)
	require.NoError(t, err)
	svc := NewBirthdayService(store, &recordingWishClient{})

	a, err := svc.Create(context.Background(), domain.CreateBirthdayRequest{Name: "A", Date: "2000-01-01"})
	require.NoError(t, err)
	b, err := svc.Create(context.Background(), domain.CreateBirthdayRequest{Name: "B", Date: "2000-01-01"})
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestListGetDelete(t *testing.T) {
	svc, _, slot := setupService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateBirthdayRequest{Name: "Jan", Date: "1990-01-10"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateBirthdayRequest{Name: "Today", Date: "1990-06-01", Relationship: "Brother"})
	require.NoError(t, err)

	entries := svc.List(ctx)
	require.Len(t, entries, 2)
	assert.Equal(t, "Today", entries[0].Birthday.Name)
	assert.True(t, entries[0].Occurrence.IsToday)

	entry, err := svc.Get(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, 35, entry.Occurrence.Age)

	_, err = svc.Get(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrBirthdayNotFound)

	removed, err := svc.Delete(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = svc.Delete(ctx, "id-1")
	assert.ErrorIs(t, err, domain.ErrBirthdayNotFound)

	reloaded, err := repository.Open(ctx, slot, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Len())
}

func TestGenerateWish_UsesAgeAtNextOccurrence(t *testing.T) {
	svc, wc, _ := setupService(t)
	ctx := context.Background()

	b, err := svc.Create(ctx, domain.CreateBirthdayRequest{Name: "Neo", Date: "1990-01-10", Relationship: "Mentor"})
	require.NoError(t, err)

	res, err := svc.GenerateWish(ctx, b.ID, wishes.ToneFunny)
	require.NoError(t, err)
	assert.Len(t, res.GiftIdeas, wishes.GiftIdeaCount)

	require.Len(t, wc.params, 1)
	assert.Equal(t, wishes.Params{Name: "Neo", Age: 35, Relationship: "Mentor", Tone: wishes.ToneFunny}, wc.params[0])

	_, err = svc.GenerateWish(ctx, "missing", wishes.ToneFunny)
	assert.ErrorIs(t, err, domain.ErrBirthdayNotFound)
}

func TestStats(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	for _, date := range []string{"1990-06-01", "1991-06-05", "1992-12-25"} {
		_, err := svc.Create(ctx, domain.CreateBirthdayRequest{Name: "x", Date: date})
		require.NoError(t, err)
	}

	assert.Equal(t, Stats{Total: 3, Today: 1, Upcoming: 1}, svc.Stats(ctx))
}

package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artfusion/gallery-api/internal/model"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	dir := t.TempDir()
	return NewFileStore(filepath.Join(dir, "paintings.json"), filepath.Join(dir, "ratings.json"))
}

func TestFileStoreInsertAssignsIDs(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for want := int64(1); want <= 3; want++ {
		p := model.Painting{Title: "p"}
		require.NoError(t, s.Insert(ctx, &p))
		assert.Equal(t, want, p.ID)
	}
}

func TestFileStoreIDIsMaxPlusOneOfCurrentSet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for i := 0; i < 3; i++ {
		p := model.Painting{Title: "p"}
		require.NoError(t, s.Insert(ctx, &p))
	}
	// Removing the highest id shrinks the set, so the next insert reuses
	// that id: the scheme is max-plus-one of the current set, not a
	// persistent counter.
	require.NoError(t, s.Delete(ctx, 3))
	p := model.Painting{Title: "again"}
	require.NoError(t, s.Insert(ctx, &p))
	assert.Equal(t, int64(3), p.ID)
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "paintings.json")
	ratings := filepath.Join(dir, "ratings.json")

	s1 := NewFileStore(path, ratings)
	p := model.Painting{Title: "Dusk", Price: "400"}
	require.NoError(t, s1.Insert(ctx, &p))

	s2 := NewFileStore(path, ratings)
	got, err := s2.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dusk", got.Title)
	assert.Equal(t, "400", got.Price)
}

func TestFileStoreGetMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrPaintingNotFound)
}

func TestFileStorePartialUpdate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	p := model.Painting{
		Title:       "Old Title",
		Description: "a beach",
		Price:       "250",
		Image:       "/paintings/old.png",
		Category:    "Seascape",
		Featured:    true,
		Rating:      3.5,
	}
	require.NoError(t, s.Insert(ctx, &p))

	title := "New Title"
	got, err := s.Update(ctx, p.ID, model.PaintingUpdate{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, "New Title", got.Title)
	assert.Equal(t, "a beach", got.Description)
	assert.Equal(t, "250", got.Price)
	assert.Equal(t, "/paintings/old.png", got.Image)
	assert.Equal(t, "Seascape", got.Category)
	assert.True(t, got.Featured)
	assert.Equal(t, 3.5, got.Rating)
}

func TestFileStoreUpdateMissing(t *testing.T) {
	s := newTestStore(t)
	title := "x"
	_, err := s.Update(context.Background(), 7, model.PaintingUpdate{Title: &title})
	assert.ErrorIs(t, err, ErrPaintingNotFound)
}

func TestFileStoreDeleteTwice(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	p := model.Painting{Title: "gone soon"}
	require.NoError(t, s.Insert(ctx, &p))

	require.NoError(t, s.Delete(ctx, p.ID))
	assert.ErrorIs(t, s.Delete(ctx, p.ID), ErrPaintingNotFound)
}

func TestFileStoreRatingUpsertReplaces(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Upsert(ctx, model.Rating{PaintingID: 1, RaterID: "anon-a", Value: 3}))
	require.NoError(t, s.Upsert(ctx, model.Rating{PaintingID: 1, RaterID: "anon-a", Value: 5}))

	values, err := s.ListByPainting(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{5}, values)
}

func TestFileStoreListForPaintings(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Upsert(ctx, model.Rating{PaintingID: 1, RaterID: "a", Value: 2}))
	require.NoError(t, s.Upsert(ctx, model.Rating{PaintingID: 1, RaterID: "b", Value: 4}))
	require.NoError(t, s.Upsert(ctx, model.Rating{PaintingID: 2, RaterID: "a", Value: 5}))
	require.NoError(t, s.Upsert(ctx, model.Rating{PaintingID: 9, RaterID: "a", Value: 1}))

	got, err := s.ListForPaintings(ctx, []int64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, map[int64][]float64{
		1: {2, 4},
		2: {5},
	}, got)
}

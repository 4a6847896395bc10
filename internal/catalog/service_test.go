package catalog

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artfusion/gallery-api/internal/blob"
	"github.com/artfusion/gallery-api/internal/rating"
	"github.com/artfusion/gallery-api/internal/repository"
)

const testMaxUpload = 5 << 20

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	store := repository.NewFileStore(filepath.Join(dir, "paintings.json"), filepath.Join(dir, "ratings.json"))
	imageDir := filepath.Join(dir, "images")
	local, err := blob.NewLocalStore(imageDir)
	require.NoError(t, err)
	return NewService(store, rating.NewAggregator(store), local, testMaxUpload), imageDir
}

func imageCount(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return len(entries)
}

func TestCreateAppliesDefaults(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	got, err := svc.Create(ctx, CreateInput{})
	require.NoError(t, err)

	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "Untitled", got.Title)
	assert.Equal(t, "", got.Description)
	assert.Equal(t, "Contact for a personalized quote", got.Price)
	assert.Equal(t, "", got.Image)
	assert.Equal(t, "Landscape", got.Category)
	assert.False(t, got.Featured)
	assert.Equal(t, 4.0, got.Rating)
	assert.Equal(t, 4.0, got.AvgRating)
	assert.Equal(t, 0, got.RatingCount)
}

func TestCreateCoercesFields(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	got, err := svc.Create(ctx, CreateInput{
		Title:    "Sunset",
		Price:    "650",
		Category: "Abstract",
		Featured: "true",
		Rating:   "4.5",
		Image:    "https://example.com/sunset.jpg",
	})
	require.NoError(t, err)

	assert.Equal(t, "Sunset", got.Title)
	assert.Equal(t, "650", got.Price)
	assert.Equal(t, "Abstract", got.Category)
	assert.True(t, got.Featured)
	assert.Equal(t, 4.5, got.Rating)
	assert.Equal(t, "https://example.com/sunset.jpg", got.Image)
}

func TestCreateWithUpload(t *testing.T) {
	ctx := context.Background()
	svc, imageDir := newTestService(t)

	got, err := svc.Create(ctx, CreateInput{
		Title: "Uploaded",
		File: &Upload{
			Filename: "photo.PNG",
			Size:     4,
			Content:  bytes.NewReader([]byte("data")),
		},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got.Image, "/paintings/upload-"), "image ref %q", got.Image)
	assert.True(t, strings.HasSuffix(got.Image, ".png"))
	assert.Equal(t, 1, imageCount(t, imageDir))
}

func TestCreateRejectsBadExtension(t *testing.T) {
	ctx := context.Background()
	svc, imageDir := newTestService(t)

	_, err := svc.Create(ctx, CreateInput{
		Title: "nope",
		File:  &Upload{Filename: "malware.exe", Size: 10, Content: strings.NewReader("xxxxxxxxxx")},
	})
	assert.ErrorIs(t, err, ErrUploadType)

	// Nothing was persisted on either side.
	items, listErr := svc.List(ctx)
	require.NoError(t, listErr)
	assert.Empty(t, items)
	assert.Equal(t, 0, imageCount(t, imageDir))
}

func TestCreateRejectsOversizedUpload(t *testing.T) {
	ctx := context.Background()
	svc, imageDir := newTestService(t)

	_, err := svc.Create(ctx, CreateInput{
		Title: "huge",
		File:  &Upload{Filename: "big.png", Size: 6 << 20, Content: bytes.NewReader(make([]byte, 16))},
	})
	assert.ErrorIs(t, err, ErrUploadTooLarge)

	items, listErr := svc.List(ctx)
	require.NoError(t, listErr)
	assert.Empty(t, items)
	assert.Equal(t, 0, imageCount(t, imageDir))
}

func TestUpdatePartialMerge(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	created, err := svc.Create(ctx, CreateInput{
		Title:       "Original",
		Description: "first version",
		Price:       "300",
		Category:    "Portrait",
		Featured:    "true",
	})
	require.NoError(t, err)

	title := "Renamed"
	got, err := svc.Update(ctx, created.ID, UpdateInput{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, "first version", got.Description)
	assert.Equal(t, "300", got.Price)
	assert.Equal(t, "Portrait", got.Category)
	assert.True(t, got.Featured)
}

func TestUpdateImagePrecedence(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	created, err := svc.Create(ctx, CreateInput{Image: "/paintings/old.png"})
	require.NoError(t, err)

	// An empty image string counts as absent and keeps the old value.
	empty := ""
	got, err := svc.Update(ctx, created.ID, UpdateInput{Image: &empty})
	require.NoError(t, err)
	assert.Equal(t, "/paintings/old.png", got.Image)

	// A supplied string replaces the previous value.
	url := "https://example.com/new.jpg"
	got, err = svc.Update(ctx, created.ID, UpdateInput{Image: &url})
	require.NoError(t, err)
	assert.Equal(t, url, got.Image)

	// An uploaded file wins over the supplied string.
	got, err = svc.Update(ctx, created.ID, UpdateInput{
		Image: &url,
		File:  &Upload{Filename: "fresh.jpg", Size: 4, Content: strings.NewReader("data")},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got.Image, "/paintings/upload-"))
}

func TestUpdateMissingPainting(t *testing.T) {
	svc, _ := newTestService(t)
	title := "x"
	_, err := svc.Update(context.Background(), 99, UpdateInput{Title: &title})
	assert.ErrorIs(t, err, repository.ErrPaintingNotFound)
}

func TestDeleteIsNotFoundOnRepeat(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	created, err := svc.Create(ctx, CreateInput{Title: "short lived"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), repository.ErrPaintingNotFound)
}

func TestRate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	created, err := svc.Create(ctx, CreateInput{Title: "rated"})
	require.NoError(t, err)

	for i, v := range []float64{3, 4, 5} {
		agg, err := svc.Rate(ctx, created.ID, string(rune('a'+i)), v)
		require.NoError(t, err)
		assert.Equal(t, i+1, agg.RatingCount)
	}

	agg, err := svc.Rate(ctx, created.ID, "a", 5)
	require.NoError(t, err)
	assert.Equal(t, 3, agg.RatingCount, "re-rating keeps the count")
	assert.InDelta(t, (5.0+4.0+5.0)/3.0, agg.AvgRating, 1e-9)
}

func TestRateUnknownPainting(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Rate(context.Background(), 123, "anon", 5)
	assert.ErrorIs(t, err, repository.ErrPaintingNotFound)
}

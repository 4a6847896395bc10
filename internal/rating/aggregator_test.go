package rating

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artfusion/gallery-api/internal/model"
	"github.com/artfusion/gallery-api/internal/repository"
)

func newTestAggregator(t *testing.T) *Aggregator {
	t.Helper()
	dir := t.TempDir()
	store := repository.NewFileStore(filepath.Join(dir, "paintings.json"), filepath.Join(dir, "ratings.json"))
	return NewAggregator(store)
}

func TestAverageOfDistinctRaters(t *testing.T) {
	ctx := context.Background()
	a := newTestAggregator(t)
	p := model.Painting{ID: 1, Rating: 2}

	for i, v := range []float64{3, 4, 5} {
		require.NoError(t, a.Record(ctx, model.Rating{PaintingID: 1, RaterID: string(rune('a' + i)), Value: v}))
	}

	agg, err := a.For(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, 4.0, agg.AvgRating)
	assert.Equal(t, 3, agg.RatingCount)
}

func TestRerateBySameRaterReplaces(t *testing.T) {
	ctx := context.Background()
	a := newTestAggregator(t)
	p := model.Painting{ID: 1}

	require.NoError(t, a.Record(ctx, model.Rating{PaintingID: 1, RaterID: "anon", Value: 3}))
	require.NoError(t, a.Record(ctx, model.Rating{PaintingID: 1, RaterID: "anon", Value: 5}))

	agg, err := a.For(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, 5.0, agg.AvgRating)
	assert.Equal(t, 1, agg.RatingCount, "re-rating must not grow the count")
}

func TestSeedFallback(t *testing.T) {
	ctx := context.Background()
	a := newTestAggregator(t)

	agg, err := a.For(ctx, model.Painting{ID: 1, Rating: 3.5})
	require.NoError(t, err)
	assert.Equal(t, 3.5, agg.AvgRating)
	assert.Equal(t, 0, agg.RatingCount)

	// No seed either: the default of 4 applies.
	agg, err = a.For(ctx, model.Painting{ID: 2})
	require.NoError(t, err)
	assert.Equal(t, 4.0, agg.AvgRating)
	assert.Equal(t, 0, agg.RatingCount)
}

func TestOutOfRangeValuesAreKept(t *testing.T) {
	ctx := context.Background()
	a := newTestAggregator(t)
	p := model.Painting{ID: 1}

	require.NoError(t, a.Record(ctx, model.Rating{PaintingID: 1, RaterID: "a", Value: 0}))
	require.NoError(t, a.Record(ctx, model.Rating{PaintingID: 1, RaterID: "b", Value: 6}))

	agg, err := a.For(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, 3.0, agg.AvgRating)
	assert.Equal(t, 2, agg.RatingCount)
}

func TestAttach(t *testing.T) {
	ctx := context.Background()
	a := newTestAggregator(t)

	paintings := []model.Painting{
		{ID: 1, Title: "rated"},
		{ID: 2, Title: "unrated", Rating: 5},
	}
	require.NoError(t, a.Record(ctx, model.Rating{PaintingID: 1, RaterID: "a", Value: 2}))
	require.NoError(t, a.Record(ctx, model.Rating{PaintingID: 1, RaterID: "b", Value: 4}))

	out, err := a.Attach(ctx, paintings)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, 3.0, out[0].AvgRating)
	assert.Equal(t, 2, out[0].RatingCount)
	assert.Equal(t, 5.0, out[1].AvgRating)
	assert.Equal(t, 0, out[1].RatingCount)
}

// Package rating computes the (average, count) aggregate attached to each
// painting. The average is the arithmetic mean of the full stored set,
// recomputed on every read instead of maintained incrementally, so
// floating-point accumulation error never compounds across requests.
package rating

import (
	"context"

	"github.com/artfusion/gallery-api/internal/model"
	"github.com/artfusion/gallery-api/internal/repository"
)

// defaultSeed is the average reported for a painting with no stored ratings
// and no seed value of its own.
const defaultSeed = 4

// Aggregator records visitor ratings and derives aggregates.  It depends
// only on the RatingStore interface, never on a concrete store.
type Aggregator struct {
	ratings repository.RatingStore
}

func NewAggregator(ratings repository.RatingStore) *Aggregator {
	return &Aggregator{ratings: ratings}
}

// Record stores one rater's value for a painting.  A second call by the
// same rater replaces the previous value; the count stays unchanged.
// Values are stored as-is, without range validation.
func (a *Aggregator) Record(ctx context.Context, r model.Rating) error {
	return a.ratings.Upsert(ctx, r)
}

// For returns the aggregate for a single painting.  With no stored ratings
// the average falls back to the painting's seed rating (or 4 when unset)
// and the count is zero.
func (a *Aggregator) For(ctx context.Context, p model.Painting) (model.RatingAggregate, error) {
	values, err := a.ratings.ListByPainting(ctx, p.ID)
	if err != nil {
		return model.RatingAggregate{}, err
	}
	return aggregate(p, values), nil
}

// Attach resolves the aggregate for every painting in one store round trip
// and returns the public read shape.
func (a *Aggregator) Attach(ctx context.Context, paintings []model.Painting) ([]model.PaintingWithRating, error) {
	ids := make([]int64, len(paintings))
	for i := range paintings {
		ids[i] = paintings[i].ID
	}
	byID, err := a.ratings.ListForPaintings(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]model.PaintingWithRating, len(paintings))
	for i := range paintings {
		agg := aggregate(paintings[i], byID[paintings[i].ID])
		out[i] = model.PaintingWithRating{
			Painting:    paintings[i],
			AvgRating:   agg.AvgRating,
			RatingCount: agg.RatingCount,
		}
	}
	return out, nil
}

func aggregate(p model.Painting, values []float64) model.RatingAggregate {
	if len(values) == 0 {
		seed := p.Rating
		if seed == 0 {
			seed = defaultSeed
		}
		return model.RatingAggregate{AvgRating: seed, RatingCount: 0}
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return model.RatingAggregate{
		AvgRating:   sum / float64(len(values)),
		RatingCount: len(values),
	}
}

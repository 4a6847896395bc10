package repository

import (
	"context"

	"github.com/artfusion/gallery-api/internal/model"
)

// PaintingStore is the persistence contract for the painting catalog.  Two
// implementations exist: FileStore (flat JSON document plus local image
// files) and SQLStore (Postgres rows).  Everything above this interface —
// the catalog service, the rating aggregator, the handlers — must not care
// which one is wired in.
type PaintingStore interface {
	// List returns all paintings in store order.
	List(ctx context.Context) ([]model.Painting, error)
	// Get returns one painting or ErrPaintingNotFound.
	Get(ctx context.Context, id int64) (*model.Painting, error)
	// Insert persists a new painting and assigns its ID in place.
	Insert(ctx context.Context, p *model.Painting) error
	// Update applies a partial update and returns the merged record, or
	// ErrPaintingNotFound when the id does not exist.
	Update(ctx context.Context, id int64, upd model.PaintingUpdate) (*model.Painting, error)
	// Delete removes a painting or returns ErrPaintingNotFound.
	Delete(ctx context.Context, id int64) error
}

// RatingStore persists visitor ratings.  Upsert is keyed by the
// (painting, rater) pair: a conflicting key replaces the stored value
// instead of inserting a duplicate row.
type RatingStore interface {
	Upsert(ctx context.Context, r model.Rating) error
	// ListByPainting returns all stored rating values for one painting.
	ListByPainting(ctx context.Context, paintingID int64) ([]float64, error)
	// ListForPaintings returns the rating values for each of the given
	// painting ids; ids without ratings are absent from the map.
	ListForPaintings(ctx context.Context, ids []int64) (map[int64][]float64, error)
}

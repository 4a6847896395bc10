// Package catalog orchestrates painting CRUD on top of the store adapter,
// the rating aggregator and the blob store. Handlers stay thin: they parse
// the request and translate the errors returned here into HTTP statuses.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/artfusion/gallery-api/internal/blob"
	"github.com/artfusion/gallery-api/internal/model"
	"github.com/artfusion/gallery-api/internal/rating"
	"github.com/artfusion/gallery-api/internal/repository"
)

// Defaults applied when a create request omits a field.  An empty string is
// treated the same as an omitted one.
const (
	DefaultTitle    = "Untitled"
	DefaultPrice    = "Contact for a personalized quote"
	DefaultCategory = "Landscape"
)

// ErrUploadType is returned for uploads whose filename extension is not an
// accepted image type. ErrUploadTooLarge is returned when the upload
// exceeds the configured size limit. Both reject the request before any
// painting or image is persisted.
var (
	ErrUploadType     = errors.New("only image files allowed")
	ErrUploadTooLarge = errors.New("image exceeds the maximum upload size")
)

// allowedExt lists the accepted image filename extensions.
var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// Upload is an image file attached to a create or update request.
type Upload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// CreateInput carries the raw form fields of a create request.  Empty
// fields fall back to the defaults above; Featured is coerced from the
// string "true".
type CreateInput struct {
	Title       string
	Description string
	Price       string
	Image       string
	Category    string
	Featured    string
	Rating      string
	File        *Upload
}

// UpdateInput carries a partial update: nil fields were absent from the
// request and keep their stored value.
type UpdateInput struct {
	Title       *string
	Description *string
	Price       *string
	Image       *string
	Category    *string
	Featured    *string
	Rating      *string
	File        *Upload
}

// Service implements the catalog operations against whichever store and
// blob backend were selected at startup.
type Service struct {
	paintings repository.PaintingStore
	ratings   *rating.Aggregator
	blobs     blob.Store
	maxUpload int64
}

func NewService(paintings repository.PaintingStore, ratings *rating.Aggregator, blobs blob.Store, maxUpload int64) *Service {
	return &Service{paintings: paintings, ratings: ratings, blobs: blobs, maxUpload: maxUpload}
}

// List returns every painting with its rating aggregate attached.
func (s *Service) List(ctx context.Context) ([]model.PaintingWithRating, error) {
	items, err := s.paintings.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.ratings.Attach(ctx, items)
}

// Create normalizes the input, persists an uploaded image if present and
// inserts the painting.  The upload is validated before anything is
// written, so a rejected file leaves the catalog unchanged.
func (s *Service) Create(ctx context.Context, in CreateInput) (*model.PaintingWithRating, error) {
	p := model.Painting{
		Title:       orDefault(in.Title, DefaultTitle),
		Description: in.Description,
		Price:       orDefault(in.Price, DefaultPrice),
		Image:       in.Image,
		Category:    orDefault(in.Category, DefaultCategory),
		Featured:    in.Featured == "true",
		Rating:      parseSeed(in.Rating),
	}
	if in.File != nil {
		ref, err := s.saveUpload(ctx, in.File)
		if err != nil {
			return nil, err
		}
		p.Image = ref
	}
	if err := s.paintings.Insert(ctx, &p); err != nil {
		return nil, err
	}
	return &model.PaintingWithRating{Painting: p, AvgRating: p.Rating, RatingCount: 0}, nil
}

// Update applies a shallow partial merge: only fields present in the
// request overwrite stored values.  An uploaded file wins over a supplied
// image string, which wins over the previous image.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*model.PaintingWithRating, error) {
	upd := model.PaintingUpdate{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
	}
	if in.Image != nil && *in.Image != "" {
		upd.Image = in.Image
	}
	if in.Featured != nil {
		b := *in.Featured == "true"
		upd.Featured = &b
	}
	if in.Rating != nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(*in.Rating), 64); err == nil {
			upd.Rating = &v
		}
	}
	if in.File != nil {
		ref, err := s.saveUpload(ctx, in.File)
		if err != nil {
			return nil, err
		}
		upd.Image = &ref
	}
	p, err := s.paintings.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	agg, err := s.ratings.For(ctx, *p)
	if err != nil {
		return nil, err
	}
	return &model.PaintingWithRating{Painting: *p, AvgRating: agg.AvgRating, RatingCount: agg.RatingCount}, nil
}

// Delete removes a painting.  Repeating the call for the same id keeps
// returning ErrPaintingNotFound.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.paintings.Delete(ctx, id)
}

// Rate records one rater's value for a painting and returns the fresh
// aggregate.  The rater id is an opaque caller-supplied string; the value
// is stored as-is.
func (s *Service) Rate(ctx context.Context, paintingID int64, raterID string, value float64) (model.RatingAggregate, error) {
	p, err := s.paintings.Get(ctx, paintingID)
	if err != nil {
		return model.RatingAggregate{}, err
	}
	if err := s.ratings.Record(ctx, model.Rating{PaintingID: paintingID, RaterID: raterID, Value: value}); err != nil {
		return model.RatingAggregate{}, err
	}
	return s.ratings.For(ctx, *p)
}

// saveUpload validates the upload and persists it under a generated name.
func (s *Service) saveUpload(ctx context.Context, up *Upload) (string, error) {
	ext := strings.ToLower(filepath.Ext(up.Filename))
	if !allowedExt[ext] {
		return "", ErrUploadType
	}
	if up.Size > s.maxUpload {
		return "", ErrUploadTooLarge
	}
	name := fmt.Sprintf("upload-%d%s", time.Now().UnixMilli(), ext)
	return s.blobs.Save(ctx, name, up.Content)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// parseSeed parses the seed rating field, falling back to 4 like the
// catalog defaults.
func parseSeed(v string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || f == 0 {
		return 4
	}
	return f
}

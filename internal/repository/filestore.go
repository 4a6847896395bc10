package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/artfusion/gallery-api/internal/model"
)

// FileStore keeps the whole catalog in one JSON array document and visitor
// ratings in a sibling document.  Every mutation reads the full document,
// applies the change and rewrites the file.  A mutex serializes those
// read-modify-write cycles so two concurrent admin requests cannot lose an
// update; the lock is scoped to this process, which matches the
// single-process deployment the file driver is meant for.
//
// Id assignment is max(current ids)+1, recomputed from the current set on
// every insert rather than kept as a counter.  Deleting the highest id and
// inserting again therefore reuses that id.
type FileStore struct {
	path        string // paintings document
	ratingsPath string // ratings document
	mu          sync.Mutex
}

// NewFileStore returns a store backed by the given document paths.  The
// files do not have to exist yet; a missing document reads as empty.
func NewFileStore(path, ratingsPath string) *FileStore {
	return &FileStore{path: path, ratingsPath: ratingsPath}
}

func (s *FileStore) List(ctx context.Context) ([]model.Painting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readPaintings()
}

func (s *FileStore) Get(ctx context.Context, id int64) (*model.Painting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.readPaintings()
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			p := items[i]
			return &p, nil
		}
	}
	return nil, ErrPaintingNotFound
}

func (s *FileStore) Insert(ctx context.Context, p *model.Painting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.readPaintings()
	if err != nil {
		return err
	}
	var maxID int64
	for i := range items {
		if items[i].ID > maxID {
			maxID = items[i].ID
		}
	}
	p.ID = maxID + 1
	items = append(items, *p)
	return s.writeDoc(s.path, items)
}

func (s *FileStore) Update(ctx context.Context, id int64, upd model.PaintingUpdate) (*model.Painting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.readPaintings()
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID != id {
			continue
		}
		merge(&items[i], upd)
		if err := s.writeDoc(s.path, items); err != nil {
			return nil, err
		}
		p := items[i]
		return &p, nil
	}
	return nil, ErrPaintingNotFound
}

func (s *FileStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.readPaintings()
	if err != nil {
		return err
	}
	kept := items[:0]
	for i := range items {
		if items[i].ID != id {
			kept = append(kept, items[i])
		}
	}
	if len(kept) == len(items) {
		return ErrPaintingNotFound
	}
	return s.writeDoc(s.path, kept)
}

// Upsert stores a rating, replacing any previous value from the same rater
// for the same painting.
func (s *FileStore) Upsert(ctx context.Context, r model.Rating) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ratings, err := s.readRatings()
	if err != nil {
		return err
	}
	for i := range ratings {
		if ratings[i].PaintingID == r.PaintingID && ratings[i].RaterID == r.RaterID {
			ratings[i].Value = r.Value
			return s.writeDoc(s.ratingsPath, ratings)
		}
	}
	ratings = append(ratings, r)
	return s.writeDoc(s.ratingsPath, ratings)
}

func (s *FileStore) ListByPainting(ctx context.Context, paintingID int64) ([]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ratings, err := s.readRatings()
	if err != nil {
		return nil, err
	}
	var out []float64
	for i := range ratings {
		if ratings[i].PaintingID == paintingID {
			out = append(out, ratings[i].Value)
		}
	}
	return out, nil
}

func (s *FileStore) ListForPaintings(ctx context.Context, ids []int64) (map[int64][]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ratings, err := s.readRatings()
	if err != nil {
		return nil, err
	}
	want := make(map[int64]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make(map[int64][]float64)
	for i := range ratings {
		if want[ratings[i].PaintingID] {
			out[ratings[i].PaintingID] = append(out[ratings[i].PaintingID], ratings[i].Value)
		}
	}
	return out, nil
}

// merge applies the non-nil fields of upd onto p.
func merge(p *model.Painting, upd model.PaintingUpdate) {
	if upd.Title != nil {
		p.Title = *upd.Title
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.Image != nil {
		p.Image = *upd.Image
	}
	if upd.Category != nil {
		p.Category = *upd.Category
	}
	if upd.Featured != nil {
		p.Featured = *upd.Featured
	}
	if upd.Rating != nil {
		p.Rating = *upd.Rating
	}
}

func (s *FileStore) readPaintings() ([]model.Painting, error) {
	var items []model.Painting
	if err := readDoc(s.path, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *FileStore) readRatings() ([]model.Rating, error) {
	var ratings []model.Rating
	if err := readDoc(s.ratingsPath, &ratings); err != nil {
		return nil, err
	}
	return ratings, nil
}

func readDoc(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // missing document reads as empty
		}
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

func (s *FileStore) writeDoc(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

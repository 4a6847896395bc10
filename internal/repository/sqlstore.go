// This file implements the hosted-backend variant of the painting store on
// top of Postgres. Row-level inserts and updates replace the whole-document
// rewrites of the file store, so concurrency correctness is delegated to the
// database engine. Ratings live in their own table with a composite primary
// key on (painting_id, rater_id); the upsert rides ON CONFLICT.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/artfusion/gallery-api/internal/model"
)

// SQLStore encapsulates all painting and rating queries.  It depends on a
// sql.DB connection pool configured at startup.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore constructs a SQLStore with the provided DB handle.  This
// allows dependency injection of the database in tests and at startup.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) List(ctx context.Context) ([]model.Painting, error) {
	const q = `SELECT id, title, description, price, image, category, featured, seed_rating
	           FROM paintings ORDER BY created_at DESC, id DESC`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Painting
	for rows.Next() {
		var p model.Painting
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.Image, &p.Category, &p.Featured, &p.Rating); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLStore) Get(ctx context.Context, id int64) (*model.Painting, error) {
	const q = `SELECT id, title, description, price, image, category, featured, seed_rating
	           FROM paintings WHERE id = $1`
	var p model.Painting
	err := s.db.QueryRowContext(ctx, q, id).Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.Image, &p.Category, &p.Featured, &p.Rating)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaintingNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Insert persists a new painting; the database assigns the id.
func (s *SQLStore) Insert(ctx context.Context, p *model.Painting) error {
	const q = `INSERT INTO paintings (title, description, price, image, category, featured, seed_rating)
	           VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	return s.db.QueryRowContext(ctx, q, p.Title, p.Description, p.Price, p.Image, p.Category, p.Featured, p.Rating).Scan(&p.ID)
}

// Update applies a partial update in a single statement: nil fields arrive
// as SQL NULL and COALESCE keeps the stored value.
func (s *SQLStore) Update(ctx context.Context, id int64, upd model.PaintingUpdate) (*model.Painting, error) {
	const q = `UPDATE paintings SET
	             title       = COALESCE($2, title),
	             description = COALESCE($3, description),
	             price       = COALESCE($4, price),
	             image       = COALESCE($5, image),
	             category    = COALESCE($6, category),
	             featured    = COALESCE($7, featured),
	             seed_rating = COALESCE($8, seed_rating),
	             updated_at  = now()
	           WHERE id = $1
	           RETURNING id, title, description, price, image, category, featured, seed_rating`
	var p model.Painting
	err := s.db.QueryRowContext(ctx, q, id,
		upd.Title, upd.Description, upd.Price, upd.Image, upd.Category, upd.Featured, upd.Rating,
	).Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.Image, &p.Category, &p.Featured, &p.Rating)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaintingNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *SQLStore) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM paintings WHERE id = $1`
	res, err := s.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPaintingNotFound
	}
	return nil
}

// Upsert inserts or replaces the rating for one (painting, rater) pair.
func (s *SQLStore) Upsert(ctx context.Context, r model.Rating) error {
	const q = `INSERT INTO ratings (painting_id, rater_id, rating)
	           VALUES ($1, $2, $3)
	           ON CONFLICT (painting_id, rater_id)
	           DO UPDATE SET rating = EXCLUDED.rating, updated_at = now()`
	_, err := s.db.ExecContext(ctx, q, r.PaintingID, r.RaterID, r.Value)
	return err
}

func (s *SQLStore) ListByPainting(ctx context.Context, paintingID int64) ([]float64, error) {
	const q = `SELECT rating FROM ratings WHERE painting_id = $1`
	rows, err := s.db.QueryContext(ctx, q, paintingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []float64
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLStore) ListForPaintings(ctx context.Context, ids []int64) (map[int64][]float64, error) {
	out := make(map[int64][]float64)
	if len(ids) == 0 {
		return out, nil
	}
	const q = `SELECT painting_id, rating FROM ratings WHERE painting_id = ANY($1)`
	rows, err := s.db.QueryContext(ctx, q, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var v float64
		if err := rows.Scan(&id, &v); err != nil {
			return nil, err
		}
		out[id] = append(out[id], v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

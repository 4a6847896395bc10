// Package queue defines message payloads exchanged over the message broker.
package queue

// RatingSubmittedEvent is published after a visitor rating has been
// persisted. It carries the fresh aggregate so downstream consumers can
// log or feed analytics without querying the catalog store. The rater id
// is deliberately omitted: it is an opaque client token and has no value
// outside the upsert key.
type RatingSubmittedEvent struct {
	PaintingID  int64   `json:"painting_id"`
	Rating      float64 `json:"rating"`
	AvgRating   float64 `json:"avg_rating"`
	RatingCount int     `json:"rating_count"`
	SubmittedAt string  `json:"submitted_at"`
}

package model

// Rating is one rater's score for one painting.  RaterID is an opaque
// identifier generated by the client and stored in its local storage; the
// server only relies on it being stable per caller.  At most one Rating
// exists per (PaintingID, RaterID) pair — re-rating replaces the old value.
type Rating struct {
	PaintingID int64   `json:"painting_id"`
	RaterID    string  `json:"rater_id"`
	Value      float64 `json:"rating"`
}

// RatingAggregate is the (average, count) pair attached to a painting.
type RatingAggregate struct {
	AvgRating   float64 `json:"avg_rating"`
	RatingCount int     `json:"rating_count"`
}

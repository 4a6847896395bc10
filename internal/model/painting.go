package model

// Painting represents one artwork in the catalog.  The same struct is used
// by both backing stores: in the file store it is one element of the JSON
// array document, in the SQL store it maps onto a row of the `paintings`
// table.  Price is deliberately a free-form string ("Contact for a
// personalized quote" is a valid value), and Rating is the static seed used
// when no visitor ratings exist yet.
//
// Fields:
//  ID          – unique identifier assigned by the store on insert.
//  Title       – display title, defaults to "Untitled".
//  Description – free text, may be empty.
//  Price       – free-form price string.
//  Image       – path or URL of the artwork image, may be empty.
//  Category    – informal category such as "Landscape" or "Abstract".
//  Featured    – whether the painting is shown in the featured section.
//  Rating      – seed rating used as the average until someone rates.
type Painting struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       string  `json:"price"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Featured    bool    `json:"featured"`
	Rating      float64 `json:"rating"`
}

// PaintingUpdate carries a partial update.  Nil fields are left untouched by
// the store, so a request that only sends a title does not clobber the rest
// of the record.
type PaintingUpdate struct {
	Title       *string
	Description *string
	Price       *string
	Image       *string
	Category    *string
	Featured    *bool
	Rating      *float64
}

// PaintingWithRating is the public read shape: the stored painting plus the
// aggregate computed from visitor ratings at read time.
type PaintingWithRating struct {
	Painting
	AvgRating   float64 `json:"avg_rating"`
	RatingCount int     `json:"rating_count"`
}

package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/artfusion/gallery-api/internal/catalog"
	"github.com/artfusion/gallery-api/internal/model"
	"github.com/artfusion/gallery-api/internal/queue"
	"github.com/artfusion/gallery-api/internal/repository"
)

// RatingPublisher forwards a rating event to the message broker.  A nil
// publisher disables events; failures are logged and never surface to the
// caller, the rating itself is already persisted at that point.
type RatingPublisher func(ctx context.Context, ev queue.RatingSubmittedEvent) error

// PublicHandler serves the routes that need no authentication: the gallery
// list and rating submission.
type PublicHandler struct {
	Catalog *catalog.Service
	Events  RatingPublisher
}

func NewPublicHandler(svc *catalog.Service, events RatingPublisher) *PublicHandler {
	return &PublicHandler{Catalog: svc, Events: events}
}

// List handles GET /paintings and returns every painting with its rating
// aggregate attached.
func (h *PublicHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Catalog.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	if items == nil {
		items = []model.PaintingWithRating{} // empty catalog serializes as []
	}
	return c.JSON(http.StatusOK, items)
}

type rateReq struct {
	RaterID string  `json:"rater_id"`
	Rating  float64 `json:"rating"`
}

// Rate handles POST /paintings/:id/rating.  Any caller may rate; the rater
// id is an opaque client-generated string and re-rating by the same rater
// replaces the previous value.
func (h *PublicHandler) Rate(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req rateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.RaterID = strings.TrimSpace(req.RaterID)
	if req.RaterID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rater_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	agg, err := h.Catalog.Rate(ctx, id, req.RaterID, req.Rating)
	if err != nil {
		if errors.Is(err, repository.ErrPaintingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Painting not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	if h.Events != nil {
		_ = h.Events(ctx, queue.RatingSubmittedEvent{
			PaintingID:  id,
			Rating:      req.Rating,
			AvgRating:   agg.AvgRating,
			RatingCount: agg.RatingCount,
			SubmittedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, agg)
}

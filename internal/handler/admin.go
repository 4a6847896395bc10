package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/artfusion/gallery-api/internal/catalog"
	"github.com/artfusion/gallery-api/internal/repository"
)

// AdminHandler implements the protected catalog mutations.  All three
// routes sit behind the AdminAuth middleware; the handlers themselves only
// parse the multipart form and map service errors onto HTTP statuses.
type AdminHandler struct {
	Catalog *catalog.Service
}

func NewAdminHandler(svc *catalog.Service) *AdminHandler {
	return &AdminHandler{Catalog: svc}
}

// Create handles POST /admin/paintings.  Fields arrive as form values with
// an optional "image" file part; omitted fields get the catalog defaults.
func (h *AdminHandler) Create(c echo.Context) error {
	in := catalog.CreateInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Price:       c.FormValue("price"),
		Image:       c.FormValue("image"),
		Category:    c.FormValue("category"),
		Featured:    c.FormValue("featured"),
		Rating:      c.FormValue("rating"),
	}
	file, cleanup, err := formUpload(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "read upload failed"})
	}
	defer cleanup()
	in.File = file

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	created, err := h.Catalog.Create(ctx, in)
	if err != nil {
		return uploadOrStoreError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /admin/paintings/:id.  Only fields present in the
// request overwrite stored values; absent fields are left untouched.
func (h *AdminHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	in := catalog.UpdateInput{
		Title:       formLookup(c, "title"),
		Description: formLookup(c, "description"),
		Price:       formLookup(c, "price"),
		Image:       formLookup(c, "image"),
		Category:    formLookup(c, "category"),
		Featured:    formLookup(c, "featured"),
		Rating:      formLookup(c, "rating"),
	}
	file, cleanup, err := formUpload(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "read upload failed"})
	}
	defer cleanup()
	in.File = file

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	updated, err := h.Catalog.Update(ctx, id, in)
	if err != nil {
		if errors.Is(err, repository.ErrPaintingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Painting not found"})
		}
		return uploadOrStoreError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /admin/paintings/:id.  A second delete of the same
// id reports not found rather than silent success.
func (h *AdminHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Catalog.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPaintingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Painting not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// formUpload extracts the optional "image" file part.  The returned cleanup
// closes the part and is safe to call when no file was sent.
func formUpload(c echo.Context) (*catalog.Upload, func(), error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, func() {}, nil // no file attached
	}
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, err
	}
	up := &catalog.Upload{Filename: fh.Filename, Size: fh.Size, Content: f}
	return up, func() { _ = f.Close() }, nil
}

// formLookup reports whether a form field was present at all, so updates
// can distinguish "clear this field" from "leave it alone".
func formLookup(c echo.Context, key string) *string {
	if form, err := c.MultipartForm(); err == nil {
		if vs, ok := form.Value[key]; ok && len(vs) > 0 {
			v := vs[0]
			return &v
		}
		return nil
	}
	if err := c.Request().ParseForm(); err == nil {
		if vs, ok := c.Request().PostForm[key]; ok && len(vs) > 0 {
			v := vs[0]
			return &v
		}
	}
	return nil
}

func uploadOrStoreError(c echo.Context, err error) error {
	if errors.Is(err, catalog.ErrUploadType) || errors.Is(err, catalog.ErrUploadTooLarge) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
}

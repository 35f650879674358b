package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/superheromanager/hero-service/internal/core/ports"
	"github.com/superheromanager/hero-service/internal/images"
	"github.com/superheromanager/hero-service/internal/infrastructure/storage"
)

// HeroHandler handles HTTP requests for hero operations.
type HeroHandler struct {
	service  ports.HeroService
	store    *storage.LocalStore
	resolver images.Resolver
}

func NewHeroHandler(service ports.HeroService, store *storage.LocalStore, resolver images.Resolver) *HeroHandler {
	return &HeroHandler{service: service, store: store, resolver: resolver}
}

// List handles GET /api/heroes.
//
// @Summary      List heroes
// @Tags         heroes
// @Produce      json
// @Param        search    query  string  false  "Substring match over nom or alias (case-insensitive)"
// @Param        universe  query  string  false  "Exact universe filter (Marvel, DC, Autre); 'all' disables it"
// @Param        sort      query  string  false  "Sort order: newest (default), name, oldest"
// @Success      200  {object}  envelope
// @Router       /heroes [get]
func (h *HeroHandler) List(c echo.Context) error {
	heroes, err := h.service.List(c.Request().Context(), ports.ListHeroesFilter{
		Search:   c.QueryParam("search"),
		Universe: c.QueryParam("universe"),
		Sort:     c.QueryParam("sort"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, envelope{
		Success: true,
		Data:    toHeroResponses(heroes, h.resolver),
		Count:   countOf(len(heroes)),
	})
}

// Get handles GET /api/heroes/:id.
//
// @Summary      Get a hero by id
// @Tags         heroes
// @Produce      json
// @Param        id  path  string  true  "Hero id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /heroes/{id} [get]
func (h *HeroHandler) Get(c echo.Context) error {
	hero, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, envelope{
		Success: true,
		Data:    toHeroResponse(hero, h.resolver),
	})
}

// Create handles POST /api/heroes. Accepts JSON or multipart form data with
// an optional single "image" file (image/* only, 5 MiB max).
//
// @Summary      Create a hero
// @Tags         heroes
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  createHeroRequest  true  "Hero fields"
// @Success      201  {object}  envelope
// @Failure      400  {object}  envelope
// @Failure      401  {object}  envelope
// @Failure      403  {object}  envelope
// @Router       /heroes [post]
func (h *HeroHandler) Create(c echo.Context) error {
	var req createHeroRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	imagePath, err := h.saveUpload(c)
	if err != nil {
		return err
	}

	hero, err := h.service.Create(c.Request().Context(), toCreateInput(req, imagePath))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, envelope{
		Success: true,
		Message: "hero created",
		Data:    toHeroResponse(hero, h.resolver),
	})
}

// Update handles PUT /api/heroes/:id. Partial: only supplied fields change.
//
// @Summary      Update a hero
// @Tags         heroes
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string             true  "Hero id"
// @Param        body  body  updateHeroRequest  true  "Fields to change"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /heroes/{id} [put]
func (h *HeroHandler) Update(c echo.Context) error {
	var req updateHeroRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	imagePath, err := h.saveUpload(c)
	if err != nil {
		return err
	}

	hero, err := h.service.Update(c.Request().Context(), c.Param("id"), toUpdateInput(req, imagePath))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, envelope{
		Success: true,
		Message: "hero updated",
		Data:    toHeroResponse(hero, h.resolver),
	})
}

// Delete handles DELETE /api/heroes/:id. Admin only (enforced by RBAC).
//
// @Summary      Delete a hero
// @Tags         heroes
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Hero id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /heroes/{id} [delete]
func (h *HeroHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, envelope{
		Success: true,
		Message: "hero deleted",
	})
}

// saveUpload stores the optional "image" multipart file and returns its
// public path, or "" when the request carries no upload.
func (h *HeroHandler) saveUpload(c echo.Context) (string, error) {
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		return "", nil
	}

	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid image upload")
	}

	return h.store.Save(fh, "image")
}

package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/models"
	"github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/repo/taxonomy"
	pkgmdw "github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/server/middleware"
	"github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/usecase"
)

type Controller interface {
	CreateSession(c echo.Context) error
	GetSession(c echo.Context) error
	LoadMore(c echo.Context) error
	RetrySession(c echo.Context) error
	UpdateFilters(c echo.Context) error
	DeleteSession(c echo.Context) error
	GetCategories(c echo.Context) error
	GetRecommendations(c echo.Context) error
	Health(c echo.Context) error
}

type controller struct {
	sessions    usecase.SessionManager
	recommender usecase.Recommender
	taxonomy    *taxonomy.Taxonomy
}

func NewHandler(sessions usecase.SessionManager, recommender usecase.Recommender, tax *taxonomy.Taxonomy) Controller {
	return &controller{
		sessions:    sessions,
		recommender: recommender,
		taxonomy:    tax,
	}
}

type CreateSessionRequest struct {
	Query    string   `json:"query" validate:"required"`
	PageSize int      `json:"page_size" validate:"omitempty,gt=0,lte=100"`
	Sources  []string `json:"sources" validate:"omitempty,dive,marketplace"`
	Category string   `json:"category"`
	PriceMin *float64 `json:"price_min" validate:"omitempty,gte=0"`
	PriceMax *float64 `json:"price_max" validate:"omitempty,gte=0"`
	Sort     string   `json:"sort" validate:"omitempty,sortmode"`
}

func (h *controller) CreateSession(c echo.Context) error {
	var req CreateSessionRequest
	if err := pkgmdw.BindAndValidate(c, &req); err != nil {
		return err
	}

	params := usecase.SessionParams{
		Query:    req.Query,
		PageSize: req.PageSize,
		Filters:  models.DefaultFilterState(),
		Sort:     models.SortMode(req.Sort),
	}
	// an explicitly empty source list is honored, absence means all
	if req.Sources != nil {
		sources, err := parseMarketplaces(req.Sources)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		params.Filters.EnabledSources = sources
	}
	params.Filters.PriceMin = req.PriceMin
	params.Filters.PriceMax = req.PriceMax
	if req.Category != "" {
		params.Filters.Category = req.Category
	}

	ctx := c.Request().Context()
	managed, snap, err := h.sessions.Create(ctx, params)
	if err != nil {
		return loadFailure(err, snap)
	}

	c.Set("session_id", managed.Session.ID())
	return c.JSON(http.StatusCreated, snap)
}

type SessionIDRequest struct {
	ID string `param:"id" validate:"required"`
}

func (h *controller) GetSession(c echo.Context) error {
	var req SessionIDRequest
	if err := pkgmdw.BindAndValidate(c, &req); err != nil {
		return err
	}
	c.Set("session_id", req.ID)

	managed, err := h.sessions.Get(req.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, managed.Session.Snapshot())
}

// LoadMoreResponse reports whether the scroll signal actually started a
// round; a debounced or redundant signal comes back with triggered=false
// and the unchanged session.
type LoadMoreResponse struct {
	Triggered bool                   `json:"triggered"`
	Session   models.SessionSnapshot `json:"session"`
}

func (h *controller) LoadMore(c echo.Context) error {
	var req SessionIDRequest
	if err := pkgmdw.BindAndValidate(c, &req); err != nil {
		return err
	}
	c.Set("session_id", req.ID)

	managed, err := h.sessions.Get(req.ID)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	snap, triggered, err := managed.Driver.NearEnd(ctx)
	if err != nil {
		return loadFailure(err, snap)
	}
	return c.JSON(http.StatusOK, LoadMoreResponse{Triggered: triggered, Session: snap})
}

func (h *controller) RetrySession(c echo.Context) error {
	var req SessionIDRequest
	if err := pkgmdw.BindAndValidate(c, &req); err != nil {
		return err
	}
	c.Set("session_id", req.ID)

	managed, err := h.sessions.Get(req.ID)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	snap, err := managed.Driver.Retry(ctx)
	if err != nil {
		return loadFailure(err, snap)
	}
	return c.JSON(http.StatusOK, snap)
}

type UpdateFiltersRequest struct {
	ID       string             `param:"id" validate:"required"`
	Price    *models.PriceRange `json:"price"`
	Sources  *[]string          `json:"sources" validate:"omitempty,dive,marketplace"`
	Category *string            `json:"category"`
	Sort     *string            `json:"sort" validate:"omitempty,sortmode"`
}

func (h *controller) UpdateFilters(c echo.Context) error {
	var req UpdateFiltersRequest
	if err := pkgmdw.BindAndValidate(c, &req); err != nil {
		return err
	}
	c.Set("session_id", req.ID)

	managed, err := h.sessions.Get(req.ID)
	if err != nil {
		return err
	}

	patch := models.FilterPatch{
		Price:    req.Price,
		Category: req.Category,
	}
	if req.Sources != nil {
		sources, err := parseMarketplaces(*req.Sources)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		patch.Sources = &sources
	}

	snap := managed.Session.UpdateFilters(patch)
	if req.Sort != nil {
		// validation already vetted the value; empty clears the sort
		snap = managed.Session.UpdateSort(models.SortMode(*req.Sort))
	}
	return c.JSON(http.StatusOK, snap)
}

func (h *controller) DeleteSession(c echo.Context) error {
	var req SessionIDRequest
	if err := pkgmdw.BindAndValidate(c, &req); err != nil {
		return err
	}
	c.Set("session_id", req.ID)

	if !h.sessions.Delete(req.ID) {
		return models.ErrSessionNotFound
	}
	return c.NoContent(http.StatusNoContent)
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

func (h *controller) GetCategories(c echo.Context) error {
	categories := append([]string{models.CategoryAll}, h.taxonomy.Categories()...)
	return c.JSON(http.StatusOK, CategoriesResponse{Categories: categories})
}

type RecommendationsRequest struct {
	ProductID string  `query:"product_id"`
	Title     string  `query:"title" validate:"required_without=Category"`
	Category  string  `query:"category" validate:"required_without=Title"`
	Price     float64 `query:"price" validate:"omitempty,gte=0"`
}

type RecommendationsResponse struct {
	Recommendations []models.Product `json:"recommendations"`
}

func (h *controller) GetRecommendations(c echo.Context) error {
	var req RecommendationsRequest
	if err := pkgmdw.BindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	similar, err := h.recommender.SimilarProducts(ctx, usecase.RecommendationSubject{
		ProductID:    req.ProductID,
		Title:        req.Title,
		Category:     req.Category,
		CurrentPrice: req.Price,
	})
	if err != nil {
		return err
	}
	if similar == nil {
		similar = []models.Product{}
	}
	return c.JSON(http.StatusOK, RecommendationsResponse{Recommendations: similar})
}

func (h *controller) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "dealhunt-aggregator",
	})
}

func parseMarketplaces(names []string) ([]models.Marketplace, error) {
	out := make([]models.Marketplace, 0, len(names))
	for _, name := range names {
		m, err := models.ParseMarketplace(name)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// loadFailure wraps a total fetch failure so the response still carries
// the session snapshot; everything else passes through untouched.
func loadFailure(err error, snap models.SessionSnapshot) error {
	if errors.Is(err, models.ErrAllSourcesFailed) {
		return &pkgmdw.ResponseError{
			Status:       http.StatusBadGateway,
			Err:          err,
			ErrorCode:    "all_sources_failed",
			ErrorMessage: err.Error(),
			ErrorData:    snap,
		}
	}
	return err
}

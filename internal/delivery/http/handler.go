package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/Kullendorff/systembolaget/internal/domain"
	"github.com/Kullendorff/systembolaget/internal/usecase"
	"go.uber.org/zap"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	search      *usecase.SearchService
	interpreter domain.Interpreter
	profile     *domain.UserProfile
	profiler    *usecase.ProfileBuilder
	logEntries  []domain.TastingEntry
	logger      *zap.Logger
}

// NewHandler creates a new HTTP handler. interpreter may be nil when the
// ask endpoint is disabled; profile may be nil when no tasting log was
// loaded.
func NewHandler(
	search *usecase.SearchService,
	interpreter domain.Interpreter,
	profile *domain.UserProfile,
	profiler *usecase.ProfileBuilder,
	logEntries []domain.TastingEntry,
	logger *zap.Logger,
) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		search:      search,
		interpreter: interpreter,
		profile:     profile,
		profiler:    profiler,
		logEntries:  logEntries,
		logger:      logger,
	}
}

// SearchRequest is the body of the structured search endpoint. The filter
// fields are inlined; zero values impose no constraint.
type SearchRequest struct {
	domain.FilterParams
	Limit           int  `json:"limit,omitempty"`
	DescendingPrice bool `json:"descendingPrice,omitempty"`
	// Personalize applies the loaded taste profile when one exists.
	Personalize bool `json:"personalize,omitempty"`
}

// AskRequest is the body of the free-text search endpoint.
type AskRequest struct {
	Question    string `json:"question" binding:"required"`
	Limit       int    `json:"limit,omitempty"`
	Personalize bool   `json:"personalize,omitempty"`
}

// LookupRequest is the body of the name lookup endpoint.
type LookupRequest struct {
	Name string `json:"name" binding:"required"`
}

// ResultItem is a product together with the caller's own tasting history
// when the record could be reconciled against the loaded log.
type ResultItem struct {
	domain.Product
	UserRating float64 `json:"userRating,omitempty"`
	UserNotes  string  `json:"userNotes,omitempty"`
}

// HealthCheck returns the health status of the API together with the
// catalog snapshot summary. An empty catalog is degraded but serving.
func (h *Handler) HealthCheck(c *gin.Context) {
	stats := h.search.Stats()
	status := "healthy"
	if stats.Total == 0 {
		status = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  status,
		"service": "systembolaget-wine-api",
		"catalog": stats,
	})
}

// Search handles structured filter search requests
func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	results := h.search.FilterAndRank(&req.FilterParams, h.profileFor(req.Personalize), domain.SearchOptions{
		Limit:           req.Limit,
		DescendingPrice: req.DescendingPrice,
	})

	c.JSON(http.StatusOK, gin.H{
		"count":   len(results),
		"results": h.annotate(results),
	})
}

// Ask handles free-text search requests by interpreting the question into
// filter parameters first.
func (h *Handler) Ask(c *gin.Context) {
	if h.interpreter == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "query interpreter is not configured"})
		return
	}

	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	params, err := h.interpreter.Interpret(c.Request.Context(), req.Question)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "question must not be empty"})
			return
		}
		h.logger.Error("interpreter failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not interpret the question"})
		return
	}

	// A stated ceiling without a floor means the caller wants the best
	// bottle near the ceiling, not the cheapest match.
	descending := params.MaxPrice > 0 && params.MinPrice == 0

	results := h.search.FilterAndRank(params, h.profileFor(req.Personalize), domain.SearchOptions{
		Limit:           req.Limit,
		DescendingPrice: descending,
	})

	c.JSON(http.StatusOK, gin.H{
		"interpreted": params,
		"count":       len(results),
		"results":     h.annotate(results),
	})
}

// Lookup handles specific-product name queries through the fuzzy matcher
func (h *Handler) Lookup(c *gin.Context) {
	var req LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	results := h.search.LookupByName(req.Name)
	c.JSON(http.StatusOK, gin.H{
		"count":   len(results),
		"exact":   h.search.Matcher().IsExactMatch(req.Name, results),
		"results": h.annotate(results),
	})
}

// Details returns a single product by its article id
func (h *Handler) Details(c *gin.Context) {
	product, err := h.search.Details(c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	c.JSON(http.StatusOK, h.annotateOne(*product))
}

// Recommend returns food-pairing recommendations for a dish
func (h *Handler) Recommend(c *gin.Context) {
	dish := c.Query("dish")
	if dish == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dish query parameter is required"})
		return
	}

	maxPrice, _ := strconv.ParseFloat(c.Query("maxPrice"), 64)
	limit, _ := strconv.Atoi(c.Query("limit"))

	results := h.search.Recommend(dish, c.Query("style"), maxPrice, limit)
	c.JSON(http.StatusOK, gin.H{
		"dish":    dish,
		"count":   len(results),
		"results": h.annotate(results),
	})
}

// profileFor returns the loaded profile when personalization was requested
// and a profile exists, nil otherwise.
func (h *Handler) profileFor(personalize bool) *domain.UserProfile {
	if !personalize {
		return nil
	}
	return h.profile
}

// annotate attaches the user's own rating and notes to results that match
// a tasting-log entry.
func (h *Handler) annotate(products []domain.Product) []ResultItem {
	items := make([]ResultItem, 0, len(products))
	for i := range products {
		items = append(items, h.annotateOne(products[i]))
	}
	return items
}

func (h *Handler) annotateOne(p domain.Product) ResultItem {
	item := ResultItem{Product: p}
	if h.profiler == nil || len(h.logEntries) == 0 {
		return item
	}
	if entry := h.profiler.FindLogMatch(&p, h.logEntries); entry != nil {
		item.UserRating = entry.Rating
		item.UserNotes = entry.Notes
	}
	return item
}

package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Ayash-Bera/dorkgen/internal/dorking"
	"github.com/Ayash-Bera/dorkgen/internal/models"
	"github.com/Ayash-Bera/dorkgen/internal/services"
	"github.com/Ayash-Bera/dorkgen/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type SearchHandler struct {
	searchService *services.SearchService
	logger        *logrus.Logger
}

func NewSearchHandler(searchService *services.SearchService, logger *logrus.Logger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		logger:        logger,
	}
}

// HandleSearch accepts {query, site} and responds with the flat result
// object the web frontend renders.
func (h *SearchHandler) HandleSearch(c *gin.Context) {
	startTime := time.Now()

	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Warn("Invalid search request")
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	result, ok := h.generate(c, req.Query, req.Site)
	if !ok {
		return
	}

	h.logger.WithFields(logrus.Fields{
		"intents":       len(result.DetectedIntents),
		"response_time": time.Since(startTime).Milliseconds(),
	}).Debug("Search completed")

	c.JSON(http.StatusOK, result)
}

// HandleDork is the query-string variant of HandleSearch.
func (h *SearchHandler) HandleDork(c *gin.Context) {
	result, ok := h.generate(c, c.Query("q"), c.Query("site"))
	if !ok {
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Dork generated", result)
}

// HandleAnalyze returns the detected intents only.
func (h *SearchHandler) HandleAnalyze(c *gin.Context) {
	query, ok := h.validQuery(c, c.Query("q"))
	if !ok {
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Intents detected", gin.H{
		"query":   query,
		"intents": h.searchService.Analyze(query),
	})
}

// HandleSearchSuggestions returns search suggestions
func (h *SearchHandler) HandleSearchSuggestions(c *gin.Context) {
	query, ok := h.validQuery(c, c.Query("q"))
	if !ok {
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Suggestions retrieved", h.searchService.Suggest(query))
}

// HandleTaxonomy lists every operator fragment by category.
func (h *SearchHandler) HandleTaxonomy(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Taxonomy retrieved", h.searchService.Taxonomy())
}

func (h *SearchHandler) generate(c *gin.Context, rawQuery, site string) (*dorking.Result, bool) {
	query, ok := h.validQuery(c, rawQuery)
	if !ok {
		return nil, false
	}

	h.logger.WithFields(logrus.Fields{
		"query":      query,
		"site":       site,
		"request_id": c.GetString(utils.RequestIDKey),
	}).Info("Processing search request")

	return h.searchService.Generate(c.Request.Context(), query, site), true
}

// validQuery rejects bad queries and otherwise returns query unchanged.
func (h *SearchHandler) validQuery(c *gin.Context, query string) (string, bool) {
	err := h.searchService.ValidateQuery(query)
	switch {
	case errors.Is(err, services.ErrQueryRequired):
		utils.ErrorResponse(c, http.StatusBadRequest, "Query cannot be empty", err)
		return "", false
	case errors.Is(err, services.ErrQueryTooLong):
		utils.ErrorResponse(c, http.StatusBadRequest, "Query too long", err)
		return "", false
	case err != nil:
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query", err)
		return "", false
	}
	return query, true
}

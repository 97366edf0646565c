package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Ayash-Bera/dorkgen/internal/dorking"
	"github.com/Ayash-Bera/dorkgen/internal/metrics"
	"github.com/sirupsen/logrus"
)

var (
	ErrQueryRequired = errors.New("query is required")
	ErrQueryTooLong  = errors.New("query is too long")
)

// ResultCache stores generated results. Implementations must treat every
// failure as a miss from the caller's point of view.
type ResultCache interface {
	Get(ctx context.Context, query, site string) (*dorking.Result, error)
	Set(ctx context.Context, query, site string, result *dorking.Result) error
}

type SearchService struct {
	engine    *dorking.Engine
	cache     ResultCache
	maxLength int
	logger    *logrus.Logger
}

// NewSearchService wires the engine with an optional cache; pass a nil
// interface to disable caching.
func NewSearchService(engine *dorking.Engine, cache ResultCache, maxLength int, logger *logrus.Logger) *SearchService {
	return &SearchService{
		engine:    engine,
		cache:     cache,
		maxLength: maxLength,
		logger:    logger,
	}
}

// ValidateQuery enforces presence and length. Whitespace-only queries
// count as empty; the query itself is never rewritten.
func (s *SearchService) ValidateQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return ErrQueryRequired
	}
	if s.maxLength > 0 && len(query) > s.maxLength {
		return fmt.Errorf("%w (max %d characters)", ErrQueryTooLong, s.maxLength)
	}
	return nil
}

// Generate builds the dork, URL, intents and suggestions for query.
func (s *SearchService) Generate(ctx context.Context, query, site string) *dorking.Result {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, query, site)
		if err == nil {
			metrics.CacheHits.Inc()
			s.logger.WithField("query", query).Debug("Dork served from cache")
			return cached
		}
		metrics.CacheMisses.Inc()
		s.logger.WithError(err).Debug("Cache miss - generating dork")
	}

	result := s.engine.Generate(query, site)
	s.record(result)

	s.logger.WithFields(logrus.Fields{
		"query":      query,
		"site":       site,
		"dork_query": result.DorkQuery,
		"intents":    len(result.DetectedIntents),
	}).Info("Dork generated")

	if s.cache != nil {
		if err := s.cache.Set(ctx, query, site, &result); err != nil {
			s.logger.WithError(err).Warn("Failed to cache dork result")
		}
	}

	return &result
}

func (s *SearchService) Analyze(query string) []dorking.Intent {
	return s.engine.Analyze(query)
}

func (s *SearchService) Suggest(query string) []string {
	return s.engine.Suggest(query)
}

func (s *SearchService) Taxonomy() dorking.Taxonomy {
	return s.engine.Taxonomy()
}

func (s *SearchService) record(result dorking.Result) {
	metrics.DorksGenerated.Inc()
	for _, intent := range result.DetectedIntents {
		metrics.IntentsTotal.WithLabelValues(intent.Category, intent.Subcategory).Inc()
	}
}

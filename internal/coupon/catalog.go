package coupon

import (
	"context"
	"fmt"
	"sync"
	"time"

	"bakery-kart/internal/pricing"

	"github.com/rs/zerolog"
)

// CatalogConfig holds configuration for building the promotion catalogue.
type CatalogConfig struct {
	// FilePaths is the list of promotion files to load. Later files override
	// promotions with the same code from earlier ones. When empty the
	// built-in promotions are used.
	FilePaths []string
}

// NewCatalog loads every configured file concurrently and merges the result.
// Promotions whose code has no pricing rule are skipped.
func NewCatalog(ctx context.Context, cfg CatalogConfig, loader Loader, logger zerolog.Logger) (Catalog, error) {
	logger = logger.With().Str("component", "promotion-catalog").Logger()

	if len(cfg.FilePaths) == 0 {
		logger.Info().Msg("no promotion files configured, using built-in promotions")
		return mergeCatalogs(logger, []Catalog{defaultCatalog()}), nil
	}

	logger.Info().
		Int("file_count", len(cfg.FilePaths)).
		Msg("loading promotion catalogue")

	type loadResult struct {
		index   int
		catalog Catalog
		err     error
	}

	resultChan := make(chan loadResult, len(cfg.FilePaths))
	var wg sync.WaitGroup

	for i, filePath := range cfg.FilePaths {
		wg.Add(1)
		go func(index int, path string) {
			defer wg.Done()

			catalog, err := loader.Load(ctx, path)
			resultChan <- loadResult{index: index, catalog: catalog, err: err}
		}(i, filePath)
	}

	wg.Wait()
	close(resultChan)

	// Merge order must follow configuration order, not completion order.
	catalogs := make([]Catalog, len(cfg.FilePaths))
	for result := range resultChan {
		if result.err != nil {
			logger.Error().
				Err(result.err).
				Str("file", cfg.FilePaths[result.index]).
				Msg("failed to load promotion file")
			return nil, fmt.Errorf("failed to load promotion file %s: %w", cfg.FilePaths[result.index], result.err)
		}
		catalogs[result.index] = result.catalog
	}

	merged := mergeCatalogs(logger, catalogs)

	logger.Info().
		Int("total_promotions", merged.Size()).
		Msg("promotion catalogue loaded successfully")

	return merged, nil
}

func mergeCatalogs(logger zerolog.Logger, catalogs []Catalog) Catalog {
	merged := NewMapCatalog(len(pricing.Codes())).(*mapCatalog)

	for _, c := range catalogs {
		for _, p := range c.All() {
			kind, ok := pricing.KindOf(p.Code)
			if !ok {
				logger.Warn().
					Str("code", p.Code).
					Msg("skipping promotion without a pricing rule")
				continue
			}
			p.Kind = kind
			merged.Add(p)
		}
	}

	return merged
}

// DefaultPromotions returns the built-in promotion catalogue entries.
func DefaultPromotions() []Promotion {
	return []Promotion{
		{
			Code:        pricing.CodeBirthday,
			Title:       "Birthday treat",
			Description: "10% off your order during your birthday month.",
		},
		{
			Code:        pricing.CodeFreeDelivery,
			Title:       "Free delivery",
			Description: "Free delivery on orders of 500 baht or more.",
		},
		{
			Code:        pricing.CodeWelcome,
			Title:       "Welcome discount",
			Description: "50 baht off orders of 300 baht or more.",
		},
		{
			Code:        pricing.CodeCupcakeBundle,
			Title:       "Cupcakes buy 3 get 1",
			Description: "Every fourth cupcake is free.",
		},
	}
}

func defaultCatalog() Catalog {
	c := NewMapCatalog(4).(*mapCatalog)
	for _, p := range DefaultPromotions() {
		c.Add(p)
	}
	return c
}

// ActivePromotions filters all to the promotions still valid at now.
func ActivePromotions(c Catalog, now time.Time) []Promotion {
	all := c.All()
	active := make([]Promotion, 0, len(all))
	for _, p := range all {
		if p.Active(now) {
			active = append(active, p)
		}
	}
	return active
}

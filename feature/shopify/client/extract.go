package client

import (
	"context"
	"time"

	"shopsync/feature/shopify/models"

	"go.uber.org/zap"
)

// FullInventory extracts every variant's quantity breakdown and location
// for one store, one fact per (variant, location) pair.
func (c *Client) FullInventory(ctx context.Context, store string) ([]models.InventoryFact, error) {
	facts, err := c.paginate(ctx, store, fullInventoryQuery, nil, collectInventoryFacts(store))
	if err != nil {
		return nil, err
	}
	c.logger.Info("Full inventory extracted",
		zap.String("store", store),
		zap.Int("facts", len(facts)))
	return facts, nil
}

// IncrementalInventory extracts variants updated within the given UTC
// window. Shopify's search filter is day-granular, so only the window start
// date is sent; the window itself is computed by the caller.
func (c *Client) IncrementalInventory(ctx context.Context, store string, fromUTC, toUTC time.Time) ([]models.InventoryFact, error) {
	filter := "updated_at:>=" + fromUTC.UTC().Format("2006-01-02")

	facts, err := c.paginate(ctx, store, incrementalInventoryQuery, map[string]any{"query": filter}, collectInventoryFacts(store))
	if err != nil {
		return nil, err
	}
	c.logger.Info("Incremental inventory extracted",
		zap.String("store", store),
		zap.String("filter", filter),
		zap.Int("facts", len(facts)))
	return facts, nil
}

// Prices extracts identifiers and price fields only, one fact per variant.
func (c *Client) Prices(ctx context.Context, store string) ([]models.InventoryFact, error) {
	collect := func(page *productConnection, facts []models.InventoryFact) []models.InventoryFact {
		for i := range page.Edges {
			product := &page.Edges[i].Node
			for j := range product.Variants.Edges {
				facts = append(facts, mapPriceFact(store, product, &product.Variants.Edges[j].Node))
			}
		}
		return facts
	}

	facts, err := c.paginate(ctx, store, priceQuery, nil, collect)
	if err != nil {
		return nil, err
	}
	c.logger.Info("Prices extracted",
		zap.String("store", store),
		zap.Int("facts", len(facts)))
	return facts, nil
}

// collectInventoryFacts fans out full/incremental pages into one fact per
// (variant, location) pair.
func collectInventoryFacts(store string) func(*productConnection, []models.InventoryFact) []models.InventoryFact {
	return func(page *productConnection, facts []models.InventoryFact) []models.InventoryFact {
		for i := range page.Edges {
			product := &page.Edges[i].Node
			for j := range product.Variants.Edges {
				variant := &product.Variants.Edges[j].Node
				for k := range variant.InventoryItem.InventoryLevels.Edges {
					level := &variant.InventoryItem.InventoryLevels.Edges[k].Node
					facts = append(facts, mapFact(store, product, variant, level))
				}
			}
		}
		return facts
	}
}

// paginate drives the cursor loop for one store and query shape. The loop
// stops on hasNextPage=false, or on context cancellation between pages, in
// which case the facts collected so far are returned as a partial result.
// After each consumed page it pauses a fixed interval to stay under the
// API throughput ceiling.
func (c *Client) paginate(
	ctx context.Context,
	store, query string,
	extraVars map[string]any,
	collect func(*productConnection, []models.InventoryFact) []models.InventoryFact,
) ([]models.InventoryFact, error) {
	var facts []models.InventoryFact
	cursor := ""

	for {
		variables := make(map[string]any, len(extraVars)+1)
		for k, v := range extraVars {
			variables[k] = v
		}
		if cursor != "" {
			variables["cursor"] = cursor
		}

		resp, err := c.execute(ctx, store, query, variables)
		if err != nil {
			return nil, err
		}

		page := &resp.Data.Products
		facts = collect(page, facts)

		c.logger.Debug("Page consumed",
			zap.String("store", store),
			zap.Int("facts_so_far", len(facts)),
			zap.Bool("has_next", page.PageInfo.HasNextPage))

		if !page.PageInfo.HasNextPage {
			return facts, nil
		}
		cursor = page.PageInfo.EndCursor

		// Rate-limit pause; a cancellation here ends the loop with the
		// partial result rather than discarding it.
		if err := c.sleep(ctx, c.pageDelay()); err != nil {
			c.logger.Info("Extraction cancelled, returning partial result",
				zap.String("store", store),
				zap.Int("facts", len(facts)))
			return facts, nil
		}
	}
}

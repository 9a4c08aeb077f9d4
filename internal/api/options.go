package api

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// SeasonOptions holds the lookups that stage and penalty forms offer as
// select options.
type SeasonOptions struct {
	Categories []Category
	Stages     []Stage
}

// LoadSeasonOptions fetches categories and stages of a season in parallel.
// The first failure is returned and cancels the other request.
func (c *Client) LoadSeasonOptions(ctx context.Context, seasonID string) (*SeasonOptions, error) {
	g, ctx := errgroup.WithContext(ctx)
	var opts SeasonOptions

	g.Go(func() error {
		items, err := c.listCategories(ctx, seasonID)
		if err != nil {
			return fmt.Errorf("categories: %w", err)
		}
		opts.Categories = items
		return nil
	})
	g.Go(func() error {
		items, err := c.listStages(ctx, seasonID)
		if err != nil {
			return fmt.Errorf("stages: %w", err)
		}
		opts.Stages = items
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &opts, nil
}

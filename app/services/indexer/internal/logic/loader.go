package logic

import (
	"context"
	"errors"
	"fmt"

	"GogDB/app/dal/catalog"

	"golang.org/x/sync/errgroup"
)

// productLoad is everything the catalog holds for one id.
type productLoad struct {
	id              int64
	product         *catalog.Product
	changelog       []catalog.ChangeRecord
	productAbsent   bool
	changelogAbsent bool
}

// loadProduct reads one id. Absent records are reported on the result, every other
// catalog error is returned.
func loadProduct(ctx context.Context, store catalog.Store, id int64) (productLoad, error) {
	load := productLoad{id: id}

	prod, err := store.LoadProduct(ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		load.productAbsent = true
		return load, nil
	}
	if err != nil {
		return load, fmt.Errorf("load product %d: %w", id, err)
	}
	load.product = prod

	changelog, err := store.LoadChangelog(ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		load.changelogAbsent = true
		return load, nil
	}
	if err != nil {
		return load, fmt.Errorf("load changelog %d: %w", id, err)
	}
	load.changelog = changelog
	return load, nil
}

type loadResult struct {
	load productLoad
	err  error
}

// forEachLoaded calls fn with the loaded records of every id, in the order of ids.
// With prefetch > 1 up to prefetch ids are loaded ahead of fn; fn itself always runs
// on a single goroutine. The first error stops everything and is returned.
func forEachLoaded(ctx context.Context, store catalog.Store, ids []int64, prefetch int,
	fn func(ctx context.Context, load productLoad) error) error {
	if prefetch <= 1 {
		for _, id := range ids {
			load, err := loadProduct(ctx, store, id)
			if err != nil {
				return err
			}
			if err := fn(ctx, load); err != nil {
				return err
			}
		}
		return nil
	}

	group, groupCtx := errgroup.WithContext(ctx)
	pending := make(chan chan loadResult, prefetch)

	group.Go(func() error {
		defer close(pending)
		for _, id := range ids {
			slot := make(chan loadResult, 1)
			select {
			case pending <- slot:
			case <-groupCtx.Done():
				return nil
			}
			group.Go(func() error {
				load, err := loadProduct(groupCtx, store, id)
				slot <- loadResult{load: load, err: err}
				return err
			})
		}
		return nil
	})

	group.Go(func() error {
		for slot := range pending {
			var res loadResult
			select {
			case res = <-slot:
			case <-groupCtx.Done():
				return groupCtx.Err()
			}
			if res.err != nil {
				return res.err
			}
			if err := fn(groupCtx, res.load); err != nil {
				return err
			}
		}
		return nil
	})

	return group.Wait()
}

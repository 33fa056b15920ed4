package catalog

import (
	"context"
	"errors"
	"fmt"
)

type ImportStats struct {
	Ids        int
	Products   int
	Changelogs int
}

// Import copies every id listed by src into dst. Ids without a product record are
// kept in the id set so both stores list the same catalog.
func Import(ctx context.Context, src Store, dst *PebbleStore) (ImportStats, error) {
	var stats ImportStats

	ids, err := src.ListIds(ctx)
	if err != nil {
		return stats, fmt.Errorf("list source ids: %w", err)
	}
	if err := dst.AddIds(ids...); err != nil {
		return stats, fmt.Errorf("write ids: %w", err)
	}
	stats.Ids = len(ids)

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		prod, err := src.LoadProduct(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return stats, fmt.Errorf("load product %d: %w", id, err)
		}
		if err := dst.PutProduct(prod); err != nil {
			return stats, fmt.Errorf("write product %d: %w", id, err)
		}
		stats.Products++

		changelog, err := src.LoadChangelog(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return stats, fmt.Errorf("load changelog %d: %w", id, err)
		}
		if err := dst.PutChangelog(id, changelog); err != nil {
			return stats, fmt.Errorf("write changelog %d: %w", id, err)
		}
		stats.Changelogs++
	}
	return stats, nil
}

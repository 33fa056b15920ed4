package indexdb

import (
	"context"
	"fmt"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var schemaStatements = []string{
	`CREATE TABLE products (
		product_id INTEGER,
		title TEXT,
		image_logo TEXT,
		product_type TEXT,
		comp_systems TEXT,
		sale_rank INTEGER,
		search_title TEXT
	)`,
	`CREATE TABLE changelog (
		product_id INTEGER,
		product_title TEXT,
		timestamp REAL,
		action TEXT,
		category TEXT,
		dl_type TEXT,
		bonus_type TEXT,
		property_name TEXT,
		serialized_record TEXT
	)`,
	`CREATE TABLE changelog_summary (
		product_id INTEGER,
		product_title TEXT,
		timestamp REAL,
		categories TEXT
	)`,
	"CREATE INDEX idx_products_sale_rank ON products (sale_rank)",
	"CREATE INDEX idx_changelog_timestamp ON changelog (timestamp)",
	"CREATE INDEX idx_summary_timestamp ON changelog_summary (timestamp)",
}

// SchemaExists reports whether the index tables have been created.
func SchemaExists(ctx context.Context, conn sqlx.SqlConn) (bool, error) {
	var count int64
	query := "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?"
	if err := conn.QueryRowCtx(ctx, &count, query, productsTableName); err != nil {
		return false, fmt.Errorf("inspect index schema: %w", err)
	}
	return count > 0, nil
}

// EnsureSchema creates the tables and their indexes when the index is new.
// An existing schema is left as it is.
func EnsureSchema(ctx context.Context, conn sqlx.SqlConn) error {
	exists, err := SchemaExists(ctx, conn)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return conn.TransactCtx(ctx, func(ctx context.Context, session sqlx.Session) error {
		for _, stmt := range schemaStatements {
			if _, err := session.ExecCtx(ctx, stmt); err != nil {
				return fmt.Errorf("create index schema: %w", err)
			}
		}
		return nil
	})
}

package indexdb

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

func newTestConn(t *testing.T) sqlx.SqlConn {
	t.Helper()
	conn, err := NewConn(Conf{Path: filepath.Join(t.TempDir(), "index", "index.db"), DisableStmtLog: true})
	require.NoError(t, err)
	require.NoError(t, EnsureSchema(context.Background(), conn))
	return conn
}

func TestNewConnRejectsEmptyPath(t *testing.T) {
	_, err := NewConn(Conf{})
	assert.ErrorIs(t, err, ErrInvalidParam)
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	ctx := context.Background()
	conn, err := NewConn(Conf{Path: filepath.Join(t.TempDir(), "index.db")})
	require.NoError(t, err)

	exists, err := SchemaExists(ctx, conn)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, EnsureSchema(ctx, conn))
	products := NewProductsModel(conn)
	require.NoError(t, conn.TransactCtx(ctx, func(ctx context.Context, session sqlx.Session) error {
		_, err := products.InsertWithSession(ctx, session, &Products{ProductId: 1, Title: "Kept"})
		return err
	}))

	require.NoError(t, EnsureSchema(ctx, conn))

	got, err := products.FindOne(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Kept", got.Title)

	var indexes []string
	require.NoError(t, conn.QueryRowsCtx(ctx, &indexes,
		"select name from sqlite_master where type = 'index' and name like 'idx_%' order by name"))
	assert.Equal(t, []string{"idx_changelog_timestamp", "idx_products_sale_rank", "idx_summary_timestamp"}, indexes)
}

func TestProductsModel(t *testing.T) {
	ctx := context.Background()
	conn := newTestConn(t)
	m := NewProductsModel(conn)

	rows := []*Products{
		{ProductId: 1, Title: "Witcher 3", CompSystems: "w", SaleRank: 2, SearchTitle: "witcher3"},
		{ProductId: 2, Title: "Witcher 2", CompSystems: "lmw", SaleRank: 3, SearchTitle: "witcher2"},
		{ProductId: 3, Title: "Gothic", CompSystems: "w", SaleRank: 0, SearchTitle: "gothic"},
	}
	require.NoError(t, conn.TransactCtx(ctx, func(ctx context.Context, session sqlx.Session) error {
		for _, row := range rows {
			if _, err := m.InsertWithSession(ctx, session, row); err != nil {
				return err
			}
		}
		count, err := m.CountWithSession(ctx, session)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
		return nil
	}))

	found, err := m.Search(ctx, "witcher", 10, 0)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, int64(2), found[0].ProductId, "higher sale rank first")
	assert.Equal(t, int64(1), found[1].ProductId)

	total, err := m.CountSearch(ctx, "witcher")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	all, err := m.Search(ctx, "", 2, 1)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, []int64{1, 3}, []int64{all[0].ProductId, all[1].ProductId})

	none, err := m.Search(ctx, "100%_", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = m.Search(ctx, "", 0, 0)
	assert.ErrorIs(t, err, ErrInvalidParam)

	_, err = m.FindOne(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChangelogModels(t *testing.T) {
	ctx := context.Background()
	conn := newTestConn(t)
	changelog := NewChangelogModel(conn)
	summaries := NewChangelogSummaryModel(conn)

	require.NoError(t, conn.TransactCtx(ctx, func(ctx context.Context, session sqlx.Session) error {
		entries := []*Changelog{
			{ProductId: 1, ProductTitle: "A", Timestamp: 100, Action: "add", Category: "download",
				DlType: sql.NullString{String: "bonus", Valid: true}, BonusType: sql.NullString{String: "soundtrack", Valid: true},
				SerializedRecord: `{}`},
			{ProductId: 1, ProductTitle: "A", Timestamp: 200.5, Action: "change", Category: "property",
				PropertyName: sql.NullString{String: "title", Valid: true}, SerializedRecord: `{}`},
			{ProductId: 2, ProductTitle: "B", Timestamp: 150, Action: "remove", Category: "build", SerializedRecord: `{}`},
		}
		for _, entry := range entries {
			if _, err := changelog.InsertWithSession(ctx, session, entry); err != nil {
				return err
			}
		}
		_, err := summaries.InsertWithSession(ctx, session, &ChangelogSummary{ProductId: 1, ProductTitle: "A", Timestamp: 100, Categories: "download"})
		return err
	}))

	recent, err := changelog.ListRecent(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, 200.5, recent[0].Timestamp)
	assert.Equal(t, "title", recent[0].PropertyName.String)
	assert.False(t, recent[0].DlType.Valid)
	assert.False(t, recent[1].PropertyName.Valid)

	byProduct, err := changelog.ListByProduct(ctx, 1, 10, 0)
	require.NoError(t, err)
	require.Len(t, byProduct, 2)
	assert.Equal(t, "soundtrack", byProduct[1].BonusType.String)

	sums, err := summaries.ListRecent(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, sums, 1)
	assert.Equal(t, "download", sums[0].Categories)
}

func TestDeleteAllRollsBackWithTransaction(t *testing.T) {
	ctx := context.Background()
	conn := newTestConn(t)
	m := NewProductsModel(conn)

	require.NoError(t, conn.TransactCtx(ctx, func(ctx context.Context, session sqlx.Session) error {
		_, err := m.InsertWithSession(ctx, session, &Products{ProductId: 5, Title: "Survivor"})
		return err
	}))

	boom := errors.New("boom")
	err := conn.TransactCtx(ctx, func(ctx context.Context, session sqlx.Session) error {
		if err := m.DeleteAllWithSession(ctx, session); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := m.FindOne(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "Survivor", got.Title)
}

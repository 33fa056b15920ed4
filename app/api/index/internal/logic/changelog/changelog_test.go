package changelog

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"GogDB/app/api/index/internal/config"
	"GogDB/app/api/index/internal/svc"
	"GogDB/app/api/index/internal/types"
	"GogDB/app/dal/indexdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

func newTestContext(t *testing.T) *svc.ServiceContext {
	t.Helper()
	ctx := context.Background()
	conn, err := indexdb.NewConn(indexdb.Conf{Path: filepath.Join(t.TempDir(), "index.db"), DisableStmtLog: true})
	require.NoError(t, err)
	require.NoError(t, indexdb.EnsureSchema(ctx, conn))

	sc := svc.NewIndexContext(config.Config{}, conn)
	entries := []indexdb.Changelog{
		{ProductId: 1, ProductTitle: "One", Timestamp: 100, Action: "add", Category: "download",
			DlType: sql.NullString{String: "bonus", Valid: true}, BonusType: sql.NullString{String: "manual", Valid: true},
			SerializedRecord: `{"category":"download"}`},
		{ProductId: 1, ProductTitle: "One", Timestamp: 100, Action: "change", Category: "property",
			PropertyName: sql.NullString{String: "title", Valid: true}, SerializedRecord: `{"category":"property"}`},
		{ProductId: 2, ProductTitle: "Two", Timestamp: 200, Action: "remove", Category: "build",
			SerializedRecord: `{"category":"build"}`},
	}
	summaries := []indexdb.ChangelogSummary{
		{ProductId: 1, ProductTitle: "One", Timestamp: 100, Categories: "download,property"},
		{ProductId: 2, ProductTitle: "Two", Timestamp: 200, Categories: "build"},
	}
	require.NoError(t, conn.TransactCtx(ctx, func(ctx context.Context, session sqlx.Session) error {
		for i := range entries {
			if _, err := sc.ChangelogModel.InsertWithSession(ctx, session, &entries[i]); err != nil {
				return err
			}
		}
		for i := range summaries {
			if _, err := sc.ChangelogSummaryModel.InsertWithSession(ctx, session, &summaries[i]); err != nil {
				return err
			}
		}
		return nil
	}))
	return sc
}

func TestListChangelogNewestFirst(t *testing.T) {
	sc := newTestContext(t)

	resp, err := NewListChangelogLogic(context.Background(), sc).ListChangelog(&types.ListChangelogRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 3)
	assert.Equal(t, int64(2), resp.Entries[0].ProductId)
	assert.Equal(t, "build", resp.Entries[0].Category)
	assert.Empty(t, resp.Entries[0].DlType)
	assert.JSONEq(t, `{"category":"build"}`, string(resp.Entries[0].Record))
}

func TestListProductChangelog(t *testing.T) {
	sc := newTestContext(t)
	l := NewListProductChangelogLogic(context.Background(), sc)

	resp, err := l.ListProductChangelog(&types.ListProductChangelogRequest{ProductId: 1})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 2)
	for _, entry := range resp.Entries {
		assert.Equal(t, "One", entry.ProductTitle)
		switch entry.Category {
		case "download":
			assert.Equal(t, "manual", entry.BonusType)
		case "property":
			assert.Equal(t, "title", entry.PropertyName)
		}
	}

	resp, err = l.ListProductChangelog(&types.ListProductChangelogRequest{ProductId: 42})
	require.NoError(t, err)
	assert.Empty(t, resp.Entries)

	_, err = l.ListProductChangelog(&types.ListProductChangelogRequest{})
	assert.Error(t, err)
}

func TestListSummaries(t *testing.T) {
	sc := newTestContext(t)

	resp, err := NewListSummariesLogic(context.Background(), sc).ListSummaries(&types.ListSummariesRequest{
		PageRequest: types.PageRequest{Limit: 10},
	})
	require.NoError(t, err)
	require.Len(t, resp.Summaries, 2)
	assert.Equal(t, []string{"build"}, resp.Summaries[0].Categories)
	assert.Equal(t, []string{"download", "property"}, resp.Summaries[1].Categories)
}

package logic

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"GogDB/app/dal/catalog"
	"GogDB/app/dal/indexdb"
	"GogDB/app/services/indexer/internal/config"
	"GogDB/app/services/indexer/internal/svc"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, store catalog.Store, prefetch int) (*svc.ServiceContext, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index.db")
	conn, err := indexdb.NewConn(indexdb.Conf{Path: path, DisableStmtLog: true})
	require.NoError(t, err)

	c := config.Config{Rebuild: config.RebuildConf{Prefetch: prefetch}}
	return svc.NewIndexContext(c, store, conn), path
}

// seedCatalog lists ids 1, 2 and 3 where 2 has no product record.
func seedCatalog() *catalog.MemoryStore {
	store := catalog.NewMemoryStore()
	store.AddIds(1, 2, 3)
	store.PutProduct(&catalog.Product{Id: 1, Title: "Alpha", CompSystems: []string{"linux", "windows"}, RankBestselling: rank(1)})
	store.PutProduct(&catalog.Product{Id: 3, Title: "Gamma", CompSystems: []string{"osx"}, RankBestselling: rank(2)})
	store.PutChangelog(1, []catalog.ChangeRecord{
		{
			Timestamp: changedAt,
			Action:    catalog.ActionChange,
			Category:  catalog.CategoryProperty,
			PropertyRecord: &catalog.PropertyChange{
				PropertyName: "title",
				ValueOld:     []byte(`"Alfa"`),
				ValueNew:     []byte(`"Alpha"`),
			},
		},
		{
			Timestamp: changedAt,
			Action:    catalog.ActionAdd,
			Category:  catalog.CategoryDownload,
			DownloadRecord: &catalog.DownloadChange{
				DlType:     "bonus",
				DlNewBonus: &catalog.BonusDownload{BonusType: "soundtrack"},
			},
		},
	})
	return store
}

type rowDump struct {
	Products  []indexdb.Products
	Changelog []indexdb.Changelog
	Summaries []indexdb.ChangelogSummary
}

func dumpIndex(t *testing.T, sc *svc.ServiceContext) rowDump {
	t.Helper()
	ctx := context.Background()
	var dump rowDump
	require.NoError(t, sc.IndexConn.QueryRowsCtx(ctx, &dump.Products,
		"select * from products order by product_id"))
	require.NoError(t, sc.IndexConn.QueryRowsCtx(ctx, &dump.Changelog,
		"select * from changelog order by product_id, timestamp, category"))
	require.NoError(t, sc.IndexConn.QueryRowsCtx(ctx, &dump.Summaries,
		"select * from changelog_summary order by product_id, timestamp"))
	return dump
}

func TestRebuildEndToEnd(t *testing.T) {
	sc, _ := newTestContext(t, seedCatalog(), 1)

	outcome, err := NewRebuildLogic(context.Background(), sc).Run("test")
	require.NoError(t, err)
	assert.NotZero(t, outcome.RunId)
	assert.Equal(t, "test", outcome.Reason)
	assert.Equal(t, RebuildStats{Products: 2, Changelog: 2, Summaries: 1, SkippedProducts: 1, MissingChangelogs: 1}, outcome.Stats)

	dump := dumpIndex(t, sc)
	require.Len(t, dump.Products, 2)
	assert.Equal(t, int64(1), dump.Products[0].ProductId)
	assert.Equal(t, int64(3), dump.Products[0].SaleRank)
	assert.Equal(t, "lw", dump.Products[0].CompSystems)
	assert.Equal(t, "alpha", dump.Products[0].SearchTitle)
	assert.Equal(t, int64(3), dump.Products[1].ProductId)
	assert.Equal(t, int64(2), dump.Products[1].SaleRank)

	require.Len(t, dump.Changelog, 2)
	for _, row := range dump.Changelog {
		assert.Equal(t, int64(1), row.ProductId)
		assert.Equal(t, "Alpha", row.ProductTitle)
	}

	require.Len(t, dump.Summaries, 1)
	assert.Equal(t, "download,property", dump.Summaries[0].Categories)
	assert.Equal(t, float64(changedAt.Unix()), dump.Summaries[0].Timestamp)
}

func TestRebuildSkipsAbsentProduct(t *testing.T) {
	store := seedCatalog()
	// A changelog without a product must not leak into any table.
	store.PutChangelog(2, []catalog.ChangeRecord{{Timestamp: changedAt, Category: catalog.CategoryBuild}})
	sc, _ := newTestContext(t, store, 1)

	_, err := NewRebuildLogic(context.Background(), sc).Rebuild([]int64{1, 2, 3})
	require.NoError(t, err)

	dump := dumpIndex(t, sc)
	for _, row := range dump.Products {
		assert.NotEqual(t, int64(2), row.ProductId)
	}
	for _, row := range dump.Changelog {
		assert.NotEqual(t, int64(2), row.ProductId)
	}
	for _, row := range dump.Summaries {
		assert.NotEqual(t, int64(2), row.ProductId)
	}
}

func TestRebuildIsIdempotent(t *testing.T) {
	sc, _ := newTestContext(t, seedCatalog(), 1)
	logic := NewRebuildLogic(context.Background(), sc)

	_, err := logic.Rebuild([]int64{1, 2, 3})
	require.NoError(t, err)
	first := dumpIndex(t, sc)

	_, err = logic.Rebuild([]int64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, first, dumpIndex(t, sc))
}

func TestRebuildEmptyCatalog(t *testing.T) {
	sc, _ := newTestContext(t, catalog.NewMemoryStore(), 1)

	stats, err := NewRebuildLogic(context.Background(), sc).Rebuild(nil)
	require.NoError(t, err)
	assert.Equal(t, RebuildStats{}, *stats)

	exists, err := indexdb.SchemaExists(context.Background(), sc.IndexConn)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRebuildWithPrefetchKeepsOrder(t *testing.T) {
	store := catalog.NewMemoryStore()
	ids := make([]int64, 0, 40)
	for id := int64(1); id <= 40; id++ {
		ids = append(ids, id)
		if id%7 == 0 {
			continue
		}
		store.PutProduct(&catalog.Product{Id: id, Title: "P", RankBestselling: rank(id)})
	}
	store.AddIds(ids...)

	slow := &delayedStore{Store: store, delay: map[int64]time.Duration{1: 20 * time.Millisecond, 5: 10 * time.Millisecond}}
	sc, _ := newTestContext(t, slow, 8)

	var seen []int64
	err := forEachLoaded(context.Background(), slow, ids, 8, func(ctx context.Context, load productLoad) error {
		seen = append(seen, load.id)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, ids, seen)

	stats, err := NewRebuildLogic(context.Background(), sc).Rebuild(ids)
	require.NoError(t, err)
	assert.Equal(t, int64(35), stats.Products)
	assert.Equal(t, int64(5), stats.SkippedProducts)

	dump := dumpIndex(t, sc)
	assert.Equal(t, int64(40), dump.Products[0].SaleRank)
}

func TestRebuildRollsBackOnLoaderError(t *testing.T) {
	for _, prefetch := range []int{1, 4} {
		store := seedCatalog()
		sc, path := newTestContext(t, store, prefetch)
		logic := NewRebuildLogic(context.Background(), sc)

		_, err := logic.Rebuild([]int64{1, 2, 3})
		require.NoError(t, err)

		broken := &failingStore{Store: store, failId: 3, err: errors.New("disk read failed")}
		sc.Catalog = broken
		store.PutProduct(&catalog.Product{Id: 1, Title: "Renamed"})

		_, err = NewRebuildLogic(context.Background(), sc).Rebuild([]int64{1, 2, 3})
		require.Error(t, err)
		assert.ErrorIs(t, err, broken.err)

		assertIndexUntouched(t, path)
	}
}

func TestRebuildRollsBackOnInsertError(t *testing.T) {
	store := seedCatalog()
	sc, path := newTestContext(t, store, 1)
	ctx := context.Background()

	_, err := NewRebuildLogic(ctx, sc).Rebuild([]int64{1, 2, 3})
	require.NoError(t, err)

	_, err = sc.IndexConn.ExecCtx(ctx, `create trigger fail_changelog before insert on changelog
		begin select raise(abort, 'disk full'); end`)
	require.NoError(t, err)

	store.PutProduct(&catalog.Product{Id: 1, Title: "Renamed"})
	_, err = NewRebuildLogic(ctx, sc).Rebuild([]int64{1, 2, 3})
	require.Error(t, err)

	assertIndexUntouched(t, path)
}

// assertIndexUntouched reads the file through a fresh handle and expects the rows of
// the seeded catalog.
func assertIndexUntouched(t *testing.T, path string) {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	rows, err := db.Query("select product_id, title from products order by product_id")
	require.NoError(t, err)
	defer rows.Close()

	titles := map[int64]string{}
	for rows.Next() {
		var (
			id    int64
			title string
		)
		require.NoError(t, rows.Scan(&id, &title))
		titles[id] = title
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, map[int64]string{1: "Alpha", 3: "Gamma"}, titles)

	var changelog int
	require.NoError(t, db.QueryRow("select count(*) from changelog").Scan(&changelog))
	assert.Equal(t, 2, changelog)
}

type failingStore struct {
	catalog.Store
	failId int64
	err    error
}

func (s *failingStore) LoadChangelog(ctx context.Context, id int64) ([]catalog.ChangeRecord, error) {
	if id == s.failId {
		return nil, s.err
	}
	return s.Store.LoadChangelog(ctx, id)
}

type delayedStore struct {
	catalog.Store
	mu    sync.Mutex
	delay map[int64]time.Duration
}

func (s *delayedStore) LoadProduct(ctx context.Context, id int64) (*catalog.Product, error) {
	s.mu.Lock()
	d := s.delay[id]
	s.mu.Unlock()
	if d > 0 {
		time.Sleep(d)
	}
	return s.Store.LoadProduct(ctx, id)
}

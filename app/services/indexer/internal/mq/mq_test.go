package mq

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"GogDB/app/common/consts/biz"
	"GogDB/app/common/tasks"
	"GogDB/app/dal/catalog"
	"GogDB/app/dal/indexdb"
	"GogDB/app/services/indexer/internal/config"
	"GogDB/app/services/indexer/internal/logic"
	"GogDB/app/services/indexer/internal/svc"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T) *svc.ServiceContext {
	t.Helper()
	conn, err := indexdb.NewConn(indexdb.Conf{Path: filepath.Join(t.TempDir(), "index.db"), DisableStmtLog: true})
	require.NoError(t, err)

	store := catalog.NewMemoryStore()
	store.AddIds(10)
	store.PutProduct(&catalog.Product{Id: 10, Title: "Ten"})
	return svc.NewIndexContext(config.Config{}, store, conn)
}

func TestIndexRebuiltEventJSON(t *testing.T) {
	started := time.Unix(1700000000, 0)
	evt := newIndexRebuiltEvent(&logic.RebuildOutcome{
		RunId:      42,
		Reason:     biz.RebuildReasonCli,
		Stats:      logic.RebuildStats{Products: 3, Changelog: 5, Summaries: 2},
		StartedAt:  started,
		FinishedAt: started.Add(time.Minute),
	})

	body, err := json.Marshal(evt)
	require.NoError(t, err)
	assert.JSONEq(t, `{"run_id":"42","reason":"cli","products":3,"changelog":5,"summaries":2,
		"started_at":1700000000,"finished_at":1700000060}`, string(body))
}

func TestRunRebuildWithoutKafka(t *testing.T) {
	sc := newTestContext(t)

	outcome, err := RunRebuild(context.Background(), sc, biz.RebuildReasonCli)
	require.NoError(t, err)
	assert.Equal(t, int64(1), outcome.Stats.Products)
}

func TestRebuildIndexHandler(t *testing.T) {
	sc := newTestContext(t)
	handler := newRebuildIndexHandler(sc)

	task, err := tasks.NewRebuildIndexTask(biz.RebuildReasonRequest, "ops")
	require.NoError(t, err)
	require.NoError(t, handler(context.Background(), task))

	count, err := sc.ProductsModel.CountSearch(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	err = handler(context.Background(), asynq.NewTask(biz.TaskRebuildIndex, []byte("{broken")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

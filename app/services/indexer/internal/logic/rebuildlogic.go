package logic

import (
	"context"
	"fmt"
	"time"

	"GogDB/app/common/snowflake"
	"GogDB/app/dal/indexdb"
	"GogDB/app/services/indexer/internal/metrics"
	"GogDB/app/services/indexer/internal/svc"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

type RebuildStats struct {
	Products  int64
	Changelog int64
	Summaries int64

	SkippedProducts   int64
	MissingChangelogs int64
	BonusConflicts    int64
}

type RebuildOutcome struct {
	RunId      int64
	Reason     string
	Stats      RebuildStats
	StartedAt  time.Time
	FinishedAt time.Time
}

type RebuildLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewRebuildLogic(ctx context.Context, svcCtx *svc.ServiceContext) *RebuildLogic {
	return &RebuildLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

// Run rebuilds the index from every id the catalog lists.
func (l *RebuildLogic) Run(reason string) (*RebuildOutcome, error) {
	outcome := &RebuildOutcome{
		RunId:     snowflake.NextRunID(),
		Reason:    reason,
		StartedAt: time.Now(),
	}
	l.Logger = l.Logger.WithFields(logx.Field("run_id", outcome.RunId), logx.Field("reason", reason))

	ids, err := l.svcCtx.Catalog.ListIds(l.ctx)
	if err != nil {
		metrics.RebuildRuns.WithLabelValues("failed").Inc()
		l.Errorw("list catalog ids failed", logx.Field("err", err))
		return nil, fmt.Errorf("list catalog ids: %w", err)
	}

	stats, err := l.Rebuild(ids)
	outcome.FinishedAt = time.Now()
	metrics.RebuildDuration.Observe(outcome.FinishedAt.Sub(outcome.StartedAt).Seconds())
	if err != nil {
		metrics.RebuildRuns.WithLabelValues("failed").Inc()
		l.Errorw("rebuild rolled back", logx.Field("err", err))
		return nil, err
	}
	outcome.Stats = *stats

	metrics.RebuildRuns.WithLabelValues("success").Inc()
	metrics.RebuildRows.WithLabelValues("products").Add(float64(stats.Products))
	metrics.RebuildRows.WithLabelValues("changelog").Add(float64(stats.Changelog))
	metrics.RebuildRows.WithLabelValues("changelog_summary").Add(float64(stats.Summaries))
	metrics.RebuildSkipped.WithLabelValues("product_absent").Add(float64(stats.SkippedProducts))
	metrics.RebuildSkipped.WithLabelValues("changelog_absent").Add(float64(stats.MissingChangelogs))
	metrics.BonusConflicts.Add(float64(stats.BonusConflicts))

	l.Infof("Indexed %d products, %d changelog entries, %d changelog summaries",
		stats.Products, stats.Changelog, stats.Summaries)
	return outcome, nil
}

// Rebuild replaces the whole index with the projection of ids in one transaction.
// On error nothing is committed and the previous contents stay readable.
func (l *RebuildLogic) Rebuild(ids []int64) (*RebuildStats, error) {
	if err := indexdb.EnsureSchema(l.ctx, l.svcCtx.IndexConn); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	l.Infow("rebuild state", logx.Field("state", "SCHEMA_READY"), logx.Field("ids", len(ids)))

	var stats RebuildStats
	err := l.svcCtx.IndexConn.TransactCtx(l.ctx, func(ctx context.Context, session sqlx.Session) error {
		stats = RebuildStats{}
		if err := l.truncate(ctx, session); err != nil {
			return err
		}
		l.Infow("rebuild state", logx.Field("state", "TRUNCATED"))

		var summaries []indexdb.ChangelogSummary
		total := int64(len(ids))
		err := forEachLoaded(ctx, l.svcCtx.Catalog, ids, l.svcCtx.Config.Rebuild.Prefetch,
			func(ctx context.Context, load productLoad) error {
				rows, err := l.indexProduct(ctx, session, load, total, &stats)
				summaries = append(summaries, rows...)
				return err
			})
		if err != nil {
			return err
		}

		l.Infow("rebuild state", logx.Field("state", "FLUSHING_SUMMARIES"), logx.Field("rows", len(summaries)))
		for i := range summaries {
			if _, err := l.svcCtx.ChangelogSummaryModel.InsertWithSession(ctx, session, &summaries[i]); err != nil {
				return fmt.Errorf("insert summary of product %d: %w", summaries[i].ProductId, err)
			}
			stats.Summaries++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.Infow("rebuild state", logx.Field("state", "COMMITTED"))
	return &stats, nil
}

func (l *RebuildLogic) truncate(ctx context.Context, session sqlx.Session) error {
	if err := l.svcCtx.ProductsModel.DeleteAllWithSession(ctx, session); err != nil {
		return fmt.Errorf("clear products: %w", err)
	}
	if err := l.svcCtx.ChangelogModel.DeleteAllWithSession(ctx, session); err != nil {
		return fmt.Errorf("clear changelog: %w", err)
	}
	if err := l.svcCtx.ChangelogSummaryModel.DeleteAllWithSession(ctx, session); err != nil {
		return fmt.Errorf("clear changelog summary: %w", err)
	}
	return nil
}

// indexProduct writes the product and changelog rows of one id and returns its
// summary rows, which are inserted after every product is done.
func (l *RebuildLogic) indexProduct(ctx context.Context, session sqlx.Session, load productLoad,
	total int64, stats *RebuildStats) ([]indexdb.ChangelogSummary, error) {
	if load.productAbsent {
		l.Infow("Skipped", logx.Field("product_id", load.id))
		stats.SkippedProducts++
		return nil, nil
	}

	prod := load.product
	l.Infow("Adding", logx.Field("product_id", prod.Id), logx.Field("title", prod.Title))

	row := ProjectProduct(prod, total)
	if _, err := l.svcCtx.ProductsModel.InsertWithSession(ctx, session, &row); err != nil {
		return nil, fmt.Errorf("insert product %d: %w", prod.Id, err)
	}
	stats.Products++

	if load.changelogAbsent {
		l.Infow("No changelog", logx.Field("product_id", prod.Id))
		stats.MissingChangelogs++
		return nil, nil
	}

	agg := newSummaryAggregator()
	for i := range load.changelog {
		rec := &load.changelog[i]
		if BonusTypeConflict(rec) {
			l.Sloww("bonus type changed, keeping old bonus type",
				logx.Field("product_id", prod.Id),
				logx.Field("old", rec.DownloadRecord.DlOldBonus.BonusType),
				logx.Field("new", rec.DownloadRecord.DlNewBonus.BonusType))
			stats.BonusConflicts++
		}

		entry, err := ProjectChangelog(prod, rec)
		if err != nil {
			return nil, fmt.Errorf("project changelog of product %d: %w", prod.Id, err)
		}
		if _, err := l.svcCtx.ChangelogModel.InsertWithSession(ctx, session, &entry); err != nil {
			return nil, fmt.Errorf("insert changelog of product %d: %w", prod.Id, err)
		}
		stats.Changelog++
		agg.Add(rec)
	}
	return agg.Rows(prod), nil
}

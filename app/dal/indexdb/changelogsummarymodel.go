package indexdb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/zeromicro/go-zero/core/stores/builder"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var (
	changelogSummaryFieldNames = builder.RawFieldNames(&ChangelogSummary{})
	changelogSummaryRows       = strings.Join(changelogSummaryFieldNames, ",")
)

var _ ChangelogSummaryModel = (*defaultChangelogSummaryModel)(nil)

type (
	ChangelogSummaryModel interface {
		InsertWithSession(ctx context.Context, session sqlx.Session, data *ChangelogSummary) (sql.Result, error)
		DeleteAllWithSession(ctx context.Context, session sqlx.Session) error
		CountWithSession(ctx context.Context, session sqlx.Session) (int64, error)
		ListRecent(ctx context.Context, limit, offset int64) ([]*ChangelogSummary, error)
	}

	defaultChangelogSummaryModel struct {
		conn  sqlx.SqlConn
		table string
	}

	ChangelogSummary struct {
		ProductId    int64   `db:"product_id"`
		ProductTitle string  `db:"product_title"`
		Timestamp    float64 `db:"timestamp"`
		Categories   string  `db:"categories"`
	}
)

func NewChangelogSummaryModel(conn sqlx.SqlConn) ChangelogSummaryModel {
	return &defaultChangelogSummaryModel{
		conn:  conn,
		table: "`" + changelogSummaryTableName + "`",
	}
}

func (m *defaultChangelogSummaryModel) InsertWithSession(ctx context.Context, session sqlx.Session, data *ChangelogSummary) (sql.Result, error) {
	if data == nil {
		return nil, ErrInvalidParam
	}
	query := fmt.Sprintf("insert into %s (%s) values (?, ?, ?, ?)", m.table, changelogSummaryRows)
	res, err := session.ExecCtx(ctx, query, data.ProductId, data.ProductTitle, data.Timestamp, data.Categories)
	if err != nil {
		return nil, err
	}
	if err := ensureRows(res); err != nil {
		return nil, err
	}
	return res, nil
}

func (m *defaultChangelogSummaryModel) DeleteAllWithSession(ctx context.Context, session sqlx.Session) error {
	return deleteAll(ctx, session, m.table)
}

func (m *defaultChangelogSummaryModel) CountWithSession(ctx context.Context, session sqlx.Session) (int64, error) {
	return countRows(ctx, session, m.table)
}

func (m *defaultChangelogSummaryModel) ListRecent(ctx context.Context, limit, offset int64) ([]*ChangelogSummary, error) {
	if limit <= 0 || offset < 0 {
		return nil, ErrInvalidParam
	}
	var resp []*ChangelogSummary
	query := fmt.Sprintf("select %s from %s order by `timestamp` desc, `product_id` limit ? offset ?", changelogSummaryRows, m.table)
	if err := m.conn.QueryRowsCtx(ctx, &resp, query, limit, offset); err != nil {
		return nil, err
	}
	return resp, nil
}

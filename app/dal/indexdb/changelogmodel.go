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
	changelogFieldNames = builder.RawFieldNames(&Changelog{})
	changelogRows       = strings.Join(changelogFieldNames, ",")
)

var _ ChangelogModel = (*defaultChangelogModel)(nil)

type (
	ChangelogModel interface {
		InsertWithSession(ctx context.Context, session sqlx.Session, data *Changelog) (sql.Result, error)
		DeleteAllWithSession(ctx context.Context, session sqlx.Session) error
		CountWithSession(ctx context.Context, session sqlx.Session) (int64, error)
		// ListRecent returns entries newest first.
		ListRecent(ctx context.Context, limit, offset int64) ([]*Changelog, error)
		ListByProduct(ctx context.Context, productId, limit, offset int64) ([]*Changelog, error)
	}

	defaultChangelogModel struct {
		conn  sqlx.SqlConn
		table string
	}

	// Changelog is one flattened change record. DlType and BonusType are set for
	// download changes, PropertyName for property changes.
	Changelog struct {
		ProductId        int64          `db:"product_id"`
		ProductTitle     string         `db:"product_title"`
		Timestamp        float64        `db:"timestamp"`
		Action           string         `db:"action"`
		Category         string         `db:"category"`
		DlType           sql.NullString `db:"dl_type"`
		BonusType        sql.NullString `db:"bonus_type"`
		PropertyName     sql.NullString `db:"property_name"`
		SerializedRecord string         `db:"serialized_record"`
	}
)

func NewChangelogModel(conn sqlx.SqlConn) ChangelogModel {
	return &defaultChangelogModel{
		conn:  conn,
		table: "`" + changelogTableName + "`",
	}
}

func (m *defaultChangelogModel) InsertWithSession(ctx context.Context, session sqlx.Session, data *Changelog) (sql.Result, error) {
	if data == nil {
		return nil, ErrInvalidParam
	}
	query := fmt.Sprintf("insert into %s (%s) values (?, ?, ?, ?, ?, ?, ?, ?, ?)", m.table, changelogRows)
	res, err := session.ExecCtx(ctx, query, data.ProductId, data.ProductTitle, data.Timestamp, data.Action,
		data.Category, data.DlType, data.BonusType, data.PropertyName, data.SerializedRecord)
	if err != nil {
		return nil, err
	}
	if err := ensureRows(res); err != nil {
		return nil, err
	}
	return res, nil
}

func (m *defaultChangelogModel) DeleteAllWithSession(ctx context.Context, session sqlx.Session) error {
	return deleteAll(ctx, session, m.table)
}

func (m *defaultChangelogModel) CountWithSession(ctx context.Context, session sqlx.Session) (int64, error) {
	return countRows(ctx, session, m.table)
}

func (m *defaultChangelogModel) ListRecent(ctx context.Context, limit, offset int64) ([]*Changelog, error) {
	if limit <= 0 || offset < 0 {
		return nil, ErrInvalidParam
	}
	var resp []*Changelog
	query := fmt.Sprintf("select %s from %s order by `timestamp` desc, `product_id` limit ? offset ?", changelogRows, m.table)
	if err := m.conn.QueryRowsCtx(ctx, &resp, query, limit, offset); err != nil {
		return nil, err
	}
	return resp, nil
}

func (m *defaultChangelogModel) ListByProduct(ctx context.Context, productId, limit, offset int64) ([]*Changelog, error) {
	if limit <= 0 || offset < 0 {
		return nil, ErrInvalidParam
	}
	var resp []*Changelog
	query := fmt.Sprintf("select %s from %s where `product_id` = ? order by `timestamp` desc limit ? offset ?", changelogRows, m.table)
	if err := m.conn.QueryRowsCtx(ctx, &resp, query, productId, limit, offset); err != nil {
		return nil, err
	}
	return resp, nil
}

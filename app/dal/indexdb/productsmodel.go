package indexdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/zeromicro/go-zero/core/stores/builder"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var (
	productsFieldNames = builder.RawFieldNames(&Products{})
	productsRows       = strings.Join(productsFieldNames, ",")
)

var _ ProductsModel = (*defaultProductsModel)(nil)

type (
	// ProductsModel serves the products table: session writes for the rebuild,
	// plain reads for the query API.
	ProductsModel interface {
		InsertWithSession(ctx context.Context, session sqlx.Session, data *Products) (sql.Result, error)
		DeleteAllWithSession(ctx context.Context, session sqlx.Session) error
		CountWithSession(ctx context.Context, session sqlx.Session) (int64, error)
		FindOne(ctx context.Context, productId int64) (*Products, error)
		// Search matches searchKey against search_title; an empty key matches everything.
		// Best sellers come first.
		Search(ctx context.Context, searchKey string, limit, offset int64) ([]*Products, error)
		CountSearch(ctx context.Context, searchKey string) (int64, error)
	}

	defaultProductsModel struct {
		conn  sqlx.SqlConn
		table string
	}

	Products struct {
		ProductId   int64  `db:"product_id"`
		Title       string `db:"title"`
		ImageLogo   string `db:"image_logo"`
		ProductType string `db:"product_type"`
		CompSystems string `db:"comp_systems"`
		SaleRank    int64  `db:"sale_rank"`
		SearchTitle string `db:"search_title"`
	}
)

func NewProductsModel(conn sqlx.SqlConn) ProductsModel {
	return &defaultProductsModel{
		conn:  conn,
		table: "`" + productsTableName + "`",
	}
}

func (m *defaultProductsModel) InsertWithSession(ctx context.Context, session sqlx.Session, data *Products) (sql.Result, error) {
	if data == nil {
		return nil, ErrInvalidParam
	}
	query := fmt.Sprintf("insert into %s (%s) values (?, ?, ?, ?, ?, ?, ?)", m.table, productsRows)
	res, err := session.ExecCtx(ctx, query, data.ProductId, data.Title, data.ImageLogo, data.ProductType,
		data.CompSystems, data.SaleRank, data.SearchTitle)
	if err != nil {
		return nil, err
	}
	if err := ensureRows(res); err != nil {
		return nil, err
	}
	return res, nil
}

func (m *defaultProductsModel) DeleteAllWithSession(ctx context.Context, session sqlx.Session) error {
	return deleteAll(ctx, session, m.table)
}

func (m *defaultProductsModel) CountWithSession(ctx context.Context, session sqlx.Session) (int64, error) {
	return countRows(ctx, session, m.table)
}

func (m *defaultProductsModel) FindOne(ctx context.Context, productId int64) (*Products, error) {
	var resp Products
	query := fmt.Sprintf("select %s from %s where `product_id` = ? limit 1", productsRows, m.table)
	err := m.conn.QueryRowCtx(ctx, &resp, query, productId)
	switch {
	case err == nil:
		return &resp, nil
	case errors.Is(err, sqlx.ErrNotFound), errors.Is(err, sql.ErrNoRows):
		return nil, ErrNotFound
	default:
		return nil, err
	}
}

func (m *defaultProductsModel) Search(ctx context.Context, searchKey string, limit, offset int64) ([]*Products, error) {
	if limit <= 0 || offset < 0 {
		return nil, ErrInvalidParam
	}

	var resp []*Products
	if searchKey == "" {
		query := fmt.Sprintf("select %s from %s order by `sale_rank` desc, `product_id` limit ? offset ?", productsRows, m.table)
		if err := m.conn.QueryRowsCtx(ctx, &resp, query, limit, offset); err != nil {
			return nil, err
		}
		return resp, nil
	}

	query := fmt.Sprintf("select %s from %s where `search_title` like ? escape '\\' order by `sale_rank` desc, `product_id` limit ? offset ?",
		productsRows, m.table)
	if err := m.conn.QueryRowsCtx(ctx, &resp, query, likePattern(searchKey), limit, offset); err != nil {
		return nil, err
	}
	return resp, nil
}

func (m *defaultProductsModel) CountSearch(ctx context.Context, searchKey string) (int64, error) {
	var count int64
	if searchKey == "" {
		query := fmt.Sprintf("select count(*) from %s", m.table)
		err := m.conn.QueryRowCtx(ctx, &count, query)
		return count, err
	}
	query := fmt.Sprintf("select count(*) from %s where `search_title` like ? escape '\\'", m.table)
	err := m.conn.QueryRowCtx(ctx, &count, query, likePattern(searchKey))
	return count, err
}

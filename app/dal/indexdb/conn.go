// Package indexdb is the query-optimized index: three denormalized SQLite tables that are
// rebuilt from the catalog and read by the query API.
package indexdb

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

type Conf struct {
	Path           string
	BusyTimeoutMs  int  `json:",default=5000"`
	MaxOpenConns   int  `json:",default=1"`
	DisableStmtLog bool `json:",default=true"`
}

func dataSource(c Conf) string {
	timeout := c.BusyTimeoutMs
	if timeout <= 0 {
		timeout = 5000
	}
	params := url.Values{}
	params.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", timeout))
	params.Add("_pragma", "journal_mode(wal)")
	return c.Path + "?" + params.Encode()
}

// NewConn opens the index database, creating its directory when missing.
// The schema is not touched, see EnsureSchema.
func NewConn(c Conf) (sqlx.SqlConn, error) {
	if strings.TrimSpace(c.Path) == "" {
		return nil, fmt.Errorf("%w: empty index db path", ErrInvalidParam)
	}
	if err := os.MkdirAll(filepath.Dir(c.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create index db dir: %w", err)
	}

	if c.DisableStmtLog {
		sqlx.DisableStmtLog()
	}

	conn := sqlx.NewSqlConn(driverName, dataSource(c))
	raw, err := conn.RawDB()
	if err != nil {
		return nil, fmt.Errorf("open index db: %w", err)
	}

	// sqlite allows a single writer; one connection keeps the rebuild transaction
	// and every statement issued through its session on the same handle.
	maxOpen := c.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 1
	}
	raw.SetMaxOpenConns(maxOpen)
	raw.SetMaxIdleConns(maxOpen)

	return conn, nil
}

func MustNewConn(c Conf) sqlx.SqlConn {
	conn, err := NewConn(c)
	if err != nil {
		panic(err)
	}
	return conn
}

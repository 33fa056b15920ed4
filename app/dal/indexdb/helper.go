package indexdb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(key string) string {
	return "%" + likeEscaper.Replace(key) + "%"
}

func ensureRows(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRowsAffectedIsZero
	}
	return nil
}

func deleteAll(ctx context.Context, session sqlx.Session, table string) error {
	if _, err := session.ExecCtx(ctx, fmt.Sprintf("delete from %s", table)); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	return nil
}

func countRows(ctx context.Context, session sqlx.Session, table string) (int64, error) {
	var count int64
	if err := session.QueryRowCtx(ctx, &count, fmt.Sprintf("select count(*) from %s", table)); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return count, nil
}

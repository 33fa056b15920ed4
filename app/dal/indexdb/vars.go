package indexdb

import (
	"errors"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var ErrNotFound = sqlx.ErrNotFound
var ErrInvalidParam = errors.New("invalid param for sql")
var ErrRowsAffectedIsZero = errors.New("affected rows is zero")

const (
	productsTableName         = "products"
	changelogTableName        = "changelog"
	changelogSummaryTableName = "changelog_summary"
)

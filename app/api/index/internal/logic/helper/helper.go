package helper

import (
	"encoding/json"
	"strings"

	"GogDB/app/api/index/internal/types"
	"GogDB/app/common/consts/biz"
	"GogDB/app/common/consts/errno"
	"GogDB/app/dal/indexdb"

	"github.com/zeromicro/x/errors"
)

// Page applies the default page size and rejects out of range values.
func Page(req types.PageRequest) (limit, offset int64, err error) {
	limit, offset = req.Limit, req.Offset
	if limit == 0 {
		limit = biz.DefaultPageSize
	}
	if limit < 0 || limit > biz.MaxPageSize {
		return 0, 0, errors.New(int(errno.InvalidParam), "limit out of range")
	}
	if offset < 0 {
		return 0, 0, errors.New(int(errno.InvalidParam), "offset out of range")
	}
	return limit, offset, nil
}

func ToProduct(src *indexdb.Products) types.Product {
	if src == nil {
		return types.Product{}
	}
	return types.Product{
		ProductId:   src.ProductId,
		Title:       src.Title,
		ImageLogo:   src.ImageLogo,
		ProductType: src.ProductType,
		CompSystems: src.CompSystems,
		SaleRank:    src.SaleRank,
	}
}

func ToChangelogEntry(src *indexdb.Changelog) types.ChangelogEntry {
	if src == nil {
		return types.ChangelogEntry{}
	}
	dst := types.ChangelogEntry{
		ProductId:    src.ProductId,
		ProductTitle: src.ProductTitle,
		Timestamp:    src.Timestamp,
		Action:       src.Action,
		Category:     src.Category,
		DlType:       src.DlType.String,
		BonusType:    src.BonusType.String,
		PropertyName: src.PropertyName.String,
	}
	if json.Valid([]byte(src.SerializedRecord)) {
		dst.Record = json.RawMessage(src.SerializedRecord)
	}
	return dst
}

func ToChangelogSummary(src *indexdb.ChangelogSummary) types.ChangelogSummary {
	if src == nil {
		return types.ChangelogSummary{}
	}
	dst := types.ChangelogSummary{
		ProductId:    src.ProductId,
		ProductTitle: src.ProductTitle,
		Timestamp:    src.Timestamp,
		Categories:   []string{},
	}
	if src.Categories != "" {
		dst.Categories = strings.Split(src.Categories, ",")
	}
	return dst
}

package product

import (
	"context"

	"GogDB/app/api/index/internal/logic/helper"
	"GogDB/app/api/index/internal/svc"
	"GogDB/app/api/index/internal/types"
	"GogDB/app/common/consts/errno"
	"GogDB/app/common/normalize"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/x/errors"
)

type SearchProductsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewSearchProductsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SearchProductsLogic {
	return &SearchProductsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// SearchProducts matches the query the same way titles are normalized at index time,
// best sellers first.
func (l *SearchProductsLogic) SearchProducts(req *types.SearchProductsRequest) (resp *types.SearchProductsResponse, err error) {
	if req == nil {
		return nil, errors.New(int(errno.InvalidParam), "empty request")
	}
	limit, offset, err := helper.Page(req.PageRequest)
	if err != nil {
		return nil, err
	}

	key := normalize.Search(req.Query)
	total, err := l.svcCtx.ProductsModel.CountSearch(l.ctx, key)
	if err != nil {
		l.Logger.Errorw("count products failed", logx.Field("key", key), logx.Field("err", err))
		return nil, errors.New(int(errno.IndexUnavailable), "index unavailable")
	}

	rows, err := l.svcCtx.ProductsModel.Search(l.ctx, key, limit, offset)
	if err != nil {
		l.Logger.Errorw("search products failed", logx.Field("key", key), logx.Field("err", err))
		return nil, errors.New(int(errno.IndexUnavailable), "index unavailable")
	}

	resp = &types.SearchProductsResponse{
		Total:    total,
		Products: make([]types.Product, 0, len(rows)),
	}
	for _, row := range rows {
		resp.Products = append(resp.Products, helper.ToProduct(row))
	}
	return resp, nil
}

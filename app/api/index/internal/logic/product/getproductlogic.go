package product

import (
	"context"
	stderrors "errors"

	"GogDB/app/api/index/internal/logic/helper"
	"GogDB/app/api/index/internal/svc"
	"GogDB/app/api/index/internal/types"
	"GogDB/app/common/consts/errno"
	"GogDB/app/dal/indexdb"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/x/errors"
)

type GetProductLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetProductLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetProductLogic {
	return &GetProductLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *GetProductLogic) GetProduct(req *types.GetProductRequest) (resp *types.GetProductResponse, err error) {
	if req == nil || req.ProductId <= 0 {
		return nil, errors.New(int(errno.InvalidParam), "invalid product id")
	}

	row, err := l.svcCtx.ProductsModel.FindOne(l.ctx, req.ProductId)
	if stderrors.Is(err, indexdb.ErrNotFound) {
		return nil, errors.New(int(errno.ProductNotFound), "product not found")
	}
	if err != nil {
		l.Logger.Errorw("find product failed", logx.Field("product_id", req.ProductId), logx.Field("err", err))
		return nil, errors.New(int(errno.IndexUnavailable), "index unavailable")
	}

	return &types.GetProductResponse{Product: helper.ToProduct(row)}, nil
}

package changelog

import (
	"context"

	"GogDB/app/api/index/internal/logic/helper"
	"GogDB/app/api/index/internal/svc"
	"GogDB/app/api/index/internal/types"
	"GogDB/app/common/consts/errno"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/x/errors"
)

type ListProductChangelogLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewListProductChangelogLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ListProductChangelogLogic {
	return &ListProductChangelogLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// ListProductChangelog returns one product's changes, newest first. A product without
// changes yields an empty list, not an error.
func (l *ListProductChangelogLogic) ListProductChangelog(req *types.ListProductChangelogRequest) (resp *types.ListChangelogResponse, err error) {
	if req == nil || req.ProductId <= 0 {
		return nil, errors.New(int(errno.InvalidParam), "invalid product id")
	}
	limit, offset, err := helper.Page(req.PageRequest)
	if err != nil {
		return nil, err
	}

	rows, err := l.svcCtx.ChangelogModel.ListByProduct(l.ctx, req.ProductId, limit, offset)
	if err != nil {
		l.Logger.Errorw("list product changelog failed", logx.Field("product_id", req.ProductId), logx.Field("err", err))
		return nil, errors.New(int(errno.IndexUnavailable), "index unavailable")
	}

	resp = &types.ListChangelogResponse{Entries: make([]types.ChangelogEntry, 0, len(rows))}
	for _, row := range rows {
		resp.Entries = append(resp.Entries, helper.ToChangelogEntry(row))
	}
	return resp, nil
}

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

type ListChangelogLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewListChangelogLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ListChangelogLogic {
	return &ListChangelogLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ListChangelogLogic) ListChangelog(req *types.ListChangelogRequest) (resp *types.ListChangelogResponse, err error) {
	if req == nil {
		return nil, errors.New(int(errno.InvalidParam), "empty request")
	}
	limit, offset, err := helper.Page(req.PageRequest)
	if err != nil {
		return nil, err
	}

	rows, err := l.svcCtx.ChangelogModel.ListRecent(l.ctx, limit, offset)
	if err != nil {
		l.Logger.Errorw("list changelog failed", logx.Field("err", err))
		return nil, errors.New(int(errno.IndexUnavailable), "index unavailable")
	}

	resp = &types.ListChangelogResponse{Entries: make([]types.ChangelogEntry, 0, len(rows))}
	for _, row := range rows {
		resp.Entries = append(resp.Entries, helper.ToChangelogEntry(row))
	}
	return resp, nil
}

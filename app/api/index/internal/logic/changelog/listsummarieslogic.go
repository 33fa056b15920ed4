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

type ListSummariesLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewListSummariesLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ListSummariesLogic {
	return &ListSummariesLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ListSummariesLogic) ListSummaries(req *types.ListSummariesRequest) (resp *types.ListSummariesResponse, err error) {
	if req == nil {
		return nil, errors.New(int(errno.InvalidParam), "empty request")
	}
	limit, offset, err := helper.Page(req.PageRequest)
	if err != nil {
		return nil, err
	}

	rows, err := l.svcCtx.ChangelogSummaryModel.ListRecent(l.ctx, limit, offset)
	if err != nil {
		l.Logger.Errorw("list changelog summaries failed", logx.Field("err", err))
		return nil, errors.New(int(errno.IndexUnavailable), "index unavailable")
	}

	resp = &types.ListSummariesResponse{Summaries: make([]types.ChangelogSummary, 0, len(rows))}
	for _, row := range rows {
		resp.Summaries = append(resp.Summaries, helper.ToChangelogSummary(row))
	}
	return resp, nil
}

package admin

import (
	"context"
	stderrors "errors"

	"GogDB/app/api/index/internal/svc"
	"GogDB/app/api/index/internal/types"
	"GogDB/app/common/consts/biz"
	"GogDB/app/common/consts/errno"
	"GogDB/app/common/tasks"
	"GogDB/app/common/util"

	"github.com/hibiken/asynq"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/x/errors"
)

type RebuildIndexLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewRebuildIndexLogic(ctx context.Context, svcCtx *svc.ServiceContext) *RebuildIndexLogic {
	return &RebuildIndexLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// RebuildIndex queues a full rebuild for the indexer worker. While one is still
// queued, further requests are refused.
func (l *RebuildIndexLogic) RebuildIndex() (resp *types.RebuildIndexResponse, err error) {
	if l.svcCtx.RebuildQueue == nil {
		return nil, errors.New(int(errno.InternalError), "rebuild queue not configured")
	}

	subject, err := util.AdminFromCtx(l.ctx)
	if err != nil {
		return nil, err
	}

	task, err := tasks.NewRebuildIndexTask(biz.RebuildReasonRequest, subject)
	if err != nil {
		l.Logger.Errorw("build rebuild task failed", logx.Field("err", err))
		return nil, errors.New(int(errno.InternalError), "build rebuild task failed")
	}

	info, err := l.svcCtx.RebuildQueue.EnqueueContext(l.ctx, task)
	if stderrors.Is(err, asynq.ErrDuplicateTask) {
		return nil, errors.New(int(errno.RebuildAlreadyQueued), "rebuild already queued")
	}
	if err != nil {
		l.Logger.Errorw("enqueue rebuild task failed", logx.Field("err", err))
		return nil, errors.New(int(errno.InternalError), "enqueue rebuild failed")
	}

	l.Logger.Infow("rebuild queued", logx.Field("task_id", info.ID), logx.Field("requested_by", subject))
	return &types.RebuildIndexResponse{TaskId: info.ID, Queue: info.Queue}, nil
}

package mq

import (
	"context"
	"fmt"

	"GogDB/app/common/consts/biz"
	"GogDB/app/common/tasks"
	"GogDB/app/services/indexer/internal/svc"

	"github.com/hibiken/asynq"
	"github.com/zeromicro/go-zero/core/logx"
)

func NewAsynqMux(sc *svc.ServiceContext) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(biz.TaskRebuildIndex, newRebuildIndexHandler(sc))
	return mux
}

func newRebuildIndexHandler(sc *svc.ServiceContext) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		payload, err := tasks.ParseRebuildIndexPayload(t)
		if err != nil {
			// a broken payload never gets better on retry
			return fmt.Errorf("decode rebuild payload: %v: %w", err, asynq.SkipRetry)
		}
		reason := payload.Reason
		if reason == "" {
			reason = biz.RebuildReasonCron
		}

		logx.WithContext(ctx).Infow("rebuild task received",
			logx.Field("reason", reason), logx.Field("requested_by", payload.RequestedBy))
		_, err = RunRebuild(ctx, sc, reason)
		return err
	}
}

package bootstrap

import (
	"context"
	"fmt"

	"GogDB/app/common/consts/biz"
	"GogDB/app/common/tasks"
	"GogDB/app/services/indexer/internal/mq"
	"GogDB/app/services/indexer/internal/svc"

	"github.com/hibiken/asynq"
	"github.com/zeromicro/go-zero/core/logx"
)

// StartAsynqWorker processes rebuild tasks one at a time until ctx is done.
func StartAsynqWorker(ctx context.Context, sc *svc.ServiceContext) error {
	srv := asynq.NewServer(sc.AsynqRedisOpt(), asynq.Config{
		Concurrency: 1,
		Queues:      map[string]int{biz.RebuildQueue: 1},
	})
	if err := srv.Start(mq.NewAsynqMux(sc)); err != nil {
		return fmt.Errorf("start asynq worker: %w", err)
	}
	logx.Infow("asynq worker started", logx.Field("queue", biz.RebuildQueue))

	<-ctx.Done()
	srv.Shutdown()
	return nil
}

// StartAsynqScheduler enqueues a rebuild on the configured cron spec until ctx is done.
func StartAsynqScheduler(ctx context.Context, sc *svc.ServiceContext) error {
	spec := sc.Config.AsynqConf.Cron
	if spec == "" {
		logx.Infow("skip rebuild scheduler, no cron spec configured")
		return nil
	}

	task, err := tasks.NewRebuildIndexTask(biz.RebuildReasonCron, "scheduler")
	if err != nil {
		return err
	}

	scheduler := asynq.NewScheduler(sc.AsynqRedisOpt(), &asynq.SchedulerOpts{
		PostEnqueueFunc: func(info *asynq.TaskInfo, err error) {
			if err != nil {
				logx.Infow("scheduled rebuild not enqueued", logx.Field("err", err))
				return
			}
			logx.Infow("scheduled rebuild enqueued", logx.Field("task_id", info.ID))
		},
	})
	entryID, err := scheduler.Register(spec, task)
	if err != nil {
		return fmt.Errorf("register rebuild cron %q: %w", spec, err)
	}
	if err := scheduler.Start(); err != nil {
		return fmt.Errorf("start asynq scheduler: %w", err)
	}
	logx.Infow("rebuild scheduler started", logx.Field("cron", spec), logx.Field("entry", entryID))

	<-ctx.Done()
	scheduler.Shutdown()
	return nil
}

package svc

import (
	"context"

	"GogDB/app/api/index/internal/config"
	"GogDB/app/common/middleware"
	"GogDB/app/dal/indexdb"

	"github.com/hibiken/asynq"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
	"github.com/zeromicro/go-zero/rest"
)

// TaskEnqueuer is the part of the asynq client the API needs.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type ServiceContext struct {
	Config          config.Config
	AdminMiddleware rest.Middleware

	ProductsModel         indexdb.ProductsModel
	ChangelogModel        indexdb.ChangelogModel
	ChangelogSummaryModel indexdb.ChangelogSummaryModel

	// RebuildQueue is nil when no asynq redis is configured.
	RebuildQueue TaskEnqueuer
	asynqClient  *asynq.Client
}

func NewServiceContext(c config.Config) *ServiceContext {
	conn := indexdb.MustNewConn(c.IndexDb)
	// serve empty results until the first rebuild instead of failing every query
	if err := indexdb.EnsureSchema(context.Background(), conn); err != nil {
		logx.Must(err)
	}

	sc := NewIndexContext(c, conn)
	if c.AsynqConf.Addr != "" {
		sc.asynqClient = asynq.NewClient(asynq.RedisClientOpt{
			Addr:     c.AsynqConf.Addr,
			Password: c.AsynqConf.Password,
			DB:       c.AsynqConf.DB,
		})
		sc.RebuildQueue = sc.asynqClient
	} else {
		logx.Infow("asynq client disabled, admin rebuild unavailable")
	}
	return sc
}

func NewIndexContext(c config.Config, conn sqlx.SqlConn) *ServiceContext {
	return &ServiceContext{
		Config:                c,
		AdminMiddleware:       middleware.NewAdminMiddleware(c.AdminAuth.AccessSecret).Handle,
		ProductsModel:         indexdb.NewProductsModel(conn),
		ChangelogModel:        indexdb.NewChangelogModel(conn),
		ChangelogSummaryModel: indexdb.NewChangelogSummaryModel(conn),
	}
}

func (s *ServiceContext) Close() {
	if s.asynqClient != nil {
		if err := s.asynqClient.Close(); err != nil {
			logx.Errorw("close asynq client failed", logx.Field("err", err))
		}
	}
}

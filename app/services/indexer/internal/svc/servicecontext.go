package svc

import (
	"time"

	"GogDB/app/common/snowflake"
	"GogDB/app/dal/catalog"
	"GogDB/app/dal/indexdb"
	"GogDB/app/services/indexer/internal/config"
	"GogDB/app/services/indexer/internal/metrics"

	"github.com/hibiken/asynq"
	"github.com/segmentio/kafka-go"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

type ServiceContext struct {
	Config config.Config

	Catalog catalog.Store

	IndexConn             sqlx.SqlConn
	ProductsModel         indexdb.ProductsModel
	ChangelogModel        indexdb.ChangelogModel
	ChangelogSummaryModel indexdb.ChangelogSummaryModel

	KafkaWriter *kafka.Writer
}

func NewServiceContext(c config.Config) *ServiceContext {
	c.MustSetUp()
	metrics.MustRegister()
	if c.NodeId > 0 {
		logx.Must(snowflake.SetNodeID(c.NodeId))
	}

	store := catalog.MustOpen(c.Catalog)
	logx.Infow("catalog opened", logx.Field("driver", c.Catalog.Driver), logx.Field("path", c.Catalog.Path))

	sc := NewIndexContext(c, store, indexdb.MustNewConn(c.IndexDb))

	if len(c.KafkaConf.Brokers) > 0 && c.KafkaConf.RebuildTopic != "" {
		sc.KafkaWriter = &kafka.Writer{
			Addr:                   kafka.TCP(c.KafkaConf.Brokers...),
			Topic:                  c.KafkaConf.RebuildTopic,
			RequiredAcks:           kafka.RequireOne,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           5 * time.Millisecond,
		}
	} else {
		logx.Infow("kafka writer disabled, no brokers or topic configured")
	}

	return sc
}

// NewIndexContext wires the rebuild dependencies around an opened catalog and index
// connection.
func NewIndexContext(c config.Config, store catalog.Store, conn sqlx.SqlConn) *ServiceContext {
	return &ServiceContext{
		Config:                c,
		Catalog:               store,
		IndexConn:             conn,
		ProductsModel:         indexdb.NewProductsModel(conn),
		ChangelogModel:        indexdb.NewChangelogModel(conn),
		ChangelogSummaryModel: indexdb.NewChangelogSummaryModel(conn),
	}
}

func (s *ServiceContext) AsynqRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     s.Config.AsynqConf.Addr,
		Password: s.Config.AsynqConf.Password,
		DB:       s.Config.AsynqConf.DB,
	}
}

func (s *ServiceContext) Close() {
	if s.KafkaWriter != nil {
		if err := s.KafkaWriter.Close(); err != nil {
			logx.Errorw("close kafka writer failed", logx.Field("err", err))
		}
	}
	if s.Catalog != nil {
		if err := s.Catalog.Close(); err != nil {
			logx.Errorw("close catalog failed", logx.Field("err", err))
		}
	}
}

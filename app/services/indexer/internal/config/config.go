package config

import (
	"GogDB/app/dal/catalog"
	"GogDB/app/dal/indexdb"

	"github.com/zeromicro/go-zero/core/service"
)

type Config struct {
	service.ServiceConf
	// NodeId pins the snowflake node of rebuild run ids, 0 derives it from the host name.
	NodeId int64 `json:",optional"`

	Catalog   catalog.Conf
	IndexDb   indexdb.Conf
	Rebuild   RebuildConf `json:",optional"`
	AsynqConf AsynqConf   `json:",optional"`
	KafkaConf KafkaConf   `json:",optional"`
}

type RebuildConf struct {
	// Prefetch is how many ids are loaded from the catalog ahead of the writer.
	// 1 loads strictly one id at a time.
	Prefetch int `json:",default=1"`
}

type AsynqConf struct {
	Addr     string `json:",optional"`
	Password string `json:",optional"`
	DB       int    `json:",optional"`
	Cron     string `json:",default=@every 6h"`
}

type KafkaConf struct {
	Brokers      []string `json:",optional"`
	RebuildTopic string   `json:",optional"`
}

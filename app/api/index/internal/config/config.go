package config

import (
	"GogDB/app/dal/indexdb"

	"github.com/zeromicro/go-zero/rest"
)

type Config struct {
	rest.RestConf

	IndexDb   indexdb.Conf
	AsynqConf AsynqConf `json:",optional"`
	AdminAuth AdminAuth
}

type AsynqConf struct {
	Addr     string `json:",optional"`
	Password string `json:",optional"`
	DB       int    `json:",optional"`
}

type AdminAuth struct {
	AccessSecret string
}

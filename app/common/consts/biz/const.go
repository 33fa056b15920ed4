package biz

import "time"

type CtxKey string

const (
	ADMIN_KEY CtxKey = "admin_subject"

	ACCESSTOKEN = "access_token"
	ADMIN_ROLE  = "admin"

	AdminTokenExpire = time.Hour * 2
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 500
)

const (
	TaskRebuildIndex     = "index:rebuild"
	RebuildQueue         = "index"
	RebuildUniqueTTL     = time.Hour
	RebuildReasonCron    = "cron"
	RebuildReasonCli     = "cli"
	RebuildReasonRequest = "request"
)

package errno

const (
	StatusOK      = 10000
	RebuildQueued = 10001
)

const (
	TokenEmpty = 40000 + iota
	TokenInvalid
	Forbidden
)

const (
	InternalError = 50000 + iota
	InvalidParam
	ProductNotFound
	IndexUnavailable
	RebuildAlreadyQueued
)

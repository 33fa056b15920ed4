package response

import (
	"context"
	"errors"
	"net/http"

	"GogDB/app/common/consts/errno"

	xerrors "github.com/zeromicro/x/errors"
)

type Response struct {
	StatusCode int    `json:"code"`
	StatusMsg  string `json:"msg"`
}

type ResponseWithData struct {
	StatusCode int         `json:"code"`
	StatusMsg  string      `json:"msg"`
	Data       interface{} `json:"data"`
}

func NewResponse(statusCode int, statusMsg string) Response {
	return Response{
		StatusCode: statusCode,
		StatusMsg:  statusMsg,
	}
}

func NewResponseWithData(statusCode int, statusMsg string, data interface{}) ResponseWithData {
	return ResponseWithData{
		StatusCode: statusCode,
		StatusMsg:  statusMsg,
		Data:       data,
	}
}

// ErrorHandler renders code/msg errors as a Response body with a matching HTTP status.
// Logic always returns code/msg errors, so anything else comes from request parsing.
func ErrorHandler(_ context.Context, err error) (int, any) {
	var codeMsg *xerrors.CodeMsg
	if !errors.As(err, &codeMsg) {
		return http.StatusBadRequest, NewResponse(errno.InvalidParam, err.Error())
	}

	status := http.StatusInternalServerError
	switch codeMsg.Code {
	case errno.TokenEmpty, errno.TokenInvalid:
		status = http.StatusUnauthorized
	case errno.Forbidden:
		status = http.StatusForbidden
	case errno.InvalidParam:
		status = http.StatusBadRequest
	case errno.ProductNotFound:
		status = http.StatusNotFound
	case errno.RebuildAlreadyQueued:
		status = http.StatusConflict
	case errno.IndexUnavailable:
		status = http.StatusServiceUnavailable
	}
	return status, NewResponse(codeMsg.Code, codeMsg.Msg)
}

package middleware

import (
	"net/http"

	"GogDB/app/common/consts/biz"
	"GogDB/app/common/consts/errno"
	"GogDB/app/common/util"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest/httpx"
	"github.com/zeromicro/x/errors"
)

// AdminMiddleware lets through requests carrying a valid token with the admin role.
type AdminMiddleware struct {
	AccessSecret string
}

func NewAdminMiddleware(accessSecret string) *AdminMiddleware {
	return &AdminMiddleware{
		AccessSecret: accessSecret,
	}
}

func (m *AdminMiddleware) Handle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accessToken := util.TokenFromRequest(r)
		if accessToken == "" {
			httpx.ErrorCtx(r.Context(), w, errors.New(int(errno.TokenEmpty), "token is null"))
			return
		}

		claims, err := util.ParseAdminToken(accessToken, m.AccessSecret)
		if err != nil {
			logx.WithContext(r.Context()).Infow("reject admin token", logx.Field("err", err))
			httpx.ErrorCtx(r.Context(), w, errors.New(int(errno.TokenInvalid), "token is invalid"))
			return
		}
		if claims.Role != biz.ADMIN_ROLE {
			httpx.ErrorCtx(r.Context(), w, errors.New(int(errno.Forbidden), "admin role required"))
			return
		}

		util.InjectAdmin2Ctx(r, claims.Subject)
		next(w, r)
	}
}

package util

import (
	"context"
	"net/http"
	"strings"

	"GogDB/app/common/consts/biz"
	"GogDB/app/common/consts/errno"

	"github.com/zeromicro/x/errors"
)

func AdminFromCtx(ctx context.Context) (string, error) {
	if ctx == nil {
		return "", errors.New(int(errno.TokenEmpty), "missing context")
	}

	if subject, ok := ctx.Value(biz.ADMIN_KEY).(string); ok && subject != "" {
		return subject, nil
	}

	return "", errors.New(int(errno.TokenEmpty), "unauthorized")
}

func InjectAdmin2Ctx(r *http.Request, subject string) {
	ctx := context.WithValue(r.Context(), biz.ADMIN_KEY, subject)
	*r = *r.WithContext(ctx)
}

// TokenFromRequest looks for the access token in the cookie, then the access_token
// header, then a bearer Authorization header.
func TokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(biz.ACCESSTOKEN); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if token := r.Header.Get(biz.ACCESSTOKEN); token != "" {
		return token
	}
	auth := r.Header.Get("Authorization")
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}

package admin

import (
	"net/http"

	"GogDB/app/api/index/internal/logic/admin"
	"GogDB/app/api/index/internal/svc"
	"GogDB/app/common/consts/errno"
	"GogDB/app/common/response"

	"github.com/zeromicro/go-zero/rest/httpx"
)

func RebuildIndexHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := admin.NewRebuildIndexLogic(r.Context(), svcCtx)
		resp, err := l.RebuildIndex()
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, response.NewResponseWithData(errno.RebuildQueued, "rebuild queued", resp))
		}
	}
}

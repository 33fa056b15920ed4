package changelog

import (
	"net/http"

	"GogDB/app/api/index/internal/logic/changelog"
	"GogDB/app/api/index/internal/svc"
	"GogDB/app/api/index/internal/types"

	"github.com/zeromicro/go-zero/rest/httpx"
)

func ListChangelogHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ListChangelogRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := changelog.NewListChangelogLogic(r.Context(), svcCtx)
		resp, err := l.ListChangelog(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}

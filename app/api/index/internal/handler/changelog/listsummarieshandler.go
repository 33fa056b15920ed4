package changelog

import (
	"net/http"

	"GogDB/app/api/index/internal/logic/changelog"
	"GogDB/app/api/index/internal/svc"
	"GogDB/app/api/index/internal/types"

	"github.com/zeromicro/go-zero/rest/httpx"
)

func ListSummariesHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ListSummariesRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := changelog.NewListSummariesLogic(r.Context(), svcCtx)
		resp, err := l.ListSummaries(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}

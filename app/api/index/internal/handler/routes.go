package handler

import (
	"net/http"

	"GogDB/app/api/index/internal/handler/admin"
	"GogDB/app/api/index/internal/handler/changelog"
	"GogDB/app/api/index/internal/handler/product"
	"GogDB/app/api/index/internal/svc"

	"github.com/zeromicro/go-zero/rest"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodGet,
				Path:    "/products",
				Handler: product.SearchProductsHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/products/:id",
				Handler: product.GetProductHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/products/:id/changelog",
				Handler: changelog.ListProductChangelogHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/changelog",
				Handler: changelog.ListChangelogHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/changelog/summary",
				Handler: changelog.ListSummariesHandler(serverCtx),
			},
		},
		rest.WithPrefix("/api"),
	)

	server.AddRoutes(
		rest.WithMiddlewares(
			[]rest.Middleware{serverCtx.AdminMiddleware},
			[]rest.Route{
				{
					Method:  http.MethodPost,
					Path:    "/admin/rebuild",
					Handler: admin.RebuildIndexHandler(serverCtx),
				},
			}...,
		),
		rest.WithPrefix("/api"),
	)
}

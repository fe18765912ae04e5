package server

import (
	"bytes"
	"strconv"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/market_research/app/display/internal/conf"
	"github.com/iWorld-y/market_research/app/display/internal/domain"
	"github.com/iWorld-y/market_research/app/display/internal/usecase"
)

// ListReportsReply 报告列表响应
type ListReportsReply struct {
	Reports []*domain.ReportSummary `json:"reports"`
	Total   int                     `json:"total"`
	Page    int                     `json:"page"`
}

func NewHTTPServer(c *conf.Server, uc *usecase.ReportUseCase, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
	}
	if c != nil && c.Http != nil {
		if c.Http.Addr != "" {
			opts = append(opts, http.Address(c.Http.Addr))
		}
		if c.Http.Timeout != "" {
			if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
				opts = append(opts, http.Timeout(d))
			}
		}
	}

	srv := http.NewServer(opts...)
	registerReportRoutes(srv, uc)
	return srv
}

func registerReportRoutes(srv *http.Server, uc *usecase.ReportUseCase) {
	r := srv.Route("/api")

	r.GET("/reports", func(ctx http.Context) error {
		page, _ := strconv.Atoi(ctx.Query().Get("page"))
		pageSize, _ := strconv.Atoi(ctx.Query().Get("page_size"))
		reports, total, err := uc.List(ctx, page, pageSize)
		if err != nil {
			return err
		}
		return ctx.JSON(200, &ListReportsReply{
			Reports: reports,
			Total:   total,
			Page:    max(page, 1),
		})
	})

	r.GET("/reports/{id}", func(ctx http.Context) error {
		report, err := uc.Get(ctx, ctx.Vars().Get("id"))
		if err != nil {
			return err
		}
		return ctx.JSON(200, report)
	})

	// 直接返回可在浏览器中查看的 HTML 页面
	r.GET("/reports/{id}/html", func(ctx http.Context) error {
		var buf bytes.Buffer
		if err := uc.RenderHTML(ctx, ctx.Vars().Get("id"), &buf); err != nil {
			return err
		}
		return ctx.Blob(200, "text/html; charset=utf-8", buf.Bytes())
	})

	r.DELETE("/reports/{id}", func(ctx http.Context) error {
		if err := uc.Delete(ctx, ctx.Vars().Get("id")); err != nil {
			return err
		}
		return ctx.JSON(200, map[string]string{"deleted": ctx.Vars().Get("id")})
	})
}

package repo

import (
	"context"

	"github.com/iWorld-y/market_research/app/display/internal/domain"
)

// ReportRepo 报告仓库接口
type ReportRepo interface {
	// ListReports 获取全部报告摘要，按创建时间倒序
	ListReports(ctx context.Context) ([]*domain.ReportSummary, error)
	// GetReport 根据ID获取报告详情
	GetReport(ctx context.Context, id string) (*domain.Report, error)
	// DeleteReport 根据ID删除报告
	DeleteReport(ctx context.Context, id string) error
}

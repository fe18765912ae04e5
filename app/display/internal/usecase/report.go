package usecase

import (
	"context"
	"io"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/market_research/app/display/internal/domain"
	"github.com/iWorld-y/market_research/app/display/internal/repo"
	"github.com/iWorld-y/market_research/app/market_research/pkg/export"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ReportUseCase 报告业务逻辑
type ReportUseCase struct {
	repo repo.ReportRepo
	log  *log.Helper
}

// NewReportUseCase 创建报告业务逻辑实例
func NewReportUseCase(repo repo.ReportRepo, logger log.Logger) *ReportUseCase {
	return &ReportUseCase{repo: repo, log: log.NewHelper(logger)}
}

// List 分页列出报告摘要，返回当前页和总数
func (uc *ReportUseCase) List(ctx context.Context, page, pageSize int) ([]*domain.ReportSummary, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	all, err := uc.repo.ListReports(ctx)
	if err != nil {
		return nil, 0, err
	}
	total := len(all)
	start := (page - 1) * pageSize
	if start >= total {
		return []*domain.ReportSummary{}, total, nil
	}
	end := min(start+pageSize, total)
	return all[start:end], total, nil
}

// Get 根据ID获取报告详情
func (uc *ReportUseCase) Get(ctx context.Context, id string) (*domain.Report, error) {
	return uc.repo.GetReport(ctx, id)
}

// Delete 根据ID删除报告
func (uc *ReportUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.DeleteReport(ctx, id)
}

// RenderHTML 将报告渲染为独立的 HTML 页面
func (uc *ReportUseCase) RenderHTML(ctx context.Context, id string, w io.Writer) error {
	report, err := uc.repo.GetReport(ctx, id)
	if err != nil {
		return err
	}
	title := report.Title
	if title == "" {
		title = report.ID
	}
	return export.RenderHTML(w, title, report.Content)
}

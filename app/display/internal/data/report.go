package data

import (
	"context"
	stderrors "errors"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/market_research/app/display/internal/domain"
	"github.com/iWorld-y/market_research/app/display/internal/repo"
	"github.com/iWorld-y/market_research/app/market_research/pkg/storage"
)

type reportRepo struct {
	data *Data
	log  *log.Helper
}

func NewReportRepo(data *Data, logger log.Logger) repo.ReportRepo {
	return &reportRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *reportRepo) ListReports(ctx context.Context) ([]*domain.ReportSummary, error) {
	metas, err := r.data.store.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]*domain.ReportSummary, 0, len(metas))
	for _, m := range metas {
		summaries = append(summaries, &domain.ReportSummary{
			ID:        m.ID,
			Title:     m.Title,
			Date:      m.Date,
			Size:      m.Size,
			CreatedAt: m.CreatedAt,
		})
	}
	return summaries, nil
}

func (r *reportRepo) GetReport(ctx context.Context, id string) (*domain.Report, error) {
	content, err := r.data.store.Read(ctx, id)
	if err != nil {
		return nil, convertErr(err)
	}

	title, date, reportID := storage.ParseMetadata(content)
	if reportID == "" {
		reportID = id
	}
	return &domain.Report{
		ID:      reportID,
		Title:   title,
		Date:    date,
		Content: content,
	}, nil
}

func (r *reportRepo) DeleteReport(ctx context.Context, id string) error {
	if err := r.data.store.Delete(ctx, id); err != nil {
		return convertErr(err)
	}
	r.log.WithContext(ctx).Infof("report deleted: %s", id)
	return nil
}

func convertErr(err error) error {
	if stderrors.Is(err, storage.ErrNotFound) {
		return errors.NotFound("REPORT_NOT_FOUND", "report not found")
	}
	return err
}

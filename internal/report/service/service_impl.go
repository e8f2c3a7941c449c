package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/guardian-io/guardian/internal/report/domain"
	"github.com/guardian-io/guardian/pkg/store"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// baseDownloadURL prefixes simulated report download links. Actual report
// rendering happens out of band.
const baseDownloadURL = "https://api.guardian-io.example/reports"

type Params struct {
	fx.In

	Store store.Params
	Log   *zap.Logger
}

type Service struct {
	records *store.Store[domain.Report, *domain.Report]
	log     *zap.Logger
}

func New(p Params) domain.Service {
	return &Service{
		records: store.New[domain.Report, *domain.Report](domain.Collection, p.Store),
		log:     p.Log.Named("report.service"),
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Report, error) {
	return s.records.GetAll(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Report, error) {
	report, ok, err := s.records.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return domain.Report{}, err
	}
	if !ok {
		return domain.Report{}, domain.ErrNotFound
	}
	return report, nil
}

func (s *Service) Generate(ctx context.Context, req domain.GenerateReportRequest) (domain.Report, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Report{}, domain.ErrInvalidName
	}
	if !req.Type.Valid() {
		return domain.Report{}, domain.ErrInvalidType
	}
	if !req.Format.Valid() {
		return domain.Report{}, domain.ErrInvalidFormat
	}

	now := s.records.Now()
	report := domain.Report{
		Name:          name,
		Type:          req.Type,
		Format:        req.Format,
		GeneratedDate: now.Format("2006-01-02T15:04:05.000Z07:00"),
		DownloadURL:   fmt.Sprintf("%s/%d.%s", baseDownloadURL, now.UnixMilli(), req.Format.Ext()),
		Parameters:    req.Parameters,
		Notes:         req.Notes,
	}
	created, err := s.records.Create(ctx, report)
	if err != nil {
		return domain.Report{}, err
	}
	s.log.Info("report generated",
		zap.String("report_id", created.ID),
		zap.String("type", string(created.Type)),
		zap.String("format", string(created.Format)),
	)
	return created, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.records.Delete(ctx, strings.TrimSpace(id))
}

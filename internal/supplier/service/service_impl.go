package service

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"github.com/guardian-io/guardian/internal/seed"
	"github.com/guardian-io/guardian/internal/supplier/domain"
	"github.com/guardian-io/guardian/pkg/store"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Store store.Params
	Log   *zap.Logger
}

type Service struct {
	records *store.Store[domain.Supplier, *domain.Supplier]
	log     *zap.Logger
}

func New(p Params) domain.Service {
	return &Service{
		records: store.New[domain.Supplier, *domain.Supplier](domain.Collection, p.Store),
		log:     p.Log.Named("supplier.service"),
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Supplier, error) {
	return s.all(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Supplier, error) {
	items, err := s.all(ctx)
	if err != nil {
		return domain.Supplier{}, err
	}
	id = strings.TrimSpace(id)
	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}
	return domain.Supplier{}, domain.ErrNotFound
}

func (s *Service) Create(ctx context.Context, req domain.CreateSupplierRequest) (domain.Supplier, error) {
	supplier := domain.Supplier{
		Name:             strings.TrimSpace(req.Name),
		Country:          strings.TrimSpace(req.Country),
		Category:         req.Category,
		RiskScore:        req.RiskScore,
		ComplianceStatus: req.ComplianceStatus,
		TrustLevel:       req.TrustLevel,
		ContactEmail:     strings.TrimSpace(req.ContactEmail),
		ContactPhone:     strings.TrimSpace(req.ContactPhone),
		Website:          strings.TrimSpace(req.Website),
		Description:      req.Description,
		Image:            req.Image,
	}
	if err := validate(supplier); err != nil {
		return domain.Supplier{}, err
	}
	return s.records.Create(ctx, supplier)
}

func (s *Service) Update(ctx context.Context, id string, patch map[string]json.RawMessage) (domain.Supplier, error) {
	if err := validatePatch(patch); err != nil {
		return domain.Supplier{}, err
	}
	updated, err := s.records.Update(ctx, strings.TrimSpace(id), patch, validate)
	if err != nil {
		if err == store.ErrNotFound {
			return domain.Supplier{}, domain.ErrNotFound
		}
		return domain.Supplier{}, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.records.Delete(ctx, strings.TrimSpace(id))
}

func (s *Service) TopByRisk(ctx context.Context, n int) ([]domain.Supplier, error) {
	items, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].RiskScore > items[j].RiskScore
	})
	if n > 0 && n < len(items) {
		items = items[:n]
	}
	return items, nil
}

// all reads the collection, re-seeding it whenever it is observed empty.
// Legitimate full deletion is indistinguishable from "never seeded"; the
// collection refills on the next read either way.
func (s *Service) all(ctx context.Context) ([]domain.Supplier, error) {
	items, err := s.records.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		return items, nil
	}
	return s.records.Seed(ctx, seed.Suppliers())
}

func validate(supplier domain.Supplier) error {
	if supplier.Name == "" {
		return domain.ErrInvalidName
	}
	if supplier.Country == "" {
		return domain.ErrInvalidCountry
	}
	if !supplier.Category.Valid() {
		return domain.ErrInvalidCategory
	}
	if supplier.RiskScore < 0 || supplier.RiskScore > 100 {
		return domain.ErrInvalidRiskScore
	}
	if !supplier.ComplianceStatus.Valid() {
		return domain.ErrInvalidComplianceStatus
	}
	if !supplier.TrustLevel.Valid() {
		return domain.ErrInvalidTrustLevel
	}
	return nil
}

func validatePatch(patch map[string]json.RawMessage) error {
	if raw, ok := patch["category"]; ok {
		var category domain.Category
		if err := json.Unmarshal(raw, &category); err != nil || !category.Valid() {
			return domain.ErrInvalidCategory
		}
	}
	if raw, ok := patch["complianceStatus"]; ok {
		var status domain.ComplianceStatus
		if err := json.Unmarshal(raw, &status); err != nil || !status.Valid() {
			return domain.ErrInvalidComplianceStatus
		}
	}
	if raw, ok := patch["trustLevel"]; ok {
		var level domain.TrustLevel
		if err := json.Unmarshal(raw, &level); err != nil || !level.Valid() {
			return domain.ErrInvalidTrustLevel
		}
	}
	if raw, ok := patch["riskScore"]; ok {
		var score int
		if err := json.Unmarshal(raw, &score); err != nil || score < 0 || score > 100 {
			return domain.ErrInvalidRiskScore
		}
	}
	return nil
}

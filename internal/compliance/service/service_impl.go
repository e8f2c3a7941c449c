package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/guardian-io/guardian/internal/compliance/domain"
	"github.com/guardian-io/guardian/internal/seed"
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
	records *store.Store[domain.Record, *domain.Record]
	log     *zap.Logger
}

func New(p Params) domain.Service {
	return &Service{
		records: store.New[domain.Record, *domain.Record](domain.Collection, p.Store),
		log:     p.Log.Named("compliance.service"),
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Record, error) {
	return s.all(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Record, error) {
	items, err := s.all(ctx)
	if err != nil {
		return domain.Record{}, err
	}
	id = strings.TrimSpace(id)
	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}
	return domain.Record{}, domain.ErrNotFound
}

func (s *Service) GetBySupplier(ctx context.Context, supplierID string) ([]domain.Record, error) {
	items, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	supplierID = strings.TrimSpace(supplierID)
	matched := make([]domain.Record, 0)
	for _, item := range items {
		if item.SupplierID == supplierID {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateRecordRequest) (domain.Record, error) {
	record := domain.Record{
		SupplierID:   strings.TrimSpace(req.SupplierID),
		SupplierName: strings.TrimSpace(req.SupplierName),
		Type:         req.Type,
		Status:       req.Status,
		IssueDate:    strings.TrimSpace(req.IssueDate),
		ExpiryDate:   strings.TrimSpace(req.ExpiryDate),
		DocumentURL:  strings.TrimSpace(req.DocumentURL),
		Notes:        req.Notes,
		VerifiedBy:   strings.TrimSpace(req.VerifiedBy),
	}
	if err := validate(record); err != nil {
		return domain.Record{}, err
	}
	return s.records.Create(ctx, record)
}

func (s *Service) Update(ctx context.Context, id string, patch map[string]json.RawMessage) (domain.Record, error) {
	if err := validatePatch(patch); err != nil {
		return domain.Record{}, err
	}
	updated, err := s.records.Update(ctx, strings.TrimSpace(id), patch, validate)
	if err != nil {
		if err == store.ErrNotFound {
			return domain.Record{}, domain.ErrNotFound
		}
		return domain.Record{}, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.records.Delete(ctx, strings.TrimSpace(id))
}

// all reads the collection, re-seeding it whenever it is observed empty.
func (s *Service) all(ctx context.Context) ([]domain.Record, error) {
	items, err := s.records.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		return items, nil
	}
	return s.records.Seed(ctx, seed.ComplianceRecords())
}

func validate(record domain.Record) error {
	if record.SupplierID == "" {
		return domain.ErrInvalidSupplierID
	}
	if !record.Type.Valid() {
		return domain.ErrInvalidType
	}
	if !record.Status.Valid() {
		return domain.ErrInvalidStatus
	}
	if !validDate(record.IssueDate) {
		return domain.ErrInvalidIssueDate
	}
	if !validDate(record.ExpiryDate) {
		return domain.ErrInvalidExpiryDate
	}
	return nil
}

func validatePatch(patch map[string]json.RawMessage) error {
	if raw, ok := patch["type"]; ok {
		var value domain.CertificationType
		if err := json.Unmarshal(raw, &value); err != nil || !value.Valid() {
			return domain.ErrInvalidType
		}
	}
	if raw, ok := patch["status"]; ok {
		var value domain.Status
		if err := json.Unmarshal(raw, &value); err != nil || !value.Valid() {
			return domain.ErrInvalidStatus
		}
	}
	if raw, ok := patch["issueDate"]; ok {
		var value string
		if err := json.Unmarshal(raw, &value); err != nil || !validDate(value) {
			return domain.ErrInvalidIssueDate
		}
	}
	if raw, ok := patch["expiryDate"]; ok {
		var value string
		if err := json.Unmarshal(raw, &value); err != nil || !validDate(value) {
			return domain.ErrInvalidExpiryDate
		}
	}
	return nil
}

// validDate accepts RFC3339 timestamps; there is deliberately no check that
// expiry follows issue.
func validDate(value string) bool {
	_, err := time.Parse(time.RFC3339, value)
	return err == nil
}

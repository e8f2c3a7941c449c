package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/guardian-io/guardian/internal/riskalert/domain"
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
	records *store.Store[domain.Alert, *domain.Alert]
	log     *zap.Logger
}

func New(p Params) domain.Service {
	return &Service{
		records: store.New[domain.Alert, *domain.Alert](domain.Collection, p.Store),
		log:     p.Log.Named("riskalert.service"),
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Alert, error) {
	items, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Level.Severity() > items[j].Level.Severity()
	})
	return items, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Alert, error) {
	items, err := s.all(ctx)
	if err != nil {
		return domain.Alert{}, err
	}
	id = strings.TrimSpace(id)
	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}
	return domain.Alert{}, domain.ErrNotFound
}

func (s *Service) ByLevel(ctx context.Context, level domain.Level) ([]domain.Alert, error) {
	if !level.Valid() {
		return nil, domain.ErrInvalidLevel
	}
	items, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]domain.Alert, 0)
	for _, item := range items {
		if item.Level == level {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

func (s *Service) Unacknowledged(ctx context.Context) ([]domain.Alert, error) {
	items, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]domain.Alert, 0)
	for _, item := range items {
		if !item.Acknowledged {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

func (s *Service) CountsByLevel(ctx context.Context) (map[domain.Level]int, error) {
	items, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	counts := map[domain.Level]int{
		domain.LevelHigh:   0,
		domain.LevelMedium: 0,
		domain.LevelLow:    0,
		domain.LevelSafe:   0,
	}
	for _, item := range items {
		counts[item.Level]++
	}
	return counts, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateAlertRequest) (domain.Alert, error) {
	alert := domain.Alert{
		Title:              strings.TrimSpace(req.Title),
		Description:        strings.TrimSpace(req.Description),
		Level:              req.Level,
		Time:               req.Time,
		Source:             strings.TrimSpace(req.Source),
		AffectedSupplierID: strings.TrimSpace(req.AffectedSupplierID),
		Acknowledged:       false,
	}
	if err := validate(alert); err != nil {
		return domain.Alert{}, err
	}
	return s.records.Create(ctx, alert)
}

func (s *Service) Update(ctx context.Context, id string, patch map[string]json.RawMessage) (domain.Alert, error) {
	if err := validatePatch(patch); err != nil {
		return domain.Alert{}, err
	}
	updated, err := s.records.Update(ctx, strings.TrimSpace(id), patch, validate)
	if err != nil {
		if err == store.ErrNotFound {
			return domain.Alert{}, domain.ErrNotFound
		}
		return domain.Alert{}, err
	}
	return updated, nil
}

func (s *Service) Acknowledge(ctx context.Context, id string) (domain.Alert, error) {
	return s.Update(ctx, id, map[string]json.RawMessage{
		"acknowledged": json.RawMessage("true"),
	})
}

// Resolve acknowledges the alert and stamps resolvedAt with the current time.
func (s *Service) Resolve(ctx context.Context, id string) (domain.Alert, error) {
	resolvedAt, err := json.Marshal(s.records.Now().Format("2006-01-02T15:04:05.000Z07:00"))
	if err != nil {
		return domain.Alert{}, fmt.Errorf("encode resolvedAt: %w", err)
	}
	return s.Update(ctx, id, map[string]json.RawMessage{
		"acknowledged": json.RawMessage("true"),
		"resolvedAt":   resolvedAt,
	})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.records.Delete(ctx, strings.TrimSpace(id))
}

// all reads the collection, re-seeding it whenever it is observed empty.
func (s *Service) all(ctx context.Context) ([]domain.Alert, error) {
	items, err := s.records.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		return items, nil
	}
	return s.records.Seed(ctx, seed.RiskAlerts())
}

func validate(alert domain.Alert) error {
	if alert.Title == "" {
		return domain.ErrInvalidTitle
	}
	if alert.Description == "" {
		return domain.ErrInvalidDescription
	}
	if !alert.Level.Valid() {
		return domain.ErrInvalidLevel
	}
	return nil
}

func validatePatch(patch map[string]json.RawMessage) error {
	if raw, ok := patch["level"]; ok {
		var value domain.Level
		if err := json.Unmarshal(raw, &value); err != nil || !value.Valid() {
			return domain.ErrInvalidLevel
		}
	}
	return nil
}

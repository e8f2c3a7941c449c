package domain

import (
	"context"
	"encoding/json"
	"errors"
)

type CreateAlertRequest struct {
	Title              string `json:"title"`
	Description        string `json:"description"`
	Level              Level  `json:"level"`
	Time               string `json:"time"`
	Source             string `json:"source,omitempty"`
	AffectedSupplierID string `json:"affectedSupplierId,omitempty"`
}

type Service interface {
	List(ctx context.Context) ([]Alert, error)
	GetByID(ctx context.Context, id string) (Alert, error)
	ByLevel(ctx context.Context, level Level) ([]Alert, error)
	Unacknowledged(ctx context.Context) ([]Alert, error)
	CountsByLevel(ctx context.Context) (map[Level]int, error)
	Create(ctx context.Context, req CreateAlertRequest) (Alert, error)
	Update(ctx context.Context, id string, patch map[string]json.RawMessage) (Alert, error)
	Acknowledge(ctx context.Context, id string) (Alert, error)
	Resolve(ctx context.Context, id string) (Alert, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrNotFound           = errors.New("risk_alert_not_found")
	ErrInvalidTitle       = errors.New("invalid_title")
	ErrInvalidDescription = errors.New("invalid_description")
	ErrInvalidLevel       = errors.New("invalid_level")
)

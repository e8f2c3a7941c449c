package domain

import (
	"context"
	"encoding/json"
	"errors"
)

type GenerateReportRequest struct {
	Name       string                     `json:"name"`
	Type       Type                       `json:"type"`
	Format     Format                     `json:"format"`
	Parameters map[string]json.RawMessage `json:"parameters,omitempty"`
	Notes      string                     `json:"notes,omitempty"`
}

type Service interface {
	List(ctx context.Context) ([]Report, error)
	GetByID(ctx context.Context, id string) (Report, error)
	Generate(ctx context.Context, req GenerateReportRequest) (Report, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrNotFound      = errors.New("report_not_found")
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidType   = errors.New("invalid_report_type")
	ErrInvalidFormat = errors.New("invalid_report_format")
)

package domain

import (
	"context"
	"encoding/json"
	"errors"
)

type CreateSupplierRequest struct {
	Name             string           `json:"name"`
	Country          string           `json:"country"`
	Category         Category         `json:"category"`
	RiskScore        int              `json:"riskScore"`
	ComplianceStatus ComplianceStatus `json:"complianceStatus"`
	TrustLevel       TrustLevel       `json:"trustLevel"`
	ContactEmail     string           `json:"contactEmail,omitempty"`
	ContactPhone     string           `json:"contactPhone,omitempty"`
	Website          string           `json:"website,omitempty"`
	Description      string           `json:"description,omitempty"`
	Image            string           `json:"image,omitempty"`
}

type Service interface {
	List(ctx context.Context) ([]Supplier, error)
	GetByID(ctx context.Context, id string) (Supplier, error)
	Create(ctx context.Context, req CreateSupplierRequest) (Supplier, error)
	Update(ctx context.Context, id string, patch map[string]json.RawMessage) (Supplier, error)
	Delete(ctx context.Context, id string) error
	TopByRisk(ctx context.Context, n int) ([]Supplier, error)
}

var (
	ErrNotFound                = errors.New("supplier_not_found")
	ErrInvalidName             = errors.New("invalid_name")
	ErrInvalidCountry          = errors.New("invalid_country")
	ErrInvalidCategory         = errors.New("invalid_category")
	ErrInvalidRiskScore        = errors.New("invalid_risk_score")
	ErrInvalidComplianceStatus = errors.New("invalid_compliance_status")
	ErrInvalidTrustLevel       = errors.New("invalid_trust_level")
)

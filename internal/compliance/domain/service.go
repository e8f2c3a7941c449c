package domain

import (
	"context"
	"encoding/json"
	"errors"
)

type CreateRecordRequest struct {
	SupplierID   string            `json:"supplierId"`
	SupplierName string            `json:"supplierName"`
	Type         CertificationType `json:"type"`
	Status       Status            `json:"status"`
	IssueDate    string            `json:"issueDate"`
	ExpiryDate   string            `json:"expiryDate"`
	DocumentURL  string            `json:"documentUrl,omitempty"`
	Notes        string            `json:"notes,omitempty"`
	VerifiedBy   string            `json:"verifiedBy,omitempty"`
}

type Service interface {
	List(ctx context.Context) ([]Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	GetBySupplier(ctx context.Context, supplierID string) ([]Record, error)
	Create(ctx context.Context, req CreateRecordRequest) (Record, error)
	Update(ctx context.Context, id string, patch map[string]json.RawMessage) (Record, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrNotFound          = errors.New("compliance_record_not_found")
	ErrInvalidSupplierID = errors.New("invalid_supplier_id")
	ErrInvalidType       = errors.New("invalid_type")
	ErrInvalidStatus     = errors.New("invalid_status")
	ErrInvalidIssueDate  = errors.New("invalid_issue_date")
	ErrInvalidExpiryDate = errors.New("invalid_expiry_date")
)

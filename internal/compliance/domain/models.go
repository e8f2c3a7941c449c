package domain

import (
	"github.com/guardian-io/guardian/pkg/store"
)

// Collection is the persisted collection name.
const Collection = "complianceRecords"

type CertificationType string

const (
	TypeISO27001 CertificationType = "ISO 27001"
	TypeGDPR     CertificationType = "GDPR"
	TypeESG      CertificationType = "ESG"
	TypeSOC2     CertificationType = "SOC 2"
	TypeHIPAA    CertificationType = "HIPAA"
	TypePCIDSS   CertificationType = "PCI DSS"
	TypeOther    CertificationType = "Other"
)

func (t CertificationType) Valid() bool {
	switch t {
	case TypeISO27001, TypeGDPR, TypeESG, TypeSOC2, TypeHIPAA, TypePCIDSS, TypeOther:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusValid   Status = "valid"
	StatusPending Status = "pending"
	StatusExpired Status = "expired"
	StatusRevoked Status = "revoked"
)

func (s Status) Valid() bool {
	switch s {
	case StatusValid, StatusPending, StatusExpired, StatusRevoked:
		return true
	default:
		return false
	}
}

// Record is a compliance certificate held by a supplier. SupplierName is a
// denormalized copy; SupplierID is not referentially enforced at write time.
type Record struct {
	store.Meta
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

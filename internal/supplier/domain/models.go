package domain

import (
	"github.com/guardian-io/guardian/pkg/store"
)

// Collection is the persisted collection name.
const Collection = "suppliers"

type Category string

const (
	CategoryHardware      Category = "Hardware"
	CategorySoftware      Category = "Software"
	CategoryLogistics     Category = "Logistics"
	CategoryManufacturing Category = "Manufacturing"
	CategoryElectronics   Category = "Electronics"
	CategoryMaterials     Category = "Materials"
	CategoryShipping      Category = "Shipping"
	CategoryOther         Category = "Other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryHardware, CategorySoftware, CategoryLogistics, CategoryManufacturing,
		CategoryElectronics, CategoryMaterials, CategoryShipping, CategoryOther:
		return true
	default:
		return false
	}
}

type ComplianceStatus string

const (
	ComplianceVerified ComplianceStatus = "verified"
	CompliancePending  ComplianceStatus = "pending"
	ComplianceBreached ComplianceStatus = "breached"
)

func (s ComplianceStatus) Valid() bool {
	switch s {
	case ComplianceVerified, CompliancePending, ComplianceBreached:
		return true
	default:
		return false
	}
}

type TrustLevel string

const (
	TrustVerified TrustLevel = "verified"
	TrustGold     TrustLevel = "gold"
	TrustPlatinum TrustLevel = "platinum"
)

func (l TrustLevel) Valid() bool {
	switch l {
	case TrustVerified, TrustGold, TrustPlatinum:
		return true
	default:
		return false
	}
}

type Supplier struct {
	store.Meta
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

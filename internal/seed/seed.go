// Package seed holds the initial fixture data each collection refills
// from whenever it is observed empty.
package seed

import (
	compliance "github.com/guardian-io/guardian/internal/compliance/domain"
	"github.com/guardian-io/guardian/internal/graph/layout"
	riskalert "github.com/guardian-io/guardian/internal/riskalert/domain"
	supplier "github.com/guardian-io/guardian/internal/supplier/domain"
	"github.com/guardian-io/guardian/pkg/store"
)

// Suppliers returns the initial supplier roster. The fixture ids are
// stable so alerts and compliance records can reference them.
func Suppliers() []supplier.Supplier {
	return []supplier.Supplier{
		{
			Meta:             store.Meta{ID: "1"},
			Name:             "TechSolutions Inc.",
			Country:          "United States",
			Category:         supplier.CategoryHardware,
			RiskScore:        82,
			ComplianceStatus: supplier.ComplianceBreached,
			TrustLevel:       supplier.TrustVerified,
		},
		{
			Meta:             store.Meta{ID: "2"},
			Name:             "GlobalTech",
			Country:          "Germany",
			Category:         supplier.CategorySoftware,
			RiskScore:        45,
			ComplianceStatus: supplier.CompliancePending,
			TrustLevel:       supplier.TrustGold,
		},
		{
			Meta:             store.Meta{ID: "3"},
			Name:             "EcoLogistics",
			Country:          "Netherlands",
			Category:         supplier.CategoryLogistics,
			RiskScore:        28,
			ComplianceStatus: supplier.ComplianceVerified,
			TrustLevel:       supplier.TrustPlatinum,
		},
		{
			Meta:             store.Meta{ID: "4"},
			Name:             "PrecisionParts",
			Country:          "Japan",
			Category:         supplier.CategoryManufacturing,
			RiskScore:        67,
			ComplianceStatus: supplier.CompliancePending,
			TrustLevel:       supplier.TrustGold,
		},
	}
}

func RiskAlerts() []riskalert.Alert {
	return []riskalert.Alert{
		{
			Meta:         store.Meta{ID: "1"},
			Title:        "Critical supplier security breach",
			Description:  "TechSolutions Inc. reported a data breach affecting customer information. Assess impact on supply chain.",
			Level:        riskalert.LevelHigh,
			Time:         "10 min ago",
			Acknowledged: false,
		},
		{
			Meta:         store.Meta{ID: "2"},
			Title:        "Supply chain disruption",
			Description:  "Potential shipping delays at Rotterdam port due to labor strike. Expected 2-3 day impact.",
			Level:        riskalert.LevelMedium,
			Time:         "2 hours ago",
			Acknowledged: false,
		},
		{
			Meta:         store.Meta{ID: "3"},
			Title:        "Compliance certificate expiring",
			Description:  "ISO 27001 certification for GlobalTech will expire in 15 days. Renewal process needed.",
			Level:        riskalert.LevelLow,
			Time:         "5 hours ago",
			Acknowledged: false,
		},
		{
			Meta:         store.Meta{ID: "4"},
			Title:        "ESG improvements confirmed",
			Description:  "EcoLogistics has achieved carbon neutrality in operations. Updated sustainability report available.",
			Level:        riskalert.LevelSafe,
			Time:         "Yesterday",
			Acknowledged: false,
		},
	}
}

func ComplianceRecords() []compliance.Record {
	return []compliance.Record{
		{
			SupplierID:   "1",
			SupplierName: "TechSolutions Inc.",
			Type:         compliance.TypeISO27001,
			Status:       compliance.StatusValid,
			IssueDate:    "2023-01-15T00:00:00Z",
			ExpiryDate:   "2025-01-15T00:00:00Z",
			Notes:        "Annual audit completed successfully",
		},
		{
			SupplierID:   "2",
			SupplierName: "GlobalTech",
			Type:         compliance.TypeGDPR,
			Status:       compliance.StatusPending,
			IssueDate:    "2023-11-10T00:00:00Z",
			ExpiryDate:   "2025-11-10T00:00:00Z",
			Notes:        "Awaiting final documentation",
		},
		{
			SupplierID:   "3",
			SupplierName: "EcoLogistics",
			Type:         compliance.TypeESG,
			Status:       compliance.StatusValid,
			IssueDate:    "2023-06-22T00:00:00Z",
			ExpiryDate:   "2024-06-22T00:00:00Z",
			Notes:        "Carbon neutral certification",
		},
	}
}

// GraphNodes returns the supply-chain topology rendered on the dashboard.
// Group 1 is the company itself, group 2 its direct suppliers, group 3
// their upstream tier.
func GraphNodes() []layout.Node {
	return []layout.Node{
		{ID: "center", Name: "Your Company", Category: "HQ", Country: "United States", RiskScore: 15, Group: 1},
		{ID: "supplier1", Name: "TechSolutions", Category: "Hardware", Country: "United States", RiskScore: 82, Group: 2},
		{ID: "supplier2", Name: "GlobalTech", Category: "Software", Country: "Germany", RiskScore: 45, Group: 2},
		{ID: "supplier3", Name: "EcoLogistics", Category: "Logistics", Country: "Netherlands", RiskScore: 28, Group: 2},
		{ID: "supplier4", Name: "PrecisionParts", Category: "Manufacturing", Country: "Japan", RiskScore: 67, Group: 2},
		{ID: "supplier5", Name: "ChipTech", Category: "Electronics", Country: "Taiwan", RiskScore: 55, Group: 3},
		{ID: "supplier6", Name: "RawMaterials", Category: "Materials", Country: "Australia", RiskScore: 35, Group: 3},
		{ID: "supplier7", Name: "LogiFreight", Category: "Shipping", Country: "Singapore", RiskScore: 48, Group: 3},
	}
}

func GraphLinks() []layout.Link {
	return []layout.Link{
		{Source: "center", Target: "supplier1", Value: 5},
		{Source: "center", Target: "supplier2", Value: 4},
		{Source: "center", Target: "supplier3", Value: 3},
		{Source: "center", Target: "supplier4", Value: 3},
		{Source: "supplier1", Target: "supplier5", Value: 2},
		{Source: "supplier2", Target: "supplier5", Value: 2},
		{Source: "supplier3", Target: "supplier7", Value: 2},
		{Source: "supplier4", Target: "supplier6", Value: 2},
		{Source: "supplier4", Target: "supplier7", Value: 1},
	}
}

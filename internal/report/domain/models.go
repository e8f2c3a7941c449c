package domain

import (
	"encoding/json"
	"strings"

	"github.com/guardian-io/guardian/pkg/store"
)

// Collection is the blob collection backing generated reports.
const Collection = "reports"

type Type string

const (
	TypeISOCompliance       Type = "ISO Compliance"
	TypeESGReport           Type = "ESG Report"
	TypeGDPRCompliance      Type = "GDPR Compliance"
	TypeRiskAssessment      Type = "Risk Assessment"
	TypeSupplierEvaluation  Type = "Supplier Evaluation"
	TypeSupplyChainAnalysis Type = "Supply Chain Analysis"
)

func (t Type) Valid() bool {
	switch t {
	case TypeISOCompliance, TypeESGReport, TypeGDPRCompliance,
		TypeRiskAssessment, TypeSupplierEvaluation, TypeSupplyChainAnalysis:
		return true
	}
	return false
}

type Format string

const (
	FormatPDF   Format = "PDF"
	FormatExcel Format = "Excel"
	FormatCSV   Format = "CSV"
)

func (f Format) Valid() bool {
	switch f {
	case FormatPDF, FormatExcel, FormatCSV:
		return true
	}
	return false
}

// Ext is the lowercase file extension used in download URLs.
func (f Format) Ext() string {
	return strings.ToLower(string(f))
}

type Report struct {
	store.Meta

	Name          string                     `json:"name"`
	Type          Type                       `json:"type"`
	GeneratedDate string                     `json:"generatedDate"`
	Format        Format                     `json:"format"`
	DownloadURL   string                     `json:"downloadUrl,omitempty"`
	Parameters    map[string]json.RawMessage `json:"parameters,omitempty"`
	Notes         string                     `json:"notes,omitempty"`
}

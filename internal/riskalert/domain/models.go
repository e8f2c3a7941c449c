package domain

import "github.com/guardian-io/guardian/pkg/store"

// Collection is the blob collection backing risk alerts.
const Collection = "riskAlerts"

type Level string

const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
	LevelSafe   Level = "safe"
)

func (l Level) Valid() bool {
	switch l {
	case LevelHigh, LevelMedium, LevelLow, LevelSafe:
		return true
	}
	return false
}

// Severity orders levels for sorting, highest first.
func (l Level) Severity() int {
	switch l {
	case LevelHigh:
		return 3
	case LevelMedium:
		return 2
	case LevelLow:
		return 1
	default:
		return 0
	}
}

type Alert struct {
	store.Meta

	Title              string `json:"title"`
	Description        string `json:"description"`
	Level              Level  `json:"level"`
	Time               string `json:"time"`
	Source             string `json:"source,omitempty"`
	AffectedSupplierID string `json:"affectedSupplierId,omitempty"`
	Acknowledged       bool   `json:"acknowledged"`
	ResolvedAt         string `json:"resolvedAt,omitempty"`
}

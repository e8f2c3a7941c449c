package server

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	compliancedomain "github.com/guardian-io/guardian/internal/compliance/domain"
)

type dashboardStats struct {
	TotalSuppliers       int     `json:"totalSuppliers"`
	AverageRiskScore     float64 `json:"averageRiskScore"`
	ComplianceRatio      float64 `json:"complianceRatio"`
	UnacknowledgedAlerts int     `json:"unacknowledgedAlerts"`
}

func (s *Server) GetDashboardStats(c *gin.Context) {
	ctx := c.Request.Context()

	suppliers, err := s.supplierSvc.List(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	records, err := s.complianceSvc.List(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	unacked, err := s.riskAlertSvc.Unacknowledged(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var riskSum int
	for _, supplier := range suppliers {
		riskSum += supplier.RiskScore
	}
	avgRisk := 0.0
	if len(suppliers) > 0 {
		avgRisk = math.Round(float64(riskSum)/float64(len(suppliers))*10) / 10
	}

	valid := 0
	for _, record := range records {
		if record.Status == compliancedomain.StatusValid {
			valid++
		}
	}
	complianceRatio := 0.0
	if len(records) > 0 {
		complianceRatio = math.Round(float64(valid)/float64(len(records))*1000) / 1000
	}

	c.JSON(http.StatusOK, gin.H{"data": dashboardStats{
		TotalSuppliers:       len(suppliers),
		AverageRiskScore:     avgRisk,
		ComplianceRatio:      complianceRatio,
		UnacknowledgedAlerts: len(unacked),
	}})
}

package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	supplierdomain "github.com/guardian-io/guardian/internal/supplier/domain"
)

type createSupplierRequest struct {
	Name             string `json:"name"`
	Country          string `json:"country"`
	Category         string `json:"category"`
	RiskScore        int    `json:"riskScore"`
	ComplianceStatus string `json:"complianceStatus"`
	TrustLevel       string `json:"trustLevel"`
	ContactEmail     string `json:"contactEmail"`
	ContactPhone     string `json:"contactPhone"`
	Website          string `json:"website"`
	Description      string `json:"description"`
	Image            string `json:"image"`
}

func (s *Server) ListSuppliers(c *gin.Context) {
	resp, err := s.supplierSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetSupplierByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.supplierSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) TopSuppliersByRisk(c *gin.Context) {
	n := 5
	if raw := strings.TrimSpace(c.Query("n")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			AbortWithError(c, newValidationError("n", "invalid_n", "invalid n"))
			return
		}
		n = parsed
	}

	resp, err := s.supplierSvc.TopByRisk(c.Request.Context(), n)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateSupplier(c *gin.Context) {
	var req createSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.supplierSvc.Create(c.Request.Context(), supplierdomain.CreateSupplierRequest{
		Name:             strings.TrimSpace(req.Name),
		Country:          strings.TrimSpace(req.Country),
		Category:         supplierdomain.Category(strings.TrimSpace(req.Category)),
		RiskScore:        req.RiskScore,
		ComplianceStatus: supplierdomain.ComplianceStatus(strings.TrimSpace(req.ComplianceStatus)),
		TrustLevel:       supplierdomain.TrustLevel(strings.TrimSpace(req.TrustLevel)),
		ContactEmail:     strings.TrimSpace(req.ContactEmail),
		ContactPhone:     strings.TrimSpace(req.ContactPhone),
		Website:          strings.TrimSpace(req.Website),
		Description:      req.Description,
		Image:            strings.TrimSpace(req.Image),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) UpdateSupplier(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var patch map[string]json.RawMessage
	if err := c.ShouldBindJSON(&patch); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.supplierSvc.Update(c.Request.Context(), id, patch)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteSupplier(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	if err := s.supplierSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func isSupplierValidationError(err error) bool {
	switch err {
	case supplierdomain.ErrInvalidName,
		supplierdomain.ErrInvalidCountry,
		supplierdomain.ErrInvalidCategory,
		supplierdomain.ErrInvalidRiskScore,
		supplierdomain.ErrInvalidComplianceStatus,
		supplierdomain.ErrInvalidTrustLevel:
		return true
	default:
		return false
	}
}

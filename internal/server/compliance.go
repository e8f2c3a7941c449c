package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	compliancedomain "github.com/guardian-io/guardian/internal/compliance/domain"
)

type createComplianceRecordRequest struct {
	SupplierID   string `json:"supplierId"`
	SupplierName string `json:"supplierName"`
	Type         string `json:"type"`
	Status       string `json:"status"`
	IssueDate    string `json:"issueDate"`
	ExpiryDate   string `json:"expiryDate"`
	DocumentURL  string `json:"documentUrl"`
	Notes        string `json:"notes"`
	VerifiedBy   string `json:"verifiedBy"`
}

func (s *Server) ListComplianceRecords(c *gin.Context) {
	supplierID := strings.TrimSpace(c.Query("supplier_id"))

	var (
		resp []compliancedomain.Record
		err  error
	)
	if supplierID != "" {
		resp, err = s.complianceSvc.GetBySupplier(c.Request.Context(), supplierID)
	} else {
		resp, err = s.complianceSvc.List(c.Request.Context())
	}
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetComplianceRecordByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.complianceSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateComplianceRecord(c *gin.Context) {
	var req createComplianceRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.complianceSvc.Create(c.Request.Context(), compliancedomain.CreateRecordRequest{
		SupplierID:   strings.TrimSpace(req.SupplierID),
		SupplierName: strings.TrimSpace(req.SupplierName),
		Type:         compliancedomain.CertificationType(strings.TrimSpace(req.Type)),
		Status:       compliancedomain.Status(strings.TrimSpace(req.Status)),
		IssueDate:    strings.TrimSpace(req.IssueDate),
		ExpiryDate:   strings.TrimSpace(req.ExpiryDate),
		DocumentURL:  strings.TrimSpace(req.DocumentURL),
		Notes:        req.Notes,
		VerifiedBy:   strings.TrimSpace(req.VerifiedBy),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) UpdateComplianceRecord(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var patch map[string]json.RawMessage
	if err := c.ShouldBindJSON(&patch); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.complianceSvc.Update(c.Request.Context(), id, patch)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteComplianceRecord(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	if err := s.complianceSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func isComplianceValidationError(err error) bool {
	switch err {
	case compliancedomain.ErrInvalidSupplierID,
		compliancedomain.ErrInvalidType,
		compliancedomain.ErrInvalidStatus,
		compliancedomain.ErrInvalidIssueDate,
		compliancedomain.ErrInvalidExpiryDate:
		return true
	default:
		return false
	}
}

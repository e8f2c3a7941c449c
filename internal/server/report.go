package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	reportdomain "github.com/guardian-io/guardian/internal/report/domain"
)

type generateReportRequest struct {
	Name       string                     `json:"name"`
	Type       string                     `json:"type"`
	Format     string                     `json:"format"`
	Parameters map[string]json.RawMessage `json:"parameters"`
	Notes      string                     `json:"notes"`
}

func (s *Server) ListReports(c *gin.Context) {
	resp, err := s.reportSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetReportByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.reportSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GenerateReport(c *gin.Context) {
	var req generateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.reportSvc.Generate(c.Request.Context(), reportdomain.GenerateReportRequest{
		Name:       strings.TrimSpace(req.Name),
		Type:       reportdomain.Type(strings.TrimSpace(req.Type)),
		Format:     reportdomain.Format(strings.TrimSpace(req.Format)),
		Parameters: req.Parameters,
		Notes:      req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) DeleteReport(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	if err := s.reportSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func isReportValidationError(err error) bool {
	switch err {
	case reportdomain.ErrInvalidName,
		reportdomain.ErrInvalidType,
		reportdomain.ErrInvalidFormat:
		return true
	default:
		return false
	}
}

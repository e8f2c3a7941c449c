package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	riskalertdomain "github.com/guardian-io/guardian/internal/riskalert/domain"
)

type createRiskAlertRequest struct {
	Title              string `json:"title"`
	Description        string `json:"description"`
	Level              string `json:"level"`
	Time               string `json:"time"`
	Source             string `json:"source"`
	AffectedSupplierID string `json:"affectedSupplierId"`
}

func (s *Server) ListRiskAlerts(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		resp []riskalertdomain.Alert
		err  error
	)
	switch {
	case strings.TrimSpace(c.Query("level")) != "":
		resp, err = s.riskAlertSvc.ByLevel(ctx, riskalertdomain.Level(strings.TrimSpace(c.Query("level"))))
	case strings.TrimSpace(c.Query("unacknowledged")) == "true":
		resp, err = s.riskAlertSvc.Unacknowledged(ctx)
	default:
		resp, err = s.riskAlertSvc.List(ctx)
	}
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RiskAlertCounts(c *gin.Context) {
	resp, err := s.riskAlertSvc.CountsByLevel(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetRiskAlertByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.riskAlertSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateRiskAlert(c *gin.Context) {
	var req createRiskAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.riskAlertSvc.Create(c.Request.Context(), riskalertdomain.CreateAlertRequest{
		Title:              strings.TrimSpace(req.Title),
		Description:        strings.TrimSpace(req.Description),
		Level:              riskalertdomain.Level(strings.TrimSpace(req.Level)),
		Time:               strings.TrimSpace(req.Time),
		Source:             strings.TrimSpace(req.Source),
		AffectedSupplierID: strings.TrimSpace(req.AffectedSupplierID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) UpdateRiskAlert(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var patch map[string]json.RawMessage
	if err := c.ShouldBindJSON(&patch); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.riskAlertSvc.Update(c.Request.Context(), id, patch)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) AcknowledgeRiskAlert(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.riskAlertSvc.Acknowledge(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ResolveRiskAlert(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.riskAlertSvc.Resolve(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteRiskAlert(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	if err := s.riskAlertSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func isRiskAlertValidationError(err error) bool {
	switch err {
	case riskalertdomain.ErrInvalidTitle,
		riskalertdomain.ErrInvalidDescription,
		riskalertdomain.ErrInvalidLevel:
		return true
	default:
		return false
	}
}

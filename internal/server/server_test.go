package server

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/guardian-io/guardian/internal/clock"
	complianceservice "github.com/guardian-io/guardian/internal/compliance/service"
	"github.com/guardian-io/guardian/internal/config"
	"github.com/guardian-io/guardian/internal/graph"
	"github.com/guardian-io/guardian/internal/graph/live"
	reportservice "github.com/guardian-io/guardian/internal/report/service"
	riskalertservice "github.com/guardian-io/guardian/internal/riskalert/service"
	supplierservice "github.com/guardian-io/guardian/internal/supplier/service"
	"github.com/guardian-io/guardian/pkg/blob"
	"github.com/guardian-io/guardian/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) (*Server, *clock.FakeClock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	clk := clock.NewFakeClock(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	log := zap.NewNop()
	storeParams := store.Params{
		Blobs: blob.NewMemoryStore(),
		Clock: clk,
		GenID: node,
		Log:   log,
	}
	cfg := config.Config{
		HTTPAddr:            ":0",
		LayoutFrameInterval: time.Millisecond,
		CanvasWidth:         800,
		CanvasHeight:        400,
	}

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	manager := graph.NewManager(graph.Params{Config: cfg, Hub: live.NewHub(), Log: log})
	t.Cleanup(manager.Shutdown)

	srv := NewServer(ServerParams{
		Gin:           engine,
		Cfg:           cfg,
		SupplierSvc:   supplierservice.New(supplierservice.Params{Store: storeParams, Log: log}),
		ComplianceSvc: complianceservice.New(complianceservice.Params{Store: storeParams, Log: log}),
		RiskAlertSvc:  riskalertservice.New(riskalertservice.Params{Store: storeParams, Log: log}),
		ReportSvc:     reportservice.New(reportservice.Params{Store: storeParams, Log: log}),
		Layout:        manager,
	})
	return srv, clk
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

type supplierView struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	RiskScore        int       `json:"riskScore"`
	ComplianceStatus string    `json:"complianceStatus"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func TestSupplierLifecycleEndToEnd(t *testing.T) {
	srv, clk := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/v1/suppliers", gin.H{
		"name":             "Acme",
		"country":          "US",
		"category":         "Hardware",
		"riskScore":        40,
		"complianceStatus": "pending",
		"trustLevel":       "verified",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created supplierView
	decodeData(t, rec, &created)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	clk.Advance(time.Minute)
	rec = doJSON(t, srv, http.MethodPatch, "/v1/suppliers/"+created.ID, gin.H{
		"riskScore": 85,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated supplierView
	decodeData(t, rec, &updated)
	assert.Equal(t, 85, updated.RiskScore)
	assert.Equal(t, "pending", updated.ComplianceStatus)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	rec = doJSON(t, srv, http.MethodDelete, "/v1/suppliers/"+created.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/v1/suppliers/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListSuppliersServesSeed(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/v1/suppliers", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var suppliers []supplierView
	decodeData(t, rec, &suppliers)
	assert.Len(t, suppliers, 4)
}

func TestCreateSupplierValidationEnvelope(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/v1/suppliers", gin.H{
		"name":             "Acme",
		"country":          "US",
		"category":         "Pottery",
		"riskScore":        40,
		"complianceStatus": "pending",
		"trustLevel":       "verified",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope struct {
		Error struct {
			Type   string `json:"type"`
			Errors []struct {
				Field string `json:"field"`
				Code  string `json:"code"`
			} `json:"errors"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "validation_error", envelope.Error.Type)
	require.Len(t, envelope.Error.Errors, 1)
	assert.Equal(t, "invalid_category", envelope.Error.Errors[0].Code)
	assert.Equal(t, "category", envelope.Error.Errors[0].Field)
}

func TestTopSuppliersByRisk(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/v1/suppliers/top?n=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var suppliers []supplierView
	decodeData(t, rec, &suppliers)
	require.Len(t, suppliers, 2)
	assert.Equal(t, "TechSolutions Inc.", suppliers[0].Name)

	rec = doJSON(t, srv, http.MethodGet, "/v1/suppliers/top?n=zero", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestComplianceRecordsSupplierFilter(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/v1/compliance-records?supplier_id=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var records []struct {
		SupplierID string `json:"supplierId"`
		Type       string `json:"type"`
	}
	decodeData(t, rec, &records)
	require.Len(t, records, 1)
	assert.Equal(t, "ISO 27001", records[0].Type)

	rec = doJSON(t, srv, http.MethodGet, "/v1/compliance-records", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &records)
	assert.Len(t, records, 3)
}

func TestRiskAlertAcknowledgeAndResolve(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/v1/risk-alerts", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var alerts []struct {
		ID           string `json:"id"`
		Acknowledged bool   `json:"acknowledged"`
		ResolvedAt   string `json:"resolvedAt"`
	}
	decodeData(t, rec, &alerts)
	require.Len(t, alerts, 4)

	rec = doJSON(t, srv, http.MethodPost, "/v1/risk-alerts/"+alerts[0].ID+"/acknowledge", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var acked struct {
		Acknowledged bool   `json:"acknowledged"`
		ResolvedAt   string `json:"resolvedAt"`
	}
	decodeData(t, rec, &acked)
	assert.True(t, acked.Acknowledged)
	assert.Empty(t, acked.ResolvedAt)

	rec = doJSON(t, srv, http.MethodPost, "/v1/risk-alerts/"+alerts[1].ID+"/resolve", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &acked)
	assert.True(t, acked.Acknowledged)
	assert.NotEmpty(t, acked.ResolvedAt)

	rec = doJSON(t, srv, http.MethodGet, "/v1/risk-alerts/counts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var counts map[string]int
	decodeData(t, rec, &counts)
	assert.Equal(t, 1, counts["high"])
}

func TestGenerateReportEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/v1/reports/generate", gin.H{
		"name":   "Q1 risk assessment",
		"type":   "Risk Assessment",
		"format": "PDF",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var report struct {
		ID          string `json:"id"`
		DownloadURL string `json:"downloadUrl"`
	}
	decodeData(t, rec, &report)
	assert.NotEmpty(t, report.ID)
	assert.True(t, strings.HasSuffix(report.DownloadURL, ".pdf"))

	rec = doJSON(t, srv, http.MethodPost, "/v1/reports/generate", gin.H{
		"name":   "Q1 risk assessment",
		"type":   "Risk Assessment",
		"format": "Word",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDashboardStats(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/v1/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats struct {
		TotalSuppliers       int     `json:"totalSuppliers"`
		AverageRiskScore     float64 `json:"averageRiskScore"`
		ComplianceRatio      float64 `json:"complianceRatio"`
		UnacknowledgedAlerts int     `json:"unacknowledgedAlerts"`
	}
	decodeData(t, rec, &stats)
	assert.Equal(t, 4, stats.TotalSuppliers)
	assert.InDelta(t, 55.5, stats.AverageRiskScore, 0.01)
	assert.InDelta(t, 0.667, stats.ComplianceRatio, 0.001)
	assert.Equal(t, 4, stats.UnacknowledgedAlerts)
}

func TestSupplyChainGraphTopology(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/v1/supply-chain/graph", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var topo struct {
		Nodes []struct {
			ID string `json:"id"`
		} `json:"nodes"`
		Links []struct {
			Source string  `json:"source"`
			Value  float64 `json:"value"`
		} `json:"links"`
	}
	decodeData(t, rec, &topo)
	assert.Len(t, topo.Nodes, 8)
	assert.Len(t, topo.Links, 9)
}

func TestLayoutSessionLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/v1/supply-chain/layout", gin.H{})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var sess struct {
		ID    string `json:"id"`
		Phase string `json:"phase"`
	}
	decodeData(t, rec, &sess)
	require.NotEmpty(t, sess.ID)

	rec = doJSON(t, srv, http.MethodPost, "/v1/supply-chain/layout/"+sess.ID+"/drag", gin.H{
		"nodeId": "center",
		"x":      120.0,
		"y":      80.0,
	})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = doJSON(t, srv, http.MethodGet, "/v1/supply-chain/layout/"+sess.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/v1/supply-chain/layout/"+sess.ID+"/release", gin.H{
		"nodeId": "center",
	})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, srv, http.MethodDelete, "/v1/supply-chain/layout/"+sess.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, srv, http.MethodDelete, "/v1/supply-chain/layout/"+sess.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLayoutStreamEmitsFrames(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/v1/supply-chain/layout", gin.H{})
	require.Equal(t, http.StatusCreated, rec.Code)

	var sess struct {
		ID string `json:"id"`
	}
	decodeData(t, rec, &sess)

	ts := httptest.NewServer(srv.Engine())
	defer ts.Close()

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(ts.URL + "/v1/supply-chain/layout/" + sess.ID + "/stream")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var frame struct {
			Tick  int `json:"tick"`
			Nodes []struct {
				ID string `json:"id"`
			} `json:"nodes"`
		}
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(strings.TrimSpace(line), "data: ")), &frame))
		assert.Len(t, frame.Nodes, 8)
		break
	}
}

func TestUnknownRecordMapsToNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{
		"/v1/suppliers/nope",
		"/v1/compliance-records/nope",
		"/v1/risk-alerts/nope",
		"/v1/reports/nope",
	} {
		rec := doJSON(t, srv, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)

		var envelope struct {
			Error struct {
				Type string `json:"type"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		assert.Equal(t, "not_found", envelope.Error.Type)
	}
}

package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/guardian-io/guardian/internal/compliance"
	compliancedomain "github.com/guardian-io/guardian/internal/compliance/domain"
	"github.com/guardian-io/guardian/internal/config"
	"github.com/guardian-io/guardian/internal/graph"
	"github.com/guardian-io/guardian/internal/observability"
	obsmiddleware "github.com/guardian-io/guardian/internal/observability/logger"
	obsmetrics "github.com/guardian-io/guardian/internal/observability/metrics"
	obstracing "github.com/guardian-io/guardian/internal/observability/tracing"
	"github.com/guardian-io/guardian/internal/report"
	reportdomain "github.com/guardian-io/guardian/internal/report/domain"
	"github.com/guardian-io/guardian/internal/riskalert"
	riskalertdomain "github.com/guardian-io/guardian/internal/riskalert/domain"
	"github.com/guardian-io/guardian/internal/supplier"
	supplierdomain "github.com/guardian-io/guardian/internal/supplier/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	supplier.Module,
	compliance.Module,
	riskalert.Module,
	report.Module,
	graph.Module,
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	supplierSvc   supplierdomain.Service
	complianceSvc compliancedomain.Service
	riskAlertSvc  riskalertdomain.Service
	reportSvc     reportdomain.Service
	layout        *graph.Manager
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	SupplierSvc   supplierdomain.Service
	ComplianceSvc compliancedomain.Service
	RiskAlertSvc  riskalertdomain.Service
	ReportSvc     reportdomain.Service
	Layout        *graph.Manager
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		supplierSvc:   p.SupplierSvc,
		complianceSvc: p.ComplianceSvc,
		riskAlertSvc:  p.RiskAlertSvc,
		reportSvc:     p.ReportSvc,
		layout:        p.Layout,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	v1 := s.engine.Group("/v1")

	// -------- Suppliers --------
	v1.GET("/suppliers", s.ListSuppliers)
	v1.POST("/suppliers", s.CreateSupplier)
	v1.GET("/suppliers/top", s.TopSuppliersByRisk)
	v1.GET("/suppliers/:id", s.GetSupplierByID)
	v1.PATCH("/suppliers/:id", s.UpdateSupplier)
	v1.DELETE("/suppliers/:id", s.DeleteSupplier)

	// -------- Compliance records --------
	v1.GET("/compliance-records", s.ListComplianceRecords)
	v1.POST("/compliance-records", s.CreateComplianceRecord)
	v1.GET("/compliance-records/:id", s.GetComplianceRecordByID)
	v1.PATCH("/compliance-records/:id", s.UpdateComplianceRecord)
	v1.DELETE("/compliance-records/:id", s.DeleteComplianceRecord)

	// -------- Risk alerts --------
	v1.GET("/risk-alerts", s.ListRiskAlerts)
	v1.POST("/risk-alerts", s.CreateRiskAlert)
	v1.GET("/risk-alerts/counts", s.RiskAlertCounts)
	v1.GET("/risk-alerts/:id", s.GetRiskAlertByID)
	v1.PATCH("/risk-alerts/:id", s.UpdateRiskAlert)
	v1.DELETE("/risk-alerts/:id", s.DeleteRiskAlert)
	v1.POST("/risk-alerts/:id/acknowledge", s.AcknowledgeRiskAlert)
	v1.POST("/risk-alerts/:id/resolve", s.ResolveRiskAlert)

	// -------- Reports --------
	v1.GET("/reports", s.ListReports)
	v1.POST("/reports/generate", s.GenerateReport)
	v1.GET("/reports/:id", s.GetReportByID)
	v1.DELETE("/reports/:id", s.DeleteReport)

	// -------- Dashboard --------
	v1.GET("/dashboard/stats", s.GetDashboardStats)

	// -------- Supply-chain graph --------
	v1.GET("/supply-chain/graph", s.GetSupplyChainGraph)
	v1.POST("/supply-chain/layout", s.StartLayoutSession)
	v1.GET("/supply-chain/layout/:id", s.GetLayoutSnapshot)
	v1.GET("/supply-chain/layout/:id/stream", s.StreamLayoutFrames)
	v1.POST("/supply-chain/layout/:id/drag", s.DragLayoutNode)
	v1.POST("/supply-chain/layout/:id/release", s.ReleaseLayoutNode)
	v1.DELETE("/supply-chain/layout/:id", s.StopLayoutSession)
}

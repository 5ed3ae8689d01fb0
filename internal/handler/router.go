package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/sma-report-gateway/api/swagger"
	"github.com/noah-isme/sma-report-gateway/internal/middleware"
	"github.com/noah-isme/sma-report-gateway/internal/service"
	appErrors "github.com/noah-isme/sma-report-gateway/pkg/errors"
	"github.com/noah-isme/sma-report-gateway/pkg/logger"
	corsmiddleware "github.com/noah-isme/sma-report-gateway/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sma-report-gateway/pkg/middleware/requestid"
	"github.com/noah-isme/sma-report-gateway/pkg/response"
)

// Handlers groups every endpoint handler served by the router.
type Handlers struct {
	Report  *ReportHandler
	Lookup  *LookupHandler
	Metrics *MetricsHandler
}

// RouterConfig carries the ambient pieces the router needs.
type RouterConfig struct {
	AllowedOrigins []string
	EnableDocs     bool
	Logger         *zap.Logger
	Metrics        *service.MetricsService
}

// NewRouter builds the engine with middleware and the route table.
func NewRouter(cfg RouterConfig, h Handlers) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(cfg.Logger))
	r.Use(middleware.Metrics(cfg.Metrics))
	r.Use(corsmiddleware.New(cfg.AllowedOrigins))

	if cfg.EnableDocs {
		r.GET("/api-docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	RegisterRoutes(r, h)

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, appErrors.ErrNotFound)
	})

	return r
}

// RegisterRoutes binds each method and path to its handler.
func RegisterRoutes(r gin.IRouter, h Handlers) {
	if h.Metrics != nil {
		r.GET("/health", h.Metrics.Health)
		r.GET("/ready", h.Metrics.Ready)
		r.GET("/metrics", h.Metrics.Prometheus)
	}

	if h.Report != nil {
		r.POST("/report", h.Report.Create)
		r.GET("/report", h.Report.List)
		r.PUT("/report", h.Report.UpdateGrade)
		r.PATCH("/reports", h.Report.UpdateSemester)
		r.DELETE("/reports/:id", h.Report.Delete)
	}

	if h.Lookup != nil {
		r.GET("/company", h.Lookup.ListCompanies)
		r.GET("/company/:id", h.Lookup.GetCompany)
		r.GET("/daysorder", h.Lookup.ListDaysOrders)
	}
}

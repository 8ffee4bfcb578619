package http

import (
	"fmt"
	nethttp "net/http"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "github.com/jeremiahbrem/biztime/docs"
	httpH "github.com/jeremiahbrem/biztime/internal/http/handlers"
	httpMW "github.com/jeremiahbrem/biztime/internal/http/middleware"
	"github.com/jeremiahbrem/biztime/internal/http/response"
	"github.com/jeremiahbrem/biztime/internal/observability"
	"github.com/jeremiahbrem/biztime/internal/platform/apierr"
	"github.com/jeremiahbrem/biztime/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	CORSOrigins []string
	Metrics     *observability.Metrics
	Tracing     bool
	Swagger     bool

	CompanyHandler  *httpH.CompanyHandler
	InvoiceHandler  *httpH.InvoiceHandler
	IndustryHandler *httpH.IndustryHandler
	HealthHandler   *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Tracing {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}
	if cfg.Swagger {
		r.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))))
	}

	// Companies
	if h := cfg.CompanyHandler; h != nil {
		companies := r.Group("/companies")
		companies.GET("", h.ListCompanies)
		companies.POST("", h.CreateCompany)
		companies.GET("/:code", h.GetCompany)
		companies.PUT("/:code", h.UpdateCompany)
		companies.DELETE("/:code", h.DeleteCompany)
	}

	// Invoices
	if h := cfg.InvoiceHandler; h != nil {
		invoices := r.Group("/invoices")
		invoices.GET("", h.ListInvoices)
		invoices.POST("", h.CreateInvoice)
		invoices.GET("/:id", h.GetInvoice)
		invoices.PUT("/:id", h.UpdateInvoice)
		invoices.DELETE("/:id", h.DeleteInvoice)
	}

	// Industries
	if h := cfg.IndustryHandler; h != nil {
		industries := r.Group("/industries")
		industries.GET("", h.ListIndustries)
		industries.POST("", h.CreateIndustry)
		industries.POST("/:i_code", h.AssociateCompany)
	}

	r.NoRoute(func(c *gin.Context) {
		response.RespondError(c, nethttp.StatusNotFound, apierr.CodeNotFound, fmt.Errorf("no route for %s %s", c.Request.Method, c.Request.URL.Path))
	})

	return r
}

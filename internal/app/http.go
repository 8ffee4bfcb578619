package app

import (
	"gorm.io/gorm"

	"github.com/jeremiahbrem/biztime/internal/http"
	httpH "github.com/jeremiahbrem/biztime/internal/http/handlers"
	"github.com/jeremiahbrem/biztime/internal/observability"
	"github.com/jeremiahbrem/biztime/internal/platform/logger"
)

type Handlers struct {
	Health   *httpH.HealthHandler
	Company  *httpH.CompanyHandler
	Invoice  *httpH.InvoiceHandler
	Industry *httpH.IndustryHandler
}

func wireHandlers(db *gorm.DB, log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:   httpH.NewHealthHandler(db),
		Company:  httpH.NewCompanyHandler(log, services.Company),
		Invoice:  httpH.NewInvoiceHandler(log, services.Invoice),
		Industry: httpH.NewIndustryHandler(log, services.Industry),
	}
}

func wireRouterConfig(cfg Config, log *logger.Logger, handlers Handlers, metrics *observability.Metrics) http.RouterConfig {
	return http.RouterConfig{
		Log:             log,
		ServiceName:     cfg.ServiceName,
		CORSOrigins:     cfg.CORSAllowOrigins,
		Metrics:         metrics,
		Tracing:         cfg.Otel.Enabled,
		Swagger:         cfg.Swagger,
		CompanyHandler:  handlers.Company,
		InvoiceHandler:  handlers.Invoice,
		IndustryHandler: handlers.Industry,
		HealthHandler:   handlers.Health,
	}
}

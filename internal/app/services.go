package app

import (
	"gorm.io/gorm"

	"github.com/jeremiahbrem/biztime/internal/platform/logger"
	"github.com/jeremiahbrem/biztime/internal/services"
)

type Services struct {
	Company  services.CompanyService
	Invoice  services.InvoiceService
	Industry services.IndustryService
}

func wireServices(db *gorm.DB, log *logger.Logger, reposet Repos) Services {
	log.Info("Wiring services...")
	return Services{
		Company:  services.NewCompanyService(db, log, reposet.Company, reposet.Invoice),
		Invoice:  services.NewInvoiceService(db, log, reposet.Invoice),
		Industry: services.NewIndustryService(db, log, reposet.Industry, reposet.Company),
	}
}

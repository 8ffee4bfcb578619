package app

import (
	"gorm.io/gorm"

	"github.com/jeremiahbrem/biztime/internal/data/repos"
	"github.com/jeremiahbrem/biztime/internal/platform/logger"
)

type Repos struct {
	Company  repos.CompanyRepo
	Invoice  repos.InvoiceRepo
	Industry repos.IndustryRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Company:  repos.NewCompanyRepo(db, log),
		Invoice:  repos.NewInvoiceRepo(db, log),
		Industry: repos.NewIndustryRepo(db, log),
	}
}

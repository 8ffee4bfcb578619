package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/jeremiahbrem/biztime/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.Company{},
		&domain.Invoice{},
		&domain.Industry{},
		&domain.CompanyIndustry{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return EnsureIndexes(db)
}

func EnsureIndexes(db *gorm.DB) error {
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_invoices_paid ON invoices(paid);`).Error; err != nil {
		return fmt.Errorf("create idx_invoices_paid: %w", err)
	}
	return nil
}

package testutil

import (
	"context"
	"testing"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/jeremiahbrem/biztime/internal/domain"
)

func SeedCompany(tb testing.TB, ctx context.Context, tx *gorm.DB, code, name, description string) *domain.Company {
	tb.Helper()
	c := &domain.Company{Code: code, Name: name, Description: description}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed company: %v", err)
	}
	return c
}

func SeedIndustry(tb testing.TB, ctx context.Context, tx *gorm.DB, code, name string) *domain.Industry {
	tb.Helper()
	ind := &domain.Industry{ICode: code, Industry: name}
	if err := tx.WithContext(ctx).Create(ind).Error; err != nil {
		tb.Fatalf("seed industry: %v", err)
	}
	return ind
}

func SeedAssociation(tb testing.TB, ctx context.Context, tx *gorm.DB, compCode, industCode string) *domain.CompanyIndustry {
	tb.Helper()
	ci := &domain.CompanyIndustry{CompCode: compCode, IndustCode: industCode}
	if err := tx.WithContext(ctx).Create(ci).Error; err != nil {
		tb.Fatalf("seed association: %v", err)
	}
	return ci
}

func SeedInvoice(tb testing.TB, ctx context.Context, tx *gorm.DB, compCode string, amt float64) *domain.Invoice {
	tb.Helper()
	inv := &domain.Invoice{
		CompCode: compCode,
		Amt:      amt,
		AddDate:  datatypes.Date(time.Now().UTC()),
	}
	if err := tx.WithContext(ctx).Create(inv).Error; err != nil {
		tb.Fatalf("seed invoice: %v", err)
	}
	return inv
}

// SeedIndustryScenario loads ibm→tech, apple→ent, apple→tech and an
// unassociated "bus" industry.
func SeedIndustryScenario(tb testing.TB, ctx context.Context, tx *gorm.DB) {
	tb.Helper()
	SeedCompany(tb, ctx, tx, "apple", "Apple Computer", "Maker of OSX.")
	SeedCompany(tb, ctx, tx, "ibm", "IBM", "Big blue.")
	SeedIndustry(tb, ctx, tx, "tech", "Technology")
	SeedIndustry(tb, ctx, tx, "ent", "Entertainment")
	SeedIndustry(tb, ctx, tx, "bus", "Business Services")
	SeedAssociation(tb, ctx, tx, "ibm", "tech")
	SeedAssociation(tb, ctx, tx, "apple", "ent")
	SeedAssociation(tb, ctx, tx, "apple", "tech")
}

package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jeremiahbrem/biztime/internal/data/repos"
	"github.com/jeremiahbrem/biztime/internal/data/repos/testutil"
	"github.com/jeremiahbrem/biztime/internal/platform/apierr"
)

type fixture struct {
	db         *gorm.DB
	companies  CompanyService
	invoices   *invoiceService
	industries IndustryService
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	companyRepo := repos.NewCompanyRepo(db, log)
	invoiceRepo := repos.NewInvoiceRepo(db, log)
	industryRepo := repos.NewIndustryRepo(db, log)
	return fixture{
		db:         db,
		companies:  NewCompanyService(db, log, companyRepo, invoiceRepo),
		invoices:   NewInvoiceService(db, log, invoiceRepo).(*invoiceService),
		industries: NewIndustryService(db, log, industryRepo, companyRepo),
	}
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	var apiErr *apierr.Error
	require.True(t, errors.As(err, &apiErr), "expected *apierr.Error, got %T: %v", err, err)
	assert.Equal(t, status, apiErr.Status, apiErr.Error())
}

package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremiahbrem/biztime/internal/data/repos/testutil"
	"github.com/jeremiahbrem/biztime/internal/pkg/pointers"
)

func TestInvoiceCreateAndGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	testutil.SeedCompany(t, ctx, f.db, "ibm", "IBM", "Big blue.")

	inv, err := f.invoices.Create(ctx, "ibm", 250)
	require.NoError(t, err)
	assert.NotZero(t, inv.ID)
	assert.False(t, inv.Paid)
	assert.Nil(t, inv.PaidDate)

	detail, err := f.invoices.Get(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, 250.0, detail.Amt)
	assert.Equal(t, "ibm", detail.Company.Code)
	assert.Equal(t, "IBM", detail.Company.Name)

	_, err = f.invoices.Get(ctx, inv.ID+100)
	requireStatus(t, err, http.StatusNotFound)

	_, err = f.invoices.Create(ctx, "nope", 10)
	requireStatus(t, err, http.StatusNotFound)

	_, err = f.invoices.Create(ctx, "ibm", 0)
	requireStatus(t, err, http.StatusBadRequest)

	list, err := f.invoices.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, inv.ID, list[0].ID)
}

func TestInvoicePaidTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	testutil.SeedCompany(t, ctx, f.db, "ibm", "IBM", "")
	inv := testutil.SeedInvoice(t, ctx, f.db, "ibm", 100)

	payDay := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	f.invoices.now = func() time.Time { return payDay }

	got, err := f.invoices.Update(ctx, inv.ID, 120, pointers.Ptr(true))
	require.NoError(t, err)
	assert.True(t, got.Paid)
	assert.Equal(t, 120.0, got.Amt)
	require.NotNil(t, got.PaidDate)
	assert.Equal(t, "2024-03-15", time.Time(*got.PaidDate).Format("2006-01-02"))

	// Paying again keeps the original paid date.
	f.invoices.now = func() time.Time { return payDay.AddDate(0, 1, 0) }
	got, err = f.invoices.Update(ctx, inv.ID, 130, pointers.Ptr(true))
	require.NoError(t, err)
	require.NotNil(t, got.PaidDate)
	assert.Equal(t, "2024-03-15", time.Time(*got.PaidDate).Format("2006-01-02"))

	// Amount-only update leaves paid state untouched.
	got, err = f.invoices.Update(ctx, inv.ID, 140, nil)
	require.NoError(t, err)
	assert.True(t, got.Paid)

	got, err = f.invoices.Update(ctx, inv.ID, 140, pointers.Ptr(false))
	require.NoError(t, err)
	assert.False(t, got.Paid)
	assert.Nil(t, got.PaidDate)

	_, err = f.invoices.Update(ctx, inv.ID+100, 10, nil)
	requireStatus(t, err, http.StatusNotFound)

	_, err = f.invoices.Update(ctx, inv.ID, -5, nil)
	requireStatus(t, err, http.StatusBadRequest)
}

func TestInvoiceDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	testutil.SeedCompany(t, ctx, f.db, "ibm", "IBM", "")
	inv := testutil.SeedInvoice(t, ctx, f.db, "ibm", 100)

	require.NoError(t, f.invoices.Delete(ctx, inv.ID))
	requireStatus(t, f.invoices.Delete(ctx, inv.ID), http.StatusNotFound)
}

func TestInvoiceAmountMustFitColumn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	testutil.SeedCompany(t, ctx, f.db, "ibm", "IBM", "")
	inv := testutil.SeedInvoice(t, ctx, f.db, "ibm", 100)

	for _, amt := range []float64{0.001, 12.345, 1e8, 1e20, -5} {
		_, err := f.invoices.Create(ctx, "ibm", amt)
		requireStatus(t, err, http.StatusBadRequest)

		_, err = f.invoices.Update(ctx, inv.ID, amt, nil)
		requireStatus(t, err, http.StatusBadRequest)
	}

	for _, amt := range []float64{0.01, 0.29, 19.9, 99999999.99} {
		created, err := f.invoices.Create(ctx, "ibm", amt)
		require.NoError(t, err, "amt %v", amt)
		assert.Equal(t, amt, created.Amt)
	}

	got, err := f.invoices.Get(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, got.Amt, "rejected updates leave the amount alone")
}

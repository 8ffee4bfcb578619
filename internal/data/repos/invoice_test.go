package repos

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/datatypes"

	"github.com/jeremiahbrem/biztime/internal/data/db"
	"github.com/jeremiahbrem/biztime/internal/data/repos/testutil"
	"github.com/jeremiahbrem/biztime/internal/domain"
	"github.com/jeremiahbrem/biztime/internal/platform/dbctx"
)

func TestInvoiceRepo(t *testing.T) {
	conn := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	repo := NewInvoiceRepo(conn, testutil.Logger(t))

	testutil.SeedCompany(t, ctx, conn, "apple", "Apple", "Created iphone.")

	inv, err := repo.Create(dbc, &domain.Invoice{
		CompCode: "apple",
		Amt:      50,
		AddDate:  datatypes.Date(time.Now().UTC()),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if inv.ID == 0 {
		t.Fatalf("Create: expected id to be assigned")
	}

	if _, err := repo.Create(dbc, &domain.Invoice{CompCode: "nope", Amt: 10, AddDate: datatypes.Date(time.Now().UTC())}); !errors.Is(err, db.ErrForeignKey) {
		t.Fatalf("Create with unknown company: expected ErrForeignKey, got %v", err)
	}

	list, err := repo.List(dbc)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].ID != inv.ID || list[0].CompCode != "apple" {
		t.Fatalf("List: unexpected result: %+v", list)
	}

	row, err := repo.GetWithCompany(dbc, inv.ID)
	if err != nil || row == nil {
		t.Fatalf("GetWithCompany: row=%v err=%v", row, err)
	}
	detail := row.Detail()
	if detail.Amt != 50 || detail.Paid || detail.PaidDate != nil {
		t.Fatalf("GetWithCompany: unexpected invoice fields: %+v", detail)
	}
	if detail.Company.Code != "apple" || detail.Company.Name != "Apple" || detail.Company.Description != "Created iphone." {
		t.Fatalf("GetWithCompany: unexpected company: %+v", detail.Company)
	}

	if row, err := repo.GetWithCompany(dbc, inv.ID+1000); err != nil || row != nil {
		t.Fatalf("GetWithCompany missing: row=%v err=%v", row, err)
	}

	n, err := repo.UpdateFields(dbc, inv.ID, map[string]any{"amt": 55.0})
	if err != nil || n != 1 {
		t.Fatalf("UpdateFields: n=%d err=%v", n, err)
	}
	got, err := repo.GetByIDs(dbc, []int64{inv.ID})
	if err != nil || len(got) != 1 || got[0].Amt != 55 {
		t.Fatalf("GetByIDs after update: got=%+v err=%v", got, err)
	}

	ids, err := repo.IDsByCompany(dbc, "apple")
	if err != nil || len(ids) != 1 || ids[0] != inv.ID {
		t.Fatalf("IDsByCompany: ids=%v err=%v", ids, err)
	}

	if n, err := repo.DeleteByID(dbc, inv.ID); err != nil || n != 1 {
		t.Fatalf("DeleteByID: n=%d err=%v", n, err)
	}
	if n, err := repo.DeleteByID(dbc, inv.ID); err != nil || n != 0 {
		t.Fatalf("DeleteByID again: n=%d err=%v", n, err)
	}
}

func TestInvoicesCascadeWithCompany(t *testing.T) {
	conn := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}

	testutil.SeedCompany(t, ctx, conn, "apple", "Apple", "Created iphone.")
	inv := testutil.SeedInvoice(t, ctx, conn, "apple", 75)

	if _, err := NewCompanyRepo(conn, testutil.Logger(t)).DeleteByCode(dbc, "apple"); err != nil {
		t.Fatalf("DeleteByCode: %v", err)
	}
	got, err := NewInvoiceRepo(conn, testutil.Logger(t)).GetByIDs(dbc, []int64{inv.ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected invoice to be removed with its company, got %+v", got)
	}
}

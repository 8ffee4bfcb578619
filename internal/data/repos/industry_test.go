package repos

import (
	"context"
	"errors"
	"testing"

	"github.com/jeremiahbrem/biztime/internal/data/db"
	"github.com/jeremiahbrem/biztime/internal/data/repos/testutil"
	"github.com/jeremiahbrem/biztime/internal/domain"
	"github.com/jeremiahbrem/biztime/internal/platform/dbctx"
)

func TestIndustryRepoListCompanyRows(t *testing.T) {
	conn := testutil.DB(t)
	ctx := context.Background()
	testutil.SeedIndustryScenario(t, ctx, conn)

	repo := NewIndustryRepo(conn, testutil.Logger(t))
	rows, err := repo.ListCompanyRows(dbctx.Context{Ctx: ctx})
	if err != nil {
		t.Fatalf("ListCompanyRows: %v", err)
	}
	want := []domain.IndustryCompanyRow{
		{ICode: "tech", Industry: "Technology", CompCode: "ibm"},
		{ICode: "ent", Industry: "Entertainment", CompCode: "apple"},
		{ICode: "tech", Industry: "Technology", CompCode: "apple"},
	}
	if len(rows) != len(want) {
		t.Fatalf("ListCompanyRows: expected %d rows, got %d: %+v", len(want), len(rows), rows)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Fatalf("ListCompanyRows[%d]: got %+v want %+v", i, rows[i], want[i])
		}
	}
}

func TestIndustryRepoCreateAndAssociate(t *testing.T) {
	conn := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	repo := NewIndustryRepo(conn, testutil.Logger(t))

	testutil.SeedCompany(t, ctx, conn, "ibm", "IBM", "Big blue.")

	if _, err := repo.Create(dbc, []*domain.Industry{{ICode: "ag", Industry: "agriculture"}}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.Create(dbc, []*domain.Industry{{ICode: "ag", Industry: "farming"}}); !errors.Is(err, db.ErrDuplicate) {
		t.Fatalf("Create duplicate: expected ErrDuplicate, got %v", err)
	}
	got, err := repo.GetByCodes(dbc, []string{"ag"})
	if err != nil || len(got) != 1 || got[0].Industry != "agriculture" {
		t.Fatalf("GetByCodes: got=%+v err=%v", got, err)
	}

	assoc, err := repo.Associate(dbc, &domain.CompanyIndustry{CompCode: "ibm", IndustCode: "ag"})
	if err != nil {
		t.Fatalf("Associate: %v", err)
	}
	if assoc.CompCode != "ibm" || assoc.IndustCode != "ag" {
		t.Fatalf("Associate: unexpected association: %+v", assoc)
	}
	if _, err := repo.Associate(dbc, &domain.CompanyIndustry{CompCode: "ibm", IndustCode: "ag"}); !errors.Is(err, db.ErrDuplicate) {
		t.Fatalf("Associate twice: expected ErrDuplicate, got %v", err)
	}
	if _, err := repo.Associate(dbc, &domain.CompanyIndustry{CompCode: "ibm", IndustCode: "none"}); !errors.Is(err, db.ErrForeignKey) {
		t.Fatalf("Associate unknown industry: expected ErrForeignKey, got %v", err)
	}
}

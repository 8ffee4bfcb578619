package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/jeremiahbrem/biztime/internal/data/db"
	"github.com/jeremiahbrem/biztime/internal/data/repos"
	"github.com/jeremiahbrem/biztime/internal/domain"
	"github.com/jeremiahbrem/biztime/internal/observability"
	"github.com/jeremiahbrem/biztime/internal/pkg/pointers"
	"github.com/jeremiahbrem/biztime/internal/platform/apierr"
	"github.com/jeremiahbrem/biztime/internal/platform/dbctx"
	"github.com/jeremiahbrem/biztime/internal/platform/logger"
)

type InvoiceService interface {
	List(ctx context.Context) ([]domain.InvoiceSummary, error)
	Get(ctx context.Context, id int64) (*domain.InvoiceDetail, error)
	Create(ctx context.Context, compCode string, amt float64) (*domain.Invoice, error)
	// Update sets the amount and, when paid is non-nil, moves the invoice
	// between paid and unpaid. Paying stamps paid_date with today; unpaying
	// clears it; re-sending the current state leaves paid_date alone.
	Update(ctx context.Context, id int64, amt float64, paid *bool) (*domain.Invoice, error)
	Delete(ctx context.Context, id int64) error
}

type invoiceService struct {
	db          *gorm.DB
	log         *logger.Logger
	invoiceRepo repos.InvoiceRepo
	now         func() time.Time
}

func NewInvoiceService(db *gorm.DB, baseLog *logger.Logger, invoiceRepo repos.InvoiceRepo) InvoiceService {
	return &invoiceService{
		db:          db,
		log:         baseLog.With("service", "InvoiceService"),
		invoiceRepo: invoiceRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// maxAmt is the first amount numeric(10,2) cannot hold.
const maxAmt = 1e8

// validateAmt accepts amounts that fit invoices.amt: positive, below maxAmt,
// at most two decimal places.
func validateAmt(amt float64) error {
	switch {
	case math.IsNaN(amt) || math.IsInf(amt, 0):
		return apierr.BadRequest("amt must be a finite number")
	case amt <= 0:
		return apierr.BadRequest("amt must be greater than zero")
	case amt >= maxAmt:
		return apierr.BadRequest("amt must be less than %.0f", maxAmt)
	}
	text := strconv.FormatFloat(amt, 'f', -1, 64)
	if dot := strings.IndexByte(text, '.'); dot >= 0 && len(text)-dot-1 > 2 {
		return apierr.BadRequest("amt must have at most two decimal places")
	}
	return nil
}

func (s *invoiceService) List(ctx context.Context) ([]domain.InvoiceSummary, error) {
	return s.invoiceRepo.List(dbctx.Context{Ctx: ctx})
}

func (s *invoiceService) Get(ctx context.Context, id int64) (*domain.InvoiceDetail, error) {
	row, err := s.invoiceRepo.GetWithCompany(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, fmt.Errorf("load invoice: %w", err)
	}
	if row == nil {
		return nil, apierr.NotFound("There is no invoice with id of %d", id)
	}
	detail := row.Detail()
	return &detail, nil
}

func (s *invoiceService) Create(ctx context.Context, compCode string, amt float64) (*domain.Invoice, error) {
	if err := validateAmt(amt); err != nil {
		return nil, err
	}
	inv, err := s.invoiceRepo.Create(dbctx.Context{Ctx: ctx}, &domain.Invoice{
		CompCode: compCode,
		Amt:      amt,
		AddDate:  datatypes.Date(s.now()),
	})
	if errors.Is(err, db.ErrForeignKey) {
		return nil, apierr.NotFound("There is no company with code '%s'", compCode)
	}
	if errors.Is(err, db.ErrInvalidValue) {
		return nil, apierr.BadRequest("amt %v is not a valid invoice amount", amt)
	}
	if err != nil {
		s.log.Error("Create invoice failed", "error", err, "comp_code", compCode)
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	observability.Current().IncWrite("invoice", "create")
	s.log.Info("Invoice created", "id", inv.ID, "comp_code", compCode)
	return inv, nil
}

func (s *invoiceService) Update(ctx context.Context, id int64, amt float64, paid *bool) (*domain.Invoice, error) {
	if err := validateAmt(amt); err != nil {
		return nil, err
	}

	var out *domain.Invoice
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		found, err := s.invoiceRepo.GetByIDs(dbc, []int64{id})
		if err != nil {
			return fmt.Errorf("load invoice: %w", err)
		}
		if len(found) == 0 || found[0] == nil {
			return apierr.NotFound("There is no invoice with id of %d", id)
		}
		current := found[0]

		fields := map[string]any{"amt": amt}
		if want := pointers.Deref(paid, current.Paid); want != current.Paid {
			fields["paid"] = want
			if want {
				today := datatypes.Date(s.now())
				fields["paid_date"] = &today
			} else {
				fields["paid_date"] = nil
			}
		}
		_, err = s.invoiceRepo.UpdateFields(dbc, id, fields)
		if errors.Is(err, db.ErrInvalidValue) {
			return apierr.BadRequest("amt %v is not a valid invoice amount", amt)
		}
		if err != nil {
			return fmt.Errorf("update invoice: %w", err)
		}

		reloaded, err := s.invoiceRepo.GetByIDs(dbc, []int64{id})
		if err != nil {
			return fmt.Errorf("reload invoice: %w", err)
		}
		if len(reloaded) == 0 {
			return apierr.NotFound("There is no invoice with id of %d", id)
		}
		out = reloaded[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	observability.Current().IncWrite("invoice", "update")
	return out, nil
}

func (s *invoiceService) Delete(ctx context.Context, id int64) error {
	n, err := s.invoiceRepo.DeleteByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		s.log.Error("Delete invoice failed", "error", err, "id", id)
		return fmt.Errorf("delete invoice: %w", err)
	}
	if n == 0 {
		return apierr.NotFound("There is no invoice with id of %d", id)
	}
	observability.Current().IncWrite("invoice", "delete")
	return nil
}

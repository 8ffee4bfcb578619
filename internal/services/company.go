package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/jeremiahbrem/biztime/internal/data/db"
	"github.com/jeremiahbrem/biztime/internal/data/repos"
	"github.com/jeremiahbrem/biztime/internal/domain"
	"github.com/jeremiahbrem/biztime/internal/observability"
	"github.com/jeremiahbrem/biztime/internal/platform/apierr"
	"github.com/jeremiahbrem/biztime/internal/platform/dbctx"
	"github.com/jeremiahbrem/biztime/internal/platform/logger"
)

type CreateCompanyInput struct {
	Code        string
	Name        string
	Description string
}

type CompanyService interface {
	List(ctx context.Context) ([]*domain.Company, error)
	Get(ctx context.Context, code string) (*domain.CompanyDetail, error)
	Create(ctx context.Context, in CreateCompanyInput) (*domain.Company, error)
	Update(ctx context.Context, code, name, description string) (*domain.Company, error)
	Delete(ctx context.Context, code string) error
}

type companyService struct {
	db          *gorm.DB
	log         *logger.Logger
	companyRepo repos.CompanyRepo
	invoiceRepo repos.InvoiceRepo
}

func NewCompanyService(db *gorm.DB, baseLog *logger.Logger, companyRepo repos.CompanyRepo, invoiceRepo repos.InvoiceRepo) CompanyService {
	return &companyService{
		db:          db,
		log:         baseLog.With("service", "CompanyService"),
		companyRepo: companyRepo,
		invoiceRepo: invoiceRepo,
	}
}

// CompanyCode derives a company code from its name: lowercase, ASCII,
// hyphen separated.
func CompanyCode(name string) string {
	return slug.Make(strings.TrimSpace(name))
}

func (s *companyService) List(ctx context.Context) ([]*domain.Company, error) {
	return s.companyRepo.List(dbctx.Context{Ctx: ctx})
}

func (s *companyService) Get(ctx context.Context, code string) (*domain.CompanyDetail, error) {
	var out *domain.CompanyDetail
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		found, err := s.companyRepo.GetByCodes(dbc, []string{code})
		if err != nil {
			return fmt.Errorf("load company: %w", err)
		}
		if len(found) == 0 || found[0] == nil {
			return apierr.NotFound("There is no company with code of %s", code)
		}
		industries, err := s.companyRepo.IndustryNames(dbc, code)
		if err != nil {
			return fmt.Errorf("load industries: %w", err)
		}
		invoices, err := s.invoiceRepo.IDsByCompany(dbc, code)
		if err != nil {
			return fmt.Errorf("load invoices: %w", err)
		}
		c := found[0]
		out = &domain.CompanyDetail{
			Code:        c.Code,
			Name:        c.Name,
			Description: c.Description,
			Industries:  industries,
			Invoices:    invoices,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *companyService) Create(ctx context.Context, in CreateCompanyInput) (*domain.Company, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apierr.BadRequest("name is required")
	}
	code := strings.TrimSpace(in.Code)
	if code == "" {
		code = CompanyCode(name)
	}
	if code == "" {
		return nil, apierr.BadRequest("cannot derive a company code from name %q", name)
	}

	created, err := s.companyRepo.Create(dbctx.Context{Ctx: ctx}, []*domain.Company{{
		Code:        code,
		Name:        name,
		Description: in.Description,
	}})
	if errors.Is(err, db.ErrDuplicate) {
		return nil, apierr.Conflict("A company with code '%s' or name '%s' already exists", code, name)
	}
	if err != nil {
		s.log.Error("Create company failed", "error", err, "code", code)
		return nil, fmt.Errorf("create company: %w", err)
	}
	observability.Current().IncWrite("company", "create")
	s.log.Info("Company created", "code", code)
	return created[0], nil
}

func (s *companyService) Update(ctx context.Context, code, name, description string) (*domain.Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apierr.BadRequest("name is required")
	}

	var out *domain.Company
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		n, err := s.companyRepo.Update(dbc, code, name, description)
		if errors.Is(err, db.ErrDuplicate) {
			return apierr.Conflict("A company named '%s' already exists", name)
		}
		if err != nil {
			return fmt.Errorf("update company: %w", err)
		}
		if n == 0 {
			return apierr.NotFound("There is no company with code of %s", code)
		}
		found, err := s.companyRepo.GetByCodes(dbc, []string{code})
		if err != nil {
			return fmt.Errorf("reload company: %w", err)
		}
		if len(found) == 0 {
			return apierr.NotFound("There is no company with code of %s", code)
		}
		out = found[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	observability.Current().IncWrite("company", "update")
	return out, nil
}

func (s *companyService) Delete(ctx context.Context, code string) error {
	n, err := s.companyRepo.DeleteByCode(dbctx.Context{Ctx: ctx}, code)
	if err != nil {
		s.log.Error("Delete company failed", "error", err, "code", code)
		return fmt.Errorf("delete company: %w", err)
	}
	if n == 0 {
		return apierr.NotFound("There is no company with code of %s", code)
	}
	observability.Current().IncWrite("company", "delete")
	s.log.Info("Company deleted", "code", code)
	return nil
}

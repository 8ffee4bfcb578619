package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/jeremiahbrem/biztime/internal/data/db"
	"github.com/jeremiahbrem/biztime/internal/data/repos"
	"github.com/jeremiahbrem/biztime/internal/domain"
	"github.com/jeremiahbrem/biztime/internal/observability"
	"github.com/jeremiahbrem/biztime/internal/pkg/grouping"
	"github.com/jeremiahbrem/biztime/internal/platform/apierr"
	"github.com/jeremiahbrem/biztime/internal/platform/dbctx"
	"github.com/jeremiahbrem/biztime/internal/platform/logger"
)

type IndustryService interface {
	List(ctx context.Context) ([]domain.IndustryListing, error)
	Create(ctx context.Context, code, name string) (*domain.Industry, error)
	Associate(ctx context.Context, industCode, compCode string) (*domain.CompanyIndustry, error)
}

type industryService struct {
	db           *gorm.DB
	log          *logger.Logger
	industryRepo repos.IndustryRepo
	companyRepo  repos.CompanyRepo
}

func NewIndustryService(db *gorm.DB, baseLog *logger.Logger, industryRepo repos.IndustryRepo, companyRepo repos.CompanyRepo) IndustryService {
	return &industryService{
		db:           db,
		log:          baseLog.With("service", "IndustryService"),
		industryRepo: industryRepo,
		companyRepo:  companyRepo,
	}
}

func (s *industryService) List(ctx context.Context) ([]domain.IndustryListing, error) {
	rows, err := s.industryRepo.ListCompanyRows(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, fmt.Errorf("load industries: %w", err)
	}
	observability.Current().ObserveGroupedRows("industries", len(rows))
	return IndustryListings(rows), nil
}

// IndustryListings groups association rows by industry code.
func IndustryListings(rows []domain.IndustryCompanyRow) []domain.IndustryListing {
	flat := make([]grouping.Row, 0, len(rows))
	for _, r := range rows {
		flat = append(flat, grouping.Row{Key: r.ICode, Name: r.Industry, Child: r.CompCode})
	}
	groups := grouping.GroupRows(flat)
	out := make([]domain.IndustryListing, 0, len(groups))
	for _, g := range groups {
		out = append(out, domain.IndustryListing{
			ICode:     g.Key,
			Industry:  g.Name,
			Companies: g.Children,
		})
	}
	return out
}

func (s *industryService) Create(ctx context.Context, code, name string) (*domain.Industry, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if code == "" || name == "" {
		return nil, apierr.BadRequest("i_code and industry are required")
	}
	created, err := s.industryRepo.Create(dbctx.Context{Ctx: ctx}, []*domain.Industry{{ICode: code, Industry: name}})
	if errors.Is(err, db.ErrDuplicate) {
		return nil, apierr.Conflict("Industry '%s' already exists", code)
	}
	if err != nil {
		s.log.Error("Create industry failed", "error", err, "i_code", code)
		return nil, fmt.Errorf("create industry: %w", err)
	}
	observability.Current().IncWrite("industry", "create")
	return created[0], nil
}

func (s *industryService) Associate(ctx context.Context, industCode, compCode string) (*domain.CompanyIndustry, error) {
	compCode = strings.TrimSpace(compCode)
	if compCode == "" {
		return nil, apierr.BadRequest("comp_code is required")
	}

	var out *domain.CompanyIndustry
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		industries, err := s.industryRepo.GetByCodes(dbc, []string{industCode})
		if err != nil {
			return fmt.Errorf("load industry: %w", err)
		}
		if len(industries) == 0 {
			return apierr.NotFound("There is no industry with code '%s'", industCode)
		}
		companies, err := s.companyRepo.GetByCodes(dbc, []string{compCode})
		if err != nil {
			return fmt.Errorf("load company: %w", err)
		}
		if len(companies) == 0 {
			return apierr.NotFound("There is no company with code '%s'", compCode)
		}

		assoc, err := s.industryRepo.Associate(dbc, &domain.CompanyIndustry{CompCode: compCode, IndustCode: industCode})
		switch {
		case errors.Is(err, db.ErrDuplicate):
			return apierr.Conflict("Company '%s' is already in industry '%s'", compCode, industCode)
		case errors.Is(err, db.ErrForeignKey):
			return apierr.NotFound("There is no company '%s' or industry '%s'", compCode, industCode)
		case err != nil:
			return fmt.Errorf("associate: %w", err)
		}
		out = assoc
		return nil
	})
	if err != nil {
		return nil, err
	}
	observability.Current().IncWrite("company_industry", "create")
	return out, nil
}

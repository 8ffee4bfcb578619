package repos

import (
	"gorm.io/gorm"

	"github.com/jeremiahbrem/biztime/internal/data/db"
	"github.com/jeremiahbrem/biztime/internal/domain"
	"github.com/jeremiahbrem/biztime/internal/platform/dbctx"
	"github.com/jeremiahbrem/biztime/internal/platform/logger"
)

type IndustryRepo interface {
	Create(dbc dbctx.Context, industries []*domain.Industry) ([]*domain.Industry, error)
	GetByCodes(dbc dbctx.Context, codes []string) ([]*domain.Industry, error)
	ListCompanyRows(dbc dbctx.Context) ([]domain.IndustryCompanyRow, error)
	Associate(dbc dbctx.Context, assoc *domain.CompanyIndustry) (*domain.CompanyIndustry, error)
}

type industryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIndustryRepo(db *gorm.DB, baseLog *logger.Logger) IndustryRepo {
	return &industryRepo{db: db, log: baseLog.With("repo", "IndustryRepo")}
}

func (r *industryRepo) Create(dbc dbctx.Context, industries []*domain.Industry) ([]*domain.Industry, error) {
	if len(industries) == 0 {
		return []*domain.Industry{}, nil
	}
	if err := dbc.Conn(r.db).Create(&industries).Error; err != nil {
		return nil, db.Classify(err)
	}
	return industries, nil
}

func (r *industryRepo) GetByCodes(dbc dbctx.Context, codes []string) ([]*domain.Industry, error) {
	var results []*domain.Industry
	if len(codes) == 0 {
		return results, nil
	}
	if err := dbc.Conn(r.db).
		Where("i_code IN ?", codes).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListCompanyRows returns one row per (industry, company) association in
// association order. Industries without companies are not returned.
func (r *industryRepo) ListCompanyRows(dbc dbctx.Context) ([]domain.IndustryCompanyRow, error) {
	rows := []domain.IndustryCompanyRow{}
	if err := dbc.Conn(r.db).
		Table("industries AS i").
		Select("i.i_code, i.industry, c.code AS comp_code").
		Joins("JOIN companies_industries AS ci ON ci.indust_code = i.i_code").
		Joins("JOIN companies AS c ON ci.comp_code = c.code").
		Order("ci.id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *industryRepo) Associate(dbc dbctx.Context, assoc *domain.CompanyIndustry) (*domain.CompanyIndustry, error) {
	if err := dbc.Conn(r.db).Create(assoc).Error; err != nil {
		return nil, db.Classify(err)
	}
	return assoc, nil
}

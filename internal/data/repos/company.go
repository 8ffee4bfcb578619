package repos

import (
	"gorm.io/gorm"

	"github.com/jeremiahbrem/biztime/internal/data/db"
	"github.com/jeremiahbrem/biztime/internal/domain"
	"github.com/jeremiahbrem/biztime/internal/platform/dbctx"
	"github.com/jeremiahbrem/biztime/internal/platform/logger"
)

type CompanyRepo interface {
	List(dbc dbctx.Context) ([]*domain.Company, error)
	GetByCodes(dbc dbctx.Context, codes []string) ([]*domain.Company, error)
	Create(dbc dbctx.Context, companies []*domain.Company) ([]*domain.Company, error)
	Update(dbc dbctx.Context, code, name, description string) (int64, error)
	DeleteByCode(dbc dbctx.Context, code string) (int64, error)
	IndustryNames(dbc dbctx.Context, code string) ([]string, error)
}

type companyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCompanyRepo(db *gorm.DB, baseLog *logger.Logger) CompanyRepo {
	return &companyRepo{db: db, log: baseLog.With("repo", "CompanyRepo")}
}

func (r *companyRepo) List(dbc dbctx.Context) ([]*domain.Company, error) {
	results := []*domain.Company{}
	if err := dbc.Conn(r.db).
		Select("code", "name").
		Order("code").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *companyRepo) GetByCodes(dbc dbctx.Context, codes []string) ([]*domain.Company, error) {
	var results []*domain.Company
	if len(codes) == 0 {
		return results, nil
	}
	if err := dbc.Conn(r.db).
		Where("code IN ?", codes).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *companyRepo) Create(dbc dbctx.Context, companies []*domain.Company) ([]*domain.Company, error) {
	if len(companies) == 0 {
		return []*domain.Company{}, nil
	}
	if err := dbc.Conn(r.db).Create(&companies).Error; err != nil {
		return nil, db.Classify(err)
	}
	return companies, nil
}

func (r *companyRepo) Update(dbc dbctx.Context, code, name, description string) (int64, error) {
	res := dbc.Conn(r.db).
		Model(&domain.Company{}).
		Where("code = ?", code).
		Updates(map[string]any{
			"name":        name,
			"description": description,
		})
	if res.Error != nil {
		return 0, db.Classify(res.Error)
	}
	return res.RowsAffected, nil
}

func (r *companyRepo) DeleteByCode(dbc dbctx.Context, code string) (int64, error) {
	res := dbc.Conn(r.db).
		Where("code = ?", code).
		Delete(&domain.Company{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *companyRepo) IndustryNames(dbc dbctx.Context, code string) ([]string, error) {
	names := []string{}
	if err := dbc.Conn(r.db).
		Table("industries AS i").
		Joins("JOIN companies_industries AS ci ON ci.indust_code = i.i_code").
		Where("ci.comp_code = ?", code).
		Order("ci.id").
		Pluck("i.industry", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

package repos

import (
	"errors"

	"gorm.io/gorm"

	"github.com/jeremiahbrem/biztime/internal/data/db"
	"github.com/jeremiahbrem/biztime/internal/domain"
	"github.com/jeremiahbrem/biztime/internal/platform/dbctx"
	"github.com/jeremiahbrem/biztime/internal/platform/logger"
)

type InvoiceRepo interface {
	List(dbc dbctx.Context) ([]domain.InvoiceSummary, error)
	GetByIDs(dbc dbctx.Context, ids []int64) ([]*domain.Invoice, error)
	GetWithCompany(dbc dbctx.Context, id int64) (*domain.InvoiceCompanyRow, error)
	IDsByCompany(dbc dbctx.Context, compCode string) ([]int64, error)
	Create(dbc dbctx.Context, inv *domain.Invoice) (*domain.Invoice, error)
	UpdateFields(dbc dbctx.Context, id int64, fields map[string]any) (int64, error)
	DeleteByID(dbc dbctx.Context, id int64) (int64, error)
}

type invoiceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInvoiceRepo(db *gorm.DB, baseLog *logger.Logger) InvoiceRepo {
	return &invoiceRepo{db: db, log: baseLog.With("repo", "InvoiceRepo")}
}

func (r *invoiceRepo) List(dbc dbctx.Context) ([]domain.InvoiceSummary, error) {
	results := []domain.InvoiceSummary{}
	if err := dbc.Conn(r.db).
		Model(&domain.Invoice{}).
		Select("id", "comp_code").
		Order("id").
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *invoiceRepo) GetByIDs(dbc dbctx.Context, ids []int64) ([]*domain.Invoice, error) {
	var results []*domain.Invoice
	if len(ids) == 0 {
		return results, nil
	}
	if err := dbc.Conn(r.db).
		Where("id IN ?", ids).
		Order("id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetWithCompany returns nil when no invoice has the id.
func (r *invoiceRepo) GetWithCompany(dbc dbctx.Context, id int64) (*domain.InvoiceCompanyRow, error) {
	var row domain.InvoiceCompanyRow
	err := dbc.Conn(r.db).
		Table("invoices").
		Select("invoices.id, invoices.amt, invoices.paid, invoices.add_date, invoices.paid_date, companies.code, companies.name, companies.description").
		Joins("JOIN companies ON companies.code = invoices.comp_code").
		Where("invoices.id = ?", id).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *invoiceRepo) IDsByCompany(dbc dbctx.Context, compCode string) ([]int64, error) {
	ids := []int64{}
	if err := dbc.Conn(r.db).
		Model(&domain.Invoice{}).
		Where("comp_code = ?", compCode).
		Order("id").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *invoiceRepo) Create(dbc dbctx.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	if err := dbc.Conn(r.db).Create(inv).Error; err != nil {
		return nil, db.Classify(err)
	}
	return inv, nil
}

func (r *invoiceRepo) UpdateFields(dbc dbctx.Context, id int64, fields map[string]any) (int64, error) {
	if len(fields) == 0 {
		return 0, nil
	}
	res := dbc.Conn(r.db).
		Model(&domain.Invoice{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return 0, db.Classify(res.Error)
	}
	return res.RowsAffected, nil
}

func (r *invoiceRepo) DeleteByID(dbc dbctx.Context, id int64) (int64, error) {
	res := dbc.Conn(r.db).
		Where("id = ?", id).
		Delete(&domain.Invoice{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

package domain

import (
	"gorm.io/datatypes"
)

type Invoice struct {
	ID       int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CompCode string          `gorm:"column:comp_code;not null;index" json:"comp_code"`
	Company  *Company        `gorm:"foreignKey:CompCode;references:Code;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Amt      float64         `gorm:"column:amt;type:numeric(10,2);not null;check:amt > 0" json:"amt"`
	Paid     bool            `gorm:"column:paid;not null;default:false" json:"paid"`
	AddDate  datatypes.Date  `gorm:"column:add_date;not null;default:CURRENT_DATE" json:"add_date"`
	PaidDate *datatypes.Date `gorm:"column:paid_date" json:"paid_date"`
}

func (Invoice) TableName() string { return "invoices" }

// InvoiceSummary is the listing shape of an invoice.
type InvoiceSummary struct {
	ID       int64  `json:"id"`
	CompCode string `json:"comp_code"`
}

// InvoiceCompanyRow is one row of invoices joined to companies.
type InvoiceCompanyRow struct {
	ID          int64           `gorm:"column:id"`
	Amt         float64         `gorm:"column:amt"`
	Paid        bool            `gorm:"column:paid"`
	AddDate     datatypes.Date  `gorm:"column:add_date"`
	PaidDate    *datatypes.Date `gorm:"column:paid_date"`
	Code        string          `gorm:"column:code"`
	Name        string          `gorm:"column:name"`
	Description string          `gorm:"column:description"`
}

// InvoiceDetail is an invoice with its company nested.
type InvoiceDetail struct {
	ID       int64           `json:"id"`
	Amt      float64         `json:"amt"`
	Paid     bool            `json:"paid"`
	AddDate  datatypes.Date  `json:"add_date"`
	PaidDate *datatypes.Date `json:"paid_date"`
	Company  Company         `json:"company"`
}

func (r InvoiceCompanyRow) Detail() InvoiceDetail {
	return InvoiceDetail{
		ID:       r.ID,
		Amt:      r.Amt,
		Paid:     r.Paid,
		AddDate:  r.AddDate,
		PaidDate: r.PaidDate,
		Company: Company{
			Code:        r.Code,
			Name:        r.Name,
			Description: r.Description,
		},
	}
}

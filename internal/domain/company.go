package domain

type Company struct {
	Code        string `gorm:"column:code;primaryKey" json:"code"`
	Name        string `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Description string `gorm:"column:description" json:"description"`
}

func (Company) TableName() string { return "companies" }

// CompanyDetail is a company with the names of its industries and the ids of
// its invoices.
type CompanyDetail struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Industries  []string `json:"industries"`
	Invoices    []int64  `json:"invoices"`
}

package domain

type Industry struct {
	ICode    string `gorm:"column:i_code;primaryKey" json:"i_code"`
	Industry string `gorm:"column:industry;not null;uniqueIndex" json:"industry"`
}

func (Industry) TableName() string { return "industries" }

// CompanyIndustry associates a company with an industry. ID records the
// association order.
type CompanyIndustry struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	CompCode   string    `gorm:"column:comp_code;not null;uniqueIndex:idx_companies_industries_pair" json:"comp_code"`
	Company    *Company  `gorm:"foreignKey:CompCode;references:Code;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	IndustCode string    `gorm:"column:indust_code;not null;uniqueIndex:idx_companies_industries_pair;index" json:"indust_code"`
	Industry   *Industry `gorm:"foreignKey:IndustCode;references:ICode;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (CompanyIndustry) TableName() string { return "companies_industries" }

// IndustryCompanyRow is one row of industries ⋈ companies_industries.
type IndustryCompanyRow struct {
	ICode    string `gorm:"column:i_code"`
	Industry string `gorm:"column:industry"`
	CompCode string `gorm:"column:comp_code"`
}

// IndustryListing is an industry with the codes of its companies.
type IndustryListing struct {
	ICode     string   `json:"i_code"`
	Industry  string   `json:"industry"`
	Companies []string `json:"companies"`
}

package model

// Company is the tenant root of the administrative hierarchy.
type Company struct {
	ID      string `gorm:"column:id;primaryKey;type:varchar(36)"`
	Code    string `gorm:"column:code;type:varchar(20);not null;uniqueIndex:uk_company_code"`
	Name    string `gorm:"column:name;type:varchar(150);not null"`
	TaxID   string `gorm:"column:tax_id;type:varchar(30)"`
	Email   string `gorm:"column:email;type:varchar(255)"`
	Phone   string `gorm:"column:phone;type:varchar(30)"`
	Address string `gorm:"column:address;type:varchar(255)"`

	BaseEntity
}

func (*Company) TableName() string {
	return "company"
}

func (c *Company) GetID() string   { return c.ID }
func (c *Company) SetID(id string) { c.ID = id }

// NewCompany creates a Company; status and timestamps are assigned on save.
func NewCompany(code, name string) *Company {
	return &Company{
		Code: code,
		Name: name,
	}
}

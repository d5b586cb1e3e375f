package model

import "time"

// Project belongs to a company and groups budgets.
type Project struct {
	ID          string     `gorm:"column:id;primaryKey;type:varchar(36)"`
	CompanyID   string     `gorm:"column:company_id;type:varchar(36);not null;index"`
	Code        string     `gorm:"column:code;type:varchar(20);not null;uniqueIndex:uk_project_code"`
	Name        string     `gorm:"column:name;type:varchar(150);not null"`
	Description string     `gorm:"column:description;type:varchar(500)"`
	StartDate   *time.Time `gorm:"column:start_date"`
	EndDate     *time.Time `gorm:"column:end_date"`

	BaseEntity

	Company *Company `gorm:"foreignKey:CompanyID;references:ID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT" json:"-"`
}

func (*Project) TableName() string {
	return "project"
}

func (p *Project) GetID() string   { return p.ID }
func (p *Project) SetID(id string) { p.ID = id }

func NewProject(companyID, code, name string) *Project {
	return &Project{
		CompanyID: companyID,
		Code:      code,
		Name:      name,
	}
}

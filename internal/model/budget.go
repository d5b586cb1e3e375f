package model

import "github.com/shopspring/decimal"

// Budget is a costed plan for a project, split into chapters.
type Budget struct {
	ID          string          `gorm:"column:id;primaryKey;type:varchar(36)"`
	ProjectID   string          `gorm:"column:project_id;type:varchar(36);not null;index"`
	Code        string          `gorm:"column:code;type:varchar(20);not null;uniqueIndex:uk_budget_code"`
	Name        string          `gorm:"column:name;type:varchar(150);not null"`
	Currency    string          `gorm:"column:currency;type:varchar(3);not null"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount;type:numeric(18,2);not null"`

	BaseEntity

	Project *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT" json:"-"`
}

func (*Budget) TableName() string {
	return "budget"
}

func (b *Budget) GetID() string   { return b.ID }
func (b *Budget) SetID(id string) { b.ID = id }

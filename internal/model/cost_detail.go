package model

import "github.com/shopspring/decimal"

// CostDetail is a cost line of an activity along one attribute.
// It is the only entity that may be physically deleted.
type CostDetail struct {
	ID          string          `gorm:"column:id;primaryKey;type:varchar(36)"`
	ActivityID  string          `gorm:"column:activity_id;type:varchar(36);not null;index"`
	AttributeID string          `gorm:"column:attribute_id;type:varchar(36);not null;index"`
	Description string          `gorm:"column:description;type:varchar(500)"`
	Quantity    decimal.Decimal `gorm:"column:quantity;type:numeric(18,4);not null"`
	UnitCost    decimal.Decimal `gorm:"column:unit_cost;type:numeric(18,2);not null"`
	Amount      decimal.Decimal `gorm:"column:amount;type:numeric(18,2);not null"`

	BaseEntity

	Activity  *Activity  `gorm:"foreignKey:ActivityID;references:ID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT" json:"-"`
	Attribute *Attribute `gorm:"foreignKey:AttributeID;references:ID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT" json:"-"`
}

func (*CostDetail) TableName() string {
	return "cost_detail"
}

func (c *CostDetail) GetID() string   { return c.ID }
func (c *CostDetail) SetID(id string) { c.ID = id }

// ComputeAmount returns quantity times unit cost rounded to cents.
func (c CostDetail) ComputeAmount() decimal.Decimal {
	return c.Quantity.Mul(c.UnitCost).Round(2)
}

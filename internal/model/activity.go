package model

import "github.com/shopspring/decimal"

// Activity is a priced work item inside a chapter.
type Activity struct {
	ID        string          `gorm:"column:id;primaryKey;type:varchar(36)"`
	ChapterID string          `gorm:"column:chapter_id;type:varchar(36);not null;index"`
	Code      string          `gorm:"column:code;type:varchar(20);not null;uniqueIndex:uk_activity_code"`
	Name      string          `gorm:"column:name;type:varchar(150);not null"`
	Unit      string          `gorm:"column:unit;type:varchar(20);not null"`
	Quantity  decimal.Decimal `gorm:"column:quantity;type:numeric(18,4);not null"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(18,2);not null"`

	BaseEntity

	Chapter *Chapter `gorm:"foreignKey:ChapterID;references:ID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT" json:"-"`
}

func (*Activity) TableName() string {
	return "activity"
}

func (a *Activity) GetID() string   { return a.ID }
func (a *Activity) SetID(id string) { a.ID = id }

// Total is quantity times unit price.
func (a Activity) Total() decimal.Decimal {
	return a.Quantity.Mul(a.UnitPrice)
}

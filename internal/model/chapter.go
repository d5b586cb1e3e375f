package model

// Chapter is a section of a budget.
type Chapter struct {
	ID          string `gorm:"column:id;primaryKey;type:varchar(36)"`
	BudgetID    string `gorm:"column:budget_id;type:varchar(36);not null;index"`
	Code        string `gorm:"column:code;type:varchar(20);not null;uniqueIndex:uk_chapter_code"`
	Name        string `gorm:"column:name;type:varchar(150);not null"`
	Description string `gorm:"column:description;type:varchar(500)"`
	SortOrder   int    `gorm:"column:sort_order;not null"`

	BaseEntity

	Budget *Budget `gorm:"foreignKey:BudgetID;references:ID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT" json:"-"`
}

func (*Chapter) TableName() string {
	return "chapter"
}

func (c *Chapter) GetID() string   { return c.ID }
func (c *Chapter) SetID(id string) { c.ID = id }

package model

// Attribute is a company defined cost dimension (labour, material, equipment...).
type Attribute struct {
	ID        string `gorm:"column:id;primaryKey;type:varchar(36)"`
	CompanyID string `gorm:"column:company_id;type:varchar(36);not null;index"`
	Code      string `gorm:"column:code;type:varchar(20);not null;uniqueIndex:uk_attribute_code"`
	Name      string `gorm:"column:name;type:varchar(150);not null"`
	Unit      string `gorm:"column:unit;type:varchar(20)"`
	DataType  string `gorm:"column:data_type;type:varchar(20);not null"`

	BaseEntity

	Company *Company `gorm:"foreignKey:CompanyID;references:ID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT" json:"-"`
}

func (*Attribute) TableName() string {
	return "attribute"
}

func (a *Attribute) GetID() string   { return a.ID }
func (a *Attribute) SetID(id string) { a.ID = id }

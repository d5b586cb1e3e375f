package model

// User is an operator account scoped to a company and a role.
type User struct {
	ID           string `gorm:"column:id;primaryKey;type:varchar(36)"`
	CompanyID    string `gorm:"column:company_id;type:varchar(36);not null;index"`
	RoleID       string `gorm:"column:role_id;type:varchar(20);not null;index"`
	Email        string `gorm:"column:email;type:varchar(255);not null;uniqueIndex:uk_user_email"` // 이메일 (unique)
	Name         string `gorm:"column:name;type:varchar(100);not null"`
	PhoneNumber  string `gorm:"column:phone_number;type:varchar(30)"`
	PasswordHash string `gorm:"column:password_hash;type:varchar(60);not null"` // bcrypt

	BaseEntity

	Company *Company `gorm:"foreignKey:CompanyID;references:ID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT" json:"-"`
	Role    *Role    `gorm:"foreignKey:RoleID;references:ID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT" json:"-"`
}

func (*User) TableName() string {
	return "app_user"
}

func (u *User) GetID() string   { return u.ID }
func (u *User) SetID(id string) { u.ID = id }

// NewUser creates a User; password must already be hashed.
func NewUser(companyID, roleID, name, email, phoneNumber, passwordHash string) *User {
	return &User{
		CompanyID:    companyID,
		RoleID:       roleID,
		Name:         name,
		Email:        email,
		PhoneNumber:  phoneNumber,
		PasswordHash: passwordHash,
	}
}

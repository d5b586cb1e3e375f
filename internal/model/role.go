package model

import (
	"regexp"
	"strings"
)

var roleCodePattern = regexp.MustCompile(`^[A-Z0-9_]{2,20}$`)

// Role is identified by its short code (e.g. ADMIN) instead of a UUID.
type Role struct {
	ID          string `gorm:"column:id;primaryKey;type:varchar(20)"`
	Name        string `gorm:"column:name;type:varchar(100);not null"`
	Description string `gorm:"column:description;type:varchar(255)"`

	BaseEntity
}

func (*Role) TableName() string {
	return "role"
}

func (r *Role) GetID() string   { return r.ID }
func (r *Role) SetID(id string) { r.ID = id }

// NormalizeRoleCode upper-cases and trims a role code.
func NormalizeRoleCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsValidRoleCode reports whether code is a well formed role identity.
func IsValidRoleCode(code string) bool {
	return roleCodePattern.MatchString(code)
}

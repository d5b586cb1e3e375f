package model

import (
	"time"
)

// Repository가 CreatedAt, UpdatedAt, Status를 직접 관리 (GORM 자동 시간 비활성화)
type BaseEntity struct {
	Status    Status    `gorm:"column:status;type:varchar(16);not null;index;check:status IN ('active','inactive','pending','suspended','completed','cancelled')"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime:false"`
}

// Base exposes the embedded lifecycle fields to the generic repository.
func (b *BaseEntity) Base() *BaseEntity {
	return b
}

// Record is implemented by every persisted entity pointer.
type Record interface {
	TableName() string
	GetID() string
	SetID(id string)
	Base() *BaseEntity
}

// Now returns the timestamp format used for created_at/updated_at.
// Microsecond precision survives every supported backend unchanged.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// NextUpdatedAt returns the updated_at value for a mutation happening at now.
// The result is strictly after CreatedAt and never before the previous UpdatedAt.
func NextUpdatedAt(b BaseEntity, now time.Time) time.Time {
	next := now.UTC().Truncate(time.Microsecond)
	if !b.CreatedAt.IsZero() && !next.After(b.CreatedAt) {
		next = b.CreatedAt.Add(time.Microsecond)
	}
	if next.Before(b.UpdatedAt) {
		next = b.UpdatedAt
	}
	return next
}

// Patch applies change to a copy of existing and refreshes its updated_at.
// existing is never modified; the caller owns the returned value.
func Patch[T any, PT interface {
	*T
	Record
}](existing T, now time.Time, change func(PT)) (T, time.Time) {
	updated := existing
	prev := *PT(&existing).Base()

	if change != nil {
		change(PT(&updated))
	}

	base := PT(&updated).Base()
	base.CreatedAt = prev.CreatedAt
	base.UpdatedAt = NextUpdatedAt(prev, now)
	return updated, base.UpdatedAt
}

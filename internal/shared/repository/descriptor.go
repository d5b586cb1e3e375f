package repository

import "github.com/changhyeonkim/budget-admin/go-api-server/internal/model"

// Descriptor declares everything the generic repository needs to know about one entity.
type Descriptor[T any] struct {
	// Entity names the entity in errors, logs and metrics.
	Entity string
	// IDColumn defaults to "id".
	IDColumn string
	// NewID generates an identity on save. nil means callers must supply one.
	NewID func() string
	// NaturalKeys are unique business columns (code, email, name).
	NaturalKeys []NaturalKey[T]
	// Parents are the foreign key references, primary parent first.
	Parents []ParentRef[T]
	// UpdateColumns are overwritten by Update besides status and updated_at.
	UpdateColumns []string
	// Statuses limits the lifecycle states the entity may take. nil allows every status.
	Statuses []model.Status
	// HardDelete allows physical removal through Delete.
	HardDelete bool
}

// NaturalKey is a unique business column and how to read it from an entity.
type NaturalKey[T any] struct {
	Column string
	Value  func(*T) string
}

// ParentRef is a reference column pointing at another entity's table.
type ParentRef[T any] struct {
	Column string
	Entity string
	Table  string
	// Key is the referenced column, "id" by default.
	Key   string
	Value func(*T) string
}

func (d Descriptor[T]) withDefaults() Descriptor[T] {
	if d.IDColumn == "" {
		d.IDColumn = "id"
	}
	parents := make([]ParentRef[T], len(d.Parents))
	for i, p := range d.Parents {
		if p.Key == "" {
			p.Key = "id"
		}
		parents[i] = p
	}
	d.Parents = parents
	return d
}

func (d Descriptor[T]) translator() Translator {
	keys := make([]string, 0, len(d.NaturalKeys))
	for _, k := range d.NaturalKeys {
		keys = append(keys, k.Column)
	}
	parents := make([]ParentColumn, 0, len(d.Parents))
	for _, p := range d.Parents {
		parents = append(parents, ParentColumn{Column: p.Column, Entity: p.Entity})
	}
	return NewTranslator(d.Entity, d.IDColumn, keys, parents)
}

func (d Descriptor[T]) isUnique(column string) bool {
	if column == d.IDColumn {
		return true
	}
	for _, k := range d.NaturalKeys {
		if k.Column == column {
			return true
		}
	}
	return false
}

func (d Descriptor[T]) parent(column string) (ParentRef[T], bool) {
	for _, p := range d.Parents {
		if p.Column == column {
			return p, true
		}
	}
	return ParentRef[T]{}, false
}

// valueOf reads column from entity for error reporting.
func (d Descriptor[T]) valueOf(entity *T, column string) string {
	for _, k := range d.NaturalKeys {
		if k.Column == column {
			return k.Value(entity)
		}
	}
	for _, p := range d.Parents {
		if p.Column == column {
			return p.Value(entity)
		}
	}
	if column == d.IDColumn {
		if rec, ok := any(entity).(interface{ GetID() string }); ok {
			return rec.GetID()
		}
	}
	return ""
}

func (d Descriptor[T]) allows(status model.Status) bool {
	if len(d.Statuses) == 0 {
		return status.IsSet()
	}
	for _, s := range d.Statuses {
		if s == status {
			return true
		}
	}
	return false
}

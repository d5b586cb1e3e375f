package repository

import (
	"context"
	"errors"
	"strings"

	sharedError "github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/error"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// ConstraintKind is the class of a backend constraint violation.
type ConstraintKind int

const (
	ConstraintNone ConstraintKind = iota
	ConstraintUnique
	ConstraintForeignKey
)

// SQLSTATE and Oracle codes for the two violations we translate.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	oraUniqueViolation    = "ORA-00001"
	oraParentKeyNotFound  = "ORA-02291"
)

// Classify inspects a backend error and returns its constraint class together with
// the text used to work out which column caused it.
func Classify(err error) (ConstraintKind, string) {
	if err == nil {
		return ConstraintNone, ""
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		detail := strings.Join([]string{pgErr.ConstraintName, pgErr.ColumnName, pgErr.Message, pgErr.Detail}, " ")
		switch pgErr.Code {
		case pgUniqueViolation:
			return ConstraintUnique, detail
		case pgForeignKeyViolation:
			return ConstraintForeignKey, detail
		}
		return ConstraintNone, detail
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return ConstraintUnique, liteErr.Error()
		case sqlite3.ErrConstraintForeignKey:
			return ConstraintForeignKey, liteErr.Error()
		}
		return ConstraintNone, liteErr.Error()
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ConstraintUnique, err.Error()
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ConstraintForeignKey, err.Error()
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, oraUniqueViolation):
		return ConstraintUnique, msg
	case strings.Contains(msg, oraParentKeyNotFound):
		return ConstraintForeignKey, msg
	}
	return ConstraintNone, msg
}

// ParentColumn pairs a foreign key column with the entity it references.
type ParentColumn struct {
	Column string
	Entity string
}

// Translator maps backend failures of one entity to domain errors.
// Which columns are natural keys and which are parent references comes from the descriptor.
type Translator struct {
	entity      string
	idColumn    string
	naturalKeys []string
	parents     []ParentColumn
}

// NewTranslator builds a translator for entity.
func NewTranslator(entity, idColumn string, naturalKeys []string, parents []ParentColumn) Translator {
	return Translator{
		entity:      entity,
		idColumn:    idColumn,
		naturalKeys: naturalKeys,
		parents:     parents,
	}
}

// Translate converts err. lookup returns the value the failed write carried for a column.
// Errors already carrying a domain kind pass through unchanged.
func (t Translator) Translate(op string, err error, lookup func(column string) string) error {
	if err == nil {
		return nil
	}

	var domainErr sharedError.DomainError
	if errors.As(err, &domainErr) {
		return err
	}

	if lookup == nil {
		lookup = func(string) string { return "" }
	}

	kind, detail := Classify(err)
	switch kind {
	case ConstraintUnique:
		if column, ok := t.uniqueColumn(detail); ok {
			return &sharedError.ConflictError{Entity: t.entity, Key: column, Value: lookup(column)}
		}
		return sharedError.NewPersistenceError(op+": unclassified unique violation", err)

	case ConstraintForeignKey:
		if parent, ok := t.parentColumn(detail); ok {
			return &sharedError.ReferenceError{Parent: parent.Entity, ID: lookup(parent.Column)}
		}
		return &sharedError.ReferenceError{}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return sharedError.NewPersistenceError(op+": statement interrupted", err)
	}
	return sharedError.NewPersistenceError(op, err)
}

func (t Translator) uniqueColumn(detail string) (string, bool) {
	lower := strings.ToLower(detail)
	for _, column := range t.naturalKeys {
		if strings.Contains(lower, column) {
			return column, true
		}
	}

	if t.mentionsIdentity(lower) {
		return t.idColumn, true
	}

	switch len(t.naturalKeys) {
	case 0:
		return t.idColumn, true
	case 1:
		return t.naturalKeys[0], true
	}
	return "", false
}

func (t Translator) mentionsIdentity(lower string) bool {
	return strings.Contains(lower, "("+t.idColumn+")") ||
		strings.Contains(lower, "."+t.idColumn) ||
		strings.Contains(lower, "pkey") ||
		strings.Contains(lower, "primary key")
}

func (t Translator) parentColumn(detail string) (ParentColumn, bool) {
	lower := strings.ToLower(detail)
	for _, p := range t.parents {
		if strings.Contains(lower, p.Column) {
			return p, true
		}
	}
	if len(t.parents) == 1 {
		return t.parents[0], true
	}
	return ParentColumn{}, false
}

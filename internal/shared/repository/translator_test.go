package repository_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	sharedError "github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/error"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/repository"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func userTranslator() repository.Translator {
	return repository.NewTranslator("user", "id", []string{"email"}, []repository.ParentColumn{
		{Column: "company_id", Entity: "company"},
		{Column: "role_id", Entity: "role"},
	})
}

func lookup(values map[string]string) func(string) string {
	return func(column string) string { return values[column] }
}

func TestClassify(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want repository.ConstraintKind
	}{
		{name: "nil", err: nil, want: repository.ConstraintNone},
		{name: "postgres unique", err: &pgconn.PgError{Code: "23505", ConstraintName: "uk_user_email"}, want: repository.ConstraintUnique},
		{name: "postgres foreign key", err: &pgconn.PgError{Code: "23503", ConstraintName: "fk_app_user_role"}, want: repository.ConstraintForeignKey},
		{name: "postgres other", err: &pgconn.PgError{Code: "57014", Message: "canceling statement"}, want: repository.ConstraintNone},
		{name: "wrapped postgres", err: fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23505"}), want: repository.ConstraintUnique},
		{name: "sqlite unique", err: sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, want: repository.ConstraintUnique},
		{name: "sqlite primary key", err: sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey}, want: repository.ConstraintUnique},
		{name: "sqlite foreign key", err: sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}, want: repository.ConstraintForeignKey},
		{name: "sqlite not null", err: sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull}, want: repository.ConstraintNone},
		{name: "oracle unique", err: errors.New("ORA-00001: unique constraint (APP.UK_USER_EMAIL) violated"), want: repository.ConstraintUnique},
		{name: "oracle parent key", err: errors.New("ORA-02291: integrity constraint (APP.FK_APP_USER_ROLE) violated - parent key not found"), want: repository.ConstraintForeignKey},
		{name: "gorm duplicated key", err: gorm.ErrDuplicatedKey, want: repository.ConstraintUnique},
		{name: "gorm foreign key", err: gorm.ErrForeignKeyViolated, want: repository.ConstraintForeignKey},
		{name: "anything else", err: errors.New("connection reset by peer"), want: repository.ConstraintNone},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			kind, _ := repository.Classify(tc.err)
			assert.Equal(t, tc.want, kind)
		})
	}
}

func TestTranslate_UniqueViolation(t *testing.T) {
	// Given: User translator and the value the write carried
	tr := userTranslator()
	values := lookup(map[string]string{"email": "a@acme.test", "id": "u-1"})

	testCases := []struct {
		name    string
		err     error
		wantKey string
	}{
		{name: "postgres constraint name", err: &pgconn.PgError{Code: "23505", ConstraintName: "uk_user_email"}, wantKey: "email"},
		{name: "postgres primary key", err: &pgconn.PgError{Code: "23505", ConstraintName: "app_user_pkey"}, wantKey: "id"},
		{name: "oracle message", err: errors.New("ORA-00001: unique constraint (APP.UK_USER_EMAIL) violated"), wantKey: "email"},
		{name: "sqlite message", err: errors.New("UNIQUE constraint failed: app_user.email"), wantKey: "email"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// When
			err := tr.Translate("save", withUnique(tc.err), values)

			// Then
			var conflict *sharedError.ConflictError
			require.ErrorAs(t, err, &conflict)
			assert.Equal(t, "user", conflict.Entity)
			assert.Equal(t, tc.wantKey, conflict.Key)
			assert.Equal(t, values(tc.wantKey), conflict.Value)
		})
	}
}

// withUnique makes plain message errors classify as unique violations the way gorm's translated errors do.
func withUnique(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return err
	}
	if kind, _ := repository.Classify(err); kind == repository.ConstraintUnique {
		return err
	}
	return fmt.Errorf("%w: %s", gorm.ErrDuplicatedKey, err.Error())
}

func TestTranslate_UniqueViolation_FallsBackToOnlyKey(t *testing.T) {
	// Given: Entity with a single natural key and an uninformative message
	tr := repository.NewTranslator("company", "id", []string{"code"}, nil)

	// When
	err := tr.Translate("save", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique},
		lookup(map[string]string{"code": "ACME"}))

	// Then
	var conflict *sharedError.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "code", conflict.Key)
	assert.Equal(t, "ACME", conflict.Value)
}

func TestTranslate_ForeignKeyViolation(t *testing.T) {
	// Given: User translator with two parents
	tr := userTranslator()
	values := lookup(map[string]string{"company_id": "c-1", "role_id": "AUDITOR"})

	// When: The backend names the role column
	named := tr.Translate("save", &pgconn.PgError{
		Code:           "23503",
		ConstraintName: "fk_app_user_role",
		Detail:         `Key (role_id)=(AUDITOR) is not present in table "role".`,
	}, values)

	// When: The backend says nothing useful
	anonymous := tr.Translate("save", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}, values)

	// Then
	var ref *sharedError.ReferenceError
	require.ErrorAs(t, named, &ref)
	assert.Equal(t, "role", ref.Parent)
	assert.Equal(t, "AUDITOR", ref.ID)

	require.ErrorAs(t, anonymous, &ref)
	assert.ErrorIs(t, anonymous, sharedError.ErrInvalidReference)
	assert.Empty(t, ref.Parent)
}

func TestTranslate_OtherFailures(t *testing.T) {
	tr := userTranslator()
	cause := errors.New("connection reset by peer")

	// Unclassified backend error keeps its cause
	err := tr.Translate("find_by_id", cause, nil)
	assert.ErrorIs(t, err, sharedError.ErrPersistenceFailure)
	assert.ErrorIs(t, err, cause)

	// Timeouts are persistence failures too
	err = tr.Translate("update", fmt.Errorf("query: %w", context.DeadlineExceeded), nil)
	assert.ErrorIs(t, err, sharedError.ErrPersistenceFailure)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// Domain errors pass through untouched
	unavailable := &sharedError.UnavailableError{Cause: cause}
	assert.Same(t, unavailable, tr.Translate("save", unavailable, nil))

	// nil stays nil
	assert.NoError(t, tr.Translate("save", nil, nil))
}

package user

import (
	"context"
	"strings"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/model"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/database"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/repository"

	"github.com/google/uuid"
)

const EntityName = "user"

const (
	companyColumn = "company_id"
	roleColumn    = "role_id"
)

func Descriptor() repository.Descriptor[model.User] {
	return repository.Descriptor[model.User]{
		Entity: EntityName,
		NewID:  uuid.NewString,
		NaturalKeys: []repository.NaturalKey[model.User]{
			{Column: "email", Value: func(u *model.User) string { return u.Email }},
		},
		Parents: []repository.ParentRef[model.User]{
			{Column: companyColumn, Entity: "company", Table: "company", Value: func(u *model.User) string { return u.CompanyID }},
			{Column: roleColumn, Entity: "role", Table: "role", Value: func(u *model.User) string { return u.RoleID }},
		},
		UpdateColumns: []string{companyColumn, roleColumn, "email", "name", "phone_number", "password_hash"},
		Statuses:      repository.AccountStatuses,
	}
}

type Repository struct {
	*repository.Repository[model.User, *model.User]
}

func NewRepository(pool *database.Pool, opts ...repository.Option) *Repository {
	return &Repository{
		Repository: repository.New[model.User, *model.User](pool, Descriptor(), opts...),
	}
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (model.User, bool, error) {
	return r.FindBy(ctx, "email", NormalizeEmail(email))
}

func (r *Repository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.ExistsBy(ctx, "email", NormalizeEmail(email))
}

func (r *Repository) FindByCompany(ctx context.Context, companyID string) ([]model.User, error) {
	return r.FindByParentColumn(ctx, companyColumn, companyID)
}

func (r *Repository) FindByRole(ctx context.Context, roleID string) ([]model.User, error) {
	return r.FindByParentColumn(ctx, roleColumn, model.NormalizeRoleCode(roleID))
}

// NormalizeEmail lower-cases and trims an address so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

package role

import (
	"context"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/model"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/database"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/repository"
)

const EntityName = "role"

// Descriptor: a role's identity is its code, supplied by the caller.
func Descriptor() repository.Descriptor[model.Role] {
	return repository.Descriptor[model.Role]{
		Entity:        EntityName,
		UpdateColumns: []string{"name", "description"},
		Statuses:      repository.AccountStatuses,
	}
}

type Repository struct {
	*repository.Repository[model.Role, *model.Role]
}

func NewRepository(pool *database.Pool, opts ...repository.Option) *Repository {
	return &Repository{
		Repository: repository.New[model.Role, *model.Role](pool, Descriptor(), opts...),
	}
}

func (r *Repository) FindByCode(ctx context.Context, code string) (model.Role, bool, error) {
	return r.FindByID(ctx, model.NormalizeRoleCode(code))
}

func (r *Repository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return r.ExistsByID(ctx, model.NormalizeRoleCode(code))
}

// Activate brings a pending, suspended or inactive role back to active.
func (r *Repository) Activate(ctx context.Context, code string) error {
	return r.Transition(ctx, model.NormalizeRoleCode(code), model.StatusActive,
		model.StatusPending, model.StatusSuspended, model.StatusInactive,
	)
}

// Suspend pauses an active role.
func (r *Repository) Suspend(ctx context.Context, code string) error {
	return r.Transition(ctx, model.NormalizeRoleCode(code), model.StatusSuspended, model.StatusActive)
}

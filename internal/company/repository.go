package company

import (
	"context"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/model"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/database"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/repository"

	"github.com/google/uuid"
)

const EntityName = "company"

func Descriptor() repository.Descriptor[model.Company] {
	return repository.Descriptor[model.Company]{
		Entity: EntityName,
		NewID:  uuid.NewString,
		NaturalKeys: []repository.NaturalKey[model.Company]{
			{Column: "code", Value: func(c *model.Company) string { return c.Code }},
		},
		UpdateColumns: []string{"code", "name", "tax_id", "email", "phone", "address"},
		Statuses:      repository.AccountStatuses,
	}
}

type Repository struct {
	*repository.Repository[model.Company, *model.Company]
}

func NewRepository(pool *database.Pool, opts ...repository.Option) *Repository {
	return &Repository{
		Repository: repository.New[model.Company, *model.Company](pool, Descriptor(), opts...),
	}
}

func (r *Repository) FindByCode(ctx context.Context, code string) (model.Company, bool, error) {
	return r.FindBy(ctx, "code", code)
}

func (r *Repository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return r.ExistsBy(ctx, "code", code)
}

package attribute

import (
	"context"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/model"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/database"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/repository"

	"github.com/google/uuid"
)

const EntityName = "attribute"

func Descriptor() repository.Descriptor[model.Attribute] {
	return repository.Descriptor[model.Attribute]{
		Entity: EntityName,
		NewID:  uuid.NewString,
		NaturalKeys: []repository.NaturalKey[model.Attribute]{
			{Column: "code", Value: func(a *model.Attribute) string { return a.Code }},
		},
		Parents: []repository.ParentRef[model.Attribute]{
			{Column: "company_id", Entity: "company", Table: "company", Value: func(a *model.Attribute) string { return a.CompanyID }},
		},
		UpdateColumns: []string{"company_id", "code", "name", "unit", "data_type"},
		Statuses:      repository.BasicStatuses,
	}
}

type Repository struct {
	*repository.Repository[model.Attribute, *model.Attribute]
}

func NewRepository(pool *database.Pool, opts ...repository.Option) *Repository {
	return &Repository{
		Repository: repository.New[model.Attribute, *model.Attribute](pool, Descriptor(), opts...),
	}
}

func (r *Repository) FindByCode(ctx context.Context, code string) (model.Attribute, bool, error) {
	return r.FindBy(ctx, "code", code)
}

func (r *Repository) FindByCompany(ctx context.Context, companyID string) ([]model.Attribute, error) {
	return r.FindByParent(ctx, companyID)
}

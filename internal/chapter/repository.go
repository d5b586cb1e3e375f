package chapter

import (
	"context"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/model"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/database"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/repository"

	"github.com/google/uuid"
)

const EntityName = "chapter"

func Descriptor() repository.Descriptor[model.Chapter] {
	return repository.Descriptor[model.Chapter]{
		Entity: EntityName,
		NewID:  uuid.NewString,
		NaturalKeys: []repository.NaturalKey[model.Chapter]{
			{Column: "code", Value: func(c *model.Chapter) string { return c.Code }},
		},
		Parents: []repository.ParentRef[model.Chapter]{
			{Column: "budget_id", Entity: "budget", Table: "budget", Value: func(c *model.Chapter) string { return c.BudgetID }},
		},
		UpdateColumns: []string{"budget_id", "code", "name", "description", "sort_order"},
		Statuses:      repository.BasicStatuses,
	}
}

type Repository struct {
	*repository.Repository[model.Chapter, *model.Chapter]
}

func NewRepository(pool *database.Pool, opts ...repository.Option) *Repository {
	return &Repository{
		Repository: repository.New[model.Chapter, *model.Chapter](pool, Descriptor(), opts...),
	}
}

func (r *Repository) FindByCode(ctx context.Context, code string) (model.Chapter, bool, error) {
	return r.FindBy(ctx, "code", code)
}

func (r *Repository) FindByBudget(ctx context.Context, budgetID string) ([]model.Chapter, error) {
	return r.FindByParent(ctx, budgetID)
}

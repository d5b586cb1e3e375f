package budget

import (
	"context"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/model"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/database"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/repository"

	"github.com/google/uuid"
)

const EntityName = "budget"

func Descriptor() repository.Descriptor[model.Budget] {
	return repository.Descriptor[model.Budget]{
		Entity: EntityName,
		NewID:  uuid.NewString,
		NaturalKeys: []repository.NaturalKey[model.Budget]{
			{Column: "code", Value: func(b *model.Budget) string { return b.Code }},
		},
		Parents: []repository.ParentRef[model.Budget]{
			{Column: "project_id", Entity: "project", Table: "project", Value: func(b *model.Budget) string { return b.ProjectID }},
		},
		UpdateColumns: []string{"project_id", "code", "name", "currency", "total_amount"},
		Statuses:      repository.LongLivedStatuses,
	}
}

type Repository struct {
	*repository.Repository[model.Budget, *model.Budget]
}

func NewRepository(pool *database.Pool, opts ...repository.Option) *Repository {
	return &Repository{
		Repository: repository.New[model.Budget, *model.Budget](pool, Descriptor(), opts...),
	}
}

func (r *Repository) FindByCode(ctx context.Context, code string) (model.Budget, bool, error) {
	return r.FindBy(ctx, "code", code)
}

func (r *Repository) FindByProject(ctx context.Context, projectID string) ([]model.Budget, error) {
	return r.FindByParent(ctx, projectID)
}

// Complete closes an active budget.
func (r *Repository) Complete(ctx context.Context, id string) error {
	return r.Transition(ctx, id, model.StatusCompleted, model.StatusActive)
}

// Cancel abandons a budget that has not been completed.
func (r *Repository) Cancel(ctx context.Context, id string) error {
	return r.Transition(ctx, id, model.StatusCancelled, model.StatusActive, model.StatusPending, model.StatusSuspended)
}

package project

import (
	"context"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/model"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/database"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/repository"

	"github.com/google/uuid"
)

const EntityName = "project"

func Descriptor() repository.Descriptor[model.Project] {
	return repository.Descriptor[model.Project]{
		Entity: EntityName,
		NewID:  uuid.NewString,
		NaturalKeys: []repository.NaturalKey[model.Project]{
			{Column: "code", Value: func(p *model.Project) string { return p.Code }},
		},
		Parents: []repository.ParentRef[model.Project]{
			{Column: "company_id", Entity: "company", Table: "company", Value: func(p *model.Project) string { return p.CompanyID }},
		},
		UpdateColumns: []string{"company_id", "code", "name", "description", "start_date", "end_date"},
		Statuses:      repository.LongLivedStatuses,
	}
}

type Repository struct {
	*repository.Repository[model.Project, *model.Project]
}

func NewRepository(pool *database.Pool, opts ...repository.Option) *Repository {
	return &Repository{
		Repository: repository.New[model.Project, *model.Project](pool, Descriptor(), opts...),
	}
}

func (r *Repository) FindByCode(ctx context.Context, code string) (model.Project, bool, error) {
	return r.FindBy(ctx, "code", code)
}

func (r *Repository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return r.ExistsBy(ctx, "code", code)
}

func (r *Repository) FindByCompany(ctx context.Context, companyID string) ([]model.Project, error) {
	return r.FindByParent(ctx, companyID)
}

func (r *Repository) ExistsByCompany(ctx context.Context, companyID string) (bool, error) {
	return r.ExistsByParent(ctx, companyID)
}

// Complete closes an active project.
func (r *Repository) Complete(ctx context.Context, id string) error {
	return r.Transition(ctx, id, model.StatusCompleted, model.StatusActive)
}

// Cancel abandons a project that has not finished.
func (r *Repository) Cancel(ctx context.Context, id string) error {
	return r.Transition(ctx, id, model.StatusCancelled, model.StatusActive, model.StatusPending, model.StatusSuspended)
}

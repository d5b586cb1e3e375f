package activity

import (
	"context"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/model"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/database"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/repository"

	"github.com/google/uuid"
)

const EntityName = "activity"

func Descriptor() repository.Descriptor[model.Activity] {
	return repository.Descriptor[model.Activity]{
		Entity: EntityName,
		NewID:  uuid.NewString,
		NaturalKeys: []repository.NaturalKey[model.Activity]{
			{Column: "code", Value: func(a *model.Activity) string { return a.Code }},
		},
		Parents: []repository.ParentRef[model.Activity]{
			{Column: "chapter_id", Entity: "chapter", Table: "chapter", Value: func(a *model.Activity) string { return a.ChapterID }},
		},
		UpdateColumns: []string{"chapter_id", "code", "name", "unit", "quantity", "unit_price"},
		Statuses:      repository.BasicStatuses,
	}
}

type Repository struct {
	*repository.Repository[model.Activity, *model.Activity]
}

func NewRepository(pool *database.Pool, opts ...repository.Option) *Repository {
	return &Repository{
		Repository: repository.New[model.Activity, *model.Activity](pool, Descriptor(), opts...),
	}
}

func (r *Repository) FindByCode(ctx context.Context, code string) (model.Activity, bool, error) {
	return r.FindBy(ctx, "code", code)
}

func (r *Repository) FindByChapter(ctx context.Context, chapterID string) ([]model.Activity, error) {
	return r.FindByParent(ctx, chapterID)
}

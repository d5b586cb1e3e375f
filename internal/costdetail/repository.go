package costdetail

import (
	"context"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/model"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/database"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/repository"

	"github.com/google/uuid"
)

const EntityName = "cost_detail"

const (
	activityColumn  = "activity_id"
	attributeColumn = "attribute_id"
)

// Descriptor declares the two parents of a cost line. It has no natural key and may be hard deleted.
func Descriptor() repository.Descriptor[model.CostDetail] {
	return repository.Descriptor[model.CostDetail]{
		Entity: EntityName,
		NewID:  uuid.NewString,
		Parents: []repository.ParentRef[model.CostDetail]{
			{Column: activityColumn, Entity: "activity", Table: "activity", Value: func(c *model.CostDetail) string { return c.ActivityID }},
			{Column: attributeColumn, Entity: "attribute", Table: "attribute", Value: func(c *model.CostDetail) string { return c.AttributeID }},
		},
		UpdateColumns: []string{activityColumn, attributeColumn, "description", "quantity", "unit_cost", "amount"},
		Statuses:      repository.BasicStatuses,
		HardDelete:    true,
	}
}

type Repository struct {
	*repository.Repository[model.CostDetail, *model.CostDetail]
}

func NewRepository(pool *database.Pool, opts ...repository.Option) *Repository {
	return &Repository{
		Repository: repository.New[model.CostDetail, *model.CostDetail](pool, Descriptor(), opts...),
	}
}

func (r *Repository) FindByActivity(ctx context.Context, activityID string) ([]model.CostDetail, error) {
	return r.FindByParentColumn(ctx, activityColumn, activityID)
}

func (r *Repository) FindByAttribute(ctx context.Context, attributeID string) ([]model.CostDetail, error) {
	return r.FindByParentColumn(ctx, attributeColumn, attributeID)
}

func (r *Repository) ExistsByActivity(ctx context.Context, activityID string) (bool, error) {
	return r.ExistsByParentColumn(ctx, activityColumn, activityID)
}

func (r *Repository) ExistsByAttribute(ctx context.Context, attributeID string) (bool, error) {
	return r.ExistsByParentColumn(ctx, attributeColumn, attributeID)
}

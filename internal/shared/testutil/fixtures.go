package testutil

import (
	"testing"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/model"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/database"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Hierarchy is one row of every parent entity, linked top to bottom.
type Hierarchy struct {
	Company   model.Company
	Role      model.Role
	Project   model.Project
	Budget    model.Budget
	Chapter   model.Chapter
	Activity  model.Activity
	Attribute model.Attribute
}

// SeedHierarchy inserts a company → project → budget → chapter → activity chain
// plus an attribute and a role, so child entities have valid parents.
func SeedHierarchy(t *testing.T, pool *database.Pool) Hierarchy {
	t.Helper()

	h := Hierarchy{
		Company: model.Company{ID: uuid.NewString(), Code: "ACME", Name: "Acme"},
		Role:    model.Role{ID: "MANAGER", Name: "Manager"},
	}
	h.Project = model.Project{ID: uuid.NewString(), CompanyID: h.Company.ID, Code: "PRJ-1", Name: "Tower"}
	h.Budget = model.Budget{
		ID: uuid.NewString(), ProjectID: h.Project.ID, Code: "BGT-1", Name: "Base",
		Currency: "USD", TotalAmount: decimal.RequireFromString("1000.00"),
	}
	h.Chapter = model.Chapter{ID: uuid.NewString(), BudgetID: h.Budget.ID, Code: "CH-1", Name: "Foundations", SortOrder: 1}
	h.Activity = model.Activity{
		ID: uuid.NewString(), ChapterID: h.Chapter.ID, Code: "ACT-1", Name: "Excavation", Unit: "m3",
		Quantity: decimal.NewFromInt(10), UnitPrice: decimal.RequireFromString("12.50"),
	}
	h.Attribute = model.Attribute{ID: uuid.NewString(), CompanyID: h.Company.ID, Code: "LABOUR", Name: "Labour", DataType: "number"}

	Insert(t, pool, &h.Company, &h.Role, &h.Project, &h.Budget, &h.Chapter, &h.Activity, &h.Attribute)
	return h
}

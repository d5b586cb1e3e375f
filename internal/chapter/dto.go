package chapter

import (
	"time"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/model"
)

type CreateRequest struct {
	BudgetID    string `json:"budgetId" binding:"required,uuid"`
	Code        string `json:"code" binding:"required,code"`
	Name        string `json:"name" binding:"required,min=1,max=150"`
	Description string `json:"description" binding:"max=500"`
	SortOrder   int    `json:"sortOrder" binding:"gte=0"`
	Status      string `json:"status" binding:"omitempty,status"`
}

// UpdateRequest carries only the fields to change.
type UpdateRequest struct {
	BudgetID    *string `json:"budgetId" binding:"omitempty,uuid"`
	Code        *string `json:"code" binding:"omitempty,code"`
	Name        *string `json:"name" binding:"omitempty,min=1,max=150"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	SortOrder   *int    `json:"sortOrder" binding:"omitempty,gte=0"`
	Status      *string `json:"status" binding:"omitempty,status"`
}

func (r *UpdateRequest) apply(c *model.Chapter) {
	if r.BudgetID != nil {
		c.BudgetID = *r.BudgetID
	}
	if r.Code != nil {
		c.Code = *r.Code
	}
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Description != nil {
		c.Description = *r.Description
	}
	if r.SortOrder != nil {
		c.SortOrder = *r.SortOrder
	}
}

type Response struct {
	ID          string    `json:"id"`
	BudgetID    string    `json:"budgetId"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	SortOrder   int       `json:"sortOrder"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toResponse(c model.Chapter) Response {
	return Response{
		ID:          c.ID,
		BudgetID:    c.BudgetID,
		Code:        c.Code,
		Name:        c.Name,
		Description: c.Description,
		SortOrder:   c.SortOrder,
		Status:      c.Status.String(),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toResponses(chapters []model.Chapter) []Response {
	responses := make([]Response, 0, len(chapters))
	for _, c := range chapters {
		responses = append(responses, toResponse(c))
	}
	return responses
}

package costdetail

import (
	"time"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/model"
	"github.com/shopspring/decimal"
)

type CreateRequest struct {
	ActivityID  string          `json:"activityId" binding:"required,uuid"`
	AttributeID string          `json:"attributeId" binding:"required,uuid"`
	Description string          `json:"description" binding:"max=500"`
	Quantity    decimal.Decimal `json:"quantity" binding:"gte=0"`
	UnitCost    decimal.Decimal `json:"unitCost" binding:"gte=0"`
	Status      string          `json:"status" binding:"omitempty,status"`
}

// UpdateRequest carries only the fields to change. Amount is always recomputed.
type UpdateRequest struct {
	ActivityID  *string          `json:"activityId" binding:"omitempty,uuid"`
	AttributeID *string          `json:"attributeId" binding:"omitempty,uuid"`
	Description *string          `json:"description" binding:"omitempty,max=500"`
	Quantity    *decimal.Decimal `json:"quantity" binding:"omitempty,gte=0"`
	UnitCost    *decimal.Decimal `json:"unitCost" binding:"omitempty,gte=0"`
	Status      *string          `json:"status" binding:"omitempty,status"`
}

func (r *UpdateRequest) apply(c *model.CostDetail) {
	if r.ActivityID != nil {
		c.ActivityID = *r.ActivityID
	}
	if r.AttributeID != nil {
		c.AttributeID = *r.AttributeID
	}
	if r.Description != nil {
		c.Description = *r.Description
	}
	if r.Quantity != nil {
		c.Quantity = *r.Quantity
	}
	if r.UnitCost != nil {
		c.UnitCost = *r.UnitCost
	}
	c.Amount = c.ComputeAmount()
}

type Response struct {
	ID          string          `json:"id"`
	ActivityID  string          `json:"activityId"`
	AttributeID string          `json:"attributeId"`
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unitCost"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func toResponse(c model.CostDetail) Response {
	return Response{
		ID:          c.ID,
		ActivityID:  c.ActivityID,
		AttributeID: c.AttributeID,
		Description: c.Description,
		Quantity:    c.Quantity,
		UnitCost:    c.UnitCost,
		Amount:      c.Amount,
		Status:      c.Status.String(),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toResponses(details []model.CostDetail) []Response {
	responses := make([]Response, 0, len(details))
	for _, c := range details {
		responses = append(responses, toResponse(c))
	}
	return responses
}

package budget

import (
	"strings"
	"time"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/model"
	"github.com/shopspring/decimal"
)

type CreateRequest struct {
	ProjectID   string          `json:"projectId" binding:"required,uuid"`
	Code        string          `json:"code" binding:"required,code"`
	Name        string          `json:"name" binding:"required,min=1,max=150"`
	Currency    string          `json:"currency" binding:"required,currency"`
	TotalAmount decimal.Decimal `json:"totalAmount" binding:"gte=0"`
	Status      string          `json:"status" binding:"omitempty,status"`
}

// UpdateRequest carries only the fields to change.
type UpdateRequest struct {
	ProjectID   *string          `json:"projectId" binding:"omitempty,uuid"`
	Code        *string          `json:"code" binding:"omitempty,code"`
	Name        *string          `json:"name" binding:"omitempty,min=1,max=150"`
	Currency    *string          `json:"currency" binding:"omitempty,currency"`
	TotalAmount *decimal.Decimal `json:"totalAmount" binding:"omitempty,gte=0"`
	Status      *string          `json:"status" binding:"omitempty,status"`
}

func (r *UpdateRequest) apply(b *model.Budget) {
	if r.ProjectID != nil {
		b.ProjectID = *r.ProjectID
	}
	if r.Code != nil {
		b.Code = *r.Code
	}
	if r.Name != nil {
		b.Name = *r.Name
	}
	if r.Currency != nil {
		b.Currency = strings.ToUpper(*r.Currency)
	}
	if r.TotalAmount != nil {
		b.TotalAmount = *r.TotalAmount
	}
}

type Response struct {
	ID          string          `json:"id"`
	ProjectID   string          `json:"projectId"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Currency    string          `json:"currency"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func toResponse(b model.Budget) Response {
	return Response{
		ID:          b.ID,
		ProjectID:   b.ProjectID,
		Code:        b.Code,
		Name:        b.Name,
		Currency:    b.Currency,
		TotalAmount: b.TotalAmount,
		Status:      b.Status.String(),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toResponses(budgets []model.Budget) []Response {
	responses := make([]Response, 0, len(budgets))
	for _, b := range budgets {
		responses = append(responses, toResponse(b))
	}
	return responses
}

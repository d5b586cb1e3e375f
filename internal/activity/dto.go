package activity

import (
	"time"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/model"
	"github.com/shopspring/decimal"
)

type CreateRequest struct {
	ChapterID string          `json:"chapterId" binding:"required,uuid"`
	Code      string          `json:"code" binding:"required,code"`
	Name      string          `json:"name" binding:"required,min=1,max=150"`
	Unit      string          `json:"unit" binding:"required,max=20"`
	Quantity  decimal.Decimal `json:"quantity" binding:"gte=0"`
	UnitPrice decimal.Decimal `json:"unitPrice" binding:"gte=0"`
	Status    string          `json:"status" binding:"omitempty,status"`
}

// UpdateRequest carries only the fields to change.
type UpdateRequest struct {
	ChapterID *string          `json:"chapterId" binding:"omitempty,uuid"`
	Code      *string          `json:"code" binding:"omitempty,code"`
	Name      *string          `json:"name" binding:"omitempty,min=1,max=150"`
	Unit      *string          `json:"unit" binding:"omitempty,max=20"`
	Quantity  *decimal.Decimal `json:"quantity" binding:"omitempty,gte=0"`
	UnitPrice *decimal.Decimal `json:"unitPrice" binding:"omitempty,gte=0"`
	Status    *string          `json:"status" binding:"omitempty,status"`
}

func (r *UpdateRequest) apply(a *model.Activity) {
	if r.ChapterID != nil {
		a.ChapterID = *r.ChapterID
	}
	if r.Code != nil {
		a.Code = *r.Code
	}
	if r.Name != nil {
		a.Name = *r.Name
	}
	if r.Unit != nil {
		a.Unit = *r.Unit
	}
	if r.Quantity != nil {
		a.Quantity = *r.Quantity
	}
	if r.UnitPrice != nil {
		a.UnitPrice = *r.UnitPrice
	}
}

type Response struct {
	ID        string          `json:"id"`
	ChapterID string          `json:"chapterId"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Total     decimal.Decimal `json:"total"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func toResponse(a model.Activity) Response {
	return Response{
		ID:        a.ID,
		ChapterID: a.ChapterID,
		Code:      a.Code,
		Name:      a.Name,
		Unit:      a.Unit,
		Quantity:  a.Quantity,
		UnitPrice: a.UnitPrice,
		Total:     a.Total(),
		Status:    a.Status.String(),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func toResponses(activities []model.Activity) []Response {
	responses := make([]Response, 0, len(activities))
	for _, a := range activities {
		responses = append(responses, toResponse(a))
	}
	return responses
}

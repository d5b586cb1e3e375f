package attribute

import (
	"time"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/model"
)

type CreateRequest struct {
	CompanyID string `json:"companyId" binding:"required,uuid"`
	Code      string `json:"code" binding:"required,code"`
	Name      string `json:"name" binding:"required,min=1,max=150"`
	Unit      string `json:"unit" binding:"max=20"`
	DataType  string `json:"dataType" binding:"required,oneof=number text boolean date"`
	Status    string `json:"status" binding:"omitempty,status"`
}

// UpdateRequest carries only the fields to change.
type UpdateRequest struct {
	CompanyID *string `json:"companyId" binding:"omitempty,uuid"`
	Code      *string `json:"code" binding:"omitempty,code"`
	Name      *string `json:"name" binding:"omitempty,min=1,max=150"`
	Unit      *string `json:"unit" binding:"omitempty,max=20"`
	DataType  *string `json:"dataType" binding:"omitempty,oneof=number text boolean date"`
	Status    *string `json:"status" binding:"omitempty,status"`
}

func (r *UpdateRequest) apply(a *model.Attribute) {
	if r.CompanyID != nil {
		a.CompanyID = *r.CompanyID
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
	if r.DataType != nil {
		a.DataType = *r.DataType
	}
}

type Response struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"companyId"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit,omitempty"`
	DataType  string    `json:"dataType"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toResponse(a model.Attribute) Response {
	return Response{
		ID:        a.ID,
		CompanyID: a.CompanyID,
		Code:      a.Code,
		Name:      a.Name,
		Unit:      a.Unit,
		DataType:  a.DataType,
		Status:    a.Status.String(),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func toResponses(attributes []model.Attribute) []Response {
	responses := make([]Response, 0, len(attributes))
	for _, a := range attributes {
		responses = append(responses, toResponse(a))
	}
	return responses
}

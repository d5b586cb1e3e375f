package company

import (
	"time"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/model"
)

type CreateRequest struct {
	Code    string `json:"code" binding:"required,code"`
	Name    string `json:"name" binding:"required,min=1,max=150"`
	TaxID   string `json:"taxId" binding:"max=30"`
	Email   string `json:"email" binding:"omitempty,email,max=255"`
	Phone   string `json:"phone" binding:"omitempty,max=30,phone"`
	Address string `json:"address" binding:"max=255"`
	Status  string `json:"status" binding:"omitempty,status"`
}

// UpdateRequest carries only the fields to change.
type UpdateRequest struct {
	Code    *string `json:"code" binding:"omitempty,code"`
	Name    *string `json:"name" binding:"omitempty,min=1,max=150"`
	TaxID   *string `json:"taxId" binding:"omitempty,max=30"`
	Email   *string `json:"email" binding:"omitempty,email,max=255"`
	Phone   *string `json:"phone" binding:"omitempty,max=30,phone"`
	Address *string `json:"address" binding:"omitempty,max=255"`
	Status  *string `json:"status" binding:"omitempty,status"`
}

func (r *UpdateRequest) apply(c *model.Company) {
	if r.Code != nil {
		c.Code = *r.Code
	}
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.TaxID != nil {
		c.TaxID = *r.TaxID
	}
	if r.Email != nil {
		c.Email = *r.Email
	}
	if r.Phone != nil {
		c.Phone = *r.Phone
	}
	if r.Address != nil {
		c.Address = *r.Address
	}
}

type Response struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	TaxID     string    `json:"taxId,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toResponse(c model.Company) Response {
	return Response{
		ID:        c.ID,
		Code:      c.Code,
		Name:      c.Name,
		TaxID:     c.TaxID,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		Status:    c.Status.String(),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toResponses(companies []model.Company) []Response {
	responses := make([]Response, 0, len(companies))
	for _, c := range companies {
		responses = append(responses, toResponse(c))
	}
	return responses
}

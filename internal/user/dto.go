package user

import (
	"time"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/model"
)

type CreateRequest struct {
	CompanyID   string `json:"companyId" binding:"required,uuid"`
	RoleCode    string `json:"roleCode" binding:"required,max=20"`
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Email       string `json:"email" binding:"required,email,max=255"`
	PhoneNumber string `json:"phoneNumber" binding:"omitempty,phone"`
	Password    string `json:"password" binding:"required,min=8,max=64"`
	Status      string `json:"status" binding:"omitempty,status"`
}

// UpdateRequest carries only the fields to change.
type UpdateRequest struct {
	CompanyID   *string `json:"companyId" binding:"omitempty,uuid"`
	RoleCode    *string `json:"roleCode" binding:"omitempty,max=20"`
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Email       *string `json:"email" binding:"omitempty,email,max=255"`
	PhoneNumber *string `json:"phoneNumber" binding:"omitempty,phone"`
	Password    *string `json:"password" binding:"omitempty,min=8,max=64"`
	Status      *string `json:"status" binding:"omitempty,status"`
}

// apply copies the plain fields; the password is hashed by the service.
func (r *UpdateRequest) apply(u *model.User) {
	if r.CompanyID != nil {
		u.CompanyID = *r.CompanyID
	}
	if r.RoleCode != nil {
		u.RoleID = model.NormalizeRoleCode(*r.RoleCode)
	}
	if r.Name != nil {
		u.Name = *r.Name
	}
	if r.Email != nil {
		u.Email = NormalizeEmail(*r.Email)
	}
	if r.PhoneNumber != nil {
		u.PhoneNumber = *r.PhoneNumber
	}
}

type Response struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"companyId"`
	RoleCode    string    `json:"roleCode"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toResponse(u model.User) Response {
	return Response{
		ID:          u.ID,
		CompanyID:   u.CompanyID,
		RoleCode:    u.RoleID,
		Name:        u.Name,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Status:      u.Status.String(),
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func toResponses(users []model.User) []Response {
	responses := make([]Response, 0, len(users))
	for _, u := range users {
		responses = append(responses, toResponse(u))
	}
	return responses
}

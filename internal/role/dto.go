package role

import (
	"time"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/model"
)

type CreateRequest struct {
	Code        string `json:"code" binding:"required,max=20"`
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=255"`
	Status      string `json:"status" binding:"omitempty,status"`
}

// UpdateRequest carries only the fields to change. The code cannot change.
type UpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=255"`
	Status      *string `json:"status" binding:"omitempty,status"`
}

func (r *UpdateRequest) apply(role *model.Role) {
	if r.Name != nil {
		role.Name = *r.Name
	}
	if r.Description != nil {
		role.Description = *r.Description
	}
}

type Response struct {
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toResponse(r model.Role) Response {
	return Response{
		Code:        r.ID,
		Name:        r.Name,
		Description: r.Description,
		Status:      r.Status.String(),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toResponses(roles []model.Role) []Response {
	responses := make([]Response, 0, len(roles))
	for _, r := range roles {
		responses = append(responses, toResponse(r))
	}
	return responses
}

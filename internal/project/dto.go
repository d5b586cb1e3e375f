package project

import (
	"time"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/model"
)

type CreateRequest struct {
	CompanyID   string     `json:"companyId" binding:"required,uuid"`
	Code        string     `json:"code" binding:"required,code"`
	Name        string     `json:"name" binding:"required,min=1,max=150"`
	Description string     `json:"description" binding:"max=500"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Status      string     `json:"status" binding:"omitempty,status"`
}

// UpdateRequest carries only the fields to change.
type UpdateRequest struct {
	CompanyID   *string    `json:"companyId" binding:"omitempty,uuid"`
	Code        *string    `json:"code" binding:"omitempty,code"`
	Name        *string    `json:"name" binding:"omitempty,min=1,max=150"`
	Description *string    `json:"description" binding:"omitempty,max=500"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Status      *string    `json:"status" binding:"omitempty,status"`
}

func (r *UpdateRequest) apply(p *model.Project) {
	if r.CompanyID != nil {
		p.CompanyID = *r.CompanyID
	}
	if r.Code != nil {
		p.Code = *r.Code
	}
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.StartDate != nil {
		p.StartDate = r.StartDate
	}
	if r.EndDate != nil {
		p.EndDate = r.EndDate
	}
}

type Response struct {
	ID          string     `json:"id"`
	CompanyID   string     `json:"companyId"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func toResponse(p model.Project) Response {
	return Response{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Status:      p.Status.String(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toResponses(projects []model.Project) []Response {
	responses := make([]Response, 0, len(projects))
	for _, p := range projects {
		responses = append(responses, toResponse(p))
	}
	return responses
}

func validPeriod(p model.Project) bool {
	return p.StartDate == nil || p.EndDate == nil || !p.EndDate.Before(*p.StartDate)
}

package project

import (
	"context"
	"fmt"
	"time"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/model"
	sharedError "github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/error"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/events"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/logger"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/repository"
)

type Service struct {
	projects  *Repository
	publisher events.Publisher
	now       func() time.Time
}

func NewService(projects *Repository, publisher events.Publisher) *Service {
	return &Service{
		projects:  projects,
		publisher: publisher,
		now:       model.Now,
	}
}

func (s *Service) Create(ctx context.Context, request *CreateRequest) (*Response, error) {
	log := logger.FromContext(ctx)

	status, err := model.ParseOptionalStatus(request.Status)
	if err != nil {
		return nil, &sharedError.StateError{Entity: EntityName, Target: request.Status}
	}

	project := model.NewProject(request.CompanyID, request.Code, request.Name)
	project.Description = request.Description
	project.StartDate = request.StartDate
	project.EndDate = request.EndDate
	project.Status = status

	if !validPeriod(*project) {
		return nil, fmt.Errorf("create project code=%s: %w", request.Code, ErrInvalidPeriod)
	}

	saved, err := s.projects.Save(ctx, *project)
	if err != nil {
		log.Warn("프로젝트 생성 실패", "code", request.Code, "company_id", request.CompanyID, "error", err)
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.publish(ctx, saved, events.Created)
	log.Info("프로젝트 생성 완료", "id", saved.ID, "code", saved.Code)

	response := toResponse(saved)
	return &response, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Response, error) {
	project, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	response := toResponse(project)
	return &response, nil
}

func (s *Service) GetByCode(ctx context.Context, code string) (*Response, error) {
	project, ok, err := s.projects.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("find project by code: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("프로젝트를 찾을 수 없습니다 code=%s %w", code, sharedError.ErrNotFound)
	}

	response := toResponse(project)
	return &response, nil
}

// List filters by company and/or status; both are optional.
func (s *Service) List(ctx context.Context, companyID string, status model.Status) ([]Response, error) {
	var (
		projects []model.Project
		err      error
	)
	switch {
	case companyID != "":
		projects, err = s.projects.FindByCompany(ctx, companyID)
	case status.IsSet():
		projects, err = s.projects.FindByStatus(ctx, status)
	default:
		projects, err = s.projects.FindAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	if companyID != "" && status.IsSet() {
		filtered := projects[:0]
		for _, p := range projects {
			if p.Status == status {
				filtered = append(filtered, p)
			}
		}
		projects = filtered
	}

	return toResponses(projects), nil
}

func (s *Service) Update(ctx context.Context, id string, request *UpdateRequest) (*Response, error) {
	log := logger.FromContext(ctx)

	existing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	status, err := repository.ResolveStatus(EntityName, id, existing.Status, request.Status)
	if err != nil {
		return nil, err
	}

	changed, _ := model.Patch(existing, s.now(), func(p *model.Project) {
		request.apply(p)
		p.Status = status
	})
	if !validPeriod(changed) {
		return nil, fmt.Errorf("update project id=%s: %w", id, ErrInvalidPeriod)
	}

	saved, err := s.projects.Update(ctx, changed)
	if err != nil {
		log.Warn("프로젝트 수정 실패", "id", id, "error", err)
		return nil, fmt.Errorf("update project: %w", err)
	}
	if !saved.Status.IsSet() {
		saved.Status = existing.Status
	}

	s.publish(ctx, saved, events.Updated)
	log.Info("프로젝트 수정 완료", "id", id)

	response := toResponse(saved)
	return &response, nil
}

func (s *Service) Deactivate(ctx context.Context, id string) error {
	return s.transition(ctx, id, model.StatusInactive, s.projects.Deactivate)
}

func (s *Service) Complete(ctx context.Context, id string) error {
	return s.transition(ctx, id, model.StatusCompleted, s.projects.Complete)
}

func (s *Service) Cancel(ctx context.Context, id string) error {
	return s.transition(ctx, id, model.StatusCancelled, s.projects.Cancel)
}

func (s *Service) transition(ctx context.Context, id string, target model.Status, apply func(context.Context, string) error) error {
	log := logger.FromContext(ctx)

	if err := apply(ctx, id); err != nil {
		log.Warn("프로젝트 상태 변경 실패", "id", id, "target", target.String(), "error", err)
		return fmt.Errorf("%s project: %w", target, err)
	}

	s.publisher.Publish(ctx, events.Event{
		Entity: EntityName, ID: id, Type: events.Status, Status: target.String(),
	})
	log.Info("프로젝트 상태 변경 완료", "id", id, "status", target.String())
	return nil
}

func (s *Service) find(ctx context.Context, id string) (model.Project, error) {
	project, ok, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return model.Project{}, fmt.Errorf("find project: %w", err)
	}
	if !ok {
		return model.Project{}, &sharedError.NotFoundError{Entity: EntityName, ID: id}
	}
	return project, nil
}

func (s *Service) publish(ctx context.Context, p model.Project, eventType string) {
	s.publisher.Publish(ctx, events.Event{
		Entity:     EntityName,
		ID:         p.ID,
		Type:       eventType,
		Status:     p.Status.String(),
		OccurredAt: p.UpdatedAt,
	})
}

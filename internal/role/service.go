package role

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
	roles     *Repository
	publisher events.Publisher
	now       func() time.Time
}

func NewService(roles *Repository, publisher events.Publisher) *Service {
	return &Service{
		roles:     roles,
		publisher: publisher,
		now:       model.Now,
	}
}

func (s *Service) Create(ctx context.Context, request *CreateRequest) (*Response, error) {
	log := logger.FromContext(ctx)

	code := model.NormalizeRoleCode(request.Code)
	if !model.IsValidRoleCode(code) {
		return nil, fmt.Errorf("role code=%q: %w", request.Code, ErrInvalidRoleCode)
	}

	status, err := model.ParseOptionalStatus(request.Status)
	if err != nil {
		return nil, &sharedError.StateError{Entity: EntityName, ID: code, Target: request.Status}
	}

	role := model.Role{
		ID:          code,
		Name:        request.Name,
		Description: request.Description,
	}
	role.Status = status

	saved, err := s.roles.Save(ctx, role)
	if err != nil {
		log.Warn("역할 생성 실패", "code", code, "error", err)
		return nil, fmt.Errorf("create role: %w", err)
	}

	s.publish(ctx, saved, events.Created)
	log.Info("역할 생성 완료", "code", code)

	response := toResponse(saved)
	return &response, nil
}

func (s *Service) Get(ctx context.Context, code string) (*Response, error) {
	role, err := s.find(ctx, code)
	if err != nil {
		return nil, err
	}

	response := toResponse(role)
	return &response, nil
}

func (s *Service) List(ctx context.Context, status model.Status) ([]Response, error) {
	var (
		roles []model.Role
		err   error
	)
	if status.IsSet() {
		roles, err = s.roles.FindByStatus(ctx, status)
	} else {
		roles, err = s.roles.FindAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}

	return toResponses(roles), nil
}

func (s *Service) Update(ctx context.Context, code string, request *UpdateRequest) (*Response, error) {
	log := logger.FromContext(ctx)

	existing, err := s.find(ctx, code)
	if err != nil {
		return nil, err
	}

	status, err := repository.ResolveStatus(EntityName, existing.ID, existing.Status, request.Status)
	if err != nil {
		return nil, err
	}

	changed, _ := model.Patch(existing, s.now(), func(r *model.Role) {
		request.apply(r)
		r.Status = status
	})

	saved, err := s.roles.Update(ctx, changed)
	if err != nil {
		log.Warn("역할 수정 실패", "code", existing.ID, "error", err)
		return nil, fmt.Errorf("update role: %w", err)
	}
	if !saved.Status.IsSet() {
		saved.Status = existing.Status
	}

	s.publish(ctx, saved, events.Updated)
	log.Info("역할 수정 완료", "code", existing.ID)

	response := toResponse(saved)
	return &response, nil
}

func (s *Service) Deactivate(ctx context.Context, code string) error {
	return s.transition(ctx, code, model.StatusInactive, s.roles.Deactivate)
}

func (s *Service) Activate(ctx context.Context, code string) error {
	return s.transition(ctx, code, model.StatusActive, s.roles.Activate)
}

func (s *Service) Suspend(ctx context.Context, code string) error {
	return s.transition(ctx, code, model.StatusSuspended, s.roles.Suspend)
}

func (s *Service) transition(ctx context.Context, code string, target model.Status, apply func(context.Context, string) error) error {
	log := logger.FromContext(ctx)
	code = model.NormalizeRoleCode(code)

	if err := apply(ctx, code); err != nil {
		log.Warn("역할 상태 변경 실패", "code", code, "target", target.String(), "error", err)
		return fmt.Errorf("%s role: %w", target, err)
	}

	s.publisher.Publish(ctx, events.Event{
		Entity: EntityName, ID: code, Type: events.Status, Status: target.String(),
	})
	log.Info("역할 상태 변경 완료", "code", code, "status", target.String())
	return nil
}

func (s *Service) find(ctx context.Context, code string) (model.Role, error) {
	role, ok, err := s.roles.FindByCode(ctx, code)
	if err != nil {
		return model.Role{}, fmt.Errorf("find role: %w", err)
	}
	if !ok {
		return model.Role{}, &sharedError.NotFoundError{Entity: EntityName, ID: code}
	}
	return role, nil
}

func (s *Service) publish(ctx context.Context, r model.Role, eventType string) {
	s.publisher.Publish(ctx, events.Event{
		Entity:     EntityName,
		ID:         r.ID,
		Type:       eventType,
		Status:     r.Status.String(),
		OccurredAt: r.UpdatedAt,
	})
}

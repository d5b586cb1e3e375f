package budget

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/model"
	sharedError "github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/error"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/events"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/logger"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/repository"
)

type Service struct {
	budgets   *Repository
	publisher events.Publisher
	now       func() time.Time
}

func NewService(budgets *Repository, publisher events.Publisher) *Service {
	return &Service{
		budgets:   budgets,
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

	budget := model.Budget{
		ProjectID:   request.ProjectID,
		Code:        request.Code,
		Name:        request.Name,
		Currency:    strings.ToUpper(request.Currency),
		TotalAmount: request.TotalAmount,
	}
	budget.Status = status

	saved, err := s.budgets.Save(ctx, budget)
	if err != nil {
		log.Warn("예산 생성 실패", "code", request.Code, "project_id", request.ProjectID, "error", err)
		return nil, fmt.Errorf("create budget: %w", err)
	}

	s.publish(ctx, saved, events.Created)
	log.Info("예산 생성 완료", "id", saved.ID, "code", saved.Code)

	response := toResponse(saved)
	return &response, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Response, error) {
	budget, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	response := toResponse(budget)
	return &response, nil
}

func (s *Service) GetByCode(ctx context.Context, code string) (*Response, error) {
	budget, ok, err := s.budgets.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("find budget by code: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("예산을 찾을 수 없습니다 code=%s %w", code, sharedError.ErrNotFound)
	}

	response := toResponse(budget)
	return &response, nil
}

func (s *Service) List(ctx context.Context, projectID string, status model.Status) ([]Response, error) {
	var (
		budgets []model.Budget
		err     error
	)
	switch {
	case projectID != "":
		budgets, err = s.budgets.FindByProject(ctx, projectID)
	case status.IsSet():
		budgets, err = s.budgets.FindByStatus(ctx, status)
	default:
		budgets, err = s.budgets.FindAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}

	if projectID != "" && status.IsSet() {
		filtered := budgets[:0]
		for _, b := range budgets {
			if b.Status == status {
				filtered = append(filtered, b)
			}
		}
		budgets = filtered
	}

	return toResponses(budgets), nil
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

	changed, _ := model.Patch(existing, s.now(), func(b *model.Budget) {
		request.apply(b)
		b.Status = status
	})

	saved, err := s.budgets.Update(ctx, changed)
	if err != nil {
		log.Warn("예산 수정 실패", "id", id, "error", err)
		return nil, fmt.Errorf("update budget: %w", err)
	}
	if !saved.Status.IsSet() {
		saved.Status = existing.Status
	}

	s.publish(ctx, saved, events.Updated)
	log.Info("예산 수정 완료", "id", id)

	response := toResponse(saved)
	return &response, nil
}

func (s *Service) Deactivate(ctx context.Context, id string) error {
	return s.transition(ctx, id, model.StatusInactive, s.budgets.Deactivate)
}

func (s *Service) Complete(ctx context.Context, id string) error {
	return s.transition(ctx, id, model.StatusCompleted, s.budgets.Complete)
}

func (s *Service) Cancel(ctx context.Context, id string) error {
	return s.transition(ctx, id, model.StatusCancelled, s.budgets.Cancel)
}

func (s *Service) transition(ctx context.Context, id string, target model.Status, apply func(context.Context, string) error) error {
	log := logger.FromContext(ctx)

	if err := apply(ctx, id); err != nil {
		log.Warn("예산 상태 변경 실패", "id", id, "target", target.String(), "error", err)
		return fmt.Errorf("%s budget: %w", target, err)
	}

	s.publisher.Publish(ctx, events.Event{
		Entity: EntityName, ID: id, Type: events.Status, Status: target.String(),
	})
	log.Info("예산 상태 변경 완료", "id", id, "status", target.String())
	return nil
}

func (s *Service) find(ctx context.Context, id string) (model.Budget, error) {
	budget, ok, err := s.budgets.FindByID(ctx, id)
	if err != nil {
		return model.Budget{}, fmt.Errorf("find budget: %w", err)
	}
	if !ok {
		return model.Budget{}, &sharedError.NotFoundError{Entity: EntityName, ID: id}
	}
	return budget, nil
}

func (s *Service) publish(ctx context.Context, b model.Budget, eventType string) {
	s.publisher.Publish(ctx, events.Event{
		Entity:     EntityName,
		ID:         b.ID,
		Type:       eventType,
		Status:     b.Status.String(),
		OccurredAt: b.UpdatedAt,
	})
}

package activity

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
	activities  *Repository
	publisher events.Publisher
	now       func() time.Time
}

func NewService(activities *Repository, publisher events.Publisher) *Service {
	return &Service{
		activities:  activities,
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

	activity := model.Activity{
		ChapterID: request.ChapterID,
		Code:      request.Code,
		Name:      request.Name,
		Unit:      request.Unit,
		Quantity:  request.Quantity,
		UnitPrice: request.UnitPrice,
	}
	activity.Status = status

	saved, err := s.activities.Save(ctx, activity)
	if err != nil {
		log.Warn("활동 생성 실패", "code", request.Code, "chapter_id", request.ChapterID, "error", err)
		return nil, fmt.Errorf("create activity: %w", err)
	}

	s.publish(ctx, saved, events.Created)
	log.Info("활동 생성 완료", "id", saved.ID, "code", saved.Code)

	response := toResponse(saved)
	return &response, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Response, error) {
	activity, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	response := toResponse(activity)
	return &response, nil
}

func (s *Service) GetByCode(ctx context.Context, code string) (*Response, error) {
	activity, ok, err := s.activities.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("find activity by code: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("활동을 찾을 수 없습니다 code=%s %w", code, sharedError.ErrNotFound)
	}

	response := toResponse(activity)
	return &response, nil
}

func (s *Service) List(ctx context.Context, chapterID string, status model.Status) ([]Response, error) {
	var (
		activities []model.Activity
		err        error
	)
	switch {
	case chapterID != "":
		activities, err = s.activities.FindByChapter(ctx, chapterID)
	case status.IsSet():
		activities, err = s.activities.FindByStatus(ctx, status)
	default:
		activities, err = s.activities.FindAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	if chapterID != "" && status.IsSet() {
		filtered := activities[:0]
		for _, a := range activities {
			if a.Status == status {
				filtered = append(filtered, a)
			}
		}
		activities = filtered
	}

	return toResponses(activities), nil
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

	changed, _ := model.Patch(existing, s.now(), func(a *model.Activity) {
		request.apply(a)
		a.Status = status
	})

	saved, err := s.activities.Update(ctx, changed)
	if err != nil {
		log.Warn("활동 수정 실패", "id", id, "error", err)
		return nil, fmt.Errorf("update activity: %w", err)
	}
	if !saved.Status.IsSet() {
		saved.Status = existing.Status
	}

	s.publish(ctx, saved, events.Updated)
	log.Info("활동 수정 완료", "id", id)

	response := toResponse(saved)
	return &response, nil
}

func (s *Service) Deactivate(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	if err := s.activities.Deactivate(ctx, id); err != nil {
		log.Warn("활동 비활성화 실패", "id", id, "error", err)
		return fmt.Errorf("deactivate activity: %w", err)
	}

	s.publisher.Publish(ctx, events.Event{
		Entity: EntityName, ID: id, Type: events.Status, Status: model.StatusInactive.String(),
	})
	log.Info("활동 비활성화 완료", "id", id)
	return nil
}

func (s *Service) find(ctx context.Context, id string) (model.Activity, error) {
	activity, ok, err := s.activities.FindByID(ctx, id)
	if err != nil {
		return model.Activity{}, fmt.Errorf("find activity: %w", err)
	}
	if !ok {
		return model.Activity{}, &sharedError.NotFoundError{Entity: EntityName, ID: id}
	}
	return activity, nil
}

func (s *Service) publish(ctx context.Context, a model.Activity, eventType string) {
	s.publisher.Publish(ctx, events.Event{
		Entity:     EntityName,
		ID:         a.ID,
		Type:       eventType,
		Status:     a.Status.String(),
		OccurredAt: a.UpdatedAt,
	})
}

package chapter

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/model"
	sharedError "github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/error"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/events"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/logger"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/repository"
)

type Service struct {
	chapters  *Repository
	publisher events.Publisher
	now       func() time.Time
}

func NewService(chapters *Repository, publisher events.Publisher) *Service {
	return &Service{
		chapters:  chapters,
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

	chapter := model.Chapter{
		BudgetID:    request.BudgetID,
		Code:        request.Code,
		Name:        request.Name,
		Description: request.Description,
		SortOrder:   request.SortOrder,
	}
	chapter.Status = status

	saved, err := s.chapters.Save(ctx, chapter)
	if err != nil {
		log.Warn("챕터 생성 실패", "code", request.Code, "budget_id", request.BudgetID, "error", err)
		return nil, fmt.Errorf("create chapter: %w", err)
	}

	s.publish(ctx, saved, events.Created)
	log.Info("챕터 생성 완료", "id", saved.ID, "code", saved.Code)

	response := toResponse(saved)
	return &response, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Response, error) {
	chapter, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	response := toResponse(chapter)
	return &response, nil
}

func (s *Service) GetByCode(ctx context.Context, code string) (*Response, error) {
	chapter, ok, err := s.chapters.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("find chapter by code: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("챕터를 찾을 수 없습니다 code=%s %w", code, sharedError.ErrNotFound)
	}

	response := toResponse(chapter)
	return &response, nil
}

// List returns the chapters of a budget in sort order, or all chapters newest first.
func (s *Service) List(ctx context.Context, budgetID string, status model.Status) ([]Response, error) {
	var (
		chapters []model.Chapter
		err      error
	)
	switch {
	case budgetID != "":
		chapters, err = s.chapters.FindByBudget(ctx, budgetID)
	case status.IsSet():
		chapters, err = s.chapters.FindByStatus(ctx, status)
	default:
		chapters, err = s.chapters.FindAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}

	if budgetID != "" {
		filtered := chapters[:0]
		for _, c := range chapters {
			if !status.IsSet() || c.Status == status {
				filtered = append(filtered, c)
			}
		}
		chapters = filtered
		sort.SliceStable(chapters, func(i, j int) bool {
			return chapters[i].SortOrder < chapters[j].SortOrder
		})
	}

	return toResponses(chapters), nil
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

	changed, _ := model.Patch(existing, s.now(), func(c *model.Chapter) {
		request.apply(c)
		c.Status = status
	})

	saved, err := s.chapters.Update(ctx, changed)
	if err != nil {
		log.Warn("챕터 수정 실패", "id", id, "error", err)
		return nil, fmt.Errorf("update chapter: %w", err)
	}
	if !saved.Status.IsSet() {
		saved.Status = existing.Status
	}

	s.publish(ctx, saved, events.Updated)
	log.Info("챕터 수정 완료", "id", id)

	response := toResponse(saved)
	return &response, nil
}

func (s *Service) Deactivate(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	if err := s.chapters.Deactivate(ctx, id); err != nil {
		log.Warn("챕터 비활성화 실패", "id", id, "error", err)
		return fmt.Errorf("deactivate chapter: %w", err)
	}

	s.publisher.Publish(ctx, events.Event{
		Entity: EntityName, ID: id, Type: events.Status, Status: model.StatusInactive.String(),
	})
	log.Info("챕터 비활성화 완료", "id", id)
	return nil
}

func (s *Service) find(ctx context.Context, id string) (model.Chapter, error) {
	chapter, ok, err := s.chapters.FindByID(ctx, id)
	if err != nil {
		return model.Chapter{}, fmt.Errorf("find chapter: %w", err)
	}
	if !ok {
		return model.Chapter{}, &sharedError.NotFoundError{Entity: EntityName, ID: id}
	}
	return chapter, nil
}

func (s *Service) publish(ctx context.Context, c model.Chapter, eventType string) {
	s.publisher.Publish(ctx, events.Event{
		Entity:     EntityName,
		ID:         c.ID,
		Type:       eventType,
		Status:     c.Status.String(),
		OccurredAt: c.UpdatedAt,
	})
}

package costdetail

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
	details   *Repository
	publisher events.Publisher
	now       func() time.Time
}

func NewService(details *Repository, publisher events.Publisher) *Service {
	return &Service{
		details:   details,
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

	detail := model.CostDetail{
		ActivityID:  request.ActivityID,
		AttributeID: request.AttributeID,
		Description: request.Description,
		Quantity:    request.Quantity,
		UnitCost:    request.UnitCost,
	}
	detail.Amount = detail.ComputeAmount()
	detail.Status = status

	saved, err := s.details.Save(ctx, detail)
	if err != nil {
		log.Warn("원가 상세 생성 실패",
			"activity_id", request.ActivityID, "attribute_id", request.AttributeID, "error", err,
		)
		return nil, fmt.Errorf("create cost detail: %w", err)
	}

	s.publish(ctx, saved, events.Created)
	log.Info("원가 상세 생성 완료", "id", saved.ID, "amount", saved.Amount.String())

	response := toResponse(saved)
	return &response, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Response, error) {
	detail, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	response := toResponse(detail)
	return &response, nil
}

// List filters by activity, attribute or status. Parent filters take precedence over status.
func (s *Service) List(ctx context.Context, activityID, attributeID string, status model.Status) ([]Response, error) {
	var (
		details []model.CostDetail
		err     error
	)
	switch {
	case activityID != "":
		details, err = s.details.FindByActivity(ctx, activityID)
	case attributeID != "":
		details, err = s.details.FindByAttribute(ctx, attributeID)
	case status.IsSet():
		details, err = s.details.FindByStatus(ctx, status)
	default:
		details, err = s.details.FindAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list cost details: %w", err)
	}

	filtered := details[:0]
	for _, d := range details {
		if attributeID != "" && d.AttributeID != attributeID {
			continue
		}
		if status.IsSet() && d.Status != status {
			continue
		}
		filtered = append(filtered, d)
	}

	return toResponses(filtered), nil
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

	changed, _ := model.Patch(existing, s.now(), func(c *model.CostDetail) {
		request.apply(c)
		c.Status = status
	})

	saved, err := s.details.Update(ctx, changed)
	if err != nil {
		log.Warn("원가 상세 수정 실패", "id", id, "error", err)
		return nil, fmt.Errorf("update cost detail: %w", err)
	}
	if !saved.Status.IsSet() {
		saved.Status = existing.Status
	}

	s.publish(ctx, saved, events.Updated)
	log.Info("원가 상세 수정 완료", "id", id)

	response := toResponse(saved)
	return &response, nil
}

func (s *Service) Deactivate(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	if err := s.details.Deactivate(ctx, id); err != nil {
		log.Warn("원가 상세 비활성화 실패", "id", id, "error", err)
		return fmt.Errorf("deactivate cost detail: %w", err)
	}

	s.publisher.Publish(ctx, events.Event{
		Entity: EntityName, ID: id, Type: events.Status, Status: model.StatusInactive.String(),
	})
	log.Info("원가 상세 비활성화 완료", "id", id)
	return nil
}

// Delete physically removes the cost line.
func (s *Service) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	if err := s.details.Delete(ctx, id); err != nil {
		log.Warn("원가 상세 삭제 실패", "id", id, "error", err)
		return fmt.Errorf("delete cost detail: %w", err)
	}

	s.publisher.Publish(ctx, events.Event{Entity: EntityName, ID: id, Type: events.Deleted})
	log.Info("원가 상세 삭제 완료", "id", id)
	return nil
}

func (s *Service) find(ctx context.Context, id string) (model.CostDetail, error) {
	detail, ok, err := s.details.FindByID(ctx, id)
	if err != nil {
		return model.CostDetail{}, fmt.Errorf("find cost detail: %w", err)
	}
	if !ok {
		return model.CostDetail{}, &sharedError.NotFoundError{Entity: EntityName, ID: id}
	}
	return detail, nil
}

func (s *Service) publish(ctx context.Context, c model.CostDetail, eventType string) {
	s.publisher.Publish(ctx, events.Event{
		Entity:     EntityName,
		ID:         c.ID,
		Type:       eventType,
		Status:     c.Status.String(),
		OccurredAt: c.UpdatedAt,
	})
}

package attribute

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
	attributes  *Repository
	publisher events.Publisher
	now       func() time.Time
}

func NewService(attributes *Repository, publisher events.Publisher) *Service {
	return &Service{
		attributes:  attributes,
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

	attribute := model.Attribute{
		CompanyID: request.CompanyID,
		Code:      request.Code,
		Name:      request.Name,
		Unit:      request.Unit,
		DataType:  request.DataType,
	}
	attribute.Status = status

	saved, err := s.attributes.Save(ctx, attribute)
	if err != nil {
		log.Warn("속성 생성 실패", "code", request.Code, "company_id", request.CompanyID, "error", err)
		return nil, fmt.Errorf("create attribute: %w", err)
	}

	s.publish(ctx, saved, events.Created)
	log.Info("속성 생성 완료", "id", saved.ID, "code", saved.Code)

	response := toResponse(saved)
	return &response, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Response, error) {
	attribute, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	response := toResponse(attribute)
	return &response, nil
}

func (s *Service) GetByCode(ctx context.Context, code string) (*Response, error) {
	attribute, ok, err := s.attributes.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("find attribute by code: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("속성을 찾을 수 없습니다 code=%s %w", code, sharedError.ErrNotFound)
	}

	response := toResponse(attribute)
	return &response, nil
}

func (s *Service) List(ctx context.Context, companyID string, status model.Status) ([]Response, error) {
	var (
		attributes []model.Attribute
		err        error
	)
	switch {
	case companyID != "":
		attributes, err = s.attributes.FindByCompany(ctx, companyID)
	case status.IsSet():
		attributes, err = s.attributes.FindByStatus(ctx, status)
	default:
		attributes, err = s.attributes.FindAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list attributes: %w", err)
	}

	if companyID != "" && status.IsSet() {
		filtered := attributes[:0]
		for _, a := range attributes {
			if a.Status == status {
				filtered = append(filtered, a)
			}
		}
		attributes = filtered
	}

	return toResponses(attributes), nil
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

	changed, _ := model.Patch(existing, s.now(), func(a *model.Attribute) {
		request.apply(a)
		a.Status = status
	})

	saved, err := s.attributes.Update(ctx, changed)
	if err != nil {
		log.Warn("속성 수정 실패", "id", id, "error", err)
		return nil, fmt.Errorf("update attribute: %w", err)
	}
	if !saved.Status.IsSet() {
		saved.Status = existing.Status
	}

	s.publish(ctx, saved, events.Updated)
	log.Info("속성 수정 완료", "id", id)

	response := toResponse(saved)
	return &response, nil
}

func (s *Service) Deactivate(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	if err := s.attributes.Deactivate(ctx, id); err != nil {
		log.Warn("속성 비활성화 실패", "id", id, "error", err)
		return fmt.Errorf("deactivate attribute: %w", err)
	}

	s.publisher.Publish(ctx, events.Event{
		Entity: EntityName, ID: id, Type: events.Status, Status: model.StatusInactive.String(),
	})
	log.Info("속성 비활성화 완료", "id", id)
	return nil
}

func (s *Service) find(ctx context.Context, id string) (model.Attribute, error) {
	attribute, ok, err := s.attributes.FindByID(ctx, id)
	if err != nil {
		return model.Attribute{}, fmt.Errorf("find attribute: %w", err)
	}
	if !ok {
		return model.Attribute{}, &sharedError.NotFoundError{Entity: EntityName, ID: id}
	}
	return attribute, nil
}

func (s *Service) publish(ctx context.Context, a model.Attribute, eventType string) {
	s.publisher.Publish(ctx, events.Event{
		Entity:     EntityName,
		ID:         a.ID,
		Type:       eventType,
		Status:     a.Status.String(),
		OccurredAt: a.UpdatedAt,
	})
}

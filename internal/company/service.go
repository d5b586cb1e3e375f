package company

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
	companies *Repository
	publisher events.Publisher
	now       func() time.Time
}

func NewService(companies *Repository, publisher events.Publisher) *Service {
	return &Service{
		companies: companies,
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

	company := model.NewCompany(request.Code, request.Name)
	company.TaxID = request.TaxID
	company.Email = request.Email
	company.Phone = request.Phone
	company.Address = request.Address
	company.Status = status

	saved, err := s.companies.Save(ctx, *company)
	if err != nil {
		log.Warn("회사 생성 실패", "code", request.Code, "error", err)
		return nil, fmt.Errorf("create company: %w", err)
	}

	s.publish(ctx, saved, events.Created)
	log.Info("회사 생성 완료", "id", saved.ID, "code", saved.Code)

	response := toResponse(saved)
	return &response, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Response, error) {
	company, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	response := toResponse(company)
	return &response, nil
}

func (s *Service) GetByCode(ctx context.Context, code string) (*Response, error) {
	company, ok, err := s.companies.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("find company by code: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("회사를 찾을 수 없습니다 code=%s %w", code, sharedError.ErrNotFound)
	}

	response := toResponse(company)
	return &response, nil
}

// List returns every company, or only those in status when it is set.
func (s *Service) List(ctx context.Context, status model.Status) ([]Response, error) {
	var (
		companies []model.Company
		err       error
	)
	if status.IsSet() {
		companies, err = s.companies.FindByStatus(ctx, status)
	} else {
		companies, err = s.companies.FindAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}

	return toResponses(companies), nil
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

	changed, _ := model.Patch(existing, s.now(), func(c *model.Company) {
		request.apply(c)
		c.Status = status
	})

	saved, err := s.companies.Update(ctx, changed)
	if err != nil {
		log.Warn("회사 수정 실패", "id", id, "error", err)
		return nil, fmt.Errorf("update company: %w", err)
	}
	if !saved.Status.IsSet() {
		saved.Status = existing.Status
	}

	s.publish(ctx, saved, events.Updated)
	log.Info("회사 수정 완료", "id", id)

	response := toResponse(saved)
	return &response, nil
}

func (s *Service) Deactivate(ctx context.Context, id string) error {
	if err := s.companies.Deactivate(ctx, id); err != nil {
		logger.FromContext(ctx).Warn("회사 비활성화 실패", "id", id, "error", err)
		return fmt.Errorf("deactivate company: %w", err)
	}

	s.publisher.Publish(ctx, events.Event{
		Entity: EntityName, ID: id, Type: events.Status, Status: model.StatusInactive.String(),
	})
	logger.FromContext(ctx).Info("회사 비활성화 완료", "id", id)
	return nil
}

func (s *Service) find(ctx context.Context, id string) (model.Company, error) {
	company, ok, err := s.companies.FindByID(ctx, id)
	if err != nil {
		return model.Company{}, fmt.Errorf("find company: %w", err)
	}
	if !ok {
		return model.Company{}, &sharedError.NotFoundError{Entity: EntityName, ID: id}
	}
	return company, nil
}

func (s *Service) publish(ctx context.Context, c model.Company, eventType string) {
	s.publisher.Publish(ctx, events.Event{
		Entity:     EntityName,
		ID:         c.ID,
		Type:       eventType,
		Status:     c.Status.String(),
		OccurredAt: c.UpdatedAt,
	})
}

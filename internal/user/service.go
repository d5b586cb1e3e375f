package user

import (
	"context"
	"fmt"
	"time"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/model"
	sharedError "github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/error"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/events"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/logger"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/repository"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	users     *Repository
	publisher events.Publisher
	now       func() time.Time
}

func NewService(users *Repository, publisher events.Publisher) *Service {
	return &Service{
		users:     users,
		publisher: publisher,
		now:       model.Now,
	}
}

func (s *Service) Create(ctx context.Context, request *CreateRequest) (*Response, error) {
	log := logger.FromContext(ctx)
	email := NormalizeEmail(request.Email)

	status, err := model.ParseOptionalStatus(request.Status)
	if err != nil {
		return nil, &sharedError.StateError{Entity: EntityName, Target: request.Status}
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		log.Error("사용자 존재 여부 확인 실패", "error", err)
		return nil, fmt.Errorf("check user existence: %w", err)
	}
	if exists {
		log.Warn("이미 등록된 사용자", "email", logger.MaskEmail(email))
		return nil, fmt.Errorf("error %w", ErrUserAlreadyExists)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("비밀번호 해시 실패", "error", err)
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := model.NewUser(
		request.CompanyID,
		model.NormalizeRoleCode(request.RoleCode),
		request.Name,
		email,
		request.PhoneNumber,
		string(hashedPassword),
	)
	user.Status = status

	saved, err := s.users.Save(ctx, *user)
	if err != nil {
		log.Warn("사용자 생성 실패", "email", logger.MaskEmail(email), "error", err)
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.publish(ctx, saved, events.Created)
	log.Info("사용자 생성 완료", "id", saved.ID, "email", logger.MaskEmail(email))

	response := toResponse(saved)
	return &response, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Response, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	response := toResponse(user)
	return &response, nil
}

// GetProfile returns the authenticated user.
func (s *Service) GetProfile(ctx context.Context, userID string) (*Response, error) {
	user, ok, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("사용자 조회 실패: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("사용자를 찾을 수 없습니다 userID=%s %w", userID, ErrUserNotFound)
	}

	response := toResponse(user)
	return &response, nil
}

// List filters by company, role or status. Parent filters take precedence over status.
func (s *Service) List(ctx context.Context, companyID, roleCode string, status model.Status) ([]Response, error) {
	var (
		users []model.User
		err   error
	)
	switch {
	case companyID != "":
		users, err = s.users.FindByCompany(ctx, companyID)
	case roleCode != "":
		users, err = s.users.FindByRole(ctx, roleCode)
	case status.IsSet():
		users, err = s.users.FindByStatus(ctx, status)
	default:
		users, err = s.users.FindAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	role := model.NormalizeRoleCode(roleCode)
	filtered := users[:0]
	for _, u := range users {
		if role != "" && u.RoleID != role {
			continue
		}
		if status.IsSet() && u.Status != status {
			continue
		}
		filtered = append(filtered, u)
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

	passwordHash := existing.PasswordHash
	if request.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*request.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Error("비밀번호 해시 실패", "error", err)
			return nil, fmt.Errorf("hash password: %w", err)
		}
		passwordHash = string(hashed)
	}

	changed, _ := model.Patch(existing, s.now(), func(u *model.User) {
		request.apply(u)
		u.PasswordHash = passwordHash
		u.Status = status
	})

	saved, err := s.users.Update(ctx, changed)
	if err != nil {
		log.Warn("사용자 수정 실패", "id", id, "error", err)
		return nil, fmt.Errorf("update user: %w", err)
	}
	if !saved.Status.IsSet() {
		saved.Status = existing.Status
	}

	s.publish(ctx, saved, events.Updated)
	log.Info("사용자 수정 완료", "id", id)

	response := toResponse(saved)
	return &response, nil
}

func (s *Service) Deactivate(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	if err := s.users.Deactivate(ctx, id); err != nil {
		log.Warn("사용자 비활성화 실패", "id", id, "error", err)
		return fmt.Errorf("deactivate user: %w", err)
	}

	s.publisher.Publish(ctx, events.Event{
		Entity: EntityName, ID: id, Type: events.Status, Status: model.StatusInactive.String(),
	})
	log.Info("사용자 비활성화 완료", "id", id)
	return nil
}

func (s *Service) find(ctx context.Context, id string) (model.User, error) {
	user, ok, err := s.users.FindByID(ctx, id)
	if err != nil {
		return model.User{}, fmt.Errorf("find user: %w", err)
	}
	if !ok {
		return model.User{}, &sharedError.NotFoundError{Entity: EntityName, ID: id}
	}
	return user, nil
}

func (s *Service) publish(ctx context.Context, u model.User, eventType string) {
	s.publisher.Publish(ctx, events.Event{
		Entity:     EntityName,
		ID:         u.ID,
		Type:       eventType,
		Status:     u.Status.String(),
		OccurredAt: u.UpdatedAt,
	})
}

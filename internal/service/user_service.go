package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-catalog-api/internal/apierror"
	"go-catalog-api/internal/audit"
	"go-catalog-api/internal/model"
	"go-catalog-api/internal/repository"
	"go-catalog-api/internal/ws"
	"go-catalog-api/pkg/validator"
)

type UserService interface {
	FindAll() ([]model.UserResponse, error)
	FindByID(id string) (*model.UserResponse, error)
	Save(ctx context.Context, req *UserRequest) (*model.UserResponse, error)
	Update(ctx context.Context, id string, req *UserRequest) (*model.UserResponse, error)
	Delete(ctx context.Context, id string) error
}

type UserRequest struct {
	ID    string `json:"id" validate:"required"`
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
	Phone string `json:"phone" validate:"required"`
	Cpf   string `json:"cpf" validate:"required"`
}

var userMessages = map[string]string{
	"ID":    "O campo id é obrigatório",
	"Name":  "O campo nome é obrigatório",
	"Email": "O campo email é obrigatório",
	"Phone": "O campo telefone é obrigatório",
	"Cpf":   "O campo cpf é obrigatório",
}

type userService struct {
	repo repository.UserRepository
	hub  *ws.Hub
	log  *zap.Logger
}

func NewUserService(repo repository.UserRepository, hub *ws.Hub, log *zap.Logger) UserService {
	return &userService{repo: repo, hub: hub, log: log}
}

func (s *userService) FindAll() ([]model.UserResponse, error) {
	users, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}
	responses := make([]model.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, nil
}

func (s *userService) FindByID(id string) (*model.UserResponse, error) {
	user, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Usuário não encontrado")
		}
		return nil, err
	}
	response := user.ToResponse()
	return &response, nil
}

func (s *userService) Save(ctx context.Context, req *UserRequest) (*model.UserResponse, error) {
	if msgs := validator.Messages(req, userMessages); len(msgs) > 0 {
		return nil, apierror.Validation(msgs)
	}
	if err := s.checkConflicts(req); err != nil {
		return nil, err
	}

	// The creation timestamp is always server-assigned.
	user := &model.User{
		ID:         req.ID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Cpf:        req.Cpf,
		CreateDate: time.Now(),
	}

	rev, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, s.mapWriteError(err)
	}
	s.publish(ctx, "user_created", user.ID, rev)

	response := user.ToResponse()
	return &response, nil
}

// checkConflicts runs the case-insensitive uniqueness pre-checks. The
// first violated field wins and short-circuits the rest.
func (s *userService) checkConflicts(req *UserRequest) error {
	if existing, _ := s.repo.FindByEmail(req.Email); existing != nil {
		return apierror.Conflict("Já existe um usuário cadastrado com o email: " + req.Email)
	}
	if existing, _ := s.repo.FindByPhone(req.Phone); existing != nil {
		return apierror.Conflict("Já existe um usuário cadastrado com o telefone: " + req.Phone)
	}
	if existing, _ := s.repo.FindByCpf(req.Cpf); existing != nil {
		return apierror.Conflict("Já existe um usuário cadastrado com o cpf: " + req.Cpf)
	}
	return nil
}

func (s *userService) Update(ctx context.Context, id string, req *UserRequest) (*model.UserResponse, error) {
	req.ID = id
	if msgs := validator.Messages(req, userMessages); len(msgs) > 0 {
		return nil, apierror.Validation(msgs)
	}

	existing, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Usuário não encontrado")
		}
		return nil, err
	}

	// Rebuild from the draft, keeping the original creation timestamp.
	now := time.Now()
	user := &model.User{
		ID:         id,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Cpf:        req.Cpf,
		CreateDate: existing.CreateDate,
		UpdateDate: &now,
	}

	rev, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, s.mapWriteError(err)
	}
	s.publish(ctx, "user_updated", user.ID, rev)

	response := user.ToResponse()
	return &response, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	existing, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("Usuário não encontrado")
		}
		return err
	}

	rev, err := s.repo.Delete(ctx, existing)
	if err != nil {
		return err
	}
	s.publish(ctx, "user_deleted", existing.ID, rev)
	return nil
}

// mapWriteError converts a storage-level uniqueness violation, raised
// when a concurrent writer slipped past the pre-checks, into the same
// Conflict outcome the pre-checks produce.
func (s *userService) mapWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apierror.Conflict("Já existe um usuário cadastrado com os dados informados")
	}
	s.log.Error("persisting user", zap.Error(err))
	return err
}

func (s *userService) publish(ctx context.Context, action, id string, rev *model.Revision) {
	actor := audit.UnknownUser
	if rc, ok := audit.FromContext(ctx); ok && rc.Actor != "" {
		actor = rc.Actor
	}
	s.hub.Publish(ws.Event{
		Type:     "audit",
		Entity:   "user",
		Action:   action,
		EntityID: id,
		Revision: rev.ID,
		Actor:    actor,
	})
}

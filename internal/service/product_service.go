package service

import (
	"context"
	"errors"
	"strconv"
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

type ProductService interface {
	FindAll() ([]model.ProductResponse, error)
	FindByID(id int64) (*model.ProductResponse, error)
	FindByUser(userID string) ([]model.ProductResponse, error)
	Images(id int64) ([]string, error)
	Save(ctx context.Context, req *ProductRequest) (*model.ProductResponse, error)
	Update(ctx context.Context, id int64, req *ProductRequest) (*model.ProductResponse, error)
	Delete(ctx context.Context, id int64) error
}

// ProductRequest is the draft carried by the "product" multipart part.
// Images from the draft are replaced by the stored upload references
// before the service sees them.
type ProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Categories  string   `json:"categories" validate:"required"`
	Description string   `json:"description"`
	Quantity    *int     `json:"quantity" validate:"required,gte=0"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Images      []string `json:"images"`
	UserID      string   `json:"userId" validate:"required"`
}

var productMessages = map[string]string{
	"Name":       "O campo nome é obrigatório",
	"Categories": "O campo categoria é obrigatório",
	"Quantity":   "A quantidade não pode ser negativa",
	"Price":      "O valor não pode ser negativo",
	"UserID":     "O campo userId é obrigatório",
}

type productService struct {
	repo     repository.ProductRepository
	userRepo repository.UserRepository
	hub      *ws.Hub
	log      *zap.Logger
}

func NewProductService(repo repository.ProductRepository, userRepo repository.UserRepository, hub *ws.Hub, log *zap.Logger) ProductService {
	return &productService{repo: repo, userRepo: userRepo, hub: hub, log: log}
}

func (s *productService) FindAll() ([]model.ProductResponse, error) {
	products, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}
	responses := make([]model.ProductResponse, len(products))
	for i, product := range products {
		responses[i] = product.ToResponse()
	}
	return responses, nil
}

func (s *productService) FindByID(id int64) (*model.ProductResponse, error) {
	product, err := s.find(id)
	if err != nil {
		return nil, err
	}
	response := product.ToResponse()
	return &response, nil
}

func (s *productService) FindByUser(userID string) ([]model.ProductResponse, error) {
	products, err := s.repo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	responses := make([]model.ProductResponse, len(products))
	for i, product := range products {
		responses[i] = product.ToResponse()
	}
	return responses, nil
}

func (s *productService) Images(id int64) ([]string, error) {
	product, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if product.Images == nil {
		return []string{}, nil
	}
	return product.Images, nil
}

func (s *productService) Save(ctx context.Context, req *ProductRequest) (*model.ProductResponse, error) {
	if msgs := validator.Messages(req, productMessages); len(msgs) > 0 {
		return nil, apierror.Validation(msgs)
	}
	category, err := model.ParseCategory(req.Categories)
	if err != nil {
		return nil, apierror.Validation([]string{err.Error()})
	}

	// The owning user must resolve before any uniqueness check; its
	// absence is a distinct NotFound, not a product failure.
	if _, err := s.userRepo.FindByID(req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Usuário não encontrado")
		}
		return nil, err
	}
	if err := s.checkConflicts(req); err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:        req.Name,
		Category:    category,
		Description: req.Description,
		Quantity:    *req.Quantity,
		Price:       *req.Price,
		Images:      req.Images,
		UserID:      req.UserID,
		CreateDate:  time.Now(),
	}

	rev, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, s.mapWriteError(err)
	}
	s.publish(ctx, "product_created", product.ID, rev)

	response := product.ToResponse()
	return &response, nil
}

// checkConflicts enforces the case-insensitive name and description
// uniqueness; the first violation found wins.
func (s *productService) checkConflicts(req *ProductRequest) error {
	if existing, _ := s.repo.FindByName(req.Name); existing != nil {
		return apierror.Conflict("Já existe um produto cadastrado com o nome: " + req.Name)
	}
	if req.Description != "" {
		if existing, _ := s.repo.FindByDescription(req.Description); existing != nil {
			return apierror.Conflict("Já existe um produto cadastrado com a descrição: " + req.Description)
		}
	}
	return nil
}

func (s *productService) Update(ctx context.Context, id int64, req *ProductRequest) (*model.ProductResponse, error) {
	if msgs := validator.Messages(req, productMessages); len(msgs) > 0 {
		return nil, apierror.Validation(msgs)
	}
	category, err := model.ParseCategory(req.Categories)
	if err != nil {
		return nil, apierror.Validation([]string{err.Error()})
	}

	existing, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindByID(req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Usuário não encontrado")
		}
		return nil, err
	}

	// Rebuild from the draft, keeping the original creation timestamp.
	now := time.Now()
	product := &model.Product{
		ID:          id,
		Name:        req.Name,
		Category:    category,
		Description: req.Description,
		Quantity:    *req.Quantity,
		Price:       *req.Price,
		Images:      req.Images,
		UserID:      req.UserID,
		CreateDate:  existing.CreateDate,
		UpdateDate:  &now,
	}

	rev, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, s.mapWriteError(err)
	}
	s.publish(ctx, "product_updated", product.ID, rev)

	response := product.ToResponse()
	return &response, nil
}

func (s *productService) Delete(ctx context.Context, id int64) error {
	existing, err := s.find(id)
	if err != nil {
		return err
	}

	rev, err := s.repo.Delete(ctx, existing)
	if err != nil {
		return err
	}
	s.publish(ctx, "product_deleted", existing.ID, rev)
	return nil
}

func (s *productService) find(id int64) (*model.Product, error) {
	product, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Produto não encontrado")
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) mapWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apierror.Conflict("Já existe um produto cadastrado com os dados informados")
	}
	s.log.Error("persisting product", zap.Error(err))
	return err
}

func (s *productService) publish(ctx context.Context, action string, id int64, rev *model.Revision) {
	actor := audit.UnknownUser
	if rc, ok := audit.FromContext(ctx); ok && rc.Actor != "" {
		actor = rc.Actor
	}
	s.hub.Publish(ws.Event{
		Type:     "audit",
		Entity:   "product",
		Action:   action,
		EntityID: strconv.FormatInt(id, 10),
		Revision: rev.ID,
		Actor:    actor,
	})
}

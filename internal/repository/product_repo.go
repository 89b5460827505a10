package repository

import (
	"context"

	"gorm.io/gorm"

	"go-catalog-api/internal/audit"
	"go-catalog-api/internal/model"
)

type ProductRepository interface {
	FindAll() ([]model.Product, error)
	FindByID(id int64) (*model.Product, error)
	FindByUserID(userID string) ([]model.Product, error)
	FindByName(name string) (*model.Product, error)
	FindByDescription(description string) (*model.Product, error)
	Create(ctx context.Context, product *model.Product) (*model.Revision, error)
	Update(ctx context.Context, product *model.Product) (*model.Revision, error)
	Delete(ctx context.Context, product *model.Product) (*model.Revision, error)
}

type productRepo struct {
	db       *gorm.DB
	recorder *audit.Recorder
}

func NewProductRepo(db *gorm.DB, recorder *audit.Recorder) ProductRepository {
	return &productRepo{db: db, recorder: recorder}
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	if err := r.db.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepo) FindByID(id int64) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindByUserID(userID string) ([]model.Product, error) {
	var products []model.Product
	if err := r.db.Where("user_id = ?", userID).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepo) FindByName(name string) (*model.Product, error) {
	return r.findByField("name", name)
}

func (r *productRepo) FindByDescription(description string) (*model.Product, error) {
	return r.findByField("description", description)
}

func (r *productRepo) findByField(column, value string) (*model.Product, error) {
	var product model.Product
	if err := r.db.Where("LOWER("+column+") = LOWER(?)", value).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) (*model.Revision, error) {
	return r.write(ctx, product, model.RevTypeAdd, func(tx *gorm.DB) error {
		return tx.Create(product).Error
	})
}

func (r *productRepo) Update(ctx context.Context, product *model.Product) (*model.Revision, error) {
	return r.write(ctx, product, model.RevTypeMod, func(tx *gorm.DB) error {
		return tx.Save(product).Error
	})
}

func (r *productRepo) Delete(ctx context.Context, product *model.Product) (*model.Revision, error) {
	return r.write(ctx, product, model.RevTypeDel, func(tx *gorm.DB) error {
		return tx.Delete(product).Error
	})
}

func (r *productRepo) write(ctx context.Context, product *model.Product, revType int8, op func(tx *gorm.DB) error) (*model.Revision, error) {
	var rev *model.Revision
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := op(tx); err != nil {
			return err
		}
		var err error
		rev, err = r.recorder.Append(ctx, tx, product, revType)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rev, nil
}

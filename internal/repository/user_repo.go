package repository

import (
	"context"

	"gorm.io/gorm"

	"go-catalog-api/internal/audit"
	"go-catalog-api/internal/model"
)

type UserRepository interface {
	FindAll() ([]model.User, error)
	FindByID(id string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindByPhone(phone string) (*model.User, error)
	FindByCpf(cpf string) (*model.User, error)
	Create(ctx context.Context, user *model.User) (*model.Revision, error)
	Update(ctx context.Context, user *model.User) (*model.Revision, error)
	Delete(ctx context.Context, user *model.User) (*model.Revision, error)
}

type userRepo struct {
	db       *gorm.DB
	recorder *audit.Recorder
}

func NewUserRepo(db *gorm.DB, recorder *audit.Recorder) UserRepository {
	return &userRepo{db: db, recorder: recorder}
}

func (r *userRepo) FindAll() ([]model.User, error) {
	var users []model.User
	if err := r.db.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) FindByID(id string) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Uniqueness lookups compare case-insensitively.

func (r *userRepo) FindByEmail(email string) (*model.User, error) {
	return r.findByField("email", email)
}

func (r *userRepo) FindByPhone(phone string) (*model.User, error) {
	return r.findByField("phone", phone)
}

func (r *userRepo) FindByCpf(cpf string) (*model.User, error) {
	return r.findByField("cpf", cpf)
}

func (r *userRepo) findByField(column, value string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("LOWER("+column+") = LOWER(?)", value).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Write operations commit the entity row and its audit revision in one
// transaction; either both land or neither does.

func (r *userRepo) Create(ctx context.Context, user *model.User) (*model.Revision, error) {
	return r.write(ctx, user, model.RevTypeAdd, func(tx *gorm.DB) error {
		return tx.Create(user).Error
	})
}

func (r *userRepo) Update(ctx context.Context, user *model.User) (*model.Revision, error) {
	return r.write(ctx, user, model.RevTypeMod, func(tx *gorm.DB) error {
		return tx.Save(user).Error
	})
}

func (r *userRepo) Delete(ctx context.Context, user *model.User) (*model.Revision, error) {
	return r.write(ctx, user, model.RevTypeDel, func(tx *gorm.DB) error {
		return tx.Delete(user).Error
	})
}

func (r *userRepo) write(ctx context.Context, user *model.User, revType int8, op func(tx *gorm.DB) error) (*model.Revision, error) {
	var rev *model.Revision
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := op(tx); err != nil {
			return err
		}
		var err error
		rev, err = r.recorder.Append(ctx, tx, user, revType)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rev, nil
}

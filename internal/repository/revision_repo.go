package repository

import (
	"gorm.io/gorm"

	"go-catalog-api/internal/model"
)

// UserRevision joins one user snapshot to the revision it was written
// under.
type UserRevision struct {
	Revision model.Revision
	Snapshot model.UserAudit
}

// ProductRevision joins one product snapshot to its revision.
type ProductRevision struct {
	Revision model.Revision
	Snapshot model.ProductAudit
}

type RevisionRepository interface {
	UserHistory(id string) ([]UserRevision, error)
	ProductHistory(id int64) ([]ProductRevision, error)
}

type revisionRepo struct {
	db *gorm.DB
}

func NewRevisionRepo(db *gorm.DB) RevisionRepository {
	return &revisionRepo{db: db}
}

func (r *revisionRepo) UserHistory(id string) ([]UserRevision, error) {
	var snapshots []model.UserAudit
	if err := r.db.Where("id = ?", id).Order("rev").Find(&snapshots).Error; err != nil {
		return nil, err
	}

	history := make([]UserRevision, 0, len(snapshots))
	for _, snapshot := range snapshots {
		var rev model.Revision
		if err := r.db.First(&rev, snapshot.RevisionID).Error; err != nil {
			return nil, err
		}
		history = append(history, UserRevision{Revision: rev, Snapshot: snapshot})
	}
	return history, nil
}

func (r *revisionRepo) ProductHistory(id int64) ([]ProductRevision, error) {
	var snapshots []model.ProductAudit
	if err := r.db.Where("id = ?", id).Order("rev").Find(&snapshots).Error; err != nil {
		return nil, err
	}

	history := make([]ProductRevision, 0, len(snapshots))
	for _, snapshot := range snapshots {
		var rev model.Revision
		if err := r.db.First(&rev, snapshot.RevisionID).Error; err != nil {
			return nil, err
		}
		history = append(history, ProductRevision{Revision: rev, Snapshot: snapshot})
	}
	return history, nil
}

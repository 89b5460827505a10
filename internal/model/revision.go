package model

import "time"

// Revision type codes, one per kind of committed mutation.
const (
	RevTypeAdd int8 = iota
	RevTypeMod
	RevTypeDel
)

// Revision is one append-only row of the audit trail. Every committed
// mutation of an audited entity appends exactly one revision together
// with a snapshot of the entity at that revision; revision numbers are
// assigned by the storage layer at commit time, so they are strictly
// increasing per entity. Rows are never updated or deleted.
type Revision struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	IP         string    `gorm:"column:ip;type:varchar(100)" json:"ip"`
	User       string    `gorm:"column:usuario;type:varchar(255)" json:"user"`
	OriginAlt  string    `gorm:"column:origin_alt;type:varchar(255)" json:"origin"`
	UpdateDate time.Time `gorm:"column:update_date" json:"updateDate"`
}

func (Revision) TableName() string {
	return "history_information"
}

// Auditable is the capability implemented by every audited entity.
// AuditSnapshot returns the row persisted alongside the revision the
// change belongs to; the recorder stays generic over this interface.
type Auditable interface {
	EntityName() string
	AuditSnapshot(revisionID int64, revType int8) any
}

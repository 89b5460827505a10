package audit

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-catalog-api/internal/model"
)

// Recorder appends one revision per committed entity mutation, inside
// the same transaction as the entity row itself. Metadata resolution
// never aborts the mutation: whatever cannot be recovered from the
// request context is recorded as a sentinel and the condition is only
// logged.
type Recorder struct {
	log *zap.Logger
}

func NewRecorder(log *zap.Logger) *Recorder {
	return &Recorder{log: log}
}

// Append writes the revision row plus the entity snapshot inside tx.
// Storage errors are returned so the surrounding transaction rolls back
// entity and audit rows together; the revision timestamp is the moment
// of recording, not the moment the mutation was requested.
func (r *Recorder) Append(ctx context.Context, tx *gorm.DB, entity model.Auditable, revType int8) (*model.Revision, error) {
	rev := model.Revision{
		IP:        UnknownIP,
		User:      UnknownUser,
		OriginAlt: UnknownOrigin,
	}
	r.resolve(ctx, &rev)
	rev.UpdateDate = time.Now()

	if err := tx.Create(&rev).Error; err != nil {
		return nil, err
	}
	if err := tx.Create(entity.AuditSnapshot(rev.ID, revType)).Error; err != nil {
		return nil, err
	}
	r.log.Info("audit revision recorded",
		zap.Int64("revision", rev.ID),
		zap.String("entity", entity.EntityName()),
		zap.Int8("revtype", revType),
		zap.String("actor", rev.User),
		zap.String("ip", rev.IP))
	return &rev, nil
}

// resolve fills rev from the request context, keeping the sentinels for
// anything it cannot recover.
func (r *Recorder) resolve(ctx context.Context, rev *model.Revision) {
	defer func() {
		if p := recover(); p != nil {
			r.log.Error("audit metadata resolution failed", zap.Any("cause", p))
		}
	}()

	rc, ok := FromContext(ctx)
	if !ok {
		r.log.Debug("audit outside request scope, keeping sentinels")
		return
	}
	if rc.IP != "" {
		rev.IP = rc.IP
	}
	if rc.Actor != "" {
		rev.User = rc.Actor
	}
	if rc.Origin != "" {
		rev.OriginAlt = rc.Origin
	}
}

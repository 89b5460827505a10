package audit

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"go-catalog-api/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.UserAudit{}, &model.Product{}, &model.ProductAudit{}, &model.Revision{}))
	return db
}

func testUser(id string) *model.User {
	return &model.User{
		ID:         id,
		Name:       "Teste",
		Email:      id + "@email.com",
		Phone:      "11" + id,
		Cpf:        "99" + id,
		CreateDate: time.Now(),
	}
}

func TestAppendRecordsRequestMetadata(t *testing.T) {
	db := newTestDB(t)
	recorder := NewRecorder(zap.NewNop())

	ctx := WithRequestContext(context.Background(), RequestContext{
		Actor:  "caio",
		IP:     "1.2.3.4",
		Origin: "mobile",
	})

	user := testUser("1")
	require.NoError(t, db.Create(user).Error)

	before := time.Now()
	rev, err := recorder.Append(ctx, db, user, model.RevTypeAdd)
	require.NoError(t, err)

	assert.Equal(t, "caio", rev.User)
	assert.Equal(t, "1.2.3.4", rev.IP)
	assert.Equal(t, "mobile", rev.OriginAlt)
	assert.False(t, rev.UpdateDate.Before(before), "timestamp is the moment of recording")

	var snapshot model.UserAudit
	require.NoError(t, db.First(&snapshot, "id = ?", "1").Error)
	assert.Equal(t, rev.ID, snapshot.RevisionID)
	assert.Equal(t, model.RevTypeAdd, snapshot.RevType)
	assert.Equal(t, "Teste", snapshot.Name)
}

func TestAppendOutsideRequestScopeKeepsSentinels(t *testing.T) {
	db := newTestDB(t)
	recorder := NewRecorder(zap.NewNop())

	user := testUser("2")
	require.NoError(t, db.Create(user).Error)

	rev, err := recorder.Append(context.Background(), db, user, model.RevTypeAdd)
	require.NoError(t, err)

	assert.Equal(t, UnknownUser, rev.User)
	assert.Equal(t, UnknownIP, rev.IP)
	assert.Equal(t, UnknownOrigin, rev.OriginAlt)
}

func TestAppendRevisionNumbersStrictlyIncrease(t *testing.T) {
	db := newTestDB(t)
	recorder := NewRecorder(zap.NewNop())

	user := testUser("3")
	require.NoError(t, db.Create(user).Error)

	var last int64
	for i := 0; i < 5; i++ {
		revType := model.RevTypeMod
		if i == 0 {
			revType = model.RevTypeAdd
		}
		rev, err := recorder.Append(context.Background(), db, user, revType)
		require.NoError(t, err)
		assert.Greater(t, rev.ID, last)
		last = rev.ID
	}
}

package service

import (
	"Fitboard/internal/model"
	"Fitboard/internal/pkg/database"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB 每个测试用独立的内存库，cache=shared 保证连接池内共享同一实例
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	user := &model.User{Email: email, Password: "hash", Name: "tester"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestActivity(t *testing.T, db *gorm.DB, userID uint64, activityType string, startedAt time.Time) *model.Activity {
	t.Helper()
	activity := &model.Activity{UserID: userID, Type: activityType, StartedAt: startedAt}
	require.NoError(t, db.Create(activity).Error)
	return activity
}

func countMetrics(t *testing.T, db *gorm.DB, activityID uint64) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&model.Metric{}).Where("activity_id = ?", activityID).Count(&count).Error)
	return count
}

func strPtr(s string) *string {
	return &s
}

func floatPtr(f float64) *float64 {
	return &f
}

func mustParse(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

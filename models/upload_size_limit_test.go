package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// keep every query on the one in-memory connection
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&UploadSizeLimit{}))
	return db
}

func TestGetOrCreateSizeLimitCreatesDefault(t *testing.T) {
	db := testDB(t)

	limit, err := GetOrCreateSizeLimit(db, SumSizeLimitSlug)
	require.NoError(t, err)
	assert.NotZero(t, limit.ID)
	assert.Equal(t, SumSizeLimitSlug, limit.Slug)
	assert.Equal(t, DefaultMaxSize, limit.MaxSize)

	var count int64
	require.NoError(t, db.Model(&UploadSizeLimit{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetOrCreateSizeLimitReturnsExistingRow(t *testing.T) {
	db := testDB(t)

	first, err := GetOrCreateSizeLimit(db, SumSizeLimitSlug)
	require.NoError(t, err)

	second, err := GetOrCreateSizeLimit(db, SumSizeLimitSlug)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&UploadSizeLimit{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetOrCreateSizeLimitKeepsCustomMaxSize(t *testing.T) {
	db := testDB(t)
	require.NoError(t, db.Create(&UploadSizeLimit{Slug: "document_upload_size", MaxSize: 42}).Error)

	limit, err := GetOrCreateSizeLimit(db, "document_upload_size")
	require.NoError(t, err)
	assert.Equal(t, int64(42), limit.MaxSize)
}

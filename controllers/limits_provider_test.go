package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mapstacks/geoupload/models"
	"github.com/mapstacks/geoupload/utils"
)

func limitTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.UploadSizeLimit{}))
	return db
}

func TestMaxTotalUploadSizeCreatesMissingRecord(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	utils.InvalidateByPrefix(sizeLimitCachePrefix)
	db := limitTestDB(t)
	source := &sizeLimitSource{db: db}

	size, err := source.MaxTotalUploadSize()
	require.NoError(t, err)
	assert.Equal(t, models.DefaultMaxSize, size)

	var limit models.UploadSizeLimit
	require.NoError(t, db.Where("slug = ?", models.SumSizeLimitSlug).First(&limit).Error)
	assert.Equal(t, models.DefaultMaxSize, limit.MaxSize)
}

func TestMaxTotalUploadSizeUsesStoredLimit(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	utils.InvalidateByPrefix(sizeLimitCachePrefix)
	db := limitTestDB(t)
	require.NoError(t, db.Create(&models.UploadSizeLimit{
		Slug:    models.SumSizeLimitSlug,
		MaxSize: 2048,
	}).Error)

	source := &sizeLimitSource{db: db}

	size, err := source.MaxTotalUploadSize()
	require.NoError(t, err)
	assert.Equal(t, int64(2048), size)
}

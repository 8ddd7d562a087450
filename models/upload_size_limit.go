package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

const (
	// SumSizeLimitSlug identifies the limit applied to the summed size of all files in one upload.
	SumSizeLimitSlug = "total_upload_size_sum"
	// DefaultMaxSize is the maximum allowed total upload size created when no limit record exists yet.
	DefaultMaxSize int64 = 104857600 // 100 MB
)

// UploadSizeLimit is a slug-keyed size limit record. The slug acts as the
// identity, so each named limit exists at most once.
type UploadSizeLimit struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Slug        string    `gorm:"size:64;uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"size:255" json:"description"`
	MaxSize     int64     `gorm:"not null" json:"max_size"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GetOrCreateSizeLimit fetches the limit for slug, creating it with the
// default maximum on first access.
func GetOrCreateSizeLimit(db *gorm.DB, slug string) (*UploadSizeLimit, error) {
	var limit UploadSizeLimit
	err := db.Where("slug = ?", slug).First(&limit).Error
	if err == nil {
		return &limit, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	limit = UploadSizeLimit{
		Slug:        slug,
		Description: "Total upload size sum",
		MaxSize:     DefaultMaxSize,
	}
	if err := db.Create(&limit).Error; err != nil {
		return nil, err
	}
	return &limit, nil
}

package models

import "time"

// UploadSession records an accepted dataset upload so the ingestion pipeline
// can pick it up later. ValidExtensions holds the classifier result as a
// comma-separated list.
type UploadSession struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	UserID          uint      `gorm:"index;not null" json:"user_id"`
	DatasetTitle    string    `gorm:"size:255" json:"dataset_title"`
	Abstract        string    `gorm:"size:2048" json:"abstract"`
	BaseFileName    string    `gorm:"size:1024;not null" json:"base_file_name"`
	Charset         string    `gorm:"size:32" json:"charset"`
	ValidExtensions string    `gorm:"size:255" json:"valid_extensions"`
	TotalSize       int64     `json:"total_size"`
	Mosaic          bool      `json:"mosaic"`
	TimeEnabled     bool      `json:"time_enabled"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

package models

import "time"

// SalesTerms is one version of the reservation terms and conditions.
// Exactly one version is active at a time; activating a version archives
// the rest (handled in the repository under one transaction).
type SalesTerms struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Content       string `gorm:"type:text;not null" json:"content"`
	VersionNumber int    `gorm:"uniqueIndex;not null" json:"version_number"`
	IsActive      bool   `gorm:"default:false" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
}

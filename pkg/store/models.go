package store

import (
	"time"

	"gorm.io/datatypes"
)

// GORM models used for persistence.
type UserModel struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	Name         string
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time
}

type BookModel struct {
	ID          uint   `gorm:"primaryKey"`
	OwnerID     uint   `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Author      string
	Description string `gorm:"type:text"`
	DocumentRef string
	Status      string    `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null;index"`
	UpdatedAt   time.Time `gorm:"not null"`
}

type SummaryModel struct {
	ID          uint   `gorm:"primaryKey"`
	BookID      uint   `gorm:"uniqueIndex;not null"`
	CreatedByID uint   `gorm:"not null;index"`
	Content     string `gorm:"type:text;not null"`
	Highlights  string
	Diagnostics datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time      `gorm:"not null;index"`
	UpdatedAt   time.Time      `gorm:"not null"`
}

type NoteModel struct {
	ID        uint      `gorm:"primaryKey"`
	SummaryID uint      `gorm:"not null;index"`
	UserID    uint      `gorm:"not null;index"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

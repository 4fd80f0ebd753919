package domain

import "time"

type BookStatus string

const (
	StatusUploaded   BookStatus = "uploaded"
	StatusProcessing BookStatus = "processing"
	StatusCompleted  BookStatus = "completed"
	StatusFailed     BookStatus = "failed"
)

type User struct {
	ID           uint      `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Book struct {
	ID          uint       `json:"id"`
	OwnerID     uint       `json:"ownerId"`
	Title       string     `json:"title"`
	Author      string     `json:"author,omitempty"`
	Description string     `json:"description,omitempty"`
	DocumentRef string     `json:"-"`
	Status      BookStatus `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// HasDocument reports whether an uploaded file is attached to the book.
func (b Book) HasDocument() bool {
	return b.DocumentRef != ""
}

type Summary struct {
	ID          uint               `json:"id"`
	BookID      uint               `json:"bookId"`
	CreatedByID uint               `json:"createdById"`
	Content     string             `json:"content"`
	Highlights  string             `json:"highlights"`
	Diagnostics SummaryDiagnostics `json:"diagnostics"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// SummaryDiagnostics records how a summary was produced. A degraded
// summary is distinguished from a normal one only here and by the
// book's failed status.
type SummaryDiagnostics struct {
	Provider string `json:"provider,omitempty"`
	Degraded bool   `json:"degraded,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

type Note struct {
	ID        uint      `json:"id"`
	SummaryID uint      `json:"summaryId"`
	UserID    uint      `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

package store

import "github.com/Rishiwant1729/capstone-2-Backend/pkg/domain"

// Store defines persistence operations for users, books, summaries,
// and notes. Book, summary, and note lookups take the caller's user ID
// and scope the query itself, so an entity that exists but belongs to
// someone else is indistinguishable from one that does not exist.
type Store interface {
	// users
	CreateUser(u *domain.User) error
	GetUserByEmail(email string) (domain.User, bool, error)
	GetUserByID(id uint) (domain.User, bool, error)
	ListUsers() ([]domain.User, error)

	// books
	CreateBook(b *domain.Book) error
	GetBook(id, ownerID uint) (domain.Book, bool, error)
	ListBooks(ownerID uint) ([]domain.Book, error)
	SetBookStatus(id uint, status domain.BookStatus) error
	DeleteBook(id uint) error

	// summaries
	CreateSummary(s *domain.Summary) error
	GetSummaryByBook(bookID uint) (domain.Summary, bool, error)
	GetSummary(id, userID uint) (domain.Summary, bool, error)
	ListSummaries(createdByID uint) ([]domain.Summary, error)
	UpdateSummary(id uint, content, highlights string, diagnostics domain.SummaryDiagnostics) error
	DeleteSummary(id uint) error

	// notes
	CreateNote(n *domain.Note) error
	GetNote(id, userID uint) (domain.Note, bool, error)
	ListNotesBySummary(summaryID uint) ([]domain.Note, error)
	UpdateNote(id uint, content string) error
	DeleteNote(id uint) error

	// Transact runs fn against a store whose writes commit atomically.
	Transact(fn func(Store) error) error
}

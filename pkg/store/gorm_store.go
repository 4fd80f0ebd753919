package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Rishiwant1729/capstone-2-Backend/pkg/domain"
)

// GormStore implements Store using GORM + Postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the DB and runs auto-migrations.
func NewGormStore(dsn string) (*GormStore, error) {
	gormLog := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(&UserModel{}, &BookModel{}, &SummaryModel{}, &NoteModel{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

// Transact runs fn inside a single database transaction.
func (s *GormStore) Transact(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

// CreateUser registers a new user and fills in generated fields.
func (s *GormStore) CreateUser(u *domain.User) error {
	model := userToModel(*u)
	if err := s.db.Create(&model).Error; err != nil {
		return err
	}
	*u = userFromModel(model)
	return nil
}

// GetUserByEmail looks up a user by email.
func (s *GormStore) GetUserByEmail(email string) (domain.User, bool, error) {
	var model UserModel
	if err := s.db.Where("email = ?", email).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, err
	}
	return userFromModel(model), true, nil
}

// GetUserByID returns a user by ID.
func (s *GormStore) GetUserByID(id uint) (domain.User, bool, error) {
	var model UserModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, err
	}
	return userFromModel(model), true, nil
}

// ListUsers returns all users ordered by created_at.
func (s *GormStore) ListUsers() ([]domain.User, error) {
	var models []UserModel
	if err := s.db.Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.User, 0, len(models))
	for _, m := range models {
		res = append(res, userFromModel(m))
	}
	return res, nil
}

// CreateBook persists a new book and fills in generated fields.
func (s *GormStore) CreateBook(b *domain.Book) error {
	model := bookToModel(*b)
	if err := s.db.Create(&model).Error; err != nil {
		return err
	}
	*b = bookFromModel(model)
	return nil
}

// GetBook retrieves a book scoped to its owner.
func (s *GormStore) GetBook(id, ownerID uint) (domain.Book, bool, error) {
	var model BookModel
	if err := s.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Book{}, false, nil
		}
		return domain.Book{}, false, err
	}
	return bookFromModel(model), true, nil
}

// ListBooks returns the owner's books, newest first.
func (s *GormStore) ListBooks(ownerID uint) ([]domain.Book, error) {
	var models []BookModel
	if err := s.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Book, 0, len(models))
	for _, m := range models {
		res = append(res, bookFromModel(m))
	}
	return res, nil
}

// SetBookStatus updates a book's status.
func (s *GormStore) SetBookStatus(id uint, status domain.BookStatus) error {
	return s.db.Model(&BookModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     string(status),
			"updated_at": time.Now().UTC(),
		}).Error
}

// DeleteBook removes a book, its summary, and that summary's notes.
func (s *GormStore) DeleteBook(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("summary_id IN (?)",
			tx.Model(&SummaryModel{}).Select("id").Where("book_id = ?", id),
		).Delete(&NoteModel{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&SummaryModel{}, "book_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&BookModel{}, "id = ?", id).Error
	})
}

// CreateSummary persists a new summary and fills in generated fields.
func (s *GormStore) CreateSummary(sum *domain.Summary) error {
	model := summaryToModel(*sum)
	if err := s.db.Create(&model).Error; err != nil {
		return err
	}
	*sum = summaryFromModel(model)
	return nil
}

// GetSummaryByBook returns the summary attached to a book, if any.
func (s *GormStore) GetSummaryByBook(bookID uint) (domain.Summary, bool, error) {
	var model SummaryModel
	if err := s.db.Where("book_id = ?", bookID).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Summary{}, false, nil
		}
		return domain.Summary{}, false, err
	}
	return summaryFromModel(model), true, nil
}

// GetSummary retrieves a summary scoped through book ownership.
func (s *GormStore) GetSummary(id, userID uint) (domain.Summary, bool, error) {
	var model SummaryModel
	err := s.db.
		Joins("JOIN book_models ON book_models.id = summary_models.book_id").
		Where("summary_models.id = ? AND book_models.owner_id = ?", id, userID).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Summary{}, false, nil
		}
		return domain.Summary{}, false, err
	}
	return summaryFromModel(model), true, nil
}

// ListSummaries returns summaries created by the user, newest first.
func (s *GormStore) ListSummaries(createdByID uint) ([]domain.Summary, error) {
	var models []SummaryModel
	if err := s.db.Where("created_by_id = ?", createdByID).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Summary, 0, len(models))
	for _, m := range models {
		res = append(res, summaryFromModel(m))
	}
	return res, nil
}

// UpdateSummary replaces content, highlights, and diagnostics.
func (s *GormStore) UpdateSummary(id uint, content, highlights string, diagnostics domain.SummaryDiagnostics) error {
	raw, _ := json.Marshal(diagnostics)
	return s.db.Model(&SummaryModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"content":     content,
			"highlights":  highlights,
			"diagnostics": datatypes.JSON(raw),
			"updated_at":  time.Now().UTC(),
		}).Error
}

// DeleteSummary removes a summary and its notes.
func (s *GormStore) DeleteSummary(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&NoteModel{}, "summary_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&SummaryModel{}, "id = ?", id).Error
	})
}

// CreateNote persists a new note and fills in generated fields.
func (s *GormStore) CreateNote(n *domain.Note) error {
	model := noteToModel(*n)
	if err := s.db.Create(&model).Error; err != nil {
		return err
	}
	*n = noteFromModel(model)
	return nil
}

// GetNote retrieves a note scoped to its author.
func (s *GormStore) GetNote(id, userID uint) (domain.Note, bool, error) {
	var model NoteModel
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Note{}, false, nil
		}
		return domain.Note{}, false, err
	}
	return noteFromModel(model), true, nil
}

// ListNotesBySummary returns notes for a summary, newest first.
func (s *GormStore) ListNotesBySummary(summaryID uint) ([]domain.Note, error) {
	var models []NoteModel
	if err := s.db.Where("summary_id = ?", summaryID).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Note, 0, len(models))
	for _, m := range models {
		res = append(res, noteFromModel(m))
	}
	return res, nil
}

// UpdateNote replaces a note's content.
func (s *GormStore) UpdateNote(id uint, content string) error {
	return s.db.Model(&NoteModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"content":    content,
			"updated_at": time.Now().UTC(),
		}).Error
}

// DeleteNote removes a note.
func (s *GormStore) DeleteNote(id uint) error {
	return s.db.Delete(&NoteModel{}, "id = ?", id).Error
}

func userToModel(u domain.User) UserModel {
	return UserModel{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func userFromModel(m UserModel) domain.User {
	return domain.User{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func bookToModel(b domain.Book) BookModel {
	return BookModel{
		ID:          b.ID,
		OwnerID:     b.OwnerID,
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		DocumentRef: b.DocumentRef,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func bookFromModel(m BookModel) domain.Book {
	return domain.Book{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		Title:       m.Title,
		Author:      m.Author,
		Description: m.Description,
		DocumentRef: m.DocumentRef,
		Status:      domain.BookStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func summaryToModel(sum domain.Summary) SummaryModel {
	raw, _ := json.Marshal(sum.Diagnostics)
	return SummaryModel{
		ID:          sum.ID,
		BookID:      sum.BookID,
		CreatedByID: sum.CreatedByID,
		Content:     sum.Content,
		Highlights:  sum.Highlights,
		Diagnostics: datatypes.JSON(raw),
		CreatedAt:   sum.CreatedAt,
		UpdatedAt:   sum.UpdatedAt,
	}
}

func summaryFromModel(m SummaryModel) domain.Summary {
	var diagnostics domain.SummaryDiagnostics
	if len(m.Diagnostics) > 0 {
		_ = json.Unmarshal(m.Diagnostics, &diagnostics)
	}
	return domain.Summary{
		ID:          m.ID,
		BookID:      m.BookID,
		CreatedByID: m.CreatedByID,
		Content:     m.Content,
		Highlights:  m.Highlights,
		Diagnostics: diagnostics,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func noteToModel(n domain.Note) NoteModel {
	return NoteModel{
		ID:        n.ID,
		SummaryID: n.SummaryID,
		UserID:    n.UserID,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func noteFromModel(m NoteModel) domain.Note {
	return domain.Note{
		ID:        m.ID,
		SummaryID: m.SummaryID,
		UserID:    m.UserID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

package store

import (
	"sort"
	"sync"
	"time"

	"github.com/Rishiwant1729/capstone-2-Backend/pkg/domain"
)

// MemoryStore keeps everything in-process. It backs tests and local
// development without Postgres. Transact is not atomic here; callers
// get the same semantics only on the database-backed store.
type MemoryStore struct {
	mu        sync.RWMutex
	users     map[uint]domain.User
	email     map[string]uint
	books     map[uint]domain.Book
	summaries map[uint]domain.Summary
	notes     map[uint]domain.Note
	nextID    uint
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:     make(map[uint]domain.User),
		email:     make(map[string]uint),
		books:     make(map[uint]domain.Book),
		summaries: make(map[uint]domain.Summary),
		notes:     make(map[uint]domain.Note),
	}
}

// Transact runs fn against the store itself. In-memory writes are not
// rolled back on error.
func (m *MemoryStore) Transact(fn func(Store) error) error {
	return fn(m)
}

func (m *MemoryStore) allocID() uint {
	m.nextID++
	return m.nextID
}

func stampNew(createdAt, updatedAt *time.Time) {
	now := time.Now().UTC()
	if createdAt.IsZero() {
		*createdAt = now
	}
	if updatedAt.IsZero() {
		*updatedAt = now
	}
}

// CreateUser registers a user.
func (m *MemoryStore) CreateUser(u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = m.allocID()
	stampNew(&u.CreatedAt, &u.UpdatedAt)
	m.users[u.ID] = *u
	m.email[u.Email] = u.ID
	return nil
}

// GetUserByEmail looks up a user by email.
func (m *MemoryStore) GetUserByEmail(email string) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.email[email]
	if !ok {
		return domain.User{}, false, nil
	}
	u, ok := m.users[id]
	return u, ok, nil
}

// GetUserByID returns a user by ID.
func (m *MemoryStore) GetUserByID(id uint) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	return u, ok, nil
}

// ListUsers returns all users ordered by creation.
func (m *MemoryStore) ListUsers() ([]domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		res = append(res, u)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

// CreateBook persists a book.
func (m *MemoryStore) CreateBook(b *domain.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b.ID = m.allocID()
	stampNew(&b.CreatedAt, &b.UpdatedAt)
	m.books[b.ID] = *b
	return nil
}

// GetBook retrieves a book scoped to its owner.
func (m *MemoryStore) GetBook(id, ownerID uint) (domain.Book, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.books[id]
	if !ok || b.OwnerID != ownerID {
		return domain.Book{}, false, nil
	}
	return b, true, nil
}

// ListBooks returns the owner's books, newest first.
func (m *MemoryStore) ListBooks(ownerID uint) ([]domain.Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Book, 0)
	for _, b := range m.books {
		if b.OwnerID == ownerID {
			res = append(res, b)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID > res[j].ID })
	return res, nil
}

// SetBookStatus updates status.
func (m *MemoryStore) SetBookStatus(id uint, status domain.BookStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.books[id]
	if !ok {
		return nil
	}
	b.Status = status
	b.UpdatedAt = time.Now().UTC()
	m.books[id] = b
	return nil
}

// DeleteBook removes a book, its summary, and the summary's notes.
func (m *MemoryStore) DeleteBook(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for sid, s := range m.summaries {
		if s.BookID != id {
			continue
		}
		for nid, n := range m.notes {
			if n.SummaryID == sid {
				delete(m.notes, nid)
			}
		}
		delete(m.summaries, sid)
	}
	delete(m.books, id)
	return nil
}

// CreateSummary persists a summary.
func (m *MemoryStore) CreateSummary(s *domain.Summary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = m.allocID()
	stampNew(&s.CreatedAt, &s.UpdatedAt)
	m.summaries[s.ID] = *s
	return nil
}

// GetSummaryByBook returns the summary attached to a book, if any.
func (m *MemoryStore) GetSummaryByBook(bookID uint) (domain.Summary, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.summaries {
		if s.BookID == bookID {
			return s, true, nil
		}
	}
	return domain.Summary{}, false, nil
}

// GetSummary retrieves a summary scoped through book ownership.
func (m *MemoryStore) GetSummary(id, userID uint) (domain.Summary, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.summaries[id]
	if !ok {
		return domain.Summary{}, false, nil
	}
	b, ok := m.books[s.BookID]
	if !ok || b.OwnerID != userID {
		return domain.Summary{}, false, nil
	}
	return s, true, nil
}

// ListSummaries returns summaries created by the user, newest first.
func (m *MemoryStore) ListSummaries(createdByID uint) ([]domain.Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Summary, 0)
	for _, s := range m.summaries {
		if s.CreatedByID == createdByID {
			res = append(res, s)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID > res[j].ID })
	return res, nil
}

// UpdateSummary replaces content, highlights, and diagnostics.
func (m *MemoryStore) UpdateSummary(id uint, content, highlights string, diagnostics domain.SummaryDiagnostics) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.summaries[id]
	if !ok {
		return nil
	}
	s.Content = content
	s.Highlights = highlights
	s.Diagnostics = diagnostics
	s.UpdatedAt = time.Now().UTC()
	m.summaries[id] = s
	return nil
}

// DeleteSummary removes a summary and its notes.
func (m *MemoryStore) DeleteSummary(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for nid, n := range m.notes {
		if n.SummaryID == id {
			delete(m.notes, nid)
		}
	}
	delete(m.summaries, id)
	return nil
}

// CreateNote persists a note.
func (m *MemoryStore) CreateNote(n *domain.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n.ID = m.allocID()
	stampNew(&n.CreatedAt, &n.UpdatedAt)
	m.notes[n.ID] = *n
	return nil
}

// GetNote retrieves a note scoped to its author.
func (m *MemoryStore) GetNote(id, userID uint) (domain.Note, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n, ok := m.notes[id]
	if !ok || n.UserID != userID {
		return domain.Note{}, false, nil
	}
	return n, true, nil
}

// ListNotesBySummary returns notes for a summary, newest first.
func (m *MemoryStore) ListNotesBySummary(summaryID uint) ([]domain.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Note, 0)
	for _, n := range m.notes {
		if n.SummaryID == summaryID {
			res = append(res, n)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID > res[j].ID })
	return res, nil
}

// UpdateNote replaces a note's content.
func (m *MemoryStore) UpdateNote(id uint, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notes[id]
	if !ok {
		return nil
	}
	n.Content = content
	n.UpdatedAt = time.Now().UTC()
	m.notes[id] = n
	return nil
}

// DeleteNote removes a note.
func (m *MemoryStore) DeleteNote(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.notes, id)
	return nil
}

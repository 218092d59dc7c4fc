package store

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/elearn-portal/internal/models"
)

// Memory is an in-process store. It enforces the same unique constraints as
// the Mongo indexes: one user per email and one enrollment per owner.
type Memory struct {
	mu          sync.RWMutex
	users       []models.User
	logins      []models.LoginRecord
	messages    []models.ContactMessage
	enrollments []models.Enrollment
	sessions    map[string]models.Session
}

func NewMemory() *Memory {
	return &Memory{sessions: make(map[string]models.Session)}
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) Close(context.Context) error { return nil }

func (m *Memory) Users() *MemoryUsers             { return &MemoryUsers{m} }
func (m *Memory) Logins() *MemoryLogins           { return &MemoryLogins{m} }
func (m *Memory) Messages() *MemoryMessages       { return &MemoryMessages{m} }
func (m *Memory) Enrollments() *MemoryEnrollments { return &MemoryEnrollments{m} }
func (m *Memory) Sessions() *MemorySessions       { return &MemorySessions{m} }

type MemoryUsers struct{ m *Memory }

func (r *MemoryUsers) Create(_ context.Context, user *models.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.Email == user.Email {
			return ErrDuplicate
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.m.users = append(r.m.users, *user)
	return nil
}

func (r *MemoryUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, u := range r.m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, u := range r.m.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

// Count is used by tests to assert nothing extra was written.
func (r *MemoryUsers) Count() int {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	return len(r.m.users)
}

type MemoryLogins struct{ m *Memory }

func (r *MemoryLogins) Append(_ context.Context, rec *models.LoginRecord) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if rec.ID.IsZero() {
		rec.ID = primitive.NewObjectID()
	}
	r.m.logins = append(r.m.logins, *rec)
	return nil
}

func (r *MemoryLogins) All() []models.LoginRecord {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	return append([]models.LoginRecord(nil), r.m.logins...)
}

type MemoryMessages struct{ m *Memory }

func (r *MemoryMessages) Create(_ context.Context, msg *models.ContactMessage) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
	}
	r.m.messages = append(r.m.messages, *msg)
	return nil
}

func (r *MemoryMessages) All() []models.ContactMessage {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	return append([]models.ContactMessage(nil), r.m.messages...)
}

type MemoryEnrollments struct{ m *Memory }

func (r *MemoryEnrollments) Create(_ context.Context, e *models.Enrollment) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.enrollments {
		if existing.OwnerID == e.OwnerID {
			return ErrDuplicate
		}
	}
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	r.m.enrollments = append(r.m.enrollments, cloneEnrollment(*e))
	return nil
}

func (r *MemoryEnrollments) FindAll(context.Context) ([]models.Enrollment, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	out := make([]models.Enrollment, 0, len(r.m.enrollments))
	for _, e := range r.m.enrollments {
		out = append(out, cloneEnrollment(e))
	}
	return out, nil
}

func (r *MemoryEnrollments) FindByID(_ context.Context, id string) (*models.Enrollment, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, e := range r.m.enrollments {
		if e.ID == oid {
			out := cloneEnrollment(e)
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryEnrollments) FindByOwner(_ context.Context, ownerID primitive.ObjectID) (*models.Enrollment, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, e := range r.m.enrollments {
		if e.OwnerID == ownerID {
			out := cloneEnrollment(e)
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryEnrollments) Update(_ context.Context, e *models.Enrollment) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i := range r.m.enrollments {
		cur := &r.m.enrollments[i]
		if cur.ID == e.ID {
			cur.StudentName = e.StudentName
			cur.Program = e.Program
			cur.Subjects = append([]string(nil), e.Subjects...)
			cur.TimeSlot = e.TimeSlot
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryEnrollments) Delete(_ context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i, e := range r.m.enrollments {
		if e.ID == oid {
			r.m.enrollments = append(r.m.enrollments[:i], r.m.enrollments[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func cloneEnrollment(e models.Enrollment) models.Enrollment {
	e.Subjects = append([]string(nil), e.Subjects...)
	return e
}

type MemorySessions struct{ m *Memory }

func (r *MemorySessions) Create(_ context.Context, s *models.Session) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.sessions[s.ID]; ok {
		return ErrDuplicate
	}
	r.m.sessions[s.ID] = *s
	return nil
}

func (r *MemorySessions) Find(_ context.Context, id string) (*models.Session, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	s, ok := r.m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (r *MemorySessions) Delete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.sessions, id)
	return nil
}

package httpapi_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	authentities "notekeeper/internal/auth/domain/entities"
	authservices "notekeeper/internal/auth/domain/services"
	notesentities "notekeeper/internal/notes/domain/entities"
)

// Репозитории в памяти для прогона сервера через app.Test
// без реальной базы данных.

type memUserRepository struct {
	mu    sync.RWMutex
	users map[string]*authentities.User
}

func newMemUserRepository() *memUserRepository {
	return &memUserRepository{users: make(map[string]*authentities.User)}
}

func (r *memUserRepository) Create(_ context.Context, user *authentities.User) (*authentities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, authservices.ErrEmailAlreadyExists
		}
	}

	now := time.Now().UTC()
	created := &authentities.User{
		ID:           uuid.New().String(),
		Email:        user.Email,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.users[created.ID] = created

	copied := *created
	return &copied, nil
}

func (r *memUserRepository) FindByID(_ context.Context, id string) (*authentities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, authentities.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *memUserRepository) FindByEmail(_ context.Context, email string) (*authentities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, authentities.ErrUserNotFound
}

type memNoteRepository struct {
	mu    sync.RWMutex
	notes map[string]*notesentities.Note
}

func newMemNoteRepository() *memNoteRepository {
	return &memNoteRepository{notes: make(map[string]*notesentities.Note)}
}

func (r *memNoteRepository) Create(_ context.Context, note *notesentities.Note) (*notesentities.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := &notesentities.Note{
		ID:        uuid.New().String(),
		UserID:    note.UserID,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.notes[created.ID] = created

	copied := *created
	return &copied, nil
}

func (r *memNoteRepository) GetByID(_ context.Context, noteID string) (*notesentities.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	note, ok := r.notes[noteID]
	if !ok {
		return nil, notesentities.ErrNoteNotFound
	}
	copied := *note
	return &copied, nil
}

func (r *memNoteRepository) ListByUserID(_ context.Context, userID string) ([]*notesentities.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*notesentities.Note, 0)
	for _, note := range r.notes {
		if note.UserID == userID {
			copied := *note
			result = append(result, &copied)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})

	return result, nil
}

func (r *memNoteRepository) Update(_ context.Context, note *notesentities.Note) (*notesentities.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.notes[note.ID]
	if !ok {
		return nil, notesentities.ErrNoteNotFound
	}

	stored.Title = note.Title
	stored.Content = note.Content
	stored.UpdatedAt = time.Now().UTC()

	copied := *stored
	return &copied, nil
}

func (r *memNoteRepository) Delete(_ context.Context, noteID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notes[noteID]; !ok {
		return notesentities.ErrNoteNotFound
	}
	delete(r.notes, noteID)
	return nil
}

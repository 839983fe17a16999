// Package app implements application business logic for the notes service.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"notekeeper/internal/notes/domain/entities"
	"notekeeper/internal/notes/ports/repositories"
	"notekeeper/pkg/logger"
)

// Ошибки уровня бизнес-логики.
var (
	ErrNoteAccessDenied = errors.New("note belongs to another user")
	ErrInvalidParams    = errors.New("invalid parameters")
)

const (
	msgCreatingNote = "creating note"
	msgListingNotes = "listing notes"
	msgUpdatingNote = "updating note"
	msgDeletingNote = "deleting note"

	msgNoteNotFound     = "note not found"
	msgOwnershipDenied  = "caller is not the owner of the note"
	msgErrFetchingNote  = "failed to fetch note"
	msgErrSavingNote    = "failed to save note"
	msgErrDeletingNote  = "failed to delete note"
	msgErrListingNotes  = "failed to list notes"
	msgErrCreatingNote  = "failed to create note"
	msgEmptyNoteFields  = "empty title or content"
	msgEmptyNoteID      = "empty note id"
	msgNoteCreated      = "note created"
	msgNoteUpdated      = "note updated"
	msgNoteDeleted      = "note deleted"
)

// NoteUseCase представляет собой бизнес-логику работы с заметками.
// Все операции принимают уже аутентифицированного пользователя.
type NoteUseCase struct {
	noteRepo repositories.NoteRepository
}

// NewNoteUseCase создает новый экземпляр NoteUseCase.
func NewNoteUseCase(noteRepo repositories.NoteRepository) *NoteUseCase {
	return &NoteUseCase{noteRepo: noteRepo}
}

// CreateNote создает новую заметку, владельцем становится вызывающий.
func (uc *NoteUseCase) CreateNote(ctx context.Context, userID, title, content string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.CreateNote"), zap.String("userID", userID))
	log.Debug(ctx, msgCreatingNote)

	if title == "" || content == "" {
		log.Debug(ctx, msgEmptyNoteFields)
		return nil, fmt.Errorf("validating note: %w", ErrInvalidParams)
	}

	note, err := uc.noteRepo.Create(ctx, entities.NewNote(userID, title, content))
	if err != nil {
		log.Error(ctx, msgErrCreatingNote, zap.Error(err))
		return nil, fmt.Errorf("creating note: %w", err)
	}

	log.Info(ctx, msgNoteCreated, zap.String("noteID", note.ID))
	return note, nil
}

// ListNotes возвращает все заметки вызывающего.
func (uc *NoteUseCase) ListNotes(ctx context.Context, userID string) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.ListNotes"), zap.String("userID", userID))
	log.Debug(ctx, msgListingNotes)

	notes, err := uc.noteRepo.ListByUserID(ctx, userID)
	if err != nil {
		log.Error(ctx, msgErrListingNotes, zap.Error(err))
		return nil, fmt.Errorf("listing notes: %w", err)
	}

	return notes, nil
}

// UpdateNote частично обновляет заметку вызывающего.
// nil-поле сохраняет текущее значение; явно переданная пустая строка
// записывается как есть.
func (uc *NoteUseCase) UpdateNote(ctx context.Context, userID, noteID string, title, content *string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.UpdateNote"),
		zap.String("userID", userID), zap.String("noteID", noteID))
	log.Debug(ctx, msgUpdatingNote)

	note, err := uc.authorize(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	if title != nil {
		note.Title = *title
	}
	if content != nil {
		note.Content = *content
	}

	updated, err := uc.noteRepo.Update(ctx, note)
	if err != nil {
		if errors.Is(err, entities.ErrNoteNotFound) {
			log.Debug(ctx, msgNoteNotFound)
			return nil, fmt.Errorf("updating note: %w", err)
		}
		log.Error(ctx, msgErrSavingNote, zap.Error(err))
		return nil, fmt.Errorf("updating note: %w", err)
	}

	log.Info(ctx, msgNoteUpdated)
	return updated, nil
}

// DeleteNote удаляет заметку вызывающего.
// Повторное удаление уже удаленной заметки дает "не найдено".
func (uc *NoteUseCase) DeleteNote(ctx context.Context, userID, noteID string) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.DeleteNote"),
		zap.String("userID", userID), zap.String("noteID", noteID))
	log.Debug(ctx, msgDeletingNote)

	if _, err := uc.authorize(ctx, userID, noteID); err != nil {
		return err
	}

	if err := uc.noteRepo.Delete(ctx, noteID); err != nil {
		if errors.Is(err, entities.ErrNoteNotFound) {
			log.Debug(ctx, msgNoteNotFound)
			return fmt.Errorf("deleting note: %w", err)
		}
		log.Error(ctx, msgErrDeletingNote, zap.Error(err))
		return fmt.Errorf("deleting note: %w", err)
	}

	log.Info(ctx, msgNoteDeleted)
	return nil
}

// authorize получает заметку и проверяет владение.
// Порядок проверок фиксирован: сначала существование, затем владелец,
// чтобы "не найдено" и "чужая заметка" оставались различимыми и не
// протекали друг в друга.
func (uc *NoteUseCase) authorize(ctx context.Context, userID, noteID string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("noteID", noteID), zap.String("userID", userID))

	if noteID == "" {
		log.Debug(ctx, msgEmptyNoteID)
		return nil, fmt.Errorf("validating note id: %w", ErrInvalidParams)
	}

	note, err := uc.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, entities.ErrNoteNotFound) {
			log.Debug(ctx, msgNoteNotFound)
			return nil, fmt.Errorf("fetching note: %w", err)
		}
		log.Error(ctx, msgErrFetchingNote, zap.Error(err))
		return nil, fmt.Errorf("fetching note: %w", err)
	}

	if note.UserID != userID {
		log.Debug(ctx, msgOwnershipDenied, zap.String("ownerID", note.UserID))
		return nil, fmt.Errorf("authorizing note access: %w", ErrNoteAccessDenied)
	}

	return note, nil
}

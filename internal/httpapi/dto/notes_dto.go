package dto

import (
	"time"

	"notekeeper/internal/notes/domain/entities"
)

// CreateNoteRequest содержит данные для создания заметки.
type CreateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdateNoteRequest содержит данные для частичного обновления заметки.
// Отсутствующее поле оставляет сохраненное значение; явно переданная
// пустая строка записывается.
type UpdateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// NoteResponse содержит заметку, отдаваемую наружу.
type NoteResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewNoteResponse собирает ответ из доменной заметки.
func NewNoteResponse(note *entities.Note) NoteResponse {
	return NoteResponse{
		ID:        note.ID,
		UserID:    note.UserID,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

// NewNoteListResponse собирает список ответов.
func NewNoteListResponse(notes []*entities.Note) []NoteResponse {
	list := make([]NoteResponse, 0, len(notes))
	for _, note := range notes {
		list = append(list, NewNoteResponse(note))
	}
	return list
}

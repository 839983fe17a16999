// Package notes содержит HTTP-обработчики для управления заметками.
package notes

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notekeeper/internal/httpapi/dto"
	"notekeeper/internal/httpapi/middleware"
	"notekeeper/internal/notes/app"
	"notekeeper/internal/notes/domain/entities"
	"notekeeper/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerListNotes  = "handling list notes request"
	LogHandlerCreateNote = "handling create note request"
	LogHandlerUpdateNote = "handling update note request"
	LogHandlerDeleteNote = "handling delete note request"

	ErrMsgInvalidNoteID      = "invalid note id"
	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgFieldsRequired     = "title and content are required"

	MsgNoteDeleted = "note deleted"
)

// Handler обработчик HTTP-запросов для работы с заметками.
type Handler struct {
	noteUseCase *app.NoteUseCase
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(noteUseCase *app.NoteUseCase) *Handler {
	return &Handler{noteUseCase: noteUseCase}
}

// ListNotes возвращает все заметки вызывающего.
func (h *Handler) ListNotes(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ListNotes"))
	log.Debug(requestCtx, LogHandlerListNotes)

	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	notes, err := h.noteUseCase.ListNotes(requestCtx, user.ID)
	if err != nil {
		log.Error(requestCtx, "failed to list notes", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.Status(fiber.StatusOK).JSON(dto.NewNoteListResponse(notes)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// CreateNote обрабатывает запрос на создание новой заметки.
func (h *Handler) CreateNote(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.CreateNote"))
	log.Debug(requestCtx, LogHandlerCreateNote)

	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	var req dto.CreateNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidRequestBody)
	}

	if req.Title == "" || req.Content == "" {
		return badRequest(ctx, ErrMsgFieldsRequired)
	}

	note, err := h.noteUseCase.CreateNote(requestCtx, user.ID, req.Title, req.Content)
	if err != nil {
		log.Error(requestCtx, "failed to create note", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(dto.NewNoteResponse(note)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// UpdateNote обрабатывает запрос на частичное обновление заметки.
func (h *Handler) UpdateNote(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.UpdateNote"))
	log.Debug(requestCtx, LogHandlerUpdateNote)

	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	noteID := ctx.Params("id")
	if noteID == "" {
		return badRequest(ctx, ErrMsgInvalidNoteID)
	}

	var req dto.UpdateNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidRequestBody)
	}

	note, err := h.noteUseCase.UpdateNote(requestCtx, user.ID, noteID, req.Title, req.Content)
	if err != nil {
		return handleError(ctx, err)
	}

	if err := ctx.Status(fiber.StatusOK).JSON(dto.NewNoteResponse(note)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// DeleteNote обрабатывает запрос на удаление заметки.
func (h *Handler) DeleteNote(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.DeleteNote"))
	log.Debug(requestCtx, LogHandlerDeleteNote)

	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	noteID := ctx.Params("id")
	if noteID == "" {
		return badRequest(ctx, ErrMsgInvalidNoteID)
	}

	if err := h.noteUseCase.DeleteNote(requestCtx, user.ID, noteID); err != nil {
		return handleError(ctx, err)
	}

	if err := ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": MsgNoteDeleted,
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

func badRequest(ctx fiber.Ctx, message string) error {
	if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": message,
	}); err != nil {
		return fmt.Errorf("sending bad request response: %w", err)
	}
	return nil
}

func unauthorized(ctx fiber.Ctx) error {
	if err := ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "unauthorized",
	}); err != nil {
		return fmt.Errorf("sending unauthorized response: %w", err)
	}
	return nil
}

// handleError переводит доменные ошибки в статусы HTTP.
// Сначала существование, затем владение: 404 и 403 не смешиваются,
// и тело негативного ответа не содержит данных заметки.
func handleError(ctx fiber.Ctx, err error) error {
	log := logger.Log(ctx.Context())

	var status int
	var message string

	switch {
	case errors.Is(err, entities.ErrNoteNotFound):
		status, message = fiber.StatusNotFound, "note not found"
	case errors.Is(err, app.ErrNoteAccessDenied):
		status, message = fiber.StatusForbidden, "forbidden"
	case errors.Is(err, app.ErrInvalidParams):
		status, message = fiber.StatusBadRequest, err.Error()
	default:
		log.Error(ctx.Context(), "notes handler: internal error", zap.Error(err))
		status, message = fiber.StatusInternalServerError, "internal server error"
	}

	if err := ctx.Status(status).JSON(fiber.Map{"error": message}); err != nil {
		return fmt.Errorf("sending error response: %w", err)
	}
	return nil
}

package httpapi_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authservices "notekeeper/internal/auth/adapters/services"
	authapp "notekeeper/internal/auth/app"
	"notekeeper/internal/httpapi"
	notesapp "notekeeper/internal/notes/app"
	"notekeeper/pkg/logger"
)

type testServer struct {
	app *fiber.App
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	err := logger.InitGlobalLoggerWithLevel(logger.Development, "error")
	require.NoError(t, err)

	userRepo := newMemUserRepository()
	noteRepo := newMemNoteRepository()

	factory := authservices.NewServiceFactory("test-secret-key", 15*time.Minute, 4)

	app := fiber.New()
	httpapi.SetupRouter(app, httpapi.Deps{
		AuthUseCase:  authapp.NewAuthUseCase(userRepo, factory.PasswordService(), factory.TokenService()),
		UserUseCase:  authapp.NewUserUseCase(userRepo, nil, time.Minute),
		NoteUseCase:  notesapp.NewNoteUseCase(noteRepo),
		TokenService: factory.TokenService(),
		UserRepo:     userRepo,
	})

	return &testServer{app: app}
}

func (s *testServer) request(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer func() { require.NoError(t, resp.Body.Close()) }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}

	return resp.StatusCode, decoded
}

// requestList для ручек, отвечающих JSON-массивом.
func (s *testServer) requestList(t *testing.T, method, path, token string) (int, []map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer func() { require.NoError(t, resp.Body.Close()) }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded []map[string]any
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}

	return resp.StatusCode, decoded
}

func (s *testServer) register(t *testing.T, username, email, password string) (string, map[string]any) {
	t.Helper()

	status, body := s.request(t, http.MethodPost, "/auth/register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, status, "register should succeed: %v", body)

	token, ok := body["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	return token, body
}

func TestHealth(t *testing.T) {
	server := newTestServer(t)

	status, body := server.request(t, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestUnknownRoute(t *testing.T) {
	server := newTestServer(t)

	status, body := server.request(t, http.MethodGet, "/nope", "", nil)

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "route not found", body["error"])
}

func TestRegisterEndpoint(t *testing.T) {
	server := newTestServer(t)

	t.Run("успешная регистрация возвращает токен и профиль", func(t *testing.T) {
		status, body := server.request(t, http.MethodPost, "/auth/register", "", map[string]string{
			"username": "alice",
			"email":    "alice@example.com",
			"password": "pw123",
		})

		require.Equal(t, http.StatusCreated, status)
		assert.NotEmpty(t, body["token"])
		assert.NotEmpty(t, body["expires_at"])

		user, ok := body["user"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "alice", user["username"])
		assert.Equal(t, "alice@example.com", user["email"])
		assert.NotEmpty(t, user["id"])

		// Хэш пароля не сериализуется.
		_, hasHash := user["password_hash"]
		assert.False(t, hasHash)
		_, hasPassword := user["password"]
		assert.False(t, hasPassword)
	})

	t.Run("повторная регистрация на тот же email", func(t *testing.T) {
		status, body := server.request(t, http.MethodPost, "/auth/register", "", map[string]string{
			"username": "alice2",
			"email":    "alice@example.com",
			"password": "other-pw",
		})

		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, "email already registered", body["error"])
	})

	t.Run("отсутствующие поля", func(t *testing.T) {
		status, body := server.request(t, http.MethodPost, "/auth/register", "", map[string]string{
			"username": "bob",
		})

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "username, email and password are required", body["error"])
	})

	t.Run("некорректный email", func(t *testing.T) {
		status, _ := server.request(t, http.MethodPost, "/auth/register", "", map[string]string{
			"username": "bob",
			"email":    "not-an-email",
			"password": "pw123",
		})

		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestLoginEndpoint(t *testing.T) {
	server := newTestServer(t)
	server.register(t, "alice", "alice@example.com", "pw123")

	t.Run("успешный вход", func(t *testing.T) {
		status, body := server.request(t, http.MethodPost, "/auth/login", "", map[string]string{
			"email":    "alice@example.com",
			"password": "pw123",
		})

		require.Equal(t, http.StatusOK, status)
		assert.NotEmpty(t, body["token"])
	})

	t.Run("неверный пароль и неизвестный email дают одинаковый ответ", func(t *testing.T) {
		statusWrongPass, bodyWrongPass := server.request(t, http.MethodPost, "/auth/login", "", map[string]string{
			"email":    "alice@example.com",
			"password": "wrong",
		})
		statusUnknown, bodyUnknown := server.request(t, http.MethodPost, "/auth/login", "", map[string]string{
			"email":    "nobody@example.com",
			"password": "pw123",
		})

		assert.Equal(t, http.StatusUnauthorized, statusWrongPass)
		assert.Equal(t, http.StatusUnauthorized, statusUnknown)
		assert.Equal(t, bodyWrongPass, bodyUnknown)
	})

	t.Run("отсутствующие поля", func(t *testing.T) {
		status, body := server.request(t, http.MethodPost, "/auth/login", "", map[string]string{
			"email": "alice@example.com",
		})

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "email and password are required", body["error"])
	})
}

func TestProfileEndpoint(t *testing.T) {
	server := newTestServer(t)
	token, _ := server.register(t, "alice", "alice@example.com", "pw123")

	t.Run("профиль с валидным токеном", func(t *testing.T) {
		status, body := server.request(t, http.MethodGet, "/auth/profile", token, nil)

		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "alice", body["username"])
		assert.Equal(t, "alice@example.com", body["email"])
	})

	t.Run("без токена", func(t *testing.T) {
		status, body := server.request(t, http.MethodGet, "/auth/profile", "", nil)

		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "unauthorized", body["error"])
	})

	t.Run("искаженный токен", func(t *testing.T) {
		status, body := server.request(t, http.MethodGet, "/auth/profile", token+"xx", nil)

		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "unauthorized", body["error"])
	})

	t.Run("заголовок не по схеме Bearer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
		req.Header.Set("Authorization", "Basic "+token)

		resp, err := server.app.Test(req)
		require.NoError(t, err)
		defer func() { require.NoError(t, resp.Body.Close()) }()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestNotesEndpoints(t *testing.T) {
	server := newTestServer(t)
	aliceToken, _ := server.register(t, "alice", "alice@example.com", "pw123")
	bobToken, _ := server.register(t, "bob", "bob@example.com", "pw456")

	var aliceNoteID string

	t.Run("создание заметки", func(t *testing.T) {
		status, body := server.request(t, http.MethodPost, "/notes/", aliceToken, map[string]string{
			"title":   "shopping",
			"content": "milk, eggs",
		})

		require.Equal(t, http.StatusCreated, status)
		assert.Equal(t, "shopping", body["title"])
		assert.Equal(t, "milk, eggs", body["content"])
		require.NotEmpty(t, body["id"])

		aliceNoteID = body["id"].(string)
	})

	t.Run("создание без полей", func(t *testing.T) {
		status, body := server.request(t, http.MethodPost, "/notes/", aliceToken, map[string]string{
			"title": "only title",
		})

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "title and content are required", body["error"])
	})

	t.Run("список содержит только свои заметки", func(t *testing.T) {
		status, aliceNotes := server.requestList(t, http.MethodGet, "/notes/", aliceToken)
		require.Equal(t, http.StatusOK, status)
		require.Len(t, aliceNotes, 1)
		assert.Equal(t, aliceNoteID, aliceNotes[0]["id"])

		status, bobNotes := server.requestList(t, http.MethodGet, "/notes/", bobToken)
		require.Equal(t, http.StatusOK, status)
		assert.Empty(t, bobNotes)
	})

	t.Run("без токена заметки недоступны", func(t *testing.T) {
		status, body := server.request(t, http.MethodGet, "/notes/", "", nil)

		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "unauthorized", body["error"])
	})

	t.Run("чужая заметка не обновляется", func(t *testing.T) {
		status, body := server.request(t, http.MethodPut, "/notes/"+aliceNoteID, bobToken, map[string]string{
			"title": "hijacked",
		})

		assert.Equal(t, http.StatusForbidden, status)
		assert.Equal(t, "forbidden", body["error"])

		// Содержимое не изменилось и не протекло в ответ.
		_, hasTitle := body["title"]
		assert.False(t, hasTitle)
	})

	t.Run("чужая заметка не удаляется", func(t *testing.T) {
		status, body := server.request(t, http.MethodDelete, "/notes/"+aliceNoteID, bobToken, nil)

		assert.Equal(t, http.StatusForbidden, status)
		assert.Equal(t, "forbidden", body["error"])
	})

	t.Run("частичное обновление сохраняет непереданные поля", func(t *testing.T) {
		status, body := server.request(t, http.MethodPut, "/notes/"+aliceNoteID, aliceToken, map[string]string{
			"title": "groceries",
		})

		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "groceries", body["title"])
		assert.Equal(t, "milk, eggs", body["content"])
	})

	t.Run("явно переданная пустая строка записывается", func(t *testing.T) {
		empty := ""
		status, body := server.request(t, http.MethodPut, "/notes/"+aliceNoteID, aliceToken, map[string]*string{
			"content": &empty,
		})

		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "groceries", body["title"])
		assert.Equal(t, "", body["content"])
	})

	t.Run("обновление несуществующей заметки", func(t *testing.T) {
		status, body := server.request(t, http.MethodPut, "/notes/missing-note-id", aliceToken, map[string]string{
			"title": "x",
		})

		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "note not found", body["error"])
	})

	t.Run("удаление своей заметки и повторное удаление", func(t *testing.T) {
		status, body := server.request(t, http.MethodDelete, "/notes/"+aliceNoteID, aliceToken, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "note deleted", body["message"])

		status, body = server.request(t, http.MethodDelete, "/notes/"+aliceNoteID, aliceToken, nil)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "note not found", body["error"])
	})
}

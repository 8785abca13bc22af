package serverutils

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-concierge-be/internal/dto"
	"ai-concierge-be/pkg/session"
	"ai-concierge-be/pkg/tasks"
)

func signToken(t *testing.T, secret, sub string, expiresIn time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(expiresIn).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestJwtMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	app := fiber.New()
	app.Get("/protected", JwtMiddleware, func(ctx *fiber.Ctx) error {
		return ctx.SendString(ctx.Locals("user_id").(string))
	})

	t.Run("valid token passes subject through", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", "alice", time.Hour))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "alice", string(body))
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("wrong secret", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", "alice", time.Hour))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("expired token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", "alice", -time.Hour))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("missing sub claim", func(t *testing.T) {
		claims := jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signed)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/task-missing", func(ctx *fiber.Ctx) error {
		return tasks.ErrTaskNotFound
	})
	app.Get("/no-session", func(ctx *fiber.Ctx) error {
		return session.ErrNoActiveSession
	})
	app.Get("/upstream", func(ctx *fiber.Ctx) error {
		return dto.NewUpstreamError("llm", assert.AnError)
	})
	app.Get("/teapot", func(ctx *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantMsg    string
	}{
		{name: "task not found maps to 404", path: "/task-missing", wantStatus: 404, wantMsg: "Task not found"},
		{name: "no active session maps to 404", path: "/no-session", wantStatus: 404, wantMsg: "No active session"},
		{name: "upstream failure maps to 502", path: "/upstream", wantStatus: 502, wantMsg: "upstream llm failed"},
		{name: "fiber errors keep their code", path: "/teapot", wantStatus: 418, wantMsg: "short and stout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var envelope struct {
				Success bool   `json:"success"`
				Code    int    `json:"code"`
				Message string `json:"message"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
			assert.False(t, envelope.Success)
			assert.Equal(t, tt.wantStatus, envelope.Code)
			assert.Contains(t, envelope.Message, tt.wantMsg)
		})
	}
}

type recordedLog struct {
	module  string
	message string
	details map[string]interface{}
}

// recordingLogger captures structured log calls for assertions.
type recordingLogger struct {
	mu     sync.Mutex
	infos  []recordedLog
	errors []recordedLog
}

func (l *recordingLogger) Debug(module, message string, details map[string]interface{}) {}
func (l *recordingLogger) Warn(module, message string, details map[string]interface{})  {}
func (l *recordingLogger) Sync() error                                                  { return nil }

func (l *recordingLogger) Info(module, message string, details map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, recordedLog{module: module, message: message, details: details})
}

func (l *recordingLogger) Error(module, message string, details map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, recordedLog{module: module, message: message, details: details})
}

func TestRequestLoggerMiddleware(t *testing.T) {
	t.Run("logs method, path and final status", func(t *testing.T) {
		rec := &recordingLogger{}
		app := fiber.New()
		app.Use(RequestLoggerMiddleware(rec))
		app.Use(ErrorHandlerMiddleware())
		app.Get("/ok", func(ctx *fiber.Ctx) error {
			return ctx.JSON(fiber.Map{"success": true})
		})
		app.Get("/no-session", func(ctx *fiber.Ctx) error {
			return session.ErrNoActiveSession
		})

		_, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
		require.NoError(t, err)
		_, err = app.Test(httptest.NewRequest("GET", "/no-session", nil))
		require.NoError(t, err)

		require.Len(t, rec.infos, 2)
		assert.Equal(t, "http", rec.infos[0].module)
		assert.Equal(t, "GET", rec.infos[0].details["method"])
		assert.Equal(t, "/ok", rec.infos[0].details["path"])
		assert.Equal(t, 200, rec.infos[0].details["status"])
		assert.Equal(t, 404, rec.infos[1].details["status"])
	})

	t.Run("escaped errors log through the error level", func(t *testing.T) {
		rec := &recordingLogger{}
		app := fiber.New()
		app.Use(RequestLoggerMiddleware(rec))
		app.Get("/boom", func(ctx *fiber.Ctx) error {
			return assert.AnError
		})

		_, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
		require.NoError(t, err)

		require.Len(t, rec.errors, 1)
		assert.Equal(t, "/boom", rec.errors[0].details["path"])
		assert.Contains(t, rec.errors[0].details["error"], assert.AnError.Error())
	})
}

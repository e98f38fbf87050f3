package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmaslov/campuschat-server/internal/mocks"
	"github.com/dmaslov/campuschat-server/internal/testutil"
)

func newApp(tokens *mocks.TokenManager, capture func(c *fiber.Ctx)) *fiber.App {
	app := fiber.New()
	app.Use(NewAuthenticate(tokens, testutil.Discard()).Handle)
	app.Get("/protected", func(c *fiber.Ctx) error {
		capture(c)
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestAuthenticate_BearerHeader(t *testing.T) {
	userID := uuid.New()
	tokens := new(mocks.TokenManager)
	tokens.On("Parse", "valid-token").Return(userID, "sess-1", nil).Once()

	var gotUserID uuid.UUID
	var gotSessionID string
	app := newApp(tokens, func(c *fiber.Ctx) {
		gotUserID = UserID(c)
		gotSessionID = SessionID(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer valid-token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, userID, gotUserID)
	assert.Equal(t, "sess-1", gotSessionID)
}

func TestAuthenticate_QueryFallback(t *testing.T) {
	userID := uuid.New()
	tokens := new(mocks.TokenManager)
	tokens.On("Parse", "query-token").Return(userID, "sess-1", nil).Once()

	app := newApp(tokens, func(*fiber.Ctx) {})

	req := httptest.NewRequest(http.MethodGet, "/protected?token=query-token", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthenticate_MissingToken(t *testing.T) {
	tokens := new(mocks.TokenManager)
	app := newApp(tokens, func(*fiber.Ctx) {})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	tokens.AssertNotCalled(t, "Parse", mock.Anything)
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	tokens := new(mocks.TokenManager)
	tokens.On("Parse", "bad-token").Return(uuid.Nil, "", assert.AnError).Once()

	app := newApp(tokens, func(*fiber.Ctx) {})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer bad-token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmaslov/campuschat-server/internal/auth"
	"github.com/dmaslov/campuschat-server/internal/mocks"
	"github.com/dmaslov/campuschat-server/internal/model"
	"github.com/dmaslov/campuschat-server/internal/service"
	"github.com/dmaslov/campuschat-server/internal/session"
	"github.com/dmaslov/campuschat-server/internal/testutil"
)

func newAuthApp(users *mocks.UserStore, profiles *mocks.ProfileStore) *fiber.App {
	log := testutil.Discard()

	tokens := new(mocks.TokenManager)
	tokens.On("Generate", mock.Anything, mock.Anything).Return("test-token", nil)

	svc := service.NewAuth(
		users,
		profiles,
		session.NewManager(testutil.NewMemorySnapshots(), log),
		auth.NewPasswordServiceWithCost(4),
		tokens,
		log,
	)

	h := NewAuth(svc, log)
	app := fiber.New()
	app.Post("/api/auth/register", h.Register)
	app.Post("/api/auth/login", h.Login)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAuthHandler_Register(t *testing.T) {
	users := new(mocks.UserStore)
	profiles := new(mocks.ProfileStore)
	app := newAuthApp(users, profiles)

	created := model.User{ID: uuid.New(), Email: "new@example.com"}
	users.On("GetByEmail", mock.Anything, "new@example.com").Return(model.User{}, model.ErrNotFound).Once()
	users.On("Create", mock.Anything, mock.Anything).Return(created, nil).Once()
	profiles.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	resp := postJSON(t, app, "/api/auth/register", `{"email":"new@example.com","password":"secret"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Token string          `json:"token"`
		User  model.AuthState `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "test-token", body.Token)
	assert.Equal(t, created.ID.String(), body.User.ID)
	assert.Equal(t, "new@example.com", body.User.Email)
}

func TestAuthHandler_Register_EmailTaken(t *testing.T) {
	users := new(mocks.UserStore)
	app := newAuthApp(users, new(mocks.ProfileStore))

	users.On("GetByEmail", mock.Anything, "taken@example.com").Return(model.User{ID: uuid.New()}, nil).Once()

	resp := postJSON(t, app, "/api/auth/register", `{"email":"taken@example.com","password":"secret"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	app := newAuthApp(new(mocks.UserStore), new(mocks.ProfileStore))

	resp := postJSON(t, app, "/api/auth/register", `{"email":"new@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	users := new(mocks.UserStore)
	app := newAuthApp(users, new(mocks.ProfileStore))

	users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(model.User{}, model.ErrNotFound).Once()

	resp := postJSON(t, app, "/api/auth/login", `{"email":"nobody@example.com","password":"secret"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

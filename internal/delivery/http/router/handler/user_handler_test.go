package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gatehouse/internal/delivery/http/middleware"
	"gatehouse/internal/delivery/http/response"
	echovalidator "gatehouse/internal/delivery/http/validator"
	domainerrors "gatehouse/internal/domain/errors"
	"gatehouse/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserUsecase scripts the business layer per test.
type fakeUserUsecase struct {
	registerFn func(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error)
	loginFn    func(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error)
	profileFn  func(ctx context.Context, userID int64) (*usecase.ProfileOutput, error)
}

func (f *fakeUserUsecase) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	if f.registerFn == nil {
		return nil, errors.New("unexpected Register call")
	}

	return f.registerFn(ctx, input)
}

func (f *fakeUserUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	if f.loginFn == nil {
		return nil, errors.New("unexpected Login call")
	}

	return f.loginFn(ctx, input)
}

func (f *fakeUserUsecase) Profile(ctx context.Context, userID int64) (*usecase.ProfileOutput, error) {
	if f.profileFn == nil {
		return nil, errors.New("unexpected Profile call")
	}

	return f.profileFn(ctx, userID)
}

func newTestUserHandler(uc usecase.UserUsecase) *UserHandler {
	return NewUserHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// newHandlerContext builds an Echo context the way the server does, with the
// struct-tag validator installed.
func newHandlerContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = echovalidator.New()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()

	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	return resp
}

func TestUserHandler_Register_Success(t *testing.T) {
	uc := &fakeUserUsecase{registerFn: func(_ context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
		return &usecase.RegisterOutput{ID: 1, Username: input.Username, Email: input.Email}, nil
	}}
	h := newTestUserHandler(uc)

	c, rec := newHandlerContext(t, http.MethodPost, "/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"s3cret-pw"}`)
	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeEnvelope(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.Equal(t, "User registered successfully", resp.Message)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), data["id"])
	assert.Equal(t, "alice", data["username"])
	assert.Equal(t, "alice@example.com", data["email"])

	// The plaintext password must never appear in the response.
	assert.NotContains(t, rec.Body.String(), "s3cret-pw")
}

func TestUserHandler_Register_MalformedJSON(t *testing.T) {
	called := false
	uc := &fakeUserUsecase{registerFn: func(_ context.Context, _ *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
		called = true

		return nil, nil
	}}
	h := newTestUserHandler(uc)

	c, rec := newHandlerContext(t, http.MethodPost, "/auth/register", `{"username":"alice"`)
	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
	assert.False(t, called)
}

func TestUserHandler_Register_MissingFields(t *testing.T) {
	called := false
	uc := &fakeUserUsecase{registerFn: func(_ context.Context, _ *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
		called = true

		return nil, nil
	}}
	h := newTestUserHandler(uc)

	c, rec := newHandlerContext(t, http.MethodPost, "/auth/register", `{"username":"alice"}`)
	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_FAILED", resp.Error.Code)
	assert.False(t, called)
}

func TestUserHandler_Register_EmptyBody(t *testing.T) {
	h := newTestUserHandler(&fakeUserUsecase{})

	c, rec := newHandlerContext(t, http.MethodPost, "/auth/register", "")
	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_FAILED", resp.Error.Code)
}

func TestUserHandler_Register_DuplicatePropagates(t *testing.T) {
	uc := &fakeUserUsecase{registerFn: func(_ context.Context, _ *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
		return nil, errors.Wrap(domainerrors.ErrDuplicateEmail, "registration failed")
	}}
	h := newTestUserHandler(uc)

	c, _ := newHandlerContext(t, http.MethodPost, "/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"pw"}`)

	// Business errors pass through to the central error handler untouched.
	err := h.Register(c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateEmail))
}

func TestUserHandler_Login_Success(t *testing.T) {
	uc := &fakeUserUsecase{loginFn: func(_ context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
		assert.Equal(t, "alice@example.com", input.Email)
		assert.Equal(t, "s3cret-pw", input.Password)

		return &usecase.LoginOutput{Token: "signed.session.token", User: "alice"}, nil
	}}
	h := newTestUserHandler(uc)

	c, rec := newHandlerContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"s3cret-pw"}`)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "Login successful", resp.Message)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "signed.session.token", data["token"])
	assert.Equal(t, "alice", data["user"])
}

func TestUserHandler_Login_InvalidCredentials(t *testing.T) {
	uc := &fakeUserUsecase{loginFn: func(_ context.Context, _ *usecase.LoginInput) (*usecase.LoginOutput, error) {
		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}}
	h := newTestUserHandler(uc)

	c, _ := newHandlerContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"wrong"}`)

	err := h.Login(c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestUserHandler_Login_MalformedJSON(t *testing.T) {
	h := newTestUserHandler(&fakeUserUsecase{})

	c, rec := newHandlerContext(t, http.MethodPost, "/auth/login", `{"email":`)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
}

func TestUserHandler_GetProfile_Success(t *testing.T) {
	uc := &fakeUserUsecase{profileFn: func(_ context.Context, userID int64) (*usecase.ProfileOutput, error) {
		assert.Equal(t, int64(7), userID)

		return &usecase.ProfileOutput{ID: 7, Username: "alice", Email: "alice@example.com"}, nil
	}}
	h := newTestUserHandler(uc)

	c, rec := newHandlerContext(t, http.MethodGet, "/user/profile", "")
	c.Set(middleware.ContextKeyUserID, int64(7))
	require.NoError(t, h.GetProfile(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.True(t, resp.Success)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(7), data["id"])
	assert.Equal(t, "alice", data["username"])
}

func TestUserHandler_GetProfile_MissingIdentity(t *testing.T) {
	called := false
	uc := &fakeUserUsecase{profileFn: func(_ context.Context, _ int64) (*usecase.ProfileOutput, error) {
		called = true

		return nil, nil
	}}
	h := newTestUserHandler(uc)

	// No authenticated user on the context at all.
	c, rec := newHandlerContext(t, http.MethodGet, "/user/profile", "")
	require.NoError(t, h.GetProfile(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UNAUTHORIZED", resp.Error.Code)

	// A value of the wrong type is treated the same as a missing one.
	c, rec = newHandlerContext(t, http.MethodGet, "/user/profile", "")
	c.Set(middleware.ContextKeyUserID, "7")
	require.NoError(t, h.GetProfile(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	assert.False(t, called)
}

func TestHealthCheck(t *testing.T) {
	c, rec := newHandlerContext(t, http.MethodGet, "/health", "")
	require.NoError(t, HealthCheck(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

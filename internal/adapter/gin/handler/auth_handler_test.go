package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"user-management-service/internal/usecase/auth"
	pkgerrors "user-management-service/pkg/errors"
)

// MockAuthService is a mock implementation of auth.Service
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, in auth.RegisterRequest) (*auth.RegisterResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.RegisterResponse), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, in auth.LoginRequest) (*auth.LoginResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.LoginResponse), args.Error(1)
}

func setupAuthRouter(t *testing.T) (*gin.Engine, *MockAuthService) {
	gin.SetMode(gin.TestMode)
	svc := new(MockAuthService)
	h := NewAuthHandler(svc, zaptest.NewLogger(t))

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	return r, svc
}

func TestRegister(t *testing.T) {
	r, svc := setupAuthRouter(t)

	svc.On("Register", mock.Anything, auth.RegisterRequest{
		UserName:       "John Doe",
		AccountNumber:  "ACC-1",
		EmailAddress:   "john@example.com",
		IdentityNumber: "ID-1",
		Password:       "secret123",
	}).Return(&auth.RegisterResponse{ID: 1, Message: "user registered successfully"}, nil)

	w := performRequest(r, http.MethodPost, "/auth/register", gin.H{
		"userName":       "John Doe",
		"accountNumber":  "ACC-1",
		"emailAddress":   "john@example.com",
		"identityNumber": "ID-1",
		"password":       "secret123",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var resp auth.RegisterResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.ID)

	svc.AssertExpectations(t)
}

func TestRegister_InvalidBody(t *testing.T) {
	r, svc := setupAuthRouter(t)

	w := performRequest(r, http.MethodPost, "/auth/register", gin.H{
		"userName": "John Doe",
		"password": "123",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation_error")

	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestRegister_Duplicate(t *testing.T) {
	r, svc := setupAuthRouter(t)

	svc.On("Register", mock.Anything, mock.Anything).Return(nil,
		pkgerrors.NewAlreadyExistsError("user", "duplicate entry for account number, email address or identity number"))

	w := performRequest(r, http.MethodPost, "/auth/register", gin.H{
		"userName":       "John Doe",
		"accountNumber":  "ACC-1",
		"emailAddress":   "john@example.com",
		"identityNumber": "ID-1",
		"password":       "secret123",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "duplicate entry")
}

func TestLogin(t *testing.T) {
	r, svc := setupAuthRouter(t)

	svc.On("Login", mock.Anything, auth.LoginRequest{
		EmailAddress: "john@example.com",
		Password:     "secret123",
	}).Return(&auth.LoginResponse{Token: "signed.jwt.token"}, nil)

	w := performRequest(r, http.MethodPost, "/auth/login", gin.H{
		"emailAddress": "john@example.com",
		"password":     "secret123",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp auth.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "signed.jwt.token", resp.Token)

	svc.AssertExpectations(t)
}

func TestLogin_BadCredentials(t *testing.T) {
	r, svc := setupAuthRouter(t)

	svc.On("Login", mock.Anything, mock.Anything).Return(nil, pkgerrors.NewUnauthorizedError("invalid email or password"))

	w := performRequest(r, http.MethodPost, "/auth/login", gin.H{
		"emailAddress": "john@example.com",
		"password":     "wrong-pass",
	})

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "unauthorized")
	assert.Contains(t, w.Body.String(), "invalid email or password")
}

func TestLogin_InvalidBody(t *testing.T) {
	r, svc := setupAuthRouter(t)

	w := performRequest(r, http.MethodPost, "/auth/login", gin.H{"emailAddress": "not-an-email"})

	require.Equal(t, http.StatusBadRequest, w.Code)

	svc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

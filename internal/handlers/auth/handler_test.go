package auth_test

import (
	"booktable/infras/otel/mocks"
	authMocks "booktable/internal/domains/auth/mocks"
	"booktable/internal/domains/auth/model/dto"
	"booktable/internal/handlers/auth"
	"booktable/shared/failure"
	"booktable/shared/role"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setup(t *testing.T) (*authMocks.MockAuth, http.Handler) {
	t.Helper()

	service := authMocks.NewMockAuth(gomock.NewController(t))

	handler := auth.New(service, mocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	return service, router
}

func post(router http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestHandler_Register(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(service *authMocks.MockAuth)
		wantCode  int
		wantBody  string
	}{
		{
			name: "registered",
			body: `{"name":"Alice Johnson","email":"alice@example.com","password":"secret123","role":"Customer"}`,
			setupMock: func(service *authMocks.MockAuth) {
				service.EXPECT().Register(gomock.Any(), dto.RegisterRequest{
					Name: "Alice Johnson", Email: "alice@example.com", Password: "secret123", Role: "Customer",
				}).Return(nil)
			},
			wantCode: http.StatusCreated,
			wantBody: `{"message":"User registered successfully"}`,
		},
		{
			name:     "unknown role",
			body:     `{"name":"Mallory","email":"mallory@example.com","password":"secret123","role":"Owner"}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "malformed json",
			body:     `{"name":`,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "email taken",
			body: `{"name":"Alice Johnson","email":"alice@example.com","password":"secret123","role":"Customer"}`,
			setupMock: func(service *authMocks.MockAuth) {
				service.EXPECT().Register(gomock.Any(), gomock.Any()).Return(failure.BadRequestFromString("User already exists"))
			},
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"User already exists"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, router := setup(t)
			if tt.setupMock != nil {
				tt.setupMock(service)
			}

			rec := post(router, "/auth/register", tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestHandler_Login(t *testing.T) {
	service, router := setup(t)

	service.EXPECT().
		Login(gomock.Any(), dto.LoginRequest{Email: "mario@example.com", Password: "secret123"}).
		Return(dto.LoginResponse{Token: "signed", Role: role.RestaurantManager}, nil)
	service.EXPECT().
		Login(gomock.Any(), dto.LoginRequest{Email: "mario@example.com", Password: "wrong"}).
		Return(dto.LoginResponse{}, failure.Unauthorized("Invalid credentials"))

	rec := post(router, "/auth/login", `{"email":"mario@example.com","password":"secret123"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"token":"signed","role":"RestaurantManager"}`, rec.Body.String())

	rec = post(router, "/auth/login", `{"email":"mario@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid credentials"}`, rec.Body.String())
}

func TestHandler_Logout(t *testing.T) {
	_, router := setup(t)

	rec := post(router, "/auth/logout", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Logged out successfully"}`, rec.Body.String())
}

package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"catalog-service/apperrors"
	"catalog-service/middleware"
	"catalog-service/models"
	"catalog-service/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeUserService struct {
	lastSignUp services.SignUpRequest
	lastID     primitive.ObjectID

	loginFn func(ctx context.Context, email, password string) (string, error)
}

func (f *fakeUserService) SignUp(ctx context.Context, req services.SignUpRequest) (*models.User, error) {
	f.lastSignUp = req
	return &models.User{Email: req.Email}, nil
}

func (f *fakeUserService) Login(ctx context.Context, email, password string) (string, error) {
	if f.loginFn != nil {
		return f.loginFn(ctx, email, password)
	}
	return "token", nil
}

func (f *fakeUserService) Profile(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	f.lastID = id
	return &models.User{ID: id}, nil
}

func (f *fakeUserService) Update(ctx context.Context, id primitive.ObjectID, req services.UserUpdateRequest) (*models.User, error) {
	f.lastID = id
	return &models.User{ID: id}, nil
}

func (f *fakeUserService) Delete(ctx context.Context, id primitive.ObjectID) error {
	f.lastID = id
	return nil
}

func newUserRouter(service UserServiceAPI) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewUserController(service)
	router := gin.New()
	router.POST("/auth/signup", controller.SignUp)
	router.POST("/auth/login", controller.Login)
	router.GET("/auth/user", controller.Profile)
	return router
}

func TestSignUp(t *testing.T) {
	fake := &fakeUserService{}
	router := newUserRouter(fake)

	body := `{"email": "jane@example.com", "password": "supersecret", "firstName": "Jane", "lastName": "Doe"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if fake.lastSignUp.Email != "jane@example.com" {
		t.Errorf("unexpected signup request: %+v", fake.lastSignUp)
	}
}

func TestSignUpRejectsBadEmail(t *testing.T) {
	router := newUserRouter(&fakeUserService{})

	body := `{"email": "not-an-email", "password": "supersecret", "firstName": "Jane", "lastName": "Doe"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
}

func TestLoginWrongCredentials(t *testing.T) {
	fake := &fakeUserService{
		loginFn: func(ctx context.Context, email, password string) (string, error) {
			return "", apperrors.Unauthorized("Email or password is incorrect")
		},
	}
	router := newUserRouter(fake)

	body := `{"email": "jane@example.com", "password": "wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "Email or password is incorrect") {
		t.Errorf("unexpected body %s", recorder.Body.String())
	}
}

func TestLoginReturnsToken(t *testing.T) {
	router := newUserRouter(&fakeUserService{})

	body := `{"email": "jane@example.com", "password": "supersecret"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), `"token":"token"`) {
		t.Errorf("unexpected body %s", recorder.Body.String())
	}
}

func TestProfileUsesTokenSubject(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fake := &fakeUserService{}
	controller := NewUserController(fake)

	id := primitive.NewObjectID()
	router := gin.New()
	router.GET("/auth/user", func(c *gin.Context) {
		c.Set(middleware.UserIDKey, id.Hex())
	}, controller.Profile)

	req := httptest.NewRequest(http.MethodGet, "/auth/user", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if fake.lastID != id {
		t.Errorf("expected service called with token subject %s, got %s", id.Hex(), fake.lastID.Hex())
	}
}

func TestProfileWithoutSubject(t *testing.T) {
	router := newUserRouter(&fakeUserService{})

	req := httptest.NewRequest(http.MethodGet, "/auth/user", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", recorder.Code)
	}
}

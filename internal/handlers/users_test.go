package handlers

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"

	"github.com/odm275/dev-network/internal/middleware"
	"github.com/odm275/dev-network/internal/utils"
)

func TestRegisterSuccess(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.
		ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`)).
		WithArgs("ann@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.
		ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (id, name, email, avatar, password) VALUES ($1, $2, $3, $4, $5) RETURNING created_at`)).
		WithArgs(sqlmock.AnyArg(), "Ann", "ann@x.com", utils.GravatarURL("ann@x.com"), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	router := gin.New()
	router.POST("/api/users/register", newTestHandler(db).Register)

	resp := doJSON(router, http.MethodPost, "/api/users/register", map[string]string{
		"name":     "Ann",
		"email":    "Ann@x.com",
		"password": "secret1",
	})
	expectHTTP200(t, resp.Code)

	out := decodeBody(t, resp)
	if out["email"] != "ann@x.com" {
		t.Fatalf("expected normalized email, got %#v", out["email"])
	}
	if avatar, _ := out["avatar"].(string); avatar == "" {
		t.Fatalf("expected avatar to be set")
	}
	if _, exposed := out["password"]; exposed {
		t.Fatalf("password digest must not be serialized")
	}

	expectSQL(t, mock)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.
		ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM users WHERE email = \$1\)`).
		WithArgs("ann@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	router := gin.New()
	router.POST("/api/users/register", newTestHandler(db).Register)

	resp := doJSON(router, http.MethodPost, "/api/users/register", map[string]string{
		"name":     "Ann",
		"email":    "ann@x.com",
		"password": "secret1",
	})
	mustStatus(t, resp.Code, http.StatusConflict)
	if out := decodeBody(t, resp); out["code"] != "email_taken" {
		t.Fatalf("expected email_taken, got %#v", out["code"])
	}

	expectSQL(t, mock)
}

func TestRegisterValidationErrors(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.POST("/api/users/register", newTestHandler(db).Register)

	resp := doJSON(router, http.MethodPost, "/api/users/register", map[string]string{"email": "nope"})
	mustStatus(t, resp.Code, http.StatusBadRequest)

	out := decodeBody(t, resp)
	if out["code"] != "validation_failed" {
		t.Fatalf("expected validation_failed, got %#v", out["code"])
	}
	fields, _ := out["fields"].(map[string]any)
	for _, key := range []string{"name", "email", "password"} {
		if _, ok := fields[key]; !ok {
			t.Fatalf("expected field error for %q, got %#v", key, fields)
		}
	}

	expectSQL(t, mock)
}

func TestRegisterMalformedBody(t *testing.T) {
	db, _, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.POST("/api/users/register", newTestHandler(db).Register)

	req := httptest.NewRequest(http.MethodPost, "/api/users/register", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	mustStatus(t, resp.Code, http.StatusBadRequest)
}

func TestLoginSuccess(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	hashed, err := utils.HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	mock.
		ExpectQuery(regexp.QuoteMeta(`SELECT id, name, email, avatar, password, created_at FROM users WHERE email = $1`)).
		WithArgs("ann@x.com").
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "name", "email", "avatar", "password", "created_at"}).
				AddRow("u1", "Ann", "ann@x.com", "https://avatar", hashed, time.Now()),
		)

	router := gin.New()
	router.POST("/api/users/login", newTestHandler(db).Login)

	resp := doJSON(router, http.MethodPost, "/api/users/login", map[string]string{
		"email":    "Ann@x.com",
		"password": "secret1",
	})
	expectHTTP200(t, resp.Code)

	out := decodeBody(t, resp)
	if out["success"] != true {
		t.Fatalf("expected success=true")
	}
	token, _ := out["token"].(string)
	if !strings.HasPrefix(token, "Bearer ") {
		t.Fatalf("expected bearer token, got %q", token)
	}
	claims, err := utils.ValidateToken(strings.TrimPrefix(token, "Bearer "))
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.ID != "u1" || claims.Name != "Ann" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	expectSQL(t, mock)
}

func TestLoginWrongPassword(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	hashed, err := utils.HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	mock.
		ExpectQuery(`FROM users WHERE email = \$1`).
		WithArgs("ann@x.com").
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "name", "email", "avatar", "password", "created_at"}).
				AddRow("u1", "Ann", "ann@x.com", "https://avatar", hashed, time.Now()),
		)

	router := gin.New()
	router.POST("/api/users/login", newTestHandler(db).Login)

	resp := doJSON(router, http.MethodPost, "/api/users/login", map[string]string{
		"email":    "ann@x.com",
		"password": "secret2",
	})
	mustStatus(t, resp.Code, http.StatusUnauthorized)

	expectSQL(t, mock)
}

func TestCurrentUserThroughAuthMiddleware(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.
		ExpectQuery(`FROM users WHERE id = \$1`).
		WithArgs("u1").
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "name", "email", "avatar", "password", "created_at"}).
				AddRow("u1", "Ann", "ann@x.com", "https://avatar", "digest", time.Now()),
		)

	router := gin.New()
	router.GET("/api/users/current", middleware.AuthMiddleware(), newTestHandler(db).Current)

	token, err := utils.GenerateToken("u1", "Ann", "https://avatar")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/users/current", nil)
	req.Header.Set("Authorization", utils.BearerToken(token))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	expectHTTP200(t, resp.Code)

	out := decodeBody(t, resp)
	if out["id"] != "u1" || out["email"] != "ann@x.com" {
		t.Fatalf("unexpected current user: %#v", out)
	}

	unauth := httptest.NewRecorder()
	router.ServeHTTP(unauth, httptest.NewRequest(http.MethodGet, "/api/users/current", nil))
	mustStatus(t, unauth.Code, http.StatusUnauthorized)

	expectSQL(t, mock)
}

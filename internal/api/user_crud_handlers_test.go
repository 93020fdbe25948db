package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"innerlog/internal/cycle"
	"innerlog/internal/db"
	"innerlog/internal/profile"
	"innerlog/internal/storage"
	"innerlog/internal/user"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

func seedUser(t *testing.T, username string, role string) user.User {
	u := user.User{Username: username, PasswordHash: "hash", Role: user.Role(role), CreatedAt: time.Now()}
	if err := db.DB.Create(&u).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return u
}

func seedBlob(t *testing.T, key string) {
	t.Helper()
	rec := storage.Record{Key: key, Blob: datatypes.JSON([]byte(`{}`))}
	if err := db.DB.Create(&rec).Error; err != nil {
		t.Fatalf("failed to seed blob %q: %v", key, err)
	}
}

func countBlobs(t *testing.T, keys []string) int64 {
	t.Helper()
	var n int64
	if err := db.DB.Model(&storage.Record{}).Where("key IN ?", keys).Count(&n).Error; err != nil {
		t.Fatalf("failed to count blobs: %v", err)
	}
	return n
}

func asRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("role", role)
		c.Next()
	}
}

// POST /users [admin only]
func TestCreateUserHandler_Success(t *testing.T) {
	setupUserDB(t)
	resetUserTable(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(asRole("admin"))
	r.POST("/users", CreateUserHandler())
	payload := CreateUserRequest{Username: "newuser", DisplayName: "New User", Password: "pw"}
	b, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/users", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}
	if !contains(w.Body.String(), "newuser") || !contains(w.Body.String(), "New User") {
		t.Errorf("expected username and display name in response, got: %s", w.Body.String())
	}
}

func TestCreateUserHandler_MissingFields(t *testing.T) {
	setupUserDB(t)
	resetUserTable(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(asRole("admin"))
	r.POST("/users", CreateUserHandler())
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/users", bytes.NewReader([]byte(`{"username":""}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 Bad Request for missing fields, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateUserHandler_Forbidden(t *testing.T) {
	setupUserDB(t)
	resetUserTable(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(asRole("user"))
	r.POST("/users", CreateUserHandler())
	payload := CreateUserRequest{Username: "sneaky", Password: "pw"}
	b, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/users", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 Forbidden for non-admin, got %d: %s", w.Code, w.Body.String())
	}
}

// GET /users [admin only]
func TestListUsersHandler_ReturnsUsers(t *testing.T) {
	setupUserDB(t)
	resetUserTable(t)
	u1 := seedUser(t, "listuser1", "user")
	u2 := seedUser(t, "listuser2", "admin")
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(asRole("admin"))
	r.GET("/users", ListUsersHandler())
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/users", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK for list users, got %d: %s", w.Code, w.Body.String())
	}
	if !contains(w.Body.String(), u1.Username) || !contains(w.Body.String(), u2.Username) {
		t.Errorf("expected response to contain both usernames, got: %s", w.Body.String())
	}
}

// GET /users/me
func TestGetMeHandler(t *testing.T) {
	setupUserDB(t)
	resetUserTable(t)
	u := seedUser(t, "testuser", "user")
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", u.ID)
		c.Next()
	})
	r.GET("/users/me", GetMeHandler())
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/users/me", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	if !contains(w.Body.String(), "testuser") {
		t.Errorf("expected username in response, got: %s", w.Body.String())
	}
}

// PUT /users/me
func TestUpdateMeHandler(t *testing.T) {
	setupUserDB(t)
	resetUserTable(t)
	u := seedUser(t, "testuser", "user")
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", u.ID)
		c.Next()
	})
	r.PUT("/users/me", UpdateMeHandler())
	name := "Renamed"
	payload := UpdateMeRequest{DisplayName: &name, Password: "newpw"}
	b, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/users/me", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var u2 user.User
	if err := db.DB.First(&u2, u.ID).Error; err != nil {
		t.Fatalf("couldn't fetch updated user: %v", err)
	}
	if u2.DisplayName != "Renamed" {
		t.Errorf("display name not updated, got %q", u2.DisplayName)
	}
	if err := user.CheckPassword(u2.PasswordHash, "newpw"); err != nil {
		t.Errorf("password was not updated: %v", err)
	}
}

func TestUpdateMeHandler_OmittedFieldsKept(t *testing.T) {
	setupUserDB(t)
	resetUserTable(t)
	u := user.User{Username: "keepname", DisplayName: "Keep Me", PasswordHash: "hash", Role: user.RoleUser}
	if err := db.DB.Create(&u).Error; err != nil {
		t.Fatal(err)
	}
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", u.ID)
		c.Next()
	})
	r.PUT("/users/me", UpdateMeHandler())
	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/users/me", bytes.NewReader([]byte(`{"password":"onlypw"}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var u2 user.User
	if err := db.DB.First(&u2, u.ID).Error; err != nil {
		t.Fatal(err)
	}
	if u2.DisplayName != "Keep Me" {
		t.Errorf("omitted display name must keep its value, got %q", u2.DisplayName)
	}
}

// DELETE /users/me
func TestDeleteMeHandler_PurgesStoredData(t *testing.T) {
	setupUserDB(t)
	resetUserTable(t)
	u := seedUser(t, "todelete", "user")
	keys := []string{profile.StorageKey(u.ID), cycle.StorageKey(u.ID)}
	for _, k := range keys {
		seedBlob(t, k)
	}
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", u.ID)
		c.Next()
	})
	r.DELETE("/users/me", DeleteMeHandler(nil))
	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/users/me", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var count int64
	db.DB.Model(&user.User{}).Where("id = ?", u.ID).Count(&count)
	if count != 0 {
		t.Error("user was not deleted")
	}
	if n := countBlobs(t, keys); n != 0 {
		t.Errorf("expected profile and cycle blobs purged, %d left", n)
	}
}

// DELETE /users/:id [admin only]
func TestDeleteUserByIdHandler_Admin(t *testing.T) {
	setupUserDB(t)
	resetUserTable(t)
	_ = seedUser(t, "admin", "admin")
	target := seedUser(t, "target", "user")
	keys := []string{profile.StorageKey(target.ID), cycle.StorageKey(target.ID)}
	for _, k := range keys {
		seedBlob(t, k)
	}
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(asRole("admin"))
	r.DELETE("/users/:id", DeleteUserByIdHandler(nil))
	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/users/"+toStrUint(target.ID), nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var count int64
	db.DB.Model(&user.User{}).Where("id = ?", target.ID).Count(&count)
	if count != 0 {
		t.Error("user was not deleted by admin")
	}
	if n := countBlobs(t, keys); n != 0 {
		t.Errorf("expected target's blobs purged, %d left", n)
	}
}

// DELETE /users/:id [forbidden if not admin]
func TestDeleteUserByIdHandler_Forbidden(t *testing.T) {
	setupUserDB(t)
	resetUserTable(t)
	target := seedUser(t, "target", "user")
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(asRole("user"))
	r.DELETE("/users/:id", DeleteUserByIdHandler(nil))
	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/users/"+toStrUint(target.ID), nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 Forbidden, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDeleteUserByIdHandler_NotFound(t *testing.T) {
	setupUserDB(t)
	resetUserTable(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(asRole("admin"))
	r.DELETE("/users/:id", DeleteUserByIdHandler(nil))
	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/users/424242", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 Not Found, got %d: %s", w.Code, w.Body.String())
	}
}

// Helper: uint to string
func toStrUint(x uint) string {
	return fmt.Sprintf("%d", x)
}

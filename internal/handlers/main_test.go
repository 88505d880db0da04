package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/trackline-dev/trackline/db"
	"github.com/trackline-dev/trackline/internal/auth"
	"github.com/trackline-dev/trackline/internal/router"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTest wires the full router against a fresh in-memory database. The
// global db handle is swapped per test, so tests must not run in parallel.
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	require.NoError(t, auth.Init("test-secret", time.Hour))

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))

	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			sqlDB.Close()
		}
	})

	db.DB = gormDB
	require.NoError(t, db.MigrateDatabase())

	return router.NewRouter()
}

func performRequest(r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest), "body: %s", w.Body.String())
}

type testUser struct {
	ID    string
	Token string
}

type userJSON struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type projectJSON struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Owner       userJSON   `json:"owner"`
	Members     []userJSON `json:"members"`
}

type ticketJSON struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Project     struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"project"`
	CreatedBy  userJSON `json:"created_by"`
	AssignedTo userJSON `json:"assigned_to"`
}

type commentJSON struct {
	ID       string `json:"id"`
	TicketID string `json:"ticket_id"`
	Author   struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

func registerUser(t *testing.T, r http.Handler, name, email string) testUser {
	t.Helper()

	w := performRequest(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     name,
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	var resp struct {
		Token string   `json:"token"`
		User  userJSON `json:"user"`
	}
	decodeBody(t, w, &resp)

	require.NotEmpty(t, resp.Token)
	require.NotEmpty(t, resp.User.ID)

	return testUser{ID: resp.User.ID, Token: resp.Token}
}

func createProject(t *testing.T, r http.Handler, owner testUser, name string, memberIDs ...string) projectJSON {
	t.Helper()

	w := performRequest(r, http.MethodPost, "/api/projects", owner.Token, gin.H{
		"name":    name,
		"members": memberIDs,
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	var resp projectJSON
	decodeBody(t, w, &resp)
	return resp
}

func createTicket(t *testing.T, r http.Handler, user testUser, projectID, title string, overrides gin.H) ticketJSON {
	t.Helper()

	body := gin.H{"title": title, "project_id": projectID}
	for key, value := range overrides {
		body[key] = value
	}

	w := performRequest(r, http.MethodPost, "/api/tickets", user.Token, body)
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	var resp ticketJSON
	decodeBody(t, w, &resp)
	return resp
}

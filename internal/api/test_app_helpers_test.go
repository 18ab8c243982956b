package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cyclecare/internal/db"
	"github.com/terraincognita07/cyclecare/internal/security"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

type testApp struct {
	app     *fiber.App
	handler *Handler
	token   string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "cyclecare-api-test.db"), nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	tokenKey, err := security.DeriveTokenKey(testSecretKey)
	if err != nil {
		t.Fatalf("derive token key: %v", err)
	}
	handler, err := NewHandler(database, tokenKey, time.UTC, nil)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	userID, err := handler.community.EnsureUserID(context.Background())
	if err != nil {
		t.Fatalf("ensure user id: %v", err)
	}
	token, err := security.IssueDeviceToken(tokenKey, userID, time.Now(), time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	return &testApp{app: app, handler: handler, token: token}
}

func (ta *testApp) do(t *testing.T, method string, path string, body string) (*http.Response, []byte) {
	t.Helper()
	return ta.doWithToken(t, method, path, body, ta.token)
}

func (ta *testApp) doWithToken(t *testing.T, method string, path string, body string, token string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, path, reader)
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := ta.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return response, payload
}

func decodeJSON(t *testing.T, payload []byte, target any) {
	t.Helper()
	if err := json.Unmarshal(payload, target); err != nil {
		t.Fatalf("decode response %q: %v", string(payload), err)
	}
}

func expectStatus(t *testing.T, response *http.Response, payload []byte, want int) {
	t.Helper()
	if response.StatusCode != want {
		t.Fatalf("expected status %d, got %d: %s", want, response.StatusCode, string(payload))
	}
}

package testserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"portfolio_backend/internal/app"
	"portfolio_backend/internal/config"
	"portfolio_backend/internal/services"
	"portfolio_backend/internal/testutil"

	"gorm.io/gorm"
)

const (
	// FallbackPassword - admin.password тестового конфига
	FallbackPassword = "fallback-secret"
	OwnerEmail       = "owner@example.com"
	StorageBaseURL   = "http://localhost/storage"
)

// TestServer - приложение целиком поверх in-memory sqlite и временного каталога
type TestServer struct {
	Server     *httptest.Server
	Client     *http.Client
	DB         *gorm.DB
	Config     *config.Config
	Services   *services.ServiceContainer
	StorageDir string
}

// File - файл для multipart запроса
type File struct {
	Field       string
	Name        string
	ContentType string
	Content     []byte
}

// New собирает роутер так же, как app.Run, но без сети и внешних сервисов
func New(t *testing.T) *TestServer {
	t.Helper()

	db := testutil.NewTestDB(t)
	storageDir := t.TempDir()

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	cfgYAML := fmt.Sprintf(`server:
  env: test
database:
  driver: sqlite
  url: "file::memory:"
admin:
  password: %q
session:
  secret: "test-session-secret"
storage:
  type: local
  base_path: %q
  base_url: %q
contact:
  owner_email: %q
`, FallbackPassword, storageDir, StorageBaseURL, OwnerEmail)
	if err := os.WriteFile(cfgPath, []byte(cfgYAML), 0o600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("failed to load test config: %v", err)
	}

	router, container := app.SetupRouter(cfg, db)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to create cookie jar: %v", err)
	}
	client := server.Client()
	client.Jar = jar

	return &TestServer{
		Server:     server,
		Client:     client,
		DB:         db,
		Config:     cfg,
		Services:   container,
		StorageDir: storageDir,
	}
}

// SendRequest отправляет JSON (или пустое тело) с cookie клиента
func (ts *TestServer) SendRequest(t *testing.T, method, path string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return ts.do(t, req)
}

// SendMultipart отправляет форму с файлами
func (ts *TestServer) SendMultipart(t *testing.T, method, path string, fields map[string]string, files ...File) (*http.Response, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("failed to write field %s: %v", k, err)
		}
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.Field, f.Name))
		if f.ContentType != "" {
			h.Set("Content-Type", f.ContentType)
		}
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("failed to create file part: %v", err)
		}
		if _, err := part.Write(f.Content); err != nil {
			t.Fatalf("failed to write file part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return ts.do(t, req)
}

// Login входит резервным паролем; cookie остается в Client
func (ts *TestServer) Login(t *testing.T) {
	t.Helper()

	res, body := ts.SendRequest(t, http.MethodPost, "/admin/login", map[string]string{"password": FallbackPassword})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d %s", res.StatusCode, body)
	}
}

// Decode разбирает JSON ответа
func Decode(t *testing.T, body string) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		t.Fatalf("response is not a JSON object: %v (%s)", err, body)
	}
	return out
}

func (ts *TestServer) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()

	res, err := ts.Client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return res, string(resBody)
}

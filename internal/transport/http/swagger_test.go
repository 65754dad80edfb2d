package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestSwaggerServesYAMLAsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swagger.yaml")
	if err := os.WriteFile(path, []byte("swagger: \"2.0\"\ninfo:\n  title: Wanderly API\n"), 0o600); err != nil {
		t.Fatalf("write spec: %v", err)
	}

	e := echo.New()
	RegisterSwagger(e, path)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Info.Title != "Wanderly API" {
		t.Fatalf("unexpected title %q", doc.Info.Title)
	}
}

func TestSwaggerMissingSpec(t *testing.T) {
	e := echo.New()
	RegisterSwagger(e, filepath.Join(t.TempDir(), "missing.yaml"))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

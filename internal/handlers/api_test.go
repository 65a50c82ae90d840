package handlers

import (
	"encoding/csv"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"sales-dashboard/internal/dataset/datasettest"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/services"
)

func createTestAnalytics(t *testing.T) *services.Analytics {
	t.Helper()
	return services.NewAnalytics(datasettest.Scenario(t), testLogger())
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

type envelope[T any] struct {
	Data    T    `json:"data"`
	Success bool `json:"success"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var resp envelope[T]
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return resp
}

func TestNewAPIHandlers(t *testing.T) {
	analytics := createTestAnalytics(t)
	logger := slog.Default()
	handlers := NewAPIHandlers(analytics, logger)

	if handlers == nil {
		t.Fatal("NewAPIHandlers() returned nil")
	}
	if handlers.analytics != analytics {
		t.Error("NewAPIHandlers() should set analytics field")
	}
}

func TestAPIHandlers_HandleDashboard(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(t), testLogger())

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantCode   string
		wantEmpty  bool
		wantTotal  string
		wantRows   int
	}{
		{"defaults", "", http.StatusOK, "", false, "US $ 350", 3},
		{"scenario", "?city=CityA&start=2023-01-01&end=2023-01-02", http.StatusOK, "", false, "US $ 150", 2},
		{"comma separated", "?city=CityA,CityB&gender=Female", http.StatusOK, "", false, "US $ 50", 1},
		{"empty city set", "?city=", http.StatusOK, "", true, "", 0},
		{"unknown city", "?city=Atlantis", http.StatusOK, "", true, "", 0},
		{"inverted range", "?start=2023-01-03&end=2023-01-01", http.StatusBadRequest, "VALIDATION_ERROR", false, "", 0},
		{"malformed date", "?start=01/02/2023", http.StatusBadRequest, "VALIDATION_ERROR", false, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/dashboard"+tt.query, nil)
			w := httptest.NewRecorder()

			handlers.HandleDashboard(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			resp := decode[models.ViewModel](t, w)
			if tt.wantCode != "" {
				if resp.Error == nil || resp.Error.Code != tt.wantCode {
					t.Errorf("expected error code %s, got %+v", tt.wantCode, resp.Error)
				}
				return
			}

			if resp.Data.Empty != tt.wantEmpty {
				t.Errorf("empty = %v, want %v", resp.Data.Empty, tt.wantEmpty)
			}
			if resp.Data.RowCount != tt.wantRows {
				t.Errorf("row_count = %d, want %d", resp.Data.RowCount, tt.wantRows)
			}
			if tt.wantEmpty {
				if resp.Data.Notice != services.NoDataNotice {
					t.Errorf("notice = %q", resp.Data.Notice)
				}
				return
			}
			if got := resp.Data.KPIs[0].Value; got != tt.wantTotal {
				t.Errorf("total sales = %q, want %q", got, tt.wantTotal)
			}
		})
	}
}

func TestAPIHandlers_HandleOptions(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(t), testLogger())

	w := httptest.NewRecorder()
	handlers.HandleOptions(w, httptest.NewRequest(http.MethodGet, "/api/options", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if cc := w.Header().Get("Cache-Control"); cc != "public, max-age=300" {
		t.Errorf("unexpected Cache-Control %q", cc)
	}

	resp := decode[models.FilterOptions](t, w)
	if strings.Join(resp.Data.Cities, ",") != "CityA,CityB" {
		t.Errorf("cities = %v", resp.Data.Cities)
	}
	if strings.Join(resp.Data.Genders, ",") != "Male,Female" {
		t.Errorf("genders = %v", resp.Data.Genders)
	}
	if got := resp.Data.MaxDate.Format(models.DateLayout); got != "2023-01-03" {
		t.Errorf("max date = %s", got)
	}
}

func TestAPIHandlers_HandleExport(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(t), testLogger())

	t.Run("csv attachment", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/export/filtered_sales_data.csv?city=CityA", nil)
		w := httptest.NewRecorder()

		handlers.HandleExport(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}
		if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
			t.Errorf("Content-Type = %q", ct)
		}
		if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="filtered_sales_data.csv"` {
			t.Errorf("Content-Disposition = %q", cd)
		}

		records, err := csv.NewReader(w.Body).ReadAll()
		if err != nil {
			t.Fatalf("invalid csv: %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("expected header and 2 rows, got %d records", len(records))
		}
		if records[0][0] != "Invoice ID" || records[0][len(records[0])-1] != "hour" {
			t.Errorf("unexpected header %v", records[0])
		}
	})

	t.Run("empty subset", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/export/filtered_sales_data.csv?gender=", nil)
		w := httptest.NewRecorder()

		handlers.HandleExport(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", w.Code)
		}
		resp := decode[any](t, w)
		if resp.Error == nil || resp.Error.Code != "NO_DATA" {
			t.Errorf("expected NO_DATA error, got %+v", resp.Error)
		}
		if w.Header().Get("Content-Disposition") != "" {
			t.Error("no attachment should be offered for an empty subset")
		}
	})

	t.Run("invalid selection", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/export/filtered_sales_data.csv?end=yesterday", nil)
		w := httptest.NewRecorder()

		handlers.HandleExport(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", w.Code)
		}
	})
}

func TestAPIHandlers_HandleHealth(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(t), testLogger())

	w := httptest.NewRecorder()
	handlers.HandleHealth(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	resp := decode[map[string]any](t, w)
	if resp.Data["status"] != "healthy" {
		t.Errorf("status = %v", resp.Data["status"])
	}
	if resp.Data["records"] != float64(3) {
		t.Errorf("records = %v", resp.Data["records"])
	}
	if resp.Data["version"] != Version {
		t.Errorf("version = %v", resp.Data["version"])
	}
}

func TestAPIHandlers_HandleStats(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(t), testLogger())

	w := httptest.NewRecorder()
	handlers.HandleStats(w, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))

	resp := decode[map[string]any](t, w)
	if !resp.Success {
		t.Fatal("expected success")
	}
	for _, key := range []string{"record_count", "cities", "min_date", "max_date", "renders", "exports"} {
		if _, ok := resp.Data[key]; !ok {
			t.Errorf("stats missing %q", key)
		}
	}
}

func TestAPIHandlers_HandleNotFound(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(t), testLogger())

	w := httptest.NewRecorder()
	handlers.HandleNotFound(w, httptest.NewRequest(http.MethodGet, "/api/revenue", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
	resp := decode[any](t, w)
	if resp.Success || resp.Error == nil {
		t.Fatalf("expected error envelope, got %s", w.Body.String())
	}
	if resp.Error.Code != "NOT_FOUND" {
		t.Errorf("code = %s, want NOT_FOUND", resp.Error.Code)
	}
	if !strings.Contains(resp.Error.Message, "/api/revenue") {
		t.Errorf("message %q should name the path", resp.Error.Message)
	}
}

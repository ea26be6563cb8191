package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/tableside-pos/api/internal/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	tests := []struct {
		name   string
		status int
		level  zapcore.Level
	}{
		{"ok", http.StatusOK, zapcore.InfoLevel},
		{"client error", http.StatusUnprocessableEntity, zapcore.WarnLevel},
		{"upstream failure", http.StatusBadGateway, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := middleware.RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/outlets/x/checkout/quote", nil))

			entries := logs.TakeAll()
			if len(entries) != 1 {
				t.Fatalf("log entries: got %d, want 1", len(entries))
			}
			if entries[0].Level != tt.level {
				t.Errorf("level: got %v, want %v", entries[0].Level, tt.level)
			}
			fields := entries[0].ContextMap()
			if fields["status"] != int64(tt.status) {
				t.Errorf("status field: got %v, want %d", fields["status"], tt.status)
			}
			if fields["path"] != "/outlets/x/checkout/quote" {
				t.Errorf("path field: got %v", fields["path"])
			}
		})
	}
}

func TestRequestLogger_NamesEmployee(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	e := employee(uuid.New(), "CASHIER")

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(zap.New(core)))
	r.Use(middleware.Authenticate(testSecret, staff(e)))
	r.Get("/till", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	rr := get(r, "/till", tokenFor(t, e, "CASHIER"))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status: got %d", rr.Code)
	}

	entries := logs.TakeAll()
	if len(entries) != 1 {
		t.Fatalf("log entries: got %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["employee_id"] != e.ID.String() {
		t.Errorf("employee_id field: got %v, want %s", fields["employee_id"], e.ID)
	}
	if fields["role"] != "CASHIER" {
		t.Errorf("role field: got %v", fields["role"])
	}

	// Rejected requests carry no employee.
	get(r, "/till", "")
	entries = logs.TakeAll()
	if len(entries) != 1 {
		t.Fatalf("log entries: got %d, want 1", len(entries))
	}
	if _, ok := entries[0].ContextMap()["employee_id"]; ok {
		t.Error("unauthenticated request logged an employee_id")
	}
}

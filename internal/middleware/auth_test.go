package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tableside-pos/api/internal/auth"
	"github.com/tableside-pos/api/internal/database"
	"github.com/tableside-pos/api/internal/middleware"
)

const testSecret = "test-secret"

type employeeStore struct {
	employees map[uuid.UUID]database.Employee
	err       error
}

func (s *employeeStore) GetEmployeeForLogin(_ context.Context, id uuid.UUID) (database.Employee, error) {
	if s.err != nil {
		return database.Employee{}, s.err
	}
	e, ok := s.employees[id]
	if !ok || !e.IsActive {
		return database.Employee{}, pgx.ErrNoRows
	}
	return e, nil
}

func staff(employees ...database.Employee) *employeeStore {
	s := &employeeStore{employees: make(map[uuid.UUID]database.Employee)}
	for _, e := range employees {
		s.employees[e.ID] = e
	}
	return s
}

func employee(outletID uuid.UUID, role string) database.Employee {
	return database.Employee{ID: uuid.New(), OutletID: outletID, FullName: "Sam Till", Role: role, IsActive: true}
}

func tokenFor(t *testing.T, e database.Employee, role string) string {
	t.Helper()
	token, err := auth.GenerateToken(testSecret, e.ID, e.OutletID, role)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

// outletRouter serves GET /outlets/{oid}/till behind Authenticate and RequireOutlet.
func outletRouter(store middleware.EmployeeStore, extra ...func(http.Handler) http.Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Authenticate(testSecret, store))
	r.Route("/outlets/{oid}", func(r chi.Router) {
		r.Use(middleware.RequireOutlet)
		r.With(extra...).Get("/till", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Role", middleware.ClaimsFromContext(r.Context()).Role)
			w.WriteHeader(http.StatusOK)
		})
	})
	return r
}

func get(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func tillPath(outletID uuid.UUID) string {
	return "/outlets/" + outletID.String() + "/till"
}

func TestAuthenticate_ActiveEmployee(t *testing.T) {
	cashier := employee(uuid.New(), "CASHIER")
	r := outletRouter(staff(cashier))

	rr := get(r, tillPath(cashier.OutletID), tokenFor(t, cashier, "CASHIER"))
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d; body: %s", rr.Code, rr.Body.String())
	}
	if rr.Header().Get("X-Role") != "CASHIER" {
		t.Errorf("role: got %q", rr.Header().Get("X-Role"))
	}
}

func TestAuthenticate_RoleComesFromEmployee(t *testing.T) {
	// Demoted after the token was issued.
	e := employee(uuid.New(), "WAITER")
	r := outletRouter(staff(e))

	rr := get(r, tillPath(e.OutletID), tokenFor(t, e, "OWNER"))
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	if got := rr.Header().Get("X-Role"); got != "WAITER" {
		t.Errorf("role: got %q, want WAITER", got)
	}
}

func TestAuthenticate_Rejects(t *testing.T) {
	outletID := uuid.New()
	active := employee(outletID, "CASHIER")
	inactive := employee(outletID, "CASHIER")
	inactive.IsActive = false
	moved := employee(uuid.New(), "CASHIER")
	store := staff(active, inactive, moved)
	r := outletRouter(store)

	// moved's token still names the outlet it was issued at.
	movedToken, _ := auth.GenerateToken(testSecret, moved.ID, outletID, "CASHIER")
	unknownToken, _ := auth.GenerateToken(testSecret, uuid.New(), outletID, "CASHIER")
	foreignToken, _ := auth.GenerateToken("another-secret", active.ID, outletID, "CASHIER")

	tests := []struct {
		name  string
		token string
	}{
		{"missing token", ""},
		{"malformed token", "not-a-jwt"},
		{"wrong secret", foreignToken},
		{"unknown employee", unknownToken},
		{"inactive employee", tokenFor(t, inactive, "CASHIER")},
		{"employee moved outlet", movedToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := get(r, tillPath(outletID), tt.token)
			if rr.Code != http.StatusUnauthorized {
				t.Errorf("status: got %d, want 401", rr.Code)
			}
		})
	}
}

func TestAuthenticate_BasicSchemeRejected(t *testing.T) {
	e := employee(uuid.New(), "CASHIER")
	r := outletRouter(staff(e))

	req := httptest.NewRequest("GET", tillPath(e.OutletID), nil)
	req.Header.Set("Authorization", "Basic "+tokenFor(t, e, "CASHIER"))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rr.Code)
	}
}

func TestAuthenticate_StoreFailure(t *testing.T) {
	e := employee(uuid.New(), "CASHIER")
	store := staff(e)
	store.err = errors.New("connection refused")
	r := outletRouter(store)

	rr := get(r, tillPath(e.OutletID), tokenFor(t, e, "CASHIER"))
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rr.Code)
	}
}

func TestRequireOutlet(t *testing.T) {
	home := uuid.New()
	cashier := employee(home, "CASHIER")
	owner := employee(home, "OWNER")
	r := outletRouter(staff(cashier, owner))

	tests := []struct {
		name string
		e    database.Employee
		path string
		want int
	}{
		{"own outlet", cashier, tillPath(home), http.StatusOK},
		{"other outlet", cashier, tillPath(uuid.New()), http.StatusForbidden},
		{"owner at other outlet", owner, tillPath(uuid.New()), http.StatusForbidden},
		{"bad outlet id", cashier, "/outlets/not-a-uuid/till", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := get(r, tt.path, tokenFor(t, tt.e, tt.e.Role))
			if rr.Code != tt.want {
				t.Errorf("status: got %d, want %d", rr.Code, tt.want)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	outletID := uuid.New()
	tests := []struct {
		role string
		want int
	}{
		{"OWNER", http.StatusOK},
		{"MANAGER", http.StatusOK},
		{"CASHIER", http.StatusForbidden},
		{"WAITER", http.StatusForbidden},
		{"DRIVER", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			e := employee(outletID, tt.role)
			r := outletRouter(staff(e), middleware.RequireRole("MANAGER"))

			rr := get(r, tillPath(outletID), tokenFor(t, e, tt.role))
			if rr.Code != tt.want {
				t.Errorf("status: got %d, want %d", rr.Code, tt.want)
			}
		})
	}
}

func TestRequireRole_WithoutSession(t *testing.T) {
	h := middleware.RequireRole("CASHIER")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rr.Code)
	}
}

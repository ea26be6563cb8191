package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tableside-pos/api/internal/auth"
	"github.com/tableside-pos/api/internal/config"
	"github.com/tableside-pos/api/internal/database"
	"github.com/tableside-pos/api/internal/metrics"
	"github.com/tableside-pos/api/internal/router"
	"github.com/tableside-pos/api/internal/service"
	"github.com/tableside-pos/api/internal/ws"
	"go.uber.org/zap"
)

type nopDispatcher struct{}

func (nopDispatcher) Dispatch(context.Context, service.Session, service.Checkout) (*service.Result, error) {
	return &service.Result{}, nil
}

func (nopDispatcher) OpenPhoneOrder(context.Context, service.Session, *service.Guest, []service.OrderItem) (service.CreatedOrder, error) {
	return service.CreatedOrder{ID: 1, UUID: uuid.New()}, nil
}

// fakeStore knows one employee and no surcharges. Any other query panics
// on the nil embedded Store.
type fakeStore struct {
	router.Store
	employee database.Employee
}

func (s *fakeStore) GetEmployeeForLogin(_ context.Context, id uuid.UUID) (database.Employee, error) {
	if id != s.employee.ID {
		return database.Employee{}, pgx.ErrNoRows
	}
	return s.employee, nil
}

func (s *fakeStore) ListSurcharges(context.Context, uuid.UUID) ([]database.Surcharge, error) {
	return nil, nil
}

var testCashier = database.Employee{
	ID:       uuid.MustParse("7d3c1a2b-0000-4000-8000-000000000001"),
	OutletID: uuid.MustParse("7d3c1a2b-0000-4000-8000-0000000000aa"),
	FullName: "Casey",
	Role:     "CASHIER",
	IsActive: true,
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{JWTSecret: "router-test-secret", CORSOrigins: []string{"http://localhost:3000"}}
	return router.New(cfg, &fakeStore{employee: testCashier}, nopDispatcher{}, ws.NewHub(zap.NewNop()), metrics.New(), zap.NewNop())
}

func cashierToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GenerateToken("router-test-secret", testCashier.ID, testCashier.OutletID, testCashier.Role)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", rr.Body.String())
	}
}

func TestMetricsExposesRequests(t *testing.T) {
	r := newTestRouter(t)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/health", nil))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `pos_http_requests_total{method="GET",route="/health",status="200"} 1`) {
		t.Errorf("health request not counted:\n%s", rr.Body.String())
	}
}

func TestOutletRoutesRequireAuth(t *testing.T) {
	r := newTestRouter(t)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("POST", "/outlets/"+uuid.NewString()+"/checkout/quote", strings.NewReader(`{}`)))

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rr.Code)
	}
}

func TestOutletRoutesRejectOtherOutlet(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest("GET", "/outlets/"+uuid.NewString()+"/surcharges", nil)
	req.Header.Set("Authorization", "Bearer "+cashierToken(t))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want 403", rr.Code)
	}
}

func TestQuoteThroughRouter(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest("POST", "/outlets/"+testCashier.OutletID.String()+"/checkout/quote", strings.NewReader(`{"subtotal":"50","tip":"5"}`))
	req.Header.Set("Authorization", "Bearer "+cashierToken(t))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d; body: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"total":"55.00"`) {
		t.Errorf("body = %s", rr.Body.String())
	}
}

func TestUnknownEmployeeRejected(t *testing.T) {
	r := newTestRouter(t)
	token, err := auth.GenerateToken("router-test-secret", uuid.New(), testCashier.OutletID, "OWNER")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	req := httptest.NewRequest("POST", "/outlets/"+testCashier.OutletID.String()+"/checkout/quote", strings.NewReader(`{"subtotal":"50"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rr.Code)
	}
}

func TestPhoneOrderIntakeRoute(t *testing.T) {
	r := newTestRouter(t)

	body := `{"items":[{"product_id":"` + uuid.NewString() + `","name":"Pad thai","quantity":2,"unit_price":"18.50"}]}`
	req := httptest.NewRequest("POST", "/outlets/"+testCashier.OutletID.String()+"/phone-orders", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+cashierToken(t))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d; body: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"subtotal":"37.00"`) {
		t.Errorf("body = %s", rr.Body.String())
	}
}

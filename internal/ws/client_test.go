package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/tableside-pos/api/internal/auth"
	"github.com/tableside-pos/api/internal/service"
	"go.uber.org/zap"
)

const testJWTSecret = "ws-test-secret"

func newWSServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Get("/ws/outlets/{oid}/notifications", func(w http.ResponseWriter, r *http.Request) {
		ServeWS(hub, testJWTSecret, w, r)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server, outletID uuid.UUID, token string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/outlets/" + outletID.String() + "/notifications?token=" + token
}

func TestServeWS_DeliversNotifications(t *testing.T) {
	hub := startHub(t)
	srv := newWSServer(t, hub)

	outletID := uuid.New()
	token, err := auth.GenerateToken(testJWTSecret, uuid.New(), outletID, "CASHIER")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, outletID, token), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(time.Second)
	for hub.Clients(outletID) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	hub.Notify(context.Background(), outletID, service.Notification{Title: "Payment successful", Variant: "success"})

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var event Event
	if err := json.Unmarshal(msg, &event); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if event.Type != EventNotification {
		t.Errorf("type = %s, want %s", event.Type, EventNotification)
	}
}

func TestServeWS_Rejects(t *testing.T) {
	hub := startHub(t)
	srv := newWSServer(t, hub)

	outletID := uuid.New()
	otherOutlet, _ := auth.GenerateToken(testJWTSecret, uuid.New(), uuid.New(), "CASHIER")
	otherOwner, _ := auth.GenerateToken(testJWTSecret, uuid.New(), uuid.New(), "OWNER")

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"missing token", "", http.StatusUnauthorized},
		{"bad token", "not-a-jwt", http.StatusUnauthorized},
		{"other outlet", otherOutlet, http.StatusForbidden},
		{"owner of another outlet", otherOwner, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, outletID, tt.token), nil)
			if err == nil {
				t.Fatal("expected dial to fail")
			}
			if resp == nil || resp.StatusCode != tt.want {
				t.Fatalf("status = %v, want %d", resp, tt.want)
			}
		})
	}
}

func TestServeWS_HubStopped(t *testing.T) {
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	srv := newWSServer(t, hub)
	outletID := uuid.New()
	token, _ := auth.GenerateToken(testJWTSecret, uuid.New(), outletID, "CASHIER")

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, outletID, token), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// The server closes the connection instead of hanging the handler.
	conn.SetReadDeadline(time.Now().Add(time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("expected the connection to be closed")
	} else if ne, ok := err.(interface{ Timeout() bool }); ok && ne.Timeout() {
		t.Fatal("connection was left open")
	}
}

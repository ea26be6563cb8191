package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tableside-pos/api/internal/auth"
	"github.com/tableside-pos/api/internal/database"
	"github.com/tableside-pos/api/internal/enum"
)

// EmployeeStore looks up the employee behind a session token.
// Satisfied by *database.Queries.
type EmployeeStore interface {
	GetEmployeeForLogin(ctx context.Context, id uuid.UUID) (database.Employee, error)
}

type ctxKey int

const (
	sessionKey ctxKey = iota
	logEntryKey
)

// Authenticate accepts a bearer token only while its employee is active at
// the outlet the token was issued for. The session carries the employee's
// current role, not the one signed into the token.
func Authenticate(jwtSecret string, employees EmployeeStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			claims, err := auth.ValidateToken(jwtSecret, token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			emp, err := employees.GetEmployeeForLogin(r.Context(), claims.EmployeeID)
			if errors.Is(err, pgx.ErrNoRows) {
				writeError(w, http.StatusUnauthorized, "employee is not active")
				return
			}
			if err != nil {
				writeError(w, http.StatusInternalServerError, "internal server error")
				return
			}
			if !emp.IsActive || emp.OutletID != claims.OutletID {
				writeError(w, http.StatusUnauthorized, "session is no longer valid")
				return
			}

			session := &auth.Claims{
				EmployeeID:       emp.ID,
				OutletID:         emp.OutletID,
				Role:             emp.Role,
				RegisteredClaims: claims.RegisteredClaims,
			}
			if entry, ok := r.Context().Value(logEntryKey).(*logEntry); ok {
				entry.session = session
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, session)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
		return "", false
	}
	return token, true
}

// RequireOutlet limits a session to the {oid} it signed in at. A PIN
// session is bound to one till, so owners get no cross-outlet access here.
func RequireOutlet(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := ClaimsFromContext(r.Context())
		if session == nil {
			writeError(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		oid, err := uuid.Parse(chi.URLParam(r, "oid"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid outlet ID")
			return
		}
		if session.OutletID != oid {
			writeError(w, http.StatusForbidden, "access denied for this outlet")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole admits sessions ranked at or above minimum.
func RequireRole(minimum string) func(http.Handler) http.Handler {
	need := enum.RoleRank(minimum)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := ClaimsFromContext(r.Context())
			if session == nil {
				writeError(w, http.StatusUnauthorized, "not authenticated")
				return
			}
			if enum.RoleRank(session.Role) < need {
				writeError(w, http.StatusForbidden, "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClaimsFromContext returns the session set by Authenticate, or nil.
func ClaimsFromContext(ctx context.Context) *auth.Claims {
	session, _ := ctx.Value(sessionKey).(*auth.Claims)
	return session
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

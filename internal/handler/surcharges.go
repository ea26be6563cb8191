package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tableside-pos/api/internal/database"
	"github.com/tableside-pos/api/internal/enum"
	"github.com/tableside-pos/api/internal/middleware"
	"go.uber.org/zap"
)

// SurchargeStore defines the database methods needed by surcharge handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type SurchargeStore interface {
	ListSurcharges(ctx context.Context, outletID uuid.UUID) ([]database.Surcharge, error)
	GetSurcharge(ctx context.Context, arg database.GetSurchargeParams) (database.Surcharge, error)
	CreateSurcharge(ctx context.Context, arg database.CreateSurchargeParams) (database.Surcharge, error)
	UpdateSurcharge(ctx context.Context, arg database.UpdateSurchargeParams) (database.Surcharge, error)
}

// SurchargeHandler manages an outlet's surcharges.
type SurchargeHandler struct {
	store  SurchargeStore
	logger *zap.Logger
}

// NewSurchargeHandler creates a new SurchargeHandler.
func NewSurchargeHandler(store SurchargeStore, logger *zap.Logger) *SurchargeHandler {
	return &SurchargeHandler{store: store, logger: logger}
}

// RegisterRoutes registers surcharge endpoints on the given Chi router.
// Expected to be mounted at /outlets/{oid}/surcharges
func (h *SurchargeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(enum.UserRoleManager))
		r.Post("/", h.Create)
		r.Patch("/{id}", h.Update)
	})
}

// --- Request / Response types ---

type createSurchargeRequest struct {
	Name     string `json:"name"`
	Rate     string `json:"rate"`
	IsActive *bool  `json:"is_active"`
}

type updateSurchargeRequest struct {
	Name     *string `json:"name"`
	Rate     *string `json:"rate"`
	IsActive *bool   `json:"is_active"`
}

type surchargeResponse struct {
	ID        uuid.UUID `json:"id"`
	OutletID  uuid.UUID `json:"outlet_id"`
	Name      string    `json:"name"`
	Rate      string    `json:"rate"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toSurchargeResponse(s database.Surcharge) surchargeResponse {
	return surchargeResponse{
		ID:        s.ID,
		OutletID:  s.OutletID,
		Name:      s.Name,
		Rate:      database.Decimal(s.Rate).String(),
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// --- Handlers ---

// List handles GET /outlets/{oid}/surcharges.
func (h *SurchargeHandler) List(w http.ResponseWriter, r *http.Request) {
	outletID, err := uuid.Parse(chi.URLParam(r, "oid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid outlet ID"})
		return
	}

	rows, err := h.store.ListSurcharges(r.Context(), outletID)
	if err != nil {
		h.logger.Error("list surcharges", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]surchargeResponse, len(rows))
	for i, s := range rows {
		resp[i] = toSurchargeResponse(s)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create handles POST /outlets/{oid}/surcharges. New surcharges are active
// unless is_active is false.
func (h *SurchargeHandler) Create(w http.ResponseWriter, r *http.Request) {
	outletID, err := uuid.Parse(chi.URLParam(r, "oid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid outlet ID"})
		return
	}

	var req createSurchargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	rate, err := parsePercent(req.Rate)
	if err != nil {
		writeError(w, h.logger, "create surcharge", err)
		return
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	s, err := h.store.CreateSurcharge(r.Context(), database.CreateSurchargeParams{
		OutletID: outletID,
		Name:     name,
		Rate:     database.Numeric(rate),
		IsActive: active,
	})
	if err != nil {
		h.logger.Error("create surcharge", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusCreated, toSurchargeResponse(s))
}

// Update handles PATCH /outlets/{oid}/surcharges/{id}. Omitted fields keep
// their stored values.
func (h *SurchargeHandler) Update(w http.ResponseWriter, r *http.Request) {
	outletID, err := uuid.Parse(chi.URLParam(r, "oid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid outlet ID"})
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid surcharge ID"})
		return
	}

	var req updateSurchargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	current, err := h.store.GetSurcharge(r.Context(), database.GetSurchargeParams{ID: id, OutletID: outletID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "surcharge not found"})
			return
		}
		h.logger.Error("get surcharge", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	params := database.UpdateSurchargeParams{
		ID:       id,
		OutletID: outletID,
		Name:     current.Name,
		Rate:     current.Rate,
		IsActive: current.IsActive,
	}
	if req.Name != nil {
		if params.Name = strings.TrimSpace(*req.Name); params.Name == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name must not be empty"})
			return
		}
	}
	if req.Rate != nil {
		rate, err := parsePercent(*req.Rate)
		if err != nil {
			writeError(w, h.logger, "update surcharge", err)
			return
		}
		params.Rate = database.Numeric(rate)
	}
	if req.IsActive != nil {
		params.IsActive = *req.IsActive
	}

	s, err := h.store.UpdateSurcharge(r.Context(), params)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "surcharge not found"})
			return
		}
		h.logger.Error("update surcharge", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, toSurchargeResponse(s))
}

// parsePercent parses a surcharge rate given in percent (15 is 15%).
func parsePercent(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, badRequest("rate is required")
	}
	rate, err := parseAmount("rate", s)
	if err != nil {
		return decimal.Zero, err
	}
	if rate.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.Zero, badRequest("rate must be between 0 and 100")
	}
	// surcharges.rate is NUMERIC(6,3).
	if !rate.Equal(rate.Round(3)) {
		return decimal.Zero, badRequest("rate must have at most 3 decimal places")
	}
	return rate, nil
}

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
	"github.com/tableside-pos/api/internal/database"
	"github.com/tableside-pos/api/internal/enum"
	"github.com/tableside-pos/api/internal/middleware"
	"github.com/tableside-pos/api/internal/service"
	"go.uber.org/zap"
)

// IntakeStore defines the writes that open bookings and dockets.
// Satisfied by *database.Queries.
type IntakeStore interface {
	CreateBooking(ctx context.Context, arg database.CreateBookingParams) (database.Booking, error)
	CreateDocket(ctx context.Context, arg database.CreateDocketParams) (database.Docket, error)
	GetDocket(ctx context.Context, arg database.GetDocketParams) (database.Docket, error)
}

// PhoneOrderOpener records phone orders. Satisfied by *service.Dispatcher.
type PhoneOrderOpener interface {
	OpenPhoneOrder(ctx context.Context, sess service.Session, guest *service.Guest, items []service.OrderItem) (service.CreatedOrder, error)
}

// IntakeHandler opens the things checkouts later settle: bookings,
// phone orders and on-account dockets.
type IntakeHandler struct {
	store  IntakeStore
	orders PhoneOrderOpener
	logger *zap.Logger
}

// NewIntakeHandler creates a new IntakeHandler.
func NewIntakeHandler(store IntakeStore, orders PhoneOrderOpener, logger *zap.Logger) *IntakeHandler {
	return &IntakeHandler{store: store, orders: orders, logger: logger}
}

// RegisterRoutes registers intake endpoints on the given Chi router.
// Expected to be mounted at /outlets/{oid}
func (h *IntakeHandler) RegisterRoutes(r chi.Router) {
	r.Post("/bookings", h.CreateBooking)
	r.Post("/phone-orders", h.CreatePhoneOrder)
	r.Get("/dockets/{did}", h.GetDocket)
	r.With(middleware.RequireRole(enum.UserRoleManager)).Post("/dockets", h.CreateDocket)
}

// --- Request / Response types ---

type createBookingRequest struct {
	GuestName  string `json:"guest_name"`
	GuestPhone string `json:"guest_phone"`
	CustomerID string `json:"customer_id"`
	TableID    string `json:"table_id"`
	TableName  string `json:"table_name"`
	Covers     *int32 `json:"covers"`
	BookedFor  string `json:"booked_for"`
}

type createPhoneOrderRequest struct {
	Items []itemRequest `json:"items"`
	Guest *guestRequest `json:"guest"`
}

type phoneOrderResponse struct {
	ID       int64     `json:"id"`
	UUID     uuid.UUID `json:"uuid"`
	Subtotal string    `json:"subtotal"`
}

type createDocketRequest struct {
	CustomerName string `json:"customer_name"`
}

type docketResponse struct {
	ID           uuid.UUID `json:"id"`
	OutletID     uuid.UUID `json:"outlet_id"`
	CustomerName string    `json:"customer_name"`
	Balance      string    `json:"balance"`
	IsOpen       bool      `json:"is_open"`
	CreatedAt    time.Time `json:"created_at"`
}

// --- Handlers ---

// CreateBooking handles POST /outlets/{oid}/bookings.
func (h *IntakeHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	params, err := bookingParams(sess.OutletID, req)
	if err != nil {
		writeError(w, h.logger, "create booking", err)
		return
	}

	booking, err := h.store.CreateBooking(r.Context(), params)
	if err != nil {
		h.logger.Error("create booking", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	h.logger.Info("booking created",
		zap.Stringer("booking_id", booking.ID),
		zap.Time("booked_for", booking.BookedFor),
	)
	writeJSON(w, http.StatusCreated, toBookingResponse(booking))
}

// CreatePhoneOrder handles POST /outlets/{oid}/phone-orders. The order is
// paid later through /checkout/phone-orders/{uuid}.
func (h *IntakeHandler) CreatePhoneOrder(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req createPhoneOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(req.Items) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "items are required"})
		return
	}

	items, err := parseItems(req.Items)
	if err != nil {
		writeError(w, h.logger, "phone order", err)
		return
	}
	var guest *service.Guest
	if req.Guest != nil {
		g, err := parseGuest(*req.Guest)
		if err != nil {
			writeError(w, h.logger, "phone order", err)
			return
		}
		guest = &g
	}

	order, err := h.orders.OpenPhoneOrder(r.Context(), sess, guest, items)
	if err != nil {
		if errors.Is(err, service.ErrEmptyItems) || errors.Is(err, service.ErrFractionalCents) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		h.logger.Error("open phone order", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusCreated, phoneOrderResponse{
		ID:       order.ID,
		UUID:     order.UUID,
		Subtotal: money(itemsSubtotal(items)),
	})
}

// CreateDocket handles POST /outlets/{oid}/dockets.
func (h *IntakeHandler) CreateDocket(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req createDocketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "customer_name is required"})
		return
	}

	docket, err := h.store.CreateDocket(r.Context(), database.CreateDocketParams{OutletID: sess.OutletID, CustomerName: name})
	if err != nil {
		h.logger.Error("create docket", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	h.logger.Info("docket opened", zap.Stringer("docket_id", docket.ID))
	writeJSON(w, http.StatusCreated, toDocketResponse(docket))
}

// GetDocket handles GET /outlets/{oid}/dockets/{did}.
func (h *IntakeHandler) GetDocket(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	docketID, err := uuid.Parse(chi.URLParam(r, "did"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid docket ID"})
		return
	}
	docket, err := h.store.GetDocket(r.Context(), database.GetDocketParams{ID: docketID, OutletID: sess.OutletID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "docket not found"})
			return
		}
		h.logger.Error("get docket", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, toDocketResponse(docket))
}

// --- Helpers ---

func bookingParams(outletID uuid.UUID, req createBookingRequest) (database.CreateBookingParams, error) {
	params := database.CreateBookingParams{
		OutletID:   outletID,
		GuestName:  strings.TrimSpace(req.GuestName),
		GuestPhone: database.Text(req.GuestPhone),
		TableName:  database.Text(req.TableName),
		Covers:     1,
	}
	if params.GuestName == "" {
		return params, badRequest("guest_name is required")
	}
	if req.Covers != nil {
		if *req.Covers < 1 {
			return params, badRequest("covers must be at least 1")
		}
		params.Covers = *req.Covers
	}
	if req.BookedFor == "" {
		return params, badRequest("booked_for is required")
	}
	bookedFor, err := time.Parse(time.RFC3339, req.BookedFor)
	if err != nil {
		return params, badRequest("booked_for must be an RFC 3339 time")
	}
	params.BookedFor = bookedFor

	if req.TableID != "" {
		id, err := uuid.Parse(req.TableID)
		if err != nil {
			return params, badRequest("invalid table_id")
		}
		params.TableID = database.UUID(id)
	}
	if req.CustomerID != "" {
		id, err := uuid.Parse(req.CustomerID)
		if err != nil {
			return params, badRequest("invalid customer_id")
		}
		params.CustomerID = database.UUID(id)
	}
	return params, nil
}

func toDocketResponse(d database.Docket) docketResponse {
	return docketResponse{
		ID:           d.ID,
		OutletID:     d.OutletID,
		CustomerName: d.CustomerName,
		Balance:      money(database.Decimal(d.Balance)),
		IsOpen:       d.IsOpen,
		CreatedAt:    d.CreatedAt,
	}
}

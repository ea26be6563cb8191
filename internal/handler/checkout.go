package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tableside-pos/api/internal/calc"
	"github.com/tableside-pos/api/internal/database"
	"github.com/tableside-pos/api/internal/enum"
	"github.com/tableside-pos/api/internal/middleware"
	"github.com/tableside-pos/api/internal/service"
	"go.uber.org/zap"
)

// CheckoutStore defines the reads checkout handlers need before dispatching.
// Satisfied by *database.Queries.
type CheckoutStore interface {
	ListSurcharges(ctx context.Context, outletID uuid.UUID) ([]database.Surcharge, error)
	GetOrderByUUID(ctx context.Context, arg database.GetOrderByUUIDParams) (database.Order, error)
	ListOrderItemsByOrder(ctx context.Context, orderID int64) ([]database.OrderItem, error)
	ListOrderItemAddonsByOrder(ctx context.Context, orderID int64) ([]database.OrderItemAddon, error)
	GetBooking(ctx context.Context, arg database.GetBookingParams) (database.Booking, error)
	GetDocket(ctx context.Context, arg database.GetDocketParams) (database.Docket, error)
}

// Dispatcher runs a checkout. Satisfied by *service.Dispatcher.
type Dispatcher interface {
	Dispatch(ctx context.Context, sess service.Session, c service.Checkout) (*service.Result, error)
}

// CheckoutHandler handles the checkout endpoints.
type CheckoutHandler struct {
	store      CheckoutStore
	dispatcher Dispatcher
	notifier   service.Notifier
	logger     *zap.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler. notifier may be nil.
func NewCheckoutHandler(store CheckoutStore, dispatcher Dispatcher, notifier service.Notifier, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{store: store, dispatcher: dispatcher, notifier: notifier, logger: logger}
}

// RegisterRoutes registers checkout endpoints on the given Chi router.
// Expected to be mounted at /outlets/{oid}
func (h *CheckoutHandler) RegisterRoutes(r chi.Router) {
	r.Post("/checkout/quote", h.Quote)
	r.Post("/checkout/quick-sale", h.QuickSale)
	r.Post("/checkout/phone-orders/{uuid}", h.PhoneOrder)
	r.Post("/checkout/on-account", h.OnAccount)
	r.Get("/bookings/{bid}", h.GetBooking)
	r.Post("/bookings/{bid}/payments", h.BookingPayment)
}

// --- Request / Response types ---

type addOnRequest struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

type itemRequest struct {
	ProductID string         `json:"product_id"`
	Name      string         `json:"name"`
	Quantity  int32          `json:"quantity"`
	UnitPrice string         `json:"unit_price"`
	AddOns    []addOnRequest `json:"add_ons"`
	Note      string         `json:"note"`
	PriceType int32          `json:"price_type"`
}

type allocationRequest struct {
	Method string `json:"method"`
	Amount string `json:"amount"`
}

// amountsRequest is shared by every priced checkout. Rates are fractions
// (0.1 is 10%).
type amountsRequest struct {
	Discount     string              `json:"discount"`
	DiscountRate string              `json:"discount_rate"`
	Redeem       string              `json:"redeem"`
	Tip          string              `json:"tip"`
	TipRate      string              `json:"tip_rate"`
	SurchargeIDs []string            `json:"surcharge_ids"`
	CustomAmount string              `json:"custom_amount"`
	Payments     []allocationRequest `json:"payments"`
}

type guestRequest struct {
	CustomerID string `json:"customer_id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
}

type quoteRequest struct {
	Subtotal string        `json:"subtotal"`
	Items    []itemRequest `json:"items"`
	amountsRequest
}

type quickSaleRequest struct {
	Items []itemRequest `json:"items"`
	Guest *guestRequest `json:"guest"`
	amountsRequest
}

type bookingPaymentRequest struct {
	Items []itemRequest `json:"items"`
	amountsRequest
}

type onAccountRequest struct {
	DocketID     string              `json:"docket_id"`
	Tip          string              `json:"tip"`
	CustomAmount string              `json:"custom_amount"`
	Discount     string              `json:"discount"`
	Surcharge    string              `json:"surcharge"`
	Payments     []allocationRequest `json:"payments"`
}

type surchargeLineResponse struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Rate   string    `json:"rate"`
	Amount string    `json:"amount"`
}

type breakdownResponse struct {
	Subtotal       string                  `json:"subtotal"`
	Discount       string                  `json:"discount"`
	Redeem         string                  `json:"redeem"`
	FinalSubtotal  string                  `json:"final_subtotal"`
	Tip            string                  `json:"tip"`
	Surcharges     []surchargeLineResponse `json:"surcharges"`
	SurchargeTotal string                  `json:"surcharge_total"`
	Tax            string                  `json:"tax"`
	Total          string                  `json:"total"`
}

type orderRefResponse struct {
	ID   int64     `json:"id"`
	UUID uuid.UUID `json:"uuid"`
}

type checkoutResponse struct {
	Kind        string                     `json:"kind"`
	Skipped     bool                       `json:"skipped"`
	Breakdown   *breakdownResponse         `json:"breakdown,omitempty"`
	Order       *orderRefResponse          `json:"order,omitempty"`
	Transaction *service.TransactionResult `json:"transaction,omitempty"`
}

type bookingResponse struct {
	ID         uuid.UUID  `json:"id"`
	OutletID   uuid.UUID  `json:"outlet_id"`
	TableID    *uuid.UUID `json:"table_id"`
	TableName  string     `json:"table_name"`
	GuestName  string     `json:"guest_name"`
	GuestPhone string     `json:"guest_phone"`
	Covers     int32      `json:"covers"`
	Status     string     `json:"status"`
	OrderUUID  *uuid.UUID `json:"order_uuid"`
	BookedFor  time.Time  `json:"booked_for"`
	FinishedAt *time.Time `json:"finished_at"`
}

// --- Handlers ---

// Quote handles POST /outlets/{oid}/checkout/quote. Nothing is stored.
func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	var subtotal decimal.Decimal
	if len(req.Items) > 0 {
		items, err := parseItems(req.Items)
		if err != nil {
			writeError(w, h.logger, "quote", err)
			return
		}
		subtotal = itemsSubtotal(items)
	} else {
		var err error
		if subtotal, err = parseMoney("subtotal", req.Subtotal); err != nil {
			writeError(w, h.logger, "quote", err)
			return
		}
	}

	payment, err := h.buildPayment(r.Context(), sess.OutletID, subtotal, req.amountsRequest)
	if err != nil {
		writeError(w, h.logger, "quote", err)
		return
	}

	writeJSON(w, http.StatusOK, toBreakdownResponse(calc.Quote(payment.Amounts)))
}

// QuickSale handles POST /outlets/{oid}/checkout/quick-sale.
func (h *CheckoutHandler) QuickSale(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req quickSaleRequest
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
		writeError(w, h.logger, "quick sale", err)
		return
	}
	var guest *service.Guest
	if req.Guest != nil {
		g, err := parseGuest(*req.Guest)
		if err != nil {
			writeError(w, h.logger, "quick sale", err)
			return
		}
		guest = &g
	}

	payment, err := h.buildPayment(r.Context(), sess.OutletID, itemsSubtotal(items), req.amountsRequest)
	if err != nil {
		writeError(w, h.logger, "quick sale", err)
		return
	}

	h.dispatch(w, r, sess, service.QuickSale{Items: items, Guest: guest, Payment: payment})
}

// PhoneOrder handles POST /outlets/{oid}/checkout/phone-orders/{uuid}. The
// subtotal comes from the stored order, not the request.
func (h *CheckoutHandler) PhoneOrder(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	orderUUID, err := uuid.Parse(chi.URLParam(r, "uuid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	var req amountsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	order, err := h.store.GetOrderByUUID(r.Context(), database.GetOrderByUUIDParams{Uuid: orderUUID, OutletID: sess.OutletID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		h.logger.Error("get order", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if order.Channel != enum.ChannelPhoneOrder {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "order is not a phone order"})
		return
	}

	subtotal, err := h.storedSubtotal(r.Context(), order.ID)
	if err != nil {
		h.logger.Error("load order items", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	payment, err := h.buildPayment(r.Context(), sess.OutletID, subtotal, req)
	if err != nil {
		writeError(w, h.logger, "phone order", err)
		return
	}

	ctx := r.Context()
	h.dispatch(w, r, sess, service.PhoneOrder{
		Order:   service.CreatedOrder{ID: order.ID, UUID: order.Uuid},
		Payment: payment,
		OnComplete: func() {
			if h.notifier == nil {
				return
			}
			h.notifier.Notify(ctx, sess.OutletID, service.Notification{
				Title:       "Phone order paid",
				Description: fmt.Sprintf("Order for %s has been settled", order.GuestName),
				Variant:     enum.NotificationSuccess,
			})
		},
	})
}

// OnAccount handles POST /outlets/{oid}/checkout/on-account.
func (h *CheckoutHandler) OnAccount(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req onAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	docketID, err := uuid.Parse(req.DocketID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid docket_id"})
		return
	}

	checkout := service.OnAccount{DocketID: docketID}
	for _, f := range []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"tip", req.Tip, &checkout.Tip},
		{"custom_amount", req.CustomAmount, &checkout.CustomAmount},
		{"discount", req.Discount, &checkout.Discount},
		{"surcharge", req.Surcharge, &checkout.Surcharge},
	} {
		if *f.dst, err = parseMoney(f.name, f.raw); err != nil {
			writeError(w, h.logger, "on account", err)
			return
		}
	}
	if checkout.Payments, err = parseAllocations(req.Payments); err != nil {
		writeError(w, h.logger, "on account", err)
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
	if !docket.IsOpen {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "docket is closed"})
		return
	}

	h.dispatch(w, r, sess, checkout)
}

// GetBooking handles GET /outlets/{oid}/bookings/{bid}.
func (h *CheckoutHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}
	booking, ok := h.loadBooking(w, r, sess.OutletID)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponse(booking))
}

// BookingPayment handles POST /outlets/{oid}/bookings/{bid}/payments.
func (h *CheckoutHandler) BookingPayment(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req bookingPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	items, err := parseItems(req.Items)
	if err != nil {
		writeError(w, h.logger, "booking payment", err)
		return
	}

	booking, ok := h.loadBooking(w, r, sess.OutletID)
	if !ok {
		return
	}
	if booking.Status == enum.BookingStatusCancelled {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "booking is cancelled"})
		return
	}

	payment, err := h.buildPayment(r.Context(), sess.OutletID, itemsSubtotal(items), req.amountsRequest)
	if err != nil {
		writeError(w, h.logger, "booking payment", err)
		return
	}

	h.dispatch(w, r, sess, service.BookingPayment{
		Booking: service.Booking{
			ID:      booking.ID,
			TableID: database.FromUUID(booking.TableID),
			Guest: service.Guest{
				CustomerID: database.FromUUID(booking.CustomerID),
				Name:       booking.GuestName,
				Phone:      booking.GuestPhone.String,
			},
			Status:    booking.Status,
			OrderUUID: database.FromUUID(booking.OrderUuid),
		},
		Items:   items,
		Payment: payment,
	})
}

// --- Helpers ---

func sessionFromRequest(w http.ResponseWriter, r *http.Request) (service.Session, bool) {
	outletID, err := uuid.Parse(chi.URLParam(r, "oid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid outlet ID"})
		return service.Session{}, false
	}
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return service.Session{}, false
	}
	return service.Session{OutletID: outletID, EmployeeID: claims.EmployeeID}, true
}

func (h *CheckoutHandler) loadBooking(w http.ResponseWriter, r *http.Request, outletID uuid.UUID) (database.Booking, bool) {
	bookingID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid booking ID"})
		return database.Booking{}, false
	}
	booking, err := h.store.GetBooking(r.Context(), database.GetBookingParams{ID: bookingID, OutletID: outletID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "booking not found"})
			return database.Booking{}, false
		}
		h.logger.Error("get booking", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return database.Booking{}, false
	}
	return booking, true
}

func (h *CheckoutHandler) dispatch(w http.ResponseWriter, r *http.Request, sess service.Session, c service.Checkout) {
	res, err := h.dispatcher.Dispatch(r.Context(), sess, c)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAllocationMismatch):
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		case errors.Is(err, service.ErrEmptyItems),
			errors.Is(err, service.ErrFractionalCents),
			errors.Is(err, service.ErrMissingOrder),
			errors.Is(err, service.ErrMissingDocket),
			errors.Is(err, service.ErrUnknownCheckout):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.Is(err, service.ErrDocketClosed):
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		default:
			// Nothing on the till was cleared; the cashier can retry.
			if h.notifier != nil {
				h.notifier.Notify(r.Context(), sess.OutletID, service.Notification{
					Title:       "Payment failed",
					Description: "The payment could not be recorded. Please try again.",
					Variant:     enum.NotificationError,
				})
			}
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": "payment could not be recorded, please retry"})
		}
		return
	}

	resp := checkoutResponse{Kind: res.Kind, Skipped: res.Skipped, Transaction: res.Transaction}
	if res.Breakdown != nil {
		b := toBreakdownResponse(*res.Breakdown)
		resp.Breakdown = &b
	}
	if res.Order != nil {
		resp.Order = &orderRefResponse{ID: res.Order.ID, UUID: res.Order.UUID}
	}

	status := http.StatusCreated
	if res.Skipped {
		status = http.StatusOK
	}
	writeJSON(w, status, resp)
}

// buildPayment resolves rates and surcharges against subtotal.
func (h *CheckoutHandler) buildPayment(ctx context.Context, outletID uuid.UUID, subtotal decimal.Decimal, req amountsRequest) (service.Payment, error) {
	var (
		in  = calc.Input{Subtotal: subtotal}
		out service.Payment
		err error
	)

	if req.Discount != "" && req.DiscountRate != "" {
		return out, badRequest("give discount or discount_rate, not both")
	}
	if req.DiscountRate != "" {
		rate, err := parseRate("discount_rate", req.DiscountRate)
		if err != nil {
			return out, err
		}
		in.Discount = calc.DiscountByRate(subtotal, rate)
	} else if in.Discount, err = parseMoney("discount", req.Discount); err != nil {
		return out, err
	}

	if in.Redeem, err = parseMoney("redeem", req.Redeem); err != nil {
		return out, err
	}

	if req.Tip != "" && req.TipRate != "" {
		return out, badRequest("give tip or tip_rate, not both")
	}
	if req.TipRate != "" {
		rate, err := parseRate("tip_rate", req.TipRate)
		if err != nil {
			return out, err
		}
		in.Tip = calc.TipByRate(subtotal, in.Discount, in.Redeem, rate)
	} else if in.Tip, err = parseMoney("tip", req.Tip); err != nil {
		return out, err
	}

	if in.Surcharges, err = h.resolveSurcharges(ctx, outletID, req.SurchargeIDs); err != nil {
		return out, err
	}

	out.Amounts = in
	if out.CustomAmount, err = parseMoney("custom_amount", req.CustomAmount); err != nil {
		return out, err
	}
	if out.Payments, err = parseAllocations(req.Payments); err != nil {
		return out, err
	}
	return out, nil
}

// resolveSurcharges returns the requested surcharges in request order. Every
// ID must name an active surcharge of the outlet.
func (h *CheckoutHandler) resolveSurcharges(ctx context.Context, outletID uuid.UUID, ids []string) ([]calc.Surcharge, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := h.store.ListSurcharges(ctx, outletID)
	if err != nil {
		return nil, fmt.Errorf("list surcharges: %w", err)
	}
	byID := make(map[uuid.UUID]database.Surcharge, len(rows))
	for _, s := range rows {
		byID[s.ID] = s
	}

	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]calc.Surcharge, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, badRequest("invalid surcharge id %q", raw)
		}
		if seen[id] {
			return nil, badRequest("surcharge %s applied twice", id)
		}
		seen[id] = true

		s, ok := byID[id]
		if !ok || !s.IsActive {
			return nil, badRequest("surcharge %s is not available", id)
		}
		out = append(out, toCalcSurcharge(s))
	}
	return out, nil
}

// storedSubtotal prices the order's live items with their add-ons.
func (h *CheckoutHandler) storedSubtotal(ctx context.Context, orderID int64) (decimal.Decimal, error) {
	items, err := h.store.ListOrderItemsByOrder(ctx, orderID)
	if err != nil {
		return decimal.Zero, err
	}
	addons, err := h.store.ListOrderItemAddonsByOrder(ctx, orderID)
	if err != nil {
		return decimal.Zero, err
	}

	byItem := make(map[int64][]calc.AddOn)
	for _, a := range addons {
		byItem[a.OrderItemID] = append(byItem[a.OrderItemID], calc.AddOn{Name: a.Name, Price: database.Decimal(a.Price)})
	}

	lines := make([]calc.Line, 0, len(items))
	for _, item := range items {
		if item.Cancelled || item.Deleted {
			continue
		}
		lines = append(lines, calc.Line{
			Quantity:  item.Quantity,
			UnitPrice: database.Decimal(item.UnitPrice),
			AddOns:    byItem[item.ID],
		})
	}
	return calc.Subtotal(lines), nil
}

func parseItems(reqs []itemRequest) ([]service.OrderItem, error) {
	items := make([]service.OrderItem, 0, len(reqs))
	for i, req := range reqs {
		productID, err := uuid.Parse(req.ProductID)
		if err != nil {
			return nil, badRequest("items[%d]: invalid product_id", i)
		}
		if req.Name == "" {
			return nil, badRequest("items[%d]: name is required", i)
		}
		if req.Quantity <= 0 {
			return nil, badRequest("items[%d]: quantity must be > 0", i)
		}
		unitPrice, err := parseMoney(fmt.Sprintf("items[%d].unit_price", i), req.UnitPrice)
		if err != nil {
			return nil, err
		}

		item := service.OrderItem{
			ProductID: productID,
			Name:      req.Name,
			Quantity:  req.Quantity,
			UnitPrice: unitPrice,
			Note:      req.Note,
			PriceType: req.PriceType,
		}
		for j, a := range req.AddOns {
			price, err := parseMoney(fmt.Sprintf("items[%d].add_ons[%d].price", i, j), a.Price)
			if err != nil {
				return nil, err
			}
			item.AddOns = append(item.AddOns, calc.AddOn{Name: a.Name, Price: price})
		}
		items = append(items, item)
	}
	return items, nil
}

func itemsSubtotal(items []service.OrderItem) decimal.Decimal {
	lines := make([]calc.Line, len(items))
	for i, item := range items {
		lines[i] = item.Line()
	}
	return calc.Subtotal(lines)
}

func parseAllocations(reqs []allocationRequest) ([]calc.Allocation, error) {
	out := make([]calc.Allocation, 0, len(reqs))
	for i, p := range reqs {
		switch p.Method {
		case enum.PaymentMethodCash, enum.PaymentMethodCard, enum.PaymentMethodVoucher:
		default:
			return nil, badRequest("payments[%d]: invalid method %q", i, p.Method)
		}
		amount, err := parseMoney(fmt.Sprintf("payments[%d].amount", i), p.Amount)
		if err != nil {
			return nil, err
		}
		out = append(out, calc.Allocation{Method: p.Method, Amount: amount})
	}
	return out, nil
}

func parseGuest(req guestRequest) (service.Guest, error) {
	g := service.Guest{Name: req.Name, Phone: req.Phone}
	if g.Name == "" {
		g.Name = enum.GuestNoName
	}
	if req.CustomerID != "" {
		id, err := uuid.Parse(req.CustomerID)
		if err != nil {
			return g, badRequest("invalid customer_id")
		}
		g.CustomerID = id
	}
	return g, nil
}

func toCalcSurcharge(s database.Surcharge) calc.Surcharge {
	return calc.Surcharge{ID: s.ID, Name: s.Name, Rate: database.Decimal(s.Rate), Active: s.IsActive}
}

func toBreakdownResponse(b calc.Breakdown) breakdownResponse {
	lines := make([]surchargeLineResponse, len(b.Surcharges))
	for i, s := range b.Surcharges {
		lines[i] = surchargeLineResponse{ID: s.ID, Name: s.Name, Rate: s.Rate.String(), Amount: money(s.Amount)}
	}
	return breakdownResponse{
		Subtotal:       money(b.Subtotal),
		Discount:       money(b.Discount),
		Redeem:         money(b.Redeem),
		FinalSubtotal:  money(b.FinalSubtotal),
		Tip:            money(b.Tip),
		Surcharges:     lines,
		SurchargeTotal: money(b.SurchargeTotal),
		Tax:            money(b.Tax),
		Total:          money(b.Total),
	}
}

func toBookingResponse(b database.Booking) bookingResponse {
	resp := bookingResponse{
		ID:         b.ID,
		OutletID:   b.OutletID,
		TableName:  b.TableName.String,
		GuestName:  b.GuestName,
		GuestPhone: b.GuestPhone.String,
		Covers:     b.Covers,
		Status:     b.Status,
		BookedFor:  b.BookedFor,
	}
	if b.TableID.Valid {
		id := database.FromUUID(b.TableID)
		resp.TableID = &id
	}
	if b.OrderUuid.Valid {
		id := database.FromUUID(b.OrderUuid)
		resp.OrderUUID = &id
	}
	if b.FinishedAt.Valid {
		t := b.FinishedAt.Time
		resp.FinishedAt = &t
	}
	return resp
}

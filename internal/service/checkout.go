package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tableside-pos/api/internal/calc"
	"github.com/tableside-pos/api/internal/enum"
	"go.uber.org/zap"
)

// Errors returned by the dispatcher. Collaborator failures are wrapped and
// returned as they are.
var (
	ErrUnknownCheckout    = errors.New("unknown checkout kind")
	ErrEmptyItems         = errors.New("items are required")
	ErrMissingOrder       = errors.New("order reference is required")
	ErrMissingDocket      = errors.New("docket is required")
	ErrAllocationMismatch = errors.New("payments do not add up to the total")
	ErrFractionalCents    = errors.New("amount has fractions of a cent")
)

// --- Collaborators ---

// OrderCreator persists orders.
type OrderCreator interface {
	CreateOrder(ctx context.Context, p OrderPayload) (CreatedOrder, error)
	// AddBookingOrder creates the booking's order, or appends to it when
	// p.UUID already exists.
	AddBookingOrder(ctx context.Context, p OrderPayload) (CreatedOrder, error)
}

// TransactionCreator settles orders and dockets.
type TransactionCreator interface {
	CreateTransaction(ctx context.Context, req TransactionRequest) (TransactionResult, error)
	CreateOnAccountTransaction(ctx context.Context, req OnAccountRequest) (TransactionResult, error)
}

// BookingFinisher marks a booking complete.
type BookingFinisher interface {
	FinishBooking(ctx context.Context, bookingID uuid.UUID) error
}

// Notifier shows a message to dashboard users of an outlet.
type Notifier interface {
	Notify(ctx context.Context, outletID uuid.UUID, n Notification)
}

// IDGenerator hands out identifiers for new orders and order items.
type IDGenerator interface {
	NextID() uuid.UUID
}

// CheckoutRecorder observes finished dispatches.
type CheckoutRecorder interface {
	ObserveCheckout(kind, outcome string, total decimal.Decimal, elapsed time.Duration)
}

// RandomIDs generates random (v4) UUIDs.
type RandomIDs struct{}

// NextID returns a new random UUID.
func (RandomIDs) NextID() uuid.UUID { return uuid.New() }

// --- Payloads ---

// Notification is a toast shown on the dashboard.
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant"`
}

// Guest is the customer an order is for.
type Guest struct {
	CustomerID uuid.UUID `json:"customer_id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
}

// OrderItem is one cart line. ProductID plus AddedAt tells apart two
// additions of the same product.
type OrderItem struct {
	UUID      uuid.UUID
	ProductID uuid.UUID
	Name      string
	Quantity  int32
	UnitPrice decimal.Decimal
	AddOns    []calc.AddOn
	Note      string
	AddedAt   time.Time
	PriceType int32
	Cancelled bool
	Deleted   bool
	PopUp     bool
}

// Line returns the priced part of the item.
func (i OrderItem) Line() calc.Line {
	return calc.Line{Quantity: i.Quantity, UnitPrice: i.UnitPrice, AddOns: i.AddOns}
}

// OrderPayload is what gets sent to order creation.
type OrderPayload struct {
	UUID       uuid.UUID
	OutletID   uuid.UUID
	Channel    string
	Device     string
	EmployeeID uuid.UUID
	Guest      Guest
	BookingID  uuid.UUID
	TableID    uuid.UUID
	Items      []OrderItem
	CreatedAt  time.Time
}

// CreatedOrder identifies an order after it was stored.
type CreatedOrder struct {
	ID   int64
	UUID uuid.UUID
}

// TransactionRequest settles an order.
type TransactionRequest struct {
	OutletID       uuid.UUID
	EmployeeID     uuid.UUID
	OrderID        int64
	OrderUUID      uuid.UUID
	Source         int
	Total          decimal.Decimal
	Tip            decimal.Decimal
	CustomAmount   decimal.Decimal
	Discount       decimal.Decimal
	Redeem         decimal.Decimal
	Surcharges     []calc.AppliedSurcharge
	SurchargeTotal decimal.Decimal
	Tax            decimal.Decimal
	Payments       []calc.Allocation
}

// OnAccountRequest charges a docket. Amounts are taken as given.
type OnAccountRequest struct {
	OutletID     uuid.UUID
	EmployeeID   uuid.UUID
	DocketID     uuid.UUID
	Tip          decimal.Decimal
	CustomAmount decimal.Decimal
	Discount     decimal.Decimal
	Surcharge    decimal.Decimal
	Payments     []calc.Allocation
}

// TransactionResult identifies a stored transaction.
type TransactionResult struct {
	ID        int64     `json:"id"`
	UUID      uuid.UUID `json:"uuid"`
	CreatedAt time.Time `json:"created_at"`
}

// --- Checkout kinds ---

// Session is the acting employee and outlet for one dispatch.
type Session struct {
	OutletID   uuid.UUID
	EmployeeID uuid.UUID
}

// Payment is the priced part of a checkout.
type Payment struct {
	Amounts      calc.Input
	CustomAmount decimal.Decimal
	Payments     []calc.Allocation
}

// Checkout is one of QuickSale, PhoneOrder, OnAccount or BookingPayment.
type Checkout interface {
	kind() string
}

// QuickSale creates a new order from a cart and settles it.
type QuickSale struct {
	Items   []OrderItem
	Guest   *Guest
	Payment Payment
}

// PhoneOrder settles an order that already exists.
type PhoneOrder struct {
	Order      CreatedOrder
	Payment    Payment
	OnComplete func()
}

// OnAccount charges a docket without creating an order.
type OnAccount struct {
	DocketID     uuid.UUID
	Tip          decimal.Decimal
	CustomAmount decimal.Decimal
	Discount     decimal.Decimal
	Surcharge    decimal.Decimal
	Payments     []calc.Allocation
}

// Booking is a table reservation. OrderUUID is uuid.Nil until the first
// payment creates its order.
type Booking struct {
	ID        uuid.UUID
	TableID   uuid.UUID
	Guest     Guest
	Status    string
	OrderUUID uuid.UUID
}

// HasOrder reports whether an order was already created for the booking.
func (b Booking) HasOrder() bool { return b.OrderUUID != uuid.Nil }

// BookingPayment adds items to a booking's order and settles them.
type BookingPayment struct {
	Booking Booking
	Items   []OrderItem
	Payment Payment
}

func (QuickSale) kind() string      { return enum.ChannelQuickSale }
func (PhoneOrder) kind() string     { return enum.ChannelPhoneOrder }
func (OnAccount) kind() string      { return enum.ChannelOnAccount }
func (BookingPayment) kind() string { return enum.ChannelBooking }

// Result describes what a dispatch did.
type Result struct {
	Kind        string
	Breakdown   *calc.Breakdown
	Order       *CreatedOrder
	Transaction *TransactionResult
	// Skipped is set when a booking already has an order and nothing new
	// was added.
	Skipped bool
}

// --- Dispatcher ---

// Dispatcher creates the order and transaction for a checkout. Each call
// makes at most one order-creation call followed by one transaction call;
// nothing is retried.
type Dispatcher struct {
	orders   OrderCreator
	txns     TransactionCreator
	bookings BookingFinisher
	notifier Notifier
	ids      IDGenerator
	now      func() time.Time
	logger   *zap.Logger
	recorder CheckoutRecorder
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithIDGenerator replaces the random UUID generator.
func WithIDGenerator(ids IDGenerator) DispatcherOption {
	return func(d *Dispatcher) { d.ids = ids }
}

// WithClock replaces time.Now for order timestamps.
func WithClock(now func() time.Time) DispatcherOption {
	return func(d *Dispatcher) { d.now = now }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) DispatcherOption {
	return func(d *Dispatcher) { d.logger = logger }
}

// WithRecorder sets where dispatch outcomes are reported.
func WithRecorder(r CheckoutRecorder) DispatcherOption {
	return func(d *Dispatcher) { d.recorder = r }
}

// NewDispatcher creates a Dispatcher. notifier may be nil.
func NewDispatcher(orders OrderCreator, txns TransactionCreator, bookings BookingFinisher, notifier Notifier, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		orders:   orders,
		txns:     txns,
		bookings: bookings,
		notifier: notifier,
		ids:      RandomIDs{},
		now:      time.Now,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch runs the flow for c on behalf of sess.
func (d *Dispatcher) Dispatch(ctx context.Context, sess Session, c Checkout) (*Result, error) {
	if c == nil {
		return nil, ErrUnknownCheckout
	}

	start := time.Now()
	var (
		res *Result
		err error
	)
	switch c := c.(type) {
	case QuickSale:
		res, err = d.quickSale(ctx, sess, c)
	case PhoneOrder:
		res, err = d.phoneOrder(ctx, sess, c)
	case OnAccount:
		res, err = d.onAccount(ctx, sess, c)
	case BookingPayment:
		res, err = d.bookingPayment(ctx, sess, c)
	default:
		return nil, ErrUnknownCheckout
	}

	d.observe(c.kind(), res, err, time.Since(start))
	if err != nil {
		d.logger.Warn("checkout failed",
			zap.String("kind", c.kind()),
			zap.Stringer("outlet_id", sess.OutletID),
			zap.Error(err),
		)
		return nil, err
	}
	return res, nil
}

func (d *Dispatcher) quickSale(ctx context.Context, sess Session, c QuickSale) (*Result, error) {
	if len(c.Items) == 0 {
		return nil, ErrEmptyItems
	}
	if err := checkItems(c.Items); err != nil {
		return nil, err
	}
	breakdown, err := price(c.Payment)
	if err != nil {
		return nil, err
	}

	guest := Guest{Name: enum.GuestNoName}
	if c.Guest != nil {
		guest = *c.Guest
	}

	now := d.now()
	items := d.stampItems(c.Items, now)

	order, err := d.orders.CreateOrder(ctx, OrderPayload{
		UUID:       d.ids.NextID(),
		OutletID:   sess.OutletID,
		Channel:    enum.ChannelQuickSale,
		Device:     enum.DeviceDashboard,
		EmployeeID: sess.EmployeeID,
		Guest:      guest,
		Items:      items,
		CreatedAt:  now,
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	txn, err := d.txns.CreateTransaction(ctx, transactionRequest(sess, order, enum.SourceQuickSale, breakdown, c.Payment))
	if err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	d.logger.Info("quick sale settled",
		zap.Int64("order_id", order.ID),
		zap.Int64("transaction_id", txn.ID),
		zap.String("total", breakdown.Total.StringFixed(2)),
	)
	return &Result{Kind: enum.ChannelQuickSale, Breakdown: &breakdown, Order: &order, Transaction: &txn}, nil
}

// OpenPhoneOrder records an order taken over the phone. It is settled
// later with a PhoneOrder checkout carrying the returned order.
func (d *Dispatcher) OpenPhoneOrder(ctx context.Context, sess Session, guest *Guest, items []OrderItem) (CreatedOrder, error) {
	if len(items) == 0 {
		return CreatedOrder{}, ErrEmptyItems
	}
	if err := checkItems(items); err != nil {
		return CreatedOrder{}, err
	}

	g := Guest{Name: enum.GuestNoName}
	if guest != nil {
		g = *guest
	}
	now := d.now()
	order, err := d.orders.CreateOrder(ctx, OrderPayload{
		UUID:       d.ids.NextID(),
		OutletID:   sess.OutletID,
		Channel:    enum.ChannelPhoneOrder,
		Device:     enum.DeviceDashboard,
		EmployeeID: sess.EmployeeID,
		Guest:      g,
		Items:      d.stampItems(items, now),
		CreatedAt:  now,
	})
	if err != nil {
		return CreatedOrder{}, fmt.Errorf("create order: %w", err)
	}

	d.logger.Info("phone order opened",
		zap.Int64("order_id", order.ID),
		zap.Stringer("order_uuid", order.UUID),
	)
	return order, nil
}

func (d *Dispatcher) phoneOrder(ctx context.Context, sess Session, c PhoneOrder) (*Result, error) {
	if c.Order.UUID == uuid.Nil {
		return nil, ErrMissingOrder
	}
	breakdown, err := price(c.Payment)
	if err != nil {
		return nil, err
	}

	txn, err := d.txns.CreateTransaction(ctx, transactionRequest(sess, c.Order, enum.SourcePhoneOrder, breakdown, c.Payment))
	if err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	if c.OnComplete != nil {
		c.OnComplete()
	}

	d.logger.Info("phone order settled",
		zap.Int64("order_id", c.Order.ID),
		zap.Int64("transaction_id", txn.ID),
		zap.String("total", breakdown.Total.StringFixed(2)),
	)
	order := c.Order
	return &Result{Kind: enum.ChannelPhoneOrder, Breakdown: &breakdown, Order: &order, Transaction: &txn}, nil
}

func (d *Dispatcher) onAccount(ctx context.Context, sess Session, c OnAccount) (*Result, error) {
	if c.DocketID == uuid.Nil {
		return nil, ErrMissingDocket
	}
	if err := checkAllocations(c.Payments); err != nil {
		return nil, err
	}

	txn, err := d.txns.CreateOnAccountTransaction(ctx, OnAccountRequest{
		OutletID:     sess.OutletID,
		EmployeeID:   sess.EmployeeID,
		DocketID:     c.DocketID,
		Tip:          c.Tip,
		CustomAmount: c.CustomAmount,
		Discount:     c.Discount,
		Surcharge:    c.Surcharge,
		Payments:     c.Payments,
	})
	if err != nil {
		return nil, fmt.Errorf("create on-account transaction: %w", err)
	}

	d.logger.Info("on-account transaction created",
		zap.Stringer("docket_id", c.DocketID),
		zap.Int64("transaction_id", txn.ID),
	)
	return &Result{Kind: enum.ChannelOnAccount, Transaction: &txn}, nil
}

func (d *Dispatcher) bookingPayment(ctx context.Context, sess Session, c BookingPayment) (*Result, error) {
	b := c.Booking
	if b.HasOrder() && len(c.Items) == 0 {
		d.logger.Debug("booking already has an order and nothing new to charge",
			zap.Stringer("booking_id", b.ID),
			zap.Stringer("order_uuid", b.OrderUUID),
		)
		return &Result{Kind: enum.ChannelBooking, Skipped: true}, nil
	}

	if err := checkItems(c.Items); err != nil {
		return nil, err
	}
	breakdown, err := price(c.Payment)
	if err != nil {
		return nil, err
	}

	now := d.now()
	items := make([]OrderItem, len(c.Items))
	for i, item := range c.Items {
		if item.UUID == uuid.Nil {
			item.UUID = d.ids.NextID()
		}
		if item.AddedAt.IsZero() {
			item.AddedAt = now
		}
		item.Cancelled = false
		item.Deleted = false
		item.PopUp = false
		if item.PriceType == 0 {
			item.PriceType = enum.PriceTypeDefault
		}
		items[i] = item
	}

	orderUUID := b.OrderUUID
	if orderUUID == uuid.Nil {
		orderUUID = d.ids.NextID()
	}

	order, err := d.orders.AddBookingOrder(ctx, OrderPayload{
		UUID:       orderUUID,
		OutletID:   sess.OutletID,
		Channel:    enum.ChannelBooking,
		Device:     enum.DeviceDashboard,
		EmployeeID: sess.EmployeeID,
		Guest:      b.Guest,
		BookingID:  b.ID,
		TableID:    b.TableID,
		Items:      items,
		CreatedAt:  now,
	})
	if err != nil {
		return nil, fmt.Errorf("add booking order: %w", err)
	}

	txn, err := d.txns.CreateTransaction(ctx, transactionRequest(sess, order, enum.SourceBooking, breakdown, c.Payment))
	if err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	if b.Status != enum.BookingStatusFinished {
		if err := d.bookings.FinishBooking(ctx, b.ID); err != nil {
			return nil, fmt.Errorf("finish booking: %w", err)
		}
	}

	if d.notifier != nil {
		d.notifier.Notify(ctx, sess.OutletID, Notification{
			Title:       "Payment successful",
			Description: fmt.Sprintf("Booking for %s paid %s", guestLabel(b.Guest), breakdown.Total.StringFixed(2)),
			Variant:     enum.NotificationSuccess,
		})
	}

	d.logger.Info("booking settled",
		zap.Stringer("booking_id", b.ID),
		zap.Int64("order_id", order.ID),
		zap.Int64("transaction_id", txn.ID),
		zap.String("total", breakdown.Total.StringFixed(2)),
	)
	return &Result{Kind: enum.ChannelBooking, Breakdown: &breakdown, Order: &order, Transaction: &txn}, nil
}

// --- Helpers ---

// stampItems gives each item a fresh UUID and an added time.
func (d *Dispatcher) stampItems(in []OrderItem, now time.Time) []OrderItem {
	items := make([]OrderItem, len(in))
	for i, item := range in {
		item.UUID = d.ids.NextID()
		if item.AddedAt.IsZero() {
			item.AddedAt = now
		}
		items[i] = item
	}
	return items
}

// price quotes the payment and checks the allocations cover the total exactly.
func price(p Payment) (calc.Breakdown, error) {
	if err := checkAllocations(p.Payments); err != nil {
		return calc.Breakdown{}, err
	}
	if !calc.IsCents(p.CustomAmount) {
		return calc.Breakdown{}, fmt.Errorf("%w: custom amount %s", ErrFractionalCents, p.CustomAmount)
	}
	b := calc.Quote(p.Amounts)
	paid := calc.SumAllocations(p.Payments)
	if !paid.Equal(b.Total) {
		return calc.Breakdown{}, fmt.Errorf("%w: paid %s, total %s", ErrAllocationMismatch, paid.StringFixed(2), b.Total.StringFixed(2))
	}
	return b, nil
}

// checkAllocations rejects payments that would change when stored to the cent.
func checkAllocations(payments []calc.Allocation) error {
	for i, a := range payments {
		if !calc.IsCents(a.Amount) {
			return fmt.Errorf("%w: payment %d is %s", ErrFractionalCents, i, a.Amount)
		}
	}
	return nil
}

// checkItems rejects unit or add-on prices that would change when stored.
func checkItems(items []OrderItem) error {
	for i, item := range items {
		if !calc.IsCents(item.UnitPrice) {
			return fmt.Errorf("%w: item %d unit price %s", ErrFractionalCents, i, item.UnitPrice)
		}
		for _, a := range item.AddOns {
			if !calc.IsCents(a.Price) {
				return fmt.Errorf("%w: item %d add-on %s", ErrFractionalCents, i, a.Price)
			}
		}
	}
	return nil
}

func transactionRequest(sess Session, order CreatedOrder, source int, b calc.Breakdown, p Payment) TransactionRequest {
	return TransactionRequest{
		OutletID:       sess.OutletID,
		EmployeeID:     sess.EmployeeID,
		OrderID:        order.ID,
		OrderUUID:      order.UUID,
		Source:         source,
		Total:          b.Total,
		Tip:            b.Tip,
		CustomAmount:   p.CustomAmount,
		Discount:       b.Discount,
		Redeem:         b.Redeem,
		Surcharges:     b.Surcharges,
		SurchargeTotal: b.SurchargeTotal,
		Tax:            b.Tax,
		Payments:       p.Payments,
	}
}

func guestLabel(g Guest) string {
	if g.Name == "" {
		return enum.GuestNoName
	}
	return g.Name
}

func (d *Dispatcher) observe(kind string, res *Result, err error, elapsed time.Duration) {
	if d.recorder == nil {
		return
	}
	outcome := "success"
	total := decimal.Zero
	switch {
	case err != nil:
		outcome = "error"
	case res.Skipped:
		outcome = "skipped"
	case res.Breakdown != nil:
		total = res.Breakdown.Total
	}
	d.recorder.ObserveCheckout(kind, outcome, total, elapsed)
}

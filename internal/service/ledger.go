package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/tableside-pos/api/internal/calc"
	"github.com/tableside-pos/api/internal/database"
	"github.com/tableside-pos/api/internal/enum"
	"github.com/tableside-pos/api/internal/events"
	"go.uber.org/zap"
)

// ErrDocketClosed is returned when charging a docket that is closed or gone.
var ErrDocketClosed = errors.New("docket is closed")

// TxBeginner starts a new database transaction.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// LedgerStore defines the DB methods the ledger writes through.
// Satisfied by *database.Queries (and its WithTx variant).
type LedgerStore interface {
	CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error)
	UpsertOrderByUUID(ctx context.Context, arg database.CreateOrderParams) (database.Order, error)
	CreateOrderItem(ctx context.Context, arg database.CreateOrderItemParams) (database.OrderItem, error)
	CreateOrderItemAddon(ctx context.Context, arg database.CreateOrderItemAddonParams) (database.OrderItemAddon, error)
	LinkBookingOrder(ctx context.Context, arg database.LinkBookingOrderParams) (database.Booking, error)
	FinishBooking(ctx context.Context, id uuid.UUID) (database.Booking, error)
	CreateTransaction(ctx context.Context, arg database.CreateTransactionParams) (database.Transaction, error)
	CreateTransactionSurcharge(ctx context.Context, arg database.CreateTransactionSurchargeParams) (database.TransactionSurcharge, error)
	CreateTransactionPayment(ctx context.Context, arg database.CreateTransactionPaymentParams) (database.TransactionPayment, error)
	AddDocketBalance(ctx context.Context, arg database.AddDocketBalanceParams) (database.Docket, error)
}

// NewLedgerStore creates a LedgerStore from a DBTX (pool or tx).
type NewLedgerStore func(db database.DBTX) LedgerStore

// EventPublisher receives committed ledger writes.
type EventPublisher interface {
	PublishTransactionCreated(ctx context.Context, e events.TransactionCreated) error
	PublishBookingFinished(ctx context.Context, e events.BookingFinished) error
}

// Ledger stores orders, transactions and booking state in Postgres. It is
// the OrderCreator, TransactionCreator and BookingFinisher used in
// production.
type Ledger struct {
	pool      TxBeginner
	newStore  NewLedgerStore
	publisher EventPublisher
	logger    *zap.Logger
	ids       IDGenerator
}

// NewLedger creates a Ledger. publisher may be events.NopPublisher.
func NewLedger(pool TxBeginner, newStore NewLedgerStore, publisher EventPublisher, logger *zap.Logger) *Ledger {
	return &Ledger{
		pool:      pool,
		newStore:  newStore,
		publisher: publisher,
		logger:    logger.Named("ledger"),
		ids:       RandomIDs{},
	}
}

// CreateOrder inserts a new order with its items.
func (l *Ledger) CreateOrder(ctx context.Context, p OrderPayload) (CreatedOrder, error) {
	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return CreatedOrder{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := l.newStore(tx)

	order, err := store.CreateOrder(ctx, orderParams(p))
	if err != nil {
		return CreatedOrder{}, fmt.Errorf("insert order: %w", err)
	}
	if err := insertItems(ctx, store, order.ID, p.Items); err != nil {
		return CreatedOrder{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return CreatedOrder{}, fmt.Errorf("commit: %w", err)
	}
	return CreatedOrder{ID: order.ID, UUID: order.Uuid}, nil
}

// AddBookingOrder creates the booking's order on the first payment and
// appends items to it on later ones. The booking is linked to the order.
func (l *Ledger) AddBookingOrder(ctx context.Context, p OrderPayload) (CreatedOrder, error) {
	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return CreatedOrder{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := l.newStore(tx)

	order, err := store.UpsertOrderByUUID(ctx, orderParams(p))
	if err != nil {
		return CreatedOrder{}, fmt.Errorf("upsert order: %w", err)
	}
	if err := insertItems(ctx, store, order.ID, p.Items); err != nil {
		return CreatedOrder{}, err
	}

	if p.BookingID != uuid.Nil {
		if _, err := store.LinkBookingOrder(ctx, database.LinkBookingOrderParams{
			ID:        p.BookingID,
			OrderUuid: database.UUID(order.Uuid),
		}); err != nil {
			return CreatedOrder{}, fmt.Errorf("link booking: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return CreatedOrder{}, fmt.Errorf("commit: %w", err)
	}
	return CreatedOrder{ID: order.ID, UUID: order.Uuid}, nil
}

// CreateTransaction stores a settled order with its surcharge lines and
// payment allocations.
func (l *Ledger) CreateTransaction(ctx context.Context, req TransactionRequest) (TransactionResult, error) {
	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return TransactionResult{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := l.newStore(tx)

	txn, err := store.CreateTransaction(ctx, database.CreateTransactionParams{
		Uuid:           l.ids.NextID(),
		OutletID:       req.OutletID,
		OrderID:        orderID(req.OrderID),
		OrderUuid:      database.UUID(req.OrderUUID),
		Source:         int16(req.Source),
		EmployeeID:     req.EmployeeID,
		Total:          database.Money(req.Total),
		Tip:            database.Money(req.Tip),
		CustomAmount:   database.Money(req.CustomAmount),
		Discount:       database.Money(req.Discount),
		Redeem:         database.Money(req.Redeem),
		SurchargeTotal: database.Money(req.SurchargeTotal),
		Tax:            database.Money(req.Tax),
	})
	if err != nil {
		return TransactionResult{}, fmt.Errorf("insert transaction: %w", err)
	}

	for _, s := range req.Surcharges {
		if _, err := store.CreateTransactionSurcharge(ctx, database.CreateTransactionSurchargeParams{
			TransactionID: txn.ID,
			SurchargeID:   database.UUID(s.ID),
			Name:          s.Name,
			Rate:          database.Numeric(s.Rate),
			Amount:        database.Money(s.Amount),
		}); err != nil {
			return TransactionResult{}, fmt.Errorf("insert surcharge line: %w", err)
		}
	}
	if err := insertPayments(ctx, store, txn.ID, req.Payments); err != nil {
		return TransactionResult{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return TransactionResult{}, fmt.Errorf("commit: %w", err)
	}

	l.publishTransaction(ctx, txn, req.Payments)
	return TransactionResult{ID: txn.ID, UUID: txn.Uuid, CreatedAt: txn.CreatedAt}, nil
}

// CreateOnAccountTransaction charges a docket. The amounts are stored as
// given and the docket balance grows by the charged total.
func (l *Ledger) CreateOnAccountTransaction(ctx context.Context, req OnAccountRequest) (TransactionResult, error) {
	total := OnAccountTotal(req)

	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return TransactionResult{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := l.newStore(tx)

	txn, err := store.CreateTransaction(ctx, database.CreateTransactionParams{
		Uuid:           l.ids.NextID(),
		OutletID:       req.OutletID,
		DocketID:       database.UUID(req.DocketID),
		Source:         int16(enum.SourceOnAccount),
		EmployeeID:     req.EmployeeID,
		Total:          database.Money(total),
		Tip:            database.Money(req.Tip),
		CustomAmount:   database.Money(req.CustomAmount),
		Discount:       database.Money(req.Discount),
		Redeem:         database.Money(decimal.Zero),
		SurchargeTotal: database.Money(req.Surcharge),
		Tax:            database.Money(decimal.Zero),
	})
	if err != nil {
		return TransactionResult{}, fmt.Errorf("insert transaction: %w", err)
	}
	if err := insertPayments(ctx, store, txn.ID, req.Payments); err != nil {
		return TransactionResult{}, err
	}

	if _, err := store.AddDocketBalance(ctx, database.AddDocketBalanceParams{
		ID:     req.DocketID,
		Amount: database.Money(total),
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return TransactionResult{}, ErrDocketClosed
		}
		return TransactionResult{}, fmt.Errorf("update docket balance: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return TransactionResult{}, fmt.Errorf("commit: %w", err)
	}

	l.publishTransaction(ctx, txn, req.Payments)
	return TransactionResult{ID: txn.ID, UUID: txn.Uuid, CreatedAt: txn.CreatedAt}, nil
}

// FinishBooking marks the booking finished.
func (l *Ledger) FinishBooking(ctx context.Context, bookingID uuid.UUID) error {
	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	booking, err := l.newStore(tx).FinishBooking(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	event := events.BookingFinished{
		BookingID: booking.ID,
		OutletID:  booking.OutletID,
		OrderUUID: database.FromUUID(booking.OrderUuid),
	}
	if booking.FinishedAt.Valid {
		event.FinishedAt = booking.FinishedAt.Time
	}
	if err := l.publisher.PublishBookingFinished(ctx, event); err != nil {
		l.logger.Warn("booking event not published", zap.Stringer("booking_id", booking.ID), zap.Error(err))
	}
	return nil
}

// OnAccountTotal is the amount charged to a docket.
func OnAccountTotal(req OnAccountRequest) decimal.Decimal {
	return calc.Round(req.CustomAmount.Sub(req.Discount).Add(req.Surcharge).Add(req.Tip))
}

func (l *Ledger) publishTransaction(ctx context.Context, txn database.Transaction, payments []calc.Allocation) {
	err := l.publisher.PublishTransactionCreated(ctx, events.TransactionCreated{
		TransactionID:   txn.ID,
		TransactionUUID: txn.Uuid,
		OutletID:        txn.OutletID,
		OrderUUID:       database.FromUUID(txn.OrderUuid),
		DocketID:        database.FromUUID(txn.DocketID),
		EmployeeID:      txn.EmployeeID,
		Source:          int(txn.Source),
		Total:           database.Decimal(txn.Total).StringFixed(2),
		Tip:             database.Decimal(txn.Tip).StringFixed(2),
		Tax:             database.Decimal(txn.Tax).StringFixed(2),
		Payments:        payments,
		CreatedAt:       txn.CreatedAt,
	})
	if err != nil {
		l.logger.Warn("transaction event not published", zap.Int64("transaction_id", txn.ID), zap.Error(err))
	}
}

func orderParams(p OrderPayload) database.CreateOrderParams {
	return database.CreateOrderParams{
		Uuid:       p.UUID,
		OutletID:   p.OutletID,
		Channel:    p.Channel,
		Device:     p.Device,
		EmployeeID: p.EmployeeID,
		GuestName:  p.Guest.Name,
		GuestPhone: database.Text(p.Guest.Phone),
		CustomerID: database.UUID(p.Guest.CustomerID),
		BookingID:  database.UUID(p.BookingID),
		TableID:    database.UUID(p.TableID),
		CreatedAt:  p.CreatedAt,
	}
}

func insertItems(ctx context.Context, store LedgerStore, orderID int64, items []OrderItem) error {
	for _, item := range items {
		row, err := store.CreateOrderItem(ctx, database.CreateOrderItemParams{
			OrderID:   orderID,
			Uuid:      item.UUID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: database.Money(item.UnitPrice),
			PriceType: item.PriceType,
			Note:      database.Text(item.Note),
			Cancelled: item.Cancelled,
			Deleted:   item.Deleted,
			PopUp:     item.PopUp,
			AddedAt:   item.AddedAt,
		})
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
		for _, addOn := range item.AddOns {
			if _, err := store.CreateOrderItemAddon(ctx, database.CreateOrderItemAddonParams{
				OrderItemID: row.ID,
				Name:        addOn.Name,
				Price:       database.Money(addOn.Price),
			}); err != nil {
				return fmt.Errorf("insert add-on: %w", err)
			}
		}
	}
	return nil
}

func insertPayments(ctx context.Context, store LedgerStore, transactionID int64, payments []calc.Allocation) error {
	for _, p := range payments {
		if _, err := store.CreateTransactionPayment(ctx, database.CreateTransactionPaymentParams{
			TransactionID: transactionID,
			Method:        p.Method,
			Amount:        database.Money(p.Amount),
		}); err != nil {
			return fmt.Errorf("insert payment: %w", err)
		}
	}
	return nil
}

func orderID(id int64) pgtype.Int8 {
	if id == 0 {
		return pgtype.Int8{}
	}
	return pgtype.Int8{Int64: id, Valid: true}
}

// Code shaped after sqlc output. Keep queries and scans in column order.
// source: bookings.sql, dockets.sql

package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookingColumns = `id, outlet_id, table_id, table_name, guest_name, guest_phone, customer_id,
    covers, status, order_uuid, booked_for, finished_at, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (Booking, error) {
	var i Booking
	err := row.Scan(
		&i.ID,
		&i.OutletID,
		&i.TableID,
		&i.TableName,
		&i.GuestName,
		&i.GuestPhone,
		&i.CustomerID,
		&i.Covers,
		&i.Status,
		&i.OrderUuid,
		&i.BookedFor,
		&i.FinishedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getBooking = `-- name: GetBooking :one
SELECT ` + bookingColumns + `
FROM bookings
WHERE id = $1 AND outlet_id = $2`

type GetBookingParams struct {
	ID       uuid.UUID `json:"id"`
	OutletID uuid.UUID `json:"outlet_id"`
}

func (q *Queries) GetBooking(ctx context.Context, arg GetBookingParams) (Booking, error) {
	row := q.db.QueryRow(ctx, getBooking, arg.ID, arg.OutletID)
	return scanBooking(row)
}

const createBooking = `-- name: CreateBooking :one
INSERT INTO bookings (outlet_id, table_id, table_name, guest_name, guest_phone, customer_id, covers, booked_for)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + bookingColumns

type CreateBookingParams struct {
	OutletID   uuid.UUID   `json:"outlet_id"`
	TableID    pgtype.UUID `json:"table_id"`
	TableName  pgtype.Text `json:"table_name"`
	GuestName  string      `json:"guest_name"`
	GuestPhone pgtype.Text `json:"guest_phone"`
	CustomerID pgtype.UUID `json:"customer_id"`
	Covers     int32       `json:"covers"`
	BookedFor  time.Time   `json:"booked_for"`
}

func (q *Queries) CreateBooking(ctx context.Context, arg CreateBookingParams) (Booking, error) {
	row := q.db.QueryRow(ctx, createBooking,
		arg.OutletID,
		arg.TableID,
		arg.TableName,
		arg.GuestName,
		arg.GuestPhone,
		arg.CustomerID,
		arg.Covers,
		arg.BookedFor,
	)
	return scanBooking(row)
}

const linkBookingOrder = `-- name: LinkBookingOrder :one
UPDATE bookings
SET order_uuid = $2, updated_at = now()
WHERE id = $1
RETURNING ` + bookingColumns

type LinkBookingOrderParams struct {
	ID        uuid.UUID   `json:"id"`
	OrderUuid pgtype.UUID `json:"order_uuid"`
}

func (q *Queries) LinkBookingOrder(ctx context.Context, arg LinkBookingOrderParams) (Booking, error) {
	row := q.db.QueryRow(ctx, linkBookingOrder, arg.ID, arg.OrderUuid)
	return scanBooking(row)
}

const finishBooking = `-- name: FinishBooking :one
UPDATE bookings
SET status = 'finished', finished_at = now(), updated_at = now()
WHERE id = $1 AND status <> 'cancelled'
RETURNING ` + bookingColumns

func (q *Queries) FinishBooking(ctx context.Context, id uuid.UUID) (Booking, error) {
	row := q.db.QueryRow(ctx, finishBooking, id)
	return scanBooking(row)
}

const docketColumns = `id, outlet_id, customer_name, balance, is_open, created_at, updated_at`

func scanDocket(row interface{ Scan(...any) error }) (Docket, error) {
	var i Docket
	err := row.Scan(
		&i.ID,
		&i.OutletID,
		&i.CustomerName,
		&i.Balance,
		&i.IsOpen,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getDocket = `-- name: GetDocket :one
SELECT ` + docketColumns + `
FROM dockets
WHERE id = $1 AND outlet_id = $2`

type GetDocketParams struct {
	ID       uuid.UUID `json:"id"`
	OutletID uuid.UUID `json:"outlet_id"`
}

func (q *Queries) GetDocket(ctx context.Context, arg GetDocketParams) (Docket, error) {
	row := q.db.QueryRow(ctx, getDocket, arg.ID, arg.OutletID)
	return scanDocket(row)
}

const createDocket = `-- name: CreateDocket :one
INSERT INTO dockets (outlet_id, customer_name)
VALUES ($1, $2)
RETURNING ` + docketColumns

type CreateDocketParams struct {
	OutletID     uuid.UUID `json:"outlet_id"`
	CustomerName string    `json:"customer_name"`
}

func (q *Queries) CreateDocket(ctx context.Context, arg CreateDocketParams) (Docket, error) {
	row := q.db.QueryRow(ctx, createDocket, arg.OutletID, arg.CustomerName)
	return scanDocket(row)
}

const addDocketBalance = `-- name: AddDocketBalance :one
UPDATE dockets
SET balance = balance + $2, updated_at = now()
WHERE id = $1 AND is_open = true
RETURNING ` + docketColumns

type AddDocketBalanceParams struct {
	ID     uuid.UUID      `json:"id"`
	Amount pgtype.Numeric `json:"amount"`
}

func (q *Queries) AddDocketBalance(ctx context.Context, arg AddDocketBalanceParams) (Docket, error) {
	row := q.db.QueryRow(ctx, addDocketBalance, arg.ID, arg.Amount)
	return scanDocket(row)
}

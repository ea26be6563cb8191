// Code shaped after sqlc output. Keep queries and scans in column order.
// source: orders.sql

package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const orderColumns = `id, uuid, outlet_id, channel, device, employee_id, guest_name, guest_phone,
    customer_id, booking_id, table_id, created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (Order, error) {
	var i Order
	err := row.Scan(
		&i.ID,
		&i.Uuid,
		&i.OutletID,
		&i.Channel,
		&i.Device,
		&i.EmployeeID,
		&i.GuestName,
		&i.GuestPhone,
		&i.CustomerID,
		&i.BookingID,
		&i.TableID,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createOrder = `-- name: CreateOrder :one
INSERT INTO orders (uuid, outlet_id, channel, device, employee_id, guest_name, guest_phone,
    customer_id, booking_id, table_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING ` + orderColumns

type CreateOrderParams struct {
	Uuid       uuid.UUID   `json:"uuid"`
	OutletID   uuid.UUID   `json:"outlet_id"`
	Channel    string      `json:"channel"`
	Device     string      `json:"device"`
	EmployeeID uuid.UUID   `json:"employee_id"`
	GuestName  string      `json:"guest_name"`
	GuestPhone pgtype.Text `json:"guest_phone"`
	CustomerID pgtype.UUID `json:"customer_id"`
	BookingID  pgtype.UUID `json:"booking_id"`
	TableID    pgtype.UUID `json:"table_id"`
	CreatedAt  time.Time   `json:"created_at"`
}

func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error) {
	row := q.db.QueryRow(ctx, createOrder,
		arg.Uuid,
		arg.OutletID,
		arg.Channel,
		arg.Device,
		arg.EmployeeID,
		arg.GuestName,
		arg.GuestPhone,
		arg.CustomerID,
		arg.BookingID,
		arg.TableID,
		arg.CreatedAt,
	)
	return scanOrder(row)
}

const upsertOrderByUUID = `-- name: UpsertOrderByUUID :one
INSERT INTO orders (uuid, outlet_id, channel, device, employee_id, guest_name, guest_phone,
    customer_id, booking_id, table_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (uuid) DO UPDATE SET updated_at = now()
RETURNING ` + orderColumns

// UpsertOrderByUUID keeps the original order row when the UUID exists.
func (q *Queries) UpsertOrderByUUID(ctx context.Context, arg CreateOrderParams) (Order, error) {
	row := q.db.QueryRow(ctx, upsertOrderByUUID,
		arg.Uuid,
		arg.OutletID,
		arg.Channel,
		arg.Device,
		arg.EmployeeID,
		arg.GuestName,
		arg.GuestPhone,
		arg.CustomerID,
		arg.BookingID,
		arg.TableID,
		arg.CreatedAt,
	)
	return scanOrder(row)
}

const getOrderByUUID = `-- name: GetOrderByUUID :one
SELECT ` + orderColumns + `
FROM orders
WHERE uuid = $1 AND outlet_id = $2`

type GetOrderByUUIDParams struct {
	Uuid     uuid.UUID `json:"uuid"`
	OutletID uuid.UUID `json:"outlet_id"`
}

func (q *Queries) GetOrderByUUID(ctx context.Context, arg GetOrderByUUIDParams) (Order, error) {
	row := q.db.QueryRow(ctx, getOrderByUUID, arg.Uuid, arg.OutletID)
	return scanOrder(row)
}

const createOrderItem = `-- name: CreateOrderItem :one
INSERT INTO order_items (order_id, uuid, product_id, name, quantity, unit_price, price_type,
    note, cancelled, deleted, pop_up, added_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING id, order_id, uuid, product_id, name, quantity, unit_price, price_type,
    note, cancelled, deleted, pop_up, added_at`

type CreateOrderItemParams struct {
	OrderID   int64          `json:"order_id"`
	Uuid      uuid.UUID      `json:"uuid"`
	ProductID uuid.UUID      `json:"product_id"`
	Name      string         `json:"name"`
	Quantity  int32          `json:"quantity"`
	UnitPrice pgtype.Numeric `json:"unit_price"`
	PriceType int32          `json:"price_type"`
	Note      pgtype.Text    `json:"note"`
	Cancelled bool           `json:"cancelled"`
	Deleted   bool           `json:"deleted"`
	PopUp     bool           `json:"pop_up"`
	AddedAt   time.Time      `json:"added_at"`
}

func (q *Queries) CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) (OrderItem, error) {
	row := q.db.QueryRow(ctx, createOrderItem,
		arg.OrderID,
		arg.Uuid,
		arg.ProductID,
		arg.Name,
		arg.Quantity,
		arg.UnitPrice,
		arg.PriceType,
		arg.Note,
		arg.Cancelled,
		arg.Deleted,
		arg.PopUp,
		arg.AddedAt,
	)
	var i OrderItem
	err := row.Scan(
		&i.ID,
		&i.OrderID,
		&i.Uuid,
		&i.ProductID,
		&i.Name,
		&i.Quantity,
		&i.UnitPrice,
		&i.PriceType,
		&i.Note,
		&i.Cancelled,
		&i.Deleted,
		&i.PopUp,
		&i.AddedAt,
	)
	return i, err
}

const listOrderItemsByOrder = `-- name: ListOrderItemsByOrder :many
SELECT id, order_id, uuid, product_id, name, quantity, unit_price, price_type,
    note, cancelled, deleted, pop_up, added_at
FROM order_items
WHERE order_id = $1
ORDER BY added_at, id`

func (q *Queries) ListOrderItemsByOrder(ctx context.Context, orderID int64) ([]OrderItem, error) {
	rows, err := q.db.Query(ctx, listOrderItemsByOrder, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []OrderItem
	for rows.Next() {
		var i OrderItem
		if err := rows.Scan(
			&i.ID,
			&i.OrderID,
			&i.Uuid,
			&i.ProductID,
			&i.Name,
			&i.Quantity,
			&i.UnitPrice,
			&i.PriceType,
			&i.Note,
			&i.Cancelled,
			&i.Deleted,
			&i.PopUp,
			&i.AddedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createOrderItemAddon = `-- name: CreateOrderItemAddon :one
INSERT INTO order_item_addons (order_item_id, name, price)
VALUES ($1, $2, $3)
RETURNING id, order_item_id, name, price`

type CreateOrderItemAddonParams struct {
	OrderItemID int64          `json:"order_item_id"`
	Name        string         `json:"name"`
	Price       pgtype.Numeric `json:"price"`
}

func (q *Queries) CreateOrderItemAddon(ctx context.Context, arg CreateOrderItemAddonParams) (OrderItemAddon, error) {
	row := q.db.QueryRow(ctx, createOrderItemAddon, arg.OrderItemID, arg.Name, arg.Price)
	var i OrderItemAddon
	err := row.Scan(
		&i.ID,
		&i.OrderItemID,
		&i.Name,
		&i.Price,
	)
	return i, err
}

const listOrderItemAddonsByOrder = `-- name: ListOrderItemAddonsByOrder :many
SELECT a.id, a.order_item_id, a.name, a.price
FROM order_item_addons a
JOIN order_items oi ON oi.id = a.order_item_id
WHERE oi.order_id = $1
ORDER BY a.id`

func (q *Queries) ListOrderItemAddonsByOrder(ctx context.Context, orderID int64) ([]OrderItemAddon, error) {
	rows, err := q.db.Query(ctx, listOrderItemAddonsByOrder, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []OrderItemAddon
	for rows.Next() {
		var i OrderItemAddon
		if err := rows.Scan(
			&i.ID,
			&i.OrderItemID,
			&i.Name,
			&i.Price,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

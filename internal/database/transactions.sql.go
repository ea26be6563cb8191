// Code shaped after sqlc output. Keep queries and scans in column order.
// source: transactions.sql

package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const createTransaction = `-- name: CreateTransaction :one
INSERT INTO transactions (uuid, outlet_id, order_id, order_uuid, docket_id, source, employee_id,
    total, tip, custom_amount, discount, redeem, surcharge_total, tax)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING id, uuid, outlet_id, order_id, order_uuid, docket_id, source, employee_id,
    total, tip, custom_amount, discount, redeem, surcharge_total, tax, created_at`

type CreateTransactionParams struct {
	Uuid           uuid.UUID      `json:"uuid"`
	OutletID       uuid.UUID      `json:"outlet_id"`
	OrderID        pgtype.Int8    `json:"order_id"`
	OrderUuid      pgtype.UUID    `json:"order_uuid"`
	DocketID       pgtype.UUID    `json:"docket_id"`
	Source         int16          `json:"source"`
	EmployeeID     uuid.UUID      `json:"employee_id"`
	Total          pgtype.Numeric `json:"total"`
	Tip            pgtype.Numeric `json:"tip"`
	CustomAmount   pgtype.Numeric `json:"custom_amount"`
	Discount       pgtype.Numeric `json:"discount"`
	Redeem         pgtype.Numeric `json:"redeem"`
	SurchargeTotal pgtype.Numeric `json:"surcharge_total"`
	Tax            pgtype.Numeric `json:"tax"`
}

func (q *Queries) CreateTransaction(ctx context.Context, arg CreateTransactionParams) (Transaction, error) {
	row := q.db.QueryRow(ctx, createTransaction,
		arg.Uuid,
		arg.OutletID,
		arg.OrderID,
		arg.OrderUuid,
		arg.DocketID,
		arg.Source,
		arg.EmployeeID,
		arg.Total,
		arg.Tip,
		arg.CustomAmount,
		arg.Discount,
		arg.Redeem,
		arg.SurchargeTotal,
		arg.Tax,
	)
	var i Transaction
	err := row.Scan(
		&i.ID,
		&i.Uuid,
		&i.OutletID,
		&i.OrderID,
		&i.OrderUuid,
		&i.DocketID,
		&i.Source,
		&i.EmployeeID,
		&i.Total,
		&i.Tip,
		&i.CustomAmount,
		&i.Discount,
		&i.Redeem,
		&i.SurchargeTotal,
		&i.Tax,
		&i.CreatedAt,
	)
	return i, err
}

const createTransactionPayment = `-- name: CreateTransactionPayment :one
INSERT INTO transaction_payments (transaction_id, method, amount)
VALUES ($1, $2, $3)
RETURNING id, transaction_id, method, amount`

type CreateTransactionPaymentParams struct {
	TransactionID int64          `json:"transaction_id"`
	Method        string         `json:"method"`
	Amount        pgtype.Numeric `json:"amount"`
}

func (q *Queries) CreateTransactionPayment(ctx context.Context, arg CreateTransactionPaymentParams) (TransactionPayment, error) {
	row := q.db.QueryRow(ctx, createTransactionPayment, arg.TransactionID, arg.Method, arg.Amount)
	var i TransactionPayment
	err := row.Scan(
		&i.ID,
		&i.TransactionID,
		&i.Method,
		&i.Amount,
	)
	return i, err
}

const createTransactionSurcharge = `-- name: CreateTransactionSurcharge :one
INSERT INTO transaction_surcharges (transaction_id, surcharge_id, name, rate, amount)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, transaction_id, surcharge_id, name, rate, amount`

type CreateTransactionSurchargeParams struct {
	TransactionID int64          `json:"transaction_id"`
	SurchargeID   pgtype.UUID    `json:"surcharge_id"`
	Name          string         `json:"name"`
	Rate          pgtype.Numeric `json:"rate"`
	Amount        pgtype.Numeric `json:"amount"`
}

func (q *Queries) CreateTransactionSurcharge(ctx context.Context, arg CreateTransactionSurchargeParams) (TransactionSurcharge, error) {
	row := q.db.QueryRow(ctx, createTransactionSurcharge,
		arg.TransactionID,
		arg.SurchargeID,
		arg.Name,
		arg.Rate,
		arg.Amount,
	)
	var i TransactionSurcharge
	err := row.Scan(
		&i.ID,
		&i.TransactionID,
		&i.SurchargeID,
		&i.Name,
		&i.Rate,
		&i.Amount,
	)
	return i, err
}

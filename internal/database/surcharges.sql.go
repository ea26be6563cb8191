// Code shaped after sqlc output. Keep queries and scans in column order.
// source: surcharges.sql, employees.sql

package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const surchargeColumns = `id, outlet_id, name, rate, is_active, created_at, updated_at`

func scanSurcharge(row interface{ Scan(...any) error }) (Surcharge, error) {
	var i Surcharge
	err := row.Scan(
		&i.ID,
		&i.OutletID,
		&i.Name,
		&i.Rate,
		&i.IsActive,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listSurcharges = `-- name: ListSurcharges :many
SELECT ` + surchargeColumns + `
FROM surcharges
WHERE outlet_id = $1
ORDER BY name`

func (q *Queries) ListSurcharges(ctx context.Context, outletID uuid.UUID) ([]Surcharge, error) {
	rows, err := q.db.Query(ctx, listSurcharges, outletID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Surcharge
	for rows.Next() {
		i, err := scanSurcharge(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createSurcharge = `-- name: CreateSurcharge :one
INSERT INTO surcharges (outlet_id, name, rate, is_active)
VALUES ($1, $2, $3, $4)
RETURNING ` + surchargeColumns

type CreateSurchargeParams struct {
	OutletID uuid.UUID      `json:"outlet_id"`
	Name     string         `json:"name"`
	Rate     pgtype.Numeric `json:"rate"`
	IsActive bool           `json:"is_active"`
}

func (q *Queries) CreateSurcharge(ctx context.Context, arg CreateSurchargeParams) (Surcharge, error) {
	row := q.db.QueryRow(ctx, createSurcharge, arg.OutletID, arg.Name, arg.Rate, arg.IsActive)
	return scanSurcharge(row)
}

const updateSurcharge = `-- name: UpdateSurcharge :one
UPDATE surcharges
SET name = $3, rate = $4, is_active = $5, updated_at = now()
WHERE id = $1 AND outlet_id = $2
RETURNING ` + surchargeColumns

type UpdateSurchargeParams struct {
	ID       uuid.UUID      `json:"id"`
	OutletID uuid.UUID      `json:"outlet_id"`
	Name     string         `json:"name"`
	Rate     pgtype.Numeric `json:"rate"`
	IsActive bool           `json:"is_active"`
}

func (q *Queries) UpdateSurcharge(ctx context.Context, arg UpdateSurchargeParams) (Surcharge, error) {
	row := q.db.QueryRow(ctx, updateSurcharge,
		arg.ID,
		arg.OutletID,
		arg.Name,
		arg.Rate,
		arg.IsActive,
	)
	return scanSurcharge(row)
}

const getSurcharge = `-- name: GetSurcharge :one
SELECT ` + surchargeColumns + `
FROM surcharges
WHERE id = $1 AND outlet_id = $2`

type GetSurchargeParams struct {
	ID       uuid.UUID `json:"id"`
	OutletID uuid.UUID `json:"outlet_id"`
}

func (q *Queries) GetSurcharge(ctx context.Context, arg GetSurchargeParams) (Surcharge, error) {
	row := q.db.QueryRow(ctx, getSurcharge, arg.ID, arg.OutletID)
	return scanSurcharge(row)
}

const getEmployeeForLogin = `-- name: GetEmployeeForLogin :one
SELECT id, outlet_id, full_name, role, pin_hash, is_active, created_at
FROM employees
WHERE id = $1 AND is_active = true`

func (q *Queries) GetEmployeeForLogin(ctx context.Context, id uuid.UUID) (Employee, error) {
	row := q.db.QueryRow(ctx, getEmployeeForLogin, id)
	var i Employee
	err := row.Scan(
		&i.ID,
		&i.OutletID,
		&i.FullName,
		&i.Role,
		&i.PinHash,
		&i.IsActive,
		&i.CreatedAt,
	)
	return i, err
}

package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Booking struct {
	ID         uuid.UUID          `json:"id"`
	OutletID   uuid.UUID          `json:"outlet_id"`
	TableID    pgtype.UUID        `json:"table_id"`
	TableName  pgtype.Text        `json:"table_name"`
	GuestName  string             `json:"guest_name"`
	GuestPhone pgtype.Text        `json:"guest_phone"`
	CustomerID pgtype.UUID        `json:"customer_id"`
	Covers     int32              `json:"covers"`
	Status     string             `json:"status"`
	OrderUuid  pgtype.UUID        `json:"order_uuid"`
	BookedFor  time.Time          `json:"booked_for"`
	FinishedAt pgtype.Timestamptz `json:"finished_at"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

type Docket struct {
	ID           uuid.UUID      `json:"id"`
	OutletID     uuid.UUID      `json:"outlet_id"`
	CustomerName string         `json:"customer_name"`
	Balance      pgtype.Numeric `json:"balance"`
	IsOpen       bool           `json:"is_open"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

type Employee struct {
	ID        uuid.UUID `json:"id"`
	OutletID  uuid.UUID `json:"outlet_id"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	PinHash   string    `json:"pin_hash"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type Order struct {
	ID         int64       `json:"id"`
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
	UpdatedAt  time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID        int64          `json:"id"`
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

type OrderItemAddon struct {
	ID          int64          `json:"id"`
	OrderItemID int64          `json:"order_item_id"`
	Name        string         `json:"name"`
	Price       pgtype.Numeric `json:"price"`
}

type Surcharge struct {
	ID        uuid.UUID      `json:"id"`
	OutletID  uuid.UUID      `json:"outlet_id"`
	Name      string         `json:"name"`
	Rate      pgtype.Numeric `json:"rate"`
	IsActive  bool           `json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type Transaction struct {
	ID             int64          `json:"id"`
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
	CreatedAt      time.Time      `json:"created_at"`
}

type TransactionPayment struct {
	ID            int64          `json:"id"`
	TransactionID int64          `json:"transaction_id"`
	Method        string         `json:"method"`
	Amount        pgtype.Numeric `json:"amount"`
}

type TransactionSurcharge struct {
	ID            int64          `json:"id"`
	TransactionID int64          `json:"transaction_id"`
	SurchargeID   pgtype.UUID    `json:"surcharge_id"`
	Name          string         `json:"name"`
	Rate          pgtype.Numeric `json:"rate"`
	Amount        pgtype.Numeric `json:"amount"`
}

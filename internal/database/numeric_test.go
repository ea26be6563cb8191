package database

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

func TestMoneyRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "55", "33.33", "-5.00", "1234567.89"} {
		d := decimal.RequireFromString(s)
		got := Decimal(Money(d))
		if !got.Equal(d) {
			t.Errorf("Decimal(Money(%s)) = %s", s, got)
		}
	}
}

func TestNumericKeepsScale(t *testing.T) {
	rate := decimal.RequireFromString("3.75")
	if got := Decimal(Numeric(rate)); !got.Equal(rate) {
		t.Errorf("Decimal(Numeric(3.75)) = %s", got)
	}
}

func TestDecimalNull(t *testing.T) {
	if got := Decimal(pgtype.Numeric{}); !got.Equal(decimal.Zero) {
		t.Errorf("Decimal(NULL) = %s, want 0", got)
	}
}

func TestText(t *testing.T) {
	if Text("").Valid {
		t.Error("Text(\"\") should be NULL")
	}
	if got := Text("no onions"); !got.Valid || got.String != "no onions" {
		t.Errorf("Text = %+v", got)
	}
}

func TestUUID(t *testing.T) {
	if UUID(uuid.Nil).Valid {
		t.Error("UUID(Nil) should be NULL")
	}
	id := uuid.New()
	if got := FromUUID(UUID(id)); got != id {
		t.Errorf("FromUUID(UUID(%s)) = %s", id, got)
	}
	if got := FromUUID(pgtype.UUID{}); got != uuid.Nil {
		t.Errorf("FromUUID(NULL) = %s", got)
	}
}

package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tableside-pos/api/internal/calc"
)

// requestError is a client mistake, reported as 400 with its message.
type requestError string

func (e requestError) Error() string { return string(e) }

func badRequest(format string, args ...any) error {
	return requestError(fmt.Sprintf(format, args...))
}

// writeError reports request errors as 400 and anything else as 500.
func writeError(w http.ResponseWriter, logger *zap.Logger, msg string, err error) {
	var re requestError
	if errors.As(err, &re) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": re.Error()})
		return
	}
	logger.Error(msg, zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// parseAmount parses a non-negative decimal. The empty string is zero.
func parseAmount(field, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, badRequest("invalid %s", field)
	}
	if d.IsNegative() {
		return decimal.Zero, badRequest("%s must not be negative", field)
	}
	return d, nil
}

// parseMoney parses a non-negative amount in whole cents.
func parseMoney(field, s string) (decimal.Decimal, error) {
	d, err := parseAmount(field, s)
	if err != nil {
		return decimal.Zero, err
	}
	if !calc.IsCents(d) {
		return decimal.Zero, badRequest("%s must not have fractions of a cent", field)
	}
	return d, nil
}

// parseRate parses a fraction between 0 and 1 inclusive.
func parseRate(field, s string) (decimal.Decimal, error) {
	d, err := parseAmount(field, s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.Zero, badRequest("%s must be between 0 and 1", field)
	}
	return d, nil
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

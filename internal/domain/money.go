package domain

import (
	"bytes"
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an exact two-decimal currency amount stored as DECIMAL(12,2).
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d.Round(2)}
}

// ParseMoney accepts "1000", "1000.5", "1000.50".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ValidationError{Field: "price", Msg: "must be a decimal amount", Err: err}
	}
	return NewMoney(d), nil
}

func (m Money) Times(n int) Money {
	return Money{Decimal: m.Decimal.Mul(decimal.NewFromInt(int64(n))).Round(2)}
}

func (m Money) Add(o Money) Money {
	return Money{Decimal: m.Decimal.Add(o.Decimal)}
}

func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.StringFixed(2)), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || string(b) == "null" {
		m.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return fmt.Errorf("money: %w", err)
	}
	m.Decimal = d.Round(2)
	return nil
}

func (m *Money) Scan(src any) error {
	var d decimal.NullDecimal
	if err := d.Scan(src); err != nil {
		return err
	}
	if !d.Valid {
		m.Decimal = decimal.Zero
		return nil
	}
	m.Decimal = d.Decimal.Round(2)
	return nil
}

func (m Money) Value() (driver.Value, error) {
	return m.Decimal.StringFixed(2), nil
}

package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of a Date.
const DateLayout = "2006-01-02"

// Date is a calendar date without a time-of-day component, stored at UTC midnight.
type Date struct {
	time.Time
}

// NewDate returns the date y-m-d.
func NewDate(y int, m time.Month, d int) Date {
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// Within reports whether d falls in the closed range [from, to].
func (d Date) Within(from, to Date) bool {
	return !d.Before(from.Time) && !d.After(to.Time)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// TimeOfDay is a wall-clock time measured from midnight.
type TimeOfDay time.Duration

// NewTimeOfDay returns hh:mm:ss.
func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	return TimeOfDay(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute + time.Duration(second)*time.Second)
}

// ParseTimeOfDay accepts "15:04:05" or "15:04".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return NewTimeOfDay(t.Hour(), t.Minute(), t.Second()), nil
		}
	}
	return 0, fmt.Errorf("invalid time %q, expected HH:MM[:SS]", s)
}

// Duration returns the offset from midnight.
func (t TimeOfDay) Duration() time.Duration {
	return time.Duration(t)
}

func (t TimeOfDay) String() string {
	d := time.Duration(t)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	return fmt.Sprintf("%02d:%02d:%02d", h, m, d/time.Second)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("time must be a string: %w", err)
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Money is an exact currency amount. It is written with two fraction digits.
type Money struct {
	decimal.Decimal
}

// maxMoneyDigits bounds both the coefficient and the exponent of an
// accepted amount. Rescaling a decimal costs 10^|exponent|.
const maxMoneyDigits = 32

var maxMoneyCoefficient = new(big.Int).Exp(big.NewInt(10), big.NewInt(maxMoneyDigits), nil)

// ErrMoneyRange is returned for amounts with more than maxMoneyDigits
// digits or an exponent beyond them.
var ErrMoneyRange = errors.New("amount is out of range")

// ParseMoney parses a decimal string such as "1500.50".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q", s)
	}
	m := Money{d}
	if !m.InRange() {
		return Money{}, ErrMoneyRange
	}
	return m, nil
}

// InRange reports whether m is small enough for arithmetic and formatting
// to stay cheap. Amounts from ParseMoney and UnmarshalJSON always are.
func (m Money) InRange() bool {
	exp := m.Exponent()
	if exp > maxMoneyDigits || exp < -maxMoneyDigits {
		return false
	}
	return m.Coefficient().CmpAbs(maxMoneyCoefficient) < 0
}

// MustMoney is ParseMoney for literals known to be valid.
func MustMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) String() string {
	return m.StringFixed(2)
}

// Equal compares amounts numerically, so "10" equals "10.00".
func (m Money) Equal(o Money) bool {
	return m.Decimal.Equal(o.Decimal)
}

// Fits reports whether m can be stored as NUMERIC(precision, scale)
// without rounding.
func (m Money) Fits(precision, scale int32) bool {
	if !m.InRange() {
		return false
	}
	if !m.Decimal.Equal(m.Truncate(scale)) {
		return false
	}
	limit := decimal.New(1, precision-scale)
	return m.Abs().LessThan(limit)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Money) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return fmt.Errorf("invalid amount %s", b)
	}
	if !(Money{d}).InRange() {
		return ErrMoneyRange
	}
	m.Decimal = d
	return nil
}

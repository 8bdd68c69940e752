// Package money holds the single-currency amount used for catalog prices and cart totals.
package money

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Money is an exact decimal amount. The zero value is 0.00.
//
// Compare amounts with Equal. The exponent is not normalised, so 99 and 99.00 are
// different to == and reflect.DeepEqual.
type Money struct {
	d decimal.Decimal
}

var Zero = Money{}

func New(units int64, cents int64) Money {
	return Money{d: decimal.New(units*100+cents, -2)}
}

func FromDecimal(d decimal.Decimal) Money { return Money{d: d} }

// Parse reads a plain decimal string such as "99.00" or "-12.5".
func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errors.Wrapf(err, "parse money %q", s)
	}
	return Money{d: d}, nil
}

func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Decimal() decimal.Decimal { return m.d }

func (m Money) Add(o Money) Money { return Money{d: m.d.Add(o.d)} }

func (m Money) Sub(o Money) Money { return Money{d: m.d.Sub(o.d)} }

// Times multiplies by a whole quantity.
func (m Money) Times(n int) Money { return Money{d: m.d.Mul(decimal.NewFromInt(int64(n)))} }

// MulRate multiplies by a rate such as 0.12. The result is exact; rounding happens on display.
func (m Money) MulRate(rate decimal.Decimal) Money { return Money{d: m.d.Mul(rate)} }

func (m Money) Equal(o Money) bool { return m.d.Equal(o.d) }

func (m Money) IsZero() bool { return m.d.IsZero() }

func (m Money) IsNegative() bool { return m.d.IsNegative() }

func (m Money) LessThanOrEqual(o Money) bool { return m.d.LessThanOrEqual(o.d) }

// String renders the amount with exactly two fraction digits and no symbol.
func (m Money) String() string { return m.d.StringFixed(2) }

// Round rounds half away from zero to whole cents.
func (m Money) Round() Money { return Money{d: m.d.Round(2)} }

// MarshalJSON writes cent amounts with exactly two fraction digits. Finer amounts, such as
// unrounded tax, keep every digit.
func (m Money) MarshalJSON() ([]byte, error) {
	if m.d.Exponent() >= -2 {
		return json.Marshal(m.d.StringFixed(2))
	}
	return json.Marshal(m.d.String())
}

// UnmarshalJSON accepts both "99.00" and 99.00.
func (m *Money) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*m = Zero
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		b = []byte(s)
	}
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return errors.Wrap(err, "decode money")
	}
	m.d = d
	return nil
}

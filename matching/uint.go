package matching

import (
	"bytes"
	"encoding/json"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
	"lukechampine.com/uint128"
)

const (
	// UintPrecision is precision of decimal places for Uint.
	UintPrecision = 1_000_000_000_000
	// UintComma is the amount of zeros in UintPrecision.
	UintComma = 12
)

// Uint is an unsigned 128-bit integer used for prices and quantities.
// Decimal values are stored scaled by UintPrecision so that price keys
// compare exactly.
type Uint struct {
	v uint128.Uint128
}

func NewZeroUint() Uint {
	return Uint{}
}

func NewMaxUint() Uint {
	return Uint{uint128.Max}
}

// NewUint creates Uint from raw (already scaled) units.
func NewUint(u uint64) Uint {
	return Uint{v: uint128.From64(u)}
}

// NewUintFromStr parses raw (already scaled) integer units.
func NewUintFromStr(v string) (Uint, error) {
	if v == "" {
		return NewZeroUint(), nil
	}

	u, err := uint128.FromString(v)
	if err != nil {
		return Uint{}, ErrInvalidNumber
	}

	return Uint{v: u}, nil
}

// NewUintFromFloatString parses a decimal string like "101.25" and scales it by UintPrecision.
// Digits beyond UintComma decimal places are truncated.
func NewUintFromFloatString(number string) (Uint, error) {
	d, err := decimal.NewFromString(number)
	if err != nil {
		return Uint{}, ErrInvalidNumber
	}
	return NewUintFromDecimal(d)
}

// NewUintFromDecimal scales the decimal by UintPrecision.
// Negative and too large values are rejected.
func NewUintFromDecimal(d decimal.Decimal) (Uint, error) {
	if d.Sign() < 0 {
		return Uint{}, ErrInvalidNumber
	}
	scaled := d.Shift(UintComma).BigInt()
	if scaled.BitLen() > 128 {
		return Uint{}, ErrInvalidNumber
	}
	return Uint{v: uint128.FromBig(scaled)}, nil
}

// NewUintFromFloat converts a float64 decimal value. NaN and infinities are rejected.
func NewUintFromFloat(f float64) (Uint, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Uint{}, ErrInvalidNumber
	}
	return NewUintFromDecimal(decimal.NewFromFloat(f))
}

func (u Uint) ToUint128() uint128.Uint128 {
	return u.v
}

// ToDecimal returns the value divided by UintPrecision.
func (u Uint) ToDecimal() decimal.Decimal {
	return decimal.NewFromBigInt(u.v.Big(), -UintComma)
}

// ToFloatString returns the value divided by UintPrecision without trailing zeros.
func (u Uint) ToFloatString() string {
	return u.ToDecimal().String()
}

// ToFloat64 is lossy and intended for display only.
func (u Uint) ToFloat64() float64 {
	f, _ := new(big.Float).SetInt(u.v.Big()).Float64()
	return f / UintPrecision
}

// Add panics on overflow, see AddOverflows.
func (u Uint) Add(v Uint) Uint {
	u.v = u.v.Add(v.v)
	return u
}

// AddOverflows reports whether u + v does not fit into Uint.
func (u Uint) AddOverflows(v Uint) bool {
	return u.GreaterThan(NewMaxUint().Sub(v))
}

// Sub panics on underflow, callers compare first.
func (u Uint) Sub(v Uint) Uint {
	u.v = u.v.Sub(v.v)
	return u
}

func (u Uint) Mul(v Uint) Uint {
	u.v = u.v.Mul(v.v)
	return u
}

func (u Uint) Mul64(v uint64) Uint {
	u.v = u.v.Mul64(v)
	return u
}

func (u Uint) QuoRem(v Uint) (Uint, Uint) {
	var remainder uint128.Uint128
	u.v, remainder = u.v.QuoRem(v.v)
	return u, Uint{v: remainder}
}

func (u Uint) Div64(v uint64) Uint {
	u.v = u.v.Div64(v)
	return u
}

func (u Uint) Cmp(v Uint) int {
	return u.v.Cmp(v.v)
}

func (u Uint) IsZero() bool {
	return u.v.IsZero()
}

func (u Uint) Equals(v Uint) bool {
	return u.v.Equals(v.v)
}

func (u Uint) LessThan(v Uint) bool {
	return u.v.Cmp(v.v) < 0
}

func (u Uint) LessThanOrEqualTo(v Uint) bool {
	return u.v.Cmp(v.v) <= 0
}

func (u Uint) GreaterThan(v Uint) bool {
	return u.v.Cmp(v.v) > 0
}

func (u Uint) GreaterThanOrEqualTo(v Uint) bool {
	return u.v.Cmp(v.v) >= 0
}

// String returns raw units.
func (u Uint) String() string {
	return u.v.String()
}

// ---------------------JSON---------------------

var (
	_ json.Marshaler   = Uint{}
	_ json.Unmarshaler = &Uint{}
)

// MarshalJSON encodes the value as a quoted decimal string, e.g. "100.5".
func (u Uint) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.ToFloatString())
}

// UnmarshalJSON accepts a quoted decimal string or a bare JSON number.
func (u *Uint) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	v, err := NewUintFromFloatString(string(data))
	if err != nil {
		return err
	}
	*u = v
	return nil
}

func Min(a Uint, b Uint) Uint {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

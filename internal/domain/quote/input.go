package quote

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrMissing    = errors.New("value is required")
	ErrNotNumeric = errors.New("value is not a number")
	ErrOutOfRange = errors.New("value is out of range")
)

// Field is the result of parsing one numeric form field. On failure Value
// holds the field's safe default and Err says what was wrong with Raw.
type Field[T any] struct {
	Value T
	Raw   string
	Err   error
}

func (f Field[T]) OK() bool { return f.Err == nil }

// NumericInput accepts a JSON number, a JSON string or null so that raw
// form values reach the parsers unchanged.
type NumericInput struct {
	raw string
	set bool
}

func Numeric(raw string) NumericInput { return NumericInput{raw: raw, set: true} }

func (n NumericInput) IsSet() bool    { return n.set }
func (n NumericInput) String() string { return n.raw }

func (n *NumericInput) UnmarshalJSON(b []byte) error {
	n.set = true
	s := strings.TrimSpace(string(b))
	switch {
	case s == "null":
		n.raw = ""
	case strings.HasPrefix(s, `"`):
		if err := json.Unmarshal(b, &n.raw); err != nil {
			return err
		}
	default:
		n.raw = s
	}
	return nil
}

func (n NumericInput) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.raw)
}

// ParseQuantity reads a whole, positive quantity. The default is 1.
func ParseQuantity(raw string) Field[int] {
	f := Field[int]{Value: 1, Raw: raw}
	s := strings.TrimSpace(raw)
	if s == "" {
		f.Err = ErrMissing
		return f
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		f.Err = fmt.Errorf("%w: %q", ErrNotNumeric, raw)
		return f
	}
	if n < 1 {
		f.Err = fmt.Errorf("%w: quantity must be at least 1", ErrOutOfRange)
		return f
	}
	f.Value = n
	return f
}

// ParseAmount reads a non-negative money amount. The default is 0.
func ParseAmount(raw string) Field[decimal.Decimal] {
	f := Field[decimal.Decimal]{Value: decimal.Zero, Raw: raw}
	d, err := parseDecimal(raw)
	if err != nil {
		f.Err = err
		return f
	}
	if d.IsNegative() {
		f.Err = fmt.Errorf("%w: amount must not be negative", ErrOutOfRange)
		return f
	}
	f.Value = d
	return f
}

// ParsePercent reads a percentage and applies the range policy. The
// default is 0.
func ParsePercent(raw string, policy PercentPolicy) Field[decimal.Decimal] {
	f := Field[decimal.Decimal]{Value: decimal.Zero, Raw: raw}
	d, err := parseDecimal(raw)
	if err != nil {
		f.Err = err
		return f
	}
	v, err := policy.Apply(d)
	if err != nil {
		f.Err = err
		return f
	}
	f.Value = v
	return f
}

// Amounts and percentages must stay below 10^15 and carry at most
// maxDecimalPlaces fractional digits.
const (
	maxIntegerDigits = 15
	maxDecimalPlaces = 12
)

// MaxAmount is the exclusive upper bound on any magnitude accepted as input.
var MaxAmount = decimal.New(1, maxIntegerDigits)

func parseDecimal(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, ErrMissing
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrNotNumeric, raw)
	}
	if err := CheckMagnitude(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// CheckMagnitude rejects values whose absolute value reaches MaxAmount or
// that carry more than maxDecimalPlaces fractional digits. It inspects the
// coefficient and exponent only, so a value such as 1e200000 is refused
// without being expanded.
func CheckMagnitude(d decimal.Decimal) error {
	if d.IsZero() {
		return nil
	}
	exp := int(d.Exponent())
	if d.NumDigits()+exp > maxIntegerDigits {
		return fmt.Errorf("%w: magnitude must be below %s", ErrOutOfRange, MaxAmount.String())
	}
	if -exp > maxDecimalPlaces {
		return fmt.Errorf("%w: at most %d decimal places", ErrOutOfRange, maxDecimalPlaces)
	}
	return nil
}

// FieldErrors collects per-field failures keyed by JSON field path.
type FieldErrors map[string]string

func (fe FieldErrors) Check(name string, err error) bool {
	if err == nil {
		return true
	}
	fe[name] = err.Error()
	return false
}

package quote

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PercentPolicy decides what happens to a discount or tax percentage
// outside 0..100 when it enters the system.
type PercentPolicy string

const (
	PercentPassthrough PercentPolicy = "passthrough"
	PercentClamp       PercentPolicy = "clamp"
	PercentReject      PercentPolicy = "reject"
)

var (
	minPercent = decimal.Zero
	maxPercent = decimal.NewFromInt(100)
)

func ParsePercentPolicy(s string) (PercentPolicy, error) {
	switch p := PercentPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PercentPassthrough, nil
	case PercentPassthrough, PercentClamp, PercentReject:
		return p, nil
	default:
		return "", fmt.Errorf("unknown percent policy %q", s)
	}
}

func (p PercentPolicy) Apply(v decimal.Decimal) (decimal.Decimal, error) {
	inRange := !v.LessThan(minPercent) && !v.GreaterThan(maxPercent)
	switch p {
	case PercentClamp:
		if v.LessThan(minPercent) {
			return minPercent, nil
		}
		if v.GreaterThan(maxPercent) {
			return maxPercent, nil
		}
		return v, nil
	case PercentReject:
		if !inRange {
			return decimal.Zero, fmt.Errorf("%w: percentage must be between 0 and 100", ErrOutOfRange)
		}
		return v, nil
	default:
		return v, nil
	}
}

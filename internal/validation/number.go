package validation

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

type numCheck struct {
	ok  func(decimal.Decimal) bool
	msg string
}

// NumberRule validates a numeric field into an exact decimal. Like StringRule,
// every check runs and all failures are reported.
type NumberRule struct {
	msgs      Messages
	coerceAll bool
	checks    []numCheck
}

// Number accepts JSON numbers and numeric strings.
func Number(m Messages) *NumberRule {
	return &NumberRule{msgs: m}
}

// CoercedNumber additionally coerces booleans and null, the way a loose form
// field converts any scalar to a number. An absent field coerces to NaN, so it
// reports the Invalid message rather than Required.
func CoercedNumber(m Messages) *NumberRule {
	return &NumberRule{msgs: m, coerceAll: true}
}

// Int requires a whole number.
func (r *NumberRule) Int(msg string) *NumberRule {
	return r.Refine(func(d decimal.Decimal) bool { return d.IsInteger() }, msg)
}

// Min requires d >= n.
func (r *NumberRule) Min(n decimal.Decimal, msg string) *NumberRule {
	return r.Refine(func(d decimal.Decimal) bool { return d.GreaterThanOrEqual(n) }, msg)
}

// Max requires d <= n.
func (r *NumberRule) Max(n decimal.Decimal, msg string) *NumberRule {
	return r.Refine(func(d decimal.Decimal) bool { return d.LessThanOrEqual(n) }, msg)
}

// Positive requires d > 0.
func (r *NumberRule) Positive(msg string) *NumberRule {
	return r.Refine(decimal.Decimal.IsPositive, msg)
}

// Refine adds an arbitrary predicate.
func (r *NumberRule) Refine(ok func(decimal.Decimal) bool, msg string) *NumberRule {
	r.checks = append(r.checks, numCheck{ok: ok, msg: msg})
	return r
}

// Parse validates raw. present reports whether the key existed at all.
func (r *NumberRule) Parse(raw any, present bool) (decimal.Decimal, []string) {
	if !present {
		if r.coerceAll {
			return decimal.Zero, []string{r.msgs.Invalid}
		}
		return decimal.Zero, []string{r.msgs.Required}
	}
	d, ok := toDecimal(raw, r.coerceAll)
	if !ok {
		return decimal.Zero, []string{r.msgs.Invalid}
	}
	var failed []string
	for _, c := range r.checks {
		if !c.ok(d) {
			failed = append(failed, c.msg)
		}
	}
	if len(failed) > 0 {
		return decimal.Zero, failed
	}
	return d, nil
}

// Bounds on accepted numbers. Comparing decimals rescales them to a common
// exponent, so an input like 1e200000000 would cost unbounded CPU.
const (
	maxExponent   = 32
	maxNumberText = 64
)

// toDecimal converts the scalar shapes a JSON decoder (with or without
// UseNumber) or a Go caller can produce. A blank string converts to zero.
// Values outside the exponent window are rejected.
func toDecimal(raw any, coerceAll bool) (decimal.Decimal, bool) {
	d, ok := convert(raw, coerceAll)
	if !ok {
		return decimal.Zero, false
	}
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
		return decimal.Zero, false
	}
	return d, true
}

func convert(raw any, coerceAll bool) (decimal.Decimal, bool) {
	switch v := raw.(type) {
	case json.Number:
		return fromText(v.String())
	case float64:
		return decimal.NewFromFloat(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case decimal.Decimal:
		return v, true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return decimal.Zero, true
		}
		return fromText(s)
	case bool:
		if !coerceAll {
			return decimal.Zero, false
		}
		if v {
			return decimal.NewFromInt(1), true
		}
		return decimal.Zero, true
	case nil:
		return decimal.Zero, coerceAll
	}
	return decimal.Zero, false
}

func fromText(s string) (decimal.Decimal, bool) {
	if len(s) > maxNumberText {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	return d, err == nil
}

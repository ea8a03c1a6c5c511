package jsondelta

import (
	"math/big"
	"strconv"
	"strings"
)

// Number is a JSON number that preserves integer and fractional precision
// losslessly. Integers are held as int64, everything else as float64; a
// plain float64 alone would corrupt integers above 2^53 on round-trips.
// Equality and ordering are numeric, so IntNumber(1) equals FloatNumber(1.0).
type Number struct {
	isInt bool
	i     int64
	f     float64
}

// IntNumber returns a Number holding an exact integer.
func IntNumber(i int64) Number { return Number{isInt: true, i: i} }

// FloatNumber returns a Number holding a binary float.
func FloatNumber(f float64) Number { return Number{f: f} }

// NumberFromString parses a JSON numeric literal. Integer literals that fit
// in int64 stay exact; everything else (fractions, exponents, overflow)
// falls back to float64.
func NumberFromString(s string) (Number, error) {
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return IntNumber(i), nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Number{}, err
	}
	return FloatNumber(f), nil
}

// IsInt reports whether the number is held as an exact integer.
func (n Number) IsInt() bool { return n.isInt }

// Int64 returns the exact integer form when the number is integral.
func (n Number) Int64() (int64, bool) {
	if n.isInt {
		return n.i, true
	}
	return 0, false
}

// Float64 returns the number as a float64, truncating integers above 2^53.
func (n Number) Float64() float64 {
	if n.isInt {
		return float64(n.i)
	}
	return n.f
}

// Equal reports numeric equality across the int/float split.
func (n Number) Equal(o Number) bool { return n.Compare(o) == 0 }

// Compare orders two numbers numerically, returning -1, 0 or 1. Mixed
// int/float pairs are compared exactly via big.Float so large integers do
// not collide with their rounded float neighbors.
func (n Number) Compare(o Number) int {
	switch {
	case n.isInt && o.isInt:
		switch {
		case n.i < o.i:
			return -1
		case n.i > o.i:
			return 1
		}
		return 0
	case !n.isInt && !o.isInt:
		switch {
		case n.f < o.f:
			return -1
		case n.f > o.f:
			return 1
		}
		return 0
	}
	var a, b big.Float
	if n.isInt {
		a.SetInt64(n.i)
	} else {
		a.SetFloat64(n.f)
	}
	if o.isInt {
		b.SetInt64(o.i)
	} else {
		b.SetFloat64(o.f)
	}
	return a.Cmp(&b)
}

// String returns the canonical textual form: integers as plain decimals,
// floats with a '.' or exponent so the int/float split survives re-parsing.
func (n Number) String() string {
	if n.isInt {
		return strconv.FormatInt(n.i, 10)
	}
	s := strconv.FormatFloat(n.f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

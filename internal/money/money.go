// Package money provides the big-number currency type used by all economic
// accumulation. Values are stored as mantissa × 10^exponent with the mantissa
// normalised to |m| < 10, which keeps precision far beyond float64 range.
package money

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// Money is a normalised big-number amount of gold.
type Money struct {
	Mantissa float64 `json:"mantissa"`
	Exponent int     `json:"exponent"`
}

// Zero returns the zero amount.
func Zero() Money {
	return Money{}
}

// New creates a Money from a float64 value.
func New(v float64) Money {
	return normalize(Money{Mantissa: v, Exponent: 0})
}

// FromParts creates a Money from a stored (mantissa, exponent) pair.
func FromParts(mantissa float64, exponent int) Money {
	return normalize(Money{Mantissa: mantissa, Exponent: exponent})
}

func normalize(m Money) Money {
	if m.Mantissa == 0 {
		return Money{}
	}
	abs := math.Abs(m.Mantissa)
	for abs >= 10 {
		m.Mantissa /= 10
		m.Exponent++
		abs = math.Abs(m.Mantissa)
	}
	for abs < 1 {
		m.Mantissa *= 10
		m.Exponent--
		abs = math.Abs(m.Mantissa)
	}
	return m
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.Mantissa == 0
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.Mantissa < 0
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	if m.IsZero() {
		return o
	}
	if o.IsZero() {
		return m
	}
	// Align the smaller exponent to the larger. Beyond ~17 orders of
	// magnitude the smaller term is lost to float64 precision anyway.
	if m.Exponent < o.Exponent {
		m, o = o, m
	}
	diff := m.Exponent - o.Exponent
	if diff > 18 {
		return m
	}
	scaled := o.Mantissa / math.Pow(10, float64(diff))
	return normalize(Money{Mantissa: m.Mantissa + scaled, Exponent: m.Exponent})
}

// Sub returns m − o.
func (m Money) Sub(o Money) Money {
	return m.Add(Money{Mantissa: -o.Mantissa, Exponent: o.Exponent})
}

// MulFloat returns m × f.
func (m Money) MulFloat(f float64) Money {
	if m.IsZero() || f == 0 {
		return Money{}
	}
	return normalize(Money{Mantissa: m.Mantissa * f, Exponent: m.Exponent})
}

// Cmp compares normalised amounts: -1 if m < o, 0 if equal, 1 if m > o.
func (m Money) Cmp(o Money) int {
	if m.Mantissa == 0 && o.Mantissa == 0 {
		return 0
	}
	ms, os := sign(m.Mantissa), sign(o.Mantissa)
	if ms != os {
		if ms < os {
			return -1
		}
		return 1
	}
	if m.Exponent != o.Exponent {
		// For negatives a larger exponent means a smaller value.
		if (m.Exponent > o.Exponent) == (ms > 0) {
			return 1
		}
		return -1
	}
	switch {
	case m.Mantissa < o.Mantissa:
		return -1
	case m.Mantissa > o.Mantissa:
		return 1
	default:
		return 0
	}
}

func sign(f float64) int {
	switch {
	case f < 0:
		return -1
	case f > 0:
		return 1
	default:
		return 0
	}
}

// Float64 converts to float64, losing precision and saturating at ±Inf for
// exponents beyond float64 range.
func (m Money) Float64() float64 {
	if m.IsZero() {
		return 0
	}
	return m.Mantissa * math.Pow(10, float64(m.Exponent))
}

var suffixes = []string{"", "K", "M", "B", "T", "Qa", "Qi", "Sx", "Sp", "Oc", "No", "Dc"}

// Format renders the amount for logs and event text. Values below one million
// use plain comma grouping; larger values use short magnitude suffixes.
func (m Money) Format() string {
	if m.IsNegative() {
		return "-" + m.MulFloat(-1).Format()
	}
	if m.Exponent < 6 {
		return humanize.Comma(int64(math.Round(m.Float64())))
	}
	tier := m.Exponent / 3
	if tier >= len(suffixes) {
		return fmt.Sprintf("%.2fe%d", m.Mantissa, m.Exponent)
	}
	scaled := m.Mantissa * math.Pow(10, float64(m.Exponent%3))
	return fmt.Sprintf("%.2f%s", scaled, suffixes[tier])
}

func (m Money) String() string {
	return m.Format()
}

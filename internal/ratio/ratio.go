package ratio

import (
	"errors"
	"fmt"
)

// ErrZeroDenominator is returned when constructing a ratio with a zero
// denominator. Callers at the transform boundary wrap it into a ModelError.
var ErrZeroDenominator = errors.New("ratio: zero denominator")

// Ratio is an exact rational number held in lowest terms.
// The zero value is 0/1. Denominators are always positive.
type Ratio struct {
	num int64
	den int64
}

// New creates a Ratio from a numerator and denominator, reduced to lowest
// terms. The denominator must be nonzero.
func New(num, den int64) (Ratio, error) {
	if den == 0 {
		return Ratio{}, ErrZeroDenominator
	}
	return reduced(num, den), nil
}

// FromInt creates the Ratio n/1.
func FromInt(n int64) Ratio {
	return Ratio{num: n, den: 1}
}

// One is the Ratio 1/1.
func One() Ratio {
	return Ratio{num: 1, den: 1}
}

// Zero is the Ratio 0/1, used for rest frequencies.
func Zero() Ratio {
	return Ratio{num: 0, den: 1}
}

func reduced(num, den int64) Ratio {
	if den < 0 {
		num, den = -num, -den
	}
	if num == 0 {
		return Ratio{num: 0, den: 1}
	}
	g := gcd(abs(num), den)
	return Ratio{num: num / g, den: den / g}
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

// Num returns the numerator.
func (r Ratio) Num() int64 {
	if r.den == 0 {
		return 0 // zero value normalizes to 0/1
	}
	return r.num
}

// Den returns the denominator. Always positive.
func (r Ratio) Den() int64 {
	if r.den == 0 {
		return 1
	}
	return r.den
}

// IsZero reports whether the ratio is zero.
func (r Ratio) IsZero() bool {
	return r.Num() == 0
}

// IsOne reports whether the ratio is exactly one.
func (r Ratio) IsOne() bool {
	return r.Num() == 1 && r.Den() == 1
}

// IsInteger reports whether the ratio is a whole number.
func (r Ratio) IsInteger() bool {
	return r.Den() == 1
}

// Positive reports whether the ratio is strictly greater than zero.
func (r Ratio) Positive() bool {
	return r.Num() > 0
}

// Mul returns r*o in lowest terms. Factors are cross-reduced before
// multiplying so musically sensible chains stay far from overflow.
func (r Ratio) Mul(o Ratio) Ratio {
	a, b := r.Num(), r.Den()
	c, d := o.Num(), o.Den()
	g1 := gcd(abs(a), d)
	g2 := gcd(abs(c), b)
	if g1 == 0 {
		g1 = 1
	}
	if g2 == 0 {
		g2 = 1
	}
	return reduced((a/g1)*(c/g2), (b/g2)*(d/g1))
}

// Div returns r/o. The divisor must be nonzero.
func (r Ratio) Div(o Ratio) (Ratio, error) {
	if o.IsZero() {
		return Ratio{}, ErrZeroDenominator
	}
	return r.Mul(Ratio{num: o.Den(), den: o.Num()}.normalize()), nil
}

func (r Ratio) normalize() Ratio {
	return reduced(r.num, r.den)
}

// Inverse returns 1/r. The ratio must be nonzero.
func (r Ratio) Inverse() (Ratio, error) {
	return One().Div(r)
}

// Add returns r+o in lowest terms.
func (r Ratio) Add(o Ratio) Ratio {
	return reduced(r.Num()*o.Den()+o.Num()*r.Den(), r.Den()*o.Den())
}

// Cmp compares r and o, returning -1, 0, or +1.
func (r Ratio) Cmp(o Ratio) int {
	// Denominators are positive so cross-multiplication preserves order.
	lhs := r.Num() * o.Den()
	rhs := o.Num() * r.Den()
	switch {
	case lhs < rhs:
		return -1
	case lhs > rhs:
		return +1
	default:
		return 0
	}
}

// Float returns the ratio as a float64. Exactness ends here; use only at
// the evaluation boundary.
func (r Ratio) Float() float64 {
	return float64(r.Num()) / float64(r.Den())
}

// String renders the ratio in source notation: "3/2", or "3" for whole
// numbers.
func (r Ratio) String() string {
	if r.IsInteger() {
		return fmt.Sprintf("%d", r.Num())
	}
	return fmt.Sprintf("%d/%d", r.Num(), r.Den())
}

package ratio

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrEmptyProduct is returned when constructing a RatioProduct with no
// factors.
var ErrEmptyProduct = errors.New("ratio: product needs at least one factor")

// Frequency is a sealed interface over the two ways a note's frequency
// multiplier can be represented. Only RatioProduct (exact rational) and
// Power (tempered power of two) implement it. Exactly one case is present
// on any note; call sites branch exhaustively.
type Frequency interface {
	frequency() // sealed

	// Float returns the frequency multiplier as a float64.
	Float() float64

	// Canonical returns a reduced textual form usable as a map key:
	// equal frequency values produce equal strings.
	Canonical() string

	// String renders the frequency in source notation.
	String() string
}

// RatioProduct is an ordered product of ratios. The effective value is the
// reduced product; the individual factors are retained so a transposed
// interval shows its provenance (e.g. 9/8*5/4 after multiplying 5/4 by a
// 9/8 root).
type RatioProduct struct {
	factors []Ratio
}

// Product creates a RatioProduct from one or more factors.
func Product(factors ...Ratio) (RatioProduct, error) {
	if len(factors) == 0 {
		return RatioProduct{}, ErrEmptyProduct
	}
	fs := make([]Ratio, len(factors))
	copy(fs, factors)
	return RatioProduct{factors: fs}, nil
}

// ProductOf creates a single-factor product.
func ProductOf(r Ratio) RatioProduct {
	return RatioProduct{factors: []Ratio{r}}
}

func (p RatioProduct) frequency() {}

// Factors returns a copy of the product's factors in order.
func (p RatioProduct) Factors() []Ratio {
	fs := make([]Ratio, len(p.factors))
	copy(fs, p.factors)
	return fs
}

// Value returns the reduced product of the factors.
func (p RatioProduct) Value() Ratio {
	v := One()
	for _, f := range p.factors {
		v = v.Mul(f)
	}
	return v
}

// Mul returns a new product with o's factors appended after p's.
func (p RatioProduct) Mul(o RatioProduct) RatioProduct {
	fs := make([]Ratio, 0, len(p.factors)+len(o.factors))
	fs = append(fs, p.factors...)
	fs = append(fs, o.factors...)
	return RatioProduct{factors: fs}
}

// IsZero reports whether the product evaluates to zero (a rest frequency).
func (p RatioProduct) IsZero() bool {
	return p.Value().IsZero()
}

// Float returns the reduced product as a float64.
func (p RatioProduct) Float() float64 {
	return p.Value().Float()
}

// Canonical returns the reduced value in source notation.
func (p RatioProduct) Canonical() string {
	return p.Value().String()
}

// String renders the factors joined by '*', e.g. "9/8*5/4".
func (p RatioProduct) String() string {
	parts := make([]string, len(p.factors))
	for i, f := range p.factors {
		parts[i] = f.String()
	}
	return strings.Join(parts, "*")
}

// Power is a tempered pitch: the frequency multiplier 2^(steps/divisions)
// of a fixed base 2. Produced only by tempering into `divisions` equal
// divisions of the octave. The raw steps/divisions pair is kept so the
// step count stays legible (2**8/12 rather than 2**2/3); arithmetic and
// equality use the reduced exponent.
type Power struct {
	steps     int64
	divisions int64
}

// NewPower creates the power 2^(steps/divisions). Divisions must be
// positive; construction with divisions <= 0 is refused upstream.
func NewPower(steps, divisions int64) Power {
	return Power{steps: steps, divisions: divisions}
}

func (p Power) frequency() {}

// Steps returns the number of EDO steps above (or below) the reference.
func (p Power) Steps() int64 {
	return p.steps
}

// Divisions returns the number of equal divisions of the octave.
func (p Power) Divisions() int64 {
	if p.divisions == 0 {
		return 1
	}
	return p.divisions
}

// Exponent returns the exact exponent of two, in lowest terms.
func (p Power) Exponent() Ratio {
	return reduced(p.steps, p.Divisions())
}

// Float returns 2^(steps/divisions) as a float64.
func (p Power) Float() float64 {
	return math.Exp2(float64(p.steps) / float64(p.Divisions()))
}

// Canonical returns the reduced exponent form, e.g. "2**7/12"; equal
// tempered pitches produce equal strings even across different divisions.
func (p Power) Canonical() string {
	return "2**" + p.Exponent().String()
}

// String renders the power with the tempering denominator visible,
// e.g. "2**8/12".
func (p Power) String() string {
	if p.Divisions() == 1 {
		return fmt.Sprintf("2**%d", p.steps)
	}
	return fmt.Sprintf("2**%d/%d", p.steps, p.Divisions())
}

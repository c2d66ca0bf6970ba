package ratio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductNeedsFactors(t *testing.T) {
	_, err := Product()
	require.ErrorIs(t, err, ErrEmptyProduct)
}

func TestProductValueIsLowestTermsProduct(t *testing.T) {
	tests := []struct {
		name    string
		factors []Ratio
		want    Ratio
	}{
		{"single", []Ratio{mustNew(t, 5, 4)}, mustNew(t, 5, 4)},
		{"fifth_from_thirds", []Ratio{mustNew(t, 5, 4), mustNew(t, 6, 5)}, mustNew(t, 3, 2)},
		{"with_rest", []Ratio{mustNew(t, 9, 8), Zero()}, Zero()},
		{"three_factors", []Ratio{mustNew(t, 2, 1), mustNew(t, 3, 2), mustNew(t, 4, 3)}, mustNew(t, 4, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Product(tt.factors...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Value())
		})
	}
}

func TestProductValueEqualsFactorValueProduct(t *testing.T) {
	r1 := mustNew(t, 7, 6)
	r2 := mustNew(t, 9, 8)
	p, err := Product(r1, r2)
	require.NoError(t, err)
	assert.Equal(t, r1.Mul(r2), p.Value())
}

func TestProductKeepsFactorOrder(t *testing.T) {
	p, err := Product(mustNew(t, 9, 8), mustNew(t, 5, 4))
	require.NoError(t, err)
	assert.Equal(t, "9/8*5/4", p.String())
	assert.Equal(t, "45/32", p.Canonical())
}

func TestProductMulAppendsFactors(t *testing.T) {
	root := ProductOf(mustNew(t, 9, 8))
	note := ProductOf(mustNew(t, 5, 4))
	got := root.Mul(note)
	assert.Equal(t, "9/8*5/4", got.String())
	// Originals are unchanged.
	assert.Equal(t, "9/8", root.String())
	assert.Equal(t, "5/4", note.String())
}

func TestProductFactorsCopies(t *testing.T) {
	p := ProductOf(mustNew(t, 3, 2))
	fs := p.Factors()
	fs[0] = Zero()
	assert.Equal(t, "3/2", p.String())
}

func TestPowerKeepsDivisionsVisible(t *testing.T) {
	p := NewPower(8, 12)
	assert.Equal(t, "2**8/12", p.String())
	assert.Equal(t, "2**2/3", p.Canonical())
	assert.Equal(t, mustNew(t, 2, 3), p.Exponent())
}

func TestPowerFloat(t *testing.T) {
	assert.InDelta(t, 2.0, NewPower(12, 12).Float(), 1e-12)
	assert.InDelta(t, 1.0, NewPower(0, 19).Float(), 1e-12)
	// 700 cents, the 12EDO fifth.
	assert.InDelta(t, 1.4983070768766815, NewPower(7, 12).Float(), 1e-12)
}

func TestFrequencyCanonicalDistinguishesCases(t *testing.T) {
	// An exact 2/1 and a tempered octave have the same float value but
	// remain distinct frequency cases.
	exact := Frequency(ProductOf(mustNew(t, 2, 1)))
	tempered := Frequency(NewPower(12, 12))
	assert.InDelta(t, exact.Float(), tempered.Float(), 1e-12)
	assert.NotEqual(t, exact.Canonical(), tempered.Canonical())
}

package polynomial

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eth2030/kzg/crypto/bls12381"
	"github.com/eth2030/kzg/crypto/field"
)

func TestToyDomain(t *testing.T) {
	d, err := NewDomain(f17, 2)
	require.NoError(t, err)
	require.Equal(t, uint64(1), d.Element(0).Uint64())
	require.Equal(t, uint64(16), d.Element(1).Uint64())
	require.Equal(t, 1, d.Index(f17.FromUint64(16)))
	require.Equal(t, -1, d.Index(f17.FromUint64(2)))
	require.Equal(t, -1, d.Index(f97.FromUint64(1)))

	d4, err := NewDomain(f17, 4)
	require.NoError(t, err)
	require.Equal(t, uint64(13), d4.Generator().Uint64())
	require.True(t, d4.Generator().Mul(d4.GeneratorInv()).IsOne())
}

func TestNewDomainRejectsInvalidSizes(t *testing.T) {
	tests := []struct {
		name string
		g    field.Element
		n    int
	}{
		{"zero", f17.NonResidue(), 0},
		{"not a power of two", f17.NonResidue(), 6},
		{"does not divide p-1", f17.NonResidue(), 32},
		{"generator order too small", f17.FromUint64(4), 16},
		{"zero generator", f17.Zero(), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDomainWithGenerator(tt.g, tt.n)
			require.ErrorIs(t, err, ErrInvalidDomainSize)
		})
	}
}

func TestFFTMatchesHorner(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, n := range []int{1, 2, 4, 8, 16} {
		d, err := NewDomain(f17, n)
		require.NoError(t, err)
		p := randPoly(t, f17, rng, n)
		evals, err := d.FFT(p)
		require.NoError(t, err)
		for i := range evals {
			require.True(t, evals[i].Equal(p.Evaluate(d.Element(i))), "n=%d i=%d", n, i)
		}
	}
}

func TestFFTRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	d, err := NewDomainWithGenerator(bls12381.Fr.FromUint64(bls12381.PrimitiveRoot), 64)
	require.NoError(t, err)
	coeffs := randPoly(t, bls12381.Fr, rng, 64)

	evals, err := d.FFT(coeffs)
	require.NoError(t, err)
	back, err := d.InverseFFT(evals)
	require.NoError(t, err)
	require.True(t, Polynomial(back).Equal(coeffs))

	// Input slices are not modified.
	evals2, err := d.FFT(coeffs)
	require.NoError(t, err)
	require.True(t, Polynomial(evals2).Equal(evals))
}

func TestFFTImpulse(t *testing.T) {
	d, err := NewDomain(f97, 8)
	require.NoError(t, err)

	// A constant polynomial evaluates to the same value everywhere.
	constant := FromUint64(f97, 42, 0, 0, 0, 0, 0, 0, 0)
	evals, err := d.FFT(constant)
	require.NoError(t, err)
	for _, e := range evals {
		require.Equal(t, uint64(42), e.Uint64())
	}

	// X evaluates to the domain itself.
	x := FromUint64(f97, 0, 1, 0, 0, 0, 0, 0, 0)
	evals, err = d.FFT(x)
	require.NoError(t, err)
	require.True(t, Polynomial(evals).Equal(d.Roots()))
}

func TestFFTParallelismDoesNotChangeResult(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	d, err := NewDomainWithGenerator(bls12381.Fr.FromUint64(bls12381.PrimitiveRoot), 4096)
	require.NoError(t, err)
	coeffs := randPoly(t, bls12381.Fr, rng, 4096)

	serial, err := d.WithParallelism(1).FFT(coeffs)
	require.NoError(t, err)
	parallel, err := d.WithParallelism(8).FFT(coeffs)
	require.NoError(t, err)
	require.True(t, Polynomial(serial).Equal(parallel))

	back, err := d.WithParallelism(3).InverseFFT(parallel)
	require.NoError(t, err)
	require.True(t, Polynomial(back).Equal(coeffs))
}

func TestFFTErrors(t *testing.T) {
	d, err := NewDomain(f17, 4)
	require.NoError(t, err)

	_, err = d.FFT(FromUint64(f17, 1, 2, 3))
	require.ErrorIs(t, err, ErrDomainSizeMismatch)
	_, err = d.InverseFFT(FromUint64(f17, 1, 2, 3, 4, 5))
	require.ErrorIs(t, err, ErrDomainSizeMismatch)
	_, err = d.FFT(FromUint64(f97, 1, 2, 3, 4))
	require.ErrorIs(t, err, field.ErrFieldMismatch)
	_, err = d.EvaluateLagrange(FromUint64(f17, 1, 2), f17.One())
	require.ErrorIs(t, err, ErrDomainSizeMismatch)
	_, err = d.EvaluateLagrange(FromUint64(f17, 1, 2, 3, 4), f97.One())
	require.ErrorIs(t, err, field.ErrFieldMismatch)
}

func TestEvaluateLagrange(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	d, err := NewDomain(f97, 16)
	require.NoError(t, err)
	p := randPoly(t, f97, rng, 16)
	evals, err := d.FFT(p)
	require.NoError(t, err)

	for z := uint64(0); z < 97; z++ {
		pt := f97.FromUint64(z)
		got, err := d.EvaluateLagrange(evals, pt)
		require.NoError(t, err)
		require.True(t, got.Equal(p.Evaluate(pt)), "z=%d", z)
	}

	// Domain points return the stored value.
	for i := 0; i < d.Size(); i++ {
		got, err := d.EvaluateLagrange(evals, d.Element(i))
		require.NoError(t, err)
		require.True(t, got.Equal(evals[i]))
	}
}

func TestBitReverse(t *testing.T) {
	s := []int{0, 1, 2, 3, 4, 5, 6, 7}
	BitReverse(s)
	require.Equal(t, []int{0, 4, 2, 6, 1, 5, 3, 7}, s)
	BitReverse(s)
	require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, s)

	two := []int{1, 2}
	BitReverse(two)
	require.Equal(t, []int{1, 2}, two)

	require.Panics(t, func() { BitReverse(make([]int, 6)) })
}

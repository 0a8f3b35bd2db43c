package polynomial

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eth2030/kzg/crypto/field"
)

var (
	f17 = field.MustPrimeField(big.NewInt(17))
	f97 = field.MustPrimeField(big.NewInt(97))
)

func randPoly(t *testing.T, f *field.PrimeField, rng *rand.Rand, n int) Polynomial {
	t.Helper()
	p := make(Polynomial, n)
	for i := range p {
		v, err := f.Random(rng)
		require.NoError(t, err)
		p[i] = v
	}
	return p
}

func TestDegree(t *testing.T) {
	tests := []struct {
		name   string
		coeffs []uint64
		want   int
	}{
		{"empty", nil, -1},
		{"all zero", []uint64{0, 0, 0}, -1},
		{"constant", []uint64{5}, 0},
		{"trailing zeros", []uint64{3, 1, 0, 0}, 1},
		{"cubic", []uint64{0, 0, 0, 9}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := FromUint64(f17, tt.coeffs...)
			require.Equal(t, tt.want, p.Degree())
			require.Equal(t, tt.want < 0, p.IsZero())
		})
	}
}

func TestEqualIgnoresTrailingZeros(t *testing.T) {
	require.True(t, FromUint64(f17, 3, 1).Equal(FromUint64(f17, 3, 1, 0, 0)))
	require.True(t, Polynomial{}.Equal(FromUint64(f17, 0)))
	require.False(t, FromUint64(f17, 3, 1).Equal(FromUint64(f17, 3, 2)))
}

func TestEvaluate(t *testing.T) {
	p := FromUint64(f17, 3, 1)
	require.Equal(t, uint64(4), p.Evaluate(f17.FromUint64(1)).Uint64())
	require.Equal(t, uint64(2), p.Evaluate(f17.FromUint64(16)).Uint64())
	require.True(t, Polynomial{}.Evaluate(f17.FromUint64(7)).IsZero())

	// 1 + 2x + 3x^2 at x = 2 is 17 = 0 mod 17.
	require.True(t, FromUint64(f17, 1, 2, 3).Evaluate(f17.FromUint64(2)).IsZero())
}

func TestDivideByLinear(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for n := 0; n < 8; n++ {
		p := randPoly(t, f97, rng, n)
		z, err := f97.Random(rng)
		require.NoError(t, err)

		q, rem := p.DivideByLinear(z)
		require.True(t, rem.Equal(p.Evaluate(z)))
		if n > 0 {
			require.Len(t, q, n-1)
		}

		// p = q * (X - z) + rem
		linear := New(z.Neg(), f97.One())
		require.True(t, q.Mul(linear).Add(New(rem)).Equal(p), "n=%d", n)
	}
}

func TestDivideByLinearExactAtRoot(t *testing.T) {
	// (3 + x) - 4 = x - 1, so the quotient at z = 1 is the constant 1.
	p := FromUint64(f17, 3, 1).Sub(FromUint64(f17, 4))
	q, rem := p.DivideByLinear(f17.One())
	require.True(t, rem.IsZero())
	require.True(t, q.Equal(FromUint64(f17, 1)))
}

func TestArithmetic(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	a, b := randPoly(t, f97, rng, 5), randPoly(t, f97, rng, 3)
	z, err := f97.Random(rng)
	require.NoError(t, err)
	k := f97.FromUint64(11)

	require.True(t, a.Add(b).Evaluate(z).Equal(a.Evaluate(z).Add(b.Evaluate(z))))
	require.True(t, a.Sub(b).Evaluate(z).Equal(a.Evaluate(z).Sub(b.Evaluate(z))))
	require.True(t, a.Mul(b).Evaluate(z).Equal(a.Evaluate(z).Mul(b.Evaluate(z))))
	require.True(t, a.Scale(k).Evaluate(z).Equal(a.Evaluate(z).Mul(k)))
	require.True(t, a.Sub(a).IsZero())
	require.NoError(t, a.CheckField(f97))
	require.ErrorIs(t, a.CheckField(f17), field.ErrFieldMismatch)
}

func TestMixedFieldsPanic(t *testing.T) {
	require.Panics(t, func() {
		FromUint64(f17, 1, 2).Evaluate(f97.FromUint64(3))
	})
	require.Panics(t, func() {
		FromUint64(f17, 1, 2).DivideByLinear(f97.FromUint64(3))
	})
}

package field

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	blsP = "1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffaaab"
	blsR = "73eda753299d7d483339d80809a1d80553bda402fffe5bfeffffffff00000001"
)

func testFields(t *testing.T) []*PrimeField {
	t.Helper()
	var out []*PrimeField
	for _, m := range []int64{3, 7, 17, 67, 101, 4294967311} {
		f, err := NewPrimeField(big.NewInt(m))
		require.NoError(t, err)
		out = append(out, f)
	}
	// 2^64 - 59 exercises the top-word carry in a single limb.
	p64, _ := new(big.Int).SetString("18446744073709551557", 10)
	out = append(out, MustPrimeField(p64))
	out = append(out, NewTrustedPrimeField(blsR), NewTrustedPrimeField(blsP))
	return out
}

func randElem(t *testing.T, f *PrimeField, rng *rand.Rand) Element {
	t.Helper()
	e, err := f.Random(rng)
	require.NoError(t, err)
	return e
}

func TestNewPrimeFieldRejectsBadModuli(t *testing.T) {
	tests := []struct {
		name    string
		modulus *big.Int
	}{
		{"nil", nil},
		{"zero", big.NewInt(0)},
		{"negative", big.NewInt(-7)},
		{"one", big.NewInt(1)},
		{"two", big.NewInt(2)},
		{"even", big.NewInt(16)},
		{"composite", big.NewInt(15)},
		{"carmichael", big.NewInt(561)},
		{"large composite", new(big.Int).Mul(big.NewInt(4294967311), big.NewInt(4294967357))},
		{"too wide", new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), 400), big.NewInt(1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPrimeField(tt.modulus)
			require.ErrorIs(t, err, ErrInvalidModulus)
		})
	}
}

func TestArithmeticMatchesBigInt(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, f := range testFields(t) {
		t.Run(f.String(), func(t *testing.T) {
			m := f.Modulus()
			for i := 0; i < 50; i++ {
				a, b := randElem(t, f, rng), randElem(t, f, rng)
				ab, bb := a.BigInt(), b.BigInt()

				want := new(big.Int).Add(ab, bb)
				require.Zero(t, want.Mod(want, m).Cmp(a.Add(b).BigInt()), "add")
				want = new(big.Int).Sub(ab, bb)
				require.Zero(t, want.Mod(want, m).Cmp(a.Sub(b).BigInt()), "sub")
				want = new(big.Int).Mul(ab, bb)
				require.Zero(t, want.Mod(want, m).Cmp(a.Mul(b).BigInt()), "mul")
				want = new(big.Int).Neg(ab)
				require.Zero(t, want.Mod(want, m).Cmp(a.Neg().BigInt()), "neg")
				require.True(t, a.Square().Equal(a.Mul(a)), "square")
				require.True(t, a.Double().Equal(a.Add(a)), "double")
			}
		})
	}
}

func TestFieldLaws(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for _, f := range testFields(t) {
		t.Run(f.String(), func(t *testing.T) {
			for i := 0; i < 30; i++ {
				a, b := randElem(t, f, rng), randElem(t, f, rng)
				require.True(t, a.Add(b).Sub(b).Equal(a))
				if !b.IsZero() {
					q, err := a.Mul(b).Div(b)
					require.NoError(t, err)
					require.True(t, q.Equal(a))
				}
				if !a.IsZero() {
					inv, err := a.Inverse()
					require.NoError(t, err)
					require.True(t, a.Mul(inv).IsOne())
				}
			}
		})
	}
}

func TestDivisionByZero(t *testing.T) {
	f := MustPrimeField(big.NewInt(17))
	_, err := f.FromUint64(5).Div(f.Zero())
	require.ErrorIs(t, err, ErrDivisionByZero)
	_, err = f.Zero().Inverse()
	require.ErrorIs(t, err, ErrDivisionByZero)
}

func TestSubtractionWraps(t *testing.T) {
	f := MustPrimeField(big.NewInt(17))
	got := f.FromUint64(3).Sub(f.FromUint64(5))
	require.Equal(t, uint64(15), got.Uint64())
	require.Equal(t, uint64(16), f.FromInt64(-1).Uint64())
}

func TestFieldMismatch(t *testing.T) {
	f17 := MustPrimeField(big.NewInt(17))
	f7 := MustPrimeField(big.NewInt(7))
	a, b := f17.FromUint64(3), f7.FromUint64(3)

	require.PanicsWithError(t, mismatch("add", f17, f7).Error(), func() { a.Add(b) })
	require.Panics(t, func() { a.Mul(b) })
	require.Panics(t, func() { Element{}.Add(a) })

	_, err := a.Div(b)
	require.ErrorIs(t, err, ErrFieldMismatch)
	require.ErrorIs(t, f17.Check(a, b), ErrFieldMismatch)
	require.False(t, a.Equal(b))

	// Separately constructed descriptors for the same modulus interoperate.
	g17 := MustPrimeField(big.NewInt(17))
	require.True(t, a.Add(g17.FromUint64(14)).IsZero())
}

func TestCmov(t *testing.T) {
	f := NewTrustedPrimeField(blsR)
	a, b := f.FromUint64(11), f.FromUint64(22)
	require.True(t, a.Cmov(b, 0).Equal(a))
	require.True(t, a.Cmov(b, 1).Equal(b))
}

func TestBytesRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, f := range testFields(t) {
		a := randElem(t, f, rng)
		buf := a.Bytes()
		require.Len(t, buf, f.ByteLen())
		b, err := f.FromBytes(buf)
		require.NoError(t, err)
		require.True(t, a.Equal(b))
	}

	f := MustPrimeField(big.NewInt(17))
	_, err := f.FromBytes([]byte{17})
	require.ErrorIs(t, err, ErrNonCanonical)
	_, err = f.FromBytes([]byte{0, 1})
	require.ErrorIs(t, err, ErrNonCanonical)
}

func TestSqrt(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for _, f := range testFields(t) {
		t.Run(f.String(), func(t *testing.T) {
			for i := 0; i < 20; i++ {
				a := randElem(t, f, rng)
				sq := a.Square()
				r, ok := sq.Sqrt()
				require.True(t, ok)
				require.True(t, r.Square().Equal(sq))
			}
			_, ok := f.NonResidue().Sqrt()
			require.False(t, ok)
			require.Equal(t, -1, f.NonResidue().Legendre())
		})
	}
}

func TestSmallFieldConstants(t *testing.T) {
	f := MustPrimeField(big.NewInt(17))
	require.Equal(t, uint64(3), f.NonResidue().Uint64())
	require.Equal(t, 1, f.ByteLen())
	require.Equal(t, 5, f.BitLen())

	inv, err := f.FromUint64(3).Inverse()
	require.NoError(t, err)
	require.Equal(t, uint64(6), inv.Uint64())

	require.True(t, f.FromUint64(9).LexicographicallyLargest())
	require.False(t, f.FromUint64(8).LexicographicallyLargest())
}

func TestBatchInverse(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	f := NewTrustedPrimeField(blsR)
	in := make([]Element, 16)
	for i := range in {
		in[i] = randElem(t, f, rng)
	}
	out, err := BatchInverse(in)
	require.NoError(t, err)
	for i := range in {
		require.True(t, in[i].Mul(out[i]).IsOne())
	}

	in[7] = f.Zero()
	_, err = BatchInverse(in)
	require.ErrorIs(t, err, ErrDivisionByZero)
}

func TestExpNegative(t *testing.T) {
	f := MustPrimeField(big.NewInt(101))
	a := f.FromUint64(13)
	inv, err := a.Inverse()
	require.NoError(t, err)
	require.True(t, a.Exp(big.NewInt(-1)).Equal(inv))
}

func TestPowers(t *testing.T) {
	f := MustPrimeField(big.NewInt(17))
	got := Powers(f.FromUint64(3), 5)
	for i, want := range []uint64{1, 3, 9, 10, 13} {
		require.Equal(t, want, got[i].Uint64(), "3^%d", i)
	}
	require.Empty(t, Powers(f.FromUint64(3), 0))
}

package kzg

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eth2030/kzg/crypto/bls12381"
	"github.com/eth2030/kzg/crypto/curve"
	"github.com/eth2030/kzg/crypto/field"
	"github.com/eth2030/kzg/crypto/supersingular"
	"github.com/eth2030/kzg/polynomial"
)

// toySetup is the setup over the 17-element scalar field with secret 5.
func toySetup(t *testing.T, n int) *TrustedSetup {
	t.Helper()
	e := supersingular.Default()
	s, err := NewInsecureSetup(e, e.ScalarField().FromUint64(5), n)
	require.NoError(t, err)
	return s
}

func TestToyEndToEnd(t *testing.T) {
	setup := toySetup(t, 2)
	fr := setup.Engine().ScalarField()
	g := setup.Engine().G1().Generator()

	p := polynomial.FromUint64(fr, 3, 1)
	c, err := Commit(setup, p)
	require.NoError(t, err)
	require.True(t, c.Point().Equal(g.ScalarMul(fr.FromUint64(8))), "p(5) = 8")

	z := fr.FromUint64(1)
	value, proof, err := Open(setup, p, z)
	require.NoError(t, err)
	require.Equal(t, uint64(4), value.Uint64())
	require.True(t, proof.Point().Equal(g), "quotient is the constant 1")

	ok, err := Verify(setup, c, z, value, proof)
	require.NoError(t, err)
	require.True(t, ok)

	t.Run("tampered value", func(t *testing.T) {
		for d := uint64(1); d < 17; d++ {
			ok, err := Verify(setup, c, z, value.Add(fr.FromUint64(d)), proof)
			require.NoError(t, err)
			require.False(t, ok, "value + %d", d)
		}
	})

	t.Run("tampered proof bytes", func(t *testing.T) {
		b := proof.Bytes()
		b[len(b)-1]++
		bad, err := setup.ProofFromBytes(b)
		if err != nil {
			require.ErrorIs(t, err, curve.ErrInvalidPoint)
			return
		}
		ok, err := Verify(setup, c, z, value, bad)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("shifted proof", func(t *testing.T) {
		ok, err := Verify(setup, c, z, value, NewProof(proof.Point().Add(g)))
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("wrong point", func(t *testing.T) {
		ok, err := Verify(setup, c, fr.FromUint64(2), value, proof)
		require.NoError(t, err)
		require.False(t, ok)
	})
}

func TestToyExhaustive(t *testing.T) {
	setup := toySetup(t, 3)
	fr := setup.Engine().ScalarField()
	p := polynomial.FromUint64(fr, 7, 0, 11)
	c, err := Commit(setup, p)
	require.NoError(t, err)

	for z := uint64(0); z < 17; z++ {
		zz := fr.FromUint64(z)
		value, proof, err := Open(setup, p, zz)
		require.NoError(t, err)
		require.True(t, value.Equal(p.Evaluate(zz)))

		ok, err := Verify(setup, c, zz, value, proof)
		require.NoError(t, err)
		require.True(t, ok, "z = %d", z)
	}
}

func TestZeroPolynomial(t *testing.T) {
	setup := toySetup(t, 4)
	fr := setup.Engine().ScalarField()

	for _, p := range []polynomial.Polynomial{nil, polynomial.FromUint64(fr, 0, 0, 0)} {
		c, err := Commit(setup, p)
		require.NoError(t, err)
		require.True(t, c.Point().IsInfinity())

		z := fr.FromUint64(9)
		value, proof, err := Open(setup, p, z)
		require.NoError(t, err)
		require.True(t, value.IsZero())
		require.True(t, proof.Point().IsInfinity())

		ok, err := Verify(setup, c, z, value, proof)
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestDegreeTooLarge(t *testing.T) {
	setup := toySetup(t, 2)
	fr := setup.Engine().ScalarField()
	p := polynomial.FromUint64(fr, 1, 2, 3)

	_, err := Commit(setup, p)
	require.ErrorIs(t, err, ErrDegreeTooLarge)
	_, _, err = Open(setup, p, fr.One())
	require.ErrorIs(t, err, ErrDegreeTooLarge)
}

func TestFieldMismatch(t *testing.T) {
	setup := toySetup(t, 2)
	other := bls12381.Fr

	_, err := Commit(setup, polynomial.FromUint64(other, 1, 2))
	require.ErrorIs(t, err, field.ErrFieldMismatch)

	fr := setup.Engine().ScalarField()
	_, _, err = Open(setup, polynomial.FromUint64(fr, 1, 2), other.One())
	require.ErrorIs(t, err, field.ErrFieldMismatch)

	c, err := Commit(setup, polynomial.FromUint64(fr, 1, 2))
	require.NoError(t, err)
	_, err = Verify(setup, c, other.One(), fr.One(), NewProof(setup.G1Power(0)))
	require.ErrorIs(t, err, field.ErrFieldMismatch)
}

func TestEngineMismatch(t *testing.T) {
	setup := toySetup(t, 2)
	fr := setup.Engine().ScalarField()
	c, err := Commit(setup, polynomial.FromUint64(fr, 1))
	require.NoError(t, err)

	foreign := NewProof(bls12381.G1().Generator())
	_, err = Verify(setup, c, fr.One(), fr.One(), foreign)
	require.ErrorIs(t, err, ErrEngineMismatch)

	// Same parameters, distinct curve instance.
	e2, err := supersingular.NewEngine(big.NewInt(67), big.NewInt(17))
	require.NoError(t, err)
	_, err = Verify(setup, NewCommitment(e2.G1().Generator()), fr.One(), fr.One(), NewProof(setup.G1Power(0)))
	require.ErrorIs(t, err, ErrEngineMismatch)
}

func TestNewTrustedSetup(t *testing.T) {
	e := supersingular.Default()
	good := toySetup(t, 3)

	s, err := NewTrustedSetup(e, good.G1Powers(), good.G2Powers())
	require.NoError(t, err)
	require.Equal(t, 3, s.Len())
	for i := 0; i < 3; i++ {
		require.True(t, s.G1Power(i).Equal(good.G1Power(i)))
	}

	tests := []struct {
		name string
		g1   []curve.G1
		g2   []curve.G2
	}{
		{"no G1 powers", nil, good.G2Powers()},
		{"one G2 power", good.G1Powers(), good.G2Powers()[:1]},
		{"identity generator", []curve.G1{e.G1().Infinity()}, good.G2Powers()},
		{"identity G2 generator", good.G1Powers(), []curve.G2{e.G2().Infinity(), e.G2().Generator()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTrustedSetup(e, tt.g1, tt.g2)
			require.ErrorIs(t, err, ErrInvalidSetup)
		})
	}

	t.Run("point outside G2", func(t *testing.T) {
		fp2 := e.G2().Field().(*field.Ext2Field)
		bad, err := e.G2().NewPoint(fp2.FromUint64(62, 0), fp2.FromUint64(2, 0))
		require.NoError(t, err)
		_, err = NewTrustedSetup(e, good.G1Powers(), []curve.G2{e.G2().Generator(), bad})
		require.ErrorIs(t, err, curve.ErrInvalidPoint)
	})

	t.Run("setup copies its input", func(t *testing.T) {
		g1 := good.G1Powers()
		s, err := NewTrustedSetup(e, g1, good.G2Powers())
		require.NoError(t, err)
		g1[0] = e.G1().Infinity()
		require.False(t, s.G1Power(0).IsInfinity())
	})
}

func TestNewInsecureSetupRejectsBadInput(t *testing.T) {
	e := supersingular.Default()
	fr := e.ScalarField()

	_, err := NewInsecureSetup(e, fr.FromUint64(5), 0)
	require.ErrorIs(t, err, ErrInvalidSetup)
	_, err = NewInsecureSetup(e, fr.Zero(), 4)
	require.ErrorIs(t, err, ErrInvalidSetup)
	_, err = NewInsecureSetup(e, bls12381.Fr.FromUint64(5), 4)
	require.ErrorIs(t, err, field.ErrFieldMismatch)
}

func TestCommitIsLinear(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	setup := toySetup(t, 8)
	fr := setup.Engine().ScalarField()

	randPoly := func() polynomial.Polynomial {
		p := make(polynomial.Polynomial, 8)
		for i := range p {
			e, err := fr.Random(rng)
			require.NoError(t, err)
			p[i] = e
		}
		return p
	}
	a, b := randPoly(), randPoly()
	ca, err := Commit(setup, a)
	require.NoError(t, err)
	cb, err := Commit(setup, b)
	require.NoError(t, err)
	cab, err := Commit(setup, a.Add(b))
	require.NoError(t, err)
	require.True(t, cab.Point().Equal(ca.Point().Add(cb.Point())))
}

func TestBLSOpening(t *testing.T) {
	if testing.Short() {
		t.Skip("pairing on BLS12-381")
	}
	rng := rand.New(rand.NewSource(5))
	setup, err := NewInsecureSetup(bls12381.Default(), bls12381.Fr.FromUint64(1337), 8)
	require.NoError(t, err)

	p := make(polynomial.Polynomial, 8)
	for i := range p {
		e, err := bls12381.Fr.Random(rng)
		require.NoError(t, err)
		p[i] = e
	}
	c, err := Commit(setup, p)
	require.NoError(t, err)

	z, err := bls12381.Fr.Random(rng)
	require.NoError(t, err)
	value, proof, err := Open(setup, p, z)
	require.NoError(t, err)

	ok, err := Verify(setup, c, z, value, proof)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = Verify(setup, c, z, value.Add(bls12381.Fr.One()), proof)
	require.NoError(t, err)
	require.False(t, ok)
}

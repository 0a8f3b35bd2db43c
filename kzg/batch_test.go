package kzg

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eth2030/kzg/crypto/field"
	"github.com/eth2030/kzg/polynomial"
)

type opening struct {
	c     Commitment
	z, y  field.Element
	proof Proof
}

func toyOpenings(t *testing.T, setup *TrustedSetup) []opening {
	t.Helper()
	fr := setup.Engine().ScalarField()
	polys := []polynomial.Polynomial{
		polynomial.FromUint64(fr, 3, 1),
		polynomial.FromUint64(fr, 0, 5, 2),
		polynomial.FromUint64(fr, 16),
		nil,
	}
	out := make([]opening, len(polys))
	for i, p := range polys {
		c, err := Commit(setup, p)
		require.NoError(t, err)
		z := fr.FromUint64(uint64(2*i + 1))
		y, proof, err := Open(setup, p, z)
		require.NoError(t, err)
		out[i] = opening{c, z, y, proof}
	}
	return out
}

func split(os []opening) ([]Commitment, []field.Element, []field.Element, []Proof) {
	cs := make([]Commitment, len(os))
	zs := make([]field.Element, len(os))
	ys := make([]field.Element, len(os))
	ps := make([]Proof, len(os))
	for i, o := range os {
		cs[i], zs[i], ys[i], ps[i] = o.c, o.z, o.y, o.proof
	}
	return cs, zs, ys, ps
}

func TestBatchVerify(t *testing.T) {
	setup := toySetup(t, 3)
	fr := setup.Engine().ScalarField()
	openings := toyOpenings(t, setup)

	t.Run("valid", func(t *testing.T) {
		cs, zs, ys, ps := split(openings)
		ok, err := BatchVerify(setup, cs, zs, ys, ps)
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("single opening matches Verify", func(t *testing.T) {
		for _, o := range openings {
			ok, err := BatchVerify(setup, []Commitment{o.c}, []field.Element{o.z}, []field.Element{o.y}, []Proof{o.proof})
			require.NoError(t, err)
			require.True(t, ok)
		}
	})

	t.Run("one tampered value", func(t *testing.T) {
		for i := range openings {
			cs, zs, ys, ps := split(openings)
			ys[i] = ys[i].Add(fr.One())
			ok, err := BatchVerify(setup, cs, zs, ys, ps)
			require.NoError(t, err)
			require.False(t, ok, "opening %d", i)
		}
	})

	t.Run("empty", func(t *testing.T) {
		ok, err := BatchVerify(setup, nil, nil, nil, nil)
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("length mismatch", func(t *testing.T) {
		cs, zs, ys, ps := split(openings)
		_, err := BatchVerify(setup, cs, zs[:2], ys, ps)
		require.ErrorIs(t, err, ErrLengthMismatch)
	})
}

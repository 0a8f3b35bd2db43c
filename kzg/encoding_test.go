package kzg

import (
	"crypto/sha256"
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/eth2030/kzg/crypto/bls12381"
	"github.com/eth2030/kzg/crypto/curve"
	"github.com/eth2030/kzg/crypto/field"
)

func TestCommitmentTextRoundTrip(t *testing.T) {
	c := NewCommitment(bls12381.G1().ScalarBaseMul(bls12381.Fr.FromUint64(42)))

	enc, err := json.Marshal(c)
	require.NoError(t, err)
	require.Equal(t, `"`+c.String()+`"`, string(enc))

	var got Commitment
	require.NoError(t, json.Unmarshal(enc, &got))
	require.True(t, got.Equal(c))

	p := NewProof(bls12381.G1().Generator())
	text, err := p.MarshalText()
	require.NoError(t, err)
	var gotProof Proof
	require.NoError(t, gotProof.UnmarshalText(text))
	require.True(t, gotProof.Equal(p))
}

func TestUnmarshalTextUsesReceiverCurve(t *testing.T) {
	setup := toySetup(t, 2)
	g := setup.Engine().G1().Generator()
	text, err := NewCommitment(g).MarshalText()
	require.NoError(t, err)

	got := NewCommitment(setup.Engine().G1().Infinity())
	require.NoError(t, got.UnmarshalText(text))
	require.True(t, got.Point().Equal(g))
}

func TestUnmarshalTextRejectsGarbage(t *testing.T) {
	var c Commitment
	require.ErrorIs(t, c.UnmarshalText([]byte("0xzz")), curve.ErrInvalidPoint)
	require.ErrorIs(t, c.UnmarshalText([]byte("0x00")), curve.ErrInvalidPoint)

	// Compression flag set but x = 0 is not in G1.
	buf := make([]byte, bls12381.CompressedG1Size)
	buf[0] = 0x80
	var p Proof
	require.ErrorIs(t, p.UnmarshalText([]byte(hexutil.Encode(buf))), curve.ErrInvalidPoint)
}

func TestVersionedHash(t *testing.T) {
	c := NewCommitment(bls12381.G1().Generator())
	h, err := c.VersionedHash()
	require.NoError(t, err)

	want := sha256.Sum256(c.Bytes())
	want[0] = 0x01
	require.Equal(t, want[:], h.Bytes())

	toy := NewCommitment(toySetup(t, 1).G1Power(0))
	_, err = toy.VersionedHash()
	require.ErrorIs(t, err, ErrUnsupportedEncoding)
}

func TestScalarFromUint256(t *testing.T) {
	fr := bls12381.Fr

	v, err := ScalarFromUint256(fr, uint256.NewInt(12345))
	require.NoError(t, err)
	require.Equal(t, uint64(12345), v.Uint64())

	top, overflow := uint256.FromBig(fr.Modulus())
	require.False(t, overflow)
	top.SubUint64(top, 1)
	v, err = ScalarFromUint256(fr, top)
	require.NoError(t, err)
	require.True(t, v.Add(fr.One()).IsZero())

	_, err = ScalarFromUint256(fr, uint256.MustFromBig(fr.Modulus()))
	require.ErrorIs(t, err, field.ErrNonCanonical)
}

package kzg

import (
	"crypto/sha256"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto/kzg4844"
	"github.com/holiman/uint256"
	"github.com/iotaledger/hive.go/ierrors"

	"github.com/eth2030/kzg/crypto/bls12381"
	"github.com/eth2030/kzg/crypto/curve"
	"github.com/eth2030/kzg/crypto/field"
)

// Commitment is a commitment to a polynomial: a single G1 point.
type Commitment struct {
	point curve.G1
}

// NewCommitment wraps a G1 point. The point is validated when the
// commitment is verified.
func NewCommitment(p curve.G1) Commitment { return Commitment{point: p} }

// Point returns the underlying G1 point.
func (c Commitment) Point() curve.G1 { return c.point }

// Equal reports whether both commitments are the same point.
func (c Commitment) Equal(o Commitment) bool { return c.point.Equal(o.point) }

// Bytes returns the compressed point encoding (48 bytes on BLS12-381).
func (c Commitment) Bytes() []byte { return c.point.Bytes() }

func (c Commitment) String() string { return hexutil.Encode(c.Bytes()) }

// MarshalText implements encoding.TextMarshaler as 0x-prefixed hex.
func (c Commitment) MarshalText() ([]byte, error) {
	return hexutil.Bytes(c.Bytes()).MarshalText()
}

// UnmarshalText decodes 0x-prefixed hex onto the receiver's curve, or onto
// BLS12-381 G1 for a zero Commitment, and validates the point.
func (c *Commitment) UnmarshalText(input []byte) error {
	p, err := unmarshalPoint(c.point, input)
	if err != nil {
		return ierrors.Wrap(err, "commitment")
	}
	c.point = p
	return nil
}

// VersionedHash returns the EIP-4844 versioned hash of a 48-byte
// commitment: sha256 of the encoding with the first byte replaced by the
// version 0x01.
func (c Commitment) VersionedHash() (common.Hash, error) {
	var kc kzg4844.Commitment
	b := c.Bytes()
	if len(b) != len(kc) {
		return common.Hash{}, ierrors.Wrapf(ErrUnsupportedEncoding, "%d-byte commitment", len(b))
	}
	copy(kc[:], b)
	return kzg4844.CalcBlobHashV1(sha256.New(), &kc), nil
}

// Proof is an opening proof: the commitment to the quotient polynomial.
type Proof struct {
	point curve.G1
}

// NewProof wraps a G1 point.
func NewProof(p curve.G1) Proof { return Proof{point: p} }

// Point returns the underlying G1 point.
func (p Proof) Point() curve.G1 { return p.point }

// Equal reports whether both proofs are the same point.
func (p Proof) Equal(o Proof) bool { return p.point.Equal(o.point) }

// Bytes returns the compressed point encoding.
func (p Proof) Bytes() []byte { return p.point.Bytes() }

func (p Proof) String() string { return hexutil.Encode(p.Bytes()) }

// MarshalText implements encoding.TextMarshaler as 0x-prefixed hex.
func (p Proof) MarshalText() ([]byte, error) {
	return hexutil.Bytes(p.Bytes()).MarshalText()
}

// UnmarshalText decodes 0x-prefixed hex like Commitment.UnmarshalText.
func (p *Proof) UnmarshalText(input []byte) error {
	q, err := unmarshalPoint(p.point, input)
	if err != nil {
		return ierrors.Wrap(err, "proof")
	}
	p.point = q
	return nil
}

func unmarshalPoint(current curve.G1, input []byte) (curve.G1, error) {
	var b hexutil.Bytes
	if err := b.UnmarshalText(input); err != nil {
		return curve.G1{}, ierrors.Wrap(curve.ErrInvalidPoint, err.Error())
	}
	c := current.Curve()
	if c == nil {
		c = bls12381.G1()
	}
	return c.PointFromBytes(b)
}

// ScalarFromUint256 converts v to an element of f. Values not below the
// modulus fail with field.ErrNonCanonical.
func ScalarFromUint256(f *field.PrimeField, v *uint256.Int) (field.Element, error) {
	b := v.ToBig()
	if b.Cmp(f.Modulus()) >= 0 {
		return field.Element{}, ierrors.Wrapf(field.ErrNonCanonical, "%s is not below the modulus", v.Hex())
	}
	return f.FromBig(b), nil
}

// Package pairing defines the bilinear map shared by the pairing backends.
//
// An Engine bundles the two source groups, the scalar field they share and
// the map e: G1 x G2 -> GT. KZG verification only needs PairingCheck, which
// multiplies several Miller loops together and runs one final
// exponentiation.
package pairing

import (
	"math/big"

	"github.com/iotaledger/hive.go/ierrors"

	"github.com/eth2030/kzg/crypto/curve"
	"github.com/eth2030/kzg/crypto/field"
)

// ErrLengthMismatch is returned when the G1 and G2 input slices differ in
// length.
var ErrLengthMismatch = ierrors.New("pairing: input length mismatch")

// GT is an element of the target group.
type GT interface {
	Mul(GT) GT
	Exp(*big.Int) GT
	Inverse() GT
	Equal(GT) bool
	IsOne() bool
	String() string
}

// Engine is a pairing-friendly curve together with its pairing.
type Engine interface {
	Name() string
	ScalarField() *field.PrimeField
	G1() *curve.G1Curve
	G2() *curve.G2Curve

	// Pair returns e(p, q).
	Pair(p curve.G1, q curve.G2) (GT, error)
	// PairingCheck reports whether prod e(ps[i], qs[i]) == 1.
	PairingCheck(ps []curve.G1, qs []curve.G2) (bool, error)
}

// ValidateInputs checks that the slices have equal length and that every
// point belongs to the engine's subgroups. Backends call it before running
// any Miller loop.
func ValidateInputs(e Engine, ps []curve.G1, qs []curve.G2) error {
	if len(ps) != len(qs) {
		return ierrors.Wrapf(ErrLengthMismatch, "%d G1 points, %d G2 points", len(ps), len(qs))
	}
	g1, g2 := e.G1(), e.G2()
	for i := range ps {
		if err := g1.Validate(ps[i]); err != nil {
			return ierrors.Wrapf(err, "%s: G1 input %d", e.Name(), i)
		}
		if err := g2.Validate(qs[i]); err != nil {
			return ierrors.Wrapf(err, "%s: G2 input %d", e.Name(), i)
		}
	}
	return nil
}

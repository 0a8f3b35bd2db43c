// Package kzg implements KZG polynomial commitments on top of a pairing
// engine: commit to a polynomial with one multi-scalar multiplication, open
// it at a point with a quotient commitment, and verify the opening with one
// pairing check,
//
//	e(C - [y]G1, H) == e(pi, [s]H - [z]H).
//
// Malformed inputs are reported as errors before any pairing work; a proof
// that is well formed but wrong yields false.
package kzg

import (
	"github.com/iotaledger/hive.go/ierrors"

	"github.com/eth2030/kzg/crypto/curve"
	"github.com/eth2030/kzg/crypto/field"
	"github.com/eth2030/kzg/polynomial"
)

// Commit returns [p(s)]G1 = sum p[i]*[s^i]G1. It fails with
// ErrDegreeTooLarge if p has more coefficients than the setup has powers.
func Commit(setup *TrustedSetup, p polynomial.Polynomial) (Commitment, error) {
	return commit(setup, p, 0)
}

func commit(setup *TrustedSetup, p polynomial.Polynomial, parallelism int) (Commitment, error) {
	if len(p) > setup.Len() {
		return Commitment{}, ierrors.Wrapf(ErrDegreeTooLarge, "%d coefficients, setup has %d powers", len(p), setup.Len())
	}
	if err := p.CheckField(setup.engine.ScalarField()); err != nil {
		return Commitment{}, err
	}
	point, err := setup.engine.G1().MultiScalarMul(setup.g1Powers[:len(p)], p, parallelism)
	if err != nil {
		return Commitment{}, err
	}
	return Commitment{point: point}, nil
}

// Open evaluates p at z and returns the value together with the proof
// [q(s)]G1 for the quotient q(X) = (p(X) - p(z)) / (X - z).
func Open(setup *TrustedSetup, p polynomial.Polynomial, z field.Element) (field.Element, Proof, error) {
	return open(setup, p, z, 0)
}

func open(setup *TrustedSetup, p polynomial.Polynomial, z field.Element, parallelism int) (field.Element, Proof, error) {
	fr := setup.engine.ScalarField()
	if len(p) > setup.Len() {
		return field.Element{}, Proof{}, ierrors.Wrapf(ErrDegreeTooLarge, "%d coefficients, setup has %d powers", len(p), setup.Len())
	}
	if err := fr.Check(z); err != nil {
		return field.Element{}, Proof{}, err
	}
	if err := p.CheckField(fr); err != nil {
		return field.Element{}, Proof{}, err
	}

	// The remainder of the synthetic division is p(z), so the quotient is
	// exact for p(X) - p(z).
	q, value := p.DivideByLinear(z)
	c, err := commit(setup, q, parallelism)
	if err != nil {
		return field.Element{}, Proof{}, err
	}
	return value, Proof{point: c.point}, nil
}

// Verify reports whether proof certifies that the polynomial committed to
// by commitment evaluates to value at z.
func Verify(setup *TrustedSetup, commitment Commitment, z, value field.Element, proof Proof) (bool, error) {
	if err := setup.validateOpening(commitment, z, value, proof); err != nil {
		return false, err
	}

	lhs := commitment.point.Sub(setup.g1Powers[0].ScalarMul(value))
	rhs := setup.g2Powers[1].Sub(setup.g2Powers[0].ScalarMul(z))

	// e(C - [y]G1, H) * e(-pi, [s-z]H) == 1
	return setup.engine.PairingCheck(
		[]curve.G1{lhs, proof.point.Neg()},
		[]curve.G2{setup.g2Powers[0], rhs},
	)
}

func (s *TrustedSetup) validateOpening(commitment Commitment, z, value field.Element, proof Proof) error {
	if err := s.validatePoint(commitment.point, "commitment"); err != nil {
		return err
	}
	if err := s.validatePoint(proof.point, "proof"); err != nil {
		return err
	}
	return s.engine.ScalarField().Check(z, value)
}

func (s *TrustedSetup) validatePoint(p curve.G1, what string) error {
	g1 := s.engine.G1()
	if p.Curve() != g1 {
		return ierrors.Wrapf(ErrEngineMismatch, "%s is not on %s", what, g1.Name())
	}
	if err := g1.Validate(p); err != nil {
		return ierrors.Wrap(err, what)
	}
	return nil
}

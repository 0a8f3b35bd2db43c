package kzg

import (
	"runtime"

	"github.com/iotaledger/hive.go/ierrors"
	"golang.org/x/sync/errgroup"

	"github.com/eth2030/kzg/crypto/curve"
	"github.com/eth2030/kzg/crypto/field"
	"github.com/eth2030/kzg/crypto/pairing"
	"github.com/eth2030/kzg/log"
)

// TrustedSetup holds the powers [s^i]G1 and [s^i]H of a secret s for one
// pairing engine. It is immutable after construction and safe for
// concurrent use by any number of commit, open and verify calls.
type TrustedSetup struct {
	engine   pairing.Engine
	g1Powers []curve.G1
	g2Powers []curve.G2
}

// NewTrustedSetup validates and copies externally supplied powers. It needs
// at least one G1 power and two G2 powers; every point must be on its curve
// and in the prime-order subgroup, and the first power of each group must
// not be the identity.
func NewTrustedSetup(engine pairing.Engine, g1Powers []curve.G1, g2Powers []curve.G2) (*TrustedSetup, error) {
	if len(g1Powers) < 1 || len(g2Powers) < 2 {
		return nil, ierrors.Wrapf(ErrInvalidSetup, "%d G1 and %d G2 powers", len(g1Powers), len(g2Powers))
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range g1Powers {
		g.Go(func() error {
			if err := engine.G1().Validate(p); err != nil {
				return ierrors.Wrapf(err, "G1 power %d", i)
			}
			return nil
		})
	}
	for i, p := range g2Powers {
		g.Go(func() error {
			if err := engine.G2().Validate(p); err != nil {
				return ierrors.Wrapf(err, "G2 power %d", i)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if g1Powers[0].IsInfinity() || g2Powers[0].IsInfinity() {
		return nil, ierrors.Wrap(ErrInvalidSetup, "generator power is the identity")
	}

	return newSetup(engine, append([]curve.G1(nil), g1Powers...), append([]curve.G2(nil), g2Powers...)), nil
}

// NewInsecureSetup derives a setup of n G1 powers and two G2 powers from a
// known secret. The secret breaks soundness, so this is for tests and
// development only.
func NewInsecureSetup(engine pairing.Engine, secret field.Element, n int) (*TrustedSetup, error) {
	if n < 1 {
		return nil, ierrors.Wrapf(ErrInvalidSetup, "size %d", n)
	}
	if err := engine.ScalarField().Check(secret); err != nil {
		return nil, err
	}
	if secret.IsZero() {
		return nil, ierrors.Wrap(ErrInvalidSetup, "zero secret")
	}

	powers := field.Powers(secret, n)
	g1 := make([]curve.G1, n)

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range powers {
		g.Go(func() error {
			g1[i] = engine.G1().ScalarBaseMul(powers[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	g2 := []curve.G2{engine.G2().Generator(), engine.G2().ScalarBaseMul(secret)}
	return newSetup(engine, g1, g2), nil
}

func newSetup(engine pairing.Engine, g1 []curve.G1, g2 []curve.G2) *TrustedSetup {
	log.Default().Module("kzg").Debug("trusted setup ready",
		"engine", engine.Name(), "g1", len(g1), "g2", len(g2))
	return &TrustedSetup{engine: engine, g1Powers: g1, g2Powers: g2}
}

// Engine returns the pairing engine the setup belongs to.
func (s *TrustedSetup) Engine() pairing.Engine { return s.engine }

// Len returns the number of G1 powers, the maximum number of coefficients
// a committed polynomial may have.
func (s *TrustedSetup) Len() int { return len(s.g1Powers) }

// G1Power returns [s^i]G1.
func (s *TrustedSetup) G1Power(i int) curve.G1 { return s.g1Powers[i] }

// G2Power returns [s^i]H.
func (s *TrustedSetup) G2Power(i int) curve.G2 { return s.g2Powers[i] }

// G1Powers returns a copy of the G1 powers.
func (s *TrustedSetup) G1Powers() []curve.G1 { return append([]curve.G1(nil), s.g1Powers...) }

// G2Powers returns a copy of the G2 powers.
func (s *TrustedSetup) G2Powers() []curve.G2 { return append([]curve.G2(nil), s.g2Powers...) }

// CommitmentFromBytes decodes and validates a compressed commitment.
func (s *TrustedSetup) CommitmentFromBytes(b []byte) (Commitment, error) {
	p, err := s.engine.G1().PointFromBytes(b)
	if err != nil {
		return Commitment{}, ierrors.Wrap(err, "commitment")
	}
	return Commitment{point: p}, nil
}

// ProofFromBytes decodes and validates a compressed proof.
func (s *TrustedSetup) ProofFromBytes(b []byte) (Proof, error) {
	p, err := s.engine.G1().PointFromBytes(b)
	if err != nil {
		return Proof{}, ierrors.Wrap(err, "proof")
	}
	return Proof{point: p}, nil
}

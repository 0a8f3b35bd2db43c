package kzg

import (
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/lo"

	"github.com/eth2030/kzg/crypto/curve"
	"github.com/eth2030/kzg/crypto/field"
)

const batchTranscriptLabel = "KZG_BATCH_VERIFY_V1"

// BatchVerify checks several openings with one two-term pairing check. The
// openings are folded with powers of a challenge r hashed from all inputs:
//
//	e(sum r^i (C_i - [y_i]G1 + [z_i]pi_i), H) == e(sum r^i pi_i, [s]H).
//
// It returns true for an empty batch.
func BatchVerify(setup *TrustedSetup, commitments []Commitment, zs, values []field.Element, proofs []Proof) (bool, error) {
	return batchVerify(setup, commitments, zs, values, proofs, 0)
}

func batchVerify(setup *TrustedSetup, commitments []Commitment, zs, values []field.Element, proofs []Proof, parallelism int) (bool, error) {
	n := len(commitments)
	if len(zs) != n || len(values) != n || len(proofs) != n {
		return false, ierrors.Wrapf(ErrLengthMismatch, "%d commitments, %d points, %d values, %d proofs",
			n, len(zs), len(values), len(proofs))
	}
	if n == 0 {
		return true, nil
	}
	for i := range commitments {
		if err := setup.validateOpening(commitments[i], zs[i], values[i], proofs[i]); err != nil {
			return false, ierrors.Wrapf(err, "opening %d", i)
		}
	}

	fr := setup.engine.ScalarField()
	t := newTranscript(batchTranscriptLabel)
	t.appendBytes([]byte(setup.engine.Name()))
	t.appendUint64(uint64(n))
	for i := range commitments {
		t.appendBytes(commitments[i].Bytes())
		t.appendBytes(zs[i].Bytes())
		t.appendBytes(values[i].Bytes())
		t.appendBytes(proofs[i].Bytes())
	}
	rs := field.Powers(t.challenge(fr), n)

	cs := lo.Map(commitments, Commitment.Point)
	ps := lo.Map(proofs, Proof.Point)
	rz := make([]field.Element, n)
	ySum := fr.Zero()
	for i := range rs {
		rz[i] = rs[i].Mul(zs[i])
		ySum = ySum.Add(rs[i].Mul(values[i]))
	}

	g1 := setup.engine.G1()
	folded, err := g1.MultiScalarMul(append(cs, ps...), append(append([]field.Element(nil), rs...), rz...), parallelism)
	if err != nil {
		return false, err
	}
	folded = folded.Sub(setup.g1Powers[0].ScalarMul(ySum))

	foldedProofs, err := g1.MultiScalarMul(ps, rs, parallelism)
	if err != nil {
		return false, err
	}

	return setup.engine.PairingCheck(
		[]curve.G1{folded, foldedProofs.Neg()},
		[]curve.G2{setup.g2Powers[0], setup.g2Powers[1]},
	)
}

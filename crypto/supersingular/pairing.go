package supersingular

import (
	"math/big"

	"github.com/eth2030/kzg/crypto/curve"
	"github.com/eth2030/kzg/crypto/field"
	"github.com/eth2030/kzg/crypto/pairing"
)

// GT is an element of the order-r subgroup of F_p^2*.
type GT struct {
	v field.Ext2
}

var _ pairing.GT = GT{}

// Mul returns a*b.
func (a GT) Mul(b pairing.GT) pairing.GT { return GT{v: a.v.Mul(b.(GT).v)} }

// Exp returns a^k.
func (a GT) Exp(k *big.Int) pairing.GT {
	if k.Sign() < 0 {
		return GT{v: a.v.Conjugate().Exp(new(big.Int).Neg(k))}
	}
	return GT{v: a.v.Exp(k)}
}

// Inverse returns a^-1. Elements of GT have norm one, so the inverse is
// the conjugate.
func (a GT) Inverse() pairing.GT { return GT{v: a.v.Conjugate()} }

// Equal reports whether a == b.
func (a GT) Equal(b pairing.GT) bool {
	o, ok := b.(GT)
	return ok && a.v.Equal(o.v)
}

// IsOne reports whether a is the identity.
func (a GT) IsOne() bool { return a.v.IsOne() }

// Value returns the underlying extension field element.
func (a GT) Value() field.Ext2 { return a.v }

func (a GT) String() string { return a.v.String() }

// Name returns the engine name.
func (e *Engine) Name() string { return e.name }

// ScalarField returns F_r.
func (e *Engine) ScalarField() *field.PrimeField { return e.fr }

// G1 returns the order-r subgroup of E(F_p).
func (e *Engine) G1() *curve.G1Curve { return e.g1 }

// G2 returns the distortion image of G1 in E(F_p^2).
func (e *Engine) G2() *curve.G2Curve { return e.g2 }

// Distort maps a G1 point to G2 via (x, y) -> (-x, u*y).
func (e *Engine) Distort(p curve.G1) curve.G2 {
	x, y, inf := p.Affine()
	if inf {
		return e.g2.Infinity()
	}
	q, err := e.g2.NewPoint(e.fp2.New(x.Neg(), e.fp.Zero()), e.fp2.New(e.fp.Zero(), y))
	if err != nil {
		// The image of a curve point is always on the curve.
		panic(err)
	}
	return q
}

// inDistortionImage accepts points of the form (a, b*u) with a, b in F_p.
func inDistortionImage(x, y field.Ext2) bool {
	return x.C1().IsZero() && y.C0().IsZero()
}

// Pair returns the reduced Tate pairing e(p, q).
func (e *Engine) Pair(p curve.G1, q curve.G2) (pairing.GT, error) {
	if err := pairing.ValidateInputs(e, []curve.G1{p}, []curve.G2{q}); err != nil {
		return nil, err
	}
	if p.IsInfinity() || q.IsInfinity() {
		return GT{v: e.fp2.One()}, nil
	}
	return GT{v: e.finalExponentiation(e.miller(p, q))}, nil
}

// PairingCheck reports whether prod e(ps[i], qs[i]) == 1, sharing one final
// exponentiation across all pairs.
func (e *Engine) PairingCheck(ps []curve.G1, qs []curve.G2) (bool, error) {
	if err := pairing.ValidateInputs(e, ps, qs); err != nil {
		return false, err
	}
	acc := e.fp2.One()
	for i := range ps {
		if ps[i].IsInfinity() || qs[i].IsInfinity() {
			continue
		}
		acc = acc.Mul(e.miller(ps[i], qs[i]))
	}
	return e.finalExponentiation(acc).IsOne(), nil
}

// miller evaluates f_{r,P} at Q. Vertical lines take values in F_p and are
// dropped; the final exponentiation maps them to one.
func (e *Engine) miller(p curve.G1, q curve.G2) field.Ext2 {
	px, py, _ := p.Affine()
	qx, qy, _ := q.Affine()
	three := e.fp.FromUint64(3)
	one := e.fp.One()

	line := func(tx, ty, lambda field.Element) field.Ext2 {
		// qy - ty - lambda*(qx - tx)
		dx := qx.Sub(e.fp2.FromBase(tx)).MulByBase(lambda)
		return qy.Sub(e.fp2.FromBase(ty)).Sub(dx)
	}

	f := e.fp2.One()
	tx, ty := px, py
	r := e.fr.Modulus()
	for i := r.BitLen() - 2; i >= 0; i-- {
		lambda, _ := three.Mul(tx.Square()).Add(one).Div(ty.Double())
		f = f.Square().Mul(line(tx, ty, lambda))
		x3 := lambda.Square().Sub(tx.Double())
		ty = lambda.Mul(tx.Sub(x3)).Sub(ty)
		tx = x3

		if r.Bit(i) == 1 {
			if tx.Equal(px) {
				// T = -P: the chord is vertical and T + P = O, which only
				// happens on the last bit.
				break
			}
			lambda, _ = py.Sub(ty).Div(px.Sub(tx))
			f = f.Mul(line(tx, ty, lambda))
			x3 = lambda.Square().Sub(tx).Sub(px)
			ty = lambda.Mul(tx.Sub(x3)).Sub(ty)
			tx = x3
		}
	}
	return f
}

// finalExponentiation raises f to (p^2-1)/r as f^(p-1) = conj(f)/f followed
// by the exponent (p+1)/r.
func (e *Engine) finalExponentiation(f field.Ext2) field.Ext2 {
	inv, err := f.Inverse()
	if err != nil {
		// Miller values are products of non-vertical lines at a point
		// outside their zero sets and cannot vanish.
		panic(err)
	}
	return f.Conjugate().Mul(inv).Exp(e.finalExp)
}

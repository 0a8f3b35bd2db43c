package bls12381

import (
	"math/big"
	"math/bits"
	"sync"

	"github.com/eth2030/kzg/crypto/curve"
	"github.com/eth2030/kzg/crypto/field"
	"github.com/eth2030/kzg/crypto/pairing"
)

var (
	constOnce sync.Once
	gamma     [6]field.Ext2
	hardExp   *big.Int
)

func initConstants() {
	constOnce.Do(func() {
		p := Fp.Modulus()
		pm1Over6 := new(big.Int).Sub(p, big.NewInt(1))
		pm1Over6.Quo(pm1Over6, big.NewInt(6))
		xi := Fp2.FromUint64(1, 1)
		for i := range gamma {
			gamma[i] = xi.Exp(new(big.Int).Mul(pm1Over6, big.NewInt(int64(i))))
		}

		// (p^4 - p^2 + 1) / r
		p2 := new(big.Int).Mul(p, p)
		e := new(big.Int).Mul(p2, p2)
		e.Sub(e, p2).Add(e, big.NewInt(1))
		q, rem := new(big.Int).QuoRem(e, Fr.Modulus(), new(big.Int))
		if rem.Sign() != 0 {
			panic("bls12381: r does not divide p^4 - p^2 + 1")
		}
		hardExp = q
	})
}

func frobGamma() *[6]field.Ext2 {
	initConstants()
	return &gamma
}

// GT is an element of the order-r subgroup of F_p^12^*.
type GT struct {
	v fp12
}

var _ pairing.GT = GT{}

// Mul returns a*b.
func (a GT) Mul(b pairing.GT) pairing.GT { return GT{v: a.v.mul(b.(GT).v)} }

// Exp returns a^k.
func (a GT) Exp(k *big.Int) pairing.GT {
	if k.Sign() < 0 {
		return GT{v: a.v.conjugate().exp(new(big.Int).Neg(k))}
	}
	return GT{v: a.v.exp(k)}
}

// Inverse returns a^-1, which is the conjugate for unitary elements.
func (a GT) Inverse() pairing.GT { return GT{v: a.v.conjugate()} }

// Equal reports whether a == b.
func (a GT) Equal(b pairing.GT) bool {
	o, ok := b.(GT)
	return ok && a.v.equal(o.v)
}

// IsOne reports whether a is the identity.
func (a GT) IsOne() bool { return a.v.isOne() }

func (a GT) String() string { return a.v.String() }

// Engine is the optimal ate pairing on BLS12-381.
type Engine struct{}

var _ pairing.Engine = Engine{}

// Default returns the BLS12-381 engine.
func Default() Engine { return Engine{} }

// Name returns "BLS12-381".
func (Engine) Name() string { return "BLS12-381" }

// ScalarField returns F_r.
func (Engine) ScalarField() *field.PrimeField { return Fr }

// G1 returns the G1 curve.
func (Engine) G1() *curve.G1Curve { return G1() }

// G2 returns the G2 curve.
func (Engine) G2() *curve.G2Curve { return G2() }

// Pair returns e(p, q).
func (e Engine) Pair(p curve.G1, q curve.G2) (pairing.GT, error) {
	if err := pairing.ValidateInputs(e, []curve.G1{p}, []curve.G2{q}); err != nil {
		return nil, err
	}
	if p.IsInfinity() || q.IsInfinity() {
		return GT{v: fp12One()}, nil
	}
	return GT{v: finalExponentiation(millerLoop(p, q))}, nil
}

// PairingCheck reports whether prod e(ps[i], qs[i]) == 1.
func (e Engine) PairingCheck(ps []curve.G1, qs []curve.G2) (bool, error) {
	if err := pairing.ValidateInputs(e, ps, qs); err != nil {
		return false, err
	}
	acc := fp12One()
	for i := range ps {
		if ps[i].IsInfinity() || qs[i].IsInfinity() {
			continue
		}
		acc = acc.mul(millerLoop(ps[i], qs[i]))
	}
	return finalExponentiation(acc).isOne(), nil
}

// lineEval evaluates the line through T on the twist, with slope lambda,
// at P = (px, py), scaled by w^3:
//
//	l = (lambda*tx - ty) - lambda*px*v + py*v*w
//
// Scaling factors in proper subfields vanish under the final
// exponentiation.
func lineEval(lambda, tx, ty field.Ext2, px, py field.Element) fp12 {
	return fp12{
		fp6{lambda.Mul(tx).Sub(ty), lambda.MulByBase(px).Neg(), Fp2.Zero()},
		fp6{Fp2.Zero(), Fp2.FromBase(py), Fp2.Zero()},
	}
}

// millerLoop computes f_{|x|,Q}(P) with affine steps on the twist and
// conjugates the result because x is negative.
func millerLoop(p curve.G1, q curve.G2) fp12 {
	px, py, _ := p.Affine()
	qx, qy, _ := q.Affine()
	three := Fp.FromUint64(3)

	f := fp12One()
	tx, ty := qx, qy
	for i := bits.Len64(xAbs) - 2; i >= 0; i-- {
		// T is never 2-torsion, so 2*ty is invertible.
		den, _ := ty.Double().Inverse()
		lambda := tx.Square().MulByBase(three).Mul(den)
		f = f.square().mul(lineEval(lambda, tx, ty, px, py))
		x3 := lambda.Square().Sub(tx.Double())
		ty = lambda.Mul(tx.Sub(x3)).Sub(ty)
		tx = x3

		if (xAbs>>uint(i))&1 == 1 {
			// T = [k]Q with 1 < k < |x|, so T != +-Q.
			den, _ = qx.Sub(tx).Inverse()
			lambda = qy.Sub(ty).Mul(den)
			f = f.mul(lineEval(lambda, tx, ty, px, py))
			x3 = lambda.Square().Sub(tx).Sub(qx)
			ty = lambda.Mul(tx.Sub(x3)).Sub(ty)
			tx = x3
		}
	}
	return f.conjugate()
}

// finalExponentiation raises f to (p^12 - 1)/r: the easy part
// (p^6 - 1)(p^2 + 1) via conjugation and Frobenius, then the hard part
// (p^4 - p^2 + 1)/r by square-and-multiply.
func finalExponentiation(f fp12) fp12 {
	initConstants()
	if f.isZero() {
		panic("bls12381: zero Miller loop value")
	}
	t := f.conjugate().mul(f.inverse())
	t = t.frobenius().frobenius().mul(t)
	return t.exp(hardExp)
}

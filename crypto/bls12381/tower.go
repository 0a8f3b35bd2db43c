package bls12381

import (
	"math/big"

	"github.com/eth2030/kzg/crypto/field"
)

// mulByXi returns a*(1+u) = (a0 - a1) + (a0 + a1)u.
func mulByXi(a field.Ext2) field.Ext2 {
	return Fp2.New(a.C0().Sub(a.C1()), a.C0().Add(a.C1()))
}

// fp6 is c0 + c1*v + c2*v^2 with v^3 = 1+u.
type fp6 struct {
	c0, c1, c2 field.Ext2
}

func fp6Zero() fp6 { return fp6{Fp2.Zero(), Fp2.Zero(), Fp2.Zero()} }

func fp6One() fp6 { return fp6{Fp2.One(), Fp2.Zero(), Fp2.Zero()} }

func (a fp6) add(b fp6) fp6 { return fp6{a.c0.Add(b.c0), a.c1.Add(b.c1), a.c2.Add(b.c2)} }

func (a fp6) sub(b fp6) fp6 { return fp6{a.c0.Sub(b.c0), a.c1.Sub(b.c1), a.c2.Sub(b.c2)} }

func (a fp6) neg() fp6 { return fp6{a.c0.Neg(), a.c1.Neg(), a.c2.Neg()} }

func (a fp6) isZero() bool { return a.c0.IsZero() && a.c1.IsZero() && a.c2.IsZero() }

func (a fp6) equal(b fp6) bool { return a.c0.Equal(b.c0) && a.c1.Equal(b.c1) && a.c2.Equal(b.c2) }

// mul uses the Karatsuba-style interpolation with three base products.
func (a fp6) mul(b fp6) fp6 {
	v0 := a.c0.Mul(b.c0)
	v1 := a.c1.Mul(b.c1)
	v2 := a.c2.Mul(b.c2)

	c0 := mulByXi(a.c1.Add(a.c2).Mul(b.c1.Add(b.c2)).Sub(v1).Sub(v2)).Add(v0)
	c1 := a.c0.Add(a.c1).Mul(b.c0.Add(b.c1)).Sub(v0).Sub(v1).Add(mulByXi(v2))
	c2 := a.c0.Add(a.c2).Mul(b.c0.Add(b.c2)).Sub(v0).Sub(v2).Add(v1)
	return fp6{c0, c1, c2}
}

func (a fp6) square() fp6 { return a.mul(a) }

// mulByV returns a*v = xi*c2 + c0*v + c1*v^2.
func (a fp6) mulByV() fp6 { return fp6{mulByXi(a.c2), a.c0, a.c1} }

func (a fp6) inverse() fp6 {
	t0 := a.c0.Square().Sub(mulByXi(a.c1.Mul(a.c2)))
	t1 := mulByXi(a.c2.Square()).Sub(a.c0.Mul(a.c1))
	t2 := a.c1.Square().Sub(a.c0.Mul(a.c2))

	den := a.c0.Mul(t0).Add(mulByXi(a.c2.Mul(t1))).Add(mulByXi(a.c1.Mul(t2)))
	inv, err := den.Inverse()
	if err != nil {
		panic(err)
	}
	return fp6{t0.Mul(inv), t1.Mul(inv), t2.Mul(inv)}
}

// fp12 is c0 + c1*w with w^2 = v.
type fp12 struct {
	c0, c1 fp6
}

func fp12One() fp12 { return fp12{fp6One(), fp6Zero()} }

func (a fp12) mul(b fp12) fp12 {
	t0 := a.c0.mul(b.c0)
	t1 := a.c1.mul(b.c1)
	c1 := a.c0.add(a.c1).mul(b.c0.add(b.c1)).sub(t0).sub(t1)
	return fp12{t0.add(t1.mulByV()), c1}
}

// square computes (c0 + c1 w)^2 = c0^2 + v*c1^2 + 2*c0*c1*w with two
// F_p^6 multiplications.
func (a fp12) square() fp12 {
	ab := a.c0.mul(a.c1)
	c0 := a.c0.add(a.c1).mul(a.c0.add(a.c1.mulByV())).sub(ab).sub(ab.mulByV())
	return fp12{c0, ab.add(ab)}
}

// conjugate returns c0 - c1*w, which equals a^(p^6).
func (a fp12) conjugate() fp12 { return fp12{a.c0, a.c1.neg()} }

func (a fp12) inverse() fp12 {
	den := a.c0.square().sub(a.c1.square().mulByV())
	inv := den.inverse()
	return fp12{a.c0.mul(inv), a.c1.mul(inv).neg()}
}

func (a fp12) isZero() bool { return a.c0.isZero() && a.c1.isZero() }

func (a fp12) isOne() bool { return a.equal(fp12One()) }

func (a fp12) equal(b fp12) bool { return a.c0.equal(b.c0) && a.c1.equal(b.c1) }

// exp computes a^e for a public non-negative exponent.
func (a fp12) exp(e *big.Int) fp12 {
	acc := fp12One()
	for i := e.BitLen() - 1; i >= 0; i-- {
		acc = acc.square()
		if e.Bit(i) == 1 {
			acc = acc.mul(a)
		}
	}
	return acc
}

// frobenius returns a^p. Writing a = sum g_i w^i with g_i in F_p^2,
// a^p = sum conj(g_i) * gamma_i * w^i where gamma_i = xi^(i(p-1)/6). The
// tower slots map to w-powers as c0 = (w^0, w^2, w^4), c1 = (w^1, w^3, w^5).
func (a fp12) frobenius() fp12 {
	g := frobGamma()
	return fp12{
		fp6{
			a.c0.c0.Conjugate(),
			a.c0.c1.Conjugate().Mul(g[2]),
			a.c0.c2.Conjugate().Mul(g[4]),
		},
		fp6{
			a.c1.c0.Conjugate().Mul(g[1]),
			a.c1.c1.Conjugate().Mul(g[3]),
			a.c1.c2.Conjugate().Mul(g[5]),
		},
	}
}

// String lists the twelve base field coefficients.
func (a fp12) String() string {
	return "[" + a.c0.c0.String() + ", " + a.c0.c1.String() + ", " + a.c0.c2.String() + ", " +
		a.c1.c0.String() + ", " + a.c1.c1.String() + ", " + a.c1.c2.String() + "]"
}

package curve

import (
	"math/big"

	"github.com/iotaledger/hive.go/ierrors"

	"github.com/eth2030/kzg/crypto/field"
)

// Point is a curve point in homogeneous projective coordinates. Infinity is
// any (0:Y:0) with Y != 0. Points are values; every operation returns a
// new point.
type Point[T Coordinate[T]] struct {
	curve   *Curve[T]
	x, y, z T
}

// G1 is a point over a prime field.
type G1 = Point[field.Element]

// G2 is a point over a quadratic extension.
type G2 = Point[field.Ext2]

// Curve returns the curve the point lives on.
func (p Point[T]) Curve() *Curve[T] { return p.curve }

func (p Point[T]) same(q Point[T]) {
	if p.curve == nil || p.curve != q.curve {
		panic(ierrors.Wrapf(ErrCurveMismatch, "%v vs %v", p.curve, q.curve))
	}
}

// IsInfinity reports whether p is the identity.
func (p Point[T]) IsInfinity() bool {
	return p.z.IsZero() && !p.y.IsZero()
}

// IsOnCurve reports whether p satisfies Y^2*Z = X^3 + a*X*Z^2 + b*Z^3.
func (p Point[T]) IsOnCurve() bool {
	if p.curve == nil {
		return false
	}
	if p.z.IsZero() {
		return p.x.IsZero() && !p.y.IsZero()
	}
	c := p.curve
	z2 := p.z.Square()
	lhs := p.y.Square().Mul(p.z)
	rhs := p.x.Square().Mul(p.x).
		Add(c.a.Mul(p.x).Mul(z2)).
		Add(c.b.Mul(z2).Mul(p.z))
	return lhs.Equal(rhs)
}

// IsInSubgroup reports whether p is on the curve and in the subgroup of
// order r.
func (p Point[T]) IsInSubgroup() bool {
	if !p.IsOnCurve() {
		return false
	}
	if p.IsInfinity() {
		return true
	}
	if p.curve.extra != nil {
		x, y, _ := p.Affine()
		if !p.curve.extra(x, y) {
			return false
		}
	}
	return p.ScalarMulBig(p.curve.order).IsInfinity()
}

// Validate returns ErrInvalidPoint unless p belongs to c's subgroup.
func (c *Curve[T]) Validate(p Point[T]) error {
	if p.curve != c {
		return ierrors.Wrapf(ErrCurveMismatch, "point on %v, expected %s", p.curve, c.name)
	}
	if !p.IsOnCurve() {
		return ierrors.Wrapf(ErrInvalidPoint, "%s: point not on curve", c.name)
	}
	if !p.IsInSubgroup() {
		return ierrors.Wrapf(ErrInvalidPoint, "%s: point not in subgroup", c.name)
	}
	return nil
}

// Affine returns the affine coordinates of p. For infinity it returns
// zeros and inf == true.
func (p Point[T]) Affine() (x, y T, inf bool) {
	zero := p.curve.field.Zero()
	if p.IsInfinity() {
		return zero, zero, true
	}
	zInv, err := p.z.Inverse()
	if err != nil {
		return zero, zero, true
	}
	return p.x.Mul(zInv), p.y.Mul(zInv), false
}

// Normalize returns p with Z = 1 (or the canonical (0:1:0) at infinity).
func (p Point[T]) Normalize() Point[T] {
	x, y, inf := p.Affine()
	if inf {
		return p.curve.Infinity()
	}
	return Point[T]{curve: p.curve, x: x, y: y, z: p.curve.field.One()}
}

// Equal compares projective points by cross-multiplication.
func (p Point[T]) Equal(q Point[T]) bool {
	if p.curve == nil || p.curve != q.curve {
		return false
	}
	pInf, qInf := p.IsInfinity(), q.IsInfinity()
	if pInf || qInf {
		return pInf == qInf
	}
	return p.x.Mul(q.z).Equal(q.x.Mul(p.z)) && p.y.Mul(q.z).Equal(q.y.Mul(p.z))
}

// Neg returns -p. The negation of infinity is infinity.
func (p Point[T]) Neg() Point[T] {
	return Point[T]{curve: p.curve, x: p.x, y: p.y.Neg(), z: p.z}
}

// Add returns p + q using the complete projective formula for arbitrary a
// (Renes-Costello-Batina, algorithm 1). It is exception-free for points of
// odd order, including p == q, p == -q and infinity.
func (p Point[T]) Add(q Point[T]) Point[T] {
	p.same(q)
	c := p.curve

	t0 := p.x.Mul(q.x)
	t1 := p.y.Mul(q.y)
	t2 := p.z.Mul(q.z)
	A := p.x.Mul(q.y).Add(q.x.Mul(p.y))
	B := p.x.Mul(q.z).Add(q.x.Mul(p.z))
	C := p.y.Mul(q.z).Add(q.y.Mul(p.z))

	aB := c.a.Mul(B)
	b3t2 := c.b3.Mul(t2)
	D := t1.Sub(aB).Sub(b3t2)
	E := t1.Add(aB).Add(b3t2)
	F := t0.Double().Add(t0).Add(c.a.Mul(t2))
	G := c.a.Mul(t0).Add(c.b3.Mul(B)).Sub(c.aSq.Mul(t2))

	return Point[T]{
		curve: c,
		x:     A.Mul(D).Sub(C.Mul(G)),
		y:     D.Mul(E).Add(F.Mul(G)),
		z:     C.Mul(E).Add(A.Mul(F)),
	}
}

// Double returns 2p via the tangent formula, the specialisation of Add to
// p == q with the shared products computed once.
func (p Point[T]) Double() Point[T] {
	c := p.curve

	xx := p.x.Square()
	yy := p.y.Square()
	zz := p.z.Square()
	A := p.x.Mul(p.y).Double()
	B := p.x.Mul(p.z).Double()
	C := p.y.Mul(p.z).Double()

	aB := c.a.Mul(B)
	b3zz := c.b3.Mul(zz)
	D := yy.Sub(aB).Sub(b3zz)
	E := yy.Add(aB).Add(b3zz)
	F := xx.Double().Add(xx).Add(c.a.Mul(zz))
	G := c.a.Mul(xx).Add(c.b3.Mul(B)).Sub(c.aSq.Mul(zz))

	return Point[T]{
		curve: c,
		x:     A.Mul(D).Sub(C.Mul(G)),
		y:     D.Mul(E).Add(F.Mul(G)),
		z:     C.Mul(E).Add(A.Mul(F)),
	}
}

// Sub returns p - q.
func (p Point[T]) Sub(q Point[T]) Point[T] {
	return p.Add(q.Neg())
}

// cmov returns q when cond == 1 and p when cond == 0, in constant time.
func (p Point[T]) cmov(q Point[T], cond uint64) Point[T] {
	return Point[T]{
		curve: p.curve,
		x:     p.x.Cmov(q.x, cond),
		y:     p.y.Cmov(q.y, cond),
		z:     p.z.Cmov(q.z, cond),
	}
}

// ScalarMul returns [k]p for a scalar of the curve's scalar field. Every
// bit of the field width costs one doubling, one addition and one
// constant-time select, independent of k's value.
func (p Point[T]) ScalarMul(k field.Element) Point[T] {
	c := p.curve
	if err := c.scalars.Check(k); err != nil {
		panic(err)
	}
	bitsK := k.Limbs()
	acc := c.Infinity()
	for i := c.scalars.BitLen() - 1; i >= 0; i-- {
		acc = acc.Double()
		sum := acc.Add(p)
		bit := (bitsK[i/64] >> (uint(i) % 64)) & 1
		acc = acc.cmov(sum, bit)
	}
	return acc
}

// ScalarMulBig returns [k]p for a public integer k, which may exceed the
// group order (cofactor clearing, subgroup checks). It runs in variable
// time.
func (p Point[T]) ScalarMulBig(k *big.Int) Point[T] {
	if k.Sign() < 0 {
		return p.Neg().ScalarMulBig(new(big.Int).Neg(k))
	}
	acc := p.curve.Infinity()
	for i := k.BitLen() - 1; i >= 0; i-- {
		acc = acc.Double()
		if k.Bit(i) == 1 {
			acc = acc.Add(p)
		}
	}
	return acc
}

// ScalarBaseMul returns [k]G for the curve generator G.
func (c *Curve[T]) ScalarBaseMul(k field.Element) Point[T] {
	return c.gen.ScalarMul(k)
}

// String returns the affine coordinates, or "O" at infinity.
func (p Point[T]) String() string {
	if p.curve == nil {
		return "<nil point>"
	}
	x, y, inf := p.Affine()
	if inf {
		return "O"
	}
	return "(" + x.String() + ", " + y.String() + ")"
}

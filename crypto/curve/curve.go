// Package curve implements the group law of short Weierstrass curves
// y^2 = x^3 + a*x + b over a prime field or its quadratic extension.
//
// Points use homogeneous projective coordinates (X:Y:Z) with the complete
// addition formulas of Renes, Costello and Batina, so the same code path
// handles the point at infinity, doubling and inverse pairs. Scalar
// multiplication by secret scalars runs a fixed-length ladder with a
// constant-time select.
package curve

import (
	"math/big"

	"github.com/iotaledger/hive.go/ierrors"

	"github.com/eth2030/kzg/crypto/field"
)

var (
	// ErrInvalidPoint is returned when a point is not on the curve, not in
	// the prime-order subgroup, or its encoding is malformed.
	ErrInvalidPoint = ierrors.New("curve: invalid point")
	// ErrCurveMismatch is returned when points of different curves meet.
	ErrCurveMismatch = ierrors.New("curve: points belong to different curves")
	// ErrLengthMismatch is returned when parallel input slices differ in
	// length.
	ErrLengthMismatch = ierrors.New("curve: input length mismatch")
)

// Coordinate is the arithmetic a coordinate field must provide. It is
// satisfied by field.Element and field.Ext2.
type Coordinate[T any] interface {
	Add(T) T
	Sub(T) T
	Neg() T
	Double() T
	Mul(T) T
	Square() T
	Cmov(T, uint64) T
	Inverse() (T, error)
	Sqrt() (T, bool)
	Equal(T) bool
	IsZero() bool
	LexicographicallyLargest() bool
	Bytes() []byte
	String() string
}

// CoordinateField constructs coordinates. It is satisfied by
// *field.PrimeField and *field.Ext2Field.
type CoordinateField[T any] interface {
	Zero() T
	One() T
	ByteLen() int
	FromBytes([]byte) (T, error)
	Base() *field.PrimeField
}

// Params describes a curve and its prime-order subgroup.
type Params[T Coordinate[T]] struct {
	Name  string
	Field CoordinateField[T]
	A, B  T

	// GenX, GenY are the affine coordinates of the subgroup generator.
	GenX, GenY T

	// ScalarField is F_r for the subgroup order r.
	ScalarField *field.PrimeField
	Cofactor    *big.Int

	// SubgroupCheck is an optional predicate on affine coordinates run in
	// addition to the [r]P == O test.
	SubgroupCheck func(x, y T) bool
}

// Curve is an immutable curve description shared by all its points.
type Curve[T Coordinate[T]] struct {
	name     string
	field    CoordinateField[T]
	a, b     T
	b3, aSq  T
	order    *big.Int
	scalars  *field.PrimeField
	cofactor *big.Int
	extra    func(x, y T) bool
	gen      Point[T]
}

// G1Curve is a curve over a prime field.
type G1Curve = Curve[field.Element]

// G2Curve is a curve over a quadratic extension field.
type G2Curve = Curve[field.Ext2]

// NewCurve validates p and returns the curve. The generator must lie on the
// curve and have order r.
func NewCurve[T Coordinate[T]](p Params[T]) (*Curve[T], error) {
	if p.Field == nil || p.ScalarField == nil {
		return nil, ierrors.New("curve: missing field parameters")
	}
	three := p.Field.One().Double().Add(p.Field.One())
	c := &Curve[T]{
		name:     p.Name,
		field:    p.Field,
		a:        p.A,
		b:        p.B,
		b3:       p.B.Mul(three),
		aSq:      p.A.Square(),
		order:    p.ScalarField.Modulus(),
		scalars:  p.ScalarField,
		cofactor: p.Cofactor,
		extra:    p.SubgroupCheck,
	}
	if c.cofactor == nil {
		c.cofactor = big.NewInt(1)
	}

	gen, err := c.NewPoint(p.GenX, p.GenY)
	if err != nil {
		return nil, ierrors.Wrapf(err, "%s generator", p.Name)
	}
	if !gen.IsInSubgroup() {
		return nil, ierrors.Wrapf(ErrInvalidPoint, "%s generator does not have order %s", p.Name, c.order)
	}
	c.gen = gen

	return c, nil
}

// MustCurve is like NewCurve but panics on error.
func MustCurve[T Coordinate[T]](p Params[T]) *Curve[T] {
	c, err := NewCurve(p)
	if err != nil {
		panic(err)
	}
	return c
}

// Name returns the display name of the curve.
func (c *Curve[T]) Name() string { return c.name }

// Field returns the coordinate field.
func (c *Curve[T]) Field() CoordinateField[T] { return c.field }

// ScalarField returns F_r.
func (c *Curve[T]) ScalarField() *field.PrimeField { return c.scalars }

// Order returns the subgroup order r.
func (c *Curve[T]) Order() *big.Int { return new(big.Int).Set(c.order) }

// Cofactor returns #E / r.
func (c *Curve[T]) Cofactor() *big.Int { return new(big.Int).Set(c.cofactor) }

// A returns the curve coefficient a.
func (c *Curve[T]) A() T { return c.a }

// B returns the curve coefficient b.
func (c *Curve[T]) B() T { return c.b }

// Generator returns the fixed subgroup generator.
func (c *Curve[T]) Generator() Point[T] { return c.gen }

// Infinity returns the identity (0:1:0).
func (c *Curve[T]) Infinity() Point[T] {
	return Point[T]{curve: c, x: c.field.Zero(), y: c.field.One(), z: c.field.Zero()}
}

// NewPoint returns the affine point (x, y). It fails with ErrInvalidPoint
// if the point is not on the curve; subgroup membership is checked
// separately by IsInSubgroup.
func (c *Curve[T]) NewPoint(x, y T) (Point[T], error) {
	p := Point[T]{curve: c, x: x, y: y, z: c.field.One()}
	if !p.IsOnCurve() {
		return Point[T]{}, ierrors.Wrapf(ErrInvalidPoint, "%s: (%s, %s) is not on the curve", c.name, x, y)
	}
	return p, nil
}

// rhs evaluates x^3 + a*x + b.
func (c *Curve[T]) rhs(x T) T {
	return x.Square().Mul(x).Add(c.a.Mul(x)).Add(c.b)
}

func (c *Curve[T]) String() string { return c.name }

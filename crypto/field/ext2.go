package field

import (
	"io"
	"math/big"

	"github.com/iotaledger/hive.go/ierrors"
)

// Ext2Field is the quadratic extension F_p[u]/(u^2 - beta) for a quadratic
// non-residue beta of the base field.
type Ext2Field struct {
	base     *PrimeField
	beta     Element
	minusOne bool
	half     Element
}

// NewExt2Field returns F_p[u]/(u^2 - nonResidue). It fails with
// ErrInvalidNonResidue if nonResidue is a square, because the quotient
// would then not be a field.
func NewExt2Field(base *PrimeField, nonResidue Element) (*Ext2Field, error) {
	if err := base.Check(nonResidue); err != nil {
		return nil, err
	}
	if nonResidue.Legendre() != -1 {
		return nil, ierrors.Wrapf(ErrInvalidNonResidue, "%s over %s", nonResidue, base)
	}
	half, err := base.FromUint64(2).Inverse()
	if err != nil {
		return nil, err
	}
	return &Ext2Field{
		base:     base,
		beta:     nonResidue,
		minusOne: nonResidue.Equal(base.One().Neg()),
		half:     half,
	}, nil
}

// MustExt2Field is like NewExt2Field but panics on error.
func MustExt2Field(base *PrimeField, nonResidue Element) *Ext2Field {
	e, err := NewExt2Field(base, nonResidue)
	if err != nil {
		panic(err)
	}
	return e
}

// Base returns the base field.
func (e *Ext2Field) Base() *PrimeField { return e.base }

// NonResidue returns beta = u^2.
func (e *Ext2Field) NonResidue() Element { return e.beta }

// Equal reports whether both descriptors define the same extension.
func (e *Ext2Field) Equal(g *Ext2Field) bool {
	if e == nil || g == nil {
		return e == g
	}
	return e == g || (e.base.Equal(g.base) && e.beta.Equal(g.beta))
}

func (e *Ext2Field) String() string {
	if e == nil {
		return "F2(nil)"
	}
	return e.base.String() + "[u]/(u^2-" + e.beta.String() + ")"
}

// ByteLen returns the width of the encoding c1 || c0.
func (e *Ext2Field) ByteLen() int { return 2 * e.base.byteLen }

// New returns c0 + c1*u.
func (e *Ext2Field) New(c0, c1 Element) Ext2 {
	c0.same("ext2", c1)
	if !e.base.Equal(c0.f) {
		panic(mismatch("ext2", e.base, c0.f))
	}
	return Ext2{f: e, c0: c0, c1: c1}
}

// Zero returns the additive identity.
func (e *Ext2Field) Zero() Ext2 { return Ext2{f: e, c0: e.base.Zero(), c1: e.base.Zero()} }

// One returns the multiplicative identity.
func (e *Ext2Field) One() Ext2 { return Ext2{f: e, c0: e.base.One(), c1: e.base.Zero()} }

// FromBase embeds a base field element.
func (e *Ext2Field) FromBase(a Element) Ext2 { return e.New(a, e.base.Zero()) }

// FromUint64 returns c0 + c1*u for small integer coefficients.
func (e *Ext2Field) FromUint64(c0, c1 uint64) Ext2 {
	return Ext2{f: e, c0: e.base.FromUint64(c0), c1: e.base.FromUint64(c1)}
}

// FromBytes decodes c1 || c0, each a canonical base field encoding.
func (e *Ext2Field) FromBytes(b []byte) (Ext2, error) {
	w := e.base.byteLen
	if len(b) != 2*w {
		return Ext2{}, ierrors.Wrapf(ErrNonCanonical, "%s: expected %d bytes, got %d", e, 2*w, len(b))
	}
	c1, err := e.base.FromBytes(b[:w])
	if err != nil {
		return Ext2{}, err
	}
	c0, err := e.base.FromBytes(b[w:])
	if err != nil {
		return Ext2{}, err
	}
	return Ext2{f: e, c0: c0, c1: c1}, nil
}

// Random returns a uniformly distributed element.
func (e *Ext2Field) Random(r io.Reader) (Ext2, error) {
	c0, err := e.base.Random(r)
	if err != nil {
		return Ext2{}, err
	}
	c1, err := e.base.Random(r)
	if err != nil {
		return Ext2{}, err
	}
	return Ext2{f: e, c0: c0, c1: c1}, nil
}

// Ext2 is an element c0 + c1*u of an Ext2Field.
type Ext2 struct {
	f      *Ext2Field
	c0, c1 Element
}

// Field returns the extension the element belongs to.
func (a Ext2) Field() *Ext2Field { return a.f }

// C0 returns the constant coefficient.
func (a Ext2) C0() Element { return a.c0 }

// C1 returns the coefficient of u.
func (a Ext2) C1() Element { return a.c1 }

func (a Ext2) same(op string, b Ext2) {
	if a.f == b.f && a.f != nil {
		return
	}
	if a.f == nil || !a.f.Equal(b.f) {
		var fa, fb *PrimeField
		if a.f != nil {
			fa = a.f.base
		}
		if b.f != nil {
			fb = b.f.base
		}
		panic(mismatch(op, fa, fb))
	}
}

// Add returns a + b.
func (a Ext2) Add(b Ext2) Ext2 {
	a.same("add", b)
	return Ext2{f: a.f, c0: a.c0.Add(b.c0), c1: a.c1.Add(b.c1)}
}

// Sub returns a - b.
func (a Ext2) Sub(b Ext2) Ext2 {
	a.same("sub", b)
	return Ext2{f: a.f, c0: a.c0.Sub(b.c0), c1: a.c1.Sub(b.c1)}
}

// Neg returns -a.
func (a Ext2) Neg() Ext2 {
	return Ext2{f: a.f, c0: a.c0.Neg(), c1: a.c1.Neg()}
}

// Double returns 2a.
func (a Ext2) Double() Ext2 {
	return Ext2{f: a.f, c0: a.c0.Double(), c1: a.c1.Double()}
}

func (a Ext2) mulBeta(x Element) Element {
	if a.f.minusOne {
		return x.Neg()
	}
	return x.Mul(a.f.beta)
}

// Mul returns a * b using Karatsuba.
func (a Ext2) Mul(b Ext2) Ext2 {
	a.same("mul", b)
	v0 := a.c0.Mul(b.c0)
	v1 := a.c1.Mul(b.c1)
	c1 := a.c0.Add(a.c1).Mul(b.c0.Add(b.c1)).Sub(v0).Sub(v1)
	return Ext2{f: a.f, c0: v0.Add(a.mulBeta(v1)), c1: c1}
}

// Square returns a^2.
func (a Ext2) Square() Ext2 {
	if a.f.minusOne {
		// (c0 + c1)(c0 - c1) + 2*c0*c1*u
		c0 := a.c0.Add(a.c1).Mul(a.c0.Sub(a.c1))
		return Ext2{f: a.f, c0: c0, c1: a.c0.Mul(a.c1).Double()}
	}
	v0 := a.c0.Square()
	v1 := a.c1.Square()
	return Ext2{f: a.f, c0: v0.Add(a.mulBeta(v1)), c1: a.c0.Mul(a.c1).Double()}
}

// MulByBase returns a * k for a base field scalar k.
func (a Ext2) MulByBase(k Element) Ext2 {
	return Ext2{f: a.f, c0: a.c0.Mul(k), c1: a.c1.Mul(k)}
}

// Conjugate returns c0 - c1*u, which is also the Frobenius map a^p.
func (a Ext2) Conjugate() Ext2 {
	return Ext2{f: a.f, c0: a.c0, c1: a.c1.Neg()}
}

// Norm returns c0^2 - beta*c1^2, the product of a and its conjugate.
func (a Ext2) Norm() Element {
	return a.c0.Square().Sub(a.mulBeta(a.c1.Square()))
}

// Inverse returns a^-1 via the norm, reducing the work to one base field
// inversion.
func (a Ext2) Inverse() (Ext2, error) {
	if a.f == nil {
		return Ext2{}, mismatch("inverse", nil, nil)
	}
	if a.IsZero() {
		return Ext2{}, ErrDivisionByZero
	}
	n, err := a.Norm().Inverse()
	if err != nil {
		return Ext2{}, err
	}
	return Ext2{f: a.f, c0: a.c0.Mul(n), c1: a.c1.Neg().Mul(n)}, nil
}

// Div returns a * b^-1.
func (a Ext2) Div(b Ext2) (Ext2, error) {
	if a.f == nil || !a.f.Equal(b.f) {
		return Ext2{}, mismatch("div", a.c0.f, b.c0.f)
	}
	inv, err := b.Inverse()
	if err != nil {
		return Ext2{}, err
	}
	return a.Mul(inv), nil
}

// Exp returns a^e for a public, non-negative exponent.
func (a Ext2) Exp(e *big.Int) Ext2 {
	acc := a.f.One()
	for i := e.BitLen() - 1; i >= 0; i-- {
		acc = acc.Square()
		if e.Bit(i) == 1 {
			acc = acc.Mul(a)
		}
	}
	return acc
}

// Cmov returns b when cond == 1 and a when cond == 0, in constant time.
func (a Ext2) Cmov(b Ext2, cond uint64) Ext2 {
	a.same("cmov", b)
	return Ext2{f: a.f, c0: a.c0.Cmov(b.c0, cond), c1: a.c1.Cmov(b.c1, cond)}
}

// Equal reports whether a == b.
func (a Ext2) Equal(b Ext2) bool {
	if a.f == nil || !a.f.Equal(b.f) {
		return false
	}
	return a.c0.Equal(b.c0) && a.c1.Equal(b.c1)
}

// IsZero reports whether a == 0.
func (a Ext2) IsZero() bool { return a.c0.IsZero() && a.c1.IsZero() }

// IsOne reports whether a == 1.
func (a Ext2) IsOne() bool { return a.c0.IsOne() && a.c1.IsZero() }

// Sqrt returns a square root of a and true, or false when a is not a
// square. With N = c0^2 - beta*c1^2 and alpha = sqrt(N), one of
// (c0 +- alpha)/2 is x0^2 and x1 = c1/(2*x0).
func (a Ext2) Sqrt() (Ext2, bool) {
	if a.IsZero() {
		return a, true
	}
	base := a.f.base
	if a.c1.IsZero() {
		if x, ok := a.c0.Sqrt(); ok {
			return Ext2{f: a.f, c0: x, c1: base.Zero()}, true
		}
		// c0 is a non-square, so c0/beta is a square: (x*u)^2 = beta*x^2.
		t, _ := a.c0.Div(a.f.beta)
		x, ok := t.Sqrt()
		if !ok {
			return Ext2{}, false
		}
		return Ext2{f: a.f, c0: base.Zero(), c1: x}, true
	}

	alpha, ok := a.Norm().Sqrt()
	if !ok {
		return Ext2{}, false
	}
	x0, ok := a.c0.Add(alpha).Mul(a.f.half).Sqrt()
	if !ok {
		x0, ok = a.c0.Sub(alpha).Mul(a.f.half).Sqrt()
		if !ok {
			return Ext2{}, false
		}
	}
	inv, err := x0.Double().Inverse()
	if err != nil {
		return Ext2{}, false
	}
	r := Ext2{f: a.f, c0: x0, c1: a.c1.Mul(inv)}
	if !r.Square().Equal(a) {
		return Ext2{}, false
	}
	return r, true
}

// LexicographicallyLargest compares c1 first and falls back to c0 when c1
// is zero.
func (a Ext2) LexicographicallyLargest() bool {
	if !a.c1.IsZero() {
		return a.c1.LexicographicallyLargest()
	}
	return a.c0.LexicographicallyLargest()
}

// Bytes returns c1 || c0.
func (a Ext2) Bytes() []byte {
	return append(a.c1.Bytes(), a.c0.Bytes()...)
}

func (a Ext2) String() string {
	return a.c0.String() + "+" + a.c1.String() + "*u"
}

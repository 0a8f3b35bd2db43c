package field

import (
	"math/big"
)

// Element is a value of a PrimeField in Montgomery form. The zero value
// belongs to no field and must not be used in arithmetic.
type Element struct {
	f *PrimeField
	l limbs
}

// Field returns the field the element belongs to.
func (a Element) Field() *PrimeField { return a.f }

// same panics with ErrFieldMismatch unless a and b share a field.
func (a Element) same(op string, b Element) {
	if a.f == b.f && a.f != nil {
		return
	}
	if a.f == nil || !a.f.Equal(b.f) {
		panic(mismatch(op, a.f, b.f))
	}
}

// Add returns a + b.
func (a Element) Add(b Element) Element {
	a.same("add", b)
	return Element{f: a.f, l: a.f.addLimbs(&a.l, &b.l)}
}

// Sub returns a - b.
func (a Element) Sub(b Element) Element {
	a.same("sub", b)
	return Element{f: a.f, l: a.f.subLimbs(&a.l, &b.l)}
}

// Neg returns -a.
func (a Element) Neg() Element {
	a.same("neg", a)
	return Element{f: a.f, l: a.f.negLimbs(&a.l)}
}

// Double returns 2a.
func (a Element) Double() Element {
	a.same("double", a)
	return Element{f: a.f, l: a.f.addLimbs(&a.l, &a.l)}
}

// Mul returns a * b.
func (a Element) Mul(b Element) Element {
	a.same("mul", b)
	return Element{f: a.f, l: a.f.montMul(&a.l, &b.l)}
}

// Square returns a^2.
func (a Element) Square() Element {
	a.same("square", a)
	return Element{f: a.f, l: a.f.montMul(&a.l, &a.l)}
}

// Exp returns a^e for a public exponent. Negative exponents are reduced
// modulo p-1, so the result for a zero base is zero.
func (a Element) Exp(e *big.Int) Element {
	a.same("exp", a)
	if e.Sign() < 0 {
		pm1 := new(big.Int).Sub(a.f.modulus, big.NewInt(1))
		e = new(big.Int).Mod(e, pm1)
	}
	acc := a.f.one
	for i := e.BitLen() - 1; i >= 0; i-- {
		acc = a.f.montMul(&acc, &acc)
		if e.Bit(i) == 1 {
			acc = a.f.montMul(&acc, &a.l)
		}
	}
	return Element{f: a.f, l: acc}
}

// Inverse returns a^-1 computed as a^(p-2). The exponent is public, so the
// sequence of squarings and multiplications does not depend on a.
func (a Element) Inverse() (Element, error) {
	if a.f == nil {
		return Element{}, mismatch("inverse", nil, nil)
	}
	if a.IsZero() {
		return Element{}, ErrDivisionByZero
	}
	return a.Exp(a.f.pMinus2), nil
}

// Div returns a * b^-1.
func (a Element) Div(b Element) (Element, error) {
	if a.f == nil || !a.f.Equal(b.f) {
		return Element{}, mismatch("div", a.f, b.f)
	}
	inv, err := b.Inverse()
	if err != nil {
		return Element{}, err
	}
	return a.Mul(inv), nil
}

// Cmov returns b when cond == 1 and a when cond == 0, in constant time.
func (a Element) Cmov(b Element, cond uint64) Element {
	a.same("cmov", b)
	return Element{f: a.f, l: cmovLimbs(&a.l, &b.l, cond)}
}

// Equal reports whether a == b. Elements of different fields are never
// equal.
func (a Element) Equal(b Element) bool {
	if a.f == nil || !a.f.Equal(b.f) {
		return false
	}
	return a.f.equalLimbs(&a.l, &b.l)
}

// IsZero reports whether a == 0.
func (a Element) IsZero() bool {
	return a.f != nil && a.f.isZeroLimbs(&a.l)
}

// IsOne reports whether a == 1.
func (a Element) IsOne() bool {
	return a.f != nil && a.f.equalLimbs(&a.l, &a.f.one)
}

// canonical returns the value out of Montgomery form.
func (a Element) canonical() limbs {
	var one limbs
	one[0] = 1
	return a.f.montMul(&a.l, &one)
}

// Limbs returns the canonical value as little-endian 64-bit words.
func (a Element) Limbs() [MaxLimbs]uint64 {
	return a.canonical()
}

// Bit returns bit i of the canonical value.
func (a Element) Bit(i int) uint64 {
	c := a.canonical()
	return (c[i/64] >> (uint(i) % 64)) & 1
}

// BigInt returns the canonical value.
func (a Element) BigInt() *big.Int {
	c := a.canonical()
	return limbsToBig(&c, a.f.n)
}

// Uint64 returns the low word of the canonical value.
func (a Element) Uint64() uint64 {
	return a.canonical()[0]
}

// Bytes returns the fixed-width big-endian encoding.
func (a Element) Bytes() []byte {
	out := make([]byte, a.f.byteLen)
	a.BigInt().FillBytes(out)
	return out
}

// LexicographicallyLargest reports whether a > (p-1)/2.
func (a Element) LexicographicallyLargest() bool {
	c := a.canonical()
	return a.f.lessLimbs(&a.f.halfP, &c)
}

// Legendre returns 1 for non-zero squares, -1 for non-squares and 0 for
// zero.
func (a Element) Legendre() int {
	if a.IsZero() {
		return 0
	}
	if a.Exp(a.f.legendre).IsOne() {
		return 1
	}
	return -1
}

// String returns the canonical value in decimal.
func (a Element) String() string {
	if a.f == nil {
		return "<nil>"
	}
	return a.BigInt().String()
}

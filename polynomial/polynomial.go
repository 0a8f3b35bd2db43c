// Package polynomial represents polynomials over a prime field in
// coefficient form and converts them to and from evaluation form over
// power-of-two domains of roots of unity.
package polynomial

import (
	"strings"

	"github.com/eth2030/kzg/crypto/field"
)

// Polynomial holds coefficients in ascending degree order: p[i] is the
// coefficient of X^i. An empty or all-zero slice is the zero polynomial.
// Operations never modify their receiver or arguments.
type Polynomial []field.Element

// New returns the polynomial with the given coefficients.
func New(coeffs ...field.Element) Polynomial {
	return Polynomial(coeffs)
}

// FromUint64 builds a polynomial over f from small coefficients.
func FromUint64(f *field.PrimeField, coeffs ...uint64) Polynomial {
	p := make(Polynomial, len(coeffs))
	for i, c := range coeffs {
		p[i] = f.FromUint64(c)
	}
	return p
}

// Degree returns the index of the highest non-zero coefficient, or -1 for
// the zero polynomial.
func (p Polynomial) Degree() int {
	for i := len(p) - 1; i >= 0; i-- {
		if !p[i].IsZero() {
			return i
		}
	}
	return -1
}

// IsZero reports whether p is the zero polynomial.
func (p Polynomial) IsZero() bool { return p.Degree() < 0 }

// Equal reports whether p and q are the same polynomial, ignoring trailing
// zero coefficients.
func (p Polynomial) Equal(q Polynomial) bool {
	d := p.Degree()
	if d != q.Degree() {
		return false
	}
	for i := 0; i <= d; i++ {
		if !p[i].Equal(q[i]) {
			return false
		}
	}
	return true
}

// CheckField returns field.ErrFieldMismatch unless every coefficient
// belongs to f.
func (p Polynomial) CheckField(f *field.PrimeField) error {
	return f.Check(p...)
}

// Evaluate returns p(z) using Horner's rule.
func (p Polynomial) Evaluate(z field.Element) field.Element {
	acc := z.Field().Zero()
	for i := len(p) - 1; i >= 0; i-- {
		acc = acc.Mul(z).Add(p[i])
	}
	return acc
}

// DivideByLinear divides p by (X - z) with synthetic division and returns
// the quotient and the remainder, which equals p(z).
func (p Polynomial) DivideByLinear(z field.Element) (Polynomial, field.Element) {
	if len(p) == 0 {
		return Polynomial{}, z.Field().Zero()
	}
	q := make(Polynomial, len(p)-1)
	carry := z.Field().Zero()
	for i := len(p) - 1; i >= 0; i-- {
		carry = carry.Mul(z).Add(p[i])
		if i > 0 {
			q[i-1] = carry
		}
	}
	return q, carry
}

// Add returns p + q.
func (p Polynomial) Add(q Polynomial) Polynomial {
	return combine(p, q, field.Element.Add)
}

// Sub returns p - q.
func (p Polynomial) Sub(q Polynomial) Polynomial {
	return combine(p, q, field.Element.Sub)
}

func combine(p, q Polynomial, op func(a, b field.Element) field.Element) Polynomial {
	if len(p) == 0 && len(q) == 0 {
		return Polynomial{}
	}
	var f *field.PrimeField
	if len(p) > 0 {
		f = p[0].Field()
	} else {
		f = q[0].Field()
	}
	out := make(Polynomial, max(len(p), len(q)))
	for i := range out {
		a, b := f.Zero(), f.Zero()
		if i < len(p) {
			a = p[i]
		}
		if i < len(q) {
			b = q[i]
		}
		out[i] = op(a, b)
	}
	return out
}

// Scale returns k * p.
func (p Polynomial) Scale(k field.Element) Polynomial {
	out := make(Polynomial, len(p))
	for i, c := range p {
		out[i] = c.Mul(k)
	}
	return out
}

// Mul returns p * q by schoolbook multiplication.
func (p Polynomial) Mul(q Polynomial) Polynomial {
	if len(p) == 0 || len(q) == 0 {
		return Polynomial{}
	}
	f := p[0].Field()
	out := make(Polynomial, len(p)+len(q)-1)
	for i := range out {
		out[i] = f.Zero()
	}
	for i, a := range p {
		for j, b := range q {
			out[i+j] = out[i+j].Add(a.Mul(b))
		}
	}
	return out
}

func (p Polynomial) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, c := range p {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.String())
	}
	b.WriteByte(']')
	return b.String()
}

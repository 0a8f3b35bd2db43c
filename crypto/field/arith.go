package field

import "math/bits"

// MaxLimbs is the number of 64-bit words backing every element. Moduli up
// to 384 bits fit; smaller moduli use a prefix of the array.
const MaxLimbs = 6

type limbs = [MaxLimbs]uint64

// montMul computes a*b*R^-1 mod p using the CIOS method. The accumulator
// carries two extra words so no intermediate can overflow, and the final
// subtraction is selected with a mask instead of a branch.
func (f *PrimeField) montMul(a, b *limbs) limbs {
	var t [MaxLimbs + 2]uint64
	n := f.n
	for i := 0; i < n; i++ {
		var c, carry, hi, lo uint64
		for j := 0; j < n; j++ {
			hi, lo = bits.Mul64(a[j], b[i])
			lo, carry = bits.Add64(lo, t[j], 0)
			hi += carry
			lo, carry = bits.Add64(lo, c, 0)
			hi += carry
			t[j] = lo
			c = hi
		}
		t[n], carry = bits.Add64(t[n], c, 0)
		t[n+1] = carry

		m := t[0] * f.inv
		hi, lo = bits.Mul64(m, f.p[0])
		_, carry = bits.Add64(lo, t[0], 0)
		c = hi + carry
		for j := 1; j < n; j++ {
			hi, lo = bits.Mul64(m, f.p[j])
			lo, carry = bits.Add64(lo, t[j], 0)
			hi += carry
			lo, carry = bits.Add64(lo, c, 0)
			hi += carry
			t[j-1] = lo
			c = hi
		}
		t[n-1], carry = bits.Add64(t[n], c, 0)
		t[n] = t[n+1] + carry
	}
	var out limbs
	copy(out[:n], t[:n])
	return f.reduceOnce(&out, t[n])
}

// reduceOnce returns v - p if (hi:v) >= p, else v. The caller guarantees
// (hi:v) < 2p.
func (f *PrimeField) reduceOnce(v *limbs, hi uint64) limbs {
	var d limbs
	var borrow uint64
	for j := 0; j < f.n; j++ {
		d[j], borrow = bits.Sub64(v[j], f.p[j], borrow)
	}
	_, borrow = bits.Sub64(hi, 0, borrow)
	// borrow == 1 means (hi:v) < p and v is kept.
	mask := borrow - 1
	var out limbs
	for j := 0; j < f.n; j++ {
		out[j] = (d[j] & mask) | (v[j] &^ mask)
	}
	return out
}

func (f *PrimeField) addLimbs(a, b *limbs) limbs {
	var s limbs
	var carry uint64
	for j := 0; j < f.n; j++ {
		s[j], carry = bits.Add64(a[j], b[j], carry)
	}
	return f.reduceOnce(&s, carry)
}

func (f *PrimeField) subLimbs(a, b *limbs) limbs {
	var d limbs
	var borrow uint64
	for j := 0; j < f.n; j++ {
		d[j], borrow = bits.Sub64(a[j], b[j], borrow)
	}
	// Add p back when the subtraction wrapped.
	mask := -borrow
	var carry uint64
	for j := 0; j < f.n; j++ {
		d[j], carry = bits.Add64(d[j], f.p[j]&mask, carry)
	}
	return d
}

func (f *PrimeField) negLimbs(a *limbs) limbs {
	var zero limbs
	return f.subLimbs(&zero, a)
}

// isZeroLimbs reports whether all active words are zero, without branching
// on the individual words.
func (f *PrimeField) isZeroLimbs(a *limbs) bool {
	var acc uint64
	for j := 0; j < f.n; j++ {
		acc |= a[j]
	}
	return acc == 0
}

func (f *PrimeField) equalLimbs(a, b *limbs) bool {
	var acc uint64
	for j := 0; j < f.n; j++ {
		acc |= a[j] ^ b[j]
	}
	return acc == 0
}

// cmovLimbs returns b when cond == 1 and a when cond == 0.
func cmovLimbs(a, b *limbs, cond uint64) limbs {
	mask := -(cond & 1)
	var out limbs
	for j := range out {
		out[j] = (a[j] &^ mask) | (b[j] & mask)
	}
	return out
}

// lessLimbs reports a < b over the active words.
func (f *PrimeField) lessLimbs(a, b *limbs) bool {
	var borrow uint64
	for j := 0; j < f.n; j++ {
		_, borrow = bits.Sub64(a[j], b[j], borrow)
	}
	return borrow == 1
}

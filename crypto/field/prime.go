// Package field implements arithmetic over prime fields and their quadratic
// extensions.
//
// A PrimeField describes one modulus; Elements carry a pointer to the field
// they belong to and are kept in Montgomery form over fixed-size limb
// arrays. All operations return new values. Mixing elements of different
// fields is a programming error and fails with ErrFieldMismatch.
package field

import (
	"crypto/rand"
	"io"
	"math/big"
	"math/bits"

	"github.com/iotaledger/hive.go/ierrors"
)

// maxBits is the largest supported modulus size.
const maxBits = 64 * MaxLimbs

// PrimeField holds the parameters of F_p for a fixed odd prime p. It is
// immutable once constructed and safe for concurrent use.
type PrimeField struct {
	modulus *big.Int
	p       limbs
	n       int
	inv     uint64 // -p^-1 mod 2^64
	r2      limbs  // R^2 mod p
	one     limbs  // R mod p
	bitLen  int
	byteLen int

	pMinus2  *big.Int
	halfP    limbs // (p-1)/2, canonical form
	legendre *big.Int

	// Tonelli-Shanks parameters: p-1 = q*2^s, c = z^q for a non-residue z.
	s          int
	q          *big.Int
	qPlus1Half *big.Int
	nonResidue Element
	c          Element
}

// NewPrimeField validates modulus and returns the field it defines. The
// modulus must be an odd prime below 2^384; anything else fails with
// ErrInvalidModulus.
func NewPrimeField(modulus *big.Int) (*PrimeField, error) {
	if modulus == nil || modulus.Sign() <= 0 {
		return nil, ierrors.Wrap(ErrInvalidModulus, "modulus must be positive")
	}
	if modulus.BitLen() > maxBits {
		return nil, ierrors.Wrapf(ErrInvalidModulus, "modulus has %d bits, at most %d supported", modulus.BitLen(), maxBits)
	}
	if modulus.Bit(0) == 0 || modulus.Cmp(big.NewInt(3)) < 0 {
		return nil, ierrors.Wrapf(ErrInvalidModulus, "modulus %s is not an odd prime", modulus)
	}
	if !isPrime(modulus) {
		return nil, ierrors.Wrapf(ErrInvalidModulus, "modulus %s is composite", modulus)
	}

	return newPrimeField(modulus), nil
}

// NewTrustedPrimeField builds a field from a hex modulus that is known to
// be prime, skipping the primality test. It panics on malformed input and
// is meant for compiled-in constants.
func NewTrustedPrimeField(hexModulus string) *PrimeField {
	m, ok := new(big.Int).SetString(hexModulus, 16)
	if !ok || m.Bit(0) == 0 || m.BitLen() > maxBits || m.Cmp(big.NewInt(3)) < 0 {
		panic(ierrors.Wrapf(ErrInvalidModulus, "bad compiled-in modulus %q", hexModulus))
	}
	return newPrimeField(m)
}

// MustPrimeField is like NewPrimeField but panics on error.
func MustPrimeField(modulus *big.Int) *PrimeField {
	f, err := NewPrimeField(modulus)
	if err != nil {
		panic(err)
	}
	return f
}

// isPrime uses trial division for moduli below 2^32 and Baillie-PSW
// otherwise.
func isPrime(m *big.Int) bool {
	if m.BitLen() <= 32 {
		v := m.Uint64()
		if v < 2 {
			return false
		}
		for d := uint64(2); d*d <= v; d++ {
			if v%d == 0 {
				return false
			}
		}
		return true
	}
	return m.ProbablyPrime(20)
}

func newPrimeField(m *big.Int) *PrimeField {
	f := &PrimeField{
		modulus: new(big.Int).Set(m),
		n:       (m.BitLen() + 63) / 64,
		bitLen:  m.BitLen(),
		byteLen: (m.BitLen() + 7) / 8,
	}
	f.p = bigToLimbs(m)

	// Newton iteration for p^-1 mod 2^64; each step doubles the correct bits.
	x := f.p[0]
	for i := 0; i < 6; i++ {
		x *= 2 - f.p[0]*x
	}
	f.inv = -x

	r := new(big.Int).Lsh(big.NewInt(1), uint(64*f.n))
	f.one = bigToLimbs(new(big.Int).Mod(r, m))
	r2 := new(big.Int).Mul(r, r)
	f.r2 = bigToLimbs(r2.Mod(r2, m))

	pm1 := new(big.Int).Sub(m, big.NewInt(1))
	f.pMinus2 = new(big.Int).Sub(m, big.NewInt(2))
	f.legendre = new(big.Int).Rsh(pm1, 1)
	f.halfP = bigToLimbs(f.legendre)

	f.s = int(pm1.TrailingZeroBits())
	f.q = new(big.Int).Rsh(pm1, uint(f.s))
	f.qPlus1Half = new(big.Int).Add(f.q, big.NewInt(1))
	f.qPlus1Half.Rsh(f.qPlus1Half, 1)

	for z := uint64(2); ; z++ {
		e := f.FromUint64(z)
		if e.Legendre() == -1 {
			f.nonResidue = e
			break
		}
	}
	f.c = f.nonResidue.Exp(f.q)

	return f
}

func bigToLimbs(v *big.Int) limbs {
	var out limbs
	words := v.Bits()
	if bits.UintSize == 64 {
		for i := 0; i < len(words) && i < MaxLimbs; i++ {
			out[i] = uint64(words[i])
		}
		return out
	}
	b := make([]byte, 8*MaxLimbs)
	v.FillBytes(b)
	for i := 0; i < MaxLimbs; i++ {
		off := len(b) - 8*(i+1)
		for k := 0; k < 8; k++ {
			out[i] = out[i]<<8 | uint64(b[off+k])
		}
	}
	return out
}

func limbsToBig(l *limbs, n int) *big.Int {
	b := make([]byte, 8*n)
	for i := 0; i < n; i++ {
		w := l[i]
		off := len(b) - 8*(i+1)
		for k := 7; k >= 0; k-- {
			b[off+k] = byte(w)
			w >>= 8
		}
	}
	return new(big.Int).SetBytes(b)
}

// Modulus returns a copy of p.
func (f *PrimeField) Modulus() *big.Int { return new(big.Int).Set(f.modulus) }

// BitLen returns the bit length of p.
func (f *PrimeField) BitLen() int { return f.bitLen }

// ByteLen returns the width of the fixed-size big-endian encoding.
func (f *PrimeField) ByteLen() int { return f.byteLen }

// Equal reports whether both descriptors define the same field.
func (f *PrimeField) Equal(g *PrimeField) bool {
	if f == nil || g == nil {
		return f == g
	}
	return f == g || f.p == g.p
}

// String returns the modulus in decimal for small fields and in hex
// otherwise.
func (f *PrimeField) String() string {
	if f == nil {
		return "F(nil)"
	}
	if f.bitLen <= 64 {
		return "F_" + f.modulus.String()
	}
	return "F_0x" + f.modulus.Text(16)
}

// Zero returns the additive identity.
func (f *PrimeField) Zero() Element { return Element{f: f} }

// One returns the multiplicative identity.
func (f *PrimeField) One() Element { return Element{f: f, l: f.one} }

// NonResidue returns the smallest quadratic non-residue of the field.
func (f *PrimeField) NonResidue() Element { return f.nonResidue }

// FromUint64 returns v mod p.
func (f *PrimeField) FromUint64(v uint64) Element {
	if f.bitLen <= 64 && v >= f.p[0] {
		v %= f.p[0]
	}
	var raw limbs
	raw[0] = v
	return Element{f: f, l: f.montMul(&raw, &f.r2)}
}

// FromInt64 returns v mod p, mapping negative values to p - |v|.
func (f *PrimeField) FromInt64(v int64) Element {
	if v >= 0 {
		return f.FromUint64(uint64(v))
	}
	return f.FromUint64(uint64(-v)).Neg()
}

// FromBig returns v mod p. Negative values are reduced into [0, p).
func (f *PrimeField) FromBig(v *big.Int) Element {
	r := new(big.Int).Mod(v, f.modulus)
	raw := bigToLimbs(r)
	return Element{f: f, l: f.montMul(&raw, &f.r2)}
}

// FromBytes decodes a fixed-width big-endian encoding. Values >= p are
// rejected with ErrNonCanonical.
func (f *PrimeField) FromBytes(b []byte) (Element, error) {
	if len(b) != f.byteLen {
		return Element{}, ierrors.Wrapf(ErrNonCanonical, "%s: expected %d bytes, got %d", f, f.byteLen, len(b))
	}
	v := new(big.Int).SetBytes(b)
	if v.Cmp(f.modulus) >= 0 {
		return Element{}, ierrors.Wrapf(ErrNonCanonical, "%s: value not reduced", f)
	}
	return f.FromBig(v), nil
}

// FromBytesReduce decodes big-endian bytes of any length and reduces the
// result mod p.
func (f *PrimeField) FromBytesReduce(b []byte) Element {
	return f.FromBig(new(big.Int).SetBytes(b))
}

// Random returns a uniformly distributed element read from r, or from
// crypto/rand when r is nil.
func (f *PrimeField) Random(r io.Reader) (Element, error) {
	if r == nil {
		r = rand.Reader
	}
	// Sixteen extra bytes keep the modular bias below 2^-128.
	buf := make([]byte, f.byteLen+16)
	if _, err := io.ReadFull(r, buf); err != nil {
		return Element{}, ierrors.Wrap(err, "field: reading randomness")
	}
	return f.FromBytesReduce(buf), nil
}

// Check returns ErrFieldMismatch unless every element belongs to f.
func (f *PrimeField) Check(elems ...Element) error {
	for i, e := range elems {
		if !f.Equal(e.f) {
			return ierrors.Wrapf(mismatch("check", f, e.f), "element %d", i)
		}
	}
	return nil
}

// Base returns f itself, so prime fields and their extensions expose the
// same coordinate-field surface to curve code.
func (f *PrimeField) Base() *PrimeField { return f }

package polynomial

import (
	"math/big"
	"math/bits"
	"runtime"

	"github.com/iotaledger/hive.go/ierrors"
	"golang.org/x/sync/errgroup"

	"github.com/eth2030/kzg/crypto/field"
)

// parallelLayerThreshold is the number of butterflies per layer below
// which a transform stays on the calling goroutine.
const parallelLayerThreshold = 1 << 10

// Domain is the multiplicative subgroup of the n-th roots of unity in a
// prime field, n a power of two. A Domain is immutable and safe for
// concurrent use.
type Domain struct {
	field   *field.PrimeField
	size  int

	omega    field.Element
	omegaInv field.Element
	sizeInv  field.Element

	roots    []field.Element // omega^i
	rootsInv []field.Element // omega^-i
	index    map[[field.MaxLimbs]uint64]int

	parallelism int
}

// NewDomain returns the domain of size n in f, deriving the primitive root
// of unity from the field's smallest quadratic non-residue.
func NewDomain(f *field.PrimeField, n int) (*Domain, error) {
	return NewDomainWithGenerator(f.NonResidue(), n)
}

// NewDomainWithGenerator returns the domain of size n whose primitive root
// is g^((p-1)/n). It fails with ErrInvalidDomainSize unless n is a power of
// two dividing p-1 and that root has order exactly n.
func NewDomainWithGenerator(g field.Element, n int) (*Domain, error) {
	f := g.Field()
	if n <= 0 || n&(n-1) != 0 {
		return nil, ierrors.Wrapf(ErrInvalidDomainSize, "%d is not a power of two", n)
	}
	pm1 := new(big.Int).Sub(f.Modulus(), big.NewInt(1))
	q, rem := new(big.Int).QuoRem(pm1, big.NewInt(int64(n)), new(big.Int))
	if rem.Sign() != 0 {
		return nil, ierrors.Wrapf(ErrInvalidDomainSize, "%d does not divide p-1", n)
	}

	omega := g.Exp(q)
	if !omega.Exp(big.NewInt(int64(n))).IsOne() {
		return nil, ierrors.Wrapf(ErrInvalidDomainSize, "generator %s is zero", g)
	}
	if n > 1 && omega.Exp(big.NewInt(int64(n/2))).IsOne() {
		return nil, ierrors.Wrapf(ErrInvalidDomainSize, "generator %s yields no primitive %d-th root", g, n)
	}

	d := &Domain{
		field:    f,
		size:     n,
		omega:    omega,
		roots:    field.Powers(omega, n),
		rootsInv: make([]field.Element, n),
		index:    make(map[[field.MaxLimbs]uint64]int, n),
	}
	d.omegaInv = d.roots[(n-1)%n]
	for i, r := range d.roots {
		d.rootsInv[(n-i)%n] = r
		d.index[r.Limbs()] = i
	}
	// n < p, so n is invertible.
	d.sizeInv, _ = f.FromUint64(uint64(n)).Inverse()
	return d, nil
}

// WithParallelism returns a copy of d whose transforms use at most n
// goroutines per butterfly layer; 0 means GOMAXPROCS.
func (d *Domain) WithParallelism(n int) *Domain {
	c := *d
	c.parallelism = n
	return &c
}

// Field returns the scalar field of the domain.
func (d *Domain) Field() *field.PrimeField { return d.field }

// Size returns n.
func (d *Domain) Size() int { return d.size }

// Generator returns the primitive n-th root of unity omega.
func (d *Domain) Generator() field.Element { return d.omega }

// GeneratorInv returns omega^-1.
func (d *Domain) GeneratorInv() field.Element { return d.omegaInv }

// Element returns omega^i.
func (d *Domain) Element(i int) field.Element { return d.roots[i] }

// Roots returns a copy of [1, omega, ..., omega^(n-1)].
func (d *Domain) Roots() []field.Element {
	out := make([]field.Element, d.size)
	copy(out, d.roots)
	return out
}

// Index returns i such that omega^i == z, or -1 if z is not in the domain.
func (d *Domain) Index(z field.Element) int {
	if !d.field.Equal(z.Field()) {
		return -1
	}
	if i, ok := d.index[z.Limbs()]; ok {
		return i
	}
	return -1
}

func (d *Domain) check(vals []field.Element) error {
	if len(vals) != d.size {
		return ierrors.Wrapf(ErrDomainSizeMismatch, "got %d values, domain size %d", len(vals), d.size)
	}
	return d.field.Check(vals...)
}

// FFT evaluates the polynomial with the given coefficients at every domain
// element: out[i] = p(omega^i).
func (d *Domain) FFT(coeffs []field.Element) ([]field.Element, error) {
	if err := d.check(coeffs); err != nil {
		return nil, err
	}
	out := make([]field.Element, d.size)
	copy(out, coeffs)
	if err := d.transform(out, d.roots); err != nil {
		return nil, err
	}
	return out, nil
}

// InverseFFT interpolates evaluations over the domain back to coefficient
// form. It is the exact inverse of FFT.
func (d *Domain) InverseFFT(evals []field.Element) ([]field.Element, error) {
	if err := d.check(evals); err != nil {
		return nil, err
	}
	out := make([]field.Element, d.size)
	copy(out, evals)
	if err := d.transform(out, d.rootsInv); err != nil {
		return nil, err
	}
	for i := range out {
		out[i] = out[i].Mul(d.sizeInv)
	}
	return out, nil
}

// transform runs the in-place iterative Cooley-Tukey butterflies on a,
// using roots[j] = w^j for the root w of the transform.
func (d *Domain) transform(a []field.Element, roots []field.Element) error {
	n := d.size
	if n == 1 {
		return nil
	}
	BitReverse(a)

	workers := d.parallelism
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	half := n / 2

	for m := 2; m <= n; m <<= 1 {
		mh := m / 2
		stride := n / m
		butterflies := func(lo, hi int) {
			for b := lo; b < hi; b++ {
				j := b % mh
				i0 := (b/mh)*m + j
				i1 := i0 + mh
				t := roots[j*stride].Mul(a[i1])
				a[i1] = a[i0].Sub(t)
				a[i0] = a[i0].Add(t)
			}
		}

		if half < parallelLayerThreshold || workers == 1 {
			butterflies(0, half)
			continue
		}
		chunk := (half + workers - 1) / workers
		var g errgroup.Group
		g.SetLimit(workers)
		for lo := 0; lo < half; lo += chunk {
			hi := min(lo+chunk, half)
			g.Go(func() error {
				butterflies(lo, hi)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}
	return nil
}

// EvaluateLagrange evaluates the polynomial given by its evaluations over
// the domain at z. Domain points return the stored value; other points use
// the barycentric formula
//
//	p(z) = (z^n - 1)/n * sum_i evals[i] * omega^i / (z - omega^i).
func (d *Domain) EvaluateLagrange(evals []field.Element, z field.Element) (field.Element, error) {
	if err := d.check(evals); err != nil {
		return field.Element{}, err
	}
	if err := d.field.Check(z); err != nil {
		return field.Element{}, err
	}
	if i := d.Index(z); i >= 0 {
		return evals[i], nil
	}

	den := make([]field.Element, d.size)
	for i, r := range d.roots {
		den[i] = z.Sub(r)
	}
	inv, err := field.BatchInverse(den)
	if err != nil {
		return field.Element{}, err
	}
	sum := d.field.Zero()
	for i, e := range evals {
		sum = sum.Add(e.Mul(d.roots[i]).Mul(inv[i]))
	}
	zn := z.Exp(big.NewInt(int64(d.size))).Sub(d.field.One())
	return sum.Mul(zn).Mul(d.sizeInv), nil
}

// BitReverse permutes s in place so that s[i] and s[rev(i)] swap, where
// rev reverses the low log2(len(s)) bits. len(s) must be a power of two.
func BitReverse[T any](s []T) {
	n := len(s)
	if n <= 2 {
		return
	}
	if n&(n-1) != 0 {
		panic("polynomial: BitReverse length must be a power of two")
	}
	shift := uint(bits.UintSize - bits.TrailingZeros(uint(n)))
	for i := range s {
		j := int(bits.Reverse(uint(i)) >> shift)
		if i < j {
			s[i], s[j] = s[j], s[i]
		}
	}
}

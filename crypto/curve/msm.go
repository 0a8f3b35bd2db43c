package curve

import (
	"math/bits"
	"runtime"

	"github.com/iotaledger/hive.go/ierrors"
	"golang.org/x/sync/errgroup"

	"github.com/eth2030/kzg/crypto/field"
)

// msmNaiveThreshold is the input size below which the bucket method does
// not pay off.
const msmNaiveThreshold = 4

// MultiScalarMul returns sum(scalars[i] * points[i]) using the bucket
// method. Scalars and points are treated as public (commitments are made to
// public data), so the digit scan is variable time. Windows are processed
// concurrently on up to parallelism goroutines; 0 means GOMAXPROCS. The
// result does not depend on the degree of parallelism.
func (c *Curve[T]) MultiScalarMul(points []Point[T], scalars []field.Element, parallelism int) (Point[T], error) {
	if len(points) != len(scalars) {
		return Point[T]{}, ierrors.Wrapf(ErrLengthMismatch, "%d points, %d scalars", len(points), len(scalars))
	}
	for i, p := range points {
		if p.curve != c {
			return Point[T]{}, ierrors.Wrapf(ErrCurveMismatch, "point %d", i)
		}
	}
	if err := c.scalars.Check(scalars...); err != nil {
		return Point[T]{}, err
	}
	if len(points) == 0 {
		return c.Infinity(), nil
	}

	digits := make([][field.MaxLimbs]uint64, len(scalars))
	for i, s := range scalars {
		digits[i] = s.Limbs()
	}

	if len(points) < msmNaiveThreshold {
		acc := c.Infinity()
		for i, p := range points {
			acc = acc.Add(p.ScalarMul(scalars[i]))
		}
		return acc, nil
	}

	window := msmWindow(len(points))
	numWindows := (c.scalars.BitLen() + window - 1) / window
	sums := make([]Point[T], numWindows)

	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}
	var g errgroup.Group
	g.SetLimit(parallelism)
	for w := 0; w < numWindows; w++ {
		g.Go(func() error {
			sums[w] = c.bucketSum(points, digits, w*window, window)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Point[T]{}, err
	}

	acc := sums[numWindows-1]
	for w := numWindows - 2; w >= 0; w-- {
		for i := 0; i < window; i++ {
			acc = acc.Double()
		}
		acc = acc.Add(sums[w])
	}
	return acc, nil
}

// bucketSum accumulates the window starting at bit offset into 2^width-1
// buckets and folds them with a running sum.
func (c *Curve[T]) bucketSum(points []Point[T], digits [][field.MaxLimbs]uint64, offset, width int) Point[T] {
	buckets := make([]Point[T], (1<<width)-1)
	for i := range buckets {
		buckets[i] = c.Infinity()
	}
	for i, p := range points {
		d := digit(&digits[i], offset, width)
		if d == 0 || p.IsInfinity() {
			continue
		}
		buckets[d-1] = buckets[d-1].Add(p)
	}

	running, sum := c.Infinity(), c.Infinity()
	for j := len(buckets) - 1; j >= 0; j-- {
		running = running.Add(buckets[j])
		sum = sum.Add(running)
	}
	return sum
}

// digit extracts width bits of s starting at bit offset.
func digit(s *[field.MaxLimbs]uint64, offset, width int) uint64 {
	limb, shift := offset/64, uint(offset%64)
	if limb >= field.MaxLimbs {
		return 0
	}
	v := s[limb] >> shift
	if shift+uint(width) > 64 && limb+1 < field.MaxLimbs {
		v |= s[limb+1] << (64 - shift)
	}
	return v & (1<<uint(width) - 1)
}

// msmWindow picks the window width from the input size.
func msmWindow(n int) int {
	w := bits.Len(uint(n)) - 2
	if w < 2 {
		return 2
	}
	if w > 16 {
		return 16
	}
	return w
}

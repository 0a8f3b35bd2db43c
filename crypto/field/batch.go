package field

import "github.com/iotaledger/hive.go/ierrors"

// BatchInverse inverts every element with a single field inversion
// (Montgomery's trick). It fails with ErrDivisionByZero if any input is
// zero and with ErrFieldMismatch if the inputs do not share a field.
func BatchInverse(elems []Element) ([]Element, error) {
	if len(elems) == 0 {
		return nil, nil
	}
	f := elems[0].f
	if f == nil {
		return nil, mismatch("batch inverse", nil, nil)
	}
	if err := f.Check(elems...); err != nil {
		return nil, err
	}

	prefix := make([]Element, len(elems))
	acc := f.One()
	for i, e := range elems {
		if e.IsZero() {
			return nil, ierrors.Wrapf(ErrDivisionByZero, "element %d", i)
		}
		prefix[i] = acc
		acc = acc.Mul(e)
	}
	inv, err := acc.Inverse()
	if err != nil {
		return nil, err
	}

	out := make([]Element, len(elems))
	for i := len(elems) - 1; i >= 0; i-- {
		out[i] = inv.Mul(prefix[i])
		inv = inv.Mul(elems[i])
	}
	return out, nil
}

// Powers returns [1, x, x^2, ..., x^(n-1)].
func Powers(x Element, n int) []Element {
	out := make([]Element, n)
	if n == 0 {
		return out
	}
	out[0] = x.f.One()
	for i := 1; i < n; i++ {
		out[i] = out[i-1].Mul(x)
	}
	return out
}

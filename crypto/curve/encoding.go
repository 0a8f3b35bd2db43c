package curve

import (
	"github.com/iotaledger/hive.go/ierrors"
)

// Flag bits of the compressed encoding, following the ZCash layout used
// for BLS12-381.
const (
	flagCompressed = 0x80
	flagInfinity   = 0x40
	flagLargest    = 0x20
	flagMask       = flagCompressed | flagInfinity | flagLargest
)

// inlineFlags reports whether the top byte of the leading base-field
// coordinate has three spare bits for the flags. Otherwise a separate flag
// byte is prepended.
func (c *Curve[T]) inlineFlags() bool {
	base := c.field.Base()
	return 8*base.ByteLen()-base.BitLen() >= 3
}

// EncodedLen returns the size of a compressed point.
func (c *Curve[T]) EncodedLen() int {
	if c.inlineFlags() {
		return c.field.ByteLen()
	}
	return c.field.ByteLen() + 1
}

// Bytes returns the compressed encoding of p: the x coordinate with the
// compression, infinity and sign flags.
func (p Point[T]) Bytes() []byte {
	c := p.curve
	out := make([]byte, c.EncodedLen())
	var flags byte = flagCompressed

	x, y, inf := p.Affine()
	if inf {
		flags |= flagInfinity
	} else {
		if y.LexicographicallyLargest() {
			flags |= flagLargest
		}
		if c.inlineFlags() {
			copy(out, x.Bytes())
		} else {
			copy(out[1:], x.Bytes())
		}
	}
	out[0] |= flags
	return out
}

// PointFromBytes decodes a compressed point and checks that it lies in the
// prime-order subgroup. Any failure is ErrInvalidPoint.
func (c *Curve[T]) PointFromBytes(b []byte) (Point[T], error) {
	if len(b) != c.EncodedLen() {
		return Point[T]{}, ierrors.Wrapf(ErrInvalidPoint, "%s: expected %d bytes, got %d", c.name, c.EncodedLen(), len(b))
	}
	flags := b[0] & flagMask
	body := make([]byte, len(b))
	copy(body, b)
	if c.inlineFlags() {
		body[0] &^= flagMask
	} else {
		if b[0]&^flagMask != 0 {
			return Point[T]{}, ierrors.Wrapf(ErrInvalidPoint, "%s: stray bits in flag byte", c.name)
		}
		body = body[1:]
	}

	if flags&flagCompressed == 0 {
		return Point[T]{}, ierrors.Wrapf(ErrInvalidPoint, "%s: compression flag not set", c.name)
	}
	if flags&flagInfinity != 0 {
		if flags&flagLargest != 0 {
			return Point[T]{}, ierrors.Wrapf(ErrInvalidPoint, "%s: sign flag set on infinity", c.name)
		}
		for _, v := range body {
			if v != 0 {
				return Point[T]{}, ierrors.Wrapf(ErrInvalidPoint, "%s: non-zero infinity encoding", c.name)
			}
		}
		return c.Infinity(), nil
	}

	x, err := c.field.FromBytes(body)
	if err != nil {
		return Point[T]{}, ierrors.Wrapf(ErrInvalidPoint, "%s: x coordinate: %s", c.name, err)
	}
	y, ok := c.rhs(x).Sqrt()
	if !ok {
		return Point[T]{}, ierrors.Wrapf(ErrInvalidPoint, "%s: x is not on the curve", c.name)
	}
	if y.LexicographicallyLargest() != (flags&flagLargest != 0) {
		y = y.Neg()
	}

	p, err := c.NewPoint(x, y)
	if err != nil {
		return Point[T]{}, err
	}
	if !p.IsInSubgroup() {
		return Point[T]{}, ierrors.Wrapf(ErrInvalidPoint, "%s: point not in subgroup", c.name)
	}
	return p, nil
}

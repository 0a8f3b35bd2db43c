// Package supersingular implements a symmetric-style pairing on the
// supersingular curve y^2 = x^3 + x over F_p with p = 3 mod 4.
//
// The curve has p+1 points over F_p and embedding degree 2. G1 is the
// order-r subgroup of E(F_p); G2 is its image under the distortion map
// (x, y) -> (-x, u*y) in E(F_p^2), u^2 = -1. The pairing is the reduced
// Tate pairing f_{r,P}(Q)^((p^2-1)/r). Small instances (the default is
// p = 67, r = 17) make exhaustive tests of the commitment scheme cheap.
package supersingular

import (
	"math/big"
	"sync"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/lo"

	"github.com/eth2030/kzg/crypto/curve"
	"github.com/eth2030/kzg/crypto/field"
	"github.com/eth2030/kzg/crypto/pairing"
)

// ErrInvalidParams is returned when (p, r) do not define a usable
// supersingular pairing group.
var ErrInvalidParams = ierrors.New("supersingular: invalid parameters")

// Engine is a reduced Tate pairing on y^2 = x^3 + x.
type Engine struct {
	name string
	fp   *field.PrimeField
	fr   *field.PrimeField
	fp2  *field.Ext2Field
	g1   *curve.G1Curve
	g2   *curve.G2Curve

	// (p+1)/r, the part of the final exponent left after f^(p-1).
	finalExp *big.Int
}

var _ pairing.Engine = (*Engine)(nil)

var (
	defaultOnce   sync.Once
	defaultEngine *Engine
)

// Default returns the shared engine over F_67 with scalar field F_17.
func Default() *Engine {
	defaultOnce.Do(func() {
		defaultEngine = lo.PanicOnErr(NewEngine(big.NewInt(67), big.NewInt(17)))
	})
	return defaultEngine
}

// NewEngine builds the pairing for base prime p and subgroup order r. It
// requires p = 3 mod 4, r prime, r | p+1 and r^2 not dividing p+1.
func NewEngine(p, r *big.Int) (*Engine, error) {
	fp, err := field.NewPrimeField(p)
	if err != nil {
		return nil, ierrors.Wrap(err, "supersingular: base field")
	}
	if p.Bit(0) != 1 || p.Bit(1) != 1 {
		return nil, ierrors.Wrapf(ErrInvalidParams, "p = %s is not 3 mod 4", p)
	}
	fr, err := field.NewPrimeField(r)
	if err != nil {
		return nil, ierrors.Wrap(err, "supersingular: scalar field")
	}

	order := new(big.Int).Add(p, big.NewInt(1))
	cofactor, rem := new(big.Int).QuoRem(order, r, new(big.Int))
	if rem.Sign() != 0 {
		return nil, ierrors.Wrapf(ErrInvalidParams, "r = %s does not divide p+1", r)
	}
	if new(big.Int).Mod(cofactor, r).Sign() == 0 {
		return nil, ierrors.Wrapf(ErrInvalidParams, "r^2 divides p+1")
	}

	fp2, err := field.NewExt2Field(fp, fp.FromInt64(-1))
	if err != nil {
		return nil, err
	}

	e := &Engine{
		name:     "supersingular-" + p.String() + "-" + r.String(),
		fp:       fp,
		fr:       fr,
		fp2:      fp2,
		finalExp: cofactor,
	}

	gx, gy, err := e.findGenerator(cofactor)
	if err != nil {
		return nil, err
	}
	e.g1, err = curve.NewCurve(curve.Params[field.Element]{
		Name:        e.name + "/G1",
		Field:       fp,
		A:           fp.One(),
		B:           fp.Zero(),
		GenX:        gx,
		GenY:        gy,
		ScalarField: fr,
		Cofactor:    cofactor,
	})
	if err != nil {
		return nil, err
	}

	g2Cofactor := new(big.Int).Mul(order, order)
	g2Cofactor.Quo(g2Cofactor, r)
	e.g2, err = curve.NewCurve(curve.Params[field.Ext2]{
		Name:          e.name + "/G2",
		Field:         fp2,
		A:             fp2.One(),
		B:             fp2.Zero(),
		GenX:          fp2.New(gx.Neg(), fp.Zero()),
		GenY:          fp2.New(fp.Zero(), gy),
		ScalarField:   fr,
		Cofactor:      g2Cofactor,
		SubgroupCheck: inDistortionImage,
	})
	if err != nil {
		return nil, err
	}

	return e, nil
}

// findGenerator clears the cofactor from the first affine point, in order
// of x, whose multiple is not the identity.
func (e *Engine) findGenerator(cofactor *big.Int) (x, y field.Element, err error) {
	for v := uint64(1); v < 1<<16; v++ {
		cx := e.fp.FromUint64(v)
		cy, ok := cx.Square().Mul(cx).Add(cx).Sqrt()
		if !ok || cy.IsZero() {
			continue
		}
		gx, gy, inf := affineMul(cx, cy, cofactor)
		if !inf {
			return gx, gy, nil
		}
	}
	return x, y, ierrors.Wrap(ErrInvalidParams, "no subgroup generator found")
}

// affineMul computes [k](x, y) on y^2 = x^3 + x with affine formulas. It
// runs before the curve objects exist and only on public values.
func affineMul(x, y field.Element, k *big.Int) (rx, ry field.Element, inf bool) {
	inf = true
	for i := k.BitLen() - 1; i >= 0; i-- {
		if !inf {
			rx, ry, inf = affineAdd(rx, ry, rx, ry)
		}
		if k.Bit(i) == 1 {
			if inf {
				rx, ry, inf = x, y, false
			} else {
				rx, ry, inf = affineAdd(rx, ry, x, y)
			}
		}
	}
	return rx, ry, inf
}

func affineAdd(x1, y1, x2, y2 field.Element) (x3, y3 field.Element, inf bool) {
	var lambda field.Element
	if x1.Equal(x2) {
		if !y1.Equal(y2) || y1.IsZero() {
			return x3, y3, true
		}
		three := x1.Field().FromUint64(3)
		lambda, _ = three.Mul(x1.Square()).Add(x1.Field().One()).Div(y1.Double())
	} else {
		lambda, _ = y2.Sub(y1).Div(x2.Sub(x1))
	}
	x3 = lambda.Square().Sub(x1).Sub(x2)
	y3 = lambda.Mul(x1.Sub(x3)).Sub(y1)
	return x3, y3, false
}

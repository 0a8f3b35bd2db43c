// Package bls12381 implements the BLS12-381 pairing-friendly curve on top
// of the generic field and curve packages.
//
// The curve is defined over F_p where:
//
//	p = 0x1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffaaab
//	r = 0x73eda753299d7d483339d80809a1d80553bda402fffe5bfeffffffff00000001
//
// G1: y^2 = x^3 + 4 over F_p. G2: y^2 = x^3 + 4(1+u) over F_p^2, the
// M-type sextic twist. The extension tower used by the pairing is
//
//	F_p^2  = F_p[u]  / (u^2 + 1)
//	F_p^6  = F_p^2[v] / (v^3 - (1+u))
//	F_p^12 = F_p^6[w] / (w^2 - v)
package bls12381

import (
	"math/big"
	"sync"

	"github.com/iotaledger/hive.go/lo"

	"github.com/eth2030/kzg/crypto/curve"
	"github.com/eth2030/kzg/crypto/field"
)

const (
	// PHex is the base field modulus.
	PHex = "1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffaaab"
	// RHex is the prime subgroup order.
	RHex = "73eda753299d7d483339d80809a1d80553bda402fffe5bfeffffffff00000001"

	// xAbs is |x| for the curve parameter x = -0xd201000000010000.
	xAbs uint64 = 0xd201000000010000

	// PrimitiveRoot generates F_r^* and yields the roots of unity used by
	// blob evaluation domains.
	PrimitiveRoot = 7

	// CompressedG1Size and CompressedG2Size are the encoded point sizes.
	CompressedG1Size = 48
	CompressedG2Size = 96
)

// Curve generators, affine coordinates.
const (
	g1xHex = "17f1d3a73197d7942695638c4fa9ac0fc3688c4f9774b905a14e3a3f171bac586c55e83ff97a1aeffb3af00adb22c6bb"
	g1yHex = "08b3f481e3aaa0f1a09e30ed741d8ae4fcf5e095d5d00af600db18cb2c04b3edd03cc744a2888ae40caa232946c5e7e1"

	g2x0Hex = "024aa2b2f08f0a91260805272dc51051c6e47ad4fa403b02b4510b647ae3d1770bac0326a805bbefd48056c8c121bdb8"
	g2x1Hex = "13e02b6052719f607dacd3a088274f65596bd0d09920b61ab5da61bbdc7f5049334cf11213945d57e5ac7d055d042b7e"
	g2y0Hex = "0ce5d527727d6e118cc9cdc6da2e351aadfd9baa8cbdd3a76d429a695160d12c923ac9cc3baca289e193548608b82801"
	g2y1Hex = "0606c4a02ea734cc32acd2b02bc28b99cb3e287e85a763af267492ab572e99ab3f370d275cec1da1aaa9075ff05f79be"

	h1Hex = "396c8c005555e1568c00aaab0000aaab"
	h2Hex = "5d543a95414e7f1091d50792876a202cd91de4547085abaa68a205b2e5a7ddfa628f1cb4d9e82ef21537e293a6691ae1616ec6e786f0c70cf1c38e31c7238e5"
)

var (
	// Fp is the base field.
	Fp = field.NewTrustedPrimeField(PHex)
	// Fr is the scalar field.
	Fr = field.NewTrustedPrimeField(RHex)
	// Fp2 is F_p[u]/(u^2 + 1).
	Fp2 = field.MustExt2Field(Fp, Fp.FromInt64(-1))
)

func mustHex(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("bls12381: bad constant " + s)
	}
	return v
}

func fpHex(s string) field.Element { return Fp.FromBig(mustHex(s)) }

var (
	curvesOnce sync.Once
	g1Curve    *curve.G1Curve
	g2Curve    *curve.G2Curve
)

func curves() (*curve.G1Curve, *curve.G2Curve) {
	curvesOnce.Do(func() {
		g1Curve = lo.PanicOnErr(curve.NewCurve(curve.Params[field.Element]{
			Name:        "BLS12-381/G1",
			Field:       Fp,
			A:           Fp.Zero(),
			B:           Fp.FromUint64(4),
			GenX:        fpHex(g1xHex),
			GenY:        fpHex(g1yHex),
			ScalarField: Fr,
			Cofactor:    mustHex(h1Hex),
		}))
		g2Curve = lo.PanicOnErr(curve.NewCurve(curve.Params[field.Ext2]{
			Name:        "BLS12-381/G2",
			Field:       Fp2,
			A:           Fp2.Zero(),
			B:           Fp2.FromUint64(4, 4),
			GenX:        Fp2.New(fpHex(g2x0Hex), fpHex(g2x1Hex)),
			GenY:        Fp2.New(fpHex(g2y0Hex), fpHex(g2y1Hex)),
			ScalarField: Fr,
			Cofactor:    mustHex(h2Hex),
		}))
	})
	return g1Curve, g2Curve
}

// G1 returns the curve y^2 = x^3 + 4 over F_p.
func G1() *curve.G1Curve {
	g1, _ := curves()
	return g1
}

// G2 returns the twist y^2 = x^3 + 4(1+u) over F_p^2.
func G2() *curve.G2Curve {
	_, g2 := curves()
	return g2
}

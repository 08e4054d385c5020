// Copyright 2020-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

// References:
//   [SECG]: Recommended Elliptic Curve Domain Parameters
//     https://www.secg.org/sec2-v2.pdf

import (
	"crypto/elliptic"
	"math/big"
)

// Params returns the secp256k1 domain parameters per [SECG] section 2.4.1.  A
// fresh copy is returned on each call so callers may not alter the constants
// used by this package.
func Params() *elliptic.CurveParams {
	return &elliptic.CurveParams{
		P:       new(big.Int).Set(fieldPrime),
		N:       new(big.Int).Set(groupOrder),
		B:       new(big.Int).Set(curveB),
		Gx:      generatorX.Big(),
		Gy:      generatorY.Big(),
		BitSize: 256,
		Name:    "secp256k1",
	}
}

// KoblitzCurve provides an implementation for secp256k1 that fits the ECC Curve
// interface from crypto/elliptic.  It is bound to the Curve context that
// created it.
type KoblitzCurve struct {
	curve  *Curve
	params *elliptic.CurveParams
}

// Elliptic returns a crypto/elliptic.Curve backed by this context.
//
// NOTE: It is highly recommended to use the ecdsa sub package for signing and
// verifying since it enforces the secp256k1 specific rules such as low S.
func (c *Curve) Elliptic() elliptic.Curve {
	return &KoblitzCurve{curve: c, params: Params()}
}

// bigAffineToPoint converts an affine point given as big integers to a Point,
// mapping (0, 0) to the point at infinity.
func bigAffineToPoint(x, y *big.Int) Point {
	return NewAffinePoint(NewFieldVal(x), NewFieldVal(y))
}

// Params returns the parameters for the curve.
//
// This is part of the elliptic.Curve interface implementation.
func (curve *KoblitzCurve) Params() *elliptic.CurveParams {
	return curve.params
}

// IsOnCurve returns boolean if the point (x,y) is on the curve.
//
// This is part of the elliptic.Curve interface implementation.  This function
// differs from the crypto/elliptic algorithm since a = 0 not -3.
func (curve *KoblitzCurve) IsOnCurve(x, y *big.Int) bool {
	if x.Sign() < 0 || x.Cmp(fieldPrime) >= 0 || y.Sign() < 0 || y.Cmp(fieldPrime) >= 0 {
		return false
	}
	return isOnCurve(NewFieldVal(x), NewFieldVal(y))
}

// Add returns the sum of (x1,y1) and (x2,y2).
//
// This is part of the elliptic.Curve interface implementation.
func (curve *KoblitzCurve) Add(x1, y1, x2, y2 *big.Int) (*big.Int, *big.Int) {
	return bigAffineToPoint(x1, y1).Add(bigAffineToPoint(x2, y2)).affineBig()
}

// Double returns 2*(x1,y1).
//
// This is part of the elliptic.Curve interface implementation.
func (curve *KoblitzCurve) Double(x1, y1 *big.Int) (*big.Int, *big.Int) {
	return bigAffineToPoint(x1, y1).Double().affineBig()
}

// ScalarMult returns k*(Bx, By) where k is a big endian integer.  The scalar is
// reduced modulo the group order and a multiple of the order yields (0, 0).
//
// This is part of the elliptic.Curve interface implementation.
func (curve *KoblitzCurve) ScalarMult(Bx, By *big.Int, k []byte) (*big.Int, *big.Int) {
	scalar := NewModNScalar(new(big.Int).SetBytes(k))
	if scalar.IsZero() {
		return new(big.Int), new(big.Int)
	}
	p, _ := curve.curve.ScalarMult(scalar, bigAffineToPoint(Bx, By))
	return p.affineBig()
}

// ScalarBaseMult returns k*G where G is the base point of the group and k is a
// big endian integer.
//
// This is part of the elliptic.Curve interface implementation.
func (curve *KoblitzCurve) ScalarBaseMult(k []byte) (*big.Int, *big.Int) {
	scalar := NewModNScalar(new(big.Int).SetBytes(k))
	if scalar.IsZero() {
		return new(big.Int), new(big.Int)
	}
	p, _ := curve.curve.ScalarBaseMult(scalar)
	return p.affineBig()
}

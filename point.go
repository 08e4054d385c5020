// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"fmt"
	"math/big"
)

var (
	// curveB3 is 3*b, the constant used by the complete addition formulas.
	curveB3 = FieldValFromInt(21)

	fieldOne = FieldValFromInt(1)

	// generatorX and generatorY are the affine coordinates of the base point
	// per [SECG].
	generatorX = NewFieldVal(fromHex("79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"))
	generatorY = NewFieldVal(fromHex("483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"))
)

// Point is an element of the secp256k1 group in homogeneous projective
// coordinates (X, Y, Z), which represents the affine point (X/Z, Y/Z) when
// Z is not zero.  The point at infinity is the canonical triple (0, 1, 0).
//
// Points are immutable.  Note that the zero value of a Point is the malformed
// triple (0, 0, 0) and not the point at infinity, so use Identity instead.
type Point struct {
	x, y, z FieldVal
}

// Identity returns the point at infinity.
func Identity() Point {
	return Point{y: fieldOne}
}

// Generator returns the base point G of the secp256k1 group.
func Generator() Point {
	return Point{x: generatorX, y: generatorY, z: fieldOne}
}

// NewPoint returns the point with the given projective coordinates.  No
// validation is performed.
func NewPoint(x, y, z FieldVal) Point {
	return Point{x: x, y: y, z: z}
}

// NewAffinePoint returns the point for the given affine coordinates.  The
// pair (0, 0) is mapped to the point at infinity.  No curve membership check
// is performed; see Validate.
func NewAffinePoint(x, y FieldVal) Point {
	if x.IsZero() && y.IsZero() {
		return Identity()
	}
	return Point{x: x, y: y, z: fieldOne}
}

// X returns the projective X coordinate.
func (p Point) X() FieldVal { return p.x }

// Y returns the projective Y coordinate.
func (p Point) Y() FieldVal { return p.y }

// Z returns the projective Z coordinate.
func (p Point) Z() FieldVal { return p.z }

// String returns the projective coordinates as hex.
func (p Point) String() string {
	return fmt.Sprintf("(%s, %s, %s)", p.x, p.y, p.z)
}

// Equals reports whether p and q represent the same group element.  The
// comparison cross-multiplies by the Z coordinates so no inversion is needed.
func (p Point) Equals(q Point) bool {
	return p.x.Mul(q.z).Equals(q.x.Mul(p.z)) &&
		p.y.Mul(q.z).Equals(q.y.Mul(p.z))
}

// isMalformed reports whether p has a zero Z coordinate without being the
// canonical identity (0, Y, 0) with Y != 0.
func (p Point) isMalformed() bool {
	return p.z.IsZero() && (!p.x.IsZero() || p.y.IsZero())
}

// IsIdentity returns whether or not the point is the point at infinity.
func (p Point) IsIdentity() bool {
	return p.Equals(Identity())
}

// Negate returns -p, the reflection of p over the x axis.
func (p Point) Negate() Point {
	return Point{x: p.x, y: p.y.Negate(), z: p.z}
}

// condNegate returns -p when negate is set and p otherwise.  Both results are
// computed so the choice only affects which value is returned.
func condNegate(negate bool, p Point) Point {
	neg := p.Negate()
	if negate {
		return neg
	}
	return p
}

// Add returns p + q using the complete addition formulas for short Weierstrass
// curves with a = 0 from Renes, Costello and Batina [RCB15, algorithm 1].  The
// same sequence of field operations is performed for every input, including
// doubling and either operand being the point at infinity.
//
// [RCB15]: https://eprint.iacr.org/2015/1060
func (p Point) Add(q Point) Point {
	x1, y1, z1 := p.x, p.y, p.z
	x2, y2, z2 := q.x, q.y, q.z

	t0 := x1.Mul(x2)
	t1 := y1.Mul(y2)
	t2 := z1.Mul(z2)
	t3 := x1.Add(y1)
	t4 := x2.Add(y2)
	t3 = t3.Mul(t4)
	t4 = t0.Add(t1)
	t3 = t3.Sub(t4)
	t4 = x1.Add(z1)
	t5 := x2.Add(z2)
	t4 = t4.Mul(t5)
	t5 = t0.Add(t2)
	t4 = t4.Sub(t5)
	t5 = y1.Add(z1)
	x3 := y2.Add(z2)
	t5 = t5.Mul(x3)
	x3 = t1.Add(t2)
	t5 = t5.Sub(x3)
	x3 = curveB3.Mul(t2)
	z3 := x3
	x3 = t1.Sub(z3)
	z3 = t1.Add(z3)
	y3 := x3.Mul(z3)
	t1 = t0.Add(t0)
	t1 = t1.Add(t0)
	t4 = curveB3.Mul(t4)
	t0 = t1.Mul(t4)
	y3 = y3.Add(t0)
	t0 = t5.Mul(t4)
	x3 = t3.Mul(x3)
	x3 = x3.Sub(t0)
	t0 = t3.Mul(t1)
	z3 = t5.Mul(z3)
	z3 = z3.Add(t0)
	return Point{x: x3, y: y3, z: z3}
}

// Double returns 2p.
func (p Point) Double() Point {
	return p.Add(p)
}

// ToAffine returns the affine coordinates (X/Z, Y/Z) of the point.  The point
// at infinity yields (0, 0).  A triple with Z = 0 that is not the canonical
// point at infinity is malformed and results in ErrArithmetic.
func (p Point) ToAffine() (FieldVal, FieldVal, error) {
	if p.z.IsZero() {
		if p.x.IsZero() && !p.y.IsZero() {
			return FieldVal{}, FieldVal{}, nil
		}
		return FieldVal{}, FieldVal{}, makeError(ErrArithmetic,
			"malformed point with zero Z coordinate")
	}
	if p.z.IsOne() {
		return p.x, p.y, nil
	}
	zInv, err := p.z.Inverse()
	if err != nil {
		return FieldVal{}, FieldVal{}, err
	}
	return p.x.Mul(zInv), p.y.Mul(zInv), nil
}

// isOnCurve returns whether or not the affine point (x, y) satisfies
// y^2 = x^3 + 7.
func isOnCurve(x, y FieldVal) bool {
	return y.Square().Equals(curveRHS(x))
}

// curveRHS returns x^3 + 7.
func curveRHS(x FieldVal) FieldVal {
	return x.Square().Mul(x).Add(FieldVal{n: curveB})
}

// Validate checks that the point is either the point at infinity or a finite
// point with coordinates in [1, P) that satisfies the curve equation.  Invalid
// points result in ErrInvalidPoint.
func (p Point) Validate() error {
	x, y, err := p.ToAffine()
	if err != nil {
		return makeError(ErrInvalidPoint, err.Error())
	}
	if p.z.IsZero() {
		return nil
	}
	if x.IsZero() || y.IsZero() {
		return makeError(ErrInvalidPoint, "point has a zero coordinate")
	}
	if !isOnCurve(x, y) {
		return makeError(ErrInvalidPoint, "point is not on the curve")
	}
	return nil
}

// DecompressY attempts to calculate the Y coordinate for the given X
// coordinate such that the result pair is a point on the secp256k1 curve.  The
// root with the requested oddness is returned.  An X coordinate for which no
// point exists results in ErrInvalidPoint.
func DecompressY(x FieldVal, odd bool) (FieldVal, error) {
	if x.IsZero() {
		return FieldVal{}, makeError(ErrInvalidPoint, "x coordinate must not be zero")
	}
	y, ok := curveRHS(x).SquareRoot()
	if !ok {
		str := fmt.Sprintf("invalid public key: x coordinate %v is not on the "+
			"secp256k1 curve", x)
		return FieldVal{}, makeError(ErrInvalidPoint, str)
	}
	if y.IsOdd() != odd {
		y = y.Negate()
	}
	return y, nil
}

// affineBig returns the affine coordinates of p as big integers, mapping
// malformed points to (0, 0).
func (p Point) affineBig() (*big.Int, *big.Int) {
	x, y, err := p.ToAffine()
	if err != nil {
		return new(big.Int), new(big.Int)
	}
	return x.Big(), y.Big()
}

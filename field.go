// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"encoding/hex"
	"fmt"
	"math/big"
)

// References:
//   [SECG]: Recommended Elliptic Curve Domain Parameters
//     https://www.secg.org/sec2-v2.pdf
//
//   [HAC]: Handbook of Applied Cryptography Menezes, van Oorschot, Vanstone.
//     http://cacr.uwaterloo.ca/hac/

// fromHex converts the passed hex string into a big integer pointer and will
// panic if there is an error.  This is only provided for the hard-coded
// constants so errors in the source code can be detected.  It will only (and
// must only) be called with hard-coded values.
func fromHex(s string) *big.Int {
	r, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("invalid hex in source file: " + s)
	}
	return r
}

var (
	// fieldPrime is the prime of the secp256k1 field per [SECG]:
	// 2^256 - 2^32 - 977.
	fieldPrime = fromHex("fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f")

	// groupOrder is the order of the group generated by the base point.
	groupOrder = fromHex("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")

	// halfOrder is floor(N/2).  Scalars above it are "high".
	halfOrder = new(big.Int).Rsh(groupOrder, 1)

	// sqrtExponent is (P+1)/4.  Since P = 3 mod 4, c^((P+1)/4) is a square
	// root of c whenever one exists.
	sqrtExponent = new(big.Int).Rsh(new(big.Int).Add(fieldPrime, big.NewInt(1)), 2)

	// curveB is the b coefficient of y^2 = x^3 + b.
	curveB = big.NewInt(7)

	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
)

// reduce returns the canonical representative of x modulo m in [0, m) for any
// x, including negative and oversized values.
func reduce(x, m *big.Int) *big.Int {
	return new(big.Int).Mod(x, m)
}

// invert returns the multiplicative inverse of a modulo m using the extended
// Euclidean algorithm [HAC 2.107].  It is variable time.
func invert(a, m *big.Int) (*big.Int, error) {
	if m.Sign() <= 0 {
		return nil, makeError(ErrArithmetic, "modulus must be positive")
	}
	num := reduce(a, m)
	if num.Sign() == 0 {
		return nil, makeError(ErrArithmetic, "zero has no modular inverse")
	}

	// Invariants: x*a = b (mod m) and u*a = num (mod m).
	b := new(big.Int).Set(m)
	x, u := new(big.Int), big.NewInt(1)
	for num.Sign() != 0 {
		q, r := new(big.Int).QuoRem(b, num, new(big.Int))
		next := new(big.Int).Sub(x, new(big.Int).Mul(u, q))
		b, num, x, u = num, r, u, next
	}
	if b.Cmp(bigOne) != 0 {
		str := fmt.Sprintf("%x is not invertible modulo %x", a, m)
		return nil, makeError(ErrArithmetic, str)
	}
	return reduce(x, m), nil
}

// putBytes32 writes the big-endian encoding of v, which must be less than
// 2^256, into a 32-byte array.
func putBytes32(v *big.Int) [32]byte {
	var b [32]byte
	v.FillBytes(b[:])
	return b
}

// FieldVal implements an element of the secp256k1 prime field.  The value is
// always held in canonical form [0, P) and is immutable: every operation
// returns a new value.  The zero value is the field element zero.
type FieldVal struct {
	n *big.Int
}

// NewFieldVal returns the field element x mod P.  Negative and oversized
// inputs are reduced.
func NewFieldVal(x *big.Int) FieldVal {
	return FieldVal{n: reduce(x, fieldPrime)}
}

// FieldValFromInt returns the field element for the given small integer.
func FieldValFromInt(v int64) FieldVal {
	return NewFieldVal(big.NewInt(v))
}

// FieldValFromBytes interprets the provided array as a 256-bit big-endian
// unsigned integer, reduces it modulo the field prime, and returns it along
// with a flag indicating whether the value overflowed the prime.
func FieldValFromBytes(b *[32]byte) (FieldVal, bool) {
	v := new(big.Int).SetBytes(b[:])
	overflow := v.Cmp(fieldPrime) >= 0
	return NewFieldVal(v), overflow
}

// value returns the backing integer, treating the zero value as zero.  The
// result must not be modified.
func (f FieldVal) value() *big.Int {
	if f.n == nil {
		return bigZero
	}
	return f.n
}

// Big returns a copy of the field element as a big integer.
func (f FieldVal) Big() *big.Int {
	return new(big.Int).Set(f.value())
}

// Bytes returns the field element as a 32-byte big-endian array.
func (f FieldVal) Bytes() [32]byte {
	return putBytes32(f.value())
}

// String returns the field element as a human-readable hex string.
func (f FieldVal) String() string {
	b := f.Bytes()
	return hex.EncodeToString(b[:])
}

// IsZero returns whether or not the field element is equal to zero.
func (f FieldVal) IsZero() bool {
	return f.value().Sign() == 0
}

// IsOne returns whether or not the field element is equal to one.
func (f FieldVal) IsOne() bool {
	return f.value().Cmp(bigOne) == 0
}

// IsOdd returns whether or not the field element is an odd number.
func (f FieldVal) IsOdd() bool {
	return f.value().Bit(0) == 1
}

// Equals returns whether or not the two field elements are the same.
func (f FieldVal) Equals(val FieldVal) bool {
	return f.value().Cmp(val.value()) == 0
}

// Add returns f + val mod P.
func (f FieldVal) Add(val FieldVal) FieldVal {
	return NewFieldVal(new(big.Int).Add(f.value(), val.value()))
}

// Sub returns f - val mod P.
func (f FieldVal) Sub(val FieldVal) FieldVal {
	return NewFieldVal(new(big.Int).Sub(f.value(), val.value()))
}

// Mul returns f * val mod P.
func (f FieldVal) Mul(val FieldVal) FieldVal {
	return NewFieldVal(new(big.Int).Mul(f.value(), val.value()))
}

// MulInt returns f * v mod P.
func (f FieldVal) MulInt(v int64) FieldVal {
	return NewFieldVal(new(big.Int).Mul(f.value(), big.NewInt(v)))
}

// Square returns f^2 mod P.
func (f FieldVal) Square() FieldVal {
	return f.Mul(f)
}

// Negate returns -f mod P.
func (f FieldVal) Negate() FieldVal {
	return NewFieldVal(new(big.Int).Neg(f.value()))
}

// Pow returns f^e mod P for a non-negative exponent e.
func (f FieldVal) Pow(e *big.Int) FieldVal {
	return FieldVal{n: new(big.Int).Exp(f.value(), e, fieldPrime)}
}

// Inverse returns the multiplicative inverse of f.  Zero has no inverse and
// results in ErrArithmetic.
func (f FieldVal) Inverse() (FieldVal, error) {
	inv, err := invert(f.value(), fieldPrime)
	if err != nil {
		return FieldVal{}, err
	}
	return FieldVal{n: inv}, nil
}

// SquareRoot returns a square root of f and true when one exists.  When f is
// not a quadratic residue the returned value is meaningless and the flag is
// false.
func (f FieldVal) SquareRoot() (FieldVal, bool) {
	root := f.Pow(sqrtExponent)
	return root, root.Square().Equals(f)
}

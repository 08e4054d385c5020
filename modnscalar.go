// Copyright (c) 2020-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"encoding/hex"
	"math/big"

	"github.com/cronokirby/safenum"
)

var (
	// orderModulus is the group order prepared for constant-time
	// exponentiation.
	orderModulus = safenum.ModulusFromNat(new(safenum.Nat).SetBig(groupOrder, groupOrder.BitLen()))

	// orderMinusTwo is the Fermat inversion exponent N-2.
	orderMinusTwo = new(safenum.Nat).SetBig(new(big.Int).Sub(groupOrder, big.NewInt(2)), groupOrder.BitLen())
)

// ModNScalar implements an integer modulo the secp256k1 group order N.  The
// value is always held in [0, N) and is immutable.  The zero value is the
// scalar zero.
//
// Private keys and signature components use the restricted range [1, N-1];
// callers validate that range explicitly.
type ModNScalar struct {
	n *big.Int
}

// NewModNScalar returns x mod N.  Negative and oversized inputs are reduced.
func NewModNScalar(x *big.Int) ModNScalar {
	return ModNScalar{n: reduce(x, groupOrder)}
}

// ScalarFromInt returns the scalar for the given small integer.
func ScalarFromInt(v int64) ModNScalar {
	return NewModNScalar(big.NewInt(v))
}

// ModNScalarFromBytes interprets the provided array as a 256-bit big-endian
// unsigned integer, reduces it modulo the group order, and returns it along
// with a flag indicating whether the value overflowed the order.
func ModNScalarFromBytes(b *[32]byte) (ModNScalar, bool) {
	v := new(big.Int).SetBytes(b[:])
	overflow := v.Cmp(groupOrder) >= 0
	return NewModNScalar(v), overflow
}

// value returns the backing integer, treating the zero value as zero.  The
// result must not be modified.
func (s ModNScalar) value() *big.Int {
	if s.n == nil {
		return bigZero
	}
	return s.n
}

// Big returns a copy of the scalar as a big integer.
func (s ModNScalar) Big() *big.Int {
	return new(big.Int).Set(s.value())
}

// Bytes returns the scalar as a 32-byte big-endian array.
func (s ModNScalar) Bytes() [32]byte {
	return putBytes32(s.value())
}

// String returns the scalar as a human-readable hex string.
func (s ModNScalar) String() string {
	b := s.Bytes()
	return hex.EncodeToString(b[:])
}

// IsZero returns whether or not the scalar is equal to zero.
func (s ModNScalar) IsZero() bool {
	return s.value().Sign() == 0
}

// IsOne returns whether or not the scalar is equal to one.
func (s ModNScalar) IsOne() bool {
	return s.value().Cmp(bigOne) == 0
}

// IsOdd returns whether or not the scalar is an odd number.
func (s ModNScalar) IsOdd() bool {
	return s.value().Bit(0) == 1
}

// Equals returns whether or not the two scalars are the same.
func (s ModNScalar) Equals(val ModNScalar) bool {
	return s.value().Cmp(val.value()) == 0
}

// IsOverHalfOrder returns whether or not the scalar exceeds the group order
// divided by 2.
func (s ModNScalar) IsOverHalfOrder() bool {
	return s.value().Cmp(halfOrder) > 0
}

// Add returns s + val mod N.
func (s ModNScalar) Add(val ModNScalar) ModNScalar {
	return NewModNScalar(new(big.Int).Add(s.value(), val.value()))
}

// Sub returns s - val mod N.
func (s ModNScalar) Sub(val ModNScalar) ModNScalar {
	return NewModNScalar(new(big.Int).Sub(s.value(), val.value()))
}

// Mul returns s * val mod N.
func (s ModNScalar) Mul(val ModNScalar) ModNScalar {
	return NewModNScalar(new(big.Int).Mul(s.value(), val.value()))
}

// Negate returns -s mod N.
func (s ModNScalar) Negate() ModNScalar {
	return NewModNScalar(new(big.Int).Neg(s.value()))
}

// InverseNonConst returns the multiplicative inverse of s using the extended
// Euclidean algorithm.  It is NOT constant time and must only be used with
// public values.  Zero results in ErrArithmetic.
func (s ModNScalar) InverseNonConst() (ModNScalar, error) {
	inv, err := invert(s.value(), groupOrder)
	if err != nil {
		return ModNScalar{}, err
	}
	return ModNScalar{n: inv}, nil
}

// Inverse returns the multiplicative inverse of s computed as s^(N-2) mod N
// with constant-time exponentiation.  It is intended for secret values such
// as signing nonces.  Zero results in ErrArithmetic.
func (s ModNScalar) Inverse() (ModNScalar, error) {
	if s.IsZero() {
		return ModNScalar{}, makeError(ErrArithmetic, "zero has no modular inverse")
	}
	x := new(safenum.Nat).SetBig(s.value(), groupOrder.BitLen())
	inv := new(safenum.Nat).Exp(x, orderMinusTwo, orderModulus)
	return ModNScalar{n: inv.Big()}, nil
}

// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"math/big"
	"time"

	"github.com/ModChain/secp256k1/v2/logger"
)

const (
	// windowBits is the width of the signed digits used when multiplying the
	// base point with the precomputed table.
	windowBits = 8

	// numWindows is the number of digits needed for a 256-bit scalar plus one
	// extra window for the final carry.
	numWindows = 256/windowBits + 1

	// windowSize is the number of multiples stored per window, 2^(W-1).
	windowSize = 1 << (windowBits - 1)
)

// Curve is a secp256k1 multiplication context.  It owns the precomputed
// multiples of the base point used by fixed-base multiplication.
//
// A Curve is immutable once NewCurve returns and is safe for concurrent use by
// any number of goroutines.  Applications typically create one at startup and
// pass it to every operation that multiplies points.
type Curve struct {
	// table holds, for window w and digit d in [1, 128], the point
	// d * 2^(8w) * G at index w*128 + d - 1.
	table []Point
}

// NewCurve builds the base point table and returns a ready to use context.
func NewCurve() *Curve {
	start := time.Now()
	table := make([]Point, 0, numWindows*windowSize)
	p := Generator()
	for w := 0; w < numWindows; w++ {
		b := p
		table = append(table, b)
		for i := 1; i < windowSize; i++ {
			b = b.Add(p)
			table = append(table, b)
		}
		p = b.Double()
	}

	log := logger.Logger()
	log.Debug().Int("windows", numWindows).Int("points", len(table)).
		Dur("took", time.Since(start)).Msg("built base point table")
	return &Curve{table: table}
}

// ScalarBaseMult returns k*G using the precomputed table.  The scalar must be
// in [1, N-1]; zero results in ErrInvalidScalar.
//
// The scalar is decoded into signed 8-bit digits.  A non-zero digit adds the
// matching table entry, negated for negative digits, to the result.  A zero
// digit adds a table entry to a separate accumulator that is discarded so the
// number of additions does not depend on the digits.
func (c *Curve) ScalarBaseMult(k ModNScalar) (Point, error) {
	if k.IsZero() {
		return Point{}, makeError(ErrInvalidScalar, "scalar must be in [1, N-1]")
	}
	return c.baseMult(k.value()), nil
}

// baseMult is the windowed multiplication behind ScalarBaseMult.
func (c *Curve) baseMult(k *big.Int) Point {
	n := new(big.Int).Set(k)
	mask := big.NewInt(1<<windowBits - 1)
	var digit big.Int

	p, f := Identity(), Generator()
	for w := 0; w < numWindows; w++ {
		bits := int(digit.And(n, mask).Int64())
		n.Rsh(n, windowBits)

		// Digits above 2^(W-1) become negative and carry into the next
		// window.
		if bits > windowSize {
			bits -= 1 << windowBits
			n.Add(n, bigOne)
		}

		off := w * windowSize
		switch {
		case bits == 0:
			f = f.Add(condNegate(w%2 != 0, c.table[off]))
		case bits < 0:
			p = p.Add(condNegate(true, c.table[off-bits-1]))
		default:
			p = p.Add(condNegate(false, c.table[off+bits-1]))
		}
	}
	return p
}

// ScalarMult returns k*point.  The scalar must be in [1, N-1]; zero results
// in ErrInvalidScalar.  A malformed point, one with Z = 0 that is not the
// canonical identity, results in ErrArithmetic.
//
// This is the path to use whenever k is secret.  Every bit of the scalar
// performs one addition, either into the result or into a discarded
// accumulator, and multiplication of the base point uses the table.
func (c *Curve) ScalarMult(k ModNScalar, point Point) (Point, error) {
	if k.IsZero() {
		return Point{}, makeError(ErrInvalidScalar, "scalar must be in [1, N-1]")
	}
	if point.isMalformed() {
		return Point{}, makeError(ErrArithmetic, "malformed point with zero Z coordinate")
	}
	return c.multiply(k, point, true), nil
}

// ScalarMultNonConst returns k*point.  A zero scalar yields the point at
// infinity.  A malformed point is never mistaken for the generator, so the
// result stays malformed and ToAffine reports it.
//
// NOTE: The skipped decoy additions make the running time depend on the bits
// of k, so it must only be used with public scalars such as those found when
// verifying a signature or recovering a public key.
func (c *Curve) ScalarMultNonConst(k ModNScalar, point Point) Point {
	if k.IsZero() {
		return Identity()
	}
	return c.multiply(k, point, false)
}

// DoubleScalarMultNonConst returns u1*G + u2*q.  It is variable time and must
// only be used with public scalars.
func (c *Curve) DoubleScalarMultNonConst(u1, u2 ModNScalar, q Point) Point {
	return c.ScalarMultNonConst(u1, Generator()).Add(c.ScalarMultNonConst(u2, q))
}

// multiply implements double-and-add from the least significant bit.  In safe
// mode an unset bit adds the current double into a discarded accumulator.
func (c *Curve) multiply(k ModNScalar, point Point, safe bool) Point {
	if k.IsOne() {
		return point
	}
	// The zero triple equals every point under Equals.
	if !point.isMalformed() && point.Equals(Generator()) {
		return c.baseMult(k.value())
	}

	n := k.Big()
	p, f := Identity(), Generator()
	for d := point; n.Sign() > 0; d, n = d.Double(), n.Rsh(n, 1) {
		if n.Bit(0) == 1 {
			p = p.Add(d)
		} else if safe {
			f = f.Add(d)
		}
	}
	return p
}

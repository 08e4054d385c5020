// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecdsa

import "github.com/ModChain/secp256k1/v2"

// VerifyOptions tunes signature verification.  The zero value (or a nil
// pointer) enforces low S.
type VerifyOptions struct {
	// AllowHighS accepts signatures whose S is greater than half the group
	// order.
	AllowHighS bool
}

// Verify returns whether or not the signature is valid for the provided hash
// and secp256k1 public key.  Malformed input, including signatures with a zero
// component, makes it return false rather than an error.
//
// All values involved are public so the variable time multiplication is used.
func Verify(curve *secp256k1.Curve, sig *Signature, hash []byte, pubKey *secp256k1.PublicKey, opts *VerifyOptions) bool {
	// The algorithm for verifying an ECDSA signature is given as algorithm 4.30
	// in [GECC].
	//
	// G = curve generator
	// N = curve order
	// Q = public key
	// r, s = signature
	//
	// 1. Fail if r and s are not in [1, N-1], or s > N/2 under low S
	// 2. e = H(m) mod N
	// 3. w = s^-1 mod N
	// 4. u1 = e * w mod N
	//    u2 = r * w mod N
	// 5. X = u1G + u2Q
	// 6. Fail if X is the point at infinity
	// 7. Verified if X.x mod N == r

	// Step 1.
	if sig.r.IsZero() || sig.s.IsZero() {
		return false
	}
	if (opts == nil || !opts.AllowHighS) && sig.HasHighS() {
		return false
	}

	// Step 2.
	e, err := hashToScalar(hash)
	if err != nil {
		return false
	}

	// Step 3.
	w, err := sig.s.InverseNonConst()
	if err != nil {
		return false
	}

	// Step 4.
	u1 := e.Mul(w)
	u2 := sig.r.Mul(w)

	// Step 5.
	X := curve.DoubleScalarMultNonConst(u1, u2, pubKey.AsPoint())

	// Step 6.
	if X.IsIdentity() {
		return false
	}

	// Step 7.
	x, _, err := X.ToAffine()
	if err != nil {
		return false
	}
	xBytes := x.Bytes()
	v, _ := secp256k1.ModNScalarFromBytes(&xBytes)
	return v.Equals(sig.r)
}

// Verify returns whether or not the signature is a valid low S signature for
// the provided hash and secp256k1 public key.
func (sig *Signature) Verify(curve *secp256k1.Curve, hash []byte, pubKey *secp256k1.PublicKey) bool {
	return Verify(curve, sig, hash, pubKey, nil)
}

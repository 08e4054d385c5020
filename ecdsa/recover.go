// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecdsa

import "github.com/ModChain/secp256k1/v2"

var (
	// curveParams holds the group order and field prime used to rebuild the
	// random point during recovery.
	curveParams = secp256k1.Params()
)

// RecoverPublicKey recovers the public key that produced the signature over
// hash.  The signature must carry a recovery code, as produced by Sign or
// attached with WithRecoveryID.
//
// A missing recovery code or one that cannot describe a point results in an
// error matching secp256k1.ErrInvalidScalar.
func RecoverPublicKey(curve *secp256k1.Curve, sig *Signature, hash []byte) (*secp256k1.PublicKey, error) {
	// The equation to recover a public key candidate from an ECDSA signature
	// is Q = r^-1(sX - eG), see section 4.1.6 of [SEC1].  The recovery code
	// selects which of the four points with x coordinate r (mod N) X was.
	//
	// 1. Fail if r and s are not in [1, N-1]
	// 2. x = r, plus N when the overflow bit is set, failing if x >= P
	// 3. y = sqrt(x^3 + 7) with the oddness given by the recovery code
	// 4. e = H(m) mod N
	// 5. w = r^-1 mod N
	// 6. u1 = -(e * w) mod N
	//    u2 = s * w mod N
	// 7. Q = u1G + u2X
	// 8. Fail if Q is the point at infinity
	code, ok := sig.RecoveryID()
	if !ok || code > maxRecoveryCode {
		return nil, signatureError(ErrSigInvalidRecoveryCode,
			"signature has no valid public key recovery code")
	}

	// Step 1.
	if sig.r.IsZero() {
		return nil, signatureError(ErrSigRIsZero, "invalid signature: R is 0")
	}
	if sig.s.IsZero() {
		return nil, signatureError(ErrSigSIsZero, "invalid signature: S is 0")
	}

	// Step 2.
	x := sig.r.Big()
	if code&pubKeyRecoveryCodeOverflowBit != 0 {
		x.Add(x, curveParams.N)
		if x.Cmp(curveParams.P) >= 0 {
			return nil, signatureError(ErrSigOverflowsPrime,
				"invalid signature: R + N >= P")
		}
	}
	fieldX := secp256k1.NewFieldVal(x)

	// Step 3.
	oddY := code&pubKeyRecoveryCodeOddnessBit != 0
	y, err := secp256k1.DecompressY(fieldX, oddY)
	if err != nil {
		return nil, signatureError(ErrPointNotOnCurve,
			"invalid signature: not for a valid curve point")
	}
	X := secp256k1.NewAffinePoint(fieldX, y)

	// Step 4.
	e, err := hashToScalar(hash)
	if err != nil {
		return nil, err
	}

	// Step 5.
	w, err := sig.r.InverseNonConst()
	if err != nil {
		return nil, err
	}

	// Step 6.
	u1 := e.Mul(w).Negate()
	u2 := sig.s.Mul(w)

	// Step 7.
	Q := curve.DoubleScalarMultNonConst(u1, u2, X)

	// Step 8.
	pubKey, err := secp256k1.PublicKeyFromPoint(Q)
	if err != nil {
		return nil, signatureError(ErrPubKeyIsInfinity,
			"recovered public key is the point at infinity")
	}
	return pubKey, nil
}

// recoveredMatches reports whether recovery with the given code produces the
// expected public key.  It is used to attach recovery codes to signatures
// that were parsed without one.
func recoveredMatches(curve *secp256k1.Curve, sig *Signature, hash []byte, code byte, want *secp256k1.PublicKey) bool {
	withCode, err := sig.WithRecoveryID(code)
	if err != nil {
		return false
	}
	got, err := RecoverPublicKey(curve, withCode, hash)
	return err == nil && got.IsEqual(want)
}

// FindRecoveryID returns the recovery code that recovers pubKey from the
// signature and hash.  It tries the four candidates in order and fails with
// ErrSigInvalidRecoveryCode when none of them match.
func FindRecoveryID(curve *secp256k1.Curve, sig *Signature, hash []byte, pubKey *secp256k1.PublicKey) (byte, error) {
	for code := byte(0); code <= maxRecoveryCode; code++ {
		if recoveredMatches(curve, sig, hash, code, pubKey) {
			return code, nil
		}
	}
	return 0, signatureError(ErrSigInvalidRecoveryCode,
		"no recovery code reproduces the public key")
}

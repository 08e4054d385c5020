// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecdsa

import (
	"context"
	"crypto"
	"fmt"
	"io"
	"math/big"

	"github.com/ModChain/secp256k1/v2"
)

// References:
//   [GECC]: Guide to Elliptic Curve Cryptography (Hankerson, Menezes, Vanstone)
//
//   [RFC6979]: Deterministic Usage of the Digital Signature Algorithm (DSA)
//     and Elliptic Curve Digital Signature Algorithm (ECDSA)

const (
	// maxHashLen is the longest message hash accepted.  Longer hashes are
	// truncated to their leftmost 256 bits.
	maxHashLen = 160

	// randEntropyLen is the number of bytes drawn from SignOptions.Rand.
	randEntropyLen = 32
)

// SignOptions tunes signature creation.  The zero value (or a nil pointer)
// produces deterministic low S signatures per [RFC6979] using HMAC-SHA256.
type SignOptions struct {
	// Hash is reported by HashFunc so that SignOptions can be passed as
	// crypto.SignerOpts.  It is not used to hash anything.
	Hash crypto.Hash

	// HighS keeps S as computed instead of normalizing it to the lower half
	// of the group order.
	HighS bool

	// ExtraEntropy is appended to the DRBG seed, producing a different but
	// still valid nonce.
	ExtraEntropy []byte

	// Rand, when set and ExtraEntropy is empty, supplies 32 bytes of extra
	// entropy for every signature.
	Rand io.Reader

	// KeyedHash overrides the HMAC used by the nonce generator.
	KeyedHash secp256k1.KeyedHash
}

// HashFunc implements crypto.SignerOpts.
func (o *SignOptions) HashFunc() crypto.Hash {
	return o.Hash
}

// hashToScalar converts a message hash to a scalar.  Hashes longer than 256
// bits are truncated to their leftmost 256 bits before the reduction modulo
// N, and hashes longer than maxHashLen bytes are rejected.
func hashToScalar(hash []byte) (secp256k1.ModNScalar, error) {
	if len(hash) > maxHashLen {
		str := fmt.Sprintf("message hash is %d bytes, max %d", len(hash),
			maxHashLen)
		return secp256k1.ModNScalar{}, signatureError(ErrSigHashTooLong, str)
	}
	v := new(big.Int).SetBytes(hash)
	if excess := len(hash)*8 - 256; excess > 0 {
		v.Rsh(v, uint(excess))
	}
	return secp256k1.NewModNScalar(v), nil
}

// Sign generates an ECDSA signature over the secp256k1 curve for the provided
// hash (which should be the result of hashing a larger message) using the
// given private key.  The nonce is derived per [RFC6979] from the private key,
// the hash and any extra entropy, so signing the same hash twice with the same
// options produces the same signature.
//
// The returned signature carries the public key recovery code.  A nil opts is
// the same as the zero SignOptions.
func Sign(curve *secp256k1.Curve, key *secp256k1.PrivateKey, hash []byte, opts *SignOptions) (*Signature, error) {
	// The algorithm for producing an ECDSA signature is given as algorithm 4.29
	// in [GECC], modified as follows:
	//
	// A. Instead of selecting a random nonce, candidates are produced by the
	//    [RFC6979] HMAC-DRBG seeded with the private key and the reduced hash
	// B. Negate S if it is > N/2 unless high S is requested
	//
	// G = curve generator
	// N = curve order
	// d = private key
	// e = H(m) mod N
	//
	// 1. k = next DRBG candidate, repeat if k is not in [1, N-1]
	// 2. R = kG
	// 3. r = R.x mod N, repeat from step 1 if r = 0
	// 4. s = k^-1(e + dr) mod N, repeat from step 1 if s = 0
	// 5. Negate s and flip the recovery oddness bit if s > N/2
	if key == nil || key.Key().IsZero() {
		str := "private key must be in [1, N-1]"
		return nil, signatureError(ErrPrivKeyIsZero, str)
	}
	if opts == nil {
		opts = &SignOptions{}
	}
	mac := opts.KeyedHash
	if mac == nil {
		mac = secp256k1.HMACSHA256
	}

	e, err := hashToScalar(hash)
	if err != nil {
		return nil, err
	}

	extra := opts.ExtraEntropy
	if len(extra) == 0 && opts.Rand != nil {
		extra = make([]byte, randEntropyLen)
		if _, err := io.ReadFull(opts.Rand, extra); err != nil {
			return nil, err
		}
	}

	d := key.Key()
	dBytes, eBytes := d.Bytes(), e.Bytes()
	seed := make([]byte, 0, len(dBytes)+len(eBytes)+len(extra))
	seed = append(seed, dBytes[:]...)
	seed = append(seed, eBytes[:]...)
	seed = append(seed, extra...)
	defer func() {
		for i := range seed {
			seed[i] = 0
		}
		dBytes = [32]byte{}
	}()

	return secp256k1.GenerateNonce(mac, seed, func(candidate []byte) (*Signature, bool) {
		// Step 1.
		var kBytes [32]byte
		copy(kBytes[:], candidate)
		k, overflow := secp256k1.ModNScalarFromBytes(&kBytes)
		if overflow || k.IsZero() {
			return nil, false
		}

		// Step 2.
		R, err := curve.ScalarBaseMult(k)
		if err != nil {
			return nil, false
		}
		rx, ry, err := R.ToAffine()
		if err != nil {
			return nil, false
		}

		// Step 3.
		rxBytes := rx.Bytes()
		r, rOverflow := secp256k1.ModNScalarFromBytes(&rxBytes)
		if r.IsZero() {
			return nil, false
		}

		// Step 4.
		kInv, err := k.Inverse()
		if err != nil {
			return nil, false
		}
		s := kInv.Mul(e.Add(d.Mul(r)))
		if s.IsZero() {
			return nil, false
		}

		var code byte
		if rOverflow {
			code |= pubKeyRecoveryCodeOverflowBit
		}
		if ry.IsOdd() {
			code |= pubKeyRecoveryCodeOddnessBit
		}
		sig := &Signature{r: r, s: s, recovery: code, hasRecovery: true}

		// Step 5.
		if !opts.HighS {
			sig = sig.NormalizeS()
		}
		return sig, true
	})
}

// SignContext is like Sign but derives the nonce with a keyed hash served by
// an asynchronous backend such as a hardware module.  Every call to the
// backend receives ctx, and once ctx is done signing fails with the context
// error.  The KeyedHash of opts is ignored.
func SignContext(ctx context.Context, curve *secp256k1.Curve, key *secp256k1.PrivateKey, hash []byte, backend secp256k1.AsyncKeyedHash, opts *SignOptions) (*Signature, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	o := SignOptions{}
	if opts != nil {
		o = *opts
	}
	o.KeyedHash = secp256k1.ContextKeyedHash(ctx, backend)
	return Sign(curve, key, hash, &o)
}

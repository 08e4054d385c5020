// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"fmt"
	"hash"

	"github.com/ModChain/secp256k1/v2/logger"
	"golang.org/x/crypto/sha3"
)

// References:
//   [RFC6979]: Deterministic Usage of the Digital Signature Algorithm (DSA)
//     and Elliptic Curve Digital Signature Algorithm (ECDSA)
//     https://www.rfc-editor.org/rfc/rfc6979

const (
	// MaxNonceAttempts is the maximum number of candidates GenerateNonce
	// produces before giving up with ErrNonceExhausted.
	MaxNonceAttempts = 1000

	// nonceSize is the size of V and K in the HMAC-DRBG and the size of every
	// candidate.
	nonceSize = 32
)

// KeyedHash is a keyed hash function producing 32-byte outputs, such as
// HMAC-SHA256.  Sum returns the keyed hash of the concatenation of msgs.
type KeyedHash interface {
	Sum(key []byte, msgs ...[]byte) ([]byte, error)
}

// HMAC is a KeyedHash computing an HMAC over the hash returned by the
// function.  The hash must have a 32-byte output.
type HMAC func() hash.Hash

// Sum returns the HMAC of the concatenated messages under the key.
func (h HMAC) Sum(key []byte, msgs ...[]byte) ([]byte, error) {
	mac := hmac.New(h, key)
	for _, msg := range msgs {
		mac.Write(msg)
	}
	return mac.Sum(nil), nil
}

var (
	// HMACSHA256 is the keyed hash used by RFC6979 signing by default.
	HMACSHA256 KeyedHash = HMAC(sha256.New)

	// HMACSHA3256 is HMAC over SHA3-256.
	HMACSHA3256 KeyedHash = HMAC(sha3.New256)
)

// AsyncKeyedHash is a keyed hash backed by a service that may block, such as
// a hardware module or a platform crypto API.
type AsyncKeyedHash interface {
	SumContext(ctx context.Context, key []byte, msgs ...[]byte) ([]byte, error)
}

// contextKeyedHash binds an AsyncKeyedHash to a context.
type contextKeyedHash struct {
	ctx     context.Context
	backend AsyncKeyedHash
}

// ContextKeyedHash adapts an asynchronous backend into a KeyedHash whose calls
// are made with ctx.  Once ctx is done every call fails with the context error,
// which aborts nonce generation as a whole.
func ContextKeyedHash(ctx context.Context, backend AsyncKeyedHash) KeyedHash {
	return contextKeyedHash{ctx: ctx, backend: backend}
}

// Sum implements KeyedHash.
func (h contextKeyedHash) Sum(key []byte, msgs ...[]byte) ([]byte, error) {
	if err := h.ctx.Err(); err != nil {
		return nil, err
	}
	return h.backend.SumContext(h.ctx, key, msgs...)
}

// hmacDRBG is the HMAC_DRBG of [RFC6979] section 3.2.  A new instance is used
// for every nonce so no state survives between calls.
type hmacDRBG struct {
	mac      KeyedHash
	k, v     []byte
	attempts int
}

// sum calls the keyed hash and checks the output size.
func (d *hmacDRBG) sum(key []byte, msgs ...[]byte) ([]byte, error) {
	out, err := d.mac.Sum(key, msgs...)
	if err != nil {
		log := logger.Logger()
		log.Warn().Err(err).Msg("keyed hash failed during nonce generation")
		return nil, err
	}
	if len(out) != nonceSize {
		str := fmt.Sprintf("keyed hash returned %d bytes, want %d", len(out),
			nonceSize)
		return nil, makeError(ErrFormat, str)
	}
	return out, nil
}

// reseed mixes seed into the state ([RFC6979] steps 3.2.d through 3.2.g).  An
// empty seed performs only the first half, which is the update used between
// rejected candidates (step 3.2.h.3).
func (d *hmacDRBG) reseed(seed []byte) error {
	var err error
	if d.k, err = d.sum(d.k, d.v, []byte{0x00}, seed); err != nil {
		return err
	}
	if d.v, err = d.sum(d.k, d.v); err != nil {
		return err
	}
	if len(seed) == 0 {
		return nil
	}
	if d.k, err = d.sum(d.k, d.v, []byte{0x01}, seed); err != nil {
		return err
	}
	d.v, err = d.sum(d.k, d.v)
	return err
}

// generate produces the next candidate ([RFC6979] step 3.2.h.2).
func (d *hmacDRBG) generate() ([]byte, error) {
	if d.attempts >= MaxNonceAttempts {
		return nil, makeError(ErrNonceExhausted,
			fmt.Sprintf("no acceptable nonce after %d attempts", MaxNonceAttempts))
	}
	d.attempts++
	var err error
	d.v, err = d.sum(d.k, d.v)
	return d.v, err
}

// GenerateNonce runs the HMAC-DRBG of RFC6979 with the given keyed hash over
// the seed, which is normally the 32-byte private key followed by the 32-byte
// reduced message hash and optional extra entropy.
//
// Each 32-byte candidate is passed to accept.  The first candidate accepted is
// returned along with the value produced by accept; a rejected candidate
// reseeds the generator and produces the next one.  After MaxNonceAttempts
// rejected candidates ErrNonceExhausted is returned, which indicates a broken
// keyed hash rather than bad luck.  Errors from the keyed hash are returned
// as is.
//
// The generator does not retain any state between calls.
func GenerateNonce[T any](mac KeyedHash, seed []byte, accept func(candidate []byte) (T, bool)) (T, error) {
	var zero T
	d := hmacDRBG{
		mac: mac,
		v:   bytes.Repeat([]byte{0x01}, nonceSize),
		k:   make([]byte, nonceSize),
	}
	if err := d.reseed(seed); err != nil {
		return zero, err
	}

	log := logger.Logger()
	for {
		candidate, err := d.generate()
		if err != nil {
			if errors.Is(err, ErrNonceExhausted) {
				log.Error().Int("attempts", d.attempts).Msg("nonce generation exhausted")
			}
			return zero, err
		}
		if result, ok := accept(candidate); ok {
			return result, nil
		}
		log.Debug().Int("attempt", d.attempts).Msg("nonce candidate rejected")
		if err := d.reseed(nil); err != nil {
			return zero, err
		}
	}
}

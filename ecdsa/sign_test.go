// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecdsa

import (
	"bytes"
	"context"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"testing"

	"github.com/ModChain/secp256k1/v2"
	"github.com/stretchr/testify/require"
)

// testCurve is shared by the tests of this package since building the base
// point table is comparatively expensive.
var testCurve = secp256k1.NewCurve()

// hexToPrivKey converts the passed hex string into a private key and will
// panic if there is an error.  This is only provided for the hard-coded
// constants so errors in the source code can be detected.
func hexToPrivKey(s string) *secp256k1.PrivateKey {
	key, err := secp256k1.ParsePrivKeyHex(s)
	if err != nil {
		panic("invalid private key in source file: " + s)
	}
	return key
}

func sha256Hash(msg string) []byte {
	h := sha256.Sum256([]byte(msg))
	return h[:]
}

// TestSignVectors ensures signing produces the expected deterministic
// signatures and recovery codes.
func TestSignVectors(t *testing.T) {
	const keyOne = "0000000000000000000000000000000000000000000000000000000000000001"
	sha512abc := sha512.Sum512([]byte("abc"))

	tests := []struct {
		name string
		key  string
		hash []byte
		opts *SignOptions
		r, s string
		code byte
	}{{
		name: "key 1, empty message",
		key:  keyOne,
		hash: sha256Hash(""),
		r:    "77c8d336572f6f466055b5f70f433851f8f535f6c4fc71133a6cfd71079d03b7",
		s:    "0ed9f5eb8aa5b266abac35d416c3207e7a538bf5f37649727d7a9823b1069577",
		code: 1,
	}, {
		name: "key 1, empty message, zero extra entropy",
		key:  keyOne,
		hash: sha256Hash(""),
		opts: &SignOptions{ExtraEntropy: make([]byte, 32)},
		r:    "e657a3b18c45ade6a5702f3e87eb082be876447e6cf2e95d89c8508b4bbcde30",
		s:    "5c09b014b3b42ef19e757bc3fc2f9076756679f9fe39806633d7edcfdb96fe4e",
		code: 0,
	}, {
		name: "key 1, empty message, HMAC-SHA3-256",
		key:  keyOne,
		hash: sha256Hash(""),
		opts: &SignOptions{KeyedHash: secp256k1.HMACSHA3256},
		r:    "7f40972ce4134c4798a5e915c9d5f80eb32ba6dc30f4a809f0bd7f5ef1904f31",
		s:    "1127743aa9abbd0ed0d4f8746563f23dfe9314d72ec2fca9525bfc1f6fe6513d",
		code: 1,
	}, {
		name: "key 1, 64-byte hash is truncated",
		key:  keyOne,
		hash: sha512abc[:],
		r:    "4af7a59dff63e0a8a460afd42fd8aff64077f761c6894984e2d05999bd64b20c",
		s:    "1abf0397654fc11cfad3a2a16db6a4f1a515e50c594576e1b9fcd40d632518b7",
		code: 0,
	}, {
		name: "key 1, Satoshi Nakamoto",
		key:  keyOne,
		hash: sha256Hash("Satoshi Nakamoto"),
		r:    "934b1ea10a4b3c1757e2b0c017d0b6143ce3c9a7e6a4a49860d7a6ab210ee3d8",
		s:    "2442ce9d2b916064108014783e923ec36b49743e2ffa1c4496f01a512aafd9e5",
		code: 1,
	}, {
		name: "key 1, Satoshi Nakamoto, high S",
		key:  keyOne,
		hash: sha256Hash("Satoshi Nakamoto"),
		opts: &SignOptions{HighS: true},
		r:    "934b1ea10a4b3c1757e2b0c017d0b6143ce3c9a7e6a4a49860d7a6ab210ee3d8",
		s:    "dbbd3162d46e9f9bef7feb87c16dc13b4f6568a87f4e83f728e2443ba586675c",
		code: 0,
	}, {
		name: "key 1, hello, high S kept",
		key:  keyOne,
		hash: sha256Hash("hello"),
		opts: &SignOptions{HighS: true},
		r:    "0f2fff8620d8ffe97040f8cf72ae476ef8ff4412373929c0324ce8428d3352e7",
		s:    "e7ba51b6fcfd8998ffa7b9070f41c19fe7d380ae888e1c94da8f7e0c5706a6a4",
		code: 1,
	}, {
		name: "key 1, hello, low S",
		key:  keyOne,
		hash: sha256Hash("hello"),
		r:    "0f2fff8620d8ffe97040f8cf72ae476ef8ff4412373929c0324ce8428d3352e7",
		s:    "1845ae4903027667005846f8f0be3e5ed2db5c3826ba83a6e542e080792f9a9d",
		code: 0,
	}, {
		name: "key 0x11..11, Satoshi Nakamoto",
		key:  "1111111111111111111111111111111111111111111111111111111111111111",
		hash: sha256Hash("Satoshi Nakamoto"),
		r:    "2b3310d4829945dc4ebecc3493c62f583efade2be6c6fa36f6dbb9eeac673973",
		s:    "0f838635ae62e8bfe56e203992016d2de962acf41e5616e8ce0d0a8cb36aaece",
		code: 1,
	}}

	for _, test := range tests {
		key := hexToPrivKey(test.key)
		sig, err := Sign(testCurve, key, test.hash, test.opts)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
			continue
		}
		if !sig.R().Equals(hexToModNScalar(test.r)) {
			t.Errorf("%s: mismatched R -- got %v, want %s", test.name, sig.R(),
				test.r)
			continue
		}
		if !sig.S().Equals(hexToModNScalar(test.s)) {
			t.Errorf("%s: mismatched S -- got %v, want %s", test.name, sig.S(),
				test.s)
			continue
		}
		code, ok := sig.RecoveryID()
		if !ok || code != test.code {
			t.Errorf("%s: mismatched recovery code -- got %d (%v), want %d",
				test.name, code, ok, test.code)
			continue
		}

		// The signature must verify, with high S allowed where requested, and
		// recover the signing key.
		pubKey, err := key.PubKey(testCurve)
		require.NoError(t, err)
		verifyOpts := &VerifyOptions{AllowHighS: test.opts != nil && test.opts.HighS}
		if !Verify(testCurve, sig, test.hash, pubKey, verifyOpts) {
			t.Errorf("%s: signature does not verify", test.name)
			continue
		}
		recovered, err := RecoverPublicKey(testCurve, sig, test.hash)
		if err != nil {
			t.Errorf("%s: unexpected recovery error: %v", test.name, err)
			continue
		}
		if !recovered.IsEqual(pubKey) {
			t.Errorf("%s: recovered wrong public key", test.name)
		}
	}
}

// TestSignDeterministic ensures identical inputs yield identical signatures
// and that extra entropy changes them.
func TestSignDeterministic(t *testing.T) {
	key := hexToPrivKey("1111111111111111111111111111111111111111111111111111111111111111")
	hash := sha256Hash("deterministic")

	first, err := Sign(testCurve, key, hash, nil)
	require.NoError(t, err)
	second, err := Sign(testCurve, key, hash, &SignOptions{})
	require.NoError(t, err)
	require.True(t, first.IsEqual(second))

	entropy := bytes.Repeat([]byte{0x42}, 32)
	withEntropy, err := Sign(testCurve, key, hash, &SignOptions{ExtraEntropy: entropy})
	require.NoError(t, err)
	require.False(t, first.IsEqual(withEntropy))

	// Entropy read from Rand is the same as passing it explicitly.
	fromRand, err := Sign(testCurve, key, hash,
		&SignOptions{Rand: bytes.NewReader(entropy)})
	require.NoError(t, err)
	require.True(t, withEntropy.IsEqual(fromRand))

	_, err = Sign(testCurve, key, hash, &SignOptions{Rand: bytes.NewReader(nil)})
	require.Error(t, err)
}

// TestSignHashLength ensures hashes up to the maximum length are accepted and
// longer ones are rejected.
func TestSignHashLength(t *testing.T) {
	key := hexToPrivKey("0000000000000000000000000000000000000000000000000000000000000001")
	pubKey, err := key.PubKey(testCurve)
	require.NoError(t, err)

	for _, n := range []int{0, 1, 20, 32, 48, 64, maxHashLen} {
		hash := bytes.Repeat([]byte{0xa5}, n)
		sig, err := Sign(testCurve, key, hash, nil)
		require.NoError(t, err, "length %d", n)
		require.True(t, sig.Verify(testCurve, hash, pubKey), "length %d", n)
	}

	tooLong := make([]byte, maxHashLen+1)
	_, err = Sign(testCurve, key, tooLong, nil)
	require.ErrorIs(t, err, ErrSigHashTooLong)
	require.ErrorIs(t, err, secp256k1.ErrFormat)
}

// TestSignZeroKey ensures a private key outside [1, N-1] is rejected rather
// than producing a signature for the point at infinity.
func TestSignZeroKey(t *testing.T) {
	hash := sha256Hash("")
	tests := []struct {
		name string
		key  *secp256k1.PrivateKey
	}{
		{"nil key", nil},
		{"zero value key", &secp256k1.PrivateKey{}},
	}
	for _, test := range tests {
		sig, err := Sign(testCurve, test.key, hash, nil)
		if !errors.Is(err, ErrPrivKeyIsZero) {
			t.Errorf("%s: mismatched err -- got %v, want %v", test.name, err,
				ErrPrivKeyIsZero)
		}
		if !errors.Is(err, secp256k1.ErrInvalidScalar) {
			t.Errorf("%s: err %v does not match %v", test.name, err,
				secp256k1.ErrInvalidScalar)
		}
		if sig != nil {
			t.Errorf("%s: unexpected signature %v", test.name, sig)
		}

		_, err = SignCompact(testCurve, test.key, hash, true)
		require.ErrorIs(t, err, ErrPrivKeyIsZero, test.name)

		_, err = SignContext(context.Background(), testCurve, test.key, hash,
			&hmacBackend{}, nil)
		require.ErrorIs(t, err, ErrPrivKeyIsZero, test.name)
	}
}

// TestHashToScalar ensures long hashes keep their leftmost 256 bits.
func TestHashToScalar(t *testing.T) {
	long := append(bytes.Repeat([]byte{0x01}, 32), 0xff, 0xff)
	got, err := hashToScalar(long)
	require.NoError(t, err)
	want := hexToModNScalar("0101010101010101010101010101010101010101010101010101010101010101")
	require.True(t, got.Equals(want))

	// Values at or above the order are reduced.
	order := hexToBytes("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364142")
	got, err = hashToScalar(order)
	require.NoError(t, err)
	require.True(t, got.IsOne())
}

// saturatedHash is a keyed hash whose every output is 2^256-1, which is never
// a valid nonce.
type saturatedHash struct{}

func (saturatedHash) Sum(key []byte, msgs ...[]byte) ([]byte, error) {
	return bytes.Repeat([]byte{0xff}, 32), nil
}

// TestSignNonceExhausted ensures a keyed hash that never yields a usable nonce
// ends in ErrNonceExhausted.
func TestSignNonceExhausted(t *testing.T) {
	key := hexToPrivKey("0000000000000000000000000000000000000000000000000000000000000001")
	_, err := Sign(testCurve, key, sha256Hash(""), &SignOptions{KeyedHash: saturatedHash{}})
	require.ErrorIs(t, err, secp256k1.ErrNonceExhausted)
}

// hmacBackend is an asynchronous keyed hash computing HMAC-SHA256.
type hmacBackend struct {
	calls int
}

func (b *hmacBackend) SumContext(ctx context.Context, key []byte, msgs ...[]byte) ([]byte, error) {
	b.calls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return secp256k1.HMACSHA256.Sum(key, msgs...)
}

// TestSignContext ensures the asynchronous variant produces the same
// signatures as Sign and honors cancellation.
func TestSignContext(t *testing.T) {
	key := hexToPrivKey("0000000000000000000000000000000000000000000000000000000000000001")
	hash := sha256Hash("Satoshi Nakamoto")

	want, err := Sign(testCurve, key, hash, nil)
	require.NoError(t, err)

	backend := &hmacBackend{}
	got, err := SignContext(context.Background(), testCurve, key, hash, backend, nil)
	require.NoError(t, err)
	require.True(t, want.IsEqual(got))
	require.NotZero(t, backend.calls)

	// The keyed hash of the options is replaced by the backend.
	got, err = SignContext(context.Background(), testCurve, key, hash, backend,
		&SignOptions{KeyedHash: saturatedHash{}})
	require.NoError(t, err)
	require.True(t, want.IsEqual(got))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	backend.calls = 0
	_, err = SignContext(ctx, testCurve, key, hash, backend, nil)
	require.True(t, errors.Is(err, context.Canceled))
	require.Zero(t, backend.calls)
}

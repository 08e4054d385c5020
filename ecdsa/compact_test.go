// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecdsa

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"

	"github.com/ModChain/secp256k1/v2"
	dcrsecp "github.com/decred/dcrd/dcrec/secp256k1/v4"
	dcrecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/stretchr/testify/require"
)

// TestSignCompact ensures compact signatures round trip through recovery and
// carry the compression flag.
func TestSignCompact(t *testing.T) {
	for i := 0; i < 8; i++ {
		key, err := secp256k1.GeneratePrivateKey()
		require.NoError(t, err)
		pubKey, err := key.PubKey(testCurve)
		require.NoError(t, err)

		var hash [32]byte
		_, err = rand.Read(hash[:])
		require.NoError(t, err)

		for _, compressed := range []bool{true, false} {
			sig, err := SignCompact(testCurve, key, hash[:], compressed)
			if err != nil {
				t.Fatalf("#%d: unexpected error: %v", i, err)
			}
			got, wasCompressed, err := RecoverCompact(testCurve, sig, hash[:])
			if err != nil {
				t.Fatalf("#%d: unexpected recovery error: %v", i, err)
			}
			if !got.IsEqual(pubKey) {
				t.Fatalf("#%d: recovered wrong public key", i)
			}
			if wasCompressed != compressed {
				t.Fatalf("#%d: mismatched compression flag", i)
			}
		}
	}
}

// TestCompactMatchesDecred ensures compact signatures, DER signatures and
// recovered keys match an independent implementation byte for byte.
func TestCompactMatchesDecred(t *testing.T) {
	for i := 0; i < 8; i++ {
		key, err := secp256k1.GeneratePrivateKey()
		require.NoError(t, err)
		oracleKey := dcrsecp.PrivKeyFromBytes(key.Serialize())

		var hash [32]byte
		_, err = rand.Read(hash[:])
		require.NoError(t, err)

		got, err := SignCompact(testCurve, key, hash[:], true)
		require.NoError(t, err)
		want := dcrecdsa.SignCompact(oracleKey, hash[:], true)
		if !bytes.Equal(got, want) {
			t.Fatalf("#%d: mismatched compact signature\ngot:  %x\nwant: %x", i,
				got, want)
		}

		sig, err := Sign(testCurve, key, hash[:], nil)
		require.NoError(t, err)
		require.Equal(t, dcrecdsa.Sign(oracleKey, hash[:]).Serialize(), sig.Serialize())

		oraclePub, _, err := dcrecdsa.RecoverCompact(got, hash[:])
		require.NoError(t, err)
		pubKey, err := key.PubKey(testCurve)
		require.NoError(t, err)
		require.Equal(t, oraclePub.SerializeCompressed(), pubKey.SerializeCompressed())
	}
}

// TestRecoverCompactErrors ensures malformed compact signatures are rejected.
func TestRecoverCompactErrors(t *testing.T) {
	key := hexToPrivKey("0000000000000000000000000000000000000000000000000000000000000001")
	hash := sha256Hash("compact")
	sig, err := SignCompact(testCurve, key, hash, true)
	require.NoError(t, err)

	withCode := func(code byte) []byte {
		out := append([]byte(nil), sig...)
		out[0] = code
		return out
	}
	zeroR := append([]byte(nil), sig...)
	copy(zeroR[1:33], make([]byte, 32))

	tests := []struct {
		name string
		sig  []byte
		err  error
	}{
		{"empty", nil, ErrSigInvalidLen},
		{"too short", sig[:64], ErrSigInvalidLen},
		{"too long", append(append([]byte(nil), sig...), 0), ErrSigInvalidLen},
		{"code too small", withCode(26), ErrSigInvalidRecoveryCode},
		{"code too big", withCode(35), ErrSigInvalidRecoveryCode},
		{"R is zero", zeroR, ErrSigRIsZero},
	}
	for _, test := range tests {
		_, _, err := RecoverCompact(testCurve, test.sig, hash)
		if !errors.Is(err, test.err) {
			t.Errorf("%s: mismatched err -- got %v, want %v", test.name, err,
				test.err)
		}
	}
}

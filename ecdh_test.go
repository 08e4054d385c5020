// Copyright (c) 2015-2016 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"bytes"
	"testing"

	dcrsecp "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/require"
)

func TestGenerateSharedSecret(t *testing.T) {
	privKey1, err := GeneratePrivateKey()
	if err != nil {
		t.Errorf("private key generation error: %s", err)
		return
	}
	privKey2, err := GeneratePrivateKey()
	if err != nil {
		t.Errorf("private key generation error: %s", err)
		return
	}

	pubKey1, err := privKey1.PubKey(testCurve)
	if err != nil {
		t.Fatalf("public key derivation error: %s", err)
	}
	pubKey2, err := privKey2.PubKey(testCurve)
	if err != nil {
		t.Fatalf("public key derivation error: %s", err)
	}

	for _, compressed := range []bool{true, false} {
		secret1, err := GenerateSharedSecret(testCurve, privKey1, pubKey2, compressed)
		if err != nil {
			t.Fatalf("shared secret error: %s", err)
		}
		secret2, err := GenerateSharedSecret(testCurve, privKey2, pubKey1, compressed)
		if err != nil {
			t.Fatalf("shared secret error: %s", err)
		}

		if !bytes.Equal(secret1, secret2) {
			t.Errorf("ECDH failed, secrets mismatch - first: %x, second: %x",
				secret1, secret2)
		}

		// The x coordinate must match the x-only secret of an independent
		// implementation.
		oracle := dcrsecp.GenerateSharedSecret(
			dcrsecp.PrivKeyFromBytes(privKey1.Serialize()),
			dcrsecp.PrivKeyFromBytes(privKey2.Serialize()).PubKey())
		if !bytes.Equal(secret1[1:33], oracle) {
			t.Errorf("x coordinate mismatch - got %x, want %x", secret1[1:33],
				oracle)
		}
	}
}

// TestSharedSecretVectors ensures the shared secret of two fixed keys is the
// expected encoding of the shared point.
func TestSharedSecretVectors(t *testing.T) {
	privA, err := ParsePrivKeyHex("1111111111111111111111111111111111111111111111111111111111111111")
	require.NoError(t, err)
	privB, err := ParsePrivKeyHex("2222222222222222222222222222222222222222222222222222222222222222")
	require.NoError(t, err)

	pubA, err := ParsePubKeyHex("034f355bdcb7cc0af728ef3cceb9615d90684bb5b2ca5f859ab0f0b704075871aa")
	require.NoError(t, err)
	pubB, err := ParsePubKeyHex("02466d7fcae563e5cb09a0d1870bb580344804617879a14949cf22285f1bae3f27")
	require.NoError(t, err)

	const (
		wantCompressed   = "0277e0510d5042e2f5e9e59c977b81eeed590cf7d20c1c51da451a8eaa9fdc45ff"
		wantUncompressed = "0477e0510d5042e2f5e9e59c977b81eeed590cf7d20c1c51da451a8eaa9fdc45ff" +
			"5bc2344d3d5d8376b78519f5077117b8c34f19870cd4be70f6517cd91f573738"
	)

	secret, err := privA.ECDH(testCurve, pubB)
	require.NoError(t, err)
	require.Equal(t, wantCompressed, hexString(secret))

	secret, err = GenerateSharedSecret(testCurve, privB, pubA, false)
	require.NoError(t, err)
	require.Equal(t, wantUncompressed, hexString(secret))

	// The shared secret is itself a valid public key.
	_, err = ParsePubKey(secret)
	require.NoError(t, err)
}

// TestDeriveSharedKey ensures keys derived from the shared point agree between
// both parties and match HKDF-SHA256 over the shared x coordinate.
func TestDeriveSharedKey(t *testing.T) {
	privA, err := ParsePrivKeyHex("1111111111111111111111111111111111111111111111111111111111111111")
	require.NoError(t, err)
	privB, err := ParsePrivKeyHex("2222222222222222222222222222222222222222222222222222222222222222")
	require.NoError(t, err)
	pubA, err := privA.PubKey(testCurve)
	require.NoError(t, err)
	pubB, err := privB.PubKey(testCurve)
	require.NoError(t, err)

	info := []byte("secp256k1 test")
	keyA, err := DeriveSharedKey(testCurve, privA, pubB, info, 42)
	require.NoError(t, err)
	keyB, err := DeriveSharedKey(testCurve, privB, pubA, info, 42)
	require.NoError(t, err)

	require.Equal(t, keyA, keyB)
	require.Equal(t, "1351a59a09c0e094c5a932ff26300439cb85e1bd54038ce2df10056800e9b5b2"+
		"522c707cfa7a175ae044", hexString(keyA))

	other, err := DeriveSharedKey(testCurve, privA, pubB, []byte("other"), 42)
	require.NoError(t, err)
	require.NotEqual(t, keyA, other)
}

// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestGeneratePrivateKey ensures the key generation works as intended.
func TestGeneratePrivateKey(t *testing.T) {
	priv, err := GeneratePrivateKey()
	if err != nil {
		t.Errorf("failed to generate private key: %s", err)
		return
	}
	pub, err := priv.PubKey(testCurve)
	if err != nil {
		t.Errorf("failed to derive public key: %s", err)
		return
	}
	if !isOnCurve(pub.x, pub.y) {
		t.Error("public key is not on the curve")
	}
	if !IsValidPrivateKey(priv.Serialize()) {
		t.Error("generated key is not in range")
	}
}

// TestGeneratePrivateKeyCorners ensures random values that map to the edges of
// the valid range are handled and short reads are reported.
func TestGeneratePrivateKeyCorners(t *testing.T) {
	// All zero input maps to one.
	priv, err := GeneratePrivateKeyFromRand(bytes.NewReader(make([]byte, randKeyLen)))
	require.NoError(t, err)
	require.True(t, priv.Key().IsOne())

	// N-1 maps back to one since the input is reduced modulo N-1.
	var buf [randKeyLen]byte
	orderMinusOne.FillBytes(buf[:])
	priv, err = GeneratePrivateKeyFromRand(bytes.NewReader(buf[:]))
	require.NoError(t, err)
	require.True(t, priv.Key().IsOne())

	// All ones never reaches N.
	allOnes := bytes.Repeat([]byte{0xff}, randKeyLen)
	priv, err = GeneratePrivateKeyFromRand(bytes.NewReader(allOnes))
	require.NoError(t, err)
	require.True(t, IsValidPrivateKey(priv.Serialize()))

	_, err = GeneratePrivateKeyFromRand(bytes.NewReader(make([]byte, randKeyLen-1)))
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

// TestPrivKeyFromBytes ensures private keys are parsed according to their
// length and range.
func TestPrivKeyFromBytes(t *testing.T) {
	tests := []struct {
		name string // test description
		key  string // hex encoded private key
		err  error  // expected error
	}{{
		name: "one",
		key:  "0000000000000000000000000000000000000000000000000000000000000001",
		err:  nil,
	}, {
		name: "N-1",
		key:  "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364140",
		err:  nil,
	}, {
		name: "zero",
		key:  "0000000000000000000000000000000000000000000000000000000000000000",
		err:  ErrInvalidScalar,
	}, {
		name: "N",
		key:  "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141",
		err:  ErrInvalidScalar,
	}, {
		name: "2^256-1",
		key:  "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff",
		err:  ErrInvalidScalar,
	}, {
		name: "short",
		key:  "01",
		err:  ErrFormat,
	}, {
		name: "long",
		key:  "000000000000000000000000000000000000000000000000000000000000000001",
		err:  ErrFormat,
	}}

	for _, test := range tests {
		priv, err := PrivKeyFromBytes(hexToBytes(test.key))
		if !errors.Is(err, test.err) {
			t.Errorf("%s: mismatched err -- got %v, want %v", test.name, err,
				test.err)
			continue
		}
		if IsValidPrivateKey(hexToBytes(test.key)) != (test.err == nil) {
			t.Errorf("%s: mismatched validity", test.name)
			continue
		}
		if err != nil {
			continue
		}
		if !bytes.Equal(priv.Serialize(), hexToBytes(test.key)) {
			t.Errorf("%s: mismatched serialization -- got %x, want %s",
				test.name, priv.Serialize(), test.key)
		}
	}

	_, err := ParsePrivKeyHex("0g")
	require.ErrorIs(t, err, ErrParse)

	_, err = NewPrivateKey(ModNScalar{})
	require.ErrorIs(t, err, ErrInvalidScalar)
}

// TestPrivKeyFromHash ensures key material of the accepted lengths maps into
// the valid range.
func TestPrivKeyFromHash(t *testing.T) {
	for _, n := range []int{0, 32, minKeyHashLen - 1, maxKeyHashLen + 1} {
		_, err := PrivKeyFromHash(make([]byte, n))
		require.ErrorIs(t, err, ErrFormat, "length %d", n)
	}

	for _, n := range []int{minKeyHashLen, 64, maxKeyHashLen} {
		material := make([]byte, n)
		_, err := rand.Read(material)
		require.NoError(t, err)
		priv, err := PrivKeyFromHash(material)
		require.NoError(t, err)
		require.True(t, IsValidPrivateKey(priv.Serialize()))

		want := new(big.Int).SetBytes(material)
		want.Mod(want, orderMinusOne).Add(want, bigOne)
		require.Zero(t, want.Cmp(priv.Key().Big()))
	}
}

// TestPrivKeyToECDSA ensures converted keys interoperate with crypto/ecdsa.
func TestPrivKeyToECDSA(t *testing.T) {
	priv, err := ParsePrivKeyHex("1111111111111111111111111111111111111111111111111111111111111111")
	require.NoError(t, err)

	key, err := priv.ToECDSA(testCurve)
	require.NoError(t, err)
	require.Equal(t, "secp256k1", key.Curve.Params().Name)
	require.Zero(t, key.D.Cmp(priv.Key().Big()))

	pub, err := priv.PubKey(testCurve)
	require.NoError(t, err)
	require.Equal(t, "034f355bdcb7cc0af728ef3cceb9615d90684bb5b2ca5f859ab0f0b704075871aa",
		hexString(pub.SerializeCompressed()))
	require.Zero(t, key.X.Cmp(pub.X()))
	require.Zero(t, key.Y.Cmp(pub.Y()))

	hash := sha256.Sum256([]byte("interop"))
	r, s, err := ecdsa.Sign(rand.Reader, key, hash[:])
	require.NoError(t, err)
	require.True(t, ecdsa.Verify(&key.PublicKey, hash[:], r, s))
}

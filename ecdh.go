// Copyright (c) 2015 The btcsuite developers
// Copyright (c) 2015-2023 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
)

// GenerateSharedSecret generates a shared secret based on a private key and a
// public key using Diffie-Hellman key exchange (ECDH) (RFC 5903).  The result
// is the SEC1 encoding of privkey*pubkey, compressed or uncompressed as
// requested, so both parties obtain identical bytes.
//
// The multiplication uses the constant-time oriented path since the private
// key is secret.  It is recommended to securely hash the result before using
// it as a cryptographic key; see DeriveSharedKey.
func GenerateSharedSecret(curve *Curve, privkey *PrivateKey, pubkey *PublicKey, compressed bool) ([]byte, error) {
	point, err := curve.ScalarMult(privkey.key, pubkey.AsPoint())
	if err != nil {
		return nil, err
	}
	shared, err := PublicKeyFromPoint(point)
	if err != nil {
		return nil, err
	}
	return shared.Serialize(compressed), nil
}

// ECDH generates a compressed shared secret and is an alias to
// GenerateSharedSecret, however by being part of the private key it is closer
// to go's own ecdh api.
func (privkey *PrivateKey) ECDH(curve *Curve, remote *PublicKey) ([]byte, error) {
	return GenerateSharedSecret(curve, privkey, remote, true)
}

// DeriveSharedKey derives size bytes of key material from the ECDH shared
// point using HKDF-SHA256 over its 32-byte x coordinate.  The info parameter
// binds the key to an application context.
func DeriveSharedKey(curve *Curve, privkey *PrivateKey, pubkey *PublicKey, info []byte, size int) ([]byte, error) {
	secret, err := GenerateSharedSecret(curve, privkey, pubkey, true)
	if err != nil {
		return nil, err
	}
	kdf := hkdf.New(sha256.New, secret[1:], nil, info)
	key := make([]byte, size)
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, err
	}
	return key, nil
}

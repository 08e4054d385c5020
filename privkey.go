// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"crypto/ecdsa"
	csprng "crypto/rand"
	"fmt"
	"io"
	"math/big"
)

const (
	// PrivKeyBytesLen defines the length in bytes of a serialized private key.
	PrivKeyBytesLen = 32

	// minKeyHashLen and maxKeyHashLen bound the input of PrivKeyFromHash.  At
	// least 40 bytes keeps the modulo bias below 2^-64.
	minKeyHashLen = 40
	maxKeyHashLen = 1024

	// randKeyLen is the number of random bytes reduced into a new key.
	randKeyLen = 48
)

// orderMinusOne is N-1, the number of valid private keys.
var orderMinusOne = new(big.Int).Sub(groupOrder, bigOne)

// PrivateKey provides facilities for working with secp256k1 private keys within
// this package and includes functionality such as serializing and parsing them
// as well as computing their associated public key.
//
// Keys created through the constructors of this package are always in the
// range [1, N-1].
type PrivateKey struct {
	key ModNScalar
}

// NewPrivateKey instantiates a new private key from a scalar.  Zero is not a
// valid private key and results in ErrInvalidScalar.
func NewPrivateKey(key ModNScalar) (*PrivateKey, error) {
	if key.IsZero() {
		return nil, makeError(ErrInvalidScalar, "private key must be in [1, N-1]")
	}
	return &PrivateKey{key: key}, nil
}

// PrivKeyFromBytes returns a private key based on the provided byte slice which
// must be a 32-byte big-endian integer in the range [1, N-1], where N is the
// order of the curve.  A wrong length results in ErrFormat and an out of range
// value in ErrInvalidScalar.
func PrivKeyFromBytes(privKeyBytes []byte) (*PrivateKey, error) {
	if len(privKeyBytes) != PrivKeyBytesLen {
		str := fmt.Sprintf("malformed private key: invalid length: %d",
			len(privKeyBytes))
		return nil, makeError(ErrFormat, str)
	}
	var b32 [PrivKeyBytesLen]byte
	copy(b32[:], privKeyBytes)
	key, overflow := ModNScalarFromBytes(&b32)
	zeroArray32(&b32)
	if overflow || key.IsZero() {
		return nil, makeError(ErrInvalidScalar, "private key must be in [1, N-1]")
	}
	return &PrivateKey{key: key}, nil
}

// ParsePrivKeyHex parses a hex encoded 32-byte private key.
func ParsePrivKeyHex(s string) (*PrivateKey, error) {
	b, err := ParseHex(s)
	if err != nil {
		return nil, err
	}
	return PrivKeyFromBytes(b)
}

// IsValidPrivateKey returns whether or not the bytes are a 32-byte integer in
// [1, N-1].
func IsValidPrivateKey(privKeyBytes []byte) bool {
	_, err := PrivKeyFromBytes(privKeyBytes)
	return err == nil
}

// PrivKeyFromHash maps between 40 and 1024 bytes of uniformly distributed
// input, such as the output of a KDF, to a private key computed as
// (x mod (N-1)) + 1.  Inputs outside of that length range result in
// ErrFormat.
func PrivKeyFromHash(hash []byte) (*PrivateKey, error) {
	if len(hash) < minKeyHashLen || len(hash) > maxKeyHashLen {
		str := fmt.Sprintf("key material must be %d to %d bytes, got %d",
			minKeyHashLen, maxKeyHashLen, len(hash))
		return nil, makeError(ErrFormat, str)
	}
	num := new(big.Int).SetBytes(hash)
	num.Mod(num, orderMinusOne)
	num.Add(num, bigOne)
	return &PrivateKey{key: ModNScalar{n: num}}, nil
}

// GeneratePrivateKeyFromRand generates a private key by reading 48 bytes from
// the provided reader and reducing them with PrivKeyFromHash.  The reader must
// be a cryptographically secure source of randomness.
func GeneratePrivateKeyFromRand(rand io.Reader) (*PrivateKey, error) {
	var buf [randKeyLen]byte
	if _, err := io.ReadFull(rand, buf[:]); err != nil {
		return nil, err
	}
	key, err := PrivKeyFromHash(buf[:])
	for i := range buf {
		buf[i] = 0
	}
	return key, err
}

// GeneratePrivateKey generates and returns a new cryptographically secure
// private key that is suitable for use with secp256k1.
func GeneratePrivateKey() (*PrivateKey, error) {
	return GeneratePrivateKeyFromRand(csprng.Reader)
}

// zeroArray32 zeroes the provided 32-byte buffer.
func zeroArray32(b *[32]byte) {
	*b = [32]byte{}
}

// Key returns the scalar of the private key.
func (p *PrivateKey) Key() ModNScalar {
	return p.key
}

// PubKey computes and returns the public key corresponding to this private key
// using the constant-time oriented base point multiplication.
func (p *PrivateKey) PubKey(curve *Curve) (*PublicKey, error) {
	point, err := curve.ScalarBaseMult(p.key)
	if err != nil {
		return nil, err
	}
	return PublicKeyFromPoint(point)
}

// Serialize returns the private key as a 256-bit big-endian binary-encoded
// number, padded to a length of 32 bytes.
func (p *PrivateKey) Serialize() []byte {
	b := p.key.Bytes()
	return b[:]
}

// ToECDSA returns the private key as a *ecdsa.PrivateKey bound to the
// crypto/elliptic adaptor of the given context.
func (p *PrivateKey) ToECDSA(curve *Curve) (*ecdsa.PrivateKey, error) {
	pub, err := p.PubKey(curve)
	if err != nil {
		return nil, err
	}
	return &ecdsa.PrivateKey{
		PublicKey: *pub.ToECDSA(curve),
		D:         p.key.Big(),
	}, nil
}

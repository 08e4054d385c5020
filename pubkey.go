// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"
)

const (
	// PubKeyBytesLenCompressed is the number of bytes of a serialized
	// compressed public key.
	PubKeyBytesLenCompressed = 33

	// PubKeyBytesLenUncompressed is the number of bytes of a serialized
	// uncompressed public key.
	PubKeyBytesLenUncompressed = 65

	// PubKeyFormatCompressedEven is the identifier prefix byte for a public key
	// whose Y coordinate is even when serialized in the compressed format per
	// section 2.3.4 of [SEC1](https://secg.org/sec1-v2.pdf#subsubsection.2.3.4).
	PubKeyFormatCompressedEven byte = 0x02

	// PubKeyFormatCompressedOdd is the identifier prefix byte for a public key
	// whose Y coordinate is odd when serialized in the compressed format per
	// section 2.3.4 of [SEC1](https://secg.org/sec1-v2.pdf#subsubsection.2.3.4).
	PubKeyFormatCompressedOdd byte = 0x03

	// PubKeyFormatUncompressed is the identifier prefix byte for a public key
	// when serialized according in the uncompressed format per section 2.3.3
	// of [SEC1](https://secg.org/sec1-v2.pdf#subsubsection.2.3.3).
	PubKeyFormatUncompressed byte = 0x04
)

// PublicKey provides facilities for efficiently working with secp256k1 public
// keys within this package and includes functions to serialize in both
// uncompressed and compressed SEC (Standards for Efficient Cryptography)
// formats.
//
// A PublicKey is always a finite point on the curve.
type PublicKey struct {
	x FieldVal
	y FieldVal
}

// NewPublicKey instantiates a new public key with the given affine
// coordinates.  Coordinates that do not describe a point on the curve result
// in ErrInvalidPoint.
func NewPublicKey(x, y FieldVal) (*PublicKey, error) {
	if err := NewAffinePoint(x, y).Validate(); err != nil {
		return nil, err
	}
	if x.IsZero() && y.IsZero() {
		return nil, makeError(ErrInvalidPoint, "public key is the point at infinity")
	}
	return &PublicKey{x: x, y: y}, nil
}

// PublicKeyFromPoint converts the point to a public key.  The point must be a
// valid finite point; the point at infinity has no encoding and results in
// ErrInvalidPoint.
func PublicKeyFromPoint(p Point) (*PublicKey, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.IsIdentity() {
		return nil, makeError(ErrInvalidPoint, "public key is the point at infinity")
	}
	x, y, err := p.ToAffine()
	if err != nil {
		return nil, makeError(ErrInvalidPoint, err.Error())
	}
	return &PublicKey{x: x, y: y}, nil
}

// ParsePubKey parses a secp256k1 public key encoded according to the format
// specified by ANSI X9.62-1998, which means it is also compatible with the
// SEC (Standards for Efficient Cryptography) specification which is a subset
// of the former.  In other words, it supports the uncompressed and compressed
// formats as follows:
//
// Compressed:
//
//	<format byte = 0x02/0x03><32-byte X coordinate>
//
// Uncompressed:
//
//	<format byte = 0x04><32-byte X coordinate><32-byte Y coordinate>
//
// Input with any other length results in ErrFormat.  Every other failure,
// including an unknown format byte, a coordinate that overflows the field
// prime, or a point that is not on the curve, results in ErrInvalidPoint.
func ParsePubKey(serialized []byte) (*PublicKey, error) {
	var x, y FieldVal
	switch len(serialized) {
	case PubKeyBytesLenUncompressed:
		if serialized[0] != PubKeyFormatUncompressed {
			str := fmt.Sprintf("invalid public key: unsupported format: %x",
				serialized[0])
			return nil, makeError(ErrInvalidPoint, str)
		}
		var err error
		if x, err = parseCoordinate(serialized[1:33], "x"); err != nil {
			return nil, err
		}
		if y, err = parseCoordinate(serialized[33:], "y"); err != nil {
			return nil, err
		}
		if !isOnCurve(x, y) {
			str := fmt.Sprintf("invalid public key: [%v,%v] not on secp256k1 "+
				"curve", x, y)
			return nil, makeError(ErrInvalidPoint, str)
		}

	case PubKeyBytesLenCompressed:
		format := serialized[0]
		if format != PubKeyFormatCompressedEven &&
			format != PubKeyFormatCompressedOdd {

			str := fmt.Sprintf("invalid public key: unsupported format: %x",
				format)
			return nil, makeError(ErrInvalidPoint, str)
		}
		var err error
		if x, err = parseCoordinate(serialized[1:33], "x"); err != nil {
			return nil, err
		}
		wantOddY := format == PubKeyFormatCompressedOdd
		if y, err = DecompressY(x, wantOddY); err != nil {
			return nil, err
		}

	default:
		str := fmt.Sprintf("malformed public key: invalid length: %d",
			len(serialized))
		return nil, makeError(ErrFormat, str)
	}

	return NewPublicKey(x, y)
}

// parseCoordinate decodes a 32-byte big-endian field element and rejects
// values that are not less than the field prime.
func parseCoordinate(b []byte, name string) (FieldVal, error) {
	var arr [32]byte
	copy(arr[:], b)
	v, overflow := FieldValFromBytes(&arr)
	if overflow {
		str := fmt.Sprintf("invalid public key: %s >= field prime", name)
		return FieldVal{}, makeError(ErrInvalidPoint, str)
	}
	return v, nil
}

// ParsePubKeyHex parses a hex encoded public key.
func ParsePubKeyHex(s string) (*PublicKey, error) {
	b, err := ParseHex(s)
	if err != nil {
		return nil, err
	}
	return ParsePubKey(b)
}

// SerializeUncompressed serializes a public key in the 65-byte uncompressed
// format.
func (p PublicKey) SerializeUncompressed() []byte {
	// 0x04 || 32-byte x coordinate || 32-byte y coordinate
	x, y := p.x.Bytes(), p.y.Bytes()
	b := make([]byte, 0, PubKeyBytesLenUncompressed)
	b = append(b, PubKeyFormatUncompressed)
	b = append(b, x[:]...)
	return append(b, y[:]...)
}

// SerializeCompressed serializes a public key in the 33-byte compressed
// format.
func (p PublicKey) SerializeCompressed() []byte {
	// Choose the format byte depending on the oddness of the Y coordinate.
	format := PubKeyFormatCompressedEven
	if p.y.IsOdd() {
		format = PubKeyFormatCompressedOdd
	}

	// 0x02 or 0x03 || 32-byte x coordinate
	x := p.x.Bytes()
	b := make([]byte, 0, PubKeyBytesLenCompressed)
	b = append(b, format)
	return append(b, x[:]...)
}

// Serialize serializes the public key in the requested format.
func (p PublicKey) Serialize(compressed bool) []byte {
	if compressed {
		return p.SerializeCompressed()
	}
	return p.SerializeUncompressed()
}

// IsEqual compares this public key instance to the one passed, returning true
// if both public keys are equivalent.
func (p *PublicKey) IsEqual(otherPubKey *PublicKey) bool {
	return p.x.Equals(otherPubKey.x) && p.y.Equals(otherPubKey.y)
}

// AsPoint returns the public key as a projective point with Z = 1.
func (p *PublicKey) AsPoint() Point {
	return Point{x: p.x, y: p.y, z: fieldOne}
}

// X returns the x coordinate of the public key.
func (p *PublicKey) X() *big.Int {
	return p.x.Big()
}

// Y returns the y coordinate of the public key.
func (p *PublicKey) Y() *big.Int {
	return p.y.Big()
}

// ToECDSA returns the public key as a *ecdsa.PublicKey bound to the
// crypto/elliptic adaptor of the given context.
func (p *PublicKey) ToECDSA(curve *Curve) *ecdsa.PublicKey {
	return &ecdsa.PublicKey{
		Curve: curve.Elliptic(),
		X:     p.X(),
		Y:     p.Y(),
	}
}

// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecdsa

import (
	"fmt"

	"github.com/ModChain/secp256k1/v2"
	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

// References:
//   [ISO/IEC 8825-1]: Information technology - ASN.1 encoding rules:
//     Specification of Basic Encoding Rules (BER), Canonical Encoding Rules
//     (CER) and Distinguished Encoding Rules (DER)
//
//   [SEC1]: Elliptic Curve Cryptography (May 31, 2009, Version 2.0)
//     https://www.secg.org/sec1-v2.pdf

const (
	// CompactSigSize is the size of a signature serialized as the 32-byte
	// big-endian R followed by the 32-byte big-endian S.
	CompactSigSize = 64

	// asn1SequenceID is the ASN.1 identifier for a sequence and is used when
	// parsing signatures encoded with the Distinguished Encoding Rules (DER)
	// format per section 10 of [ISO/IEC 8825-1].
	asn1SequenceID = 0x30

	// asn1IntegerID is the ASN.1 identifier for an integer and is used when
	// parsing signatures encoded with the Distinguished Encoding Rules (DER)
	// format per section 10 of [ISO/IEC 8825-1].
	asn1IntegerID = 0x02

	// pubKeyRecoveryCodeOddnessBit specifies the bit that indicates the oddess
	// of the Y coordinate of the random point calculated when creating a
	// signature.
	pubKeyRecoveryCodeOddnessBit = 1 << 0

	// pubKeyRecoveryCodeOverflowBit specifies the bit that indicates the X
	// coordinate of the random point calculated when creating a signature was
	// >= N, where N is the order of the group.
	pubKeyRecoveryCodeOverflowBit = 1 << 1

	// maxRecoveryCode is the largest valid public key recovery code.
	maxRecoveryCode = 3
)

// Signature is a type representing an ECDSA signature along with an optional
// public key recovery code.  Signatures are immutable.
type Signature struct {
	r           secp256k1.ModNScalar
	s           secp256k1.ModNScalar
	recovery    byte
	hasRecovery bool
}

// NewSignature instantiates a new signature given some R and S values.  The
// values are not range checked; Verify rejects signatures with a zero
// component and the parse functions reject them up front.
func NewSignature(r, s secp256k1.ModNScalar) *Signature {
	return &Signature{r: r, s: s}
}

// R returns the r value of the signature.
func (sig *Signature) R() secp256k1.ModNScalar {
	return sig.r
}

// S returns the s value of the signature.
func (sig *Signature) S() secp256k1.ModNScalar {
	return sig.s
}

// RecoveryID returns the public key recovery code of the signature and whether
// the signature carries one.
//
// Bit 0 of the code is the oddness of the Y coordinate of the random point
// used when signing and bit 1 is set when its X coordinate was >= N.
func (sig *Signature) RecoveryID() (byte, bool) {
	return sig.recovery, sig.hasRecovery
}

// WithRecoveryID returns a copy of the signature carrying the given public key
// recovery code, which must be in [0, 3].
func (sig *Signature) WithRecoveryID(code byte) (*Signature, error) {
	if code > maxRecoveryCode {
		str := fmt.Sprintf("invalid public key recovery code %d", code)
		return nil, signatureError(ErrSigInvalidRecoveryCode, str)
	}
	return &Signature{r: sig.r, s: sig.s, recovery: code, hasRecovery: true}, nil
}

// HasHighS returns whether S is greater than half the group order.
func (sig *Signature) HasHighS() bool {
	return sig.s.IsOverHalfOrder()
}

// NormalizeS returns the signature with S replaced by N-S when S is greater
// than half the group order.  Both S and its negation are valid, so this
// forces a consistent choice to reduce signature malleability.
//
// Negating S corresponds to the random point that would have been generated
// by -k, which has the opposite oddness since N is prime, so the oddness bit
// of the recovery code is flipped as well.
func (sig *Signature) NormalizeS() *Signature {
	if !sig.HasHighS() {
		return sig
	}
	normalized := *sig
	normalized.s = sig.s.Negate()
	if normalized.hasRecovery {
		normalized.recovery ^= pubKeyRecoveryCodeOddnessBit
	}
	return &normalized
}

// IsEqual compares this Signature instance to the one passed, returning true if
// both Signatures are equivalent.  A signature is equivalent to another, if
// they both have the same scalar value for R and S.  The recovery code is not
// compared.
func (sig *Signature) IsEqual(otherSig *Signature) bool {
	return sig.r.Equals(otherSig.r) && sig.s.Equals(otherSig.s)
}

// String returns the compact encoding of the signature as hex.
func (sig *Signature) String() string {
	return fmt.Sprintf("%x", sig.SerializeCompact())
}

// SerializeCompact returns the signature as the 32-byte big-endian R followed
// by the 32-byte big-endian S.  The recovery code is not included.
func (sig *Signature) SerializeCompact() []byte {
	rBytes, sBytes := sig.r.Bytes(), sig.s.Bytes()
	b := make([]byte, 0, CompactSigSize)
	b = append(b, rBytes[:]...)
	return append(b, sBytes[:]...)
}

// ParseCompact parses a 64-byte R || S signature.  Both values must be in
// [1, N-1].  The returned signature has no recovery code; see WithRecoveryID.
func ParseCompact(b []byte) (*Signature, error) {
	if len(b) != CompactSigSize {
		str := fmt.Sprintf("malformed signature: wrong size: %d != %d", len(b),
			CompactSigSize)
		return nil, signatureError(ErrSigInvalidLen, str)
	}
	r, err := parseComponent(b[:32], "R", ErrSigRTooBig, ErrSigRIsZero)
	if err != nil {
		return nil, err
	}
	s, err := parseComponent(b[32:], "S", ErrSigSTooBig, ErrSigSIsZero)
	if err != nil {
		return nil, err
	}
	return NewSignature(r, s), nil
}

// parseComponent decodes a big-endian signature component of at most 32 bytes
// and ensures it is in [1, N-1].
func parseComponent(b []byte, name string, tooBig, isZero ErrorKind) (secp256k1.ModNScalar, error) {
	// Strip leading zeroes.
	for len(b) > 0 && b[0] == 0x00 {
		b = b[1:]
	}
	if len(b) > 32 {
		str := fmt.Sprintf("invalid signature: %s is larger than 256 bits", name)
		return secp256k1.ModNScalar{}, signatureError(tooBig, str)
	}
	var buf [32]byte
	copy(buf[32-len(b):], b)
	v, overflow := secp256k1.ModNScalarFromBytes(&buf)
	if overflow {
		str := fmt.Sprintf("invalid signature: %s >= group order", name)
		return secp256k1.ModNScalar{}, signatureError(tooBig, str)
	}
	if v.IsZero() {
		str := fmt.Sprintf("invalid signature: %s is 0", name)
		return secp256k1.ModNScalar{}, signatureError(isZero, str)
	}
	return v, nil
}

// Serialize returns the ECDSA signature in the Distinguished Encoding Rules
// (DER) format per section 10 of [ISO/IEC 8825-1]:
//
//	0x30 <total length> 0x02 <length of R> <R> 0x02 <length of S> <S>
//
// R and S are encoded with the minimum possible number of bytes.  S is
// serialized as is, so callers that need low S should call NormalizeS first.
func (sig *Signature) Serialize() []byte {
	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1BigInt(sig.r.Big())
		b.AddASN1BigInt(sig.s.Big())
	})
	return b.BytesOrPanic()
}

// ParseDERSignature parses a signature in the Distinguished Encoding Rules
// (DER) format per section 10 of [ISO/IEC 8825-1] and enforces the following
// additional restrictions specific to secp256k1:
//
//   - The R and S values must be in the valid range for secp256k1 scalars:
//   - Negative values are rejected
//   - Zero is rejected
//   - Values greater than or equal to the secp256k1 group order are rejected
func ParseDERSignature(sig []byte) (*Signature, error) {
	// Since this is specific to secp256k1 signatures, all lengths occupy a
	// single byte.
	const (
		// minSigLen is the minimum length of a DER encoded signature and is
		// when both R and S are 1 byte each.
		//
		// 0x30 + <1-byte> + 0x02 + 0x01 + <byte> + 0x2 + 0x01 + <byte>
		minSigLen = 8

		// maxSigLen is the maximum length of a DER encoded signature and is
		// when both R and S are 33 bytes each.  It is 33 bytes because a
		// 256-bit integer requires 32 bytes and an additional leading null byte
		// might be required if the high bit is set in the value.
		//
		// 0x30 + <1-byte> + 0x02 + 0x21 + <33 bytes> + 0x2 + 0x21 + <33 bytes>
		maxSigLen = 72

		sequenceOffset = 0
		dataLenOffset  = 1
		rTypeOffset    = 2
		rLenOffset     = 3
		rOffset        = 4
	)

	// The signature must adhere to the minimum and maximum allowed length.
	sigLen := len(sig)
	if sigLen < minSigLen {
		str := fmt.Sprintf("malformed signature: too short: %d < %d", sigLen,
			minSigLen)
		return nil, signatureError(ErrSigTooShort, str)
	}
	if sigLen > maxSigLen {
		str := fmt.Sprintf("malformed signature: too long: %d > %d", sigLen,
			maxSigLen)
		return nil, signatureError(ErrSigTooLong, str)
	}

	// The signature must start with the ASN.1 sequence identifier.
	if sig[sequenceOffset] != asn1SequenceID {
		str := fmt.Sprintf("malformed signature: format has wrong type: %#x",
			sig[sequenceOffset])
		return nil, signatureError(ErrSigInvalidSeqID, str)
	}

	// The signature must indicate the correct amount of data for all elements
	// related to R and S.
	if int(sig[dataLenOffset]) != sigLen-2 {
		str := fmt.Sprintf("malformed signature: bad length: %d != %d",
			sig[dataLenOffset], sigLen-2)
		return nil, signatureError(ErrSigInvalidDataLen, str)
	}

	// Calculate the offsets of the elements related to S and ensure S is inside
	// the signature.
	rLen := int(sig[rLenOffset])
	sTypeOffset := rOffset + rLen
	sLenOffset := sTypeOffset + 1
	if sTypeOffset >= sigLen {
		str := "malformed signature: S type indicator missing"
		return nil, signatureError(ErrSigMissingSTypeID, str)
	}
	if sLenOffset >= sigLen {
		str := "malformed signature: S length missing"
		return nil, signatureError(ErrSigMissingSLen, str)
	}

	// The lengths of R and S must match the overall length of the signature.
	sOffset := sLenOffset + 1
	sLen := int(sig[sLenOffset])
	if sOffset+sLen != sigLen {
		str := "malformed signature: invalid S length"
		return nil, signatureError(ErrSigInvalidSLen, str)
	}

	// R elements must be ASN.1 integers.
	if sig[rTypeOffset] != asn1IntegerID {
		str := fmt.Sprintf("malformed signature: R integer marker: %#x != %#x",
			sig[rTypeOffset], asn1IntegerID)
		return nil, signatureError(ErrSigInvalidRIntID, str)
	}

	// Zero-length integers are not allowed for R.
	if rLen == 0 {
		str := "malformed signature: R length is zero"
		return nil, signatureError(ErrSigZeroRLen, str)
	}

	// R must not be negative.
	if sig[rOffset]&0x80 != 0 {
		str := "malformed signature: R is negative"
		return nil, signatureError(ErrSigNegativeR, str)
	}

	// Null bytes at the start of R are not allowed, unless R would otherwise be
	// interpreted as a negative number.
	if rLen > 1 && sig[rOffset] == 0x00 && sig[rOffset+1]&0x80 == 0 {
		str := "malformed signature: R value has too much padding"
		return nil, signatureError(ErrSigTooMuchRPadding, str)
	}

	// S elements must be ASN.1 integers.
	if sig[sTypeOffset] != asn1IntegerID {
		str := fmt.Sprintf("malformed signature: S integer marker: %#x != %#x",
			sig[sTypeOffset], asn1IntegerID)
		return nil, signatureError(ErrSigInvalidSIntID, str)
	}

	// Zero-length integers are not allowed for S.
	if sLen == 0 {
		str := "malformed signature: S length is zero"
		return nil, signatureError(ErrSigZeroSLen, str)
	}

	// S must not be negative.
	if sig[sOffset]&0x80 != 0 {
		str := "malformed signature: S is negative"
		return nil, signatureError(ErrSigNegativeS, str)
	}

	// Null bytes at the start of S are not allowed, unless S would otherwise be
	// interpreted as a negative number.
	if sLen > 1 && sig[sOffset] == 0x00 && sig[sOffset+1]&0x80 == 0 {
		str := "malformed signature: S value has too much padding"
		return nil, signatureError(ErrSigTooMuchSPadding, str)
	}

	// The signature is validly encoded per DER at this point.  R and S must
	// also be in [1, N-1].
	r, err := parseComponent(sig[rOffset:rOffset+rLen], "R", ErrSigRTooBig,
		ErrSigRIsZero)
	if err != nil {
		return nil, err
	}
	s, err := parseComponent(sig[sOffset:sOffset+sLen], "S", ErrSigSTooBig,
		ErrSigSIsZero)
	if err != nil {
		return nil, err
	}
	return NewSignature(r, s), nil
}

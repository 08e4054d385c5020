// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecdsa

import (
	"fmt"

	"github.com/ModChain/secp256k1/v2"
)

const (
	// compactSigSize is the size of a compact signature with a recovery
	// code.  It consists of a compact signature recovery code byte followed by
	// the R and S components serialized as 32-byte big-endian values.
	// 1+32*2 = 65.
	compactSigSize = 65

	// compactSigMagicOffset is a value used when creating the compact signature
	// recovery code inherited from Bitcoin and has no meaning, but has been
	// retained for compatibility.  For historical purposes, it was originally
	// picked to avoid a binary representation that would allow compact
	// signatures to be mistaken for other components.
	compactSigMagicOffset = 27

	// compactSigCompPubKey is a value used when creating the compact signature
	// recovery code to indicate the original public key was compressed.
	compactSigCompPubKey = 4
)

// SignCompact produces a compact signature of the data in hash with the given
// private key on the secp256k1 curve.  The isCompressedKey parameter specifies
// if the given signature should reference a compressed public key or not.
//
// Compact signature format:
// <1-byte compact sig recovery code><32-byte R><32-byte S>
//
// The compact sig recovery code is the value 27 + public key recovery code + 4
// if the compact signature was created with a compressed public key.
func SignCompact(curve *secp256k1.Curve, key *secp256k1.PrivateKey, hash []byte, isCompressedKey bool) ([]byte, error) {
	sig, err := Sign(curve, key, hash, nil)
	if err != nil {
		return nil, err
	}
	code, _ := sig.RecoveryID()
	compactSigRecoveryCode := compactSigMagicOffset + code
	if isCompressedKey {
		compactSigRecoveryCode += compactSigCompPubKey
	}

	// Output <compactSigRecoveryCode><32-byte R><32-byte S>.
	b := make([]byte, 0, compactSigSize)
	b = append(b, compactSigRecoveryCode)
	return append(b, sig.SerializeCompact()...), nil
}

// RecoverCompact attempts to recover the secp256k1 public key from the provided
// compact signature and message hash.  If the signature matches then the
// recovered public key will be returned as well as a boolean indicating
// whether or not the original key was compressed.
func RecoverCompact(curve *secp256k1.Curve, signature, hash []byte) (*secp256k1.PublicKey, bool, error) {
	if len(signature) != compactSigSize {
		str := fmt.Sprintf("malformed signature: wrong size: %d != %d",
			len(signature), compactSigSize)
		return nil, false, signatureError(ErrSigInvalidLen, str)
	}

	// Parse and validate the compact signature recovery code.
	const (
		minValidCode = compactSigMagicOffset
		maxValidCode = compactSigMagicOffset + compactSigCompPubKey + 3
	)
	sigRecoveryCode := signature[0]
	if sigRecoveryCode < minValidCode || sigRecoveryCode > maxValidCode {
		str := fmt.Sprintf("invalid signature: public key recovery code %d "+
			"is not in the valid range [%d, %d]", sigRecoveryCode, minValidCode,
			maxValidCode)
		return nil, false, signatureError(ErrSigInvalidRecoveryCode, str)
	}
	sigRecoveryCode -= compactSigMagicOffset
	wasCompressed := sigRecoveryCode&compactSigCompPubKey != 0
	pubKeyRecoveryCode := sigRecoveryCode & 3

	sig, err := ParseCompact(signature[1:])
	if err != nil {
		return nil, false, err
	}
	sig, err = sig.WithRecoveryID(pubKeyRecoveryCode)
	if err != nil {
		return nil, false, err
	}
	pubKey, err := RecoverPublicKey(curve, sig, hash)
	if err != nil {
		return nil, false, err
	}
	return pubKey, wasCompressed, nil
}

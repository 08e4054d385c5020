// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package ecdsa provides secp256k1-optimized ECDSA signing, verification and
public key recovery.

Signatures are deterministic per RFC6979 by default: the nonce is derived from
the private key and the message hash with an HMAC-DRBG, so signing the same
hash twice with the same key yields the same signature.  Extra entropy may be
mixed in through SignOptions, and the keyed hash behind the DRBG may be
replaced, including by an asynchronous backend through SignContext.

Signatures are normalized to low S unless SignOptions.HighS is set, and
verification rejects high S unless VerifyOptions.AllowHighS is set.

Every signature produced by Sign carries a public key recovery code that
allows RecoverPublicKey to reconstruct the signing key from the signature and
the hash alone.  SignCompact and RecoverCompact use the 65-byte format
inherited from Bitcoin which stores the code in the first byte.

Signatures serialize to the 64-byte R || S form (SerializeCompact, ParseCompact)
and to DER (Serialize, ParseDERSignature).

# Errors

Errors returned by this package are of type Error and wrap an ErrorKind.
Besides matching its own kind with errors.Is, every kind also matches the
broader secp256k1 error it belongs to, for example secp256k1.ErrFormat for a
malformed encoding.
*/
package ecdsa

// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package secp256k1 implements secp256k1 elliptic curve operations in pure Go.

This package provides field and group arithmetic over the secp256k1 curve as
well as data structures and functions for working with public and private
secp256k1 keys.  See https://www.secg.org/sec2-v2.pdf for details on the
standard.

In addition, the ecdsa sub package produces, verifies, parses, serializes and
recovers public keys from ECDSA signatures.

An overview of the features provided by this package are as follows:

  - FieldVal type for working modulo the secp256k1 field prime
  - ModNScalar type for working modulo the secp256k1 group order, with a
    constant-time oriented inverse for secret values
  - Elliptic curve operations in homogeneous projective coordinates using the
    complete addition formulas of Renes, Costello and Batina
  - A Curve context holding the precomputed base point table, created once
    with NewCurve and shared by all goroutines
  - Scalar multiplication with the base point using signed 8-bit windows
  - Scalar multiplication with an arbitrary point, in constant-time oriented
    and variable time flavors
  - Point decompression from a given x coordinate
  - Private key generation, serialization, and parsing
  - Public key generation, serialization and parsing per ANSI X9.62-1998
  - Nonce generation via the RFC6979 HMAC-DRBG over a pluggable keyed hash,
    with an adaptor for asynchronous hardware or platform backends
  - Elliptic curve Diffie-Hellman shared secrets and HKDF key derivation

# Multiplication paths

Operations that involve a secret scalar (deriving a public key, signing,
ECDH) use ScalarBaseMult or ScalarMult.  They perform the same number of point
additions for every scalar by adding into a discarded accumulator whenever a
digit or bit is zero.  ScalarMultNonConst and DoubleScalarMultNonConst skip
that work and must only be used with public scalars such as during signature
verification and public key recovery.

It also provides an implementation of the Go standard library crypto/elliptic
Curve interface via the Curve.Elliptic method so that it may be used with other
packages in the standard library such as crypto/x509 and crypto/ecdsa.
However, in the case of ECDSA, it is highly recommended to use the ecdsa sub
package of this package instead since it enforces the secp256k1 specific
rules.

Errors returned by this package can be inspected with errors.Is against the
ErrorKind constants, for example ErrInvalidScalar or ErrInvalidPoint.
*/
package secp256k1

// Copyright (c) 2020-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

// ErrorKind identifies a kind of error.  It has full support for errors.Is and
// errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrParse is returned when hex or byte input is malformed, such as a hex
	// string with an odd length or a non-hex character.
	ErrParse = ErrorKind("ErrParse")

	// ErrInvalidScalar is returned when a scalar is outside of the range
	// required by an operation, typically [1, N-1].
	ErrInvalidScalar = ErrorKind("ErrInvalidScalar")

	// ErrInvalidPoint is returned when a point is not on the curve, has no
	// valid decompression, or is the point at infinity where a finite point is
	// required.
	ErrInvalidPoint = ErrorKind("ErrInvalidPoint")

	// ErrArithmetic is returned when an operation has no defined result, such
	// as inverting zero or converting a malformed projective point.
	ErrArithmetic = ErrorKind("ErrArithmetic")

	// ErrNonceExhausted is returned when the deterministic nonce generator
	// fails to produce an acceptable nonce within the attempt limit.
	ErrNonceExhausted = ErrorKind("ErrNonceExhausted")

	// ErrFormat is returned when serialized input does not have the length or
	// layout required by its encoding.
	ErrFormat = ErrorKind("ErrFormat")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to secp256k1 arithmetic, keys or
// encodings.  It has full support for errors.Is and errors.As, so the caller
// can ascertain the specific reason for the error by checking the underlying
// error.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// makeError creates an Error given a set of arguments.
func makeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}

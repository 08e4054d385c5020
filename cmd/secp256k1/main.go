// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command secp256k1 generates keys, signs, verifies and recovers ECDSA
// signatures, and derives ECDH shared secrets on the secp256k1 curve.
package main

import (
	"os"
)

func main() {
	// On failure Cobra prints the error string, so we only need to exit with
	// a non-0 status.
	if newRootCmd().Execute() != nil {
		os.Exit(1)
	}
}

// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"encoding/hex"
	"errors"
	"fmt"
)

// ParseHex decodes a hex string.  Odd lengths and non-hex characters result
// in ErrParse.
func ParseHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err == nil {
		return b, nil
	}
	var invalid hex.InvalidByteError
	switch {
	case errors.Is(err, hex.ErrLength):
		str := fmt.Sprintf("hex string has odd length %d", len(s))
		return nil, makeError(ErrParse, str)
	case errors.As(err, &invalid):
		str := fmt.Sprintf("hex string contains invalid character %q", byte(invalid))
		return nil, makeError(ErrParse, str)
	}
	return nil, makeError(ErrParse, err.Error())
}

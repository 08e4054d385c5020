// Package digest maps digest names to the hash functions used to turn
// messages into the hashes that are signed.
package digest

import (
	"crypto/sha256"
	"crypto/sha512"
	"sort"
	"strings"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/pkg/errors"
	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"
)

// Func hashes a message.
type Func func(msg []byte) []byte

var registry = map[string]Func{
	"sha256": func(msg []byte) []byte {
		h := sha256.Sum256(msg)
		return h[:]
	},
	// Double SHA-256 as used for Bitcoin message hashes.
	"sha256d": func(msg []byte) []byte {
		h := sha256.Sum256(msg)
		h = sha256.Sum256(h[:])
		return h[:]
	},
	"ripemd160": func(msg []byte) []byte {
		h := ripemd160.New()
		h.Write(msg)
		return h.Sum(nil)
	},
	// RIPEMD-160 over SHA-256.
	"hash160": func(msg []byte) []byte {
		a := sha256.Sum256(msg)
		h := ripemd160.New()
		h.Write(a[:])
		return h.Sum(nil)
	},
	"sha512": func(msg []byte) []byte {
		h := sha512.Sum512(msg)
		return h[:]
	},
	"sha3-256": func(msg []byte) []byte {
		h := sha3.Sum256(msg)
		return h[:]
	},
	"keccak256": func(msg []byte) []byte {
		h := sha3.NewLegacyKeccak256()
		h.Write(msg)
		return h.Sum(nil)
	},
	// BLAKE-256 with 14 rounds as used by Decred.
	"blake256": chainhash.HashB,
}

// Lookup returns the digest registered under name.  Names are case
// insensitive.
func Lookup(name string) (Func, error) {
	f, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, errors.Errorf("unknown digest %q, expected one of %s",
			name, strings.Join(Names(), ", "))
	}
	return f, nil
}

// Names returns the sorted names of all digests.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

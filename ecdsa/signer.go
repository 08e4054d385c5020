package ecdsa

import (
	"crypto"
	stdecdsa "crypto/ecdsa"
	"io"

	"github.com/ModChain/secp256k1/v2"
)

// Signer binds a private key to a curve context and implements crypto.Signer.
type Signer struct {
	curve  *secp256k1.Curve
	key    *secp256k1.PrivateKey
	pubKey *secp256k1.PublicKey
}

var _ crypto.Signer = (*Signer)(nil)

// NewSigner returns a crypto.Signer for the key.
func NewSigner(curve *secp256k1.Curve, key *secp256k1.PrivateKey) (*Signer, error) {
	pubKey, err := key.PubKey(curve)
	if err != nil {
		return nil, err
	}
	return &Signer{curve: curve, key: key, pubKey: pubKey}, nil
}

// Public returns the public key as a *crypto/ecdsa.PublicKey.
func (s *Signer) Public() crypto.PublicKey {
	return s.pubKey.ToECDSA(s.curve)
}

// PubKey returns the public key of the signer.
func (s *Signer) PubKey() *secp256k1.PublicKey {
	return s.pubKey
}

// Sign will sign the provided digest, returning the resulting DER signature.
// [SignOptions] can be used to pass options; any other crypto.SignerOpts
// results in the defaults.  The rand argument is ignored since nonces are
// deterministic; use SignOptions.Rand to mix in extra entropy.
func (s *Signer) Sign(rand io.Reader, digest []byte, opts crypto.SignerOpts) ([]byte, error) {
	o, _ := opts.(*SignOptions)
	sig, err := Sign(s.curve, s.key, digest, o)
	if err != nil {
		return nil, err
	}
	return sig.Serialize(), nil // DER
}

// VerifyASN1 reports whether the DER signature is valid for the digest and
// crypto/ecdsa public key, which must be on the secp256k1 curve.  High S
// values are accepted for compatibility with other signers.
func VerifyASN1(curve *secp256k1.Curve, pub *stdecdsa.PublicKey, digest, sig []byte) bool {
	if pub == nil || pub.X == nil || pub.Y == nil {
		return false
	}
	if pub.X.Sign() < 0 || pub.X.Cmp(curveParams.P) >= 0 ||
		pub.Y.Sign() < 0 || pub.Y.Cmp(curveParams.P) >= 0 {

		return false
	}
	pubKey, err := secp256k1.NewPublicKey(secp256k1.NewFieldVal(pub.X),
		secp256k1.NewFieldVal(pub.Y))
	if err != nil {
		return false
	}
	parsed, err := ParseDERSignature(sig)
	if err != nil {
		return false
	}
	return Verify(curve, parsed, digest, pubKey, &VerifyOptions{AllowHighS: true})
}

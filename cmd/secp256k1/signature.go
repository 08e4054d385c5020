// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/ModChain/secp256k1/v2"
	"github.com/ModChain/secp256k1/v2/ecdsa"
	"github.com/ModChain/secp256k1/v2/logger"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// errInvalidSignature is returned by verify so the process exits non-zero.
var errInvalidSignature = errors.New("signature is invalid")

func addMessageFlags(cmd *cobra.Command) {
	cmd.Flags().String("msg", "", "Message hashed with the configured digest")
	cmd.Flags().String("digest", "", "Hex encoded message hash")
}

// parseSignature accepts both the 64-byte compact and the DER encodings.
func parseSignature(cmd *cobra.Command) (*ecdsa.Signature, error) {
	s, _ := cmd.Flags().GetString("sig")
	if s == "" {
		return nil, errors.New("--sig is required")
	}
	b, err := secp256k1.ParseHex(s)
	if err != nil {
		return nil, errors.Wrap(err, "invalid --sig")
	}
	var sig *ecdsa.Signature
	if len(b) == ecdsa.CompactSigSize {
		sig, err = ecdsa.ParseCompact(b)
	} else {
		sig, err = ecdsa.ParseDERSignature(b)
	}
	return sig, errors.Wrap(err, "invalid --sig")
}

func signCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Signs a message hash.",
		Long:  `Signs with a deterministic nonce and prints the compact signature followed by its recovery id`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := a.privateKey(cmd)
			if err != nil {
				return err
			}
			hash, err := a.messageHash(cmd)
			if err != nil {
				return err
			}
			keyedHash, err := a.keyedHash()
			if err != nil {
				return err
			}
			opts := &ecdsa.SignOptions{KeyedHash: keyedHash}
			opts.HighS, _ = cmd.Flags().GetBool("high-s")
			if s, _ := cmd.Flags().GetString("extra-entropy"); s != "" {
				if opts.ExtraEntropy, err = secp256k1.ParseHex(s); err != nil {
					return errors.Wrap(err, "invalid --extra-entropy")
				}
			}

			sig, err := ecdsa.Sign(a.Curve(), key, hash, opts)
			if err != nil {
				return errors.Wrap(err, "signing")
			}
			code, _ := sig.RecoveryID()
			log := logger.Logger()
			log.Debug().Int("hashLen", len(hash)).Uint8("recovery", code).
				Msg("message signed")

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, sig.String())
			fmt.Fprintln(out, code)
			return nil
		},
	}
	cmd.Flags().String("key", "", "Hex encoded 32-byte private key")
	cmd.Flags().String("extra-entropy", "", "Hex encoded extra entropy mixed into the nonce")
	cmd.Flags().Bool("high-s", false, "Do not normalize S to the lower half of the order")
	addMessageFlags(cmd)
	return cmd
}

func verifyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verifies a signature.",
		Long:  `Prints valid or invalid and exits with a non-zero status for an invalid signature`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pubKey, err := a.publicKey(cmd)
			if err != nil {
				return err
			}
			sig, err := parseSignature(cmd)
			if err != nil {
				return err
			}
			hash, err := a.messageHash(cmd)
			if err != nil {
				return err
			}
			opts := &ecdsa.VerifyOptions{}
			opts.AllowHighS, _ = cmd.Flags().GetBool("high-s")

			if !ecdsa.Verify(a.Curve(), sig, hash, pubKey, opts) {
				fmt.Fprintln(cmd.OutOrStdout(), "invalid")
				return errInvalidSignature
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		},
	}
	cmd.Flags().String("pubkey", "", "Hex encoded public key")
	cmd.Flags().String("sig", "", "Hex encoded compact or DER signature")
	cmd.Flags().Bool("high-s", false, "Accept signatures with S in the upper half of the order")
	addMessageFlags(cmd)
	return cmd
}

func recoverCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recover",
		Short: "Recovers the public key from a signature.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sig, err := parseSignature(cmd)
			if err != nil {
				return err
			}
			hash, err := a.messageHash(cmd)
			if err != nil {
				return err
			}
			code, _ := cmd.Flags().GetUint8("recovery")
			if sig, err = sig.WithRecoveryID(code); err != nil {
				return errors.Wrap(err, "invalid --recovery")
			}
			pubKey, err := ecdsa.RecoverPublicKey(a.Curve(), sig, hash)
			if err != nil {
				return errors.Wrap(err, "recovering public key")
			}
			printHex(cmd.OutOrStdout(), pubKey.Serialize(a.v.GetBool(keyCompressed)))
			return nil
		},
	}
	cmd.Flags().String("sig", "", "Hex encoded compact or DER signature")
	cmd.Flags().Uint8("recovery", 0, "Recovery id (0-3)")
	addMessageFlags(cmd)
	return cmd
}

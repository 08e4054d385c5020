// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/ModChain/secp256k1/v2"
	"github.com/ModChain/secp256k1/v2/logger"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func keygenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generates a new private key.",
		Long:  `Generates a private key and prints it followed by its public key, both hex encoded`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := secp256k1.GeneratePrivateKey()
			if err != nil {
				return errors.Wrap(err, "generating private key")
			}
			pubKey, err := key.PubKey(a.Curve())
			if err != nil {
				return errors.Wrap(err, "deriving public key")
			}
			log := logger.Logger()
			log.Info().Msg("generated a new key pair")

			out := cmd.OutOrStdout()
			printHex(out, key.Serialize())
			printHex(out, pubKey.Serialize(a.v.GetBool(keyCompressed)))
			return nil
		},
	}
}

func pubkeyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pubkey",
		Short: "Derives the public key of a private key.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := a.privateKey(cmd)
			if err != nil {
				return err
			}
			pubKey, err := key.PubKey(a.Curve())
			if err != nil {
				return errors.Wrap(err, "deriving public key")
			}
			printHex(cmd.OutOrStdout(), pubKey.Serialize(a.v.GetBool(keyCompressed)))
			return nil
		},
	}
	cmd.Flags().String("key", "", "Hex encoded 32-byte private key")
	return cmd
}

func ecdhCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ecdh",
		Short: "Computes an ECDH shared secret.",
		Long:  `Multiplies the remote public key by the private key and prints the shared point`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := a.privateKey(cmd)
			if err != nil {
				return err
			}
			pubKey, err := a.publicKey(cmd)
			if err != nil {
				return err
			}
			secret, err := secp256k1.GenerateSharedSecret(a.Curve(), key, pubKey,
				a.v.GetBool(keyCompressed))
			if err != nil {
				return errors.Wrap(err, "computing shared secret")
			}
			printHex(cmd.OutOrStdout(), secret)
			return nil
		},
	}
	cmd.Flags().String("key", "", "Hex encoded 32-byte private key")
	cmd.Flags().String("pubkey", "", "Hex encoded remote public key")
	return cmd
}

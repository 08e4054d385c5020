// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/ModChain/secp256k1/v2"
	"github.com/ModChain/secp256k1/v2/internal/digest"
	"github.com/ModChain/secp256k1/v2/logger"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// envPrefix is prepended to the upper-cased configuration keys when they are
// read from the environment, e.g. SECP256K1_LOG_LEVEL.
const envPrefix = "SECP256K1"

// Configuration keys.
const (
	keyLogLevel   = "log.level"
	keyDigest     = "digest"
	keyDRBG       = "drbg"
	keyCompressed = "compressed"
)

// app carries the state shared by all subcommands.
type app struct {
	v     *viper.Viper
	curve *secp256k1.Curve
}

// Curve returns the curve context, building the generator table on first use.
func (a *app) Curve() *secp256k1.Curve {
	if a.curve == nil {
		a.curve = secp256k1.NewCurve()
	}
	return a.curve
}

// keyedHash returns the nonce generator HMAC named by the drbg setting.
func (a *app) keyedHash() (secp256k1.KeyedHash, error) {
	switch name := strings.ToLower(a.v.GetString(keyDRBG)); name {
	case "", "sha256":
		return secp256k1.HMACSHA256, nil
	case "sha3-256":
		return secp256k1.HMACSHA3256, nil
	default:
		return nil, errors.Errorf("unknown drbg %q, expected sha256 or sha3-256", name)
	}
}

// messageHash returns the hash to sign or verify: either the --digest flag
// decoded from hex or the --msg flag hashed with the configured digest.
func (a *app) messageHash(cmd *cobra.Command) ([]byte, error) {
	msg, _ := cmd.Flags().GetString("msg")
	digestHex, _ := cmd.Flags().GetString("digest")
	msgSet := cmd.Flags().Changed("msg")
	switch {
	case msgSet && digestHex != "":
		return nil, errors.New("--msg and --digest are mutually exclusive")
	case digestHex != "":
		hash, err := secp256k1.ParseHex(digestHex)
		return hash, errors.Wrap(err, "invalid --digest")
	case msgSet:
		f, err := digest.Lookup(a.v.GetString(keyDigest))
		if err != nil {
			return nil, err
		}
		return f([]byte(msg)), nil
	default:
		return nil, errors.New("one of --msg or --digest is required")
	}
}

func (a *app) privateKey(cmd *cobra.Command) (*secp256k1.PrivateKey, error) {
	s, _ := cmd.Flags().GetString("key")
	if s == "" {
		return nil, errors.New("--key is required")
	}
	key, err := secp256k1.ParsePrivKeyHex(s)
	return key, errors.Wrap(err, "invalid --key")
}

func (a *app) publicKey(cmd *cobra.Command) (*secp256k1.PublicKey, error) {
	s, _ := cmd.Flags().GetString("pubkey")
	if s == "" {
		return nil, errors.New("--pubkey is required")
	}
	pubKey, err := secp256k1.ParsePubKeyHex(s)
	return pubKey, errors.Wrap(err, "invalid --pubkey")
}

// printHex writes b hex encoded on its own line.
func printHex(w io.Writer, b []byte) {
	fmt.Fprintln(w, hex.EncodeToString(b))
}

// loadConfig reads the optional configuration file and applies the log level.
func (a *app) loadConfig(cmd *cobra.Command) error {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "reading config %s", path)
		}
	}

	level, err := zerolog.ParseLevel(a.v.GetString(keyLogLevel))
	if err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	logger.SetConsole(level)
	log := logger.Logger()
	log.Debug().Str("digest", a.v.GetString(keyDigest)).
		Str("drbg", a.v.GetString(keyDRBG)).Msg("configuration loaded")
	return nil
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	a.v.SetEnvPrefix(envPrefix)
	a.v.AutomaticEnv()
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	a.v.SetConfigType("yaml")
	a.v.SetDefault(keyLogLevel, "warn")
	a.v.SetDefault(keyDigest, "sha256")
	a.v.SetDefault(keyDRBG, "sha256")
	a.v.SetDefault(keyCompressed, true)

	rootCmd := &cobra.Command{
		Use:          "secp256k1",
		Short:        "secp256k1 keys, ECDSA signatures and ECDH.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig(cmd)
		},
	}

	// Flags valid for all subcommands.  Only these are bound to viper so
	// they can also come from the config file or the environment.
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "YAML configuration file")
	flags.String("log-level", "warn", "Logging level (trace, debug, info, warn, error)")
	flags.String("digest-alg", "sha256", "Digest applied to --msg ("+strings.Join(digest.Names(), ", ")+")")
	flags.String("drbg", "sha256", "HMAC used by the nonce generator (sha256, sha3-256)")
	flags.Bool("compressed", true, "Use the 33-byte compressed public key encoding")
	a.v.BindPFlag(keyLogLevel, flags.Lookup("log-level"))
	a.v.BindPFlag(keyDigest, flags.Lookup("digest-alg"))
	a.v.BindPFlag(keyDRBG, flags.Lookup("drbg"))
	a.v.BindPFlag(keyCompressed, flags.Lookup("compressed"))

	rootCmd.AddCommand(keygenCmd(a))
	rootCmd.AddCommand(pubkeyCmd(a))
	rootCmd.AddCommand(signCmd(a))
	rootCmd.AddCommand(verifyCmd(a))
	rootCmd.AddCommand(recoverCmd(a))
	rootCmd.AddCommand(ecdhCmd(a))
	return rootCmd
}

// Command manxdemo exercises the Manx1 and Manx2 AEAD engines end to end
// against hex-encoded arguments, for manual experimentation and as a
// worked example of wiring a blockcipher.Backend into the manx package.
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aadomn/manx"
	"github.com/aadomn/manx/blockcipher"
	"github.com/aadomn/manx/blockcipher/aes128"
	"github.com/aadomn/manx/blockcipher/chaskey12"
	"github.com/aadomn/manx/blockcipher/gift128"
)

var log = logrus.New()

func backendByName(name string) (*blockcipher.Backend, error) {
	switch name {
	case "aes128":
		return aes128.Backend(), nil
	case "chaskey12":
		return chaskey12.Backend(), nil
	case "gift128":
		return gift128.Backend(), nil
	default:
		return nil, fmt.Errorf("unknown cipher backend %q", name)
	}
}

func decodeHexFlag(name, s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return b, nil
}

type commonFlags struct {
	scheme  string
	cipher  string
	key     string
	nonce   string
	nlen    int
	ad      string
	alen    int
}

func addCommonFlags(cmd *cobra.Command, f *commonFlags) {
	cmd.Flags().StringVar(&f.scheme, "scheme", "manx1", "AEAD scheme: manx1 or manx2")
	cmd.Flags().StringVar(&f.cipher, "cipher", "aes128", "block cipher backend: aes128, chaskey12, gift128")
	cmd.Flags().StringVar(&f.key, "key", "", "16-byte key, hex-encoded")
	cmd.Flags().StringVar(&f.nonce, "nonce", "", "nonce bytes, hex-encoded")
	cmd.Flags().IntVar(&f.nlen, "nlen", -1, "nonce length in bits (defaults to 8*len(nonce))")
	cmd.Flags().StringVar(&f.ad, "ad", "", "associated data, hex-encoded")
	cmd.Flags().IntVar(&f.alen, "alen", -1, "associated data length in bits (defaults to 8*len(ad))")
	cmd.MarkFlagRequired("key")
	cmd.MarkFlagRequired("nonce")
}

func resolveEngine(f *commonFlags) (manx1 *manx.Manx1, manx2 *manx.Manx2, err error) {
	backend, err := backendByName(f.cipher)
	if err != nil {
		return nil, nil, err
	}
	switch f.scheme {
	case "manx1":
		return &manx.Manx1{Backend: backend}, nil, nil
	case "manx2":
		return nil, &manx.Manx2{Backend: backend}, nil
	default:
		return nil, nil, fmt.Errorf("unknown scheme %q", f.scheme)
	}
}

func newSealCmd() *cobra.Command {
	f := &commonFlags{}
	var msgHex string
	var mlen int

	cmd := &cobra.Command{
		Use:   "seal",
		Short: "Encrypt and authenticate a message",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := decodeHexFlag("key", f.key)
			if err != nil {
				return err
			}
			nonce, err := decodeHexFlag("nonce", f.nonce)
			if err != nil {
				return err
			}
			ad, err := decodeHexFlag("ad", f.ad)
			if err != nil {
				return err
			}
			msg, err := decodeHexFlag("msg", msgHex)
			if err != nil {
				return err
			}
			if f.nlen < 0 {
				f.nlen = 8 * len(nonce)
			}
			if f.alen < 0 {
				f.alen = 8 * len(ad)
			}
			if mlen < 0 {
				mlen = 8 * len(msg)
			}

			m1, m2, err := resolveEngine(f)
			if err != nil {
				return err
			}

			log.WithFields(logrus.Fields{
				"scheme": f.scheme,
				"cipher": f.cipher,
				"nlen":   f.nlen,
				"mlen":   mlen,
				"alen":   f.alen,
			}).Info("sealing message")

			var ct []byte
			if m1 != nil {
				ct, err = m1.Seal(key, nonce, f.nlen, msg, mlen, ad, f.alen)
			} else {
				ct, err = m2.Seal(key, nonce, f.nlen, msg, mlen, ad, f.alen)
			}
			if err != nil {
				log.WithError(err).Error("seal failed")
				return err
			}

			fmt.Println(hex.EncodeToString(ct))
			return nil
		},
	}
	addCommonFlags(cmd, f)
	cmd.Flags().StringVar(&msgHex, "msg", "", "message bytes, hex-encoded")
	cmd.Flags().IntVar(&mlen, "mlen", -1, "message length in bits (defaults to 8*len(msg))")
	return cmd
}

func newOpenCmd() *cobra.Command {
	f := &commonFlags{}
	var ctHex string
	var clen int

	cmd := &cobra.Command{
		Use:   "open",
		Short: "Verify and decrypt a ciphertext",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := decodeHexFlag("key", f.key)
			if err != nil {
				return err
			}
			nonce, err := decodeHexFlag("nonce", f.nonce)
			if err != nil {
				return err
			}
			ad, err := decodeHexFlag("ad", f.ad)
			if err != nil {
				return err
			}
			ct, err := decodeHexFlag("ct", ctHex)
			if err != nil {
				return err
			}
			if f.nlen < 0 {
				f.nlen = 8 * len(nonce)
			}
			if f.alen < 0 {
				f.alen = 8 * len(ad)
			}
			if clen < 0 {
				clen = 8 * len(ct)
			}

			m1, m2, err := resolveEngine(f)
			if err != nil {
				return err
			}

			log.WithFields(logrus.Fields{
				"scheme": f.scheme,
				"cipher": f.cipher,
				"nlen":   f.nlen,
				"clen":   clen,
				"alen":   f.alen,
			}).Info("opening ciphertext")

			var pt []byte
			var plen int
			if m1 != nil {
				pt, plen, err = m1.Open(key, nonce, f.nlen, ct, clen, ad, f.alen)
			} else {
				pt, plen, err = m2.Open(key, nonce, f.nlen, ct, clen, ad, f.alen)
			}
			if err != nil {
				log.WithError(err).Error("open failed")
				return err
			}

			log.WithField("plen", plen).Info("open succeeded")
			fmt.Println(hex.EncodeToString(pt))
			return nil
		},
	}
	addCommonFlags(cmd, f)
	cmd.Flags().StringVar(&ctHex, "ct", "", "ciphertext bytes, hex-encoded")
	cmd.Flags().IntVar(&clen, "clen", -1, "ciphertext length in bits (defaults to 8*len(ct))")
	return cmd
}

func main() {
	root := &cobra.Command{
		Use:   "manxdemo",
		Short: "Seal or open messages with the Manx1/Manx2 AEAD schemes",
	}
	root.AddCommand(newSealCmd(), newOpenCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

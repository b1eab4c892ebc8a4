package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/iov-one/covenant"
	"github.com/iov-one/covenant/crypto"
	"github.com/iov-one/covenant/errors"
)

type keyView struct {
	Address covenant.Address `json:"address"`
	Bech32  string           `json:"bech32"`
}

func newKeyView(addr covenant.Address) keyView {
	return keyView{Address: addr, Bech32: addr.Bech32()}
}

func keygenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a new private key",
		Long: `Generate a new ed25519 private key and write it to the key file.

This command fails if the key file already exists. Delete it manually
first if you really mean to replace it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.keyPath()
			if _, err := os.Stat(path); !os.IsNotExist(err) {
				return errors.Wrapf(errors.ErrDuplicate, "private key file %q already exists", path)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
				return errors.Wrapf(errors.ErrInput, "key directory: %s", err)
			}

			key := crypto.GenPrivKeyEd25519()
			raw, err := json.Marshal(key)
			if err != nil {
				return errors.Wrap(err, "serialize key")
			}
			fd, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
			if err != nil {
				return errors.Wrapf(errors.ErrInput, "cannot create key file: %s", err)
			}
			if _, err := fd.Write(raw); err != nil {
				fd.Close()
				return errors.Wrapf(errors.ErrInput, "cannot write key file: %s", err)
			}
			if err := fd.Close(); err != nil {
				return errors.Wrapf(errors.ErrInput, "cannot close key file: %s", err)
			}
			return printJSON(cmd.OutOrStdout(), newKeyView(key.PublicKey().Address()))
		},
	}
}

func keyaddrCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "keyaddr",
		Short: "Print the address of the private key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := a.caller()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), newKeyView(addr))
		},
	}
}

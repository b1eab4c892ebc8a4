package main

import (
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/iov-one/covenant"
	"github.com/iov-one/covenant/chain"
	"github.com/iov-one/covenant/crypto"
	"github.com/iov-one/covenant/errors"
	"github.com/iov-one/covenant/store/iavl"
	"github.com/iov-one/covenant/x/multisig"
)

const (
	flagHome     = "home"
	flagLogLevel = "log_level"
	flagDebug    = "debug"
	flagKey      = "key"

	envPrefix = "MSWALLET"
	dbName    = "state"
	keyFile   = "key.json"
)

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "mswallet",
		Short: "Operate multi-signature wallets on a local chain",
		Long: `mswallet keeps a local chain state in the home directory and lets
owners deploy wallets, submit operations, vote on them and execute them.

Every flag can also be set with an environment variable, for example
MSWALLET_HOME or MSWALLET_KEY.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	fl := root.PersistentFlags()
	fl.String(flagHome, defaultHome(), "directory holding the chain state")
	fl.String(flagLogLevel, "info", "log level: debug, info, error or none")
	fl.Bool(flagDebug, false, "include full error details in responses")
	fl.String(flagKey, "", "private key file of the caller (default <home>/"+keyFile+")")
	for _, name := range []string{flagHome, flagLogLevel, flagDebug, flagKey} {
		if err := v.BindPFlag(name, fl.Lookup(name)); err != nil {
			panic(err)
		}
	}

	a := &app{v: v}
	root.AddCommand(
		initCmd(a),
		keygenCmd(a),
		keyaddrCmd(a),
		sendCmd(a),
		balanceCmd(a),
		deployCmd(a),
		depositCmd(a),
		submitTxCmd(a),
		submitCallCmd(a),
		voteCmd(a, "confirm", multisig.FnConfirm, "Confirm an operation as one of the owners"),
		voteCmd(a, "revoke", multisig.FnRevoke, "Withdraw an earlier confirmation"),
		executeCmd(a),
		voteCmd(a, "cancel", multisig.FnCancel, "Cancel an operation you submitted"),
		showCmd(a),
		listCmd(a),
		ownersCmd(a),
		versionCmd(),
	)
	return root
}

func defaultHome() string {
	return filepath.Join(os.Getenv("HOME"), ".mswallet")
}

// app resolves configuration shared by all commands.
type app struct {
	v *viper.Viper
}

func (a *app) home() string {
	return a.v.GetString(flagHome)
}

func (a *app) debug() bool {
	return a.v.GetBool(flagDebug)
}

func (a *app) keyPath() string {
	if p := a.v.GetString(flagKey); p != "" {
		return p
	}
	return filepath.Join(a.home(), keyFile)
}

func (a *app) logger() (log.Logger, error) {
	lvl := strings.ToLower(a.v.GetString(flagLogLevel))
	allow, err := log.AllowLevel(lvl)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stderr))
	return log.NewFilter(logger, allow).With("module", "mswallet"), nil
}

// caller returns the address of the configured private key.
func (a *app) caller() (covenant.Address, error) {
	raw, err := ioutil.ReadFile(a.keyPath())
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "cannot read private key: %s", err)
	}
	var key crypto.PrivateKey
	if err := json.Unmarshal(raw, &key); err != nil {
		return nil, errors.Wrap(err, "private key file")
	}
	return key.PublicKey().Address(), nil
}

// session is an open chain state. Close must always be called.
type session struct {
	db    iavl.CommitStore
	chain *chain.Chain
	ctx   covenant.Context
}

func (a *app) open() (*session, error) {
	logger, err := a.logger()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(a.home(), 0700); err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "home directory: %s", err)
	}
	db := iavl.NewCommitStore(a.home(), dbName)
	if err := db.LoadLatestVersion(); err != nil {
		db.Close()
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}

	registry := chain.NewRegistry()
	multisig.RegisterCode(registry)

	ctx := covenant.WithHeight(context.Background(), db.LatestVersion().Version+1)
	ctx = covenant.WithLogger(ctx, logger)
	return &session{
		db:    db,
		chain: chain.New(db, registry),
		ctx:   ctx,
	}, nil
}

func (s *session) Close() {
	s.db.Close()
}

// commit persists everything written so far as a new version.
func (s *session) commit() covenant.CommitID {
	id := s.db.Commit()
	covenant.GetLogger(s.ctx).Debug("state committed", "version", id.Version)
	return id
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseAddress(name, enc string) (covenant.Address, error) {
	addr, err := covenant.ParseAddress(enc)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	return addr, nil
}

package main

import (
	"encoding/json"
	"io/ioutil"

	"github.com/spf13/cobra"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"

	"github.com/iov-one/covenant"
	"github.com/iov-one/covenant/coin"
	"github.com/iov-one/covenant/errors"
	"github.com/iov-one/covenant/x/cash"
	"github.com/iov-one/covenant/x/multisig"
)

// txResponse is printed by every command that changes the state.
type txResponse struct {
	Height   int64                  `json:"height,omitempty"`
	AppHash  common.HexBytes        `json:"app_hash,omitempty"`
	Response abci.ResponseDeliverTx `json:"response"`
	Result   interface{}            `json:"result,omitempty"`
}

// deliver commits the state if err is nil and prints the response. A failed
// call is printed too, but the error is returned so the process exits with
// a non zero code.
func (a *app) deliver(cmd *cobra.Command, s *session, res *covenant.Result, err error, decoded interface{}) error {
	out := txResponse{Response: covenant.DeliverOrError(res, err, a.debug())}
	if err == nil {
		id := s.commit()
		out.Height = id.Version
		out.AppHash = id.Hash
		out.Result = decoded
	}
	if perr := printJSON(cmd.OutOrStdout(), out); perr != nil {
		return perr
	}
	return err
}

func initCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init <genesis.json>",
		Short: "Load initial balances and wallets from a genesis file",
		Long: `Load the genesis file into an empty home directory.

The file is a JSON object. The "cash" key lists initial balances as
{"address": ..., "amount": ...} objects. The "multisig" key lists wallets
to deploy as {"threshold": ..., "owners": [...]} objects. Wallets get
their addresses in the order they are listed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := ioutil.ReadFile(args[0])
			if err != nil {
				return errors.Wrapf(errors.ErrInput, "cannot read genesis: %s", err)
			}
			var opts covenant.Options
			if err := json.Unmarshal(raw, &opts); err != nil {
				return errors.Wrapf(errors.ErrInput, "cannot parse genesis: %s", err)
			}

			s, err := a.open()
			if err != nil {
				return err
			}
			defer s.Close()

			if v := s.db.LatestVersion().Version; v != 0 {
				return errors.Wrapf(errors.ErrState, "chain already initialized at height %d", v)
			}
			err = s.chain.InitGenesis(s.ctx, opts,
				cash.Initializer{},
				multisig.Initializer{Deployer: s.chain},
			)
			if err != nil {
				return err
			}
			id := s.commit()
			return printJSON(cmd.OutOrStdout(), txResponse{
				Height:  id.Version,
				AppHash: id.Hash,
			})
		},
	}
}

func sendCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "send <recipient> <amount>",
		Short: "Send coins from the key owner to another address",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := a.caller()
			if err != nil {
				return err
			}
			to, err := parseAddress("recipient", args[0])
			if err != nil {
				return err
			}
			amount, err := coin.ParseAmount(args[1])
			if err != nil {
				return err
			}

			s, err := a.open()
			if err != nil {
				return err
			}
			defer s.Close()

			err = s.chain.Send(s.ctx, from, to, amount)
			return a.deliver(cmd, s, &covenant.Result{}, err, nil)
		},
	}
}

type balanceView struct {
	Address covenant.Address `json:"address"`
	Amount  coin.Amount      `json:"amount"`
}

func balanceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "balance [address]",
		Short: "Print the balance of an address, by default of the key owner",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				addr covenant.Address
				err  error
			)
			if len(args) == 1 {
				addr, err = parseAddress("address", args[0])
			} else {
				addr, err = a.caller()
			}
			if err != nil {
				return err
			}

			s, err := a.open()
			if err != nil {
				return err
			}
			defer s.Close()

			amount, err := s.chain.Balance(addr)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), balanceView{Address: addr, Amount: amount})
		},
	}
}

package main

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tendermint/tendermint/libs/common"

	"github.com/iov-one/covenant"
	"github.com/iov-one/covenant/coin"
	"github.com/iov-one/covenant/errors"
	"github.com/iov-one/covenant/x/multisig"
)

// invoke calls fn on the wallet on behalf of the key owner. When result is
// not nil the returned data is decoded into it and printed along the
// response.
func (a *app) invoke(cmd *cobra.Command, wallet, fn string, msg interface{}, value coin.Amount, result interface{}) error {
	caller, err := a.caller()
	if err != nil {
		return err
	}
	target, err := parseAddress("wallet", wallet)
	if err != nil {
		return err
	}
	var args []byte
	if msg != nil {
		if args, err = multisig.Marshal(msg); err != nil {
			return err
		}
	}

	s, err := a.open()
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := s.chain.Invoke(s.ctx, caller, target, covenant.Call{Function: fn, Args: args}, value)
	if err == nil && result != nil {
		if err := multisig.Unmarshal(res.Data, result); err != nil {
			return errors.Wrap(err, "result")
		}
	}
	return a.deliver(cmd, s, res, err, result)
}

// query runs fn on the wallet without changing the state and decodes the
// returned data into result.
func (a *app) query(wallet, fn string, msg interface{}, result interface{}) error {
	target, err := parseAddress("wallet", wallet)
	if err != nil {
		return err
	}
	var args []byte
	if msg != nil {
		if args, err = multisig.Marshal(msg); err != nil {
			return err
		}
	}
	// Queries do not require a key.
	caller, _ := a.caller()

	s, err := a.open()
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := s.chain.Query(s.ctx, caller, target, covenant.Call{Function: fn, Args: args})
	if err != nil {
		return err
	}
	return multisig.Unmarshal(res.Data, result)
}

func parseIndex(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInput, "invalid operation index %q", s)
	}
	return n, nil
}

type walletView struct {
	Address covenant.Address `json:"address"`
}

func deployCmd(a *app) *cobra.Command {
	var (
		threshold uint32
		owners    []string
		amount    string
	)
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy a new wallet",
		Long: `Deploy a new wallet with given owners and threshold.

An owner listed more than once gets a weight equal to the number of
times it is listed. The threshold is the total weight of confirmations an
operation needs before it can be executed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			creator, err := a.caller()
			if err != nil {
				return err
			}
			value, err := coin.ParseAmount(amount)
			if err != nil {
				return err
			}
			msg := multisig.ConstructMsg{Threshold: threshold}
			for _, o := range owners {
				addr, err := parseAddress("owner", o)
				if err != nil {
					return err
				}
				msg.Owners = append(msg.Owners, addr)
			}
			if err := msg.Validate(); err != nil {
				return err
			}
			raw, err := multisig.Marshal(&msg)
			if err != nil {
				return err
			}

			s, err := a.open()
			if err != nil {
				return err
			}
			defer s.Close()

			addr, err := s.chain.Deploy(s.ctx, multisig.CodeName, creator, raw, value)
			return a.deliver(cmd, s, &covenant.Result{Data: addr}, err, walletView{Address: addr})
		},
	}
	cmd.Flags().Uint32Var(&threshold, "threshold", 1, "weight of confirmations required to execute an operation")
	cmd.Flags().StringSliceVar(&owners, "owner", nil, "owner address, repeat to add more owners or weight")
	cmd.Flags().StringVar(&amount, "amount", "0", "initial funds moved from the key owner to the wallet")
	return cmd
}

func depositCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "deposit <wallet> <amount>",
		Short: "Move coins from the key owner to a wallet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := coin.ParseAmount(args[1])
			if err != nil {
				return err
			}
			return a.invoke(cmd, args[0], multisig.FnDeposit, nil, amount, nil)
		},
	}
}

func submitTxCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "submit-tx <wallet> <recipient> <amount>",
		Short: "Propose a transfer of wallet funds",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			to, err := parseAddress("recipient", args[1])
			if err != nil {
				return err
			}
			amount, err := coin.ParseAmount(args[2])
			if err != nil {
				return err
			}
			msg := multisig.SubmitTransactionMsg{Target: to, Amount: uint64(amount)}
			return a.invoke(cmd, args[0], multisig.FnSubmitTransaction, &msg, 0, &multisig.IndexMsg{})
		},
	}
}

func submitCallCmd(a *app) *cobra.Command {
	var (
		amount  string
		argsHex string
	)
	cmd := &cobra.Command{
		Use:   "submit-call <wallet> <contract> <function>",
		Short: "Propose a call of another contract paid from wallet funds",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := parseAddress("contract", args[1])
			if err != nil {
				return err
			}
			value, err := coin.ParseAmount(amount)
			if err != nil {
				return err
			}
			callArgs, err := hex.DecodeString(argsHex)
			if err != nil {
				return errors.Wrapf(errors.ErrInput, "call arguments: %s", err)
			}
			msg := multisig.SubmitCallMsg{
				Target:   target,
				Amount:   uint64(value),
				Function: args[2],
				Args:     callArgs,
			}
			return a.invoke(cmd, args[0], multisig.FnSubmitCall, &msg, 0, &multisig.IndexMsg{})
		},
	}
	cmd.Flags().StringVar(&amount, "amount", "0", "coins attached to the call")
	cmd.Flags().StringVar(&argsHex, "args", "", "hex encoded call arguments")
	return cmd
}

// voteCmd builds a command that only needs the operation index.
func voteCmd(a *app, name, fn, short string) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("%s <wallet> <index>", name),
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			return a.invoke(cmd, args[0], fn, &multisig.IndexMsg{Index: index}, 0, nil)
		},
	}
}

func executeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "execute <wallet> <index>",
		Short: "Execute a sufficiently confirmed operation",
		Long: `Execute a sufficiently confirmed operation. Anyone can execute an
operation. The operation is removed before the transfer or call happens,
so it can never run twice.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			return a.invoke(cmd, args[0], multisig.FnExecute, &multisig.IndexMsg{Index: index}, 0, nil)
		},
	}
}

type operationView struct {
	Index       uint64             `json:"index"`
	Kind        string             `json:"kind"`
	Creator     covenant.Address   `json:"creator"`
	Target      covenant.Address   `json:"target"`
	Amount      coin.Amount        `json:"amount"`
	Function    string             `json:"function,omitempty"`
	Args        common.HexBytes    `json:"args,omitempty"`
	Confirmed   []covenant.Address `json:"confirmed"`
	WeightedSum uint32             `json:"weighted_sum"`
	Threshold   uint32             `json:"threshold"`
	Validated   bool               `json:"validated"`
}

func newOperationView(op *multisig.Operation, threshold uint32) operationView {
	v := operationView{
		Index:       op.Index,
		Kind:        op.Kind(),
		Creator:     op.Creator,
		Target:      op.Target,
		Amount:      coin.Amount(op.Amount),
		Function:    op.Function,
		Args:        op.Args,
		Confirmed:   make([]covenant.Address, len(op.ConfirmedOwners)),
		WeightedSum: op.WeightedSum,
		Threshold:   threshold,
		Validated:   op.WeightedSum >= threshold,
	}
	for i, o := range op.ConfirmedOwners {
		v.Confirmed[i] = o
	}
	return v
}

func showCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <wallet> <index>",
		Short: "Print a pending operation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			var op multisig.Operation
			if err := a.query(args[0], multisig.FnGetOperation, &multisig.IndexMsg{Index: index}, &op); err != nil {
				return err
			}
			var th multisig.ThresholdResult
			if err := a.query(args[0], multisig.FnGetThreshold, nil, &th); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), newOperationView(&op, th.Threshold))
		},
	}
}

type listView struct {
	Indices   []uint64 `json:"indices"`
	LastIndex uint64   `json:"last_index"`
}

func listCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list <wallet>",
		Short: "Print indices of all pending operations",
		Long: `Print indices of all pending operations, ascending, together with the
last index the wallet issued. Executed and canceled operations are not
listed, but their indices are never issued again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var res multisig.IndicesResult
			if err := a.query(args[0], multisig.FnListIndices, nil, &res); err != nil {
				return err
			}
			view := listView{Indices: res.Indices, LastIndex: res.LastIndex}
			if view.Indices == nil {
				view.Indices = []uint64{}
			}
			return printJSON(cmd.OutOrStdout(), view)
		},
	}
}

type ownersView struct {
	Owners    []covenant.Address `json:"owners"`
	Threshold uint32             `json:"threshold"`
}

func ownersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "owners <wallet>",
		Short: "Print distinct owners and the threshold of a wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var res multisig.OwnersResult
			if err := a.query(args[0], multisig.FnListOwners, nil, &res); err != nil {
				return err
			}
			var th multisig.ThresholdResult
			if err := a.query(args[0], multisig.FnGetThreshold, nil, &th); err != nil {
				return err
			}
			view := ownersView{
				Owners:    make([]covenant.Address, len(res.Owners)),
				Threshold: th.Threshold,
			}
			for i, o := range res.Owners {
				view.Owners[i] = o
			}
			return printJSON(cmd.OutOrStdout(), view)
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), covenant.Version())
		},
	}
}

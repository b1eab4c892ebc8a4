package multisig_test

import (
	"context"
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/iov-one/covenant"
	"github.com/iov-one/covenant/chain"
	"github.com/iov-one/covenant/coin"
	"github.com/iov-one/covenant/covenanttest"
	"github.com/iov-one/covenant/errors"
	"github.com/iov-one/covenant/store"
	"github.com/iov-one/covenant/x/cash"
	"github.com/iov-one/covenant/x/multisig"
)

// client calls a deployed wallet through the host.
type client struct {
	host   *chain.Chain
	wallet covenant.Address
}

func (c client) invoke(caller covenant.Address, function string, args interface{}, value coin.Amount) (*covenant.Result, error) {
	call := covenant.Call{Function: function}
	if args != nil {
		bz, err := multisig.Marshal(args)
		if err != nil {
			return nil, err
		}
		call.Args = bz
	}
	return c.host.Invoke(context.Background(), caller, c.wallet, call, value)
}

func (c client) query(function string, args interface{}, out interface{}) error {
	call := covenant.Call{Function: function}
	if args != nil {
		bz, err := multisig.Marshal(args)
		if err != nil {
			return err
		}
		call.Args = bz
	}
	res, err := c.host.Query(context.Background(), c.wallet, c.wallet, call)
	if err != nil {
		return err
	}
	return multisig.Unmarshal(res.Data, out)
}

func (c client) submitTx(caller, target covenant.Address, amount coin.Amount) (uint64, error) {
	res, err := c.invoke(caller, multisig.FnSubmitTransaction,
		&multisig.SubmitTransactionMsg{Target: target, Amount: uint64(amount)}, 0)
	if err != nil {
		return 0, err
	}
	var idx multisig.IndexMsg
	err = multisig.Unmarshal(res.Data, &idx)
	return idx.Index, err
}

func (c client) submitCall(caller, target covenant.Address, amount coin.Amount, function string, args []byte) (uint64, error) {
	res, err := c.invoke(caller, multisig.FnSubmitCall, &multisig.SubmitCallMsg{
		Target:   target,
		Amount:   uint64(amount),
		Function: function,
		Args:     args,
	}, 0)
	if err != nil {
		return 0, err
	}
	var idx multisig.IndexMsg
	err = multisig.Unmarshal(res.Data, &idx)
	return idx.Index, err
}

func (c client) onIndex(caller covenant.Address, function string, index uint64) error {
	_, err := c.invoke(caller, function, &multisig.IndexMsg{Index: index}, 0)
	return err
}

func (c client) operation(index uint64) (*multisig.Operation, error) {
	var op multisig.Operation
	if err := c.query(multisig.FnGetOperation, &multisig.IndexMsg{Index: index}, &op); err != nil {
		return nil, err
	}
	return &op, nil
}

func (c client) has(index uint64) bool {
	var res multisig.BoolResult
	So(c.query(multisig.FnHasOperation, &multisig.IndexMsg{Index: index}, &res), ShouldBeNil)
	return res.Value
}

func balance(host *chain.Chain, addr covenant.Address) coin.Amount {
	amount, err := host.Balance(addr)
	So(err, ShouldBeNil)
	return amount
}

// attacker tries to execute the wallet operation that is paying it once
// more. Args of the "collect" function are the wallet address followed by
// the encoded index. With "collectStrict" the failure of the nested call
// is returned instead of being recorded.
var attacker = covenant.ContractFunc(func(ctx covenant.Context, env covenant.Env, call covenant.Call) (*covenant.Result, error) {
	switch call.Function {
	case chain.Constructor:
		return &covenant.Result{}, nil
	case "collect", "collectStrict":
		wallet := covenant.Address(call.Args[:covenant.AddressLength])
		again := covenant.Call{Function: multisig.FnExecute, Args: call.Args[covenant.AddressLength:]}
		_, err := env.Call(ctx, wallet, again, 0)
		if err == nil {
			env.Store().Set([]byte("reentered"), []byte("succeeded"))
			return &covenant.Result{}, nil
		}
		if call.Function == "collectStrict" {
			return nil, err
		}
		code, _ := errors.ABCIInfo(err, false)
		env.Store().Set([]byte("reentered"), []byte{byte(code)})
		return &covenant.Result{}, nil
	case "status":
		return &covenant.Result{Data: env.Store().Get([]byte("reentered"))}, nil
	}
	return nil, errors.Wrapf(errors.ErrInput, "unknown function %q", call.Function)
})

func newHost() *chain.Chain {
	reg := chain.NewRegistry()
	multisig.RegisterCode(reg)
	reg.Register("attacker", attacker)
	return chain.New(store.MemStore(), reg)
}

func deploy(host *chain.Chain, threshold uint32, owners ...covenant.Address) client {
	list := make([][]byte, len(owners))
	for i, o := range owners {
		list[i] = o
	}
	args, err := multisig.Marshal(&multisig.ConstructMsg{Threshold: threshold, Owners: list})
	So(err, ShouldBeNil)
	addr, err := host.Deploy(context.Background(), multisig.CodeName, owners[0], args, 0)
	So(err, ShouldBeNil)
	return client{host: host, wallet: addr}
}

func TestWalletScenarios(t *testing.T) {
	Convey("Given a wallet owned by [A, A, B, C] with threshold 2", t, func() {
		host := newHost()
		ctx := context.Background()
		a, b, c, d := covenanttest.NewAddress(), covenanttest.NewAddress(), covenanttest.NewAddress(), covenanttest.NewAddress()
		w := deploy(host, 2, a, a, b, c)

		So(host.Mint(ctx, a, 50000), ShouldBeNil)
		res, err := w.invoke(a, multisig.FnDeposit, nil, 20000)
		So(err, ShouldBeNil)
		So(res.Events, ShouldHaveLength, 1)
		So(res.Events[0].Type, ShouldEqual, multisig.EventDeposit)
		So(balance(host, w.wallet), ShouldEqual, 20000)

		var owners multisig.OwnersResult
		So(w.query(multisig.FnListOwners, nil, &owners), ShouldBeNil)
		So(owners.Owners, ShouldResemble, [][]byte{a, b, c})

		Convey("The constructor cannot be called again", func() {
			_, err := w.invoke(a, chain.Constructor, &multisig.ConstructMsg{Threshold: 1, Owners: [][]byte{d}}, 0)
			So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)
		})

		Convey("A transaction confirmed by A alone is executed", func() {
			index, err := w.submitTx(a, d, 15000)
			So(err, ShouldBeNil)
			So(index, ShouldEqual, 1)

			res, err := w.invoke(a, multisig.FnConfirm, &multisig.IndexMsg{Index: index}, 0)
			So(err, ShouldBeNil)
			So(res.Events, ShouldHaveLength, 1)
			sum, _ := res.Events[0].Attr("weighted_sum")
			So(sum, ShouldEqual, "2")

			op, err := w.operation(index)
			So(err, ShouldBeNil)
			So(op.WeightedSum, ShouldEqual, 2)

			So(w.onIndex(b, multisig.FnExecute, index), ShouldBeNil)
			So(balance(host, d), ShouldEqual, 15000)
			So(balance(host, w.wallet), ShouldEqual, 5000)
			So(w.has(index), ShouldBeFalse)

			Convey("and cannot be touched anymore", func() {
				for _, fn := range []string{multisig.FnConfirm, multisig.FnRevoke, multisig.FnExecute, multisig.FnCancel} {
					err := w.onIndex(a, fn, index)
					So(errors.ErrState.Is(err), ShouldBeTrue)
				}
				So(balance(host, d), ShouldEqual, 15000)
			})

			Convey("a fresh operation confirmed by B only is not executed", func() {
				index, err := w.submitTx(b, d, 1000)
				So(err, ShouldBeNil)
				So(index, ShouldEqual, 2)
				So(w.onIndex(b, multisig.FnConfirm, index), ShouldBeNil)

				err = w.onIndex(b, multisig.FnExecute, index)
				So(errors.ErrState.Is(err), ShouldBeTrue)
				So(w.has(index), ShouldBeTrue)

				Convey("until C confirms it too", func() {
					So(w.onIndex(c, multisig.FnConfirm, index), ShouldBeNil)
					So(w.onIndex(d, multisig.FnExecute, index), ShouldBeNil)
					So(balance(host, d), ShouldEqual, 16000)
					So(balance(host, w.wallet), ShouldEqual, 4000)
				})
			})
		})

		Convey("A double confirmation fails and changes nothing", func() {
			index, err := w.submitTx(c, d, 1)
			So(err, ShouldBeNil)
			So(w.onIndex(b, multisig.FnConfirm, index), ShouldBeNil)
			before, err := w.operation(index)
			So(err, ShouldBeNil)

			err = w.onIndex(b, multisig.FnConfirm, index)
			So(errors.ErrState.Is(err), ShouldBeTrue)
			after, err := w.operation(index)
			So(err, ShouldBeNil)
			So(after, ShouldResemble, before)
		})

		Convey("Non owners cannot vote", func() {
			index, err := w.submitTx(d, d, 1)
			So(err, ShouldBeNil)
			So(errors.ErrUnauthorized.Is(w.onIndex(d, multisig.FnConfirm, index)), ShouldBeTrue)
			So(errors.ErrUnauthorized.Is(w.onIndex(d, multisig.FnRevoke, index)), ShouldBeTrue)
		})

		Convey("An operation is canceled only by its creator", func() {
			index, err := w.submitTx(b, d, 10)
			So(err, ShouldBeNil)

			err = w.onIndex(c, multisig.FnCancel, index)
			So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)
			So(w.has(index), ShouldBeTrue)

			So(w.onIndex(b, multisig.FnCancel, index), ShouldBeNil)
			So(w.has(index), ShouldBeFalse)

			next, err := w.submitTx(b, d, 10)
			So(err, ShouldBeNil)
			So(next, ShouldEqual, index+1)
		})

		Convey("A failing transfer leaves the operation untouched", func() {
			index, err := w.submitTx(a, d, 20001)
			So(err, ShouldBeNil)
			So(w.onIndex(a, multisig.FnConfirm, index), ShouldBeNil)

			err = w.onIndex(a, multisig.FnExecute, index)
			So(errors.ErrInsufficientAmount.Is(err), ShouldBeTrue)
			So(w.has(index), ShouldBeTrue)
			op, err := w.operation(index)
			So(err, ShouldBeNil)
			So(op.WeightedSum, ShouldEqual, 2)
			So(balance(host, w.wallet), ShouldEqual, 20000)
			So(balance(host, d), ShouldEqual, 0)
		})

		Convey("A reentrant execution of a call is rejected", func() {
			thief, err := host.Deploy(ctx, "attacker", d, nil, 0)
			So(err, ShouldBeNil)

			// the index is known up front: it is the first operation
			payload := append(append([]byte{}, w.wallet...), mustArgs(&multisig.IndexMsg{Index: 1})...)

			Convey("when the attacker swallows the nested failure", func() {
				index, err := w.submitCall(d, thief, 5000, "collect", payload)
				So(err, ShouldBeNil)
				So(index, ShouldEqual, 1)
				So(w.onIndex(b, multisig.FnConfirm, index), ShouldBeNil)
				So(w.onIndex(c, multisig.FnConfirm, index), ShouldBeNil)

				So(w.onIndex(d, multisig.FnExecute, index), ShouldBeNil)
				So(balance(host, thief), ShouldEqual, 5000)
				So(balance(host, w.wallet), ShouldEqual, 15000)
				So(w.has(index), ShouldBeFalse)

				res, err := host.Query(ctx, d, thief, covenant.Call{Function: "status"})
				So(err, ShouldBeNil)
				So(res.Data, ShouldResemble, []byte{byte(errors.ErrState.ABCICode())})
			})

			Convey("when the attacker propagates the nested failure", func() {
				index, err := w.submitCall(d, thief, 5000, "collectStrict", payload)
				So(err, ShouldBeNil)
				So(w.onIndex(a, multisig.FnConfirm, index), ShouldBeNil)

				err = w.onIndex(d, multisig.FnExecute, index)
				So(errors.ErrState.Is(err), ShouldBeTrue)
				So(balance(host, thief), ShouldEqual, 0)
				So(balance(host, w.wallet), ShouldEqual, 20000)
				So(w.has(index), ShouldBeTrue)
			})
		})

		Convey("Live operations are listed in ascending order", func() {
			for i := 0; i < 3; i++ {
				_, err := w.submitTx(b, d, 1)
				So(err, ShouldBeNil)
			}
			So(w.onIndex(b, multisig.FnCancel, 2), ShouldBeNil)

			var list multisig.IndicesResult
			So(w.query(multisig.FnListIndices, nil, &list), ShouldBeNil)
			So(list.Indices, ShouldResemble, []uint64{1, 3})
			So(list.LastIndex, ShouldEqual, 3)
		})
	})
}

func mustArgs(msg interface{}) []byte {
	bz, err := multisig.Marshal(msg)
	So(err, ShouldBeNil)
	return bz
}

func TestWalletConstruction(t *testing.T) {
	Convey("Deploying a wallet with bad parameters fails", t, func() {
		host := newHost()
		a := covenanttest.NewAddress()

		cases := []struct {
			name string
			msg  *multisig.ConstructMsg
		}{
			{"zero threshold", &multisig.ConstructMsg{Threshold: 0, Owners: [][]byte{a}}},
			{"threshold too high", &multisig.ConstructMsg{Threshold: 3, Owners: [][]byte{a, a}}},
			{"no owners", &multisig.ConstructMsg{Threshold: 1}},
		}
		for _, tc := range cases {
			msg := tc.msg
			Convey(tc.name, func() {
				args, err := multisig.Marshal(msg)
				So(err, ShouldBeNil)
				_, err = host.Deploy(context.Background(), multisig.CodeName, a, args, 0)
				So(multisig.ErrConstruction.Is(err), ShouldBeTrue)
				So(host.CodeOf(chain.ContractAddress(1)), ShouldEqual, "")
			})
		}
	})
}

func TestGenesisWallets(t *testing.T) {
	Convey("Wallets and balances are loaded from genesis", t, func() {
		host := newHost()
		a, b := covenanttest.NewAddress(), covenanttest.NewAddress()
		first := chain.ContractAddress(1)

		genesis := `{
			"cash": [{"address": "` + first.String() + `", "amount": "700"}],
			"multisig": [
				{"threshold": 1, "owners": ["` + a.String() + `", "` + b.String() + `"]},
				{"threshold": 2, "owners": ["` + b.String() + `", "` + b.String() + `"]}
			]
		}`
		var opts covenant.Options
		So(json.Unmarshal([]byte(genesis), &opts), ShouldBeNil)

		err := host.InitGenesis(context.Background(), opts,
			cash.Initializer{}, multisig.Initializer{Deployer: host})
		So(err, ShouldBeNil)

		So(host.CodeOf(first), ShouldEqual, multisig.CodeName)
		So(host.CodeOf(chain.ContractAddress(2)), ShouldEqual, multisig.CodeName)
		So(balance(host, first), ShouldEqual, 700)

		w := client{host: host, wallet: chain.ContractAddress(2)}
		var threshold multisig.ThresholdResult
		So(w.query(multisig.FnGetThreshold, nil, &threshold), ShouldBeNil)
		So(threshold.Threshold, ShouldEqual, 2)

		Convey("an invalid wallet stops the genesis", func() {
			bad := covenant.Options{"multisig": json.RawMessage(`[{"threshold": 0, "owners": ["` + a.String() + `"]}]`)}
			other := newHost()
			err := other.InitGenesis(context.Background(), bad, multisig.Initializer{Deployer: other})
			So(multisig.ErrConstruction.Is(err), ShouldBeTrue)
		})

		Convey("a failing wallet reverts the wallets listed before it", func() {
			mixed := covenant.Options{"multisig": json.RawMessage(`[
				{"threshold": 1, "owners": ["` + a.String() + `"]},
				{"threshold": 0, "owners": ["` + b.String() + `"]}
			]`)}
			other := newHost()
			err := other.InitGenesis(context.Background(), mixed, multisig.Initializer{Deployer: other})
			So(multisig.ErrConstruction.Is(err), ShouldBeTrue)
			So(other.CodeOf(chain.ContractAddress(1)), ShouldEqual, "")
			So(other.CodeOf(chain.ContractAddress(2)), ShouldEqual, "")
		})
	})
}

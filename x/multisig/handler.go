package multisig

import (
	"github.com/iov-one/covenant"
	"github.com/iov-one/covenant/chain"
	"github.com/iov-one/covenant/coin"
	"github.com/iov-one/covenant/errors"
)

// CodeName is the name the wallet code is registered under.
const CodeName = "multisig"

// RegisterCode adds the wallet code to the host registry.
func RegisterCode(r *chain.Registry) {
	r.Register(CodeName, NewHandler())
}

// Handler decodes call arguments, dispatches them to the controller and
// encodes the results.
type Handler struct {
	ctrl Controller
}

var _ covenant.Contract = Handler{}

// NewHandler returns a wallet contract with the default controller.
func NewHandler() Handler {
	return Handler{ctrl: NewController()}
}

// Invoke implements covenant.Contract.
func (h Handler) Invoke(ctx covenant.Context, env covenant.Env, call covenant.Call) (*covenant.Result, error) {
	ctx = covenant.WithLogInfo(ctx, "wallet", env.Self(), "function", call.Function)

	switch call.Function {
	case FnConstruct:
		var msg ConstructMsg
		if err := decode(call.Args, &msg); err != nil {
			return nil, err
		}
		return empty(h.ctrl.Construct(ctx, env, msg.Threshold, msg.OwnerAddresses()))
	case FnDeposit:
		return empty(h.ctrl.Deposit(ctx, env))
	case FnSubmitTransaction:
		var msg SubmitTransactionMsg
		if err := decode(call.Args, &msg); err != nil {
			return nil, err
		}
		index, err := h.ctrl.SubmitTransaction(ctx, env, msg.Target, coin.Amount(msg.Amount))
		if err != nil {
			return nil, err
		}
		return encode(&IndexMsg{Index: index})
	case FnSubmitCall:
		var msg SubmitCallMsg
		if err := decode(call.Args, &msg); err != nil {
			return nil, err
		}
		index, err := h.ctrl.SubmitCall(ctx, env, msg.Target, coin.Amount(msg.Amount), msg.Function, msg.Args)
		if err != nil {
			return nil, err
		}
		return encode(&IndexMsg{Index: index})
	case FnConfirm:
		index, err := decodeIndex(call.Args)
		if err != nil {
			return nil, err
		}
		return empty(h.ctrl.Confirm(ctx, env, index))
	case FnRevoke:
		index, err := decodeIndex(call.Args)
		if err != nil {
			return nil, err
		}
		return empty(h.ctrl.Revoke(ctx, env, index))
	case FnExecute:
		index, err := decodeIndex(call.Args)
		if err != nil {
			return nil, err
		}
		return h.ctrl.Execute(ctx, env, index)
	case FnCancel:
		index, err := decodeIndex(call.Args)
		if err != nil {
			return nil, err
		}
		return empty(h.ctrl.Cancel(ctx, env, index))
	case FnGetOperation:
		index, err := decodeIndex(call.Args)
		if err != nil {
			return nil, err
		}
		op, err := h.ctrl.Operation(env.Store(), index)
		if err != nil {
			return nil, err
		}
		return encode(op)
	case FnHasOperation:
		index, err := decodeIndex(call.Args)
		if err != nil {
			return nil, err
		}
		return encode(&BoolResult{Value: h.ctrl.HasOperation(env.Store(), index)})
	case FnListIndices:
		return encode(&IndicesResult{
			Indices:   h.ctrl.OperationIndices(env.Store()),
			LastIndex: h.ctrl.LastIndex(env.Store()),
		})
	case FnListOwners:
		owners, err := h.ctrl.Owners(env.Store())
		if err != nil {
			return nil, err
		}
		res := OwnersResult{Owners: make([][]byte, len(owners))}
		for i, o := range owners {
			res.Owners[i] = o
		}
		return encode(&res)
	case FnGetThreshold:
		threshold, err := h.ctrl.Threshold(env.Store())
		if err != nil {
			return nil, err
		}
		return encode(&ThresholdResult{Threshold: threshold})
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown function %q", call.Function)
	}
}

func decode(bz []byte, msg interface{}) error {
	if err := Unmarshal(bz, msg); err != nil {
		return err
	}
	if v, ok := msg.(covenant.Validater); ok {
		return v.Validate()
	}
	return nil
}

func decodeIndex(bz []byte) (uint64, error) {
	var msg IndexMsg
	if err := Unmarshal(bz, &msg); err != nil {
		return 0, err
	}
	return msg.Index, nil
}

func encode(msg interface{}) (*covenant.Result, error) {
	bz, err := Marshal(msg)
	if err != nil {
		return nil, err
	}
	return &covenant.Result{Data: bz}, nil
}

func empty(err error) (*covenant.Result, error) {
	if err != nil {
		return nil, err
	}
	return &covenant.Result{}, nil
}

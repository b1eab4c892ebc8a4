package multisig

import (
	"strconv"

	"github.com/iov-one/covenant"
	"github.com/iov-one/covenant/coin"
)

// Event types emitted by the wallet.
const (
	EventDeposit = "multisig/deposit"
	EventSubmit  = "multisig/submit"
	EventConfirm = "multisig/confirm"
	EventRevoke  = "multisig/revoke"
	EventExecute = "multisig/execute"
	EventCancel  = "multisig/cancel"
)

func depositEvent(caller covenant.Address, amount coin.Amount) covenant.Event {
	return covenant.NewEvent(EventDeposit).
		With("caller", caller.String()).
		With("amount", amount.String())
}

func operationEvent(typ string, caller covenant.Address, op *Operation) covenant.Event {
	e := covenant.NewEvent(typ).
		With("caller", caller.String()).
		With("index", strconv.FormatUint(op.Index, 10)).
		With("target", covenant.Address(op.Target).String()).
		With("amount", coin.Amount(op.Amount).String())
	if op.IsCall() {
		e = e.With("function", op.Function)
	}
	return e
}

func voteEvent(typ string, caller covenant.Address, op *Operation) covenant.Event {
	return covenant.NewEvent(typ).
		With("caller", caller.String()).
		With("index", strconv.FormatUint(op.Index, 10)).
		With("weighted_sum", strconv.FormatUint(uint64(op.WeightedSum), 10))
}

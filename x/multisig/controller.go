package multisig

import (
	"github.com/iov-one/covenant"
	"github.com/iov-one/covenant/coin"
	"github.com/iov-one/covenant/errors"
)

// Controller is the operation lifecycle engine. Every method runs inside a
// single host call and relies on the host to discard all writes if an error
// is returned.
type Controller struct {
	owners OwnerRegistry
	ops    OperationStore
}

// NewController returns a controller using the default storage layout.
func NewController() Controller {
	return Controller{
		ops: NewOperationStore(),
	}
}

// Construct sets up the wallet. The weight of every owner is the number of
// its occurrences in owners.
func (c Controller) Construct(ctx covenant.Context, env covenant.Env, threshold uint32, owners []covenant.Address) error {
	if err := c.owners.Register(env.Store(), threshold, owners); err != nil {
		return err
	}
	covenant.GetLogger(ctx).Debug("wallet constructed",
		"wallet", env.Self(), "threshold", threshold, "owners", len(owners))
	return nil
}

// Deposit accepts coins attached to the call. The host credits them before
// the wallet runs, so all that is left is the audit record.
func (c Controller) Deposit(ctx covenant.Context, env covenant.Env) error {
	env.Emit(depositEvent(env.Caller(), env.Value()))
	return nil
}

// SubmitTransaction registers a pending transfer of amount to target and
// returns its index.
func (c Controller) SubmitTransaction(ctx covenant.Context, env covenant.Env, target covenant.Address, amount coin.Amount) (uint64, error) {
	return c.submit(env, &Operation{
		Target: target,
		Amount: uint64(amount),
	})
}

// SubmitCall registers a pending call of function on target, with amount
// attached, and returns its index.
func (c Controller) SubmitCall(ctx covenant.Context, env covenant.Env, target covenant.Address, amount coin.Amount, function string, args []byte) (uint64, error) {
	if function == "" {
		return 0, errors.Wrap(errors.ErrInput, "call without a function name")
	}
	return c.submit(env, &Operation{
		Target:   target,
		Amount:   uint64(amount),
		Function: function,
		Args:     args,
	})
}

func (c Controller) submit(env covenant.Env, op *Operation) (uint64, error) {
	db := env.Store()
	if !c.owners.Constructed(db) {
		return 0, errors.Wrap(errors.ErrState, "wallet not constructed")
	}
	op.Index = c.ops.NextIndex(db)
	op.Creator = env.Caller()
	if err := c.ops.Save(db, op); err != nil {
		return 0, err
	}
	env.Emit(operationEvent(EventSubmit, env.Caller(), op))
	submittedTotal.WithLabelValues(op.Kind()).Inc()
	return op.Index, nil
}

// Confirm adds the vote of the caller to the operation.
func (c Controller) Confirm(ctx covenant.Context, env covenant.Env, index uint64) error {
	db := env.Store()
	caller := env.Caller()
	weight := c.owners.WeightOf(db, caller)
	if weight == 0 {
		return errors.Wrapf(errors.ErrUnauthorized, "%s is not an owner", caller)
	}
	op, err := c.ops.Get(db, index)
	if err != nil {
		return err
	}
	if op.HasConfirmed(caller) {
		return errors.Wrapf(errors.ErrState, "operation %d: already confirmed by %s", index, caller)
	}

	op.ConfirmedOwners = append(op.ConfirmedOwners, caller)
	op.WeightedSum += weight
	if err := c.ops.Save(db, op); err != nil {
		return err
	}
	env.Emit(voteEvent(EventConfirm, caller, op))
	votesTotal.WithLabelValues("confirm").Inc()
	return nil
}

// Revoke withdraws the vote of the caller from the operation.
func (c Controller) Revoke(ctx covenant.Context, env covenant.Env, index uint64) error {
	db := env.Store()
	caller := env.Caller()
	weight := c.owners.WeightOf(db, caller)
	if weight == 0 {
		return errors.Wrapf(errors.ErrUnauthorized, "%s is not an owner", caller)
	}
	op, err := c.ops.Get(db, index)
	if err != nil {
		return err
	}
	pos := op.confirmation(caller)
	if pos < 0 {
		return errors.Wrapf(errors.ErrState, "operation %d: not confirmed by %s", index, caller)
	}
	if weight > op.WeightedSum {
		err := errors.Wrapf(ErrInvariant,
			"operation %d: weighted sum %d is lower than the weight %d of %s",
			index, op.WeightedSum, weight, caller)
		covenant.GetLogger(ctx).Error("corrupted operation", "wallet", env.Self(), "err", err)
		return err
	}

	op.ConfirmedOwners = append(op.ConfirmedOwners[:pos], op.ConfirmedOwners[pos+1:]...)
	op.WeightedSum -= weight
	if err := c.ops.Save(db, op); err != nil {
		return err
	}
	env.Emit(voteEvent(EventRevoke, caller, op))
	votesTotal.WithLabelValues("revoke").Inc()
	return nil
}

// Execute performs a validated operation. The operation is removed before
// the transfer or the call happens, so a reentrant call cannot execute it
// again. The result of the called contract is returned for call operations.
func (c Controller) Execute(ctx covenant.Context, env covenant.Env, index uint64) (*covenant.Result, error) {
	db := env.Store()
	op, err := c.ops.Get(db, index)
	if err != nil {
		return nil, err
	}
	ok, err := c.IsValidated(db, op)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Wrapf(errors.ErrState, "operation %d: insufficiently confirmed", index)
	}

	c.ops.Delete(db, index)
	// From here on the wallet may be reentered.

	target := covenant.Address(op.Target)
	amount := coin.Amount(op.Amount)
	res := &covenant.Result{}
	if op.IsCall() {
		out, err := env.Call(ctx, target, op.Call(), amount)
		if err != nil {
			return nil, errors.Wrapf(err, "operation %d: call %s", index, op.Function)
		}
		res.Data = out.Data
	} else {
		if err := env.Transfer(target, amount); err != nil {
			return nil, errors.Wrapf(err, "operation %d: transfer", index)
		}
	}

	env.Emit(operationEvent(EventExecute, env.Caller(), op))
	executedTotal.WithLabelValues(op.Kind()).Inc()
	return res, nil
}

// Cancel removes an operation. Only its creator can do that.
func (c Controller) Cancel(ctx covenant.Context, env covenant.Env, index uint64) error {
	db := env.Store()
	op, err := c.ops.Get(db, index)
	if err != nil {
		return err
	}
	if !env.Caller().Equals(op.Creator) {
		return errors.Wrapf(errors.ErrUnauthorized, "operation %d: only the creator can cancel", index)
	}
	c.ops.Delete(db, index)
	env.Emit(operationEvent(EventCancel, env.Caller(), op))
	canceledTotal.Inc()
	return nil
}

// IsValidated returns true if the confirmations of op reach the threshold.
func (c Controller) IsValidated(db covenant.ReadOnlyKVStore, op *Operation) (bool, error) {
	threshold, err := c.owners.Threshold(db)
	if err != nil {
		return false, err
	}
	return op.WeightedSum >= threshold, nil
}

// Operation returns the operation stored under index.
func (c Controller) Operation(db covenant.ReadOnlyKVStore, index uint64) (*Operation, error) {
	return c.ops.Get(db, index)
}

// HasOperation returns true if an operation with index is pending.
func (c Controller) HasOperation(db covenant.ReadOnlyKVStore, index uint64) bool {
	return c.ops.Has(db, index)
}

// OperationIndices returns the indices of all pending operations, ascending.
func (c Controller) OperationIndices(db covenant.ReadOnlyKVStore) []uint64 {
	return c.ops.Indices(db)
}

// LastIndex returns the most recently issued index, including operations
// that were already executed or canceled. It is 0 before the first submit.
func (c Controller) LastIndex(db covenant.ReadOnlyKVStore) uint64 {
	return c.ops.LastIndex(db)
}

// Owners returns the distinct owners of the wallet.
func (c Controller) Owners(db covenant.ReadOnlyKVStore) ([]covenant.Address, error) {
	return c.owners.Owners(db)
}

// Threshold returns the weight needed to validate an operation.
func (c Controller) Threshold(db covenant.ReadOnlyKVStore) (uint32, error) {
	return c.owners.Threshold(db)
}

// WeightOf returns the vote weight of addr, zero for non owners.
func (c Controller) WeightOf(db covenant.ReadOnlyKVStore, addr covenant.Address) uint32 {
	return c.owners.WeightOf(db, addr)
}

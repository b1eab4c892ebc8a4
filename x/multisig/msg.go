package multisig

import (
	amino "github.com/tendermint/go-amino"

	"github.com/iov-one/covenant"
	"github.com/iov-one/covenant/errors"
)

// Entry points of the wallet contract.
const (
	FnConstruct         = "construct"
	FnDeposit           = "deposit"
	FnSubmitTransaction = "submitTransaction"
	FnSubmitCall        = "submitCall"
	FnConfirm           = "confirmOperation"
	FnRevoke            = "revokeConfirmation"
	FnExecute           = "executeOperation"
	FnCancel            = "cancelOperation"
	FnGetOperation      = "getOperation"
	FnHasOperation      = "hasOperation"
	FnListIndices       = "listOperationIndices"
	FnListOwners        = "listOwners"
	FnGetThreshold      = "getThreshold"
)

var cdc = amino.NewCodec()

// Marshal encodes call arguments and results.
func Marshal(msg interface{}) ([]byte, error) {
	bz, err := cdc.MarshalBinaryBare(msg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return bz, nil
}

// Unmarshal decodes call arguments and results. An empty buffer decodes to
// the zero value, as that is how a message with only default fields is
// encoded.
func Unmarshal(bz []byte, msg interface{}) error {
	if len(bz) == 0 {
		return nil
	}
	if err := cdc.UnmarshalBinaryBare(bz, msg); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot decode %T: %s", msg, err)
	}
	return nil
}

// ConstructMsg are the constructor arguments. The threshold is an u8 value.
type ConstructMsg struct {
	Threshold uint32
	Owners    [][]byte
}

// Validate checks the threshold fits into an u8. Everything else is checked
// on construction.
func (m ConstructMsg) Validate() error {
	if m.Threshold > 255 {
		return errors.Wrapf(ErrConstruction, "threshold %d does not fit u8", m.Threshold)
	}
	return nil
}

// OwnerAddresses returns the owner list as addresses.
func (m ConstructMsg) OwnerAddresses() []covenant.Address {
	res := make([]covenant.Address, len(m.Owners))
	for i, o := range m.Owners {
		res[i] = o
	}
	return res
}

// SubmitTransactionMsg requests a transfer of Amount to Target.
type SubmitTransactionMsg struct {
	Target []byte
	Amount uint64
}

// Validate checks the target address.
func (m SubmitTransactionMsg) Validate() error {
	return errors.Wrap(covenant.Address(m.Target).Validate(), "target")
}

// SubmitCallMsg requests a call of Function on Target with Amount attached.
type SubmitCallMsg struct {
	Target   []byte
	Amount   uint64
	Function string
	Args     []byte
}

// Validate checks the target address and the function name. All problems
// found are reported together.
func (m SubmitCallMsg) Validate() error {
	errs := errors.Wrap(covenant.Address(m.Target).Validate(), "target")
	if m.Function == "" {
		return errors.Append(errs, errors.Wrap(errors.ErrInput, "function name required"))
	}
	return errors.Append(errs, covenant.Call{Function: m.Function, Args: m.Args}.Validate())
}

// IndexMsg selects an operation. It is also the result of submission.
type IndexMsg struct {
	Index uint64
}

// BoolResult is returned by hasOperation.
type BoolResult struct {
	Value bool
}

// IndicesResult is returned by listOperationIndices.
type IndicesResult struct {
	Indices []uint64
	// LastIndex is the most recently issued index, live or not.
	LastIndex uint64
}

// OwnersResult is returned by listOwners.
type OwnersResult struct {
	Owners [][]byte
}

// ThresholdResult is returned by getThreshold.
type ThresholdResult struct {
	Threshold uint32
}

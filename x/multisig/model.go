package multisig

import (
	"github.com/gogo/protobuf/proto"

	"github.com/iov-one/covenant"
	"github.com/iov-one/covenant/errors"
)

const (
	// MaxOwners is the maximum length of the owner list given to the
	// constructor. It also bounds the weight of a single owner and the
	// threshold.
	MaxOwners = 255
)

// Operation is a pending transfer or contract call awaiting confirmations.
// An operation without a function name is a transaction.
type Operation struct {
	Index           uint64   `protobuf:"varint,1,opt,name=index,proto3" json:"index"`
	Creator         []byte   `protobuf:"bytes,2,opt,name=creator,proto3" json:"creator"`
	Target          []byte   `protobuf:"bytes,3,opt,name=target,proto3" json:"target"`
	Amount          uint64   `protobuf:"varint,4,opt,name=amount,proto3" json:"amount"`
	Function        string   `protobuf:"bytes,5,opt,name=function,proto3" json:"function,omitempty"`
	Args            []byte   `protobuf:"bytes,6,opt,name=args,proto3" json:"args,omitempty"`
	ConfirmedOwners [][]byte `protobuf:"bytes,7,rep,name=confirmed_owners,json=confirmedOwners,proto3" json:"confirmed_owners"`
	WeightedSum     uint32   `protobuf:"varint,8,opt,name=weighted_sum,json=weightedSum,proto3" json:"weighted_sum"`
}

func (m *Operation) Reset()         { *m = Operation{} }
func (m *Operation) String() string { return proto.CompactTextString(m) }
func (*Operation) ProtoMessage()    {}

// Validate checks the operation is consistent before it is saved.
func (m *Operation) Validate() error {
	var errs error
	if m.Index == 0 {
		errs = errors.Append(errs, errors.Wrap(errors.ErrModel, "missing index"))
	}
	errs = errors.Append(errs,
		errors.Wrap(covenant.Address(m.Creator).Validate(), "creator"),
		errors.Wrap(covenant.Address(m.Target).Validate(), "target"),
	)
	if m.IsCall() {
		errs = errors.Append(errs, m.Call().Validate())
	} else if len(m.Args) != 0 {
		errs = errors.Append(errs, errors.Wrap(errors.ErrModel, "transaction with call arguments"))
	}
	seen := make(map[string]bool, len(m.ConfirmedOwners))
	for _, o := range m.ConfirmedOwners {
		if seen[string(o)] {
			errs = errors.Append(errs, errors.Wrapf(errors.ErrDuplicate, "confirmation of %s", covenant.Address(o)))
			break
		}
		seen[string(o)] = true
	}
	return errs
}

// IsCall returns true for operations calling a contract function, false
// for plain transactions.
func (m *Operation) IsCall() bool {
	return m.Function != ""
}

// Call returns the contract call performed by this operation.
func (m *Operation) Call() covenant.Call {
	return covenant.Call{Function: m.Function, Args: m.Args}
}

// HasConfirmed returns true if owner is among the confirmations.
func (m *Operation) HasConfirmed(owner covenant.Address) bool {
	return m.confirmation(owner) >= 0
}

func (m *Operation) confirmation(owner covenant.Address) int {
	for i, o := range m.ConfirmedOwners {
		if owner.Equals(o) {
			return i
		}
	}
	return -1
}

// Kind returns a short label of the operation type.
func (m *Operation) Kind() string {
	if m.IsCall() {
		return "call"
	}
	return "transaction"
}

// OwnerList is the distinct owners of a wallet, in the order of their first
// occurrence in the constructor list.
type OwnerList struct {
	Owners [][]byte `protobuf:"bytes,1,rep,name=owners,proto3" json:"owners"`
}

func (m *OwnerList) Reset()         { *m = OwnerList{} }
func (m *OwnerList) String() string { return proto.CompactTextString(m) }
func (*OwnerList) ProtoMessage()    {}

// Validate checks all owners are valid and distinct.
func (m *OwnerList) Validate() error {
	if len(m.Owners) == 0 {
		return errors.Wrap(errors.ErrEmpty, "owners")
	}
	seen := make(map[string]bool, len(m.Owners))
	for i, o := range m.Owners {
		if err := covenant.Address(o).Validate(); err != nil {
			return errors.Wrapf(err, "owner %d", i)
		}
		if seen[string(o)] {
			return errors.Wrapf(errors.ErrDuplicate, "owner %d", i)
		}
		seen[string(o)] = true
	}
	return nil
}

// Addresses returns the owners as addresses.
func (m *OwnerList) Addresses() []covenant.Address {
	res := make([]covenant.Address, len(m.Owners))
	for i, o := range m.Owners {
		res[i] = o
	}
	return res
}

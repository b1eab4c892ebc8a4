package covenanttest

import (
	"github.com/iov-one/covenant"
	"github.com/iov-one/covenant/coin"
	"github.com/iov-one/covenant/errors"
	"github.com/iov-one/covenant/store"
)

// Transfer is a coin movement recorded by Env.
type Transfer struct {
	To     covenant.Address
	Amount coin.Amount
}

// OutboundCall is a contract call recorded by Env.
type OutboundCall struct {
	Target covenant.Address
	Call   covenant.Call
	Amount coin.Amount
}

// CallHandler can be set on Env to script the result of outbound calls.
type CallHandler func(ctx covenant.Context, target covenant.Address, call covenant.Call, amount coin.Amount) (*covenant.Result, error)

// Env is a scripted covenant.Env implementation. It keeps the contract
// storage in memory and records all side effects instead of performing
// them on a ledger. It does not roll anything back on failure, use the
// chain package for that.
type Env struct {
	KV         covenant.KVStore
	SelfAddr   covenant.Address
	CallerAddr covenant.Address
	Attached   coin.Amount
	Funds      coin.Amount
	OnCall     CallHandler
	Transfers  []Transfer
	Calls      []OutboundCall
	Events     []covenant.Event
}

var _ covenant.Env = (*Env)(nil)

// NewEnv returns an environment of a contract under a fresh address with
// an empty store and no funds.
func NewEnv() *Env {
	return &Env{
		KV:       store.MemStore(),
		SelfAddr: NewAddress(),
	}
}

// As returns the same environment with the caller replaced.
func (e *Env) As(caller covenant.Address) *Env {
	e.CallerAddr = caller
	e.Attached = 0
	return e
}

func (e *Env) Store() covenant.KVStore   { return e.KV }
func (e *Env) Self() covenant.Address    { return e.SelfAddr }
func (e *Env) Caller() covenant.Address  { return e.CallerAddr }
func (e *Env) Value() coin.Amount        { return e.Attached }
func (e *Env) Emit(event covenant.Event) { e.Events = append(e.Events, event) }

func (e *Env) Balance() (coin.Amount, error) {
	return e.Funds, nil
}

// Transfer records the transfer and takes the amount from Funds.
func (e *Env) Transfer(to covenant.Address, amount coin.Amount) error {
	if err := to.Validate(); err != nil {
		return err
	}
	left, err := e.Funds.Sub(amount)
	if err != nil {
		return err
	}
	e.Funds = left
	e.Transfers = append(e.Transfers, Transfer{To: to, Amount: amount})
	return nil
}

// Call records the call, takes the amount from Funds and delegates to
// OnCall if set.
func (e *Env) Call(ctx covenant.Context, target covenant.Address, call covenant.Call, amount coin.Amount) (*covenant.Result, error) {
	if err := call.Validate(); err != nil {
		return nil, err
	}
	left, err := e.Funds.Sub(amount)
	if err != nil {
		return nil, errors.Wrap(err, "attached value")
	}
	e.Funds = left
	e.Calls = append(e.Calls, OutboundCall{Target: target, Call: call, Amount: amount})
	if e.OnCall != nil {
		return e.OnCall(ctx, target, call, amount)
	}
	return &covenant.Result{}, nil
}

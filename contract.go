package covenant

import (
	"regexp"

	"github.com/iov-one/covenant/coin"
	"github.com/iov-one/covenant/errors"
	"github.com/tendermint/tendermint/libs/common"
)

// isFunctionName is the RegExp to ensure valid contract function names.
var isFunctionName = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]{0,63}$`).MatchString

// Call is a request to run a single function of a contract. Args is an opaque
// buffer that only the called contract knows how to decode.
type Call struct {
	Function string
	Args     []byte
}

// Validate returns an error if the function name is not acceptable.
func (c Call) Validate() error {
	if !isFunctionName(c.Function) {
		return errors.Wrapf(errors.ErrInput, "function name %q", c.Function)
	}
	return nil
}

// Result captures any non-error result of a contract call.
type Result struct {
	// Data is a machine-parseable return value, like id of created entity
	Data []byte
	// Log is human-readable informational string
	Log string
	// Events contains all audit events emitted during the call, including
	// those of nested calls that succeeded.
	Events []Event
}

// Event is an advisory audit record emitted by a contract. It is not part of
// the correctness contract of any operation.
type Event struct {
	Type       string
	Attributes []common.KVPair
}

// NewEvent returns an event of given type and no attributes.
func NewEvent(typ string) Event {
	return Event{Type: typ}
}

// With returns a copy of the event with the attribute appended.
func (e Event) With(key, value string) Event {
	attrs := make([]common.KVPair, len(e.Attributes), len(e.Attributes)+1)
	copy(attrs, e.Attributes)
	e.Attributes = append(attrs, common.KVPair{Key: []byte(key), Value: []byte(value)})
	return e
}

// Attr returns the value of the first attribute with given key.
func (e Event) Attr(key string) (string, bool) {
	for _, a := range e.Attributes {
		if string(a.Key) == key {
			return string(a.Value), true
		}
	}
	return "", false
}

// Contract is a program deployed under an address. Each call into a contract
// executes to completion as a single unit of work. Any returned error makes
// the host discard all state changes made during that call.
type Contract interface {
	Invoke(ctx Context, env Env, call Call) (*Result, error)
}

// ContractFunc is an adapter to allow the use of ordinary functions as
// contracts.
type ContractFunc func(ctx Context, env Env, call Call) (*Result, error)

// Invoke calls fn(ctx, env, call).
func (fn ContractFunc) Invoke(ctx Context, env Env, call Call) (*Result, error) {
	return fn(ctx, env, call)
}

// Env is the view a contract has of the host platform during a single call.
type Env interface {
	// Store returns the private storage of the running contract.
	Store() KVStore

	// Self returns the address of the running contract.
	Self() Address

	// Caller returns the address that issued this call. For nested calls
	// this is the address of the calling contract.
	Caller() Address

	// Value returns the amount of coins attached to this call. Those coins
	// are already credited to the running contract when Invoke is called.
	Value() coin.Amount

	// Balance returns the custodial balance of the running contract.
	Balance() (coin.Amount, error)

	// Transfer moves coins from the running contract to given address.
	Transfer(to Address, amount coin.Amount) error

	// Call invokes a function on another contract, attaching given amount
	// of coins taken from the running contract. The target may call back
	// into the running contract before Call returns.
	Call(ctx Context, target Address, call Call, amount coin.Amount) (*Result, error)

	// Emit records an audit event. Events are dropped together with the
	// state changes if the call fails.
	Emit(event Event)
}

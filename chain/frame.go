package chain

import (
	"github.com/iov-one/covenant"
	"github.com/iov-one/covenant/coin"
	"github.com/iov-one/covenant/store"
)

// frame is the environment of a single contract call. It lives only for
// the duration of that call and writes into the call savepoint.
type frame struct {
	chain  *Chain
	db     covenant.KVCacheWrap
	self   covenant.Address
	caller covenant.Address
	value  coin.Amount
	depth  int
	events []covenant.Event
}

var _ covenant.Env = (*frame)(nil)

func (f *frame) Store() covenant.KVStore {
	return store.NewPrefixStore(f.db, stateKey(f.self))
}

func (f *frame) Self() covenant.Address   { return f.self }
func (f *frame) Caller() covenant.Address { return f.caller }
func (f *frame) Value() coin.Amount       { return f.value }

func (f *frame) Balance() (coin.Amount, error) {
	return f.chain.cash.Balance(f.db, f.self)
}

// Transfer moves coins directly on the ledger. No code of the recipient is
// executed.
func (f *frame) Transfer(to covenant.Address, amount coin.Amount) error {
	return f.chain.cash.MoveCoins(f.db, f.self, to, amount)
}

// Call runs a nested call in a savepoint on top of this frame. Events of
// the nested call are kept only if it succeeds.
func (f *frame) Call(ctx covenant.Context, target covenant.Address, call covenant.Call, amount coin.Amount) (*covenant.Result, error) {
	res, err := f.chain.call(ctx, f.db, f.self, target, call, amount, f.depth+1, false)
	if err != nil {
		return nil, err
	}
	f.events = append(f.events, res.Events...)
	return res, nil
}

func (f *frame) Emit(event covenant.Event) {
	f.events = append(f.events, event)
}

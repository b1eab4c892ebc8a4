package chain

import (
	"sync"

	"github.com/iov-one/covenant"
	"github.com/iov-one/covenant/coin"
	"github.com/iov-one/covenant/errors"
	"github.com/iov-one/covenant/orm"
	"github.com/iov-one/covenant/x/cash"
)

const (
	// Constructor is the function run exactly once, when a contract is
	// deployed. It cannot be called afterwards.
	Constructor = "construct"

	// DefaultMaxDepth limits how deep contracts may call each other.
	DefaultMaxDepth = 16
)

var (
	codePrefix  = []byte("code:")
	statePrefix = []byte("state:")
)

// Storage is the backing store of the host. Both the in-memory store and
// the iavl commit store satisfy it.
type Storage interface {
	CacheWrap() covenant.KVCacheWrap
}

// Chain is the host platform. All public methods are serialized, so no two
// calls ever interleave their storage mutations.
type Chain struct {
	mu       sync.Mutex
	storage  Storage
	registry *Registry
	cash     cash.Controller
	seq      orm.Sequence
	maxDepth int
}

// Option configures a Chain.
type Option func(*Chain)

// WithMaxDepth overrides DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(c *Chain) {
		c.maxDepth = depth
	}
}

// WithCashController overrides the default ledger controller.
func WithCashController(ctrl cash.Controller) Option {
	return func(c *Chain) {
		c.cash = ctrl
	}
}

// New returns a host running contracts from registry on top of storage.
func New(storage Storage, registry *Registry, opts ...Option) *Chain {
	c := &Chain{
		storage:  storage,
		registry: registry,
		cash:     cash.NewController(cash.NewBucket()),
		seq:      orm.NewSequence("chain", "contract"),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func codeKey(addr covenant.Address) []byte {
	return append(append([]byte{}, codePrefix...), addr...)
}

func stateKey(addr covenant.Address) []byte {
	key := append(append([]byte{}, statePrefix...), addr...)
	return append(key, ':')
}

// ContractAddress returns the address the n-th deployed contract gets.
func ContractAddress(n uint64) covenant.Address {
	return covenant.NewCondition("chain", "contract", orm.EncodeSequence(n)).Address()
}

// Deploy creates a new contract running the named code and calls its
// constructor with args on behalf of creator. Attached value is moved from
// creator to the new contract. Nothing is stored if the constructor fails.
func (c *Chain) Deploy(ctx covenant.Context, code string, creator covenant.Address, args []byte, value coin.Amount) (covenant.Address, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	root := c.storage.CacheWrap()
	addr, err := c.DeployInto(ctx, root, code, creator, args, value)
	if err != nil {
		root.Discard()
		return nil, err
	}
	root.Write()
	return addr, nil
}

// DeployInto works like Deploy, but writes the new contract into db
// instead of the host storage. The caller decides whether db is written.
// It does not take the host lock and must only be used while the caller
// owns db exclusively, for example from a genesis initializer.
func (c *Chain) DeployInto(ctx covenant.Context, db covenant.CacheableKVStore, code string, creator covenant.Address, args []byte, value coin.Amount) (covenant.Address, error) {
	if c.registry.Code(code) == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "code %q", code)
	}

	sp := db.CacheWrap()
	addr := ContractAddress(c.seq.NextInt(sp))
	sp.Set(codeKey(addr), []byte(code))

	call := covenant.Call{Function: Constructor, Args: args}
	if _, err := c.call(ctx, sp, creator, addr, call, value, 0, true); err != nil {
		sp.Discard()
		return nil, errors.Wrapf(err, "deploy %s", code)
	}
	sp.Write()
	covenant.GetLogger(ctx).Info("contract deployed", "code", code, "address", addr)
	return addr, nil
}

// Invoke runs a call on the target contract on behalf of caller. Attached
// value is moved from caller to target before the contract code runs. The
// call is all-or-nothing.
func (c *Chain) Invoke(ctx covenant.Context, caller, target covenant.Address, call covenant.Call, value coin.Amount) (*covenant.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	root := c.storage.CacheWrap()
	res, err := c.call(ctx, root, caller, target, call, value, 0, false)
	if err != nil {
		root.Discard()
		return nil, err
	}
	root.Write()
	return res, nil
}

// Query runs a call and always discards its changes.
func (c *Chain) Query(ctx covenant.Context, caller, target covenant.Address, call covenant.Call) (*covenant.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	root := c.storage.CacheWrap()
	defer root.Discard()
	return c.call(ctx, root, caller, target, call, 0, 0, false)
}

// Send moves coins between two addresses without running any code.
func (c *Chain) Send(ctx covenant.Context, from, to covenant.Address, amount coin.Amount) error {
	return c.ledger(func(db covenant.KVStore) error {
		return c.cash.MoveCoins(db, from, to, amount)
	})
}

// Mint creates new coins on the given address.
func (c *Chain) Mint(ctx covenant.Context, to covenant.Address, amount coin.Amount) error {
	return c.ledger(func(db covenant.KVStore) error {
		return c.cash.IssueCoins(db, to, amount)
	})
}

// Balance returns the coins held by addr.
func (c *Chain) Balance(addr covenant.Address) (coin.Amount, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	db := c.storage.CacheWrap()
	defer db.Discard()
	return c.cash.Balance(db, addr)
}

// CodeOf returns the code name of a deployed contract, or an empty string
// if there is no contract under addr.
func (c *Chain) CodeOf(addr covenant.Address) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	db := c.storage.CacheWrap()
	defer db.Discard()
	return string(db.Get(codeKey(addr)))
}

// InitGenesis runs all initializers one after another. Each initializer is
// atomic on its own, but a failure does not revert initializers that
// already succeeded. Initializers deploying contracts must use DeployInto
// with the store they are given.
func (c *Chain) InitGenesis(ctx covenant.Context, opts covenant.Options, inits ...covenant.Initializer) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, init := range inits {
		db := c.storage.CacheWrap()
		if err := init.FromGenesis(ctx, opts, db); err != nil {
			db.Discard()
			return errors.Wrap(err, "genesis")
		}
		db.Write()
	}
	return nil
}

func (c *Chain) ledger(fn func(covenant.KVStore) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	db := c.storage.CacheWrap()
	if err := fn(db); err != nil {
		db.Discard()
		return err
	}
	db.Write()
	return nil
}

// call executes a single contract call inside a savepoint created on top
// of parent. Only on success the savepoint is written back to parent.
func (c *Chain) call(
	ctx covenant.Context,
	parent covenant.CacheableKVStore,
	caller, target covenant.Address,
	call covenant.Call,
	value coin.Amount,
	depth int,
	deploying bool,
) (res *covenant.Result, err error) {
	defer func() { observeCall(call.Function, err) }()

	if depth > c.maxDepth {
		return nil, errors.Wrapf(errors.ErrState, "call depth %d exceeded", c.maxDepth)
	}
	if err := call.Validate(); err != nil {
		return nil, err
	}
	if call.Function == Constructor && !deploying {
		return nil, errors.Wrap(errors.ErrUnauthorized, "constructor can only run on deploy")
	}
	if err := target.Validate(); err != nil {
		return nil, errors.Wrap(err, "target")
	}

	sp := parent.CacheWrap()
	code := c.registry.Code(string(sp.Get(codeKey(target))))
	if code == nil {
		sp.Discard()
		return nil, errors.Wrapf(errors.ErrNotFound, "no contract at %s", target)
	}

	logger := covenant.GetLogger(ctx)
	logger.Debug("contract call",
		"function", call.Function,
		"caller", caller,
		"target", target,
		"depth", depth)

	if !value.IsZero() {
		if err := c.cash.MoveCoins(sp, caller, target, value); err != nil {
			sp.Discard()
			return nil, errors.Wrap(err, "attached value")
		}
	}

	f := &frame{
		chain:  c,
		db:     sp,
		self:   target,
		caller: caller,
		value:  value,
		depth:  depth,
	}
	res, err = invoke(ctx, code, f, call)
	if err != nil {
		sp.Discard()
		logger.Info("contract call failed",
			"function", call.Function,
			"target", target,
			"depth", depth,
			"err", err)
		return nil, err
	}
	sp.Write()

	if res == nil {
		res = &covenant.Result{}
	}
	res.Events = append(f.events, res.Events...)
	return res, nil
}

// invoke runs the contract code, turning a panic into an error.
func invoke(ctx covenant.Context, code covenant.Contract, env covenant.Env, call covenant.Call) (res *covenant.Result, err error) {
	defer errors.Recover(&err)
	return code.Invoke(ctx, env, call)
}

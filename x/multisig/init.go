package multisig

import (
	"github.com/iov-one/covenant"
	"github.com/iov-one/covenant/coin"
	"github.com/iov-one/covenant/errors"
)

const optKey = "multisig"

// GenesisCreator is the address deploying genesis wallets.
var GenesisCreator = covenant.NewCondition("multisig", "genesis", nil).Address()

// Deployer creates contracts in the given store. It is implemented by the
// host.
type Deployer interface {
	DeployInto(ctx covenant.Context, db covenant.CacheableKVStore, code string, creator covenant.Address, args []byte, value coin.Amount) (covenant.Address, error)
}

// GenesisWallet is used to parse the json from genesis file
type GenesisWallet struct {
	Threshold uint32             `json:"threshold"`
	Owners    []covenant.Address `json:"owners"`
}

// Initializer fulfils the Initializer interface to deploy wallets listed in
// the genesis file
type Initializer struct {
	Deployer Deployer
}

var _ covenant.Initializer = Initializer{}

// FromGenesis deploys every wallet through the host into kv. Wallets get
// addresses in the order they are listed.
func (i Initializer) FromGenesis(ctx covenant.Context, opts covenant.Options, kv covenant.KVStore) error {
	db, ok := kv.(covenant.CacheableKVStore)
	if !ok {
		return errors.Wrap(errors.ErrState, "genesis store cannot be cache wrapped")
	}
	var wallets []GenesisWallet
	if err := opts.ReadOptions(optKey, &wallets); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	for n, w := range wallets {
		owners := make([][]byte, len(w.Owners))
		for j, o := range w.Owners {
			owners[j] = o
		}
		args, err := Marshal(&ConstructMsg{Threshold: w.Threshold, Owners: owners})
		if err != nil {
			return err
		}
		addr, err := i.Deployer.DeployInto(ctx, db, CodeName, GenesisCreator, args, 0)
		if err != nil {
			return errors.Wrapf(err, "wallet %d", n)
		}
		covenant.GetLogger(ctx).Info("genesis wallet", "index", n, "address", addr)
	}
	return nil
}

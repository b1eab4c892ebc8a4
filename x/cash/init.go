package cash

import (
	"github.com/iov-one/covenant"
	"github.com/iov-one/covenant/coin"
	"github.com/iov-one/covenant/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file
// use covenant.Address, so address in hex, not base64
type GenesisAccount struct {
	Address covenant.Address `json:"address"`
	Amount  coin.Amount      `json:"amount"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ covenant.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(ctx covenant.Context, opts covenant.Options, kv covenant.KVStore) error {
	accts := []GenesisAccount{}
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	ctrl := NewController(NewBucket())
	for i, acct := range accts {
		if err := ctrl.IssueCoins(kv, acct.Address, acct.Amount); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	covenant.GetLogger(ctx).Info("cash genesis loaded", "accounts", len(accts))
	return nil
}

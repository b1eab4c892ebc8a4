package multisig

import (
	"github.com/iov-one/covenant"
	"github.com/iov-one/covenant/errors"
	"github.com/iov-one/covenant/orm"
)

var (
	thresholdKey   = []byte("threshold")
	ownersKey      = []byte("owners")
	ownerKeyPrefix = []byte("owner:")
)

// OwnerRegistry keeps the owners of a wallet, their weights and the
// threshold. It is written once by Register and never changes afterwards.
type OwnerRegistry struct{}

func ownerKey(addr covenant.Address) []byte {
	key := make([]byte, 0, len(ownerKeyPrefix)+len(addr))
	key = append(key, ownerKeyPrefix...)
	return append(key, addr...)
}

// Weights counts how many times each address is present in owners. The
// returned list holds the distinct addresses in order of first occurrence.
func Weights(owners []covenant.Address) (map[string]uint32, []covenant.Address) {
	weights := make(map[string]uint32, len(owners))
	var distinct []covenant.Address
	for _, o := range owners {
		if weights[string(o)] == 0 {
			distinct = append(distinct, o)
		}
		weights[string(o)]++
	}
	return weights, distinct
}

// Register validates the construction parameters and persists the owner
// weights, the distinct owner list and the threshold.
func (OwnerRegistry) Register(db covenant.KVStore, threshold uint32, owners []covenant.Address) error {
	if db.Has(thresholdKey) {
		return errors.Wrap(errors.ErrState, "wallet already constructed")
	}
	switch n := len(owners); {
	case n == 0:
		return errors.Wrap(ErrConstruction, "no owners")
	case n > MaxOwners:
		return errors.Wrapf(ErrConstruction, "%d owners, at most %d allowed", n, MaxOwners)
	}
	if threshold == 0 {
		return errors.Wrap(ErrConstruction, "threshold must be greater than 0")
	}
	// Every list entry is one unit of weight, so the list length is the
	// total weight.
	if int(threshold) > len(owners) {
		return errors.Wrapf(ErrConstruction,
			"threshold %d is greater than the total weight %d", threshold, len(owners))
	}
	for i, o := range owners {
		if err := o.Validate(); err != nil {
			return errors.Wrapf(ErrConstruction, "owner %d: %s", i, err)
		}
	}

	weights, distinct := Weights(owners)
	list := OwnerList{Owners: make([][]byte, len(distinct))}
	for i, o := range distinct {
		list.Owners[i] = o
		db.Set(ownerKey(o), []byte{byte(weights[string(o)])})
	}
	bz, err := orm.Marshal(&list)
	if err != nil {
		return errors.Wrap(err, "owner list")
	}
	db.Set(ownersKey, bz)
	db.Set(thresholdKey, []byte{byte(threshold)})
	return nil
}

// Constructed returns true once Register succeeded.
func (OwnerRegistry) Constructed(db covenant.ReadOnlyKVStore) bool {
	return db.Has(thresholdKey)
}

// Threshold returns the weight an operation needs to be validated.
func (OwnerRegistry) Threshold(db covenant.ReadOnlyKVStore) (uint32, error) {
	raw := db.Get(thresholdKey)
	if len(raw) != 1 {
		return 0, errors.Wrap(errors.ErrState, "wallet not constructed")
	}
	return uint32(raw[0]), nil
}

// WeightOf returns the weight of addr, zero if addr is not an owner.
func (OwnerRegistry) WeightOf(db covenant.ReadOnlyKVStore, addr covenant.Address) uint32 {
	raw := db.Get(ownerKey(addr))
	if len(raw) != 1 {
		return 0
	}
	return uint32(raw[0])
}

// Owners returns the distinct owners.
func (OwnerRegistry) Owners(db covenant.ReadOnlyKVStore) ([]covenant.Address, error) {
	raw := db.Get(ownersKey)
	if raw == nil {
		return nil, errors.Wrap(errors.ErrState, "wallet not constructed")
	}
	var list OwnerList
	if err := orm.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	return list.Addresses(), nil
}

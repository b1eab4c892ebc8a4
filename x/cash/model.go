package cash

import (
	"github.com/gogo/protobuf/proto"

	"github.com/iov-one/covenant"
	"github.com/iov-one/covenant/coin"
	"github.com/iov-one/covenant/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Wallet is the persisted balance of a single address.
type Wallet struct {
	Amount uint64 `protobuf:"varint,1,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *Wallet) Reset()         { *m = Wallet{} }
func (m *Wallet) String() string { return proto.CompactTextString(m) }
func (*Wallet) ProtoMessage()    {}

// Validate always passes, any balance is a valid balance.
func (m *Wallet) Validate() error {
	return nil
}

// Bucket is a type-safe wrapper around orm.Bucket
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes a cash.Bucket with default name
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName),
	}
}

// Balance returns the amount held by addr. Unknown addresses hold
// nothing.
func (b Bucket) Balance(db covenant.ReadOnlyKVStore, addr covenant.Address) (coin.Amount, error) {
	if !b.Has(db, addr) {
		return 0, nil
	}
	var w Wallet
	if err := b.One(db, addr, &w); err != nil {
		return 0, err
	}
	return coin.Amount(w.Amount), nil
}

// SetBalance stores the amount held by addr. A zero balance removes
// the wallet.
func (b Bucket) SetBalance(db covenant.KVStore, addr covenant.Address, amount coin.Amount) error {
	if amount.IsZero() {
		b.Delete(db, addr)
		return nil
	}
	return b.Put(db, addr, &Wallet{Amount: uint64(amount)})
}

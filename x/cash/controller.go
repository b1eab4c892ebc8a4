package cash

import (
	"github.com/iov-one/covenant"
	"github.com/iov-one/covenant/coin"
	"github.com/iov-one/covenant/errors"
)

// Controller is the functionality needed by the host to move coins
// between accounts.
type Controller interface {
	Balance(covenant.ReadOnlyKVStore, covenant.Address) (coin.Amount, error)
	MoveCoins(db covenant.KVStore, src, dest covenant.Address, amount coin.Amount) error
	IssueCoins(db covenant.KVStore, dest covenant.Address, amount coin.Amount) error
}

// BaseController is a simple implementation of Controller.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a controller using the given bucket.
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the amount of coins held by addr.
func (c BaseController) Balance(db covenant.ReadOnlyKVStore, addr covenant.Address) (coin.Amount, error) {
	if err := addr.Validate(); err != nil {
		return 0, errors.Wrap(err, "address")
	}
	return c.bucket.Balance(db, addr)
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't have sufficient coins, it fails.
// Moving a zero amount is a noop.
func (c BaseController) MoveCoins(db covenant.KVStore,
	src covenant.Address, dest covenant.Address, amount coin.Amount) error {

	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if amount.IsZero() || src.Equals(dest) {
		return nil
	}

	have, err := c.bucket.Balance(db, src)
	if err != nil {
		return err
	}
	left, err := have.Sub(amount)
	if err != nil {
		return errors.Wrapf(err, "%s holds %s", src, have)
	}
	got, err := c.bucket.Balance(db, dest)
	if err != nil {
		return err
	}
	total, err := got.Add(amount)
	if err != nil {
		return errors.Wrapf(err, "%s balance", dest)
	}

	if err := c.bucket.SetBalance(db, src, left); err != nil {
		return err
	}
	return c.bucket.SetBalance(db, dest, total)
}

// IssueCoins attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
func (c BaseController) IssueCoins(db covenant.KVStore,
	dest covenant.Address, amount coin.Amount) error {

	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	have, err := c.bucket.Balance(db, dest)
	if err != nil {
		return err
	}
	total, err := have.Add(amount)
	if err != nil {
		return errors.Wrapf(err, "%s balance", dest)
	}
	return c.bucket.SetBalance(db, dest, total)
}

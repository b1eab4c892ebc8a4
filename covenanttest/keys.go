package covenanttest

import (
	"github.com/iov-one/covenant"
	"github.com/iov-one/covenant/crypto"
)

// NewKey returns a fresh ed25519 private key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signature condition of a fresh key.
func NewCondition() covenant.Condition {
	return NewKey().PublicKey().Condition()
}

// NewAddress returns the address of a fresh key. Each call returns a
// different address.
func NewAddress() covenant.Address {
	return NewCondition().Address()
}

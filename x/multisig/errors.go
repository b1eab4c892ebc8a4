package multisig

import "github.com/iov-one/covenant/errors"

var (
	// ErrConstruction is returned when a wallet cannot be created with
	// the given owners and threshold.
	ErrConstruction = errors.Register(100, "construction")

	// ErrInvariant signals a corrupted wallet state. It must never happen.
	ErrInvariant = errors.Register(101, "invariant violation")
)

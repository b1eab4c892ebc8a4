/*
Package coin defines the native currency amount handled by the host.

There is a single native denomination. An Amount is an unsigned number of the
smallest indivisible units. All arithmetic is checked: an addition that would
not fit into the type fails with ErrOverflow and a subtraction below zero
fails with ErrInsufficientAmount.
*/
package coin

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/iov-one/covenant/errors"
)

// Amount is a quantity of the native coin.
type Amount uint64

// MaxAmount is the biggest representable amount.
const MaxAmount = Amount(math.MaxUint64)

// IsZero returns true if there is nothing to move.
func (a Amount) IsZero() bool {
	return a == 0
}

// Add returns the sum of both amounts, failing instead of wrapping around.
func (a Amount) Add(b Amount) (Amount, error) {
	if a > MaxAmount-b {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d + %d", a, b)
	}
	return a + b, nil
}

// Sub returns the difference, failing if b is greater than a.
func (a Amount) Sub(b Amount) (Amount, error) {
	if b > a {
		return 0, errors.Wrapf(errors.ErrInsufficientAmount, "%d - %d", a, b)
	}
	return a - b, nil
}

func (a Amount) String() string {
	return strconv.FormatUint(uint64(a), 10)
}

// ParseAmount decodes a decimal representation of an amount.
func ParseAmount(s string) (Amount, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrAmount, "cannot parse %q", s)
	}
	return Amount(v), nil
}

// MarshalJSON encodes the amount as a string so that big values survive
// javascript clients.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts both a number and a string representation.
func (a *Amount) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var n uint64
		if err := json.Unmarshal(raw, &n); err != nil {
			return errors.Wrap(errors.ErrAmount, "cannot decode json")
		}
		*a = Amount(n)
		return nil
	}
	v, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

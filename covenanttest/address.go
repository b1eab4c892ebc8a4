package covenanttest

import (
	"testing"

	"github.com/iov-one/covenant"
)

// ParseAddress takes an address in a human readable format and returns
// its binary representation. This function is a test helper that is using
// covenant.ParseAddress function functionality.
func ParseAddress(t testing.TB, encodedAddress string) covenant.Address {
	t.Helper()

	addr, err := covenant.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}

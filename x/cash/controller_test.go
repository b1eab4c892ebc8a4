package cash

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/covenant"
	"github.com/iov-one/covenant/coin"
	"github.com/iov-one/covenant/errors"
	"github.com/iov-one/covenant/store"
)

func addr(name string) covenant.Address {
	return covenant.NewAddress([]byte(name))
}

func TestMoveCoins(t *testing.T) {
	alice, bob := addr("alice"), addr("bob")

	cases := map[string]struct {
		fund    coin.Amount
		move    coin.Amount
		src     covenant.Address
		dest    covenant.Address
		wantErr *errors.Error
		alice   coin.Amount
		bob     coin.Amount
	}{
		"full transfer": {
			fund: 100, move: 100, src: alice, dest: bob,
			alice: 0, bob: 100,
		},
		"partial transfer": {
			fund: 100, move: 40, src: alice, dest: bob,
			alice: 60, bob: 40,
		},
		"zero amount is a noop": {
			fund: 100, move: 0, src: alice, dest: bob,
			alice: 100, bob: 0,
		},
		"insufficient funds": {
			fund: 10, move: 11, src: alice, dest: bob,
			wantErr: errors.ErrInsufficientAmount,
			alice:   10, bob: 0,
		},
		"unfunded sender": {
			fund: 0, move: 1, src: bob, dest: alice,
			wantErr: errors.ErrInsufficientAmount,
		},
		"invalid destination": {
			fund: 10, move: 1, src: alice, dest: covenant.Address("short"),
			wantErr: errors.ErrInput,
			alice:   10,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController(NewBucket())
			require.NoError(t, ctrl.IssueCoins(db, alice, tc.fund))

			err := ctrl.MoveCoins(db, tc.src, tc.dest, tc.move)
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
			} else {
				require.NoError(t, err)
			}

			got, err := ctrl.Balance(db, alice)
			require.NoError(t, err)
			assert.Equal(t, tc.alice, got)
			got, err = ctrl.Balance(db, bob)
			require.NoError(t, err)
			assert.Equal(t, tc.bob, got)
		})
	}
}

func TestIssueCoinsOverflow(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewBucket())
	a := addr("a")

	require.NoError(t, ctrl.IssueCoins(db, a, coin.MaxAmount))
	err := ctrl.IssueCoins(db, a, 1)
	assert.True(t, errors.ErrOverflow.Is(err))

	got, err := ctrl.Balance(db, a)
	require.NoError(t, err)
	assert.Equal(t, coin.MaxAmount, got)
}

func TestEmptyWalletIsRemoved(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewBucket())
	a, b := addr("a"), addr("b")

	require.NoError(t, ctrl.IssueCoins(db, a, 5))
	require.NoError(t, ctrl.MoveCoins(db, a, b, 5))
	assert.False(t, NewBucket().Has(db, a))
}

func TestGenesis(t *testing.T) {
	a, b := addr("a"), addr("b")
	genesis := `{"cash": [
		{"address": "` + a.String() + `", "amount": "1000"},
		{"address": "` + b.String() + `", "amount": 20}
	]}`
	var opts covenant.Options
	require.NoError(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	require.NoError(t, Initializer{}.FromGenesis(context.Background(), opts, db))

	ctrl := NewController(NewBucket())
	got, err := ctrl.Balance(db, a)
	require.NoError(t, err)
	assert.EqualValues(t, 1000, got)
	got, err = ctrl.Balance(db, b)
	require.NoError(t, err)
	assert.EqualValues(t, 20, got)

	bad := covenant.Options{"cash": json.RawMessage(`[{"address": "", "amount": "1"}]`)}
	err = Initializer{}.FromGenesis(context.Background(), bad, store.MemStore())
	assert.True(t, errors.ErrInput.Is(err))
}

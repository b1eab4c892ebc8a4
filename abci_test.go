package covenant

import (
	"fmt"
	"testing"

	"github.com/iov-one/covenant/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliverOrError(t *testing.T) {
	res := &Result{
		Data: []byte{0, 0, 0, 0, 0, 0, 0, 1},
		Log:  "submitted",
		Events: []Event{
			NewEvent("multisig/submit").With("index", "1").With("amount", "15000"),
		},
	}
	resp := DeliverOrError(res, nil, false)
	assert.Equal(t, uint32(errors.SuccessABCICode), resp.Code)
	assert.Equal(t, res.Data, resp.Data)
	require.Len(t, resp.Tags, 2)
	assert.Equal(t, "multisig/submit.index", string(resp.Tags[0].Key))
	assert.Equal(t, "15000", string(resp.Tags[1].Value))

	parsed, err := ParseDeliverOrError(resp)
	require.NoError(t, err)
	assert.Equal(t, res.Data, parsed.Data)
}

func TestDeliverTxError(t *testing.T) {
	resp := DeliverOrError(nil, errors.Wrap(errors.ErrUnauthorized, "not an owner"), false)
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), resp.Code)
	assert.Equal(t, "cannot deliver call: not an owner: unauthorized", resp.Log)

	_, err := ParseDeliverOrError(resp)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	resp = DeliverOrError(nil, fmt.Errorf("secret details"), false)
	assert.Equal(t, "cannot deliver call: internal error", resp.Log)
}

func TestEventWithDoesNotShareAttributes(t *testing.T) {
	base := NewEvent("multisig/confirm").With("index", "1")
	a := base.With("owner", "A")
	b := base.With("owner", "B")

	got, ok := a.Attr("owner")
	assert.True(t, ok)
	assert.Equal(t, "A", got)
	got, _ = b.Attr("owner")
	assert.Equal(t, "B", got)
	_, ok = base.Attr("owner")
	assert.False(t, ok)
}

func TestCallValidate(t *testing.T) {
	assert.NoError(t, Call{Function: "executeOperation"}.Validate())
	assert.True(t, errors.ErrInput.Is(Call{Function: ""}.Validate()))
	assert.True(t, errors.ErrInput.Is(Call{Function: "9lives"}.Validate()))
}

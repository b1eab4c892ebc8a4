package coin

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/covenant/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountArithmetic(t *testing.T) {
	sum, err := Amount(15000).Add(5000)
	require.NoError(t, err)
	assert.Equal(t, Amount(20000), sum)

	_, err = MaxAmount.Add(1)
	assert.True(t, errors.ErrOverflow.Is(err))

	diff, err := Amount(20000).Sub(15000)
	require.NoError(t, err)
	assert.Equal(t, Amount(5000), diff)

	_, err = Amount(1).Sub(2)
	assert.True(t, errors.ErrInsufficientAmount.Is(err))

	assert.True(t, Amount(0).IsZero())
}

func TestAmountParse(t *testing.T) {
	cases := map[string]struct {
		raw     string
		want    Amount
		wantErr *errors.Error
	}{
		"plain number":   {raw: "15000", want: 15000},
		"zero":           {raw: "0", want: 0},
		"negative":       {raw: "-1", wantErr: errors.ErrAmount},
		"not a number":   {raw: "ten", wantErr: errors.ErrAmount},
		"too big":        {raw: "18446744073709551616", wantErr: errors.ErrAmount},
		"biggest amount": {raw: "18446744073709551615", want: MaxAmount},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParseAmount(tc.raw)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAmountJSON(t *testing.T) {
	raw, err := json.Marshal(Amount(42))
	require.NoError(t, err)
	assert.Equal(t, `"42"`, string(raw))

	var a Amount
	require.NoError(t, json.Unmarshal([]byte(`"77"`), &a))
	assert.Equal(t, Amount(77), a)
	require.NoError(t, json.Unmarshal([]byte(`78`), &a))
	assert.Equal(t, Amount(78), a)
}

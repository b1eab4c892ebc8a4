package covenant_test

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/iov-one/covenant"
	"github.com/iov-one/covenant/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressPrinting(t *testing.T) {
	Convey("test hexadecimal address printing", t, func() {
		addr := covenant.NewAddress([]byte("some data"))

		So(addr.String(), ShouldEqual, fmt.Sprintf("%X", []byte(addr)))
		So(len(addr), ShouldEqual, covenant.AddressLength)
	})

	Convey("test nil address printing", t, func() {
		So(covenant.Address(nil).String(), ShouldEqual, "(nil)")
	})

	Convey("test hexadecimal condition printing", t, func() {
		cond := covenant.NewCondition("chain", "contract", []byte("ABCD123456LHB"))

		So(cond.String(), ShouldNotEqual, fmt.Sprintf("%X", cond))
		So(cond.String(), ShouldStartWith, "chain/contract/")
	})
}

func TestParseAddress(t *testing.T) {
	cond := covenant.NewCondition("foo", "bar", []byte("conditiondata"))
	addr := cond.Address()

	cases := map[string]struct {
		enc      string
		wantErr  *errors.Error
		wantAddr covenant.Address
	}{
		"default decoding": {
			enc:      addr.String(),
			wantAddr: addr,
		},
		"lower case hex decoding": {
			enc:      "hex:" + strings.ToLower(addr.String()),
			wantAddr: addr,
		},
		"bech32 decoding": {
			enc:      "bech32:" + addr.Bech32(),
			wantAddr: addr,
		},
		"cond decoding": {
			enc:      "cond:foo/bar/636f6e646974696f6e64617461",
			wantAddr: addr,
		},
		"too short": {
			enc:     "6865782d61646472",
			wantErr: errors.ErrInput,
		},
		"invalid condition format": {
			enc:     "cond:foo/636f6e646974696f6e64617461",
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			enc:     "cond:foo/bar/zzzzz",
			wantErr: errors.ErrInput,
		},
		"invalid bech32": {
			enc:     "bech32:xyz",
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			enc:     "foobar:xxx",
			wantErr: errors.ErrType,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := covenant.ParseAddress(tc.enc)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !reflect.DeepEqual(got, tc.wantAddr) {
				t.Fatalf("got address: %q", got)
			}
		})
	}
}

func TestAddressJSON(t *testing.T) {
	addr := covenant.NewAddress([]byte("owner"))

	raw, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.Equal(t, `"`+addr.String()+`"`, string(raw))

	var got covenant.Address
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, addr, got)

	for _, zero := range []string{`""`, `"hex:"`, `"cond:"`} {
		got = addr
		require.NoError(t, json.Unmarshal([]byte(zero), &got))
		assert.Nil(t, got)
	}
}

func TestConditionJSON(t *testing.T) {
	cases := map[string]struct {
		json          string
		wantErr       *errors.Error
		wantCondition covenant.Condition
	}{
		"default decoding": {
			json:          `"foo/bar/636f6e646974696f6e64617461"`,
			wantCondition: covenant.NewCondition("foo", "bar", []byte("conditiondata")),
		},
		"invalid condition format": {
			json:    `"foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"zero condition": {
			json:          `""`,
			wantCondition: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got covenant.Condition
			err := json.Unmarshal([]byte(tc.json), &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !got.Equals(tc.wantCondition) {
				t.Fatalf("expected %q but got condition: %q", tc.wantCondition, got)
			}
		})
	}

	raw, err := json.Marshal(covenant.NewCondition("foo", "bar", []byte("conditiondata")))
	require.NoError(t, err)
	assert.Equal(t, `"foo/bar/636F6E646974696F6E64617461"`, string(raw))
}

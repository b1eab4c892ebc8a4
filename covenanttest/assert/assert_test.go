package assert

import (
	"testing"

	"github.com/iov-one/covenant/errors"
)

func TestIsErr(t *testing.T) {
	cases := map[string]struct {
		ErrWant  error
		ErrGot   error
		WantFail bool
	}{
		"same error": {
			ErrWant:  errors.ErrEmpty,
			ErrGot:   errors.ErrEmpty,
			WantFail: false,
		},
		"compared to nil": {
			ErrWant:  nil,
			ErrGot:   errors.ErrEmpty,
			WantFail: true,
		},
		"both nil": {
			ErrWant:  nil,
			ErrGot:   nil,
			WantFail: false,
		},
		"wrapped": {
			ErrWant:  errors.ErrEmpty,
			ErrGot:   errors.Wrap(errors.ErrEmpty, "test"),
			WantFail: false,
		},
		"different": {
			ErrWant:  errors.ErrState,
			ErrGot:   errors.Wrap(errors.ErrEmpty, "test"),
			WantFail: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{TB: t}
			IsErr(mock, tc.ErrWant, tc.ErrGot)
			failed := mock.failcalls > 0
			if tc.WantFail != failed {
				t.Fatalf("unexpected failed call state: %d failures", mock.failcalls)
			}
		})
	}
}

func TestNilAndEqual(t *testing.T) {
	mock := &tmock{TB: t}

	var p *int
	Nil(mock, p)
	Nil(mock, nil)
	Equal(mock, []byte("a"), []byte("a"))
	if mock.failcalls != 0 {
		t.Fatalf("want no failures, got %d", mock.failcalls)
	}

	Nil(mock, 0)
	Equal(mock, uint32(1), uint64(1))
	if mock.failcalls != 2 {
		t.Fatalf("want 2 failures, got %d", mock.failcalls)
	}
}

func TestPanics(t *testing.T) {
	mock := &tmock{TB: t}
	Panics(mock, func() { panic("boom") })
	if mock.failcalls != 0 {
		t.Fatal("panic not recovered")
	}
	Panics(mock, func() {})
	if mock.failcalls != 1 {
		t.Fatal("missing panic not reported")
	}
}

// tmock mocks testing.TB and only counts failure calls. It ignores all other
// input.
type tmock struct {
	testing.TB
	failcalls int
}

func (t *tmock) Fatal(args ...interface{}) {
	t.TB.Log(args...)
	t.failcalls++
}

func (t *tmock) Fatalf(s string, args ...interface{}) {
	t.TB.Logf(s, args...)
	t.failcalls++
}

package assert

import (
	"testing"

	"github.com/iov-one/swap/errors"
)

func TestIsErr(t *testing.T) {
	cases := map[string]struct {
		ErrWant  error
		ErrGot   error
		WantFail bool
	}{
		"same error": {
			ErrWant:  errors.ErrInvalidInput,
			ErrGot:   errors.ErrInvalidInput,
			WantFail: false,
		},
		"compared to nil": {
			ErrWant:  nil,
			ErrGot:   errors.ErrInvalidInput,
			WantFail: true,
		},
		"both nil": {
			ErrWant:  nil,
			ErrGot:   nil,
			WantFail: false,
		},
		"wrapped": {
			ErrWant:  errors.ErrInvalidInput,
			ErrGot:   errors.Wrap(errors.ErrInvalidInput, "test"),
			WantFail: false,
		},
		"different error": {
			ErrWant:  errors.ErrInvalidInput,
			ErrGot:   errors.ErrNotFound,
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

var errAsserted = errors.NewCustom("asserttest", 7, "asserted")

func TestCode(t *testing.T) {
	cases := map[string]struct {
		Err      error
		Want     uint64
		WantFail bool
	}{
		"success": {
			Err:  nil,
			Want: 0,
		},
		"custom ordinal": {
			Err:  errors.Wrap(errAsserted, "test"),
			Want: 7,
		},
		"builtin code": {
			Err:  errors.ErrInvalidAccountData,
			Want: 4 << 32,
		},
		"mismatch": {
			Err:      errAsserted,
			Want:     6,
			WantFail: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{TB: t}
			Code(mock, tc.Want, tc.Err)
			failed := mock.failcalls > 0
			if tc.WantFail != failed {
				t.Fatalf("unexpected failed call state: %d failures", mock.failcalls)
			}
		})
	}
}

// tmock mocks testing.TB and only counts failure calls. It ignores all other
// input.
type tmock struct {
	testing.TB
	failcalls int
}

func (t *tmock) Error(args ...interface{}) {
	t.TB.Log(args...)
	t.failcalls++
}

func (t *tmock) Errorf(s string, args ...interface{}) {
	t.TB.Logf(s, args...)
	t.failcalls++
}

func (t *tmock) Fatal(args ...interface{}) {
	t.TB.Log(args...)
	t.failcalls++
}

func (t *tmock) Fatalf(s string, args ...interface{}) {
	t.TB.Logf(s, args...)
	t.failcalls++
}

package rent

import (
	"math"
	"testing"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/runtime"
	"github.com/iov-one/swap/store"
	"github.com/iov-one/swap/swaptest/assert"
	"github.com/iov-one/swap/x/system"
)

func TestMinimumBalance(t *testing.T) {
	cases := map[string]struct {
		rent    Rent
		dataLen int
		want    uint64
	}{
		"empty account": {
			rent:    Default(),
			dataLen: 0,
			want:    128 * 3480 * 2,
		},
		"escrow record": {
			rent:    Default(),
			dataLen: 105,
			want:    1621680,
		},
		"token account": {
			rent:    Default(),
			dataLen: 73,
			want:    1398960,
		},
		"fractional threshold": {
			rent:    Rent{LamportsPerByteYear: 10, ExemptionThreshold: 0.5},
			dataLen: 2,
			want:    650,
		},
		"free": {
			rent:    Rent{LamportsPerByteYear: 0, ExemptionThreshold: 2},
			dataLen: 1000,
			want:    0,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := tc.rent.MinimumBalance(tc.dataLen)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, true, tc.rent.IsExempt(got, tc.dataLen))
			if got > 0 {
				assert.Equal(t, false, tc.rent.IsExempt(got-1, tc.dataLen))
			}
		})
	}
}

func TestValidate(t *testing.T) {
	const maxPerByte = math.MaxUint64 / (AccountStorageOverhead + system.MaxPermittedDataLength)

	cases := map[string]struct {
		rent    Rent
		wantErr *errors.Error
	}{
		"defaults":            {rent: Default()},
		"free":                {rent: Rent{}},
		"largest rate":        {rent: Rent{LamportsPerByteYear: maxPerByte, ExemptionThreshold: 0.5}},
		"rate overflows":      {rent: Rent{LamportsPerByteYear: maxPerByte + 1, ExemptionThreshold: 0.5}, wantErr: errors.ErrInvalidInput},
		"threshold overflows": {rent: Rent{LamportsPerByteYear: 1000000000000, ExemptionThreshold: 2}, wantErr: errors.ErrInvalidInput},
		"max rate":            {rent: Rent{LamportsPerByteYear: math.MaxUint64, ExemptionThreshold: 1}, wantErr: errors.ErrInvalidInput},
		"nan threshold":       {rent: Rent{ExemptionThreshold: math.NaN()}, wantErr: errors.ErrInvalidInput},
		"infinite threshold":  {rent: Rent{LamportsPerByteYear: 1, ExemptionThreshold: math.Inf(1)}, wantErr: errors.ErrInvalidInput},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.rent.Validate()
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			// the largest account still gets an exact, non wrapped balance
			got := tc.rent.MinimumBalance(system.MaxPermittedDataLength)
			assert.Equal(t, true, got >= tc.rent.MinimumBalance(0))
		})
	}
}

func TestCodec(t *testing.T) {
	r := Rent{LamportsPerByteYear: 1, ExemptionThreshold: 1.5, BurnPercent: 7}
	raw := r.Marshal()
	assert.Equal(t, Size, len(raw))
	assert.Equal(t, []byte{1, 0, 0, 0, 0, 0, 0, 0}, raw[:8])
	// 1.5 as IEEE 754 little endian.
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0xf8, 0x3f}, raw[8:16])
	assert.Equal(t, byte(7), raw[16])

	got, err := Unmarshal(raw)
	assert.Nil(t, err)
	assert.Equal(t, r, got)

	_, err = Unmarshal(raw[:Size-1])
	assert.IsErr(t, errors.ErrInvalidAccountData, err)
}

func TestLoad(t *testing.T) {
	acct := Default().Account()
	assert.Equal(t, swap.SysvarOwnerID, acct.Owner)
	assert.Equal(t, true, Default().IsExempt(acct.Lamports, len(acct.Data)))

	got, err := Load(&swap.AccountInfo{Key: swap.RentSysvarID, Account: acct})
	assert.Nil(t, err)
	assert.Equal(t, Default(), got)

	_, err = Load(&swap.AccountInfo{Key: swap.SystemProgramID, Account: acct})
	assert.IsErr(t, errors.ErrInvalidArgument, err)
}

func TestGenesis(t *testing.T) {
	cases := map[string]struct {
		opts    swap.Options
		want    Rent
		wantErr *errors.Error
	}{
		"defaults": {
			opts: swap.Options{},
			want: Default(),
		},
		"custom": {
			opts: swap.Options{"rent": []byte(`{"lamports_per_byte_year": 10, "exemption_threshold": 1, "burn_percent": 0}`)},
			want: Rent{LamportsPerByteYear: 10, ExemptionThreshold: 1},
		},
		"partial keeps defaults": {
			opts: swap.Options{"rent": []byte(`{"burn_percent": 100}`)},
			want: Rent{LamportsPerByteYear: 3480, ExemptionThreshold: 2, BurnPercent: 100},
		},
		"malformed": {
			opts:    swap.Options{"rent": []byte(`[1, 2]`)},
			wantErr: errors.ErrInvalidInput,
		},
		"burn too high": {
			opts:    swap.Options{"rent": []byte(`{"burn_percent": 101}`)},
			wantErr: errors.ErrInvalidInput,
		},
		"negative threshold": {
			opts:    swap.Options{"rent": []byte(`{"exemption_threshold": -1}`)},
			wantErr: errors.ErrInvalidInput,
		},
		"rate too high": {
			opts:    swap.Options{"rent": []byte(`{"lamports_per_byte_year": 18446744073709551615}`)},
			wantErr: errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			kv := store.MemStore()
			err := Initializer{}.FromGenesis(tc.opts, kv)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)

			acct, err := runtime.NewAccountsDB(kv).Load(swap.RentSysvarID)
			assert.Nil(t, err)
			assert.Equal(t, swap.SysvarOwnerID, acct.Owner)
			got, err := Unmarshal(acct.Data)
			assert.Nil(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

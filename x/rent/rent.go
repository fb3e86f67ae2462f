package rent

import (
	"encoding/binary"
	"math"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/x/system"
)

const (
	// AccountStorageOverhead is the number of bytes charged for every
	// account on top of its data.
	AccountStorageOverhead = 128

	// DefaultLamportsPerByteYear is the rent of a single byte for a year.
	DefaultLamportsPerByteYear uint64 = 3480

	// DefaultExemptionThreshold is the number of years of rent an account
	// must hold to be exempt.
	DefaultExemptionThreshold = 2.0

	// DefaultBurnPercent is the share of collected rent that is burned.
	DefaultBurnPercent uint8 = 50

	// Size is the length of the encoded parameters.
	Size = 17
)

// Rent is the set of rent parameters.
type Rent struct {
	LamportsPerByteYear uint64  `json:"lamports_per_byte_year"`
	ExemptionThreshold  float64 `json:"exemption_threshold"`
	BurnPercent         uint8   `json:"burn_percent"`
}

// Default returns the parameters used when genesis does not set any.
func Default() Rent {
	return Rent{
		LamportsPerByteYear: DefaultLamportsPerByteYear,
		ExemptionThreshold:  DefaultExemptionThreshold,
		BurnPercent:         DefaultBurnPercent,
	}
}

// Validate returns an error if the parameters cannot be used.
func (r Rent) Validate() error {
	if r.ExemptionThreshold < 0 || math.IsNaN(r.ExemptionThreshold) || math.IsInf(r.ExemptionThreshold, 0) {
		return errors.ErrInvalidInput.Newf("exemption threshold %v", r.ExemptionThreshold)
	}
	if r.BurnPercent > 100 {
		return errors.ErrInvalidInput.Newf("burn percent %d", r.BurnPercent)
	}
	// The minimum balance of the largest account must fit in a uint64.
	const largest = AccountStorageOverhead + system.MaxPermittedDataLength
	if r.LamportsPerByteYear > math.MaxUint64/largest ||
		float64(largest*r.LamportsPerByteYear)*r.ExemptionThreshold >= math.MaxUint64 {
		return errors.ErrInvalidInput.Newf("lamports per byte year %d with exemption threshold %v", r.LamportsPerByteYear, r.ExemptionThreshold)
	}
	return nil
}

// MinimumBalance returns the lamports an account with dataLen bytes of
// data must hold to be rent exempt. Validated parameters never overflow for
// data up to system.MaxPermittedDataLength.
func (r Rent) MinimumBalance(dataLen int) uint64 {
	bytes := uint64(AccountStorageOverhead + dataLen)
	return uint64(float64(bytes*r.LamportsPerByteYear) * r.ExemptionThreshold)
}

// IsExempt returns true if balance is enough for dataLen bytes of data.
func (r Rent) IsExempt(balance uint64, dataLen int) bool {
	return balance >= r.MinimumBalance(dataLen)
}

// Marshal returns the sysvar account data.
func (r Rent) Marshal() []byte {
	raw := make([]byte, Size)
	binary.LittleEndian.PutUint64(raw[0:8], r.LamportsPerByteYear)
	binary.LittleEndian.PutUint64(raw[8:16], math.Float64bits(r.ExemptionThreshold))
	raw[16] = r.BurnPercent
	return raw
}

// Unmarshal decodes the sysvar account data.
func Unmarshal(raw []byte) (Rent, error) {
	if len(raw) < Size {
		return Rent{}, errors.ErrInvalidAccountData.Newf("rent data of %d bytes", len(raw))
	}
	return Rent{
		LamportsPerByteYear: binary.LittleEndian.Uint64(raw[0:8]),
		ExemptionThreshold:  math.Float64frombits(binary.LittleEndian.Uint64(raw[8:16])),
		BurnPercent:         raw[16],
	}, nil
}

// Account returns the sysvar account holding r. It carries the minimum
// balance for its own data.
func (r Rent) Account() *swap.Account {
	acct := swap.NewAccount(r.MinimumBalance(Size), 0, swap.SysvarOwnerID)
	acct.Data = r.Marshal()
	return acct
}

// Load reads the parameters from the sysvar account handed to a program.
// Any other account is rejected.
func Load(info *swap.AccountInfo) (Rent, error) {
	if info.Key != swap.RentSysvarID {
		return Rent{}, errors.ErrInvalidArgument.Newf("%s is not the rent sysvar", info.Key)
	}
	return Unmarshal(info.Data)
}

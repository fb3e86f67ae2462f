package system

import (
	"testing"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/crypto"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/swaptest"
	"github.com/iov-one/swap/swaptest/assert"
)

var otherProgramID = swap.ProgramIDFromName("system-test")

func newLedger(t *testing.T) *swaptest.Ledger {
	l := swaptest.NewLedger(t)
	RegisterRoutes(l.Router)
	return l
}

func TestCreateAccount(t *testing.T) {
	funder := swaptest.NewKey(t)
	fresh := swaptest.NewKey(t)

	cases := map[string]struct {
		before  func(l *swaptest.Ledger)
		ix      swap.Instruction
		signers []*crypto.PrivateKey
		wantErr error
	}{
		"success": {
			ix:      NewCreateAccountInstruction(funder.PublicKey(), fresh.PublicKey(), 500, 105, otherProgramID),
			signers: swaptest.Signers(funder, fresh),
		},
		"account with lamports is in use": {
			before: func(l *swaptest.Ledger) {
				l.Fund(fresh.PublicKey(), 1)
			},
			ix:      NewCreateAccountInstruction(funder.PublicKey(), fresh.PublicKey(), 500, 105, otherProgramID),
			signers: swaptest.Signers(funder, fresh),
			wantErr: ErrAccountAlreadyInUse,
		},
		"account of another program is in use": {
			before: func(l *swaptest.Ledger) {
				l.SetAccount(fresh.PublicKey(), swap.NewAccount(7, 0, otherProgramID))
			},
			ix:      NewCreateAccountInstruction(funder.PublicKey(), fresh.PublicKey(), 500, 0, otherProgramID),
			signers: swaptest.Signers(funder, fresh),
			wantErr: ErrAccountAlreadyInUse,
		},
		"not enough lamports": {
			ix:      NewCreateAccountInstruction(funder.PublicKey(), fresh.PublicKey(), 1001, 0, otherProgramID),
			signers: swaptest.Signers(funder, fresh),
			wantErr: ErrResultWithNegativeLamports,
		},
		"too large": {
			ix:      NewCreateAccountInstruction(funder.PublicKey(), fresh.PublicKey(), 1, MaxPermittedDataLength+1, otherProgramID),
			signers: swaptest.Signers(funder, fresh),
			wantErr: ErrInvalidAccountDataLength,
		},
		"new account did not sign": {
			ix:      NewCreateAccountInstruction(funder.PublicKey(), fresh.PublicKey(), 500, 0, otherProgramID),
			signers: swaptest.Signers(funder),
			wantErr: errors.ErrMissingRequiredSignature,
		},
		"new account not marked as signer": {
			ix: swap.NewInstruction(swap.SystemProgramID,
				CreateAccount{Lamports: 500, Owner: otherProgramID}.Marshal(),
				swap.Writable(funder.PublicKey(), true),
				swap.Writable(fresh.PublicKey(), false),
			),
			signers: swaptest.Signers(funder),
			wantErr: errors.ErrMissingRequiredSignature,
		},
		"truncated data": {
			ix: swap.NewInstruction(swap.SystemProgramID,
				CreateAccount{Lamports: 500, Owner: otherProgramID}.Marshal()[:40],
				swap.Writable(funder.PublicKey(), true),
				swap.Writable(fresh.PublicKey(), true),
			),
			signers: swaptest.Signers(funder, fresh),
			wantErr: errors.ErrInvalidInstructionData,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			l := newLedger(t)
			l.Fund(funder.PublicKey(), 1000)
			if tc.before != nil {
				tc.before(l)
			}
			before := l.Snapshot()

			err := l.Execute(tc.signers, tc.ix)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				assert.Equal(t, before, l.Snapshot())
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, uint64(500), l.Account(funder.PublicKey()).Lamports)
			acct := l.Account(fresh.PublicKey())
			assert.Equal(t, uint64(500), acct.Lamports)
			assert.Equal(t, otherProgramID, acct.Owner)
			assert.Equal(t, 105, len(acct.Data))
			assert.Equal(t, true, acct.IsDataZeroed())
		})
	}
}

func TestAssign(t *testing.T) {
	key := swaptest.NewKey(t)

	l := newLedger(t)
	l.Fund(key.PublicKey(), 10)

	err := l.Execute(swaptest.Signers(key), NewAssignInstruction(key.PublicKey(), otherProgramID))
	assert.Nil(t, err)
	assert.Equal(t, otherProgramID, l.Account(key.PublicKey()).Owner)

	// Assigning to the current owner is a no-op.
	err = l.Execute(swaptest.Signers(key), NewAssignInstruction(key.PublicKey(), otherProgramID))
	assert.Nil(t, err)

	// Only system accounts can be handed over.
	err = l.Execute(swaptest.Signers(key), NewAssignInstruction(key.PublicKey(), swap.TokenProgramID))
	assert.IsErr(t, errors.ErrIncorrectProgramID, err)
	assert.Equal(t, otherProgramID, l.Account(key.PublicKey()).Owner)
}

func TestTransfer(t *testing.T) {
	from := swaptest.NewKey(t)
	to := swaptest.NewAddress(t)

	cases := map[string]struct {
		from    *swap.Account
		amount  uint64
		wantErr error
	}{
		"success": {
			from:   swap.NewAccount(100, 0, swap.SystemProgramID),
			amount: 60,
		},
		"whole balance": {
			from:   swap.NewAccount(60, 0, swap.SystemProgramID),
			amount: 60,
		},
		"insufficient": {
			from:    swap.NewAccount(59, 0, swap.SystemProgramID),
			amount:  60,
			wantErr: ErrResultWithNegativeLamports,
		},
		"source carries data": {
			from:    swap.NewAccount(100, 1, swap.SystemProgramID),
			amount:  60,
			wantErr: errors.ErrInvalidArgument,
		},
		"source owned by a program": {
			from:    swap.NewAccount(100, 0, otherProgramID),
			amount:  60,
			wantErr: errors.ErrInvalidArgument,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			l := newLedger(t)
			l.SetAccount(from.PublicKey(), tc.from)

			err := l.Execute(swaptest.Signers(from), NewTransferInstruction(from.PublicKey(), to, tc.amount))
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				assert.Equal(t, false, l.Exists(to))
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.from.Lamports-tc.amount, l.Account(from.PublicKey()).Lamports)
			assert.Equal(t, tc.amount, l.Account(to).Lamports)
		})
	}
}

func TestDecode(t *testing.T) {
	owner := swaptest.NewAddress(t)
	cases := map[string]struct {
		data    []byte
		want    interface{}
		wantErr error
	}{
		"create account": {
			data: CreateAccount{Lamports: 1, Space: 2, Owner: owner}.Marshal(),
			want: CreateAccount{Lamports: 1, Space: 2, Owner: owner},
		},
		"assign": {
			data: Assign{Owner: owner}.Marshal(),
			want: Assign{Owner: owner},
		},
		"transfer": {
			data: []byte{2, 0, 0, 0, 5, 0, 0, 0, 0, 0, 0, 0},
			want: Transfer{Lamports: 5},
		},
		"empty": {
			data:    nil,
			wantErr: errors.ErrInvalidInstructionData,
		},
		"unknown tag": {
			data:    []byte{3, 0, 0, 0},
			wantErr: errors.ErrInvalidInstructionData,
		},
		"short transfer": {
			data:    []byte{2, 0, 0, 0, 5},
			wantErr: errors.ErrInvalidInstructionData,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := Decode(tc.data)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

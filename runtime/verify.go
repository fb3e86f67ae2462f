package runtime

import (
	"bytes"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
)

// verifyAccounts checks the changes a program made to the accounts of one
// instruction. pre and post are indexed by address, keys lists every
// distinct address once.
func verifyAccounts(programID swap.Address, keys []swap.Address, pre, post map[swap.Address]*swap.Account, writable map[swap.Address]bool) error {
	var before, after uint64
	for _, key := range keys {
		if err := verifyAccount(programID, key, pre[key], post[key], writable[key]); err != nil {
			return err
		}
		before += pre[key].Lamports
		after += post[key].Lamports
	}
	if before != after {
		return errors.ErrUnbalancedInstruction.Newf("%d lamports before, %d after", before, after)
	}
	return nil
}

func verifyAccount(programID, key swap.Address, pre, post *swap.Account, writable bool) error {
	if pre.Owner != post.Owner {
		if !writable || pre.Owner != programID || !post.IsDataZeroed() {
			return errors.ErrModifiedProgramID.Newf("account %s", key)
		}
	}
	if pre.Executable != post.Executable {
		return errors.ErrExecutableModified.Newf("account %s", key)
	}
	if pre.Lamports != post.Lamports {
		if !writable {
			return errors.ErrReadonlyModified.Newf("lamports of %s", key)
		}
		if post.Lamports < pre.Lamports && pre.Owner != programID {
			return errors.ErrExternalLamportSpend.Newf("account %s", key)
		}
	}
	if !bytes.Equal(pre.Data, post.Data) {
		if !writable {
			return errors.ErrReadonlyModified.Newf("data of %s", key)
		}
		if pre.Owner != programID {
			return errors.ErrExternalDataModified.Newf("account %s", key)
		}
	}
	return nil
}

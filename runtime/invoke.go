package runtime

import (
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
)

// MaxCallDepth limits how deep programs may invoke each other. The top
// level instruction has depth one.
const MaxCallDepth = 4

// frame is a single instruction being processed, either top level or
// invoked by another program. Accounts are shared with the parent frame,
// pre holds the state the running program is verified against.
type frame struct {
	exec      *Executor
	programID swap.Address
	depth     int
	// stack lists the programs of all enclosing frames and this one.
	stack []swap.Address

	keys     []swap.Address
	accounts map[swap.Address]*swap.Account
	writable map[swap.Address]bool
	signer   map[swap.Address]bool
	pre      map[swap.Address]*swap.Account
}

var _ swap.Invoker = (*frame)(nil)

func newFrame(exec *Executor, programID swap.Address, infos []*swap.AccountInfo, parent *frame) *frame {
	f := &frame{
		exec:      exec,
		programID: programID,
		depth:     1,
		accounts:  make(map[swap.Address]*swap.Account, len(infos)),
		writable:  make(map[swap.Address]bool, len(infos)),
		signer:    make(map[swap.Address]bool, len(infos)),
		pre:       make(map[swap.Address]*swap.Account, len(infos)),
	}
	if parent != nil {
		f.depth = parent.depth + 1
		f.stack = append(f.stack, parent.stack...)
	}
	f.stack = append(f.stack, programID)

	for _, info := range infos {
		if _, ok := f.accounts[info.Key]; !ok {
			f.keys = append(f.keys, info.Key)
			f.accounts[info.Key] = info.Account
			f.pre[info.Key] = info.Account.Clone()
		}
		// Privileges of duplicated accounts are merged.
		f.writable[info.Key] = f.writable[info.Key] || info.IsWritable
		f.signer[info.Key] = f.signer[info.Key] || info.IsSigner
	}
	return f
}

// verify checks all changes made since the last refresh.
func (f *frame) verify() error {
	return verifyAccounts(f.programID, f.keys, f.pre, f.accounts, f.writable)
}

// refresh accepts the current state of given accounts as verified.
func (f *frame) refresh(keys []swap.Address) {
	for _, k := range keys {
		f.pre[k] = f.accounts[k].Clone()
	}
}

// Invoke processes an instruction of another program on behalf of the
// program running in this frame.
func (f *frame) Invoke(ctx swap.Context, ix swap.Instruction, accounts []*swap.AccountInfo, signerSeeds ...[][]byte) error {
	if f.depth >= MaxCallDepth {
		return errors.ErrCallDepth.Newf("depth %d", f.depth+1)
	}
	program := f.exec.router.Route(ix.ProgramID)
	if program == nil {
		return errors.ErrIncorrectProgramID.Newf("unknown program %s", ix.ProgramID)
	}
	for _, p := range f.stack {
		if p == ix.ProgramID && p != f.programID {
			return errors.ErrReentrancyNotAllowed.Newf("program %s", ix.ProgramID)
		}
	}

	derived := make(map[swap.Address]bool, len(signerSeeds))
	for _, seeds := range signerSeeds {
		addr, err := f.exec.derived.Derive(seeds, f.programID)
		if err != nil {
			return errors.Wrap(err, "signer seeds")
		}
		derived[addr] = true
	}

	infos := make([]*swap.AccountInfo, len(ix.Accounts))
	for i, meta := range ix.Accounts {
		acct, ok := f.accounts[meta.Address]
		if !ok || !provided(accounts, meta.Address, acct) {
			return errors.ErrMissingAccount.Newf("account %d %s", i, meta.Address)
		}
		if meta.IsWritable && !f.writable[meta.Address] {
			return errors.ErrPrivilegeEscalation.Newf("%s is not writable", meta.Address)
		}
		if meta.IsSigner && !f.signer[meta.Address] && !derived[meta.Address] {
			return errors.ErrPrivilegeEscalation.Newf("%s did not sign", meta.Address)
		}
		infos[i] = &swap.AccountInfo{
			Key:        meta.Address,
			IsSigner:   meta.IsSigner,
			IsWritable: meta.IsWritable,
			Account:    acct,
		}
	}

	// The caller's own changes must hold before the callee sees them.
	if err := f.verify(); err != nil {
		return err
	}
	f.refresh(f.keys)

	callee := newFrame(f.exec, ix.ProgramID, infos, f)
	cctx := swap.WithInvoker(ctx, callee)
	cctx = swap.WithLogInfo(cctx, "program", ix.ProgramID.String(), "depth", callee.depth)
	if err := f.exec.process(cctx, program, ix.ProgramID, infos, ix.Data); err != nil {
		return err
	}
	if err := callee.verify(); err != nil {
		return err
	}
	f.refresh(callee.keys)
	return nil
}

// provided returns true if accounts holds an info of addr that shares acct.
func provided(accounts []*swap.AccountInfo, addr swap.Address, acct *swap.Account) bool {
	for _, info := range accounts {
		if info.Key == addr {
			return info.Account == acct
		}
	}
	return false
}

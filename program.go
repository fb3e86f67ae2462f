package swap

// Program is the on-ledger logic identified by a program id. Process is
// called once per instruction addressed to the program. It receives the
// accounts named by the instruction in the same order, and the raw
// instruction data.
//
// Returning an error fails the whole transaction and every change made to
// the accounts is discarded by the runtime.
type Program interface {
	Process(ctx Context, programID Address, accounts []*AccountInfo, data []byte) error
}

// ProgramFunc allows to use a function as a Program.
type ProgramFunc func(ctx Context, programID Address, accounts []*AccountInfo, data []byte) error

var _ Program = ProgramFunc(nil)

// Process calls the function.
func (fn ProgramFunc) Process(ctx Context, programID Address, accounts []*AccountInfo, data []byte) error {
	return fn(ctx, programID, accounts, data)
}

// Invoker executes an instruction of another program from within a running
// program (cross-program invocation).
//
// accounts must contain every account named by the instruction, taken from
// the accounts the calling program received. Each entry of signerSeeds is a
// list of seeds; the address derived from it and the calling program id is
// treated as a signer of the invoked instruction.
type Invoker interface {
	Invoke(ctx Context, ix Instruction, accounts []*AccountInfo, signerSeeds ...[][]byte) error
}

// Registry is an interface to register your program, the setup side of a
// router.
type Registry interface {
	Register(programID Address, p Program)
}

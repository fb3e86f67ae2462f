package swap

// AccountMeta names an account an instruction needs and the access it
// requests to it.
type AccountMeta struct {
	Address    Address
	IsSigner   bool
	IsWritable bool
}

// Writable returns a meta for an account the instruction may modify.
func Writable(addr Address, signer bool) AccountMeta {
	return AccountMeta{Address: addr, IsSigner: signer, IsWritable: true}
}

// Readonly returns a meta for an account the instruction only reads.
func Readonly(addr Address, signer bool) AccountMeta {
	return AccountMeta{Address: addr, IsSigner: signer}
}

// Instruction is a single call of a program.
type Instruction struct {
	ProgramID Address
	Accounts  []AccountMeta
	Data      []byte
}

// NewInstruction is a helper to build an Instruction.
func NewInstruction(programID Address, data []byte, accounts ...AccountMeta) Instruction {
	return Instruction{
		ProgramID: programID,
		Accounts:  accounts,
		Data:      data,
	}
}

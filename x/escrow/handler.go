package escrow

import (
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/x/rent"
	"github.com/iov-one/swap/x/token"
)

// ProgramID is the address the escrow program is registered under.
var ProgramID = swap.ProgramIDFromName("escrow")

// RegisterRoutes adds the escrow program to the registry.
func RegisterRoutes(r swap.Registry) {
	r.Register(ProgramID, NewProcessor())
}

// Processor executes escrow instructions.
type Processor struct{}

var _ swap.Program = Processor{}

// NewProcessor returns the escrow program.
func NewProcessor() Processor {
	return Processor{}
}

// Process decodes the instruction and applies it.
func (p Processor) Process(ctx swap.Context, programID swap.Address, accounts []*swap.AccountInfo, data []byte) error {
	msg, err := Decode(data)
	if err != nil {
		return err
	}
	switch m := msg.(type) {
	case InitializeMsg:
		return p.initialize(ctx, programID, accounts, m)
	case ExchangeMsg:
		return p.exchange(ctx, programID, accounts, m)
	default:
		return errors.ErrHuman.Newf("unhandled message %T", msg)
	}
}

// initializeAccounts are the accounts of an Initialize instruction, in
// order.
type initializeAccounts struct {
	initializer *swap.AccountInfo
	temp        *swap.AccountInfo
	receiving   *swap.AccountInfo
	escrow      *swap.AccountInfo
	rent        *swap.AccountInfo
	tokenProg   *swap.AccountInfo
}

func (p Processor) initialize(ctx swap.Context, programID swap.Address, accounts []*swap.AccountInfo, m InitializeMsg) error {
	var a initializeAccounts
	if err := nextAccounts(accounts, &a.initializer, &a.temp, &a.receiving, &a.escrow, &a.rent, &a.tokenProg); err != nil {
		return err
	}
	if !a.initializer.IsSigner {
		return errors.ErrMissingRequiredSignature.Newf("initializer %s", a.initializer.Key)
	}
	if a.receiving.Owner != swap.TokenProgramID {
		return errors.ErrIncorrectProgramID.Newf("receiving account %s is owned by %s", a.receiving.Key, a.receiving.Owner)
	}
	if a.escrow.Owner != programID {
		return errors.ErrIncorrectProgramID.Newf("escrow account %s is owned by %s", a.escrow.Key, a.escrow.Owner)
	}
	r, err := rent.Load(a.rent)
	if err != nil {
		return err
	}
	if !r.IsExempt(a.escrow.Lamports, len(a.escrow.Data)) {
		return ErrNotRentExempt.Newf("escrow account holds %d lamports, needs %d",
			a.escrow.Lamports, r.MinimumBalance(len(a.escrow.Data)))
	}
	record, err := UnmarshalEscrow(a.escrow.Data)
	if err != nil {
		return err
	}
	if record.IsInitialized {
		return errors.ErrAccountAlreadyInitialized.Newf("escrow %s", a.escrow.Key)
	}
	if err := checkTokenProgram(a.tokenProg); err != nil {
		return err
	}
	authority, _, err := Authority(programID)
	if err != nil {
		return errors.Wrap(err, "derived authority")
	}

	record = &Escrow{
		IsInitialized:        true,
		Initializer:          a.initializer.Key,
		TempTokenAccount:     a.temp.Key,
		InitializerReceiving: a.receiving.Key,
		ExpectedAmount:       m.Amount,
	}
	copy(a.escrow.Data, record.Marshal())

	ix := token.NewSetAuthorityInstruction(a.temp.Key, a.initializer.Key, token.AccountOwner, &authority)
	if err := swap.Invoke(ctx, ix, []*swap.AccountInfo{a.temp, a.initializer, a.tokenProg}); err != nil {
		return errors.Wrap(err, "transfer temp account ownership")
	}

	swap.GetLogger(ctx).Info("escrow initialized",
		"escrow", a.escrow.Key.String(),
		"temp", a.temp.Key.String(),
		"expected_amount", m.Amount)
	return nil
}

// exchangeAccounts are the accounts of an Exchange instruction, in order.
type exchangeAccounts struct {
	taker                *swap.AccountInfo
	takerSending         *swap.AccountInfo
	takerReceiving       *swap.AccountInfo
	temp                 *swap.AccountInfo
	initializer          *swap.AccountInfo
	initializerReceiving *swap.AccountInfo
	escrow               *swap.AccountInfo
	tokenProg            *swap.AccountInfo
	authority            *swap.AccountInfo
}

func (p Processor) exchange(ctx swap.Context, programID swap.Address, accounts []*swap.AccountInfo, m ExchangeMsg) error {
	var a exchangeAccounts
	err := nextAccounts(accounts, &a.taker, &a.takerSending, &a.takerReceiving, &a.temp,
		&a.initializer, &a.initializerReceiving, &a.escrow, &a.tokenProg, &a.authority)
	if err != nil {
		return err
	}
	if !a.taker.IsSigner {
		return errors.ErrMissingRequiredSignature.Newf("taker %s", a.taker.Key)
	}
	record, err := UnmarshalEscrow(a.escrow.Data)
	if err != nil {
		return err
	}
	if !record.IsInitialized {
		return errors.ErrInvalidAccountData.Newf("escrow %s is not initialized", a.escrow.Key)
	}
	if a.escrow.Owner != programID {
		return errors.ErrIncorrectProgramID.Newf("escrow account %s is owned by %s", a.escrow.Key, a.escrow.Owner)
	}
	if record.TempTokenAccount != a.temp.Key {
		return errors.ErrInvalidAccountData.Newf("temp account %s does not belong to the escrow", a.temp.Key)
	}
	if record.Initializer != a.initializer.Key {
		return errors.ErrInvalidAccountData.Newf("initializer %s does not belong to the escrow", a.initializer.Key)
	}
	if record.InitializerReceiving != a.initializerReceiving.Key {
		return errors.ErrInvalidAccountData.Newf("receiving account %s does not belong to the escrow", a.initializerReceiving.Key)
	}
	if m.Amount != record.ExpectedAmount {
		return ErrExpectedAmountMismatch.Newf("escrow expects %d, got %d", record.ExpectedAmount, m.Amount)
	}
	if err := checkTokenProgram(a.tokenProg); err != nil {
		return err
	}
	authority, bump, err := Authority(programID)
	if err != nil {
		return errors.Wrap(err, "derived authority")
	}
	if a.authority.Key != authority {
		return errors.ErrInvalidAccountData.Newf("%s is not the derived authority", a.authority.Key)
	}
	if a.temp.Owner != swap.TokenProgramID {
		return errors.ErrInvalidAccountData.Newf("temp account %s is not a token account", a.temp.Key)
	}
	temp, err := token.UnmarshalAccount(a.temp.Data)
	if err != nil {
		return err
	}
	offered := temp.Amount
	refund := a.temp.Lamports + a.escrow.Lamports
	if refund < a.temp.Lamports || a.initializer.Lamports+refund < refund {
		return errors.ErrInvalidArgument.Newf("initializer %s cannot receive %d lamports", a.initializer.Key, refund)
	}
	seeds := authoritySeeds(bump)

	ix := token.NewTransferInstruction(a.takerSending.Key, a.initializerReceiving.Key, a.taker.Key, record.ExpectedAmount)
	if err := swap.Invoke(ctx, ix, []*swap.AccountInfo{a.takerSending, a.initializerReceiving, a.taker, a.tokenProg}); err != nil {
		return errors.Wrap(err, "pay initializer")
	}
	ix = token.NewTransferInstruction(a.temp.Key, a.takerReceiving.Key, authority, offered)
	if err := swap.InvokeSigned(ctx, ix, []*swap.AccountInfo{a.temp, a.takerReceiving, a.authority, a.tokenProg}, seeds); err != nil {
		return errors.Wrap(err, "pay taker")
	}
	ix = token.NewCloseAccountInstruction(a.temp.Key, a.initializer.Key, authority)
	if err := swap.InvokeSigned(ctx, ix, []*swap.AccountInfo{a.temp, a.initializer, a.authority, a.tokenProg}, seeds); err != nil {
		return errors.Wrap(err, "close temp account")
	}

	a.initializer.Lamports += a.escrow.Lamports
	a.escrow.Lamports = 0
	for i := range a.escrow.Data {
		a.escrow.Data[i] = 0
	}

	swap.GetLogger(ctx).Info("escrow exchanged",
		"escrow", a.escrow.Key.String(),
		"taker", a.taker.Key.String(),
		"offered", offered,
		"expected_amount", record.ExpectedAmount)
	return nil
}

func checkTokenProgram(info *swap.AccountInfo) error {
	if info.Key != swap.TokenProgramID {
		return errors.ErrIncorrectProgramID.Newf("%s is not the token program", info.Key)
	}
	return nil
}

// nextAccounts assigns the leading accounts to dst, in order.
func nextAccounts(accounts []*swap.AccountInfo, dst ...**swap.AccountInfo) error {
	for _, d := range dst {
		info, rest, err := swap.NextAccount(accounts)
		if err != nil {
			return err
		}
		*d, accounts = info, rest
	}
	return nil
}

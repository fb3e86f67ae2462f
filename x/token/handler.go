package token

import (
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/x/rent"
)

// RegisterRoutes adds the token program under its well known id.
func RegisterRoutes(r swap.Registry) {
	r.Register(swap.TokenProgramID, NewProcessor())
}

// Processor executes token instructions.
type Processor struct{}

var _ swap.Program = Processor{}

// NewProcessor returns the token program.
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
	case InitializeMint:
		err = p.initializeMint(programID, accounts, m)
	case InitializeAccount:
		err = p.initializeAccount(programID, accounts)
	case Transfer:
		err = p.transfer(programID, accounts, m)
	case SetAuthority:
		err = p.setAuthority(programID, accounts, m)
	case MintTo:
		err = p.mintTo(programID, accounts, m)
	case CloseAccount:
		err = p.closeAccount(programID, accounts)
	default:
		err = errors.ErrHuman.Newf("unhandled message %T", msg)
	}
	if err != nil {
		return err
	}
	swap.GetLogger(ctx).Debug("token instruction", "instruction", typeName(msg))
	return nil
}

func (p Processor) initializeMint(programID swap.Address, accounts []*swap.AccountInfo, m InitializeMint) error {
	mintInfo, accounts, err := swap.NextAccount(accounts)
	if err != nil {
		return err
	}
	rentInfo, _, err := swap.NextAccount(accounts)
	if err != nil {
		return err
	}
	if err := checkOwner(programID, mintInfo); err != nil {
		return err
	}
	mint, err := UnmarshalMint(mintInfo.Data)
	if err != nil {
		return err
	}
	if mint.IsInitialized {
		return ErrAlreadyInUse.Newf("mint %s", mintInfo.Key)
	}
	if err := requireRentExempt(rentInfo, mintInfo); err != nil {
		return err
	}
	mint.Authority = m.Authority
	mint.Decimals = m.Decimals
	mint.IsInitialized = true
	return mint.Marshal(mintInfo.Data)
}

func (p Processor) initializeAccount(programID swap.Address, accounts []*swap.AccountInfo) error {
	acctInfo, accounts, err := swap.NextAccount(accounts)
	if err != nil {
		return err
	}
	mintInfo, accounts, err := swap.NextAccount(accounts)
	if err != nil {
		return err
	}
	ownerInfo, accounts, err := swap.NextAccount(accounts)
	if err != nil {
		return err
	}
	rentInfo, _, err := swap.NextAccount(accounts)
	if err != nil {
		return err
	}
	if err := checkOwner(programID, acctInfo); err != nil {
		return err
	}
	acct, err := UnmarshalAccount(acctInfo.Data)
	if err != nil {
		return err
	}
	if acct.IsInitialized() {
		return ErrAlreadyInUse.Newf("account %s", acctInfo.Key)
	}
	if err := requireRentExempt(rentInfo, acctInfo); err != nil {
		return err
	}
	if mintInfo.Owner != programID {
		return ErrInvalidMint.Newf("%s is not a mint", mintInfo.Key)
	}
	mint, err := UnmarshalMint(mintInfo.Data)
	if err != nil || !mint.IsInitialized {
		return ErrInvalidMint.Newf("%s is not an initialized mint", mintInfo.Key)
	}

	acct.Mint = mintInfo.Key
	acct.Owner = ownerInfo.Key
	acct.Amount = 0
	acct.State = Initialized
	return acct.Marshal(acctInfo.Data)
}

func (p Processor) transfer(programID swap.Address, accounts []*swap.AccountInfo, m Transfer) error {
	srcInfo, accounts, err := swap.NextAccount(accounts)
	if err != nil {
		return err
	}
	destInfo, accounts, err := swap.NextAccount(accounts)
	if err != nil {
		return err
	}
	authInfo, _, err := swap.NextAccount(accounts)
	if err != nil {
		return err
	}
	src, err := loadAccount(programID, srcInfo)
	if err != nil {
		return err
	}
	dest, err := loadAccount(programID, destInfo)
	if err != nil {
		return err
	}
	if err := validateAuthority(src.Owner, authInfo); err != nil {
		return err
	}
	if srcInfo.Key == destInfo.Key {
		if src.Amount < m.Amount {
			return ErrInsufficientFunds.Newf("has %d, needs %d", src.Amount, m.Amount)
		}
		return nil
	}
	if err := moveTokens(src, dest, m.Amount); err != nil {
		return err
	}
	if err := src.Marshal(srcInfo.Data); err != nil {
		return err
	}
	return dest.Marshal(destInfo.Data)
}

func (p Processor) setAuthority(programID swap.Address, accounts []*swap.AccountInfo, m SetAuthority) error {
	acctInfo, accounts, err := swap.NextAccount(accounts)
	if err != nil {
		return err
	}
	authInfo, _, err := swap.NextAccount(accounts)
	if err != nil {
		return err
	}
	if m.Type != AccountOwner {
		return ErrAuthorityTypeNotSupported.Newf("authority type %d", m.Type)
	}
	acct, err := loadAccount(programID, acctInfo)
	if err != nil {
		return err
	}
	if err := validateAuthority(acct.Owner, authInfo); err != nil {
		return err
	}
	if m.NewAuthority == nil {
		return ErrInvalidInstruction.New("account owner cannot be removed")
	}
	acct.Owner = *m.NewAuthority
	return acct.Marshal(acctInfo.Data)
}

func (p Processor) mintTo(programID swap.Address, accounts []*swap.AccountInfo, m MintTo) error {
	mintInfo, accounts, err := swap.NextAccount(accounts)
	if err != nil {
		return err
	}
	destInfo, accounts, err := swap.NextAccount(accounts)
	if err != nil {
		return err
	}
	authInfo, _, err := swap.NextAccount(accounts)
	if err != nil {
		return err
	}
	if err := checkOwner(programID, mintInfo); err != nil {
		return err
	}
	mint, err := UnmarshalMint(mintInfo.Data)
	if err != nil {
		return err
	}
	if !mint.IsInitialized {
		return ErrUninitializedState.Newf("mint %s", mintInfo.Key)
	}
	dest, err := loadAccount(programID, destInfo)
	if err != nil {
		return err
	}
	if dest.Mint != mintInfo.Key {
		return ErrMintMismatch.Newf("destination %s", destInfo.Key)
	}
	if err := validateAuthority(mint.Authority, authInfo); err != nil {
		return err
	}
	if err := issueTokens(mint, dest, m.Amount); err != nil {
		return err
	}
	if err := mint.Marshal(mintInfo.Data); err != nil {
		return err
	}
	return dest.Marshal(destInfo.Data)
}

func (p Processor) closeAccount(programID swap.Address, accounts []*swap.AccountInfo) error {
	acctInfo, accounts, err := swap.NextAccount(accounts)
	if err != nil {
		return err
	}
	destInfo, accounts, err := swap.NextAccount(accounts)
	if err != nil {
		return err
	}
	authInfo, _, err := swap.NextAccount(accounts)
	if err != nil {
		return err
	}
	if acctInfo.Key == destInfo.Key {
		return errors.ErrInvalidAccountData.New("account closed into itself")
	}
	acct, err := loadAccount(programID, acctInfo)
	if err != nil {
		return err
	}
	if acct.Amount != 0 {
		return ErrNonNativeHasBalance.Newf("balance %d", acct.Amount)
	}
	if err := validateAuthority(acct.Owner, authInfo); err != nil {
		return err
	}
	if destInfo.Lamports+acctInfo.Lamports < destInfo.Lamports {
		return ErrOverflow.New("destination lamports")
	}
	destInfo.Lamports += acctInfo.Lamports
	acctInfo.Lamports = 0
	for i := range acctInfo.Data {
		acctInfo.Data[i] = 0
	}
	return nil
}

// checkOwner returns an error if the account is not owned by the program.
func checkOwner(programID swap.Address, info *swap.AccountInfo) error {
	if info.Owner != programID {
		return errors.ErrIncorrectProgramID.Newf("account %s is owned by %s", info.Key, info.Owner)
	}
	return nil
}

// loadAccount returns the initialized token account held by info.
func loadAccount(programID swap.Address, info *swap.AccountInfo) (*Account, error) {
	if err := checkOwner(programID, info); err != nil {
		return nil, err
	}
	acct, err := UnmarshalAccount(info.Data)
	if err != nil {
		return nil, err
	}
	if !acct.IsInitialized() {
		return nil, ErrUninitializedState.Newf("account %s", info.Key)
	}
	return acct, nil
}

// validateAuthority ensures that the authority account is expected and
// signed the instruction.
func validateAuthority(expected swap.Address, info *swap.AccountInfo) error {
	if info.Key != expected {
		return ErrOwnerMismatch.Newf("want %s, got %s", expected, info.Key)
	}
	if !info.IsSigner {
		return errors.ErrMissingRequiredSignature.Newf("authority %s", info.Key)
	}
	return nil
}

func requireRentExempt(rentInfo, info *swap.AccountInfo) error {
	r, err := rent.Load(rentInfo)
	if err != nil {
		return err
	}
	if !r.IsExempt(info.Lamports, len(info.Data)) {
		return ErrNotRentExempt.Newf("account %s holds %d lamports", info.Key, info.Lamports)
	}
	return nil
}

func typeName(msg interface{}) string {
	switch msg.(type) {
	case InitializeMint:
		return "initialize_mint"
	case InitializeAccount:
		return "initialize_account"
	case Transfer:
		return "transfer"
	case SetAuthority:
		return "set_authority"
	case MintTo:
		return "mint_to"
	case CloseAccount:
		return "close_account"
	}
	return "unknown"
}

package token

// moveTokens moves amount from src to dest. Both must be initialized
// accounts of the same mint.
func moveTokens(src, dest *Account, amount uint64) error {
	if src.Mint != dest.Mint {
		return ErrMintMismatch.New("source and destination")
	}
	if src.Amount < amount {
		return ErrInsufficientFunds.Newf("has %d, needs %d", src.Amount, amount)
	}
	if dest.Amount+amount < dest.Amount {
		return ErrOverflow.New("destination amount")
	}
	src.Amount -= amount
	dest.Amount += amount
	return nil
}

// issueTokens increases the supply of mint, crediting dest.
func issueTokens(mint *Mint, dest *Account, amount uint64) error {
	if mint.Supply+amount < mint.Supply {
		return ErrOverflow.New("supply")
	}
	if dest.Amount+amount < dest.Amount {
		return ErrOverflow.New("destination amount")
	}
	mint.Supply += amount
	dest.Amount += amount
	return nil
}

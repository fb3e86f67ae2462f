package app

import (
	"encoding/json"
	"io/ioutil"
	"regexp"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
)

// Genesis file format.
type Genesis struct {
	ChainID  string       `json:"chain_id"`
	AppState swap.Options `json:"app_state"`
}

// LoadGenesis reads a genesis file.
func LoadGenesis(filePath string) (Genesis, error) {
	var gen Genesis
	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return gen, errors.Wrapf(errors.ErrInvalidInput, "loading genesis file: %s", err)
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrapf(errors.ErrInvalidInput, "unmarshaling genesis file: %s", err)
	}
	return gen, nil
}

// Save writes the genesis file.
func (g Genesis) Save(filePath string) error {
	raw, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "marshal genesis: %s", err)
	}
	if err := ioutil.WriteFile(filePath, raw, 0644); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "write genesis: %s", err)
	}
	return nil
}

//------- storing chainID ---------

const chainIDKey = "internal/chainID"

var isChainID = regexp.MustCompile(`^[a-zA-Z0-9_.-]{4,20}$`).MatchString

// IsValidChainID returns true if the chain id can be used.
func IsValidChainID(chainID string) bool {
	return isChainID(chainID)
}

// loadChainID returns the chain id stored if any.
func loadChainID(kv swap.ReadOnlyKVStore) (string, error) {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(err, "chain id")
	}
	return string(v), nil
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name.
func saveChainID(kv swap.KVStore, chainID string) error {
	if !IsValidChainID(chainID) {
		return errors.ErrInvalidInput.Newf("chain id %q", chainID)
	}
	k := []byte(chainIDKey)
	if ok, err := kv.Has(k); err != nil {
		return err
	} else if ok {
		return errors.ErrInvalidInput.New("chain id already set")
	}
	return kv.Set(k, []byte(chainID))
}

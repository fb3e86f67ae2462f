package runtime

import (
	lru "github.com/hashicorp/golang-lru"
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
)

// DefaultCacheSize is the number of derived addresses remembered.
const DefaultCacheSize = 1024

// DerivedCache memoises program derived addresses used to sign
// invocations. It is safe for concurrent use.
type DerivedCache struct {
	cache *lru.Cache
}

// NewDerivedCache returns a cache holding up to size addresses.
func NewDerivedCache(size int) (*DerivedCache, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "cache size %d: %s", size, err)
	}
	return &DerivedCache{cache: c}, nil
}

// Derive returns swap.CreateProgramAddress(seeds, programID). Only
// successful derivations are cached.
func (c *DerivedCache) Derive(seeds [][]byte, programID swap.Address) (swap.Address, error) {
	key, ok := derivedKey(seeds, programID)
	if !ok {
		return swap.CreateProgramAddress(seeds, programID)
	}
	if v, ok := c.cache.Get(key); ok {
		return v.(swap.Address), nil
	}
	addr, err := swap.CreateProgramAddress(seeds, programID)
	if err != nil {
		return addr, err
	}
	c.cache.Add(key, addr)
	return addr, nil
}

// Len returns the number of cached addresses.
func (c *DerivedCache) Len() int {
	return c.cache.Len()
}

// derivedKey serializes the derivation input. Seeds that break the limits
// are never cached.
func derivedKey(seeds [][]byte, programID swap.Address) (string, bool) {
	if len(seeds) > swap.MaxSeeds {
		return "", false
	}
	buf := make([]byte, 0, swap.AddressLength+len(seeds)*(swap.MaxSeedLength+1))
	buf = append(buf, programID[:]...)
	for _, s := range seeds {
		if len(s) > swap.MaxSeedLength {
			return "", false
		}
		buf = append(buf, byte(len(s)))
		buf = append(buf, s...)
	}
	return string(buf), true
}

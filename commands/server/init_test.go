package server

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/app"
	"github.com/iov-one/swap/crypto"
	"github.com/iov-one/swap/x/escrow"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

// setupViper creates a homedir to run inside.
func setupViper(t *testing.T) (string, func()) {
	viper.Reset()
	rootDir, err := ioutil.TempDir("", "swapd-cmd")
	require.NoError(t, err)
	return rootDir, func() {
		viper.Reset()
		os.RemoveAll(rootDir)
	}
}

func run(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := RootCmd(log.NewNopLogger())
	root.SetOutput(&out)
	root.SetArgs(append([]string{"--home", home, "--log_level", "none"}, args...))
	err := root.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, home string, args ...string) string {
	t.Helper()
	out, err := run(t, home, args...)
	require.NoError(t, err)
	return out
}

func TestKeygen(t *testing.T) {
	home, cleanup := setupViper(t)
	defer cleanup()

	want, err := crypto.KeyFromMnemonic(testMnemonic, "", crypto.DefaultDerivationPath)
	require.NoError(t, err)

	out := mustRun(t, home, "keygen", "--mnemonic", testMnemonic)
	assert.Contains(t, out, "address:  "+want.PublicKey().String())
	assert.Contains(t, out, testMnemonic)
}

func TestKeygenNewMnemonic(t *testing.T) {
	home, cleanup := setupViper(t)
	defer cleanup()

	out := mustRun(t, home, "keygen")
	var mnemonic, address string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "mnemonic: ") {
			mnemonic = strings.TrimPrefix(line, "mnemonic: ")
		}
		if strings.HasPrefix(line, "address:  ") {
			address = strings.TrimPrefix(line, "address:  ")
		}
	}
	require.Len(t, strings.Fields(mnemonic), 24)
	key, err := crypto.KeyFromMnemonic(mnemonic, "", crypto.DefaultDerivationPath)
	require.NoError(t, err)
	assert.Equal(t, key.PublicKey().String(), address)
}

func TestInit(t *testing.T) {
	home, cleanup := setupViper(t)
	defer cleanup()

	extra := swap.ProgramIDFromName("extra")
	mustRun(t, home, "init", "--mnemonic", testMnemonic, "--lamports", "5000", extra.String())

	gen, err := app.LoadGenesis(filepath.Join(home, genesisFile))
	require.NoError(t, err)
	assert.Equal(t, DefaultChainID, gen.ChainID)
	assert.NotEmpty(t, gen.AppState["rent"])
	assert.NotEmpty(t, gen.AppState["accounts"])

	out := mustRun(t, home, "validate")
	assert.Contains(t, out, "1 genesis file(s) valid")

	// A second run keeps the existing state.
	mustRun(t, home, "init", "--mnemonic", testMnemonic)

	out = mustRun(t, home, "inspect", extra.String())
	assert.Contains(t, out, "lamports:    5000")
	assert.Contains(t, out, "owner:       "+swap.SystemProgramID.String())
}

func TestInitFromConfig(t *testing.T) {
	home, cleanup := setupViper(t)
	defer cleanup()

	config := "chain_id: from-config\nlamports: 777\nmnemonic: " + testMnemonic + "\n"
	require.NoError(t, ioutil.WriteFile(filepath.Join(home, "swapd.yaml"), []byte(config), 0644))
	mustRun(t, home, "init")

	gen, err := app.LoadGenesis(filepath.Join(home, genesisFile))
	require.NoError(t, err)
	assert.Equal(t, "from-config", gen.ChainID)

	key, err := crypto.KeyFromMnemonic(testMnemonic, "", crypto.DefaultDerivationPath)
	require.NoError(t, err)
	out := mustRun(t, home, "inspect", key.PublicKey().String())
	assert.Contains(t, out, "lamports:    777")
}

func TestInitFromEnv(t *testing.T) {
	home, cleanup := setupViper(t)
	defer cleanup()

	require.NoError(t, os.Setenv("SWAPD_CHAIN_ID", "from-env"))
	defer os.Unsetenv("SWAPD_CHAIN_ID")
	mustRun(t, home, "init")

	gen, err := app.LoadGenesis(filepath.Join(home, genesisFile))
	require.NoError(t, err)
	assert.Equal(t, "from-env", gen.ChainID)
}

func TestInitInvalidChainID(t *testing.T) {
	home, cleanup := setupViper(t)
	defer cleanup()

	_, err := run(t, home, "init", "--chain_id", "no")
	assert.Error(t, err)
}

func TestValidateBrokenGenesis(t *testing.T) {
	home, cleanup := setupViper(t)
	defer cleanup()

	path := filepath.Join(home, "broken.json")
	broken := `{"chain_id": "test-chain", "app_state": {"rent": {"burn_percent": 120}}}`
	require.NoError(t, ioutil.WriteFile(path, []byte(broken), 0644))
	_, err := run(t, home, "validate", path)
	assert.Error(t, err)
}

func TestDemo(t *testing.T) {
	home, cleanup := setupViper(t)
	defer cleanup()

	// Without a funded key there is no one to pay.
	_, err := run(t, home, "demo")
	assert.Error(t, err)

	mustRun(t, home, "init", "--mnemonic", testMnemonic)
	out := mustRun(t, home, "demo", "--mnemonic", testMnemonic, "--offered", "30", "--expected", "20")
	assert.Regexp(t, `initializer X +\w+ 0\n`, out)
	assert.Regexp(t, `initializer Y +\w+ 20\n`, out)
	assert.Regexp(t, `taker X +\w+ 30\n`, out)
	assert.Regexp(t, `taker Y +\w+ 0\n`, out)
	assert.Contains(t, out, "initializer lamports 10000000")
}

func TestInspectData(t *testing.T) {
	home, cleanup := setupViper(t)
	defer cleanup()

	record := escrow.Escrow{
		IsInitialized:        true,
		Initializer:          swap.ProgramIDFromName("initializer"),
		TempTokenAccount:     swap.ProgramIDFromName("temp"),
		InitializerReceiving: swap.ProgramIDFromName("receiving"),
		ExpectedAmount:       42,
	}
	out := mustRun(t, home, "inspect", "--data", "hex:"+hex.EncodeToString(record.Marshal()))
	assert.Contains(t, out, "initializer:           "+record.Initializer.String())
	assert.Contains(t, out, "expected amount:       42")

	_, err := run(t, home, "inspect", "--data", "hex:0102")
	assert.Error(t, err)
}

func TestPDA(t *testing.T) {
	home, cleanup := setupViper(t)
	defer cleanup()

	want, bump, err := escrow.Authority(escrow.ProgramID)
	require.NoError(t, err)
	out := mustRun(t, home, "pda")
	assert.Contains(t, out, "authority: "+want.String())
	assert.Contains(t, out, "program:   "+escrow.ProgramID.String())
	assert.Contains(t, out, fmt.Sprintf("bump:      %d", bump))
}

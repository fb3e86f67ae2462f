package main

import (
	"fmt"
	"os"

	"github.com/tendermint/tendermint/libs/log"

	"github.com/iov-one/swap/commands/server"
)

func main() {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "swapd")

	if err := server.RootCmd(logger).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

/*
Package std contains standard implementations of a number
of components.

It wires the builtin programs into a runtime and an application
backed by the iavl store. Start here to see how the pieces fit.
*/
package std

import (
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/app"
	"github.com/iov-one/swap/runtime"
	"github.com/iov-one/swap/store/iavl"
	"github.com/iov-one/swap/x/escrow"
	"github.com/iov-one/swap/x/rent"
	"github.com/iov-one/swap/x/system"
	"github.com/iov-one/swap/x/token"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tendermint/tendermint/libs/log"
)

// Router returns a router dispatching to the system, token and escrow
// programs.
func Router() *runtime.Router {
	r := runtime.NewRouter()
	system.RegisterRoutes(r)
	token.RegisterRoutes(r)
	escrow.RegisterRoutes(r)
	return r
}

// Initializers returns the genesis initializers of all programs. The rent
// sysvar comes first because other initializers read it.
func Initializers(exec *runtime.Executor) swap.Initializer {
	return swap.ChainInitializers{
		rent.Initializer{},
		exec,
		escrow.Initializer{},
	}
}

// Executor returns an executor of the standard programs. Metrics are
// registered with reg unless it is nil.
func Executor(reg prometheus.Registerer) (*runtime.Executor, error) {
	var opts []runtime.Option
	if reg != nil {
		m, err := runtime.NewMetrics(reg)
		if err != nil {
			return nil, err
		}
		opts = append(opts, runtime.WithMetrics(m))
	}
	return runtime.NewExecutor(Router(), opts...), nil
}

// Application constructs an application storing its state in dbPath. An
// empty dbPath keeps everything in memory.
func Application(name, dbPath string, logger log.Logger, reg prometheus.Registerer) (*app.App, error) {
	var kv swap.CommitKVStore
	if dbPath == "" {
		kv = iavl.MockCommitStore()
	} else {
		store, err := iavl.NewCommitStore(dbPath, "swap")
		if err != nil {
			return nil, err
		}
		kv = store
	}
	exec, err := Executor(reg)
	if err != nil {
		return nil, err
	}
	a, err := app.NewApp(name, kv, exec, Initializers(exec))
	if err != nil {
		return nil, err
	}
	return a.WithLogger(logger), nil
}

package swap

import (
	"context"

	"github.com/iov-one/swap/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Context is just an alias for the standard implementation.
// We use functions to extend it to our domain
type Context = context.Context

type contextKey int // local to the swap module

const (
	contextKeyLogger contextKey = iota
	contextKeyInvoker
)

// DefaultLogger is used for all context that have not
// set anything themselves
var DefaultLogger = log.NewNopLogger()

// WithLogger sets the logger for this context
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// WithLogInfo accepts keyvalue pairs, and returns another
// context like this, after passing all the keyvals to the
// Logger
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}

// GetLogger returns the currently set logger, or
// DefaultLogger if none was set
func GetLogger(ctx Context) log.Logger {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok {
		return DefaultLogger
	}
	return val
}

// WithInvoker sets the cross-program invocation entry point. Only the
// runtime should call it.
func WithInvoker(ctx Context, inv Invoker) Context {
	return context.WithValue(ctx, contextKeyInvoker, inv)
}

// GetInvoker returns the invoker set by the runtime, if any.
func GetInvoker(ctx Context) (Invoker, bool) {
	inv, ok := ctx.Value(contextKeyInvoker).(Invoker)
	return inv, ok
}

// Invoke executes given instruction of another program using the invoker
// of the context. The calling program does not sign for any derived
// address.
func Invoke(ctx Context, ix Instruction, accounts []*AccountInfo) error {
	return InvokeSigned(ctx, ix, accounts)
}

// InvokeSigned executes given instruction of another program using the
// invoker of the context, signing for every address derived from the
// calling program id and one of the signerSeeds.
func InvokeSigned(ctx Context, ix Instruction, accounts []*AccountInfo, signerSeeds ...[][]byte) error {
	inv, ok := GetInvoker(ctx)
	if !ok {
		return errors.ErrHuman.New("no invoker in context")
	}
	return inv.Invoke(ctx, ix, accounts, signerSeeds...)
}

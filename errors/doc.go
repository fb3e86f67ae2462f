/*
Package errors implements custom error interfaces for the ledger runtime and
its programs.

The idea is to reuse as many errors from this package as possible and define
custom program errors when absolutely necessary. Runtime level root errors
are declared here with Register(code, description). A program declares its
own failures with NewCustom(program, ordinal, description); the ordinal is
what the client receives, so ordinals must never be renumbered once a
program is deployed.

For reusing errors - use ErrXxx.New and ErrXxx.Newf, or Wrap/Wrapf. Test the
kind with ErrXxx.Is(err). Code(err) projects any error into the numeric
failure code: custom ordinals stay in the lower 32 bits, root error codes are
shifted into the upper 32 bits.

There is also support for stacktraces. Please ensure you create the error
using ErrXyz.New("...") or errors.Wrap(err, "...") at the point of creation to
ensure we attach a stacktrace. If you wrap multiple times, we only record the
first wrap with the stacktrace.

Once you have an error, you can use `fmt.Printf/Sprintf` to get more context
for the error
	%s is just the error message
	%+v is the full stack trace
	%v appends a compressed [filename:line] where the error was created
*/
package errors

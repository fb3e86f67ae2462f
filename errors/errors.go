package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Root errors returned by the runtime and shared by all programs. The codes
// follow the builtin program error numbering of the ledger so a client can
// tell them apart from program specific failures (see Code).
var (
	// ErrInvalidArgument is returned when an argument passed to a program
	// is invalid.
	ErrInvalidArgument = Register(2, "invalid argument")

	// ErrInvalidInstructionData is returned when the instruction data
	// cannot be used by a program.
	ErrInvalidInstructionData = Register(3, "invalid instruction data")

	// ErrInvalidAccountData is returned when the data stored in an account
	// cannot be decoded or an account does not relate to another account
	// the way it is required to.
	ErrInvalidAccountData = Register(4, "invalid account data")

	// ErrAccountDataTooSmall is returned when the account data length is
	// not sufficient to store a value.
	ErrAccountDataTooSmall = Register(5, "account data too small")

	// ErrInsufficientFunds is returned when an account has not enough
	// lamports for an operation.
	ErrInsufficientFunds = Register(6, "insufficient funds")

	// ErrIncorrectProgramID is returned when an account is not owned by
	// the expected program or an unknown program is called.
	ErrIncorrectProgramID = Register(7, "incorrect program id")

	// ErrMissingRequiredSignature is returned when an account that must
	// authorize an operation did not sign it.
	ErrMissingRequiredSignature = Register(8, "missing required signature")

	// ErrAccountAlreadyInitialized is returned when initialization is
	// requested for an account that is already in use.
	ErrAccountAlreadyInitialized = Register(9, "account already initialized")

	// ErrUninitializedAccount is returned when an account is used before
	// it was initialized.
	ErrUninitializedAccount = Register(10, "uninitialized account")

	// ErrNotEnoughAccountKeys is returned when an instruction is given
	// fewer accounts than it requires.
	ErrNotEnoughAccountKeys = Register(11, "not enough account keys")

	// ErrMaxSeedLengthExceeded is returned when a derived address seed is
	// too long or there are too many seeds.
	ErrMaxSeedLengthExceeded = Register(13, "max seed length exceeded")

	// ErrInvalidSeeds is returned when seeds do not produce a valid
	// derived address.
	ErrInvalidSeeds = Register(14, "invalid seeds")

	// ErrAccountNotRentExempt is returned by the runtime when an account
	// would be left below the rent exemption balance.
	ErrAccountNotRentExempt = Register(16, "account not rent exempt")

	// ErrInvalidInput stands for general input problems indication that
	// are not tied to a single instruction, ie. transaction encoding.
	ErrInvalidInput = Register(40, "invalid input")

	// ErrNotFound is used when a requested entity is not present.
	ErrNotFound = Register(41, "not found")

	// ErrInvalidSignature is returned when a transaction signature does
	// not verify.
	ErrInvalidSignature = Register(42, "invalid signature")

	// ErrHuman is returned when application reaches a code path which should not
	// ever be reached if the code was written as expected by the framework
	ErrHuman = Register(43, "coding error")

	// ErrDatabase is returned when a store cannot be read or written.
	ErrDatabase = Register(44, "database error")

	// Instruction verification failures. These are produced by the
	// runtime after a program returned successfully but broke one of the
	// account ownership rules.

	ErrReadonlyModified          = Register(100, "instruction modified a readonly account")
	ErrExternalDataModified      = Register(101, "instruction modified data of an account it does not own")
	ErrExternalLamportSpend      = Register(102, "instruction spent lamports of an account it does not own")
	ErrUnbalancedInstruction     = Register(103, "sum of account balances before and after instruction do not match")
	ErrModifiedProgramID         = Register(104, "instruction changed the owner of an account")
	ErrExecutableModified        = Register(105, "instruction changed executable flag of an account")
	ErrPrivilegeEscalation       = Register(106, "cross-program invocation with unauthorized signer or writable account")
	ErrCallDepth                 = Register(107, "cross-program invocation call depth too deep")
	ErrMissingAccount            = Register(108, "cross-program invocation account not provided")
	ErrReentrancyNotAllowed      = Register(109, "cross-program invocation reentrancy not allowed")
	ErrDuplicateAccountOutOfSync = Register(110, "duplicate account out of sync")

	// ErrPanic is only set when we recover from a panic, so we know to
	// redact potentially sensitive system info
	ErrPanic = Register(111222, "panic")
)

// Register returns an error instance that should be used as the base for
// creating error instances during runtime.
//
// Popular root errors are declared in this package, programs declare their
// own failures with NewCustom. This function ensures that no error code is
// used twice. Attempt to reuse an error code results in panic.
//
// Use this function only during a program startup phase.
func Register(code uint32, description string) *Error {
	if e, ok := usedCodes[code]; ok {
		if e == nil {
			panic(fmt.Sprintf("error code %d is reserved", code))
		}
		panic(fmt.Sprintf("error with code %d is already registered: %q", code, e.desc))
	}
	err := &Error{
		code: code,
		desc: description,
	}
	usedCodes[err.code] = err
	return err
}

// usedCodes is keeping track of used codes to ensure their uniqueness. No two
// error instances should share the same error code.
var usedCodes = map[uint32]*Error{
	// Builtin code 1 stands for a custom error with ordinal zero.
	1: nil,
}

// Error represents a root error.
//
// The runtime is using root errors to categorize issues. Each instance
// created during the runtime should wrap one of the declared root errors.
// This allows error tests and returning all errors to the client in a safe
// manner.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

// Code returns the numeric code of this root error, as registered.
func (e Error) Code() uint32 {
	return e.code
}

// New returns a new error. Returned instance is having the root cause set to
// this error. Below two lines are equal
//   e.New("my description")
//   Wrap(e, "my description")
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Newf is basically New with formatting capabilities
func (e *Error) Newf(description string, args ...interface{}) error {
	return e.New(fmt.Sprintf(description, args...))
}

// Is check if given error instance is of a given kind/type. This involves
// unwrapping given error using the Cause method if available.
func (kind *Error) Is(err error) bool {
	// Reflect usage is necessary to correctly compare with
	// a nil implementation of an error.
	if kind == nil {
		if err == nil {
			return true
		}
		return reflect.ValueOf(err).IsNil()
	}

	for {
		if err == kind {
			return true
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return false
		}
	}
}

// Wrap extends given error with an additional information.
//
// If the wrapped error does not provide a code (ie. stdlib errors), it will
// be labeled as internal error.
//
// If err is nil, this returns nil, avoiding the need for an if statement when
// wrapping a error returned at the end of a function
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}

	// If this error does not carry the stacktrace information yet, attach
	// one. This should be done only once per error at the lowest frame
	// possible (most inner wrap).
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}

	return &wrappedError{
		parent: err,
		msg:    description,
	}
}

// Wrapf extends given error with an additional information.
//
// This function works like Wrap function with additional funtionality of
// formatting the input as specified.
func Wrapf(err error, format string, args ...interface{}) error {
	desc := fmt.Sprintf(format, args...)
	return Wrap(err, desc)
}

type wrappedError struct {
	// This error layer description.
	msg string
	// The underlying error that triggered this one.
	parent error
}

func (e *wrappedError) Error() string {
	return fmt.Sprintf("%s: %s", e.msg, e.parent.Error())
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Recover captures a panic and stop its propagation. If panic happens it is
// transformed into a ErrPanic instance and assigned to given error. Call this
// function using defer in order to work as expected.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

// causer is an interface implemented by an error that supports wrapping. Use
// it to test if an error wraps another error instance.
type causer interface {
	Cause() error
}

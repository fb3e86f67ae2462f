package errors

import (
	"fmt"
	"reflect"
)

// CustomError is a failure declared by a program. Custom errors are scoped
// by program name, so two programs may use the same ordinal. The ordinal is
// what a client receives as the failure code (see Code).
type CustomError struct {
	program string
	code    uint32
	desc    string
}

// customCodes is keeping track of used ordinals per program.
var customCodes = map[string]map[uint32]*CustomError{}

// NewCustom registers a program specific error. Ordinals must be unique
// within a program. Attempt to reuse an ordinal results in panic.
//
// Use this function only during a program startup phase.
func NewCustom(program string, code uint32, description string) *CustomError {
	codes, ok := customCodes[program]
	if !ok {
		codes = make(map[uint32]*CustomError)
		customCodes[program] = codes
	}
	if e, ok := codes[code]; ok {
		panic(fmt.Sprintf("%s error with code %d is already registered: %q", program, code, e.desc))
	}
	err := &CustomError{program: program, code: code, desc: description}
	codes[code] = err
	return err
}

func (e CustomError) Error() string {
	return e.desc
}

// Program returns the name of the program that declared this error.
func (e CustomError) Program() string {
	return e.program
}

// Ordinal returns the program scoped code of this error.
func (e CustomError) Ordinal() uint32 {
	return e.code
}

// New returns a new error with the root cause set to this error.
func (e *CustomError) New(description string) error {
	return Wrap(e, description)
}

// Newf is New with formatting capabilities.
func (e *CustomError) Newf(description string, args ...interface{}) error {
	return e.New(fmt.Sprintf(description, args...))
}

// Is returns true if given error is or wraps this custom error.
func (kind *CustomError) Is(err error) bool {
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

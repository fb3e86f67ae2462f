package errors

import (
	"errors"
	"fmt"
	"reflect"
)

const (
	// SuccessCode is returned for a nil error.
	SuccessCode uint64 = 0

	// builtinShift places root error codes in the upper half of the code,
	// leaving the lower half for program custom ordinals.
	builtinShift = 32

	// CustomZeroCode is the code of a custom error with ordinal zero. Zero
	// itself means success, so the ordinal is moved into the builtin range.
	CustomZeroCode = uint64(1) << builtinShift

	// All unclassified errors that do not provide a code are clubbed
	// under an internal error code and a generic message instead of
	// detailed error string.
	internalCode uint64 = 0xFFFFFFFF << builtinShift
	internalLog         = "internal error"
)

// Code projects an error into the numeric failure code reported to the
// client. Program custom errors map to their ordinal, root errors map to
// their registered code shifted into the upper 32 bits and everything else
// is an internal error.
func Code(err error) uint64 {
	if errIsNil(err) {
		return SuccessCode
	}
	for {
		switch e := err.(type) {
		case *CustomError:
			if e.code == 0 {
				return CustomZeroCode
			}
			return uint64(e.code)
		case *Error:
			return uint64(e.code) << builtinShift
		}
		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return internalCode
		}
	}
}

// Info returns the code and log message that should be handed to a client.
// When not running in a debug mode all messages of errors that do not
// provide code information are replaced with generic "internal error".
func Info(err error, debug bool) (uint64, string) {
	if errIsNil(err) {
		return SuccessCode, ""
	}

	if code := Code(err); code != internalCode {
		if debug {
			// Try to trigger full information formatting. This
			// might produce a stacktrace.
			return code, fmt.Sprintf("%+v", err)
		}
		return code, err.Error()
	}

	if debug {
		return internalCode, fmt.Sprintf("%+v", err)
	}
	return internalCode, internalLog
}

// Redact replace all errors that do not initialize with a registered error
// with a generic internal error instance. This function is supposed to hide
// implementation details errors and leave only those that the runtime
// originates.
//
// This is a no-operation function when running in debug mode.
func Redact(err error, debug bool) error {
	if debug {
		return err
	}
	if ErrPanic.Is(err) {
		return errors.New(internalLog)
	}
	if Code(err) == internalCode {
		return errors.New(internalLog)
	}
	return err
}

// errIsNil returns true if value represented by the given error is nil.
//
// Most of the time a simple == check is enough. There is a very narrowed
// spectrum of cases (mostly in tests) where a more sophisticated check is
// required.
func errIsNil(err error) bool {
	if err == nil {
		return true
	}
	if val := reflect.ValueOf(err); val.Kind() == reflect.Ptr {
		return val.IsNil()
	}
	return false
}

/*******************************************************************************
 These wrapper functions exist as a convenience so that users of this package
 do not need to also import the official "errors" package, or pkg/errors, to
 use the wrapped functions.
*******************************************************************************/

package comerr

import (
	goerrors "errors"

	"github.com/pkg/errors"
)

func New(text string) error {
	return errors.New(text)
}

// Wrap annotates err with message and a captured stack trace.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, message)
}

// Wrapf annotates err with a formatted message and a captured stack trace.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, format, args...)
}

func Unwrap(err error) error {
	return goerrors.Unwrap(err)
}

func Is(err error, target error) bool {
	return goerrors.Is(err, target)
}

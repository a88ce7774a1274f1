package terminal

import "github.com/samber/oops"

// CodeInit is the error code for terminal start-up failures.
const CodeInit = "TERMINAL_INIT"

// ErrInit wraps a screen creation or initialization failure.
func ErrInit(cause error) error {
	return oops.Code(CodeInit).Wrapf(cause, "initializing terminal")
}

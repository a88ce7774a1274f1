package lua

import (
	"errors"

	"github.com/samber/oops"
)

// ErrStateClosed is returned when operating on a closed state.
var ErrStateClosed = errors.New("lua state is closed")

// CodeLoad is the error code for scripts that fail to load.
const CodeLoad = "PLUGIN_LOAD"

// ErrLoad wraps a script load failure.
func ErrLoad(script string, cause error) error {
	return oops.Code(CodeLoad).
		With("script", script).
		Wrapf(cause, "loading plugin %s", script)
}

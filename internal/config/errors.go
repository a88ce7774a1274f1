package config

import "github.com/samber/oops"

// Error codes for configuration failures.
const (
	CodeRead    = "CONFIG_READ"
	CodeParse   = "CONFIG_PARSE"
	CodeInvalid = "CONFIG_INVALID"
)

// ErrRead creates an error for an unreadable configuration file.
func ErrRead(path string, cause error) error {
	return oops.Code(CodeRead).
		With("path", path).
		Wrapf(cause, "reading config file %s", path)
}

// ErrParse creates an error for malformed TOML.
func ErrParse(source string, line, column int, cause error) error {
	b := oops.Code(CodeParse).With("source", source)
	if line > 0 {
		b = b.With("line", line, "column", column)
	}
	return b.Wrapf(cause, "parsing config %s", source)
}

// ErrInvalid creates an error for a value that fails validation.
func ErrInvalid(field, reason string) error {
	return oops.Code(CodeInvalid).
		With("field", field).
		Errorf("invalid %s: %s", field, reason)
}

// Code returns the oops code carried by err, or "".
func Code(err error) string {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}
	code, _ := oopsErr.Code().(string)
	return code
}

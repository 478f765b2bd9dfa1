package seq

import "errors"

// Errors returned by this package are wrapped around one of these, so
// callers can check with errors.Is().
var (
	ErrShape    = errors.New("sequences are not all the same length")
	ErrValue    = errors.New("invalid value")
	ErrExists   = errors.New("file exists")
	ErrNotFound = errors.New("no such sequence")
)

// trimStr trims a string to n bytes if it is longer. Used to keep
// error messages short.
func trimStr(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// 29 Apr 2020

package common

import (
	"fmt"
	"io"
	"os"
)

const (
	ExitSuccess = iota
	ExitFailure
	ExitUsageError
)

const GapChar byte = '-' // a minus sign is always used for gaps

// IsGap is true for the gap character. It is a function so callers
// do not have to know what the gap character is.
func IsGap(c byte) bool { return c == GapChar }

// WrtTemp writes a string to a temporary file and returns
// the filename. It is used all over the place in testing.
func WrtTemp(s string) (string, error) {
	f_tmp, err := os.CreateTemp("", "_del_me_testing")
	if err != nil {
		return "", fmt.Errorf("tempfile fail: %w", err)
	}
	defer f_tmp.Close()

	if _, err := io.WriteString(f_tmp, s); err != nil {
		return "", fmt.Errorf("writing string to temp file %v: %w", f_tmp.Name(), err)
	}
	return f_tmp.Name(), nil
}

// TmpName gives back the name of a temporary file which does not
// exist. Useful for checking that something gets written.
func TmpName() (string, error) {
	f_tmp, err := os.CreateTemp("", "_del_me_testing")
	if err != nil {
		return "", fmt.Errorf("tempfile fail: %w", err)
	}
	name := f_tmp.Name()
	f_tmp.Close()
	if err := os.Remove(name); err != nil {
		return "", err
	}
	return name, nil
}

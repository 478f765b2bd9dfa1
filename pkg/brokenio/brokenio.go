// brokenio is a wrapper around an io.Reader for testing. It lets a read
// fail part of the way through a file, or gives back nothing at all,
// which is what one often sees with a zero length file.
// Typical use: You have a reader for a sequence file. You write
// reader = brokenio.NewReader(reader) and set where it should break.
// Everything then functions as before, but with an artificial error.
// Failures are at a fixed place, not random, so tests repeat.

package brokenio

import (
	"errors"
	"fmt"
	"io"
)

// ErrBroken is what a broken reader returns, unless told otherwise.
var ErrBroken = errors.New("brokenio: artificial read failure")

// A Reader passes data through from the wrapped reader until failAt
// bytes have gone through. Then it returns err.
type Reader struct {
	rdr_orig io.Reader // Wrapped reader
	failAt   int       // fail after this many bytes, -1 for never
	zeroFile bool      // first read gives io.EOF
	err      error
	nCalled  int
	nByte    int
}

// NewReader returns a new Reader - a wrapper around the old one. It
// does not fail until SetFailAt or SetZeroFile is called.
func NewReader(rIn io.Reader) *Reader {
	return &Reader{rdr_orig: rIn, failAt: -1, err: ErrBroken}
}

// SetFailAt sets the number of bytes which get through before the
// error.
func (r *Reader) SetFailAt(n int) { r.failAt = n }

// SetErr changes the error to be returned.
func (r *Reader) SetErr(err error) { r.err = err }

// SetZeroFile makes the first read look like the end of a zero
// length file.
func (r *Reader) SetZeroFile(z bool) { r.zeroFile = z }

// Read wraps the original reader and sums up the amount of data that
// has gone through.
func (r *Reader) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.nCalled == 0 && r.zeroFile {
		r.nCalled++
		return 0, io.EOF
	}
	r.nCalled++
	if r.failAt >= 0 {
		left := r.failAt - r.nByte
		if left <= 0 {
			return 0, r.err
		}
		if len(p) > left {
			p = p[:left]
		}
	}
	n, err = r.rdr_orig.Read(p)
	r.nByte += n
	return n, err
}

// String says how much data has gone through.
func (r *Reader) String() string {
	return fmt.Sprintf("%d calls and %d bytes", r.nCalled, r.nByte)
}

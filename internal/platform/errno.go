package platform

import "syscall"

// cgoErr normalizes the error cgo's two-result call form returns: a zero
// syscall.Errno becomes nil, and any other error is returned unchanged.
// cgo clears errno before the call and reports it only when it is non-zero
// afterwards, so a call that succeeds but leaves errno set still yields a
// non-nil error here.
func cgoErr(err error) error {
	if errno, ok := err.(syscall.Errno); ok && errno == 0 {
		return nil
	}
	return err
}

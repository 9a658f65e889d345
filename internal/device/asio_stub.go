//go:build !windows

package device

import "errors"

// NewASIO is only available on Windows.
func NewASIO(name string, rate uint32) (Duplex, error) {
	return nil, errors.New("asio devices are only supported on windows")
}

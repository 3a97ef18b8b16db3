// Package kitcrypto provides the cryptographic helpers wallet-kit's bundled
// keystore relies on: age passphrase encryption and secure memory handling.
package kitcrypto

import (
	"runtime"
	"sync"
)

// SecureBytes wraps a sensitive byte slice with mlock-backed memory and
// explicit zeroization.
type SecureBytes struct {
	data   []byte
	locked bool
	mu     sync.Mutex
}

// NewSecureBytes allocates a SecureBytes of the given size. The memory is
// locked when the platform supports it; allocation never fails on lock
// failure.
func NewSecureBytes(size int) *SecureBytes {
	sb := &SecureBytes{
		data: make([]byte, size),
	}
	sb.locked = mlock(sb.data)

	// Finalizer covers callers that forget Destroy.
	runtime.SetFinalizer(sb, func(s *SecureBytes) {
		s.Destroy()
	})

	return sb
}

// SecureBytesFromSlice copies data into freshly locked memory. The caller
// still owns, and should zero, the original slice.
func SecureBytesFromSlice(data []byte) *SecureBytes {
	sb := NewSecureBytes(len(data))
	copy(sb.data, data)
	return sb
}

// Bytes returns the underlying slice, or nil after Destroy.
func (s *SecureBytes) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

// IsLocked reports whether the memory is mlocked.
func (s *SecureBytes) IsLocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locked
}

// Len returns the data length, or 0 after Destroy.
func (s *SecureBytes) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

// Destroy zeroes and unlocks the memory. Safe to call multiple times.
func (s *SecureBytes) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return
	}

	ZeroBytes(s.data)

	if s.locked {
		munlock(s.data)
		s.locked = false
	}

	s.data = nil
	runtime.SetFinalizer(s, nil)
}

// ZeroBytes overwrites data with zeros.
func ZeroBytes(data []byte) {
	for i := range data {
		data[i] = 0
	}
}

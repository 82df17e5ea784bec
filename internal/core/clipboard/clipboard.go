// Package clipboard is the boundary to whatever holds copied text.
package clipboard

import (
	"errors"
	"fmt"
	"sync"

	sysclip "github.com/atotto/clipboard"

	"github.com/bethropolis/tidecore/internal/logger"
)

// ErrEmpty is returned when nothing has been copied yet.
var ErrEmpty = errors.New("clipboard is empty")

// Provider reads and writes clipboard text.
type Provider interface {
	Read() (string, error)
	Write(text string) error
}

// Register is an in-process clipboard. It is safe for concurrent use, so
// one register can back several editors.
type Register struct {
	mu   sync.Mutex
	text string
	set  bool
}

// NewRegister creates an empty register.
func NewRegister() *Register {
	return &Register{}
}

func (r *Register) Read() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.set {
		return "", ErrEmpty
	}
	return r.text, nil
}

func (r *Register) Write(text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.text = text
	r.set = true
	return nil
}

// System uses the OS clipboard and keeps a register as fallback for hosts
// without one (headless sessions, missing xclip/xsel).
type System struct {
	fallback *Register
	readAll  func() (string, error)
	writeAll func(string) error
}

// NewSystem creates a provider backed by the OS clipboard.
func NewSystem() *System {
	return &System{
		fallback: NewRegister(),
		readAll:  sysclip.ReadAll,
		writeAll: sysclip.WriteAll,
	}
}

// Available reports whether an OS clipboard is usable.
func (s *System) Available() bool {
	return !sysclip.Unsupported
}

func (s *System) Write(text string) error {
	// The register always holds the latest copy so a failing OS clipboard
	// never loses it.
	_ = s.fallback.Write(text)
	if err := s.writeAll(text); err != nil {
		logger.Warnf("Clipboard: system write failed, using register: %v", err)
	}
	return nil
}

func (s *System) Read() (string, error) {
	text, err := s.readAll()
	if err != nil {
		logger.DebugTagf("clipboard", "Clipboard: system read failed, using register: %v", err)
		text, err = s.fallback.Read()
		if err != nil {
			return "", fmt.Errorf("read clipboard: %w", err)
		}
	}
	return text, nil
}

// New returns the system provider when useSystem is set, else a register.
func New(useSystem bool) Provider {
	if useSystem {
		return NewSystem()
	}
	return NewRegister()
}

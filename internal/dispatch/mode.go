package dispatch

import (
	"fmt"
	"strings"
)

// Mode switches test-only behavior of the engine
type Mode int

const (
	// ModeProduction answers every request
	ModeProduction Mode = iota
	// ModeTest additionally swallows ErrSilentFail
	ModeTest
)

func (m Mode) String() string {
	switch m {
	case ModeProduction:
		return "production"
	case ModeTest:
		return "test"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "production" or "test"
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "production":
		return ModeProduction, nil
	case "test":
		return ModeTest, nil
	default:
		return ModeProduction, fmt.Errorf("unknown dispatch mode %q", s)
	}
}

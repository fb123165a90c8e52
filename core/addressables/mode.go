package addressables

import (
	"fmt"
	"strings"
)

// Mode selects how redirected loads are served.
type Mode int

const (
	// ModeLive loads through asynchronous operations with reference counting.
	ModeLive Mode = iota
	// ModeAuthoring returns a direct view of the source asset; nothing is counted.
	ModeAuthoring
)

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "live":
		return ModeLive, nil
	case "authoring", "editor":
		return ModeAuthoring, nil
	default:
		return ModeLive, fmt.Errorf("unknown mode %q", s)
	}
}

func (m Mode) String() string {
	switch m {
	case ModeAuthoring:
		return "authoring"
	default:
		return "live"
	}
}

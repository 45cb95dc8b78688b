package stock

import (
	"fmt"
	"strings"

	"github.com/nxmods/stockcheck/pkg/errclass"
)

// Platform selects which console's stock hash table is used.
type Platform int

const (
	// WiiU is the Wii U release, game version 1.5.0.
	WiiU Platform = iota
	// Switch is the Nintendo Switch release, game version 1.6.0.
	Switch
)

// Platforms returns every supported platform.
func Platforms() []Platform {
	return []Platform{WiiU, Switch}
}

// ParsePlatform parses a platform name. Matching is case-insensitive.
func ParsePlatform(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wiiu", "wii-u", "wii_u", "u", "cemu":
		return WiiU, nil
	case "switch", "nx":
		return Switch, nil
	default:
		return 0, errclass.ErrPlatformUnknown.WithMessagef("unknown platform %q (must be wiiu or switch)", s)
	}
}

func (p Platform) String() string {
	switch p {
	case WiiU:
		return "wiiu"
	case Switch:
		return "switch"
	default:
		return fmt.Sprintf("platform(%d)", int(p))
	}
}

// GameVersion is the game version the platform's stock table describes.
func (p Platform) GameVersion() string {
	switch p {
	case WiiU:
		return "1.5.0"
	case Switch:
		return "1.6.0"
	default:
		return ""
	}
}

// Set implements pflag.Value.
func (p *Platform) Set(s string) error {
	v, err := ParsePlatform(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Type implements pflag.Value.
func (p *Platform) Type() string {
	return "platform"
}

// MarshalText implements encoding.TextMarshaler.
func (p Platform) MarshalText() ([]byte, error) {
	if p != WiiU && p != Switch {
		return nil, errclass.ErrPlatformUnknown.WithMessagef("cannot marshal %s", p)
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Platform) UnmarshalText(text []byte) error {
	return p.Set(string(text))
}

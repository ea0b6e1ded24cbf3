package news

import (
	"fmt"
	"strings"
)

// Robots controls search-engine indexing of a rendered news entry.
type Robots uint8

const (
	// RobotsUnset inherits the hosting page's setting.
	RobotsUnset Robots = iota
	RobotsAllow
	RobotsDeny
)

// ParseRobots converts an attribute or config value into a Robots setting.
// Empty, "auto" and "inherit" all mean unset.
func ParseRobots(s string) (Robots, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto", "inherit":
		return RobotsUnset, nil
	case "true", "allow":
		return RobotsAllow, nil
	case "false", "deny":
		return RobotsDeny, nil
	default:
		return RobotsUnset, fmt.Errorf("invalid allowRobots value %q", s)
	}
}

func (r Robots) String() string {
	switch r {
	case RobotsAllow:
		return "allow"
	case RobotsDeny:
		return "deny"
	default:
		return "inherit"
	}
}

// Allowed reports whether indexing is permitted, given the hosting page's
// own setting.
func (r Robots) Allowed(inherited bool) bool {
	switch r {
	case RobotsAllow:
		return true
	case RobotsDeny:
		return false
	default:
		return inherited
	}
}

func (r Robots) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Robots) UnmarshalText(text []byte) error {
	parsed, err := ParseRobots(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

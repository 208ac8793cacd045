package spectrum

import (
	"fmt"
	"strings"
)

// BirthSex is a display-only marker. The zero value is unset.
type BirthSex int

const (
	BirthSexUnset BirthSex = iota
	BirthSexFemale
	BirthSexMale
)

func (s BirthSex) String() string {
	switch s {
	case BirthSexFemale:
		return "F"
	case BirthSexMale:
		return "M"
	default:
		return ""
	}
}

func (s BirthSex) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *BirthSex) UnmarshalText(b []byte) error {
	v, err := ParseBirthSex(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func ParseBirthSex(s string) (BirthSex, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "unset":
		return BirthSexUnset, nil
	case "f", "female":
		return BirthSexFemale, nil
	case "m", "male":
		return BirthSexMale, nil
	}
	return BirthSexUnset, fmt.Errorf("unknown birth sex %q", s)
}

// Spawn is the slider default when the marker is set.
func (s BirthSex) Spawn() (Position, bool) {
	switch s {
	case BirthSexFemale:
		return 25, true
	case BirthSexMale:
		return 75, true
	}
	return 0, false
}

// Toggle applies a click on the marker `next`. Clicking the active marker
// clears it and keeps the slider where it is; choosing a different one snaps
// the slider to that marker's spawn point.
func Toggle(prev, next BirthSex, cur Position) (BirthSex, Position) {
	if next == BirthSexUnset || prev == next {
		return BirthSexUnset, cur
	}
	p, _ := next.Spawn()
	return next, p
}

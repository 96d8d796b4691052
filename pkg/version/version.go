package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Version of sitekit
const (
	Major = 0
	Minor = 3
	Patch = 0
)

var (
	ErrInvalidVersion = errors.New("invalid version")
	ErrIncompatible   = errors.New("incompatible version")
)

type Version struct {
	Major int
	Minor int
	Patch int
}

func current() Version {
	return Version{Major: Major, Minor: Minor, Patch: Patch}
}

func String() string {
	return current().String()
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

func Parse(s string) (Version, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")

	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("%w: %q (expected x.y.z)", ErrInvalidVersion, s)
	}

	var nums [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

func (v Version) Compare(other Version) int {
	switch {
	case v.Major != other.Major:
		return cmpInt(v.Major, other.Major)
	case v.Minor != other.Minor:
		return cmpInt(v.Minor, other.Minor)
	default:
		return cmpInt(v.Patch, other.Patch)
	}
}

// CheckConfig rejects config files written for a newer sitekit or another
// major version. An empty string is accepted.
func CheckConfig(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	v, err := Parse(s)
	if err != nil {
		return err
	}

	cur := current()
	if v.Major != cur.Major || v.Compare(cur) > 0 {
		return fmt.Errorf("%w: config wants %s, running %s", ErrIncompatible, v, cur)
	}
	return nil
}

func cmpInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

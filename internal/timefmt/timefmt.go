// Package timefmt validates the strict HH:MM wall-clock format users type
// when setting reminders.
package timefmt

import (
	"errors"
	"fmt"
	"strconv"
)

var ErrBadTime = errors.New("time must be HH:MM, e.g. 23:00")

// ParseHHMM accepts exactly "HH:MM" (5 characters, 24-hour clock) and returns
// the normalized form. "7:00" is rejected; users retype with a leading zero.
func ParseHHMM(s string) (string, error) {
	if len(s) != 5 || s[2] != ':' {
		return "", ErrBadTime
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return "", ErrBadTime
		}
	}
	h, _ := strconv.Atoi(s[:2])
	m, _ := strconv.Atoi(s[3:])
	if h > 23 || m > 59 {
		return "", ErrBadTime
	}
	return fmt.Sprintf("%02d:%02d", h, m), nil
}

// SplitHHMM breaks an already-validated "HH:MM" into its parts.
func SplitHHMM(s string) (hour, minute int, err error) {
	norm, err := ParseHHMM(s)
	if err != nil {
		return 0, 0, err
	}
	h, _ := strconv.Atoi(norm[:2])
	m, _ := strconv.Atoi(norm[3:])
	return h, m, nil
}

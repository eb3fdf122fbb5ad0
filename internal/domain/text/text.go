// Package text holds the small string helpers shared by the record parsers.
package text

import (
	"math"
	"strings"
)

// whitespace is the C-locale isspace set.
const whitespace = " \t\n\v\f\r"

// Trim removes leading and trailing whitespace.
// An all-whitespace input yields the empty string.
func Trim(s string) string {
	return strings.Trim(s, whitespace)
}

// ParseInt applies the best-effort integer rule used for every numeric field:
// after trimming, an optional sign followed by at least one digit is read and
// anything after the digits is ignored. When no digit is present the value is
// 0 and ok is false. Values outside the int range saturate and report !ok.
func ParseInt(s string) (value int, ok bool) {
	s = Trim(s)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	digits := 0
	var n uint64
	overflow := false
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		if !overflow {
			d := uint64(s[digits] - '0')
			if n > (math.MaxUint64-d)/10 {
				overflow = true
			} else {
				n = n*10 + d
			}
		}
		digits++
	}
	if digits == 0 {
		return 0, false
	}

	if neg {
		switch {
		case overflow || n > uint64(math.MaxInt)+1:
			return math.MinInt, false
		case n == uint64(math.MaxInt)+1:
			return math.MinInt, true
		}
		return -int(n), true
	}
	if overflow || n > uint64(math.MaxInt) {
		return math.MaxInt, false
	}
	return int(n), true
}

// IntOrZero is ParseInt without the ok flag.
func IntOrZero(s string) int {
	v, _ := ParseInt(s)
	return v
}

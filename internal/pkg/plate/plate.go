// Package plate validates Korean vehicle registration numbers.
package plate

import "regexp"

// Two or three leading digits, one Hangul syllable, four trailing digits.
// e.g. "12가3456" or "123가4567".
var numberPattern = regexp.MustCompile(`^\d{2,3}[가-힣]\d{4}$`)

// Valid reports whether s is a well-formed plate number.
func Valid(s string) bool {
	return numberPattern.MatchString(s)
}

// LastFour returns the last four characters of a plate number. For any
// valid plate these are the four trailing digits.
func LastFour(s string) string {
	r := []rune(s)
	if len(r) < 4 {
		return s
	}
	return string(r[len(r)-4:])
}

var lastFourPattern = regexp.MustCompile(`^\d{4}$`)

// ValidLastFour reports whether s is exactly four digits.
func ValidLastFour(s string) bool {
	return lastFourPattern.MatchString(s)
}

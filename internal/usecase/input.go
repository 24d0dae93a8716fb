package usecase

import "strings"

// Inputs are the three text buffers an Apply reads.
type Inputs struct {
	Time        string
	Description string
	Index       string
}

// acceptTimeText keeps short inputs to digits and colons; from three
// characters on a colon is required, and six or more are refused.
func acceptTimeText(s string) bool {
	if len(s) >= 6 {
		return false
	}
	if strings.IndexFunc(s, func(r rune) bool { return r != ':' && !isDigit(r) }) >= 0 {
		return false
	}
	return len(s) < 3 || strings.ContainsRune(s, ':')
}

// acceptIndexText allows clearing the buffer or up to two digits.
func acceptIndexText(s string) bool {
	if s == "" {
		return true
	}
	if len(s) >= 3 {
		return false
	}
	for _, r := range s {
		if !isDigit(r) {
			return false
		}
	}
	return true
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

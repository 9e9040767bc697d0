package domain

import (
	dErrors "registration/pkg/domain-errors"
)

// NationalIDLength is the only accepted national ID length.
const NationalIDLength = 9

// NationalID is a checksum-validated 9-digit national identifier.
//
// Invariants:
//   - Exactly 9 ASCII digits
//   - Passes the alternating 1/2 weight checksum
type NationalID struct {
	value string
}

// ParseNationalID validates s and returns it as a NationalID.
// Shape problems are reported as CodeInvalidInput, checksum failures as CodeValidation.
func ParseNationalID(s string) (NationalID, error) {
	if !isNineDigits(s) {
		return NationalID{}, dErrors.New(dErrors.CodeInvalidInput, "national ID must be exactly 9 digits")
	}
	if !checksumOK(s) {
		return NationalID{}, dErrors.New(dErrors.CodeValidation, "national ID checksum mismatch")
	}
	return NationalID{value: s}, nil
}

// ValidNationalID reports whether id is 9 digits with a valid check digit.
// Any other shape is rejected before the checksum is computed.
func ValidNationalID(id string) bool {
	return isNineDigits(id) && checksumOK(id)
}

func (n NationalID) String() string { return n.value }
func (n NationalID) IsZero() bool   { return n.value == "" }

// Redacted returns the ID with all but the last 4 digits masked, for logs.
func (n NationalID) Redacted() string {
	return RedactNationalID(n.value)
}

// RedactNationalID masks a raw national ID string for logging.
func RedactNationalID(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return "****" + s[len(s)-4:]
}

func isNineDigits(s string) bool {
	if len(s) != NationalIDLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// checksumOK expects exactly NationalIDLength ASCII digits.
func checksumOK(s string) bool {
	sum := 0
	for i := 0; i < NationalIDLength; i++ {
		v := int(s[i]-'0') * (i%2 + 1)
		if v > 9 {
			v -= 9
		}
		sum += v
	}
	return sum%10 == 0
}

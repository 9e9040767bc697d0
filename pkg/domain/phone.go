package domain

import "strings"

// Phone digit-count bounds, inclusive. This is a syntactic check, not a
// per-country numbering plan.
const (
	MinPhoneDigits = 7
	MaxPhoneDigits = 15
)

// DialCode is a country calling code offered by the phone picker.
type DialCode struct {
	Code    string `json:"dial_code"`
	Country string `json:"country"`
	Name    string `json:"name"`
}

// DefaultDialCode is preselected in the phone picker.
const DefaultDialCode = "+972"

// DialCodes lists the supported country calling codes, default first.
var DialCodes = []DialCode{
	{Code: "+972", Country: "IL", Name: "Israel"},
	{Code: "+1", Country: "US", Name: "United States"},
	{Code: "+44", Country: "GB", Name: "United Kingdom"},
	{Code: "+33", Country: "FR", Name: "France"},
	{Code: "+49", Country: "DE", Name: "Germany"},
}

// ValidPhone reports whether phone holds between 7 and 15 digits once all
// separators are removed.
func ValidPhone(phone string) bool {
	n := len(Digits(phone))
	return n >= MinPhoneDigits && n <= MaxPhoneDigits
}

// NormalizePhone merges a dial code and a raw phone number into one digit
// string: "0541234567", "+972" becomes "972541234567". One leading trunk
// zero is dropped from the local number.
func NormalizePhone(phone, dialCode string) string {
	return Digits(dialCode) + trimTrunkPrefix(Digits(phone))
}

// FormatPhone renders a phone for display, e.g. "+972-54-1234567" for
// 9-digit Israeli numbers and "<dial>-<digits>" otherwise.
func FormatPhone(phone, dialCode string) string {
	digits := Digits(phone)
	if dialCode == "+972" {
		local := trimTrunkPrefix(digits)
		if len(local) == 9 {
			return dialCode + "-" + local[:2] + "-" + local[2:]
		}
	}
	return dialCode + "-" + digits
}

// MaskPhone keeps the last 3 digits of a phone number for logging.
func MaskPhone(phone string) string {
	digits := Digits(phone)
	if len(digits) <= 3 {
		return "***"
	}
	return strings.Repeat("*", len(digits)-3) + digits[len(digits)-3:]
}

// Digits returns only the ASCII digits of s.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func trimTrunkPrefix(digits string) string {
	if strings.HasPrefix(digits, "0") {
		return digits[1:]
	}
	return digits
}

// LookupDialCode returns the supported dial code matching code.
func LookupDialCode(code string) (DialCode, bool) {
	for _, dc := range DialCodes {
		if dc.Code == code {
			return dc, true
		}
	}
	return DialCode{}, false
}

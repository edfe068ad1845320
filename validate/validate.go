// Package validate holds the input normalizers and validators shared by the
// checkout flow and the OTP relay. Normalizers clamp user input as it is typed
// (drop disallowed characters, truncate); validators never fail on any input.
package validate

import (
	"regexp"
	"strings"
	"time"
)

const (
	PhoneLength      = 10
	CardNumberLength = 16
	CVVLength        = 3
	OTPLength        = 6
	PostalCodeLength = 6
)

var (
	indianPhonePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)
	expiryPattern      = regexp.MustCompile(`^(0[1-9]|1[0-2])/([0-9]{2})$`)
	postalCodePattern  = regexp.MustCompile(`^[1-9][0-9]{5}$`)
	emailPattern       = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func clamp(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NormalizePhone keeps at most 10 digits. A country prefix (+91, 91) or a
// trunk zero in front of a longer number is dropped first.
func NormalizePhone(input string) string {
	digits := digitsOnly(input)
	switch {
	case len(digits) == 12 && strings.HasPrefix(digits, "91"):
		digits = digits[2:]
	case len(digits) == 11 && strings.HasPrefix(digits, "0"):
		digits = digits[1:]
	}
	return clamp(digits, PhoneLength)
}

func IsValidIndianPhone(s string) bool {
	return indianPhonePattern.MatchString(s)
}

func NormalizeCardNumber(input string) string {
	return clamp(digitsOnly(input), CardNumberLength)
}

// FormatCardNumber groups the normalized number in blocks of four for display.
func FormatCardNumber(input string) string {
	digits := NormalizeCardNumber(input)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func IsValidCardNumber(s string) bool {
	return isDigits(s, CardNumberLength)
}

// MaskCardNumber shows only the last four digits.
func MaskCardNumber(s string) string {
	digits := digitsOnly(s)
	if len(digits) <= 4 {
		return digits
	}
	return strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
}

func NormalizeCVV(input string) string {
	return clamp(digitsOnly(input), CVVLength)
}

func IsValidCVV(s string) bool {
	return isDigits(s, CVVLength)
}

// NormalizeExpiry applies the MM/YY mask: up to four digits with a slash
// after the month once a third digit has been typed.
func NormalizeExpiry(input string) string {
	digits := clamp(digitsOnly(input), 4)
	if len(digits) <= 2 {
		return digits
	}
	return digits[:2] + "/" + digits[2:]
}

// IsValidExpiry reports whether s is a well-formed MM/YY date whose month has
// not already ended at now. YY is read as 20YY.
func IsValidExpiry(s string, now time.Time) bool {
	m := expiryPattern.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	month := int(m[1][0]-'0')*10 + int(m[1][1]-'0')
	year := 2000 + int(m[2][0]-'0')*10 + int(m[2][1]-'0')

	if year != now.Year() {
		return year > now.Year()
	}
	return month >= int(now.Month())
}

func NormalizeOTP(input string) string {
	return clamp(digitsOnly(input), OTPLength)
}

func IsValidOTP(s string) bool {
	return isDigits(s, OTPLength)
}

func IsValidPostalCode(s string) bool {
	return postalCodePattern.MatchString(s)
}

func IsValidEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// MaskPhone keeps the last four digits for logging.
func MaskPhone(s string) string {
	digits := digitsOnly(s)
	if len(digits) <= 4 {
		return digits
	}
	return strings.Repeat("x", len(digits)-4) + digits[len(digits)-4:]
}

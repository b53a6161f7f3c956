// Package countries holds the static registry of supported countries and their
// phone-number rules.
package countries

import (
	"regexp"
	"strings"
)

// Country describes the dialing and local-number rules of a supported country.
type Country struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	CallingCode string `json:"callingCode"`
	Flag        string `json:"flag"`
	MinLength   int    `json:"minLength"`
	MaxLength   int    `json:"maxLength"`
	Pattern     string `json:"pattern"`
	Example     string `json:"example"`

	re *regexp.Regexp
}

// Matches reports whether a digit-only number satisfies the country's pattern.
func (c Country) Matches(digits string) bool {
	if c.re == nil {
		return regexp.MustCompile(c.Pattern).MatchString(digits)
	}
	return c.re.MatchString(digits)
}

// table is the registry in display order. Patterns operate on digits only.
var table = []Country{
	{Code: "IN", Name: "India", CallingCode: "+91", Flag: "🇮🇳", MinLength: 10, MaxLength: 10, Pattern: `^[6-9]\d{9}$`, Example: "9876543210"},
	{Code: "US", Name: "United States", CallingCode: "+1", Flag: "🇺🇸", MinLength: 10, MaxLength: 10, Pattern: `^\d{10}$`, Example: "(555) 123-4567"},
	{Code: "GB", Name: "United Kingdom", CallingCode: "+44", Flag: "🇬🇧", MinLength: 10, MaxLength: 11, Pattern: `^[1-9]\d{9}$`, Example: "7911 123456"},
	{Code: "CA", Name: "Canada", CallingCode: "+1", Flag: "🇨🇦", MinLength: 10, MaxLength: 10, Pattern: `^\d{10}$`, Example: "(416) 555-1234"},
	{Code: "AU", Name: "Australia", CallingCode: "+61", Flag: "🇦🇺", MinLength: 9, MaxLength: 9, Pattern: `^[2-478]\d{8}$`, Example: "412 345 678"},
	{Code: "DE", Name: "Germany", CallingCode: "+49", Flag: "🇩🇪", MinLength: 10, MaxLength: 12, Pattern: `^[1-9]\d{9,11}$`, Example: "30 12345678"},
	{Code: "FR", Name: "France", CallingCode: "+33", Flag: "🇫🇷", MinLength: 9, MaxLength: 9, Pattern: `^[1-9]\d{8}$`, Example: "1 23 45 67 89"},
	{Code: "JP", Name: "Japan", CallingCode: "+81", Flag: "🇯🇵", MinLength: 10, MaxLength: 11, Pattern: `^[1-9]\d{9,10}$`, Example: "90 1234 5678"},
	{Code: "CN", Name: "China", CallingCode: "+86", Flag: "🇨🇳", MinLength: 11, MaxLength: 11, Pattern: `^1[3-9]\d{9}$`, Example: "138 0013 8000"},
	{Code: "BR", Name: "Brazil", CallingCode: "+55", Flag: "🇧🇷", MinLength: 10, MaxLength: 11, Pattern: `^[1-9]\d{9,10}$`, Example: "11 99999-9999"},
	{Code: "MX", Name: "Mexico", CallingCode: "+52", Flag: "🇲🇽", MinLength: 10, MaxLength: 10, Pattern: `^[1-9]\d{9}$`, Example: "55 1234 5678"},
	{Code: "RU", Name: "Russia", CallingCode: "+7", Flag: "🇷🇺", MinLength: 10, MaxLength: 10, Pattern: `^[3-9]\d{9}$`, Example: "912 345-67-89"},
	{Code: "ZA", Name: "South Africa", CallingCode: "+27", Flag: "🇿🇦", MinLength: 9, MaxLength: 9, Pattern: `^[1-9]\d{8}$`, Example: "82 123 4567"},
	{Code: "KR", Name: "South Korea", CallingCode: "+82", Flag: "🇰🇷", MinLength: 9, MaxLength: 10, Pattern: `^[1-9]\d{8,9}$`, Example: "10 1234 5678"},
	{Code: "IT", Name: "Italy", CallingCode: "+39", Flag: "🇮🇹", MinLength: 9, MaxLength: 10, Pattern: `^[3]\d{8,9}$`, Example: "312 345 6789"},
	{Code: "ES", Name: "Spain", CallingCode: "+34", Flag: "🇪🇸", MinLength: 9, MaxLength: 9, Pattern: `^[6-9]\d{8}$`, Example: "612 34 56 78"},
	{Code: "NL", Name: "Netherlands", CallingCode: "+31", Flag: "🇳🇱", MinLength: 9, MaxLength: 9, Pattern: `^[1-9]\d{8}$`, Example: "6 12345678"},
	{Code: "SE", Name: "Sweden", CallingCode: "+46", Flag: "🇸🇪", MinLength: 9, MaxLength: 9, Pattern: `^[1-9]\d{8}$`, Example: "70 123 45 67"},
	{Code: "NO", Name: "Norway", CallingCode: "+47", Flag: "🇳🇴", MinLength: 8, MaxLength: 8, Pattern: `^[2-9]\d{7}$`, Example: "412 34 567"},
	{Code: "SG", Name: "Singapore", CallingCode: "+65", Flag: "🇸🇬", MinLength: 8, MaxLength: 8, Pattern: `^[3689]\d{7}$`, Example: "8123 4567"},
}

// DefaultCode is the country preselected for a new draft.
const DefaultCode = "IN"

var byCode map[string]Country

func init() {
	byCode = make(map[string]Country, len(table))
	for i := range table {
		table[i].re = regexp.MustCompile(table[i].Pattern)
		byCode[table[i].Code] = table[i]
	}
}

// Lookup returns the country registered under code. The match is exact.
func Lookup(code string) (Country, bool) {
	c, ok := byCode[code]
	return c, ok
}

// All returns a copy of the registry in display order.
func All() []Country {
	out := make([]Country, len(table))
	copy(out, table)
	return out
}

// DigitsOnly strips every character that is not an ASCII digit.
func DigitsOnly(phone string) string {
	var sb strings.Builder
	sb.Grow(len(phone))
	for i := 0; i < len(phone); i++ {
		if phone[i] >= '0' && phone[i] <= '9' {
			sb.WriteByte(phone[i])
		}
	}
	return sb.String()
}

package countries

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryInvariants(t *testing.T) {
	all := All()
	require.NotEmpty(t, all)

	seen := make(map[string]bool)
	for _, c := range all {
		t.Run(c.Code, func(t *testing.T) {
			assert.Len(t, c.Code, 2)
			assert.False(t, seen[c.Code], "duplicate code %s", c.Code)
			seen[c.Code] = true

			assert.LessOrEqual(t, c.MinLength, c.MaxLength)
			assert.True(t, strings.HasPrefix(c.CallingCode, "+"))

			digits := DigitsOnly(c.Example)
			assert.GreaterOrEqual(t, len(digits), c.MinLength, "example too short")
			assert.LessOrEqual(t, len(digits), c.MaxLength, "example too long")
			assert.True(t, c.Matches(digits), "example %q does not match %s", c.Example, c.Pattern)
		})
	}
}

func TestPatternRespectsLengthBounds(t *testing.T) {
	// No pattern may accept a digit string outside [MinLength, MaxLength].
	for _, c := range All() {
		for n := 1; n <= 15; n++ {
			for _, lead := range []string{"1", "3", "4", "6", "8", "9"} {
				candidate := lead + strings.Repeat("2", n-1)
				if c.Matches(candidate) {
					assert.True(t, n >= c.MinLength && n <= c.MaxLength,
						"%s pattern accepted %d digits outside [%d,%d]", c.Code, n, c.MinLength, c.MaxLength)
				}
			}
		}
	}
}

func TestLookup(t *testing.T) {
	c, ok := Lookup("IN")
	require.True(t, ok)
	assert.Equal(t, "India", c.Name)
	assert.Equal(t, "+91", c.CallingCode)

	_, ok = Lookup("XX")
	assert.False(t, ok)

	_, ok = Lookup("in")
	assert.False(t, ok, "lookup is an exact match")

	_, ok = Lookup("")
	assert.False(t, ok)
}

func TestDefaultCodeIsRegistered(t *testing.T) {
	_, ok := Lookup(DefaultCode)
	assert.True(t, ok)
}

func TestAllReturnsCopy(t *testing.T) {
	first := All()
	first[0].Name = "Changed"

	c, _ := Lookup(first[0].Code)
	assert.NotEqual(t, "Changed", c.Name)
	assert.NotEqual(t, "Changed", All()[0].Name)
}

func TestDigitsOnly(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "already digits", input: "9876543210", want: "9876543210"},
		{name: "formatted US", input: "(555) 123-4567", want: "5551234567"},
		{name: "with plus and spaces", input: "+44 7911 123456", want: "447911123456"},
		{name: "empty", input: "", want: ""},
		{name: "letters only", input: "abc", want: ""},
		{name: "non-ascii digits dropped", input: "١٢٣45", want: "45"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DigitsOnly(tt.input))
		})
	}
}

func TestGBAcceptsOnlyTenDigits(t *testing.T) {
	c, ok := Lookup("GB")
	require.True(t, ok)

	assert.True(t, c.Matches("7911123456"))
	assert.False(t, c.Matches("79111234567"))
	assert.False(t, c.Matches("791112345"))
}

package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "mobile with mask", input: "(11) 91234-5678", want: "5511912345678"},
		{name: "landline with mask", input: "(62) 3232-1010", want: "556232321010"},
		{name: "already normalized mobile", input: "5511912345678", want: "5511912345678"},
		{name: "already normalized landline", input: "556232321010", want: "556232321010"},
		{name: "plus and spaces", input: "+55 11 91234 5678", want: "5511912345678"},
		{name: "empty", input: "", want: ""},
		{name: "no digits", input: "abc-()+ ", want: ""},
		{name: "too short", input: "91234-5678", want: "912345678"},
		{name: "too long", input: "00 55 11 91234 5678", want: "005511912345678"},
		{name: "twelve digits without 55", input: "441234567890", want: "441234567890"},
		{name: "ten digits starting with 55", input: "5532321010", want: "555532321010"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.input))
		})
	}
}

func TestNormalizePhone_LengthClasses(t *testing.T) {
	for n := 1; n <= 16; n++ {
		digits := strings.Repeat("7", n)
		got := NormalizePhone(digits)

		switch n {
		case 10, 11:
			assert.Equal(t, "55"+digits, got, "len %d", n)
		default:
			assert.Equal(t, digits, got, "len %d", n)
		}
	}
}

func TestNormalizePhone_Idempotent(t *testing.T) {
	inputs := []string{
		"", "x", "123", "(11) 91234-5678", "(62) 3232-1010",
		"5511912345678", "441234567890", "5532321010", "12345678901234",
	}
	for _, in := range inputs {
		once := NormalizePhone(in)
		assert.Equal(t, once, NormalizePhone(once), "input %q", in)
	}
}

package extract_test

import (
	"prospector/internal/extract"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmails(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  []string
	}{
		{
			name: "single address",
			in:   "Contact: jane@example.com",
			out:  []string{"jane@example.com"},
		},
		{
			name: "multiple addresses sorted",
			in:   "zed@example.com or amy@example.com",
			out:  []string{"amy@example.com", "zed@example.com"},
		},
		{
			name: "duplicates collapsed",
			in:   "jane@example.com jane@example.com",
			out:  []string{"jane@example.com"},
		},
		{
			name: "local part with dots, plus and percent",
			in:   "first.last+tag%x@mail.example.co",
			out:  []string{"first.last+tag%x@mail.example.co"},
		},
		{
			name: "no at sign",
			in:   "jane.example.com",
			out:  []string{},
		},
		{
			name: "final label too short",
			in:   "jane@example.c",
			out:  []string{},
		},
		{
			name: "embedded in sentence",
			in:   "Reach our broker (bob@realty.org) today",
			out:  []string{"bob@realty.org"},
		},
		{
			name: "empty input",
			in:   "",
			out:  []string{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.out, extract.Emails(tc.in))
		})
	}
}

func TestPhones(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  []string
	}{
		{
			name: "parenthesized area code",
			in:   "Call (804) 555-1212 now",
			out:  []string{"(804) 555-1212"},
		},
		{
			name: "hyphen separated",
			in:   "804-555-1212",
			out:  []string{"804-555-1212"},
		},
		{
			name: "dot separated",
			in:   "804.555.1212",
			out:  []string{"804.555.1212"},
		},
		{
			name: "bare ten digits",
			in:   "8045551212",
			out:  []string{"8045551212"},
		},
		{
			name: "duplicates collapsed, first-appearance order kept",
			in:   "804-555-1212 then 804-555-9999 then 804-555-1212",
			out:  []string{"804-555-1212", "804-555-9999"},
		},
		{
			name: "too few digits",
			in:   "555-1212",
			out:  []string{},
		},
		{
			name: "empty input",
			in:   "",
			out:  []string{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.out, extract.Phones(tc.in))
		})
	}
}

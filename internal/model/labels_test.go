package model

import "testing"

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"":              "",
		"name":          "Name",
		"first_name":    "First Name",
		"firstName":     "First Name",
		"user_id":       "User Id",
		"userID":        "User ID",
		"HTTPTimeout":   "HTTP Timeout",
		"address-line2": "Address Line 2",
		"  spaced out ": "Spaced Out",
		"SHOUTING_CASE": "SHOUTING CASE",
	}
	for in, want := range cases {
		if got := DefaultLabeler(in); got != want {
			t.Errorf("DefaultLabeler(%q) = %q, want %q", in, got, want)
		}
	}
}

package sanitizer

import "testing"

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"+12125551234", "+12125551234"},
		{"(212) 555-1234", "+12125551234"},
		{"212-555-1234", "+12125551234"},
		{"  +12125551234  ", "+12125551234"},
		// Unparseable input passes through trimmed; the validator rejects it.
		{"not-a-phone", "not-a-phone"},
	}

	for _, tc := range cases {
		if got := NormalizePhone(tc.in); got != tc.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"Downtown Clinic", "Downtown Clinic"},
		{"  Downtown   Clinic  ", "Downtown Clinic"},
		{"Downtown\t\nClinic", "Downtown Clinic"},
		{"a", "a"},
	}

	for _, tc := range cases {
		if got := TrimAndNormalize(tc.in); got != tc.want {
			t.Errorf("TrimAndNormalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeLabel(t *testing.T) {
	if got := NormalizeLabel("  Dermatology  "); got != "dermatology" {
		t.Errorf("NormalizeLabel = %q, want %q", got, "dermatology")
	}
}

func TestNormalizeLabels(t *testing.T) {
	in := []string{"Dermatology", " dermatology ", "", "Pediatrics", "PEDIATRICS"}
	got := NormalizeLabels(in)

	want := []string{"dermatology", "pediatrics"}
	if len(got) != len(want) {
		t.Fatalf("NormalizeLabels = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("NormalizeLabels[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

package grading

import "testing"

func TestNormalizeDiacritics(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ștefan cel Mare", "stefan cel mare"},
		{"  Țara Românească ", "tara romaneasca"},
		{"Carpați", "carpati"},
		{"Şiret", "siret"},
		{"ţărm", "tarm"},
		{"ÎNVĂȚĂMÂNT", "invatamant"},
		{"Café", "cafe"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range tests {
		if got := NormalizeDiacritics(tc.in); got != tc.want {
			t.Errorf("NormalizeDiacritics(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeDiacritics_Decomposed(t *testing.T) {
	// "s" followed by U+0326 COMBINING COMMA BELOW.
	if got := NormalizeDiacritics("ștefan"); got != "stefan" {
		t.Fatalf("got %q, want stefan", got)
	}
}

func TestEqualsNormalized(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Ștefan cel Mare", "stefan cel mare", true},
		{"Țara", "tara", true},
		{"Dunărea", "DUNAREA ", true},
		{"Mureș", "Olt", false},
		{"Iași", "iasi ", true},
	}
	for _, tc := range tests {
		if got := EqualsNormalized(tc.a, tc.b); got != tc.want {
			t.Errorf("EqualsNormalized(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

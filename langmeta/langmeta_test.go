package langmeta

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ar", "ar"},
		{"pt-br", "pt-BR"},
		{"ZH-hant-tw", "zh-Hant-TW"},
	}
	for _, tc := range tests {
		got, err := Normalize(tc.in)
		if err != nil {
			t.Fatalf("Normalize(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	if _, err := Normalize("not a language"); err == nil {
		t.Error("Normalize(invalid) should fail")
	}
}

func TestNames(t *testing.T) {
	if got := Name("ar"); got != "Arabic" {
		t.Errorf("Name(ar) = %q, want Arabic", got)
	}
	if got := NativeName("ar"); got != "العربية" {
		t.Errorf("NativeName(ar) = %q, want العربية", got)
	}
	if got := Name("!!"); got != "!!" {
		t.Errorf("Name(invalid) = %q, want input back", got)
	}
}

package keyfmt

import (
	"reflect"
	"testing"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"apply_changes", "Apply changes"},
		{"apply", "Apply"},
		{"", ""},
		{"APPLY_changes", "Apply changes"},
		{"open_URL_now", "Open URL now"},
		{"save__draft", "Save  draft"},
		{"_leading", " leading"},
		{"über_alles", "Über alles"},
		{"x", "X"},
	}

	for _, tc := range tests {
		if got := Label(tc.key); got != tc.want {
			t.Errorf("Label(%q) = %q, want %q", tc.key, got, tc.want)
		}
	}
}

func TestLabelKeepsLaterSegments(t *testing.T) {
	// s1_s2_..._sn -> Capitalize(s1) + " " + s2 + ... + " " + sn
	got := Label("delete_All_Items_NOW")
	want := "Delete All Items NOW"
	if got != want {
		t.Fatalf("Label() = %q, want %q", got, want)
	}
}

func TestLabels(t *testing.T) {
	got := Labels([]string{"apply_changes", "cancel"})
	want := []string{"Apply changes", "Cancel"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Labels() = %#v, want %#v", got, want)
	}
}

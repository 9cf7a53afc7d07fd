package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/minios-linux/stringsync/android"
)

func TestFormat(t *testing.T) {
	res := t.TempDir()
	enPath := android.SourceStringsXMLPath(res)
	arPath := android.StringsXMLPath(res, "ar")
	writeFile(t, enPath, `<resources><string name="a">A</string></resources>`)
	pretty := android.Header + "<resources>\n    <string name=\"a\">ا</string>\n</resources>\n"
	writeFile(t, arPath, pretty)

	changed, err := Format(res, []string{"ar", "de"})
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if !reflect.DeepEqual(changed, []string{enPath}) {
		t.Errorf("changed = %v, want only the English file", changed)
	}

	want := android.Header + "<resources>\n    <string name=\"a\">A</string>\n</resources>\n"
	if got := readFile(t, enPath); got != want {
		t.Errorf("formatted English file:\n%s\nwant:\n%s", got, want)
	}
	if _, err := os.Stat(filepath.Join(res, "values-de")); !os.IsNotExist(err) {
		t.Error("Format created a file for a locale that had none")
	}

	changed, err = Format(res, []string{"ar"})
	if err != nil {
		t.Fatalf("second Format: %v", err)
	}
	if len(changed) != 0 {
		t.Errorf("second Format changed %v", changed)
	}
}

func TestFormat_ParseErrorWritesNothing(t *testing.T) {
	res := t.TempDir()
	enPath := android.SourceStringsXMLPath(res)
	orig := `<resources><string name="a">A</string></resources>`
	writeFile(t, enPath, orig)
	writeFile(t, android.StringsXMLPath(res, "ar"), `<resources>`)

	_, err := Format(res, []string{"ar"})
	var pe *android.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *android.ParseError", err)
	}
	if got := readFile(t, enPath); got != orig {
		t.Errorf("English file rewritten despite the parse error")
	}
}

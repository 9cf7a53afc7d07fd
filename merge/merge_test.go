package merge

import (
	"reflect"
	"testing"

	"github.com/minios-linux/stringsync/android"
)

func entries(pairs ...string) []android.Entry {
	var out []android.Entry
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, android.Entry{Name: pairs[i], Value: pairs[i+1], Translatable: true})
	}
	return out
}

func parse(t *testing.T, xml string) *android.Document {
	t.Helper()
	doc, err := android.Parse([]byte(xml))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	return doc
}

func TestAdd_EmptyDocument(t *testing.T) {
	doc := android.New()

	added := Add(doc, entries("apply_changes", "Apply changes"))

	if !reflect.DeepEqual(added, []string{"apply_changes"}) {
		t.Errorf("added = %v", added)
	}
	got := doc.Entries()
	want := entries("apply_changes", "Apply changes")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("entries = %+v, want %+v", got, want)
	}
}

func TestAdd_Idempotent(t *testing.T) {
	doc := parse(t, `<resources><string name="cancel">Cancel</string></resources>`)
	in := entries("apply_changes", "Apply changes", "cancel", "Abort", "save", "Save")

	Add(doc, in)
	after1 := string(doc.Marshal())

	added := Add(doc, in)
	after2 := string(doc.Marshal())

	if len(added) != 0 {
		t.Errorf("second Add added %v, want nothing", added)
	}
	if after1 != after2 {
		t.Errorf("second Add changed the document:\n%s\n---\n%s", after1, after2)
	}
}

func TestAdd_ExistingValueWins(t *testing.T) {
	doc := parse(t, `<resources>
    <string name="apply_changes">Apply all edits</string>
</resources>`)

	added := Add(doc, entries("apply_changes", "Apply changes"))

	if len(added) != 0 {
		t.Errorf("added = %v, want none", added)
	}
	if v, _ := doc.Get("apply_changes"); v != "Apply all edits" {
		t.Errorf("hand-edited value overwritten: %q", v)
	}
	if n := len(doc.Entries()); n != 1 {
		t.Errorf("expected 1 entry, got %d", n)
	}
}

func TestAdd_OrderAndDuplicates(t *testing.T) {
	doc := android.New()

	added := Add(doc, entries("b", "B", "a", "A", "b", "B2"))

	if !reflect.DeepEqual(added, []string{"b", "a"}) {
		t.Errorf("added = %v, want [b a]", added)
	}
	if v, _ := doc.Get("b"); v != "B" {
		t.Errorf("b = %q, want first occurrence", v)
	}
}

func TestMissing(t *testing.T) {
	source := parse(t, `<resources>
    <string name="app_name" translatable="false">Aware</string>
    <string name="apply_changes">Apply changes</string>
    <string name="cancel">Cancel</string>
    <string name="save">Save</string>
</resources>`)
	target := parse(t, `<resources>
    <string name="cancel">إلغاء</string>
</resources>`)

	got := Missing(source, target)
	want := entries("apply_changes", "Apply changes", "save", "Save")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Missing = %+v, want %+v", got, want)
	}

	Add(target, got)
	if rest := Missing(source, target); len(rest) != 0 {
		t.Errorf("Missing after Add = %+v, want none", rest)
	}
}

func TestFilter(t *testing.T) {
	in := entries("a", "A", "b", "B", "c", "C")
	got := Filter(in, []string{"c", "a", "zzz"})
	want := entries("a", "A", "c", "C")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Filter = %+v, want %+v", got, want)
	}
}

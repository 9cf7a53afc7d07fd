// Package merge implements insert-only merging of string resources into
// Android resource documents.
package merge

import (
	"github.com/minios-linux/stringsync/android"
)

// Add inserts entries into doc.
//   - Entries whose name is not yet present are appended as <string>
//     elements, in input order.
//   - Entries whose name already exists are skipped; the existing value
//     is never updated.
//   - A name repeated within entries is added once (first occurrence wins).
//   - Markup entries keep their inline elements (see android.AppendEntry).
//
// Running Add twice with the same input leaves the document unchanged the
// second time. It returns the names that were added.
func Add(doc *android.Document, entries []android.Entry) []string {
	present := doc.Names()

	var added []string
	for _, e := range entries {
		if present[e.Name] {
			continue
		}
		doc.AppendEntry(e)
		present[e.Name] = true
		added = append(added, e.Name)
	}
	return added
}

// Missing returns the translatable <string> entries of source whose names
// do not exist in target, in source document order. Entries marked
// translatable="false" are never reported.
func Missing(source, target *android.Document) []android.Entry {
	present := target.Names()

	var missing []android.Entry
	for _, e := range source.Entries() {
		if !e.Translatable || present[e.Name] {
			continue
		}
		missing = append(missing, e)
		// A duplicated source name is reported once.
		present[e.Name] = true
	}
	return missing
}

// Filter keeps the entries whose names appear in keys, preserving the
// order of entries.
func Filter(entries []android.Entry, keys []string) []android.Entry {
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}

	var out []android.Entry
	for _, e := range entries {
		if want[e.Name] {
			out = append(out, e)
		}
	}
	return out
}

package pipeline

import (
	"bytes"
	"errors"
	"os"

	"github.com/minios-linux/stringsync/android"
)

// Format re-indents values/strings.xml and the strings.xml of every given
// language without merging anything. Files that do not exist are skipped.
// All files are parsed before the first one is rewritten. It returns the
// paths whose content changed.
func Format(resDir string, langs []string) ([]string, error) {
	paths := []string{android.SourceStringsXMLPath(resDir)}
	for _, lang := range langs {
		paths = append(paths, android.StringsXMLPath(resDir, lang))
	}

	type parsed struct {
		path string
		orig []byte
		doc  *android.Document
	}
	var docs []parsed
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		doc, err := android.Parse(data)
		if err != nil {
			var pe *android.ParseError
			if errors.As(err, &pe) {
				pe.Path = path
			}
			return nil, err
		}
		docs = append(docs, parsed{path: path, orig: data, doc: doc})
	}

	var changed []string
	for _, p := range docs {
		p.doc.Indent()
		out := p.doc.Marshal()
		if bytes.Equal(out, p.orig) {
			continue
		}
		if err := p.doc.WriteFile(p.path); err != nil {
			return changed, err
		}
		changed = append(changed, p.path)
	}
	return changed, nil
}
